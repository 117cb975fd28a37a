package format

import (
	"errors"
	"testing"

	"github.com/midbel/sheetcalc/value"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		Pattern string
		Input   float64
		Want    string
	}{
		{Pattern: "0.##", Input: 42, Want: "42"},
		{Pattern: "0.##", Input: 3.14159, Want: "3.14"},
		{Pattern: "0.00", Input: 3.1, Want: "3.10"},
		{Pattern: "#.##", Input: 0.5, Want: ".5"},
		{Pattern: "000", Input: 7, Want: "007"},
		{Pattern: "#,##0.00", Input: 1234567.891, Want: "1,234,567.89"},
		{Pattern: "#,##0", Input: 999, Want: "999"},
		{Pattern: "#,##0", Input: -1234, Want: "-1,234"},
		{Pattern: "+0.0", Input: 2, Want: "+2.0"},
		{Pattern: "+0.0", Input: -2, Want: "-2.0"},
		{Pattern: "0", Input: 2.5, Want: "2"},
		{Pattern: DefaultNumberPattern, Input: 0.1 + 0.2, Want: "0.3"},
	}
	for _, c := range tests {
		f, err := ParseNumber(c.Pattern)
		if err != nil {
			t.Errorf("%s: fail to parse pattern: %s", c.Pattern, err)
			continue
		}
		got, err := f.Format(value.Float(c.Input))
		if err != nil {
			t.Errorf("%s: fail to format %f: %s", c.Pattern, c.Input, err)
			continue
		}
		if got != c.Want {
			t.Errorf("%s(%f): results mismatched! want %s - got %s", c.Pattern, c.Input, c.Want, got)
		}
	}
}

func TestNumberInvalid(t *testing.T) {
	for _, pattern := range []string{"", ".00", "+", "0.#0", "0a", "0.x"} {
		if _, err := ParseNumber(pattern); !errors.Is(err, ErrPattern) {
			t.Errorf("%q: expected invalid pattern, got %v", pattern, err)
		}
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		Input value.Value
		Want  string
	}{
		{Input: value.Float(3.14159), Want: "3.14"},
		{Input: value.Text("foobar"), Want: "foobar"},
		{Input: value.Boolean(true), Want: "yes"},
		{Input: value.ErrDiv0, Want: "#DIV/0!"},
		{Input: value.Blank{}, Want: ""},
		{Input: nil, Want: ""},
	}
	d := NewDisplay()
	if err := d.Number("0.##"); err != nil {
		t.Fatalf("fail to set number pattern: %s", err)
	}
	d.Set(value.TypeBool, Bool("yes", "no"))
	for _, c := range tests {
		if got := d.Format(c.Input); got != c.Want {
			t.Errorf("%v: results mismatched! want %s - got %s", c.Input, c.Want, got)
		}
	}
}
