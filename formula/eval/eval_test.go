package eval

import (
	"testing"

	"github.com/midbel/sheetcalc/calc"
	"github.com/midbel/sheetcalc/calc/exprlang"
	"github.com/midbel/sheetcalc/layout"
	"github.com/midbel/sheetcalc/value"
)

func fake() Lookup {
	cells := map[string]value.Value{
		"A1":      value.Float(1),
		"A2":      value.Float(2),
		"A3":      value.Float(3),
		"B1":      value.Text("foo"),
		"B2":      value.Text("12"),
		"B3":      value.Text(`say "hi"`),
		"C1":      value.Float(-4),
		"C2":      value.ErrDiv0,
		"C3":      value.Boolean(true),
		"Data!A1": value.Float(100),
	}
	return func(pos layout.Position) value.Value {
		v, ok := cells[pos.Addr()]
		if !ok {
			return value.Blank{}
		}
		return v
	}
}

func TestSubstitute(t *testing.T) {
	tests := []struct {
		Formula string
		Want    string
	}{
		{Formula: "=A1+A2", Want: "1+2"},
		{Formula: "=SUM(A1:A3)", Want: "SUM(1,2,3)"},
		{Formula: "=SUM(A3:A1)", Want: "SUM(1,2,3)"},
		{Formula: "=SUM(A1:B2)", Want: "SUM(1,0,2,12)"},
		{Formula: "=B1&B3", Want: `"foo"&"say ""hi"""`},
		{Formula: "=B2*2", Want: "12*2"},
		{Formula: "=C1*2", Want: "(-4)*2"},
		{Formula: "=C2+1", Want: "#DIV/0!+1"},
		{Formula: "=SUM(C1:C3)", Want: "SUM(-4,0,0)"},
		{Formula: "=IF(C3,1,2)", Want: "IF(TRUE,1,2)"},
		{Formula: "=Z99+1", Want: "0+1"},
		{Formula: "=Data!A1/4", Want: "100/4"},
		{Formula: "=LOG10(A1)", Want: "LOG10(1)"},
	}
	get := fake()
	for _, c := range tests {
		if got := Substitute(c.Formula, get); got != c.Want {
			t.Errorf("%s: substitution mismatched! want %s, got %s", c.Formula, c.Want, got)
		}
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		Formula string
		Want    string
		Err     string
	}{
		{Formula: "=SUM(A1:A3)", Want: "6"},
		{Formula: "=SUM(A3:A1)", Want: "6"},
		{Formula: "=A1+A2*A3", Want: "7"},
		{Formula: "=B2/4", Want: "3"},
		{Formula: `=B1&"bar"`, Want: "foobar"},
		{Formula: "=C1*C1", Want: "16"},
		{Formula: "=SUM(C1:C3)", Want: "-4"},
		{Formula: "=C2+1", Err: "#DIV/0!"},
		{Formula: "=A1/0", Err: "#DIV/0!"},
		{Formula: "=B1+1", Err: "#VALUE!"},
		{Formula: "=UNKNOWN(A1)", Err: "#NAME?"},
		{Formula: "=A1+", Err: "#ERROR!"},
		{Formula: "hello", Want: "hello"},
		{Formula: "", Want: ""},
	}
	backends := map[string]calc.Evaluator{
		"native": calc.NewNative(),
		"expr":   exprlang.New(),
	}
	get := fake()
	for name, backend := range backends {
		eval := New(backend)
		for _, c := range tests {
			res := eval.Evaluate(c.Formula, get)
			if c.Err != "" {
				if !res.Failed() {
					t.Errorf("%s/%s: expected error %s, got %s", name, c.Formula, c.Err, res.Value)
				} else if res.Err.Code() != c.Err {
					t.Errorf("%s/%s: error mismatched! want %s, got %s", name, c.Formula, c.Err, res.Err.Code())
				}
				continue
			}
			if res.Failed() {
				t.Errorf("%s/%s: unexpected error %s", name, c.Formula, res.Err.Code())
				continue
			}
			if got := res.Value.String(); got != c.Want {
				t.Errorf("%s/%s: result mismatched! want %s, got %s", name, c.Formula, c.Want, got)
			}
		}
	}
}

type panicking struct{}

func (panicking) Evaluate(string) (value.Value, *value.Error) {
	panic("boom")
}

func TestEvaluatePanic(t *testing.T) {
	eval := New(panicking{})
	res := eval.Evaluate("=1+1", fake())
	if !res.Failed() || res.Err.Code() != value.ErrGeneric.Code() {
		t.Fatalf("panic should give %s, got %+v", value.ErrGeneric, res)
	}
	if res.Get() != value.ErrGeneric {
		t.Errorf("result value should be the error, got %s", res.Get())
	}
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		Value value.Value
		Want  string
	}{
		{Value: nil, Want: "0"},
		{Value: value.Blank{}, Want: "0"},
		{Value: value.Text(""), Want: "0"},
		{Value: value.Text(" 42 "), Want: "42"},
		{Value: value.Text("-1.5"), Want: "(-1.5)"},
		{Value: value.Float(2.5), Want: "2.5"},
		{Value: value.Boolean(false), Want: "FALSE"},
		{Value: value.ErrRef, Want: "#REF!"},
		{Value: value.Text(`a"b`), Want: `"a""b"`},
		{Value: value.Text("Nan"), Want: `"Nan"`},
		{Value: value.Text("inf"), Want: `"inf"`},
		{Value: value.Text("0x10"), Want: `"0x10"`},
	}
	for _, c := range tests {
		if got := Literal(c.Value); got != c.Want {
			t.Errorf("%v: literal mismatched! want %s, got %s", c.Value, c.Want, got)
		}
	}
}
