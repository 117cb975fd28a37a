package layout

import (
	"testing"
)

func TestColumnCodec(t *testing.T) {
	tests := []struct {
		Letters string
		Index   int64
	}{
		{Letters: "A", Index: 0},
		{Letters: "Z", Index: 25},
		{Letters: "AA", Index: 26},
		{Letters: "AZ", Index: 51},
		{Letters: "BA", Index: 52},
		{Letters: "ZZ", Index: 701},
		{Letters: "AAA", Index: 702},
		{Letters: "XFD", Index: 16383},
	}
	for _, c := range tests {
		if got := ColumnIndex(c.Letters); got != c.Index {
			t.Errorf("%s: index mismatched! want %d, got %d", c.Letters, c.Index, got)
		}
		if got := ColumnLetters(c.Index); got != c.Letters {
			t.Errorf("%d: letters mismatched! want %s, got %s", c.Index, c.Letters, got)
		}
	}
}

func TestColumnBijection(t *testing.T) {
	for n := int64(0); n < 10000; n++ {
		letters := ColumnLetters(n)
		if got := ColumnIndex(letters); got != n {
			t.Fatalf("%d: roundtrip failed (%s -> %d)", n, letters, got)
		}
		if back := ColumnLetters(ColumnIndex(letters)); back != letters {
			t.Fatalf("%s: roundtrip failed (%s)", letters, back)
		}
	}
}

func TestCellAddress(t *testing.T) {
	tests := []struct {
		Row    int64
		Col    int64
		AbsRow bool
		AbsCol bool
		Want   string
	}{
		{Row: 0, Col: 0, Want: "A1"},
		{Row: 11, Col: 1, AbsRow: true, AbsCol: true, Want: "$B$12"},
		{Row: 4, Col: 27, AbsRow: true, Want: "AB$5"},
		{Row: 4, Col: 27, AbsCol: true, Want: "$AB5"},
	}
	for _, c := range tests {
		got := CellAddress(c.Row, c.Col, c.AbsRow, c.AbsCol)
		if got != c.Want {
			t.Errorf("(%d, %d): address mismatched! want %s, got %s", c.Row, c.Col, c.Want, got)
		}
	}
}

func TestIsAddress(t *testing.T) {
	tests := []struct {
		Addr string
		Want bool
	}{
		{Addr: "A1", Want: true},
		{Addr: "XFD1048576", Want: true},
		{Addr: "A", Want: false},
		{Addr: "1", Want: false},
		{Addr: "a1", Want: false},
		{Addr: "A1B", Want: false},
		{Addr: "$A1", Want: false},
		{Addr: "", Want: false},
	}
	for _, c := range tests {
		if got := IsAddress(c.Addr); got != c.Want {
			t.Errorf("%q: want %t, got %t", c.Addr, c.Want, got)
		}
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		Addr string
		Want Position
		Fail bool
	}{
		{Addr: "A1", Want: Position{Line: 0, Column: 0}},
		{Addr: "$C$10", Want: Position{Line: 9, Column: 2}},
		{Addr: "Data!B2", Want: Position{Sheet: "Data", Line: 1, Column: 1}},
		{Addr: "'My Sheet'!AA3", Want: Position{Sheet: "My Sheet", Line: 2, Column: 26}},
		{Addr: "A", Fail: true},
		{Addr: "12", Fail: true},
		{Addr: "A1B", Fail: true},
	}
	for _, c := range tests {
		got, err := ParsePosition(c.Addr)
		if c.Fail {
			if err == nil {
				t.Errorf("%s: expected error, got %s", c.Addr, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %s", c.Addr, err)
			continue
		}
		if got != c.Want {
			t.Errorf("%s: position mismatched! want %+v, got %+v", c.Addr, c.Want, got)
		}
	}
}

func TestRangePositions(t *testing.T) {
	rg, err := ParseRange("B3:A1")
	if err != nil {
		t.Fatalf("fail to parse range: %s", err)
	}
	var got []string
	for pos := range rg.Positions() {
		got = append(got, pos.Addr())
	}
	want := []string{"A1", "B1", "A2", "B2", "A3", "B3"}
	if len(got) != len(want) {
		t.Fatalf("positions mismatched! want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d mismatched! want %s, got %s", i, want[i], got[i])
		}
	}
	if dim := rg.Dimension(); dim.Lines != 3 || dim.Columns != 2 {
		t.Errorf("dimension mismatched! got %+v", dim)
	}
}
