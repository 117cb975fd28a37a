package formula

import (
	"errors"
	"testing"
)

func TestAdjust(t *testing.T) {
	tests := []struct {
		Formula string
		Row     int64
		Col     int64
		Edit    Edit
		Want    string
		WantRow int64
		WantCol int64
	}{
		{
			Formula: "=A1+B2",
			Row:     5,
			Col:     5,
			Edit:    Edit{Op: DeleteRow, Index: 0, Count: 1},
			Want:    "=#REF!+B1",
			WantRow: 4,
			WantCol: 5,
		},
		{
			Formula: "=A1+B1",
			Row:     5,
			Col:     5,
			Edit:    Edit{Op: DeleteRow, Index: 0, Count: 1},
			Want:    "=#REF!+#REF!",
			WantRow: 4,
			WantCol: 5,
		},
		{
			// absolute axes are moved by inserts too
			Formula: "=$A$1+A1",
			Row:     5,
			Col:     5,
			Edit:    Edit{Op: InsertRow, Index: 0, Count: 1},
			Want:    "=$A$2+A2",
			WantRow: 6,
			WantCol: 5,
		},
		{
			Formula: "=$A$1+B5",
			Row:     9,
			Col:     9,
			Edit:    Edit{Op: DeleteRow, Index: 0, Count: 1},
			Want:    "=$A$1+B4",
			WantRow: 8,
			WantCol: 9,
		},
		{
			Formula: "=SUM(A1:A3)",
			Row:     5,
			Col:     0,
			Edit:    Edit{Op: DeleteRow, Index: 2, Count: 1},
			Want:    "=SUM(#REF!)",
			WantRow: 4,
			WantCol: 0,
		},
		{
			Formula: "=SUM(A1:A3)",
			Row:     5,
			Col:     0,
			Edit:    Edit{Op: InsertCol, Index: 0, Count: 1},
			Want:    "=SUM(B1:B3)",
			WantRow: 5,
			WantCol: 1,
		},
		{
			Formula: "=A5+A2",
			Row:     0,
			Col:     1,
			Edit:    Edit{Op: DeleteRow, Index: 1, Count: 3},
			Want:    "=A2+#REF!",
			WantRow: 0,
			WantCol: 1,
		},
		{
			Formula: "=C1*$C$1+D1",
			Row:     0,
			Col:     0,
			Edit:    Edit{Op: DeleteCol, Index: 2, Count: 1},
			Want:    "=#REF!*$C$1+C1",
			WantRow: 0,
			WantCol: 0,
		},
		{
			Formula: "=Other!A5+A5",
			Row:     0,
			Col:     1,
			Edit:    Edit{Op: InsertRow, Index: 0, Count: 1, Sheet: "Main"},
			Want:    "=Other!A5+A6",
			WantRow: 1,
			WantCol: 1,
		},
		{
			Formula: "=main!A5+A5",
			Row:     0,
			Col:     1,
			Edit:    Edit{Op: InsertRow, Index: 0, Count: 2, Sheet: "Main"},
			Want:    "=main!A7+A7",
			WantRow: 2,
			WantCol: 1,
		},
	}
	for _, c := range tests {
		meta, err := Parse(c.Formula, c.Row, c.Col)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", c.Formula, err)
			continue
		}
		got, err := Adjust(meta, c.Edit)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", c.Formula, err)
			continue
		}
		if got.Formula != c.Want {
			t.Errorf("%s %s: formula mismatched! want %s, got %s", c.Formula, c.Edit, c.Want, got.Formula)
		}
		if got.Row != c.WantRow || got.Column != c.WantCol {
			t.Errorf("%s %s: home mismatched! want (%d, %d), got (%d, %d)", c.Formula, c.Edit, c.WantRow, c.WantCol, got.Row, got.Column)
		}
		if re := Rebuild(got, got.Row, got.Column); re != got.Formula {
			t.Errorf("%s %s: adjusted tokens not consistent! %s != %s", c.Formula, c.Edit, re, got.Formula)
		}
	}
}

func TestAdjustOriginal(t *testing.T) {
	meta, _ := Parse("=B2+SUM(A1:A3)", 4, 4)
	got, err := Adjust(meta, Edit{Op: InsertRow, Index: 1, Count: 2})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	cell, ok := got.Tokens[0].(CellRef)
	if !ok || cell.Original != "B4" {
		t.Errorf("cell text should be B4, got %#v", got.Tokens[0])
	}
	rg, ok := got.Tokens[2].(RangeRef)
	if !ok || rg.Original != "A1:A5" {
		t.Errorf("range text should be A1:A5, got %#v", got.Tokens[2])
	}
}

func TestAdjustNoop(t *testing.T) {
	tests := []string{
		"=SUM(A1:C3)+$D$4",
		"=A1*2",
		"=Data!B2&\"x\"",
	}
	edits := []Edit{
		{Op: InsertRow, Index: 100, Count: 1},
		{Op: DeleteRow, Index: 100, Count: 5},
		{Op: InsertCol, Index: 50, Count: 3},
		{Op: DeleteCol, Index: 50, Count: 1},
	}
	for _, f := range tests {
		meta, err := Parse(f, 5, 5)
		if err != nil {
			t.Fatalf("%s: unexpected error: %s", f, err)
		}
		for _, e := range edits {
			got, err := Adjust(meta, e)
			if err != nil {
				t.Errorf("%s: unexpected error: %s", f, err)
				continue
			}
			if got.Formula != f {
				t.Errorf("%s %s: formula should be unchanged, got %s", f, e, got.Formula)
			}
			if got.Row != 5 || got.Column != 5 {
				t.Errorf("%s %s: home should be unchanged, got (%d, %d)", f, e, got.Row, got.Column)
			}
			if txt := AdjustText(f, e); txt != f {
				t.Errorf("%s %s: text should be unchanged, got %s", f, e, txt)
			}
		}
	}
}

func TestAdjustInvalid(t *testing.T) {
	meta, _ := Parse("=A1", 0, 0)
	edits := []Edit{
		{Op: InsertRow, Index: 0, Count: 0},
		{Op: DeleteCol, Index: -1, Count: 1},
		{Index: 0, Count: 1},
	}
	for _, e := range edits {
		if _, err := Adjust(meta, e); !errors.Is(err, ErrEdit) {
			t.Errorf("%s: expected ErrEdit, got %v", e, err)
		}
		if got := AdjustText("=A1", e); got != "=A1" {
			t.Errorf("%s: invalid edit should leave text unchanged, got %s", e, got)
		}
	}
}

func TestAdjustText(t *testing.T) {
	tests := []struct {
		Formula string
		Edit    Edit
		Want    string
	}{
		{Formula: "=A1+B2", Edit: Edit{Op: DeleteRow, Index: 0, Count: 1}, Want: "=#REF!+B1"},
		{Formula: "=$A$1+A1", Edit: Edit{Op: InsertRow, Index: 0, Count: 1}, Want: "=$A$2+A2"},
		{Formula: "=SUM(A1:A3)*B9", Edit: Edit{Op: DeleteRow, Index: 1, Count: 1}, Want: "=SUM(A1:A2)*B8"},
		{Formula: "=SUM(A1:A3)*B9", Edit: Edit{Op: DeleteRow, Index: 0, Count: 1}, Want: "=SUM(#REF!)*B8"},
		{Formula: "=SUM(A1:C1)", Edit: Edit{Op: InsertCol, Index: 1, Count: 2}, Want: "=SUM(A1:E1)"},
		{Formula: "=LOG10(A10)", Edit: Edit{Op: InsertRow, Index: 0, Count: 1}, Want: "=LOG10(A11)"},
		{Formula: "='My Sheet'!A1+A1", Edit: Edit{Op: InsertRow, Index: 0, Count: 1, Sheet: "Other"}, Want: "='My Sheet'!A1+A2"},
		{Formula: "plain A1", Edit: Edit{Op: InsertRow, Index: 0, Count: 1}, Want: "plain A1"},
	}
	for _, c := range tests {
		if got := AdjustText(c.Formula, c.Edit); got != c.Want {
			t.Errorf("%s %s: text mismatched! want %s, got %s", c.Formula, c.Edit, c.Want, got)
		}
	}
}

func TestAdjustPathsAgree(t *testing.T) {
	formulas := []string{
		"=A1+B2*$C$3",
		"=SUM(A1:D4)-$B2+C$7",
		"=IF(E5>0,F6,G7)",
		"=AVERAGE(B2:B9,$D$1:$D$3)",
	}
	edits := []Edit{
		{Op: InsertRow, Index: 0, Count: 1},
		{Op: InsertRow, Index: 3, Count: 2},
		{Op: DeleteRow, Index: 1, Count: 1},
		{Op: DeleteRow, Index: 5, Count: 2},
		{Op: InsertCol, Index: 2, Count: 1},
		{Op: DeleteCol, Index: 0, Count: 1},
		{Op: DeleteCol, Index: 2, Count: 3},
	}
	for _, f := range formulas {
		meta, err := Parse(f, 10, 10)
		if err != nil {
			t.Fatalf("%s: unexpected error: %s", f, err)
		}
		for _, e := range edits {
			got, err := Adjust(meta, e)
			if err != nil {
				t.Errorf("%s %s: unexpected error: %s", f, e, err)
				continue
			}
			if txt := AdjustText(f, e); txt != got.Formula {
				t.Errorf("%s %s: paths disagree! token: %s, text: %s", f, e, got.Formula, txt)
			}
		}
	}
}

func TestParseOp(t *testing.T) {
	tests := []struct {
		Input string
		Want  Op
	}{
		{Input: "insert-row", Want: InsertRow},
		{Input: "deleteRow", Want: DeleteRow},
		{Input: "INSERT_COL", Want: InsertCol},
		{Input: "delete-columns", Want: DeleteCol},
	}
	for _, c := range tests {
		got, err := ParseOp(c.Input)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", c.Input, err)
			continue
		}
		if got != c.Want {
			t.Errorf("%s: op mismatched! want %s, got %s", c.Input, c.Want, got)
		}
	}
	if _, err := ParseOp("rotate"); !errors.Is(err, ErrEdit) {
		t.Errorf("expected ErrEdit, got %v", err)
	}
}

func TestExtractReferences(t *testing.T) {
	refs := ExtractReferences(`=SUM(A1:B2)+$C$3*Data!D4+"E5"`)
	want := []string{"A1", "B2", "$C$3", "Data!D4"}
	if len(refs) != len(want) {
		t.Fatalf("number of references mismatched! want %d, got %d (%v)", len(want), len(refs), refs)
	}
	for i := range want {
		if got := refs[i].String(); got != want[i] {
			t.Errorf("reference %d mismatched! want %s, got %s", i, want[i], got)
		}
	}
	if !refs[2].IsRowAbsolute || !refs[2].IsColAbsolute {
		t.Errorf("$C$3 should be absolute on both axes")
	}
	if refs[1].Row != 1 || refs[1].Col != 1 {
		t.Errorf("B2 coordinates mismatched! got (%d, %d)", refs[1].Row, refs[1].Col)
	}
	if got := ExtractReferences("A1"); len(got) != 0 {
		t.Errorf("plain text should not have references, got %v", got)
	}
}
