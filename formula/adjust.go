package formula

import (
	"fmt"
	"strings"

	"github.com/midbel/sheetcalc/layout"
)

type Op int8

const (
	InsertRow Op = iota + 1
	DeleteRow
	InsertCol
	DeleteCol
)

func ParseOp(str string) (Op, error) {
	str = strings.ToLower(str)
	str = strings.NewReplacer("-", "", "_", "", " ", "").Replace(str)
	switch str {
	case "insertrow", "insertrows":
		return InsertRow, nil
	case "deleterow", "deleterows":
		return DeleteRow, nil
	case "insertcol", "insertcols", "insertcolumn", "insertcolumns":
		return InsertCol, nil
	case "deletecol", "deletecols", "deletecolumn", "deletecolumns":
		return DeleteCol, nil
	default:
		return 0, fmt.Errorf("%s: unknown operation: %w", str, ErrEdit)
	}
}

func (o Op) String() string {
	switch o {
	case InsertRow:
		return "insert-row"
	case DeleteRow:
		return "delete-row"
	case InsertCol:
		return "insert-col"
	case DeleteCol:
		return "delete-col"
	default:
		return "<unknown>"
	}
}

func (o Op) Insert() bool {
	return o == InsertRow || o == InsertCol
}

func (o Op) Rows() bool {
	return o == InsertRow || o == DeleteRow
}

// Edit inserts or deletes Count rows or columns starting at Index (0-based)
// on Sheet. An edit without sheet applies to every reference.
type Edit struct {
	Op    Op
	Index int64
	Count int64
	Sheet string
}

func (e Edit) Validate() error {
	switch e.Op {
	case InsertRow, DeleteRow, InsertCol, DeleteCol:
	default:
		return fmt.Errorf("unknown operation: %w", ErrEdit)
	}
	if e.Index < 0 {
		return fmt.Errorf("negative index %d: %w", e.Index, ErrEdit)
	}
	if e.Count < 1 {
		return fmt.Errorf("count should be at least 1 (got %d): %w", e.Count, ErrEdit)
	}
	return nil
}

func (e Edit) String() string {
	return fmt.Sprintf("%s(index: %d, count: %d)", e.Op, e.Index, e.Count)
}

// Applies reports whether references qualified with sheet are moved by the
// edit.
func (e Edit) Applies(sheet string) bool {
	return e.Sheet == "" || sheet == "" || strings.EqualFold(e.Sheet, sheet)
}

// Shift moves one coordinate on the axis affected by the edit. Inserts move
// absolute and relative coordinates alike; deletes leave absolute ones in
// place and break relative ones inside the deleted span. With Count > 1 every
// coordinate of the span breaks, not only the one at Index; the two rules
// only agree for single row or column deletes.
func (e Edit) Shift(coord int64, absolute bool) (int64, bool) {
	if e.Op.Insert() {
		if coord >= e.Index {
			coord += e.Count
		}
		return coord, true
	}
	if absolute {
		return coord, true
	}
	if coord >= e.Index && coord < e.Index+e.Count {
		return coord, false
	}
	if coord >= e.Index+e.Count {
		coord -= e.Count
	}
	return coord, true
}

// MoveCell gives the new position of a stored cell. Cells inside a deleted
// span are dropped.
func (e Edit) MoveCell(pos layout.Position) (layout.Position, bool) {
	coord := &pos.Column
	if e.Op.Rows() {
		coord = &pos.Line
	}
	next, ok := e.Shift(*coord, false)
	*coord = next
	return pos, ok
}

// MoveHome gives the new home of a formula. A home inside a deleted span
// stays in place: its cell is about to be dropped.
func (e Edit) MoveHome(pos layout.Position) layout.Position {
	coord := &pos.Column
	if e.Op.Rows() {
		coord = &pos.Line
	}
	switch {
	case e.Op.Insert() && *coord >= e.Index:
		*coord += e.Count
	case !e.Op.Insert() && *coord >= e.Index+e.Count:
		*coord -= e.Count
	}
	return pos
}

// Adjust rebases the references of a formula after a structural edit. The
// targets are moved according to the edit, then expressed again from the
// new home cell of the formula.
func Adjust(meta *Metadata, edit Edit) (*Metadata, error) {
	if err := edit.Validate(); err != nil {
		return nil, err
	}
	var (
		home = edit.MoveHome(meta.Home())
		res  = Metadata{
			Row:    home.Line,
			Column: home.Column,
			Parsed: meta.Parsed,
			Tokens: make([]Token, 0, len(meta.Tokens)),
		}
	)
	for _, tok := range meta.Tokens {
		switch t := tok.(type) {
		case CellRef:
			c, ok := adjustCell(t, t.Sheet, edit, meta.Row, meta.Column, home)
			if !ok {
				c = brokenCell()
			}
			res.Tokens = append(res.Tokens, c)
		case RangeRef:
			start, ok1 := adjustCell(t.Start, t.Start.Sheet, edit, meta.Row, meta.Column, home)
			end, ok2 := adjustCell(t.End, t.Start.Sheet, edit, meta.Row, meta.Column, home)
			if !ok1 || !ok2 {
				res.Tokens = append(res.Tokens, brokenCell())
				break
			}
			res.Tokens = append(res.Tokens, RangeRef{
				Start:    start,
				End:      end,
				Original: start.Original + ":" + end.Original,
			})
		default:
			res.Tokens = append(res.Tokens, tok)
		}
	}
	res.Formula = Rebuild(&res, res.Row, res.Column)
	return &res, nil
}

func adjustCell(c CellRef, sheet string, edit Edit, row, col int64, home layout.Position) (CellRef, bool) {
	if c.IsBroken() {
		return c, false
	}
	var (
		line   = c.Row(row)
		column = c.Column(col)
		ok     = true
	)
	if edit.Applies(sheet) {
		if edit.Op.Rows() {
			line, ok = edit.Shift(line, c.IsRowAbsolute)
		} else {
			column, ok = edit.Shift(column, c.IsColAbsolute)
		}
	}
	if !ok {
		return c, false
	}
	return c.rebase(line, column, home.Line, home.Column), true
}
