package formula

import (
	"errors"
	"strings"

	"github.com/midbel/sheetcalc/layout"
)

var (
	ErrNotFormula = errors.New("text is not a formula")
	ErrEdit       = errors.New("invalid structural edit")
)

const brokenRef = "#REF!"

// Token is one fragment of a parsed formula. Render gives its text for a
// formula whose home cell is at row, col.
type Token interface {
	Render(row, col int64) string
	isToken()
}

// Text is copied verbatim between references: operators, function names,
// parenthesis, string literals.
type Text struct {
	Value string
}

func (t Text) Render(_, _ int64) string {
	return t.Value
}

func (Text) isToken() {}

// CellRef is one reference to a single cell. Each axis is either absolute
// (AbsRow, AbsCol) or relative to the home cell of the formula (RowOffset,
// ColOffset). A CellRef with Original set to #REF! is broken: it has no
// coordinate anymore.
type CellRef struct {
	Sheet string

	RowOffset int64
	ColOffset int64
	AbsRow    int64
	AbsCol    int64

	IsRowAbsolute bool
	IsColAbsolute bool

	Original string

	// sheet qualifier as written in the formula, quotes included
	prefix string
}

func brokenCell() CellRef {
	return CellRef{
		Original: brokenRef,
	}
}

func (c CellRef) IsBroken() bool {
	return c.Original == brokenRef
}

func (c CellRef) Row(home int64) int64 {
	if c.IsRowAbsolute {
		return c.AbsRow
	}
	return home + c.RowOffset
}

func (c CellRef) Column(home int64) int64 {
	if c.IsColAbsolute {
		return c.AbsCol
	}
	return home + c.ColOffset
}

// Position returns the cell targeted by the reference for a formula living
// at row, col.
func (c CellRef) Position(row, col int64) layout.Position {
	return layout.Position{
		Sheet:  c.Sheet,
		Line:   c.Row(row),
		Column: c.Column(col),
	}
}

func (c CellRef) Render(row, col int64) string {
	if c.IsBroken() {
		return brokenRef
	}
	var (
		line   = c.Row(row)
		column = c.Column(col)
	)
	if line < 0 || column < 0 {
		return brokenRef
	}
	return c.qualifier() + layout.CellAddress(line, column, c.IsRowAbsolute, c.IsColAbsolute)
}

func (CellRef) isToken() {}

func (c CellRef) qualifier() string {
	if c.prefix != "" {
		return c.prefix
	}
	if c.Sheet == "" {
		return ""
	}
	return layout.QuoteSheet(c.Sheet) + "!"
}

// rebase keeps the target of the reference and expresses its relative axes
// from a new home cell.
func (c CellRef) rebase(line, column, row, col int64) CellRef {
	if c.IsRowAbsolute {
		c.AbsRow = line
	} else {
		c.RowOffset = line - row
	}
	if c.IsColAbsolute {
		c.AbsCol = column
	} else {
		c.ColOffset = column - col
	}
	c.Original = c.Render(row, col)
	return c
}

// RangeRef is a rectangle given by two corners, in the order they were
// written.
type RangeRef struct {
	Start CellRef
	End   CellRef

	Original string
}

func (r RangeRef) Render(row, col int64) string {
	var (
		start = r.Start.Render(row, col)
		end   = r.End.Render(row, col)
	)
	if start == brokenRef || end == brokenRef {
		return brokenRef
	}
	return start + ":" + end
}

// Range returns the normalized rectangle targeted by the reference.
func (r RangeRef) Range(row, col int64) layout.Range {
	var (
		starts = r.Start.Position(row, col)
		ends   = r.End.Position(row, col)
	)
	ends.Sheet = starts.Sheet
	return layout.NewRange(starts, ends).Normalize()
}

func (RangeRef) isToken() {}

// Metadata is the parsed form of a formula living at Row, Column.
type Metadata struct {
	Formula string
	Row     int64
	Column  int64
	Tokens  []Token
	Parsed  bool
}

func (m *Metadata) Home() layout.Position {
	return layout.NewPosition(m.Row, m.Column)
}

// Cells lists the single cell references of the formula, range corners
// excluded.
func (m *Metadata) Cells() []CellRef {
	var list []CellRef
	for _, t := range m.Tokens {
		if c, ok := t.(CellRef); ok && !c.IsBroken() {
			list = append(list, c)
		}
	}
	return list
}

func (m *Metadata) Ranges() []RangeRef {
	var list []RangeRef
	for _, t := range m.Tokens {
		if r, ok := t.(RangeRef); ok {
			list = append(list, r)
		}
	}
	return list
}

func IsFormula(text string) bool {
	return strings.HasPrefix(text, "=")
}
