package formula

import (
	"fmt"

	"github.com/midbel/sheetcalc/layout"
)

// Parse splits a formula living at row, col into text fragments and
// references. References inside string literals are not told apart from
// real ones.
func Parse(text string, row, col int64) (*Metadata, error) {
	if !IsFormula(text) {
		return nil, fmt.Errorf("%q: %w", text, ErrNotFormula)
	}
	meta := Metadata{
		Formula: text,
		Row:     row,
		Column:  col,
		Parsed:  true,
	}
	var (
		body = text[1:]
		last int
	)
	for _, m := range findReferences(body) {
		if m.start > last {
			meta.Tokens = append(meta.Tokens, Text{Value: body[last:m.start]})
		}
		meta.Tokens = append(meta.Tokens, m.token(row, col))
		last = m.end
	}
	if last < len(body) {
		meta.Tokens = append(meta.Tokens, Text{Value: body[last:]})
	}
	return &meta, nil
}

// Rebuild renders the formula as if it lived at row, col.
func Rebuild(meta *Metadata, row, col int64) string {
	buf := []byte{'='}
	for _, t := range meta.Tokens {
		buf = append(buf, t.Render(row, col)...)
	}
	return string(buf)
}

// Relocate moves a formula from one cell to another: relative axes follow
// the formula, absolute axes stay where they are.
func Relocate(text string, from, to layout.Position) (string, error) {
	meta, err := Parse(text, from.Line, from.Column)
	if err != nil {
		return "", err
	}
	return Rebuild(meta, to.Line, to.Column), nil
}

func (m match) token(row, col int64) Token {
	start := m.cell(m.first, row, col, true)
	if !m.isRange() {
		return start
	}
	end := m.cell(*m.second, row, col, false)
	return RangeRef{
		Start:    start,
		End:      end,
		Original: start.Original + ":" + end.Original,
	}
}

// cell builds the reference for one corner of the match. Only the first
// corner carries the sheet qualifier.
func (m match) cell(a addr, row, col int64, qualified bool) CellRef {
	c := CellRef{
		IsRowAbsolute: a.AbsRow,
		IsColAbsolute: a.AbsCol,
	}
	if qualified {
		c.Sheet = m.sheet
		c.prefix = m.prefix
	}
	if a.AbsRow {
		c.AbsRow = a.Line
	} else {
		c.RowOffset = a.Line - row
	}
	if a.AbsCol {
		c.AbsCol = a.Column
	} else {
		c.ColOffset = a.Column - col
	}
	c.Original = c.Render(row, col)
	return c
}
