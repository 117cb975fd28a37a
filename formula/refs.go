package formula

import (
	"strings"

	"github.com/xuri/efp"

	"github.com/midbel/sheetcalc/layout"
)

// Reference is a cell targeted by a formula, with the absolute state of each
// axis as written.
type Reference struct {
	Sheet string
	Row   int64
	Col   int64

	IsRowAbsolute bool
	IsColAbsolute bool
}

func (r Reference) Position() layout.Position {
	return layout.Position{
		Sheet:  r.Sheet,
		Line:   r.Row,
		Column: r.Col,
	}
}

func (r Reference) String() string {
	str := layout.CellAddress(r.Row, r.Col, r.IsRowAbsolute, r.IsColAbsolute)
	if r.Sheet != "" {
		str = layout.QuoteSheet(r.Sheet) + "!" + str
	}
	return str
}

// ExtractReferences lists the references of a formula in order of
// appearance. A range gives its two corners. Text inside string literals is
// never reported.
func ExtractReferences(text string) []Reference {
	if !IsFormula(text) {
		return nil
	}
	var (
		ps   = efp.ExcelParser()
		list []Reference
	)
	for _, tok := range ps.Parse(text[1:]) {
		if tok.TType != efp.TokenTypeOperand || tok.TSubType != efp.TokenSubTypeRange {
			continue
		}
		list = append(list, decodeOperand(tok.TValue)...)
	}
	return list
}

func decodeOperand(str string) []Reference {
	var sheet string
	if ix := strings.LastIndexByte(str, '!'); ix >= 0 {
		sheet = layout.UnquoteSheet(str[:ix])
		str = str[ix+1:]
	}
	var list []Reference
	for _, part := range strings.Split(str, ":") {
		ref, ok := decodeReference(part)
		if !ok {
			return nil
		}
		ref.Sheet = sheet
		list = append(list, ref)
	}
	return list
}

func decodeReference(str string) (Reference, bool) {
	var ref Reference
	pos, err := layout.ParsePosition(str)
	if err != nil {
		return ref, false
	}
	ref.Row = pos.Line
	ref.Col = pos.Column
	ref.IsColAbsolute = strings.HasPrefix(str, "$")
	ref.IsRowAbsolute = strings.Contains(strings.TrimPrefix(str, "$"), "$")
	return ref, true
}
