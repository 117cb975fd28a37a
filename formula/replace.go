package formula

import (
	"github.com/midbel/sheetcalc/layout"
)

// Match is a reference found in the text of a formula, with its literal
// coordinates.
type Match struct {
	Text  string
	Range layout.Range

	ranged bool
}

func (m Match) IsRange() bool {
	return m.ranged
}

// Position is the first corner of the reference.
func (m Match) Position() layout.Position {
	return m.Range.Starts
}

// ReplaceReferences gives the text of every reference in str to fn and
// splices the returned text in place of the reference. The reference is kept
// when fn returns false. str is a formula body, without its leading '='.
func ReplaceReferences(str string, fn func(Match) (string, bool)) string {
	list := findReferences(str)
	for i := len(list) - 1; i >= 0; i-- {
		m := list[i]
		repl, ok := fn(m.export(str))
		if !ok {
			continue
		}
		str = str[:m.start] + repl + str[m.end:]
	}
	return str
}

func (m match) export(str string) Match {
	var (
		starts = layout.Position{
			Sheet:  m.sheet,
			Line:   m.first.Line,
			Column: m.first.Column,
		}
		ends = starts
	)
	if m.second != nil {
		ends.Line = m.second.Line
		ends.Column = m.second.Column
	}
	return Match{
		Text:   str[m.start:m.end],
		Range:  layout.NewRange(starts, ends),
		ranged: m.isRange(),
	}
}
