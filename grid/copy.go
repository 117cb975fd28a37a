package grid

import (
	"fmt"

	"github.com/midbel/sheetcalc/formula"
	"github.com/midbel/sheetcalc/layout"
)

type CopyMode int

const (
	CopyValue CopyMode = 1 << iota
	CopyFormula
	CopyAll = CopyValue | CopyFormula
)

func CopyModeFromString(str string) (CopyMode, error) {
	var mode CopyMode
	switch str {
	case "value":
		mode |= CopyValue
	case "formula":
		mode |= CopyFormula
	case "", "all":
		mode |= CopyAll
	default:
		return mode, fmt.Errorf("%s invalid value for copy mode", str)
	}
	return mode, nil
}

// Copy writes the content of from into to. Formulas are relocated when mode
// includes CopyFormula, otherwise the computed value is written.
func (s *Sheet) Copy(from, to layout.Position, mode CopyMode) error {
	text := s.store.RawText(from)
	if formula.IsFormula(text) {
		if mode&CopyFormula != 0 {
			return s.CopyFormula(from, to)
		}
		text = s.DisplayValue(from).String()
	} else if mode&CopyValue == 0 {
		return fmt.Errorf("%s: %w", from.Addr(), formula.ErrNotFormula)
	}
	s.SetValue(to, text)
	return nil
}
