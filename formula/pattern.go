package formula

import (
	"regexp"
	"strconv"

	"github.com/midbel/sheetcalc/layout"
)

// refPattern matches a cell reference with an optional sheet qualifier and
// an optional second cell making it a range.
var refPattern = regexp.MustCompile(`(?:('(?:[^']|'')+'|[A-Za-z_][A-Za-z0-9_.]*)!)?(\$?)([A-Z]+)(\$?)([0-9]+)(?::(\$?)([A-Z]+)(\$?)([0-9]+))?`)

type addr struct {
	Line   int64
	Column int64
	AbsRow bool
	AbsCol bool
}

func (a addr) String() string {
	return layout.CellAddress(a.Line, a.Column, a.AbsRow, a.AbsCol)
}

type match struct {
	start int
	end   int

	sheet  string
	prefix string

	first  addr
	second *addr
}

func (m match) isRange() bool {
	return m.second != nil
}

// findReferences returns every reference of str that is not part of a
// longer word nor a function name.
func findReferences(str string) []match {
	var list []match
	for _, ix := range refPattern.FindAllStringSubmatchIndex(str, -1) {
		if !isBoundary(str, ix[0], ix[1]) {
			continue
		}
		m := match{
			start: ix[0],
			end:   ix[1],
		}
		if ix[2] >= 0 {
			m.prefix = str[ix[2]:ix[3]] + "!"
			m.sheet = layout.UnquoteSheet(str[ix[2]:ix[3]])
		}
		first, ok := decodeAddr(str, ix[4:12])
		if !ok {
			continue
		}
		m.first = first
		if ix[12] >= 0 {
			second, ok := decodeAddr(str, ix[12:20])
			if !ok {
				continue
			}
			m.second = &second
		}
		list = append(list, m)
	}
	return list
}

func decodeAddr(str string, ix []int) (addr, bool) {
	var a addr
	a.AbsCol = ix[1] > ix[0]
	a.Column = layout.ColumnIndex(str[ix[2]:ix[3]])
	a.AbsRow = ix[5] > ix[4]
	row, err := strconv.ParseInt(str[ix[6]:ix[7]], 10, 64)
	if err != nil {
		return a, false
	}
	a.Line = row - 1
	return a, true
}

func isBoundary(str string, start, end int) bool {
	if start > 0 && isWord(str[start-1]) {
		return false
	}
	if end < len(str) && (isWord(str[end]) || str[end] == '(' || str[end] == '!') {
		return false
	}
	return true
}

func isWord(c byte) bool {
	return c == '_' || c == '.' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
