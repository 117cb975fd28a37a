package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrAddress = errors.New("invalid cell address")

// Position identifies a cell. Line and Column are 0-based; the textual
// form produced by Addr is the usual 1-based A1 notation.
type Position struct {
	Sheet  string
	Line   int64
	Column int64
}

func NewPosition(line, column int64) Position {
	return Position{
		Line:   line,
		Column: column,
	}
}

// ParsePosition decodes an address such as A1, $B$12 or Sheet1!C3. Absolute
// markers are accepted and dropped.
func ParsePosition(addr string) (Position, error) {
	var pos Position
	if ix := strings.LastIndexByte(addr, '!'); ix >= 0 {
		pos.Sheet = UnquoteSheet(addr[:ix])
		addr = addr[ix+1:]
	}
	addr = strings.ReplaceAll(addr, "$", "")
	if !IsAddress(addr) {
		return pos, fmt.Errorf("%s: %w", addr, ErrAddress)
	}
	letters, offset := ParseIndex(addr)
	row, err := strconv.ParseInt(addr[offset:], 10, 64)
	if err != nil {
		return pos, fmt.Errorf("%s: %w", addr, ErrAddress)
	}
	pos.Column = ColumnIndex(letters)
	pos.Line = row - 1
	return pos, nil
}

func (p Position) Equal(other Position) bool {
	return p.Line == other.Line && p.Column == other.Column
}

func (p Position) Addr() string {
	var parts []string
	if p.Sheet != "" {
		parts = append(parts, QuoteSheet(p.Sheet))
		parts = append(parts, "!")
	}
	parts = append(parts, CellAddress(p.Line, p.Column, false, false))
	return strings.Join(parts, "")
}

func (p Position) String() string {
	return p.Addr()
}

// Offset returns the position moved by the given number of lines and columns.
func (p Position) Offset(lines, columns int64) Position {
	p.Line += lines
	p.Column += columns
	return p
}

// CellAddress renders a 0-based coordinate in A1 notation, with a '$' in
// front of each absolute axis.
func CellAddress(row, col int64, absRow, absCol bool) string {
	var buf strings.Builder
	if absCol {
		buf.WriteByte('$')
	}
	buf.WriteString(ColumnLetters(col))
	if absRow {
		buf.WriteByte('$')
	}
	buf.WriteString(strconv.FormatInt(row+1, 10))
	return buf.String()
}

// ColumnIndex decodes uppercase column letters with bijective base 26:
// A is 0, Z is 25, AA is 26.
func ColumnIndex(letters string) int64 {
	var index int64
	for i := 0; i < len(letters); i++ {
		index = index*26 + int64(letters[i]-'A'+1)
	}
	return index - 1
}

// ColumnLetters is the inverse of ColumnIndex.
func ColumnLetters(ix int64) string {
	if ix < 0 {
		return ""
	}
	var (
		buf [16]byte
		pos = len(buf)
	)
	for ix++; ix > 0; ix /= 26 {
		ix--
		pos--
		buf[pos] = byte('A' + ix%26)
	}
	return string(buf[pos:])
}

func IsAddress(addr string) bool {
	size := len(addr)
	if size < 2 {
		return false
	}
	var offset int
	for offset < size && isUpper(rune(addr[offset])) {
		offset++
	}
	if offset == 0 || offset >= size {
		return false
	}
	for offset < size {
		c := addr[offset]
		if c < '0' || c > '9' {
			return false
		}
		offset++
	}
	return offset == size
}

// ParseIndex returns the leading run of letters of str and its length.
func ParseIndex(str string) (string, int) {
	var offset int
	for offset < len(str) && isLetter(rune(str[offset])) {
		offset++
	}
	return strings.ToUpper(str[:offset]), offset
}

// QuoteSheet wraps a sheet name in single quotes when it can not be written
// bare in a formula.
func QuoteSheet(name string) string {
	for _, c := range name {
		if !isLetter(c) && !isDigit(c) && c != '_' && c != '.' {
			return "'" + strings.ReplaceAll(name, "'", "''") + "'"
		}
	}
	return name
}

// UnquoteSheet is the inverse of QuoteSheet.
func UnquoteSheet(name string) string {
	if n := len(name); n >= 2 && name[0] == '\'' && name[n-1] == '\'' {
		return strings.ReplaceAll(name[1:n-1], "''", "'")
	}
	return name
}

func isLower(c rune) bool {
	return c >= 'a' && c <= 'z'
}

func isUpper(c rune) bool {
	return c >= 'A' && c <= 'Z'
}

func isLetter(c rune) bool {
	return isLower(c) || isUpper(c)
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}
