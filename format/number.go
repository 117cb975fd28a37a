package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/midbel/sheetcalc/value"
)

// numberFormatter follows the usual spreadsheet patterns: '0' is a digit
// always written, '#' a digit written when significant, ',' in the integral
// part turns on thousands grouping and a leading '+' always shows the sign.
type numberFormatter struct {
	minInt int
	minDec int
	maxDec int

	grouping bool
	plus     bool
}

func ParseNumber(pattern string) (Formatter, error) {
	var nf numberFormatter
	if strings.HasPrefix(pattern, "+") {
		nf.plus = true
		pattern = pattern[1:]
	}
	left, right, _ := strings.Cut(pattern, ".")
	if left == "" {
		return nil, fmt.Errorf("%q: missing integral part: %w", pattern, ErrPattern)
	}
	for i := len(left) - 1; i >= 0; i-- {
		switch left[i] {
		case ',':
			nf.grouping = true
		case '0':
			nf.minInt++
		case '#':
		default:
			return nil, fmt.Errorf("%q: unexpected %c in integral part: %w", pattern, left[i], ErrPattern)
		}
	}
	optional := false
	for i := 0; i < len(right); i++ {
		switch right[i] {
		case '0':
			if optional {
				return nil, fmt.Errorf("%q: '0' after '#' in fractional part: %w", pattern, ErrPattern)
			}
			nf.minDec++
		case '#':
			optional = true
		default:
			return nil, fmt.Errorf("%q: unexpected %c in fractional part: %w", pattern, right[i], ErrPattern)
		}
		nf.maxDec++
	}
	return nf, nil
}

func (nf numberFormatter) Format(v value.Value) (string, error) {
	f, ok := v.(value.Float)
	if !ok {
		return "", value.ErrCast
	}
	var (
		num  = float64(f)
		neg  = math.Signbit(num) && num != 0
		str  = strconv.FormatFloat(math.Abs(num), 'f', nf.maxDec, 64)
		buf  strings.Builder
		left string
		frac string
	)
	left, frac, _ = strings.Cut(str, ".")
	for len(frac) > nf.minDec && strings.HasSuffix(frac, "0") {
		frac = frac[:len(frac)-1]
	}
	if left == "0" && nf.minInt == 0 && frac != "" {
		left = ""
	}
	if n := nf.minInt - len(left); n > 0 {
		left = strings.Repeat("0", n) + left
	}
	if nf.grouping {
		left = group(left)
	}
	switch {
	case neg:
		buf.WriteByte('-')
	case nf.plus:
		buf.WriteByte('+')
	}
	buf.WriteString(left)
	if frac != "" {
		buf.WriteByte('.')
		buf.WriteString(frac)
	}
	return buf.String(), nil
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var (
		buf  strings.Builder
		head = len(digits) % 3
	)
	if head > 0 {
		buf.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if buf.Len() > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(digits[i : i+3])
	}
	return buf.String()
}
