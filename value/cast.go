package value

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var ErrCast = errors.New("value can not be casted")

func True(val Value) bool {
	switch v := val.(type) {
	case Boolean:
		return bool(v)
	case Float:
		return v != 0
	case Text:
		return strings.EqualFold(string(v), "true")
	default:
		return false
	}
}

func CastToFloat(val Value) (Float, error) {
	switch v := val.(type) {
	case Float:
		return v, nil
	case Blank, nil:
		return 0, nil
	case Boolean:
		if v {
			return 1, nil
		}
		return 0, nil
	case Text:
		if v == "" {
			return 0, nil
		}
		n, ok := ParseNumber(string(v))
		if !ok {
			return 0, ErrCast
		}
		return Float(n), nil
	default:
		return 0, ErrCast
	}
}

func CastToText(val Value) (Text, error) {
	switch v := val.(type) {
	case Text:
		return v, nil
	case Blank, nil:
		return "", nil
	case Float, Boolean:
		return Text(v.String()), nil
	default:
		return "", ErrCast
	}
}

// Number coerces a value for aggregate arguments: anything that is not a
// number or numeric text counts as 0.
func Number(val Value) float64 {
	switch v := val.(type) {
	case Float:
		return float64(v)
	case Text:
		if n, ok := ParseNumber(string(v)); ok {
			return n
		}
	}
	return 0
}

// ParseNumber only accepts finite decimal numbers, with an optional sign and
// exponent: NaN, Inf and hexadecimal forms are text.
func ParseNumber(str string) (float64, bool) {
	str = strings.TrimSpace(str)
	if str == "" || strings.IndexFunc(str, isNotDecimal) >= 0 {
		return 0, false
	}
	n, err := strconv.ParseFloat(str, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func isNotDecimal(c rune) bool {
	switch {
	case c >= '0' && c <= '9':
	case c == '.' || c == '+' || c == '-' || c == 'e' || c == 'E':
	default:
		return true
	}
	return false
}

// Infer turns raw cell text into a value: blank, number, known error code or
// text.
func Infer(str string) Value {
	if str == "" {
		return Blank{}
	}
	if n, ok := ParseNumber(str); ok {
		return Float(n)
	}
	if e, ok := LookupError(str); ok {
		return e
	}
	return Text(str)
}
