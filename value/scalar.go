package value

import (
	"errors"
	"strconv"
	"strings"
)

var ErrCompatible = errors.New("incompatible type")

type Blank struct{}

func Empty() ScalarValue {
	return Blank{}
}

func (Blank) Type() string {
	return TypeBlank
}

func (Blank) Kind() ValueKind {
	return KindScalar
}

func (Blank) String() string {
	return ""
}

func (Blank) Scalar() any {
	return nil
}

func (Blank) Equal(other Value) (bool, error) {
	switch x := other.(type) {
	case Blank:
		return true, nil
	case Text:
		return x == "", nil
	case Float:
		return x == 0, nil
	case Boolean:
		return !bool(x), nil
	default:
		return false, ErrCompatible
	}
}

func (b Blank) Less(other Value) (bool, error) {
	ok, err := b.Equal(other)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

type Float float64

func (Float) Type() string {
	return TypeNumber
}

func (Float) Kind() ValueKind {
	return KindScalar
}

func (f Float) String() string {
	return strconv.FormatFloat(float64(f), 'f', -1, 64)
}

func (f Float) Scalar() any {
	return float64(f)
}

func (f Float) Equal(other Value) (bool, error) {
	x, err := CastToFloat(other)
	if err != nil {
		return false, ErrCompatible
	}
	return float64(f) == float64(x), nil
}

func (f Float) Less(other Value) (bool, error) {
	x, err := CastToFloat(other)
	if err != nil {
		return false, ErrCompatible
	}
	return float64(f) < float64(x), nil
}

type Text string

func (Text) Type() string {
	return TypeText
}

func (Text) Kind() ValueKind {
	return KindScalar
}

func (t Text) String() string {
	return string(t)
}

func (t Text) Scalar() any {
	return string(t)
}

func (t Text) Equal(other Value) (bool, error) {
	switch x := other.(type) {
	case Text:
		return strings.EqualFold(string(t), string(x)), nil
	case Blank:
		return t == "", nil
	default:
		return false, ErrCompatible
	}
}

func (t Text) Less(other Value) (bool, error) {
	x, ok := other.(Text)
	if !ok {
		return false, ErrCompatible
	}
	return strings.ToLower(string(t)) < strings.ToLower(string(x)), nil
}

type Boolean bool

func (Boolean) Type() string {
	return TypeBool
}

func (Boolean) Kind() ValueKind {
	return KindScalar
}

func (b Boolean) String() string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func (b Boolean) Scalar() any {
	return bool(b)
}

func (b Boolean) Equal(other Value) (bool, error) {
	x, ok := other.(Boolean)
	if !ok {
		return false, ErrCompatible
	}
	return bool(b) == bool(x), nil
}

func (b Boolean) Less(other Value) (bool, error) {
	x, ok := other.(Boolean)
	if !ok {
		return false, ErrCompatible
	}
	return !bool(b) && bool(x), nil
}
