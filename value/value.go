package value

import (
	"fmt"
)

const (
	TypeBlank  = "blank"
	TypeNumber = "number"
	TypeText   = "text"
	TypeBool   = "boolean"
	TypeError  = "error"
)

type ValueKind int8

const (
	KindScalar ValueKind = 1 << iota
	KindError
)

type Value interface {
	Kind() ValueKind
	Type() string
	fmt.Stringer
}

type ScalarValue interface {
	Value
	Scalar() any
}

type Comparable interface {
	Equal(Value) (bool, error)
	Less(Value) (bool, error)
}

func IsScalar(v Value) bool {
	return v != nil && v.Kind() == KindScalar
}

func IsError(v Value) bool {
	return v != nil && v.Kind() == KindError
}

func IsNumber(v Value) bool {
	_, ok := v.(Float)
	return ok
}

func IsBlank(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Blank)
	return ok
}
