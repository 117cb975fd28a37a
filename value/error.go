package value

import (
	"slices"
	"strings"
)

var (
	ErrNull     = createError("#NULL!")
	ErrDiv0     = createError("#DIV/0!")
	ErrValue    = createError("#VALUE!")
	ErrRef      = createError("#REF!")
	ErrName     = createError("#NAME?")
	ErrNum      = createError("#NUM!")
	ErrNA       = createError("#N/A")
	ErrCircular = createError("#CIRCULAR!")
	ErrGeneric  = createError("#ERROR!")
)

var knownErrors = []Error{
	ErrNull,
	ErrDiv0,
	ErrValue,
	ErrRef,
	ErrName,
	ErrNum,
	ErrNA,
	ErrCircular,
	ErrGeneric,
}

// Error is a spreadsheet error code. It occupies a cell value slot like any
// other value and doubles as a Go error. The zero Error means no error.
type Error struct {
	code string
}

func createError(code string) Error {
	return Error{
		code: code,
	}
}

// ErrorCode returns the known error for code, or an Error carrying code
// unchanged if it looks like one (leading '#').
func ErrorCode(code string) (Error, bool) {
	for _, e := range knownErrors {
		if e.code == code {
			return e, true
		}
	}
	if IsErrorCode(code) {
		return createError(code), true
	}
	return Error{}, false
}

func IsErrorCode(str string) bool {
	return strings.HasPrefix(str, "#") && len(str) > 1
}

// LookupError only recognizes the codes produced by spreadsheets.
func LookupError(code string) (Error, bool) {
	for _, e := range knownErrors {
		if e.code == code {
			return e, true
		}
	}
	return Error{}, false
}

func (Error) Type() string {
	return TypeError
}

func (Error) Kind() ValueKind {
	return KindError
}

func (e Error) Code() string {
	return e.code
}

func (e Error) IsZero() bool {
	return e.code == ""
}

func (e Error) Error() string {
	return e.code
}

func (e Error) String() string {
	return e.code
}

func (e Error) Scalar() any {
	return e.code
}

// KnownErrors lists the error codes a spreadsheet can produce.
func KnownErrors() []Error {
	return slices.Clone(knownErrors)
}
