// Package calc evaluates literal spreadsheet expressions: numbers, strings,
// booleans, error codes, operators and function calls. Cell references must
// have been substituted before an expression reaches this package.
package calc

import (
	"errors"

	"github.com/midbel/sheetcalc/value"
)

// Evaluator computes a literal expression. A nil error means the returned
// value is usable; otherwise the value is nil.
type Evaluator interface {
	Evaluate(expr string) (value.Value, *value.Error)
}

type Native struct {
	env *Env
}

func NewNative() *Native {
	return &Native{
		env: Default(),
	}
}

func (n *Native) Define(name string, fn Builtin) {
	n.env.Define(name, fn)
}

func (n *Native) Evaluate(str string) (value.Value, *value.Error) {
	expr, err := Parse(str)
	if err != nil {
		return nil, Failure(value.ErrGeneric)
	}
	res := Eval(expr, n.env)
	if e, ok := res.(value.Error); ok {
		return nil, &e
	}
	return res, nil
}

// Failure turns a value into the error half of an evaluation result. Values
// that are not spreadsheet errors yield #ERROR!.
func Failure(v value.Value) *value.Error {
	e, ok := v.(value.Error)
	if !ok || e.IsZero() {
		e = value.ErrGeneric
	}
	return &e
}

// IsSyntax reports whether err comes from scanning or parsing.
func IsSyntax(err error) bool {
	return errors.Is(err, ErrSyntax)
}
