package calc

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/midbel/sheetcalc/value"
)

var ErrUndefined = errors.New("undefined identifier")

type Builtin func(args []value.Value) value.Value

// Env holds the functions a literal expression can call. Names are case
// insensitive.
type Env struct {
	values map[string]Builtin
}

func Empty() *Env {
	env := Env{
		values: make(map[string]Builtin),
	}
	return &env
}

func Default() *Env {
	env := Env{
		values: maps.Clone(Registry),
	}
	return &env
}

func (e *Env) Resolve(ident string) (Builtin, error) {
	fn, ok := e.values[strings.ToUpper(ident)]
	if !ok {
		return nil, fmt.Errorf("%s: %w", ident, ErrUndefined)
	}
	return fn, nil
}

func (e *Env) Define(ident string, fn Builtin) {
	e.values[strings.ToUpper(ident)] = fn
}

func (e *Env) Names() []string {
	var list []string
	for n := range e.values {
		list = append(list, n)
	}
	return list
}
