// Package exprlang evaluates literal spreadsheet expressions with the
// expr-lang virtual machine. Expressions are parsed by calc, rewritten into
// expr syntax and compiled with the calc builtins registered as functions.
package exprlang

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/midbel/sheetcalc/calc"
	"github.com/midbel/sheetcalc/value"
)

const concatFunc = "CONCAT"

type codeError struct {
	code value.Error
}

func (e codeError) Error() string {
	return e.code.Code()
}

type Evaluator struct {
	builtins map[string]calc.Builtin
	options  []expr.Option
}

func New() *Evaluator {
	e := Evaluator{
		builtins: make(map[string]calc.Builtin),
	}
	for name, fn := range calc.Registry {
		e.Define(name, fn)
	}
	return &e
}

func (e *Evaluator) Define(name string, fn calc.Builtin) {
	name = strings.ToUpper(name)
	e.builtins[name] = fn
	e.options = append(e.options, expr.Function(name, wrap(fn)))
}

func (e *Evaluator) Evaluate(str string) (value.Value, *value.Error) {
	src, fail := e.Canonicalize(str)
	if fail != nil {
		return nil, fail
	}
	program, err := e.compile(src)
	if err != nil {
		// syntax is checked by calc: what is left are operands of the wrong type
		return nil, calc.Failure(value.ErrValue)
	}
	out, err := expr.Run(program, map[string]any{})
	if err != nil {
		return nil, calc.Failure(errorFromRun(err))
	}
	res := fromAny(out)
	if v, ok := res.(value.Error); ok {
		return nil, &v
	}
	return res, nil
}

// Canonicalize translates a spreadsheet literal expression into expr syntax.
// An error literal anywhere in the expression or a call to an unknown
// function short-circuits the evaluation.
func (e *Evaluator) Canonicalize(str string) (string, *value.Error) {
	tree, err := calc.Parse(str)
	if err != nil {
		return "", calc.Failure(value.ErrGeneric)
	}
	var fail value.Value
	dialect := e.dialect(func(v value.Value) {
		if fail == nil {
			fail = v
		}
	})
	src := calc.Rewrite(tree, dialect)
	if fail != nil {
		return "", calc.Failure(fail)
	}
	return src, nil
}

func (e *Evaluator) compile(src string) (*vm.Program, error) {
	options := []expr.Option{
		expr.Env(map[string]any{}),
		expr.DisableAllBuiltins(),
	}
	options = append(options, e.options...)
	return expr.Compile(src, options...)
}

func (e *Evaluator) dialect(report func(value.Value)) calc.Dialect {
	return calc.Dialect{
		Number: func(f float64) string {
			str := strconv.FormatFloat(f, 'f', -1, 64)
			if !strings.Contains(str, ".") {
				str += ".0"
			}
			return str
		},
		Text: strconv.Quote,
		Boolean: func(b bool) string {
			return strconv.FormatBool(b)
		},
		Error: func(code string) string {
			err, _ := value.ErrorCode(code)
			report(err)
			return "nil"
		},
		Binary: func(op rune, left, right string) string {
			var sym string
			switch op {
			case calc.Add:
				sym = "+"
			case calc.Sub:
				sym = "-"
			case calc.Mul:
				sym = "*"
			case calc.Div:
				sym = "/"
			case calc.Pow:
				sym = "**"
			case calc.Eq:
				sym = "=="
			case calc.Ne:
				sym = "!="
			case calc.Lt:
				sym = "<"
			case calc.Le:
				sym = "<="
			case calc.Gt:
				sym = ">"
			case calc.Ge:
				sym = ">="
			case calc.Concat:
				return fmt.Sprintf("%s(%s, %s)", concatFunc, left, right)
			default:
				report(value.ErrGeneric)
				return "nil"
			}
			return fmt.Sprintf("(%s %s %s)", left, sym, right)
		},
		Unary: func(op rune, right string) string {
			if op == calc.Sub {
				return fmt.Sprintf("(-%s)", right)
			}
			return right
		},
		Percent: func(left string) string {
			return fmt.Sprintf("(%s / 100.0)", left)
		},
		Group: func(str string) string {
			return "(" + str + ")"
		},
		Call: func(name string, args []string) string {
			if _, ok := e.builtins[name]; !ok || args == nil {
				report(value.ErrName)
				return "nil"
			}
			return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))
		},
	}
}

func wrap(fn calc.Builtin) func(params ...any) (any, error) {
	return func(params ...any) (any, error) {
		args := make([]value.Value, 0, len(params))
		for _, p := range params {
			args = append(args, fromAny(p))
		}
		res := fn(args)
		if e, ok := res.(value.Error); ok {
			return nil, codeError{code: e}
		}
		return toAny(res), nil
	}
}

func errorFromRun(err error) value.Value {
	var ce codeError
	if errors.As(err, &ce) {
		return ce.code
	}
	msg := err.Error()
	for _, e := range value.KnownErrors() {
		if strings.Contains(msg, e.Code()) {
			return e
		}
	}
	return value.ErrValue
}

func fromAny(v any) value.Value {
	switch x := v.(type) {
	case nil:
		return value.Blank{}
	case value.Value:
		return x
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return value.ErrDiv0
		}
		return value.Float(x)
	case int:
		return value.Float(x)
	case int64:
		return value.Float(x)
	case string:
		return value.Text(x)
	case bool:
		return value.Boolean(x)
	default:
		return value.ErrValue
	}
}

func toAny(v value.Value) any {
	switch x := v.(type) {
	case value.Float:
		return float64(x)
	case value.Text:
		return string(x)
	case value.Boolean:
		return bool(x)
	case value.Blank:
		return nil
	default:
		return v.String()
	}
}
