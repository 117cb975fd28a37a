package calc

import (
	"github.com/midbel/sheetcalc/value"
)

// Eval reduces an expression to a value. Spreadsheet errors are values: they
// travel through operators and function calls until they reach the result.
func Eval(expr Expr, env *Env) value.Value {
	switch e := expr.(type) {
	case binary:
		return evalBinary(e, env)
	case unary:
		return evalUnary(e, env)
	case postfix:
		return value.Percent(Eval(e.left, env))
	case group:
		return Eval(e.expr, env)
	case literal:
		return value.Text(e.value)
	case number:
		return value.Float(e.value)
	case boolean:
		return value.Boolean(e.value)
	case errorLit:
		err, _ := value.ErrorCode(e.code)
		return err
	case call:
		return evalCall(e, env)
	default:
		return value.ErrGeneric
	}
}

func evalBinary(e binary, env *Env) value.Value {
	var (
		left  = Eval(e.left, env)
		right = Eval(e.right, env)
	)
	switch e.op {
	case Add:
		return value.Add(left, right)
	case Sub:
		return value.Sub(left, right)
	case Mul:
		return value.Mul(left, right)
	case Div:
		return value.Div(left, right)
	case Pow:
		return value.Pow(left, right)
	case Concat:
		return value.Concat(left, right)
	case Eq:
		return value.Eq(left, right)
	case Ne:
		return value.Ne(left, right)
	case Lt:
		return value.Lt(left, right)
	case Le:
		return value.Le(left, right)
	case Gt:
		return value.Gt(left, right)
	case Ge:
		return value.Ge(left, right)
	default:
		return value.ErrValue
	}
}

func evalUnary(e unary, env *Env) value.Value {
	val := Eval(e.right, env)
	switch e.op {
	case Add:
		if value.IsError(val) {
			return val
		}
		n, err := value.CastToFloat(val)
		if err != nil {
			return value.ErrValue
		}
		return n
	case Sub:
		return value.Neg(val)
	default:
		return value.ErrValue
	}
}

func evalCall(e call, env *Env) value.Value {
	if e.args == nil {
		return value.ErrName
	}
	fn, err := env.Resolve(e.ident)
	if err != nil {
		return value.ErrName
	}
	args := make([]value.Value, 0, len(e.args))
	for i := range e.args {
		args = append(args, Eval(e.args[i], env))
	}
	return fn(args)
}
