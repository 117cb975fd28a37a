package value

import (
	"math"
)

func Add(left, right Value) Value {
	return doMath(left, right, func(left, right float64) (float64, Value) {
		return left + right, nil
	})
}

func Sub(left, right Value) Value {
	return doMath(left, right, func(left, right float64) (float64, Value) {
		return left - right, nil
	})
}

func Mul(left, right Value) Value {
	return doMath(left, right, func(left, right float64) (float64, Value) {
		return left * right, nil
	})
}

func Div(left, right Value) Value {
	return doMath(left, right, func(left, right float64) (float64, Value) {
		if right == 0 {
			return 0, ErrDiv0
		}
		return left / right, nil
	})
}

func Pow(left, right Value) Value {
	return doMath(left, right, func(left, right float64) (float64, Value) {
		res := math.Pow(left, right)
		if math.IsNaN(res) || math.IsInf(res, 0) {
			return 0, ErrNum
		}
		return res, nil
	})
}

func Neg(val Value) Value {
	if IsError(val) {
		return val
	}
	f, err := CastToFloat(val)
	if err != nil {
		return ErrValue
	}
	return -f
}

func Percent(val Value) Value {
	if IsError(val) {
		return val
	}
	f, err := CastToFloat(val)
	if err != nil {
		return ErrValue
	}
	return f / 100
}

func Concat(left, right Value) Value {
	if e, ok := firstError(left, right); ok {
		return e
	}
	ls, err := CastToText(left)
	if err != nil {
		return ErrValue
	}
	rs, err := CastToText(right)
	if err != nil {
		return ErrValue
	}
	return ls + rs
}

func Eq(left, right Value) Value {
	return doCmp(left, right, func(cmp Comparable, right Value) (bool, error) {
		return cmp.Equal(right)
	})
}

func Ne(left, right Value) Value {
	return doCmp(left, right, func(cmp Comparable, right Value) (bool, error) {
		ok, err := cmp.Equal(right)
		return !ok, err
	})
}

func Lt(left, right Value) Value {
	return doCmp(left, right, func(cmp Comparable, right Value) (bool, error) {
		return cmp.Less(right)
	})
}

func Le(left, right Value) Value {
	return doCmp(left, right, func(cmp Comparable, right Value) (bool, error) {
		if ok, err := cmp.Equal(right); err == nil && ok {
			return ok, nil
		}
		return cmp.Less(right)
	})
}

func Gt(left, right Value) Value {
	return doCmp(left, right, func(cmp Comparable, right Value) (bool, error) {
		if ok, err := cmp.Equal(right); err == nil && ok {
			return false, nil
		}
		ok, err := cmp.Less(right)
		return !ok, err
	})
}

func Ge(left, right Value) Value {
	return doCmp(left, right, func(cmp Comparable, right Value) (bool, error) {
		ok, err := cmp.Less(right)
		return !ok, err
	})
}

func firstError(values ...Value) (Value, bool) {
	for _, v := range values {
		if IsError(v) {
			return v, true
		}
	}
	return nil, false
}

func doMath(left, right Value, do func(left, right float64) (float64, Value)) Value {
	if e, ok := firstError(left, right); ok {
		return e
	}
	ls, err := CastToFloat(left)
	if err != nil {
		return ErrValue
	}
	rs, err := CastToFloat(right)
	if err != nil {
		return ErrValue
	}
	res, fail := do(float64(ls), float64(rs))
	if fail != nil {
		return fail
	}
	return Float(res)
}

func doCmp(left, right Value, do func(Comparable, Value) (bool, error)) Value {
	if e, ok := firstError(left, right); ok {
		return e
	}
	cmp, ok := left.(Comparable)
	if !ok {
		return ErrValue
	}
	res, err := do(cmp, right)
	if err != nil {
		return ErrValue
	}
	return Boolean(res)
}
