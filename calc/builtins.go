package calc

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/midbel/sheetcalc/value"
)

var Registry = map[string]Builtin{
	"SUM":         Sum,
	"AVERAGE":     Average,
	"MIN":         Min,
	"MAX":         Max,
	"COUNT":       Count,
	"IF":          If,
	"ABS":         Abs,
	"ROUND":       Round,
	"SQRT":        Sqrt,
	"POWER":       Power,
	"MOD":         Mod,
	"CONCAT":      Concatenate,
	"CONCATENATE": Concatenate,
	"LEN":         Len,
	"UPPER":       Upper,
	"LOWER":       Lower,
	"AND":         And,
	"OR":          Or,
	"NOT":         Not,
	"TRUE":        constant(value.Boolean(true)),
	"FALSE":       constant(value.Boolean(false)),
}

func constant(v value.Value) Builtin {
	return func(args []value.Value) value.Value {
		if len(args) != 0 {
			return value.ErrValue
		}
		return v
	}
}

func numbers(args []value.Value) ([]float64, value.Value) {
	list := make([]float64, 0, len(args))
	for i := range args {
		if value.IsError(args[i]) {
			return nil, args[i]
		}
		f, err := value.CastToFloat(args[i])
		if err != nil {
			return nil, value.ErrValue
		}
		list = append(list, float64(f))
	}
	return list, nil
}

func Sum(args []value.Value) value.Value {
	list, fail := numbers(args)
	if fail != nil {
		return fail
	}
	var total float64
	for _, f := range list {
		total += f
	}
	return value.Float(total)
}

func Average(args []value.Value) value.Value {
	list, fail := numbers(args)
	if fail != nil {
		return fail
	}
	if len(list) == 0 {
		return value.ErrDiv0
	}
	var total float64
	for _, f := range list {
		total += f
	}
	return value.Float(total / float64(len(list)))
}

func Min(args []value.Value) value.Value {
	list, fail := numbers(args)
	if fail != nil {
		return fail
	}
	var res float64
	for i, f := range list {
		if i == 0 {
			res = f
			continue
		}
		res = min(res, f)
	}
	return value.Float(res)
}

func Max(args []value.Value) value.Value {
	list, fail := numbers(args)
	if fail != nil {
		return fail
	}
	var res float64
	for i, f := range list {
		if i == 0 {
			res = f
			continue
		}
		res = max(res, f)
	}
	return value.Float(res)
}

func Count(args []value.Value) value.Value {
	var count int
	for i := range args {
		if value.IsNumber(args[i]) {
			count++
		}
	}
	return value.Float(count)
}

func If(args []value.Value) value.Value {
	if len(args) < 2 || len(args) > 3 {
		return value.ErrValue
	}
	cond, fail := truth(args[0])
	if fail != nil {
		return fail
	}
	if cond {
		return args[1]
	}
	if len(args) == 3 {
		return args[2]
	}
	return value.Boolean(false)
}

func Abs(args []value.Value) value.Value {
	return unaryMath(args, func(f float64) (float64, value.Value) {
		return math.Abs(f), nil
	})
}

func Sqrt(args []value.Value) value.Value {
	return unaryMath(args, func(f float64) (float64, value.Value) {
		if f < 0 {
			return 0, value.ErrNum
		}
		return math.Sqrt(f), nil
	})
}

// Round rounds half away from zero. A negative number of digits rounds to the
// left of the decimal point.
func Round(args []value.Value) value.Value {
	if len(args) == 0 || len(args) > 2 {
		return value.ErrValue
	}
	if len(args) == 1 {
		args = append(args, value.Float(0))
	}
	list, fail := numbers(args)
	if fail != nil {
		return fail
	}
	digits := math.Trunc(list[1])
	if digits < 0 {
		scale := math.Pow(10, -digits)
		return value.Float(math.Round(list[0]/scale) * scale)
	}
	scale := math.Pow(10, digits)
	return value.Float(math.Round(list[0]*scale) / scale)
}

func Power(args []value.Value) value.Value {
	if len(args) != 2 {
		return value.ErrValue
	}
	return value.Pow(args[0], args[1])
}

// Mod returns a result with the sign of the divisor.
func Mod(args []value.Value) value.Value {
	if len(args) != 2 {
		return value.ErrValue
	}
	list, fail := numbers(args)
	if fail != nil {
		return fail
	}
	if list[1] == 0 {
		return value.ErrDiv0
	}
	return value.Float(list[0] - list[1]*math.Floor(list[0]/list[1]))
}

func Concatenate(args []value.Value) value.Value {
	var buf strings.Builder
	for i := range args {
		if value.IsError(args[i]) {
			return args[i]
		}
		str, err := value.CastToText(args[i])
		if err != nil {
			return value.ErrValue
		}
		buf.WriteString(string(str))
	}
	return value.Text(buf.String())
}

func Len(args []value.Value) value.Value {
	return unaryText(args, func(str string) value.Value {
		return value.Float(utf8.RuneCountInString(str))
	})
}

func Upper(args []value.Value) value.Value {
	return unaryText(args, func(str string) value.Value {
		return value.Text(strings.ToUpper(str))
	})
}

func Lower(args []value.Value) value.Value {
	return unaryText(args, func(str string) value.Value {
		return value.Text(strings.ToLower(str))
	})
}

func And(args []value.Value) value.Value {
	if len(args) == 0 {
		return value.ErrValue
	}
	res := true
	for i := range args {
		ok, fail := truth(args[i])
		if fail != nil {
			return fail
		}
		res = res && ok
	}
	return value.Boolean(res)
}

func Or(args []value.Value) value.Value {
	if len(args) == 0 {
		return value.ErrValue
	}
	var res bool
	for i := range args {
		ok, fail := truth(args[i])
		if fail != nil {
			return fail
		}
		res = res || ok
	}
	return value.Boolean(res)
}

func Not(args []value.Value) value.Value {
	if len(args) != 1 {
		return value.ErrValue
	}
	ok, fail := truth(args[0])
	if fail != nil {
		return fail
	}
	return value.Boolean(!ok)
}

func truth(v value.Value) (bool, value.Value) {
	switch x := v.(type) {
	case value.Error:
		return false, x
	case value.Boolean:
		return bool(x), nil
	case value.Text:
		switch strings.ToUpper(string(x)) {
		case "TRUE":
			return true, nil
		case "FALSE":
			return false, nil
		}
	}
	f, err := value.CastToFloat(v)
	if err != nil {
		return false, value.ErrValue
	}
	return f != 0, nil
}

func unaryMath(args []value.Value, do func(float64) (float64, value.Value)) value.Value {
	if len(args) != 1 {
		return value.ErrValue
	}
	list, fail := numbers(args)
	if fail != nil {
		return fail
	}
	res, fail := do(list[0])
	if fail != nil {
		return fail
	}
	return value.Float(res)
}

func unaryText(args []value.Value, do func(string) value.Value) value.Value {
	if len(args) != 1 {
		return value.ErrValue
	}
	if value.IsError(args[0]) {
		return args[0]
	}
	str, err := value.CastToText(args[0])
	if err != nil {
		return value.ErrValue
	}
	return do(string(str))
}
