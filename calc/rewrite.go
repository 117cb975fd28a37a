package calc

import (
	"strconv"
	"strings"
)

// Dialect renders the nodes of an expression in another expression language.
// Operands are given already rendered.
type Dialect struct {
	Number  func(float64) string
	Text    func(string) string
	Boolean func(bool) string
	Error   func(string) string
	Binary  func(op rune, left, right string) string
	Unary   func(op rune, right string) string
	Percent func(left string) string
	Group   func(string) string
	Call    func(name string, args []string) string
}

// Rewrite renders expr with the callbacks of d.
func Rewrite(expr Expr, d Dialect) string {
	switch e := expr.(type) {
	case binary:
		return d.Binary(e.op, Rewrite(e.left, d), Rewrite(e.right, d))
	case unary:
		return d.Unary(e.op, Rewrite(e.right, d))
	case postfix:
		return d.Percent(Rewrite(e.left, d))
	case group:
		return d.Group(Rewrite(e.expr, d))
	case literal:
		return d.Text(e.value)
	case number:
		return d.Number(e.value)
	case boolean:
		return d.Boolean(e.value)
	case errorLit:
		return d.Error(e.code)
	case call:
		var args []string
		for i := range e.args {
			args = append(args, Rewrite(e.args[i], d))
		}
		if e.args == nil {
			return d.Call(e.ident, nil)
		}
		return d.Call(e.ident, args)
	default:
		return ""
	}
}

// Spreadsheet renders an expression back in spreadsheet notation.
func Spreadsheet() Dialect {
	return Dialect{
		Number: func(f float64) string {
			return strconv.FormatFloat(f, 'f', -1, 64)
		},
		Text: func(str string) string {
			return "\"" + strings.ReplaceAll(str, "\"", "\"\"") + "\""
		},
		Boolean: func(b bool) string {
			if b {
				return "TRUE"
			}
			return "FALSE"
		},
		Error: func(code string) string {
			return code
		},
		Binary: func(op rune, left, right string) string {
			return left + operatorString(op) + right
		},
		Unary: func(op rune, right string) string {
			return operatorString(op) + right
		},
		Percent: func(left string) string {
			return left + "%"
		},
		Group: func(str string) string {
			return "(" + str + ")"
		},
		Call: func(name string, args []string) string {
			if args == nil {
				return name
			}
			return name + "(" + strings.Join(args, ",") + ")"
		},
	}
}
