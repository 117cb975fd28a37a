package calc

import (
	"fmt"
	"strconv"
	"strings"
)

type Expr interface {
	fmt.Stringer
}

type binary struct {
	left  Expr
	right Expr
	op    rune
}

func (b binary) String() string {
	return fmt.Sprintf("%s %s %s", b.left, operatorString(b.op), b.right)
}

type unary struct {
	right Expr
	op    rune
}

func (u unary) String() string {
	return fmt.Sprintf("%s%s", operatorString(u.op), u.right)
}

type postfix struct {
	left Expr
	op   rune
}

func (p postfix) String() string {
	return fmt.Sprintf("%s%s", p.left, operatorString(p.op))
}

type group struct {
	expr Expr
}

func (g group) String() string {
	return fmt.Sprintf("(%s)", g.expr)
}

type call struct {
	ident string
	args  []Expr
}

func (c call) String() string {
	var args []string
	for i := range c.args {
		args = append(args, c.args[i].String())
	}
	return fmt.Sprintf("%s(%s)", c.ident, strings.Join(args, ", "))
}

type literal struct {
	value string
}

func (i literal) String() string {
	return strconv.Quote(i.value)
}

type number struct {
	value float64
}

func (n number) String() string {
	return strconv.FormatFloat(n.value, 'f', -1, 64)
}

type boolean struct {
	value bool
}

func (b boolean) String() string {
	if b.value {
		return "TRUE"
	}
	return "FALSE"
}

type errorLit struct {
	code string
}

func (e errorLit) String() string {
	return e.code
}

func operatorString(op rune) string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Pow:
		return "^"
	case Percent:
		return "%"
	case Concat:
		return "&"
	case Eq:
		return "="
	case Ne:
		return "<>"
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	default:
		return "?"
	}
}

// Walk calls fn for expr and every sub expression, depth first.
func Walk(expr Expr, fn func(Expr)) {
	fn(expr)
	switch e := expr.(type) {
	case binary:
		Walk(e.left, fn)
		Walk(e.right, fn)
	case unary:
		Walk(e.right, fn)
	case postfix:
		Walk(e.left, fn)
	case group:
		Walk(e.expr, fn)
	case call:
		for _, a := range e.args {
			Walk(a, fn)
		}
	}
}
