package calc

import (
	"errors"
	"fmt"
	"maps"
	"strconv"
	"strings"
)

var ErrSyntax = errors.New("syntax error")

const (
	powLowest = iota
	powCmp
	powConcat
	powAdd
	powMul
	powPow
	powUnary
	powPercent
	powCall
)

var defaultBindings = map[rune]int{
	Add:     powAdd,
	Sub:     powAdd,
	Mul:     powMul,
	Div:     powMul,
	Percent: powPercent,
	Pow:     powPow,
	Concat:  powConcat,
	Eq:      powCmp,
	Ne:      powCmp,
	Lt:      powCmp,
	Le:      powCmp,
	Gt:      powCmp,
	Ge:      powCmp,
	BegGrp:  powCall,
}

type (
	PrefixFunc func(*Parser) (Expr, error)
	InfixFunc  func(*Parser, Expr) (Expr, error)
)

type Grammar struct {
	prefix   map[rune]PrefixFunc
	infix    map[rune]InfixFunc
	bindings map[rune]int
}

func (g *Grammar) Pow(kind rune) int {
	pow, ok := g.bindings[kind]
	if !ok {
		pow = powLowest
	}
	return pow
}

func (g *Grammar) Prefix(tok Token) (PrefixFunc, error) {
	fn, ok := g.prefix[tok.Type]
	if !ok {
		return nil, fmt.Errorf("%w: unexpected %s at %d", ErrSyntax, tok, tok.Position)
	}
	return fn, nil
}

func (g *Grammar) Infix(tok Token) (InfixFunc, error) {
	fn, ok := g.infix[tok.Type]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported operator %s", ErrSyntax, tok)
	}
	return fn, nil
}

func (g *Grammar) RegisterInfix(kd rune, fn InfixFunc) {
	g.infix[kd] = fn
}

func (g *Grammar) RegisterPrefix(kd rune, fn PrefixFunc) {
	g.prefix[kd] = fn
}

func (g *Grammar) RegisterBinding(kd rune, pow int) {
	g.bindings[kd] = pow
}

func LiteralGrammar() *Grammar {
	g := Grammar{
		prefix:   make(map[rune]PrefixFunc),
		infix:    make(map[rune]InfixFunc),
		bindings: maps.Clone(defaultBindings),
	}
	g.RegisterPrefix(Ident, parseIdentifier)
	g.RegisterPrefix(Number, parseNumber)
	g.RegisterPrefix(Literal, parseLiteral)
	g.RegisterPrefix(ErrorLit, parseErrorLit)
	g.RegisterPrefix(Sub, parseUnary)
	g.RegisterPrefix(Add, parseUnary)
	g.RegisterPrefix(BegGrp, parseGroup)

	g.RegisterInfix(BegGrp, parseCall)
	g.RegisterInfix(Percent, parsePostfix)
	g.RegisterInfix(Add, parseBinary)
	g.RegisterInfix(Sub, parseBinary)
	g.RegisterInfix(Mul, parseBinary)
	g.RegisterInfix(Div, parseBinary)
	g.RegisterInfix(Concat, parseBinary)
	g.RegisterInfix(Pow, parseBinary)
	g.RegisterInfix(Eq, parseBinary)
	g.RegisterInfix(Ne, parseBinary)
	g.RegisterInfix(Lt, parseBinary)
	g.RegisterInfix(Le, parseBinary)
	g.RegisterInfix(Gt, parseBinary)
	g.RegisterInfix(Ge, parseBinary)

	return &g
}

type Parser struct {
	scan *Scanner
	curr Token
	peek Token

	grammar *Grammar
}

// Parse turns a literal expression, with or without a leading '=', into an
// expression tree.
func Parse(str string) (Expr, error) {
	p := NewParser(LiteralGrammar())
	return p.ParseString(str)
}

func NewParser(g *Grammar) *Parser {
	var p Parser
	p.grammar = g
	return &p
}

func (p *Parser) ParseString(str string) (Expr, error) {
	p.scan = Scan(str)
	p.next()
	p.next()
	expr, err := p.parse(powLowest)
	if err != nil {
		return nil, err
	}
	if !p.done() {
		return nil, fmt.Errorf("%w: unexpected %s at %d", ErrSyntax, p.curr, p.curr.Position)
	}
	return expr, nil
}

func (p *Parser) parse(pow int) (Expr, error) {
	fn, err := p.grammar.Prefix(p.curr)
	if err != nil {
		return nil, err
	}
	left, err := fn(p)
	if err != nil {
		return nil, err
	}
	for !p.done() && pow < p.grammar.Pow(p.curr.Type) {
		fn, err := p.grammar.Infix(p.curr)
		if err != nil {
			return nil, err
		}
		left, err = fn(p, left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *Parser) next() {
	p.curr = p.peek
	p.peek = p.scan.Scan()
}

func (p *Parser) done() bool {
	return p.is(EOF)
}

func (p *Parser) is(kind rune) bool {
	return p.curr.Type == kind
}

func (p *Parser) currentLiteral() string {
	return p.curr.Literal
}

func parseCall(p *Parser, expr Expr) (Expr, error) {
	id, ok := expr.(call)
	if !ok || id.args != nil {
		return nil, fmt.Errorf("%w: expression is not callable", ErrSyntax)
	}
	p.next()
	c := call{
		ident: id.ident,
		args:  []Expr{},
	}
	for !p.done() && !p.is(EndGrp) {
		arg, err := p.parse(powLowest)
		if err != nil {
			return nil, err
		}
		switch p.curr.Type {
		case Comma:
			p.next()
			if p.is(EndGrp) {
				return nil, fmt.Errorf("%w: missing argument in function call", ErrSyntax)
			}
		case EndGrp:
		default:
			return nil, fmt.Errorf("%w: unexpected character in function call", ErrSyntax)
		}
		c.args = append(c.args, arg)
	}
	if !p.is(EndGrp) {
		return nil, fmt.Errorf("%w: missing ')' at end of function call", ErrSyntax)
	}
	p.next()
	return c, nil
}

func parseBinary(p *Parser, left Expr) (Expr, error) {
	bin := binary{
		left: left,
		op:   p.curr.Type,
	}
	pow := p.grammar.Pow(bin.op)
	p.next()
	right, err := p.parse(pow)
	if err != nil {
		return nil, err
	}
	bin.right = right
	return bin, nil
}

func parsePostfix(p *Parser, left Expr) (Expr, error) {
	defer p.next()
	return postfix{
		left: left,
		op:   p.curr.Type,
	}, nil
}

func parseUnary(p *Parser) (Expr, error) {
	una := unary{
		op: p.curr.Type,
	}
	p.next()
	right, err := p.parse(powUnary)
	if err != nil {
		return nil, err
	}
	una.right = right
	return una, nil
}

func parseGroup(p *Parser) (Expr, error) {
	p.next()
	expr, err := p.parse(powLowest)
	if err != nil {
		return nil, err
	}
	if !p.is(EndGrp) {
		return nil, fmt.Errorf("%w: missing ')' at end of expression", ErrSyntax)
	}
	p.next()
	return group{expr: expr}, nil
}

func parseNumber(p *Parser) (Expr, error) {
	defer p.next()

	x, err := strconv.ParseFloat(p.currentLiteral(), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: invalid number", ErrSyntax, p.currentLiteral())
	}
	n := number{
		value: x,
	}
	return n, nil
}

func parseLiteral(p *Parser) (Expr, error) {
	defer p.next()
	i := literal{
		value: p.currentLiteral(),
	}
	return i, nil
}

func parseErrorLit(p *Parser) (Expr, error) {
	defer p.next()
	return errorLit{code: p.currentLiteral()}, nil
}

// parseIdentifier accepts the boolean constants and function names. A bare
// name that is not called is left as a call without arguments list so that
// evaluation reports it as an unknown name.
func parseIdentifier(p *Parser) (Expr, error) {
	defer p.next()
	name := strings.ToUpper(p.currentLiteral())
	if p.peek.Type != BegGrp {
		switch name {
		case "TRUE":
			return boolean{value: true}, nil
		case "FALSE":
			return boolean{value: false}, nil
		}
	}
	return call{ident: name}, nil
}
