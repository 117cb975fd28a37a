package calc

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/midbel/sheetcalc/value"
)

const (
	Invalid rune = 0

	EOF rune = 1 << iota
	Ident
	Number
	Literal
	ErrorLit
	Add
	Sub
	Mul
	Div
	Percent
	Pow
	Concat
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	Comma
	BegGrp
	EndGrp
)

type Token struct {
	Literal  string
	Type     rune
	Position int
}

func (t Token) String() string {
	var str string
	switch t.Type {
	case Invalid:
		return "<invalid>"
	case EOF:
		return "<eof>"
	case Ident:
		str = "identifier"
	case Number:
		str = "number"
	case Literal:
		str = "literal"
	case ErrorLit:
		str = "error"
	case Add:
		return "<add>"
	case Sub:
		return "<subtract>"
	case Mul:
		return "<multiply>"
	case Div:
		return "<divide>"
	case Percent:
		return "<percent>"
	case Pow:
		return "<power>"
	case Concat:
		return "<concat>"
	case Eq:
		return "<equal>"
	case Ne:
		return "<notequal>"
	case Lt:
		return "<lesser>"
	case Le:
		return "<lesseq>"
	case Gt:
		return "<greater>"
	case Ge:
		return "<greateq>"
	case Comma:
		return "<comma>"
	case BegGrp:
		return "<beg-group>"
	case EndGrp:
		return "<end-group>"
	}
	return fmt.Sprintf("%s(%s)", str, t.Literal)
}

// Scanner splits a literal expression (no cell references left) into tokens.
type Scanner struct {
	input string
	pos   int
	next  int
	char  rune

	buf strings.Builder
}

func Scan(str string) *Scanner {
	scan := Scanner{
		input: str,
	}
	scan.read()
	if scan.char == equal {
		scan.read()
	}
	return &scan
}

// Tokenize scans the whole input and fails on the first invalid token.
func Tokenize(str string) ([]Token, error) {
	var (
		scan = Scan(str)
		list []Token
	)
	for {
		tok := scan.Scan()
		if tok.Type == Invalid {
			return nil, fmt.Errorf("%w: unexpected character at %d", ErrSyntax, tok.Position)
		}
		list = append(list, tok)
		if tok.Type == EOF {
			break
		}
	}
	return list, nil
}

func (s *Scanner) Scan() Token {
	s.skipBlanks()

	tok := Token{
		Position: s.pos,
	}
	if s.done() {
		tok.Type = EOF
		return tok
	}
	defer s.reset()
	switch {
	case isOperator(s.char):
		s.scanOperator(&tok)
	case isDelimiter(s.char):
		s.scanDelimiter(&tok)
	case s.char == dquote:
		s.scanLiteral(&tok)
	case s.char == pound:
		s.scanError(&tok)
	case isDigit(s.char) || s.char == dot:
		s.scanNumber(&tok)
	case isLetter(s.char):
		s.scanIdent(&tok)
	default:
		tok.Type = Invalid
		s.read()
	}
	return tok
}

func (s *Scanner) scanIdent(tok *Token) {
	for !s.done() && isAlpha(s.char) {
		s.write()
		s.read()
	}
	tok.Type = Ident
	tok.Literal = s.literal()
}

func (s *Scanner) scanNumber(tok *Token) {
	tok.Type = Number
	for !s.done() && isDigit(s.char) {
		s.write()
		s.read()
	}
	if s.char == dot {
		s.write()
		s.read()
		for !s.done() && isDigit(s.char) {
			s.write()
			s.read()
		}
	}
	if s.char == 'e' || s.char == 'E' {
		s.write()
		s.read()
		if s.char == plus || s.char == minus {
			s.write()
			s.read()
		}
		if !isDigit(s.char) {
			tok.Type = Invalid
		}
		for !s.done() && isDigit(s.char) {
			s.write()
			s.read()
		}
	}
	tok.Literal = s.literal()
	if tok.Literal == "." {
		tok.Type = Invalid
	}
}

// scanLiteral reads a double quoted string. A doubled quote stands for one
// quote inside the string.
func (s *Scanner) scanLiteral(tok *Token) {
	s.read()
	for !s.done() {
		if s.char == dquote {
			if s.peek() != dquote {
				break
			}
			s.read()
		}
		s.write()
		s.read()
	}
	tok.Type = Literal
	tok.Literal = s.literal()
	if s.char != dquote {
		tok.Type = Invalid
		return
	}
	s.read()
}

func (s *Scanner) scanError(tok *Token) {
	rest := s.input[s.pos:]
	for _, e := range value.KnownErrors() {
		if strings.HasPrefix(rest, e.Code()) {
			tok.Type = ErrorLit
			tok.Literal = e.Code()
			for range len(e.Code()) {
				s.read()
			}
			return
		}
	}
	for !s.done() && (isAlpha(s.char) || s.char == pound || s.char == slash || s.char == bang || s.char == question) {
		s.write()
		s.read()
	}
	tok.Type = ErrorLit
	tok.Literal = s.literal()
}

func (s *Scanner) scanOperator(tok *Token) {
	tok.Type = Invalid
	switch s.char {
	case amper:
		tok.Type = Concat
	case percent:
		tok.Type = Percent
	case plus:
		tok.Type = Add
	case minus:
		tok.Type = Sub
	case star:
		tok.Type = Mul
	case slash:
		tok.Type = Div
	case caret:
		tok.Type = Pow
	case langle:
		tok.Type = Lt
		if k := s.peek(); k == equal {
			s.read()
			tok.Type = Le
		} else if k == rangle {
			s.read()
			tok.Type = Ne
		}
	case rangle:
		tok.Type = Gt
		if s.peek() == equal {
			s.read()
			tok.Type = Ge
		}
	case equal:
		tok.Type = Eq
	default:
	}
	s.read()
}

func (s *Scanner) scanDelimiter(tok *Token) {
	tok.Type = Invalid
	switch s.char {
	case semi, comma:
		tok.Type = Comma
	case lparen:
		tok.Type = BegGrp
	case rparen:
		tok.Type = EndGrp
	default:
	}
	s.read()
}

func (s *Scanner) literal() string {
	return s.buf.String()
}

func (s *Scanner) write() {
	s.buf.WriteRune(s.char)
}

func (s *Scanner) reset() {
	s.buf.Reset()
}

func (s *Scanner) read() {
	if s.next >= len(s.input) {
		s.pos = len(s.input)
		s.char = 0
		return
	}
	r, n := utf8.DecodeRuneInString(s.input[s.next:])
	if r == utf8.RuneError && n <= 1 {
		s.char = 0
		s.pos, s.next = len(s.input), len(s.input)
		return
	}
	s.char, s.pos, s.next = r, s.next, s.next+n
}

func (s *Scanner) peek() rune {
	if s.next >= len(s.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.input[s.next:])
	return r
}

func (s *Scanner) done() bool {
	return s.pos >= len(s.input) || s.char == 0
}

func (s *Scanner) skipBlanks() {
	for isBlank(s.char) {
		s.read()
	}
}

const (
	underscore = '_'
	bang       = '!'
	question   = '?'
	semi       = ';'
	comma      = ','
	rparen     = ')'
	lparen     = '('
	dquote     = '"'
	space      = ' '
	tab        = '\t'
	plus       = '+'
	minus      = '-'
	star       = '*'
	slash      = '/'
	caret      = '^'
	equal      = '='
	langle     = '<'
	rangle     = '>'
	dot        = '.'
	amper      = '&'
	percent    = '%'
	pound      = '#'
	nl         = '\n'
	cr         = '\r'
)

func isLower(c rune) bool {
	return c >= 'a' && c <= 'z'
}

func isUpper(c rune) bool {
	return c >= 'A' && c <= 'Z'
}

func isLetter(c rune) bool {
	return isLower(c) || isUpper(c) || c == underscore
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c rune) bool {
	return isLetter(c) || isDigit(c) || c == dot
}

func isBlank(c rune) bool {
	return c == space || c == tab || c == nl || c == cr
}

func isDelimiter(c rune) bool {
	return c == semi || c == lparen || c == rparen || c == comma
}

func isOperator(c rune) bool {
	return c == plus || c == minus || c == slash || c == star ||
		c == langle || c == rangle || c == equal || c == caret ||
		c == amper || c == percent
}
