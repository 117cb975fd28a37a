// Package eval computes the value of a formula: references are replaced by
// the values of the cells they target, then the resulting literal expression
// is handed to a calc.Evaluator.
package eval

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/midbel/sheetcalc/calc"
	"github.com/midbel/sheetcalc/formula"
	"github.com/midbel/sheetcalc/internal/logger"
	"github.com/midbel/sheetcalc/layout"
	"github.com/midbel/sheetcalc/value"
)

// Lookup gives the computed value of a cell.
type Lookup func(layout.Position) value.Value

type Result struct {
	Value value.Value
	Err   *value.Error
}

func (r Result) Failed() bool {
	return r.Err != nil
}

// Get returns the error of the result as a value when the evaluation failed.
func (r Result) Get() value.Value {
	if r.Err != nil {
		return *r.Err
	}
	return r.Value
}

func failure(code value.Error) Result {
	return Result{
		Err: &code,
	}
}

type Option func(*Evaluator)

func WithLogger(l *zap.Logger) Option {
	return func(e *Evaluator) {
		e.logger = l
	}
}

type Evaluator struct {
	calc   calc.Evaluator
	logger *zap.Logger
}

func New(c calc.Evaluator, opts ...Option) *Evaluator {
	e := Evaluator{
		calc:   c,
		logger: logger.L,
	}
	for _, o := range opts {
		o(&e)
	}
	return &e
}

func (e *Evaluator) Evaluate(text string, get Lookup) (res Result) {
	if !formula.IsFormula(text) {
		if text == "" {
			return Result{Value: value.Blank{}}
		}
		return Result{Value: value.Text(text)}
	}
	defer func() {
		if err := recover(); err != nil {
			e.logger.Debug("formula evaluation panicked", zap.String("formula", text), zap.Any("error", err))
			res = failure(value.ErrGeneric)
		}
	}()
	expr := Substitute(text, get)
	val, err := e.calc.Evaluate(expr)
	if err != nil {
		e.logger.Debug("formula evaluation failed", zap.String("formula", text), zap.String("expr", expr), zap.String("code", err.Code()))
		return Result{Err: err}
	}
	return Result{Value: val}
}

// Substitute replaces every reference of a formula with the value it targets
// and returns the literal expression without its leading '='. Ranges are
// expanded first, in rows order, as a list of numbers.
func Substitute(text string, get Lookup) string {
	body := strings.TrimPrefix(text, "=")
	body = formula.ReplaceReferences(body, func(m formula.Match) (string, bool) {
		if !m.IsRange() {
			return "", false
		}
		return expandRange(m.Range, get), true
	})
	return formula.ReplaceReferences(body, func(m formula.Match) (string, bool) {
		if m.IsRange() {
			return "", false
		}
		return Literal(get(m.Position())), true
	})
}

func expandRange(rg layout.Range, get Lookup) string {
	var list []string
	for pos := range rg.Normalize().Positions() {
		n := value.Number(get(pos))
		list = append(list, strconv.FormatFloat(n, 'f', -1, 64))
	}
	return strings.Join(list, ",")
}

// Literal renders a cell value as it must appear in a literal expression.
func Literal(v value.Value) string {
	switch x := v.(type) {
	case nil, value.Blank:
		return "0"
	case value.Error:
		return x.Code()
	case value.Boolean:
		return x.String()
	case value.Float:
		return number(float64(x))
	case value.Text:
		if n, ok := value.ParseNumber(string(x)); ok {
			return number(n)
		}
		if x == "" {
			return "0"
		}
		return "\"" + strings.ReplaceAll(string(x), "\"", "\"\"") + "\""
	default:
		return "\"" + strings.ReplaceAll(v.String(), "\"", "\"\"") + "\""
	}
}

func number(n float64) string {
	str := strconv.FormatFloat(n, 'f', -1, 64)
	if n < 0 {
		str = "(" + str + ")"
	}
	return str
}
