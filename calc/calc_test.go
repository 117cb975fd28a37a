package calc

import (
	"testing"

	"github.com/midbel/sheetcalc/value"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		Expr string
		Want string
	}{
		{Expr: "1+1", Want: "2"},
		{Expr: "=1+2*3", Want: "7"},
		{Expr: "(1+2)*3", Want: "9"},
		{Expr: "-2^2", Want: "4"},
		{Expr: "2^3^2", Want: "64"},
		{Expr: "50%", Want: "0.5"},
		{Expr: "10/4", Want: "2.5"},
		{Expr: `"foo" & "bar"`, Want: "foobar"},
		{Expr: `"say ""hi"""`, Want: `say "hi"`},
		{Expr: `"a" & 1`, Want: "a1"},
		{Expr: "1+2=3", Want: "TRUE"},
		{Expr: "1<>1", Want: "FALSE"},
		{Expr: "2>=2", Want: "TRUE"},
		{Expr: "3>2", Want: "TRUE"},
		{Expr: "2<=1", Want: "FALSE"},
		{Expr: `"abc"="ABC"`, Want: "TRUE"},
		{Expr: "SUM(1,2,3)", Want: "6"},
		{Expr: "sum(1,2,3)", Want: "6"},
		{Expr: "AVERAGE(1,2,3,4)", Want: "2.5"},
		{Expr: "MIN(4,(-1),7)", Want: "-1"},
		{Expr: "MAX(4,(-1),7)", Want: "7"},
		{Expr: `COUNT(1,"a",TRUE,3)`, Want: "2"},
		{Expr: `IF(1>2,"yes","no")`, Want: "no"},
		{Expr: "IF(TRUE,1)", Want: "1"},
		{Expr: "IF(FALSE,1)", Want: "FALSE"},
		{Expr: "ABS((-3))", Want: "3"},
		{Expr: "ROUND(3.14159,2)", Want: "3.14"},
		{Expr: "ROUND(2.5)", Want: "3"},
		{Expr: "ROUND(1234,-2)", Want: "1200"},
		{Expr: "SQRT(16)", Want: "4"},
		{Expr: "POWER(2,10)", Want: "1024"},
		{Expr: "MOD((-3),2)", Want: "1"},
		{Expr: `CONCAT("a",1,TRUE)`, Want: "a1TRUE"},
		{Expr: `CONCATENATE("x","y")`, Want: "xy"},
		{Expr: `LEN("hello")`, Want: "5"},
		{Expr: `UPPER("abc")`, Want: "ABC"},
		{Expr: `LOWER("ABC")`, Want: "abc"},
		{Expr: "AND(TRUE,1)", Want: "TRUE"},
		{Expr: "OR(FALSE,0)", Want: "FALSE"},
		{Expr: "NOT(FALSE)", Want: "TRUE"},
		{Expr: "1.5e2", Want: "150"},
	}
	eval := NewNative()
	for _, c := range tests {
		got, err := eval.Evaluate(c.Expr)
		if err != nil {
			t.Errorf("%s: unexpected error %s", c.Expr, err)
			continue
		}
		if got.String() != c.Want {
			t.Errorf("%s: result mismatched! want %s, got %s", c.Expr, c.Want, got)
		}
	}
}

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		Expr string
		Want string
	}{
		{Expr: "1/0", Want: "#DIV/0!"},
		{Expr: "#DIV/0!+1", Want: "#DIV/0!"},
		{Expr: "1+#REF!", Want: "#REF!"},
		{Expr: "SUM(1,#N/A)", Want: "#N/A"},
		{Expr: `"a"+1`, Want: "#VALUE!"},
		{Expr: "NOPE(1)", Want: "#NAME?"},
		{Expr: "FOO", Want: "#NAME?"},
		{Expr: "SQRT((-1))", Want: "#NUM!"},
		{Expr: "AVERAGE()", Want: "#DIV/0!"},
		{Expr: "MOD(1,0)", Want: "#DIV/0!"},
		{Expr: "1+", Want: "#ERROR!"},
		{Expr: "(1+2", Want: "#ERROR!"},
		{Expr: "SUM(1,)", Want: "#ERROR!"},
		{Expr: `"open`, Want: "#ERROR!"},
		{Expr: "1 2", Want: "#ERROR!"},
		{Expr: "", Want: "#ERROR!"},
	}
	eval := NewNative()
	for _, c := range tests {
		got, err := eval.Evaluate(c.Expr)
		if err == nil {
			t.Errorf("%s: expected error, got %s", c.Expr, got)
			continue
		}
		if err.Code() != c.Want {
			t.Errorf("%s: error mismatched! want %s, got %s", c.Expr, c.Want, err.Code())
		}
	}
}

func TestDefine(t *testing.T) {
	eval := NewNative()
	eval.Define("one", constant(value.Float(1)))
	got, err := eval.Evaluate("ONE()+1")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got.String() != "2" {
		t.Errorf("result mismatched! want 2, got %s", got)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		Expr  string
		Types []rune
	}{
		{Expr: "1+2", Types: []rune{Number, Add, Number, EOF}},
		{Expr: "A<>B", Types: []rune{Ident, Ne, Ident, EOF}},
		{Expr: `SUM(1;"x")`, Types: []rune{Ident, BegGrp, Number, Comma, Literal, EndGrp, EOF}},
		{Expr: "#DIV/0!/2", Types: []rune{ErrorLit, Div, Number, EOF}},
		{Expr: "#N/A&1", Types: []rune{ErrorLit, Concat, Number, EOF}},
	}
	for _, c := range tests {
		list, err := Tokenize(c.Expr)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", c.Expr, err)
			continue
		}
		if len(list) != len(c.Types) {
			t.Errorf("%s: number of tokens mismatched! want %d, got %d", c.Expr, len(c.Types), len(list))
			continue
		}
		for i := range list {
			if list[i].Type != c.Types[i] {
				t.Errorf("%s: token %d mismatched! want %s, got %s", c.Expr, i, Token{Type: c.Types[i]}, list[i])
			}
		}
	}
	if _, err := Tokenize("1 @ 2"); err == nil {
		t.Errorf("invalid character should be rejected")
	}
}

func TestRewrite(t *testing.T) {
	tests := []struct {
		Expr string
		Want string
	}{
		{Expr: "=1 + 2 * 3", Want: "1+2*3"},
		{Expr: `sum( 1 ; "a""b" )`, Want: `SUM(1,"a""b")`},
		{Expr: "-(1+2)%", Want: "-(1+2)%"},
		{Expr: "true <> #N/A", Want: "TRUE<>#N/A"},
	}
	for _, c := range tests {
		expr, err := Parse(c.Expr)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", c.Expr, err)
			continue
		}
		if got := Rewrite(expr, Spreadsheet()); got != c.Want {
			t.Errorf("%s: rewrite mismatched! want %s, got %s", c.Expr, c.Want, got)
		}
	}
}

func TestIsSyntax(t *testing.T) {
	for _, str := range []string{"1+", "SUM(1,", "(2", "1 2"} {
		_, err := Parse(str)
		if !IsSyntax(err) {
			t.Errorf("%s: expected syntax error, got %v", str, err)
		}
	}
	if _, err := Parse("SUM(1,2)*3"); IsSyntax(err) {
		t.Errorf("unexpected syntax error: %s", err)
	}
	if IsSyntax(nil) {
		t.Errorf("nil is not a syntax error")
	}
}
