package parser

import (
	"strings"
	"testing"

	"github.com/rwiggins1/adequate-c/internal/ast"
	"github.com/rwiggins1/adequate-c/internal/diag"
)

func TestParseExpr_Precedence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"mul binds tighter than add", "1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"left assoc sub", "1 - 2 - 3", "(- (- 1 2) 3)"},
		{"left assoc div", "8 / 4 / 2", "(/ (/ 8 4) 2)"},
		{"mod with add", "a % b + c", "(+ (% a b) c)"},
		{"logical", "a || b && c", "(|| a (&& b c))"},
		{"bitwise ladder", "a | b ^ c & d", "(| a (^ b (& c d)))"},
		{"equality below comparison", "a == b < c", "(== a (< b c))"},
		{"comparison below additive", "a + 1 >= b - 2", "(>= (+ a 1) (- b 2))"},
		{"and below equality", "a != b && c == d", "(&& (!= a b) (== c d))"},
		{"parens", "(1 + 2) * 3", "(* (+ 1 2) 3)"},
		{"prefix minus", "-a * b", "(* (-a) b)"},
		{"nested prefix", "!~x", "(!(~x))"},
		{"prefix inc", "++i + 1", "(+ (++i) 1)"},
		{"postfix inc", "i++ + 1", "(+ (i++) 1)"},
		{"postfix dec", "i--", "(i--)"},
		{"call in expr", "f(1) * 2", "(* f(1) 2)"},
		{"literals", "'c' == 'd' || true", "(|| (== 'c' 'd') true)"},
		{"string", `"hi"`, `"hi"`},
		{"float", "3.25", "3.25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, b, bag := newTestParser(tt.input, Options{})
			id, ok := p.ParseExpr()
			if !ok {
				t.Fatalf("ParseExpr failed:\n%s", dumpDiagnostics(bag))
			}
			expectNoDiagnostics(t, bag)
			if got := renderExpr(b, id); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseExpr_CallArgumentsInOrder(t *testing.T) {
	p, b, bag := newTestParser(`someFunc(12, "test", true)`, Options{})
	id, ok := p.ParseExpr()
	if !ok {
		t.Fatalf("ParseExpr failed:\n%s", dumpDiagnostics(bag))
	}
	expectNoDiagnostics(t, bag)

	call, ok := b.Exprs.Call(id)
	if !ok {
		t.Fatalf("expected call, got %s", b.Exprs.Get(id).Kind)
	}
	if got := b.Name(call.Callee); got != "someFunc" {
		t.Fatalf("callee = %q", got)
	}
	if len(call.Args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(call.Args))
	}

	num, ok := b.Exprs.Number(call.Args[0])
	if !ok || num.Value != 12 {
		t.Errorf("arg 0: expected number 12")
	}
	str, ok := b.Exprs.StringLit(call.Args[1])
	if !ok || b.Name(str.Value) != "test" {
		t.Errorf("arg 1: expected string \"test\"")
	}
	boolean, ok := b.Exprs.Bool(call.Args[2])
	if !ok || !boolean.Value {
		t.Errorf("arg 2: expected true")
	}
}

func TestParseExpr_EmptyCall(t *testing.T) {
	p, b, bag := newTestParser("f()", Options{})
	id, ok := p.ParseExpr()
	if !ok {
		t.Fatalf("ParseExpr failed:\n%s", dumpDiagnostics(bag))
	}
	call, ok := b.Exprs.Call(id)
	if !ok || len(call.Args) != 0 {
		t.Fatalf("expected call without args")
	}
}

func TestParseExpr_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
		line  uint32
		col   uint32
	}{
		{"trailing comma", "f(1,)", diag.SynTrailingComma, 1, 5},
		{"missing comma", "f(1 2)", diag.SynExpectComma, 1, 5},
		{"unclosed call", "f(1", diag.SynExpectComma, 1, 4},
		{"unclosed paren", "(1 + 2", diag.SynUnclosedParen, 1, 7},
		{"missing operand", "1 +", diag.SynExpectExpression, 1, 4},
		{"two byte char", "'ab'", diag.SynBadChar, 1, 1},
		{"empty char", "''", diag.SynBadChar, 1, 1},
		{"number out of range", "1" + strings.Repeat("0", 400), diag.SynBadNumber, 1, 1},
		{"invalid character", "@", diag.SynUnexpectedCharacter, 1, 1},
		{"reserved keyword", "switch", diag.SynKeywordNotSupported, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _, bag := newTestParser(tt.input, Options{})
			id, ok := p.ParseExpr()
			if ok || id != ast.NoExprID {
				t.Fatalf("expected absent expression, got %d", id)
			}
			d := expectSingleDiagnostic(t, bag, tt.code)
			if d.Line != tt.line || d.Column != tt.col {
				t.Errorf("position %d:%d, want %d:%d", d.Line, d.Column, tt.line, tt.col)
			}
			if d.Phase != diag.PhaseParser {
				t.Errorf("phase = %s, want parser", d.Phase)
			}
		})
	}
}

func TestParseExpr_SpansCoverOperands(t *testing.T) {
	p, b, _ := newTestParser("ab + cd", Options{})
	id, ok := p.ParseExpr()
	if !ok {
		t.Fatal("ParseExpr failed")
	}
	sp := b.Exprs.Get(id).Span
	if sp.Start != 0 || sp.End != 7 {
		t.Errorf("span = %d..%d, want 0..7", sp.Start, sp.End)
	}
}
