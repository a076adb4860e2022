package parser

import (
	"testing"

	"github.com/rwiggins1/adequate-c/internal/ast"
	"github.com/rwiggins1/adequate-c/internal/diag"
	"github.com/rwiggins1/adequate-c/internal/types"
)

func TestParseFile_GlobalVarDecl(t *testing.T) {
	res, b, bag := parseSource(t, "int x = 2 + 3;")
	expectNoDiagnostics(t, bag)

	root, ok := res.Root()
	if !ok {
		t.Fatal("Root must be present for a clean parse")
	}
	file := b.Files.Get(root)
	if len(file.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(file.Decls))
	}
	g, ok := b.Decls.Global(file.Decls[0])
	if !ok {
		t.Fatalf("expected global, got %s", b.Decls.Get(file.Decls[0]).Kind)
	}
	v, _ := b.Stmts.VarDecl(g.Var)
	if !v.Type.Equal(types.Int()) || b.Name(v.Name) != "x" {
		t.Errorf("unexpected var decl %s %s", v.Type, b.Name(v.Name))
	}
	if got := renderExpr(b, v.Init); got != "(+ 2 3)" {
		t.Errorf("init = %s", got)
	}
}

func TestParseFile_MissingIdentifierSingleError(t *testing.T) {
	res, b, bag := parseSource(t, "int = 3;")
	d := expectSingleDiagnostic(t, bag, diag.SynExpectIdentifier)
	if d.Line != 1 || d.Column != 5 {
		t.Errorf("position %d:%d, want 1:5", d.Line, d.Column)
	}
	if _, ok := res.Root(); ok {
		t.Error("Root must be absent after an error")
	}
	if n := len(b.Files.Get(res.File).Decls); n != 0 {
		t.Errorf("expected no decls, got %d", n)
	}
	if res.Errors != 1 {
		t.Errorf("Errors = %d", res.Errors)
	}
}

func TestParseFile_Function(t *testing.T) {
	src := `
func add(int a, float[3] b) -> int {
	return a + 1;
}

func main() {
	int r = add(1, 2);
}
`
	res, b, bag := parseSource(t, src)
	expectNoDiagnostics(t, bag)
	root, _ := res.Root()
	decls := b.Files.Get(root).Decls
	if len(decls) != 2 {
		t.Fatalf("expected 2 decls, got %d", len(decls))
	}

	add, ok := b.Decls.Fn(decls[0])
	if !ok {
		t.Fatal("expected function")
	}
	if b.Name(add.Name) != "add" {
		t.Errorf("name = %q", b.Name(add.Name))
	}
	if len(add.Params) != 2 {
		t.Fatalf("params = %d", len(add.Params))
	}
	if b.Name(add.Params[0].Name) != "a" || !add.Params[0].Type.Equal(types.Int()) {
		t.Errorf("param 0 = %s %s", add.Params[0].Type, b.Name(add.Params[0].Name))
	}
	if got := add.Params[1].Type.String(); got != "float[3]" {
		t.Errorf("param 1 type = %s", got)
	}
	if !add.Result.Equal(types.Int()) {
		t.Errorf("result = %s", add.Result)
	}

	mainFn, _ := b.Decls.Fn(decls[1])
	if !mainFn.Result.Equal(types.Void()) {
		t.Errorf("omitted result must be void, got %s", mainFn.Result)
	}
	if len(mainFn.Params) != 0 {
		t.Errorf("main params = %d", len(mainFn.Params))
	}
}

func TestParseFile_StructAndNamespace(t *testing.T) {
	src := `
struct Point {
	int x;
	int y;
};

struct Point origin;

namespace geo {
	double scale = 1.5;
	func norm(struct Point p) -> double { return 0; }
}
`
	res, b, bag := parseSource(t, src)
	expectNoDiagnostics(t, bag)
	root, _ := res.Root()
	decls := b.Files.Get(root).Decls
	if len(decls) != 3 {
		t.Fatalf("expected 3 decls, got %d", len(decls))
	}

	st, ok := b.Decls.Struct(decls[0])
	if !ok {
		t.Fatal("expected struct")
	}
	if b.Name(st.Name) != "Point" || len(st.Fields) != 2 {
		t.Errorf("struct %s with %d fields", b.Name(st.Name), len(st.Fields))
	}

	g, ok := b.Decls.Global(decls[1])
	if !ok {
		t.Fatal("expected global of struct type")
	}
	v, _ := b.Stmts.VarDecl(g.Var)
	if !v.Type.Equal(types.StructNamed("Point")) {
		t.Errorf("global type = %s", v.Type)
	}

	ns, ok := b.Decls.Namespace(decls[2])
	if !ok {
		t.Fatal("expected namespace")
	}
	if b.Name(ns.Name) != "geo" || len(ns.Decls) != 2 {
		t.Errorf("namespace %s with %d decls", b.Name(ns.Name), len(ns.Decls))
	}
	if b.Decls.Get(ns.Decls[1]).Kind != ast.DeclFunction {
		t.Errorf("nested decl kind = %s", b.Decls.Get(ns.Decls[1]).Kind)
	}
}

func TestParseFile_RecoveryAcrossDecls(t *testing.T) {
	src := `int = 3;
int y = 4;
func f() { int a = ; int b = 2; }
} 
double z;`
	res, b, bag := parseSource(t, src)
	if bag.ErrorCount() != 3 {
		t.Fatalf("expected 3 errors, got:\n%s", dumpDiagnostics(bag))
	}
	if _, ok := res.Root(); ok {
		t.Error("Root must be absent")
	}
	decls := b.Files.Get(res.File).Decls
	if len(decls) != 3 {
		t.Fatalf("expected 3 surviving decls, got %d", len(decls))
	}
	fn, ok := b.Decls.Fn(decls[1])
	if !ok {
		t.Fatal("function must survive a bad statement")
	}
	body, _ := b.Stmts.Block(fn.Body)
	if len(body.Stmts) != 1 {
		t.Errorf("body keeps %d stmts, want 1", len(body.Stmts))
	}
	if b.Decls.Get(decls[2]).Kind != ast.DeclGlobal {
		t.Error("trailing global must survive a stray '}'")
	}
}

func TestParseFile_InvalidTokenReportedOnce(t *testing.T) {
	_, _, bag := parseSource(t, "int x = 1 @ 2;\nint y;")
	d := expectSingleDiagnostic(t, bag, diag.SynUnexpectedCharacter)
	if d.Line != 1 || d.Column != 11 {
		t.Errorf("position %d:%d, want 1:11", d.Line, d.Column)
	}
}

func TestParseFile_TopLevelErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
	}{
		{"statement at top level", "x = 1;", diag.SynUnexpectedTopLevel},
		{"reserved keyword", "class A;", diag.SynKeywordNotSupported},
		{"function without name", "func () { }", diag.SynExpectIdentifier},
		{"function without body", "func f();", diag.SynExpectLBrace},
		{"param trailing comma", "func f(int a,) { }", diag.SynTrailingComma},
		{"param missing comma", "func f(int a b) { }", diag.SynExpectComma},
		{"param without type", "func f(a) { }", diag.SynExpectType},
		{"struct field not a decl", "struct S { x; }", diag.SynExpectType},
		{"unclosed namespace", "namespace n { int a;", diag.SynUnclosedBrace},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, _, bag := parseSource(t, tt.input)
			expectSingleDiagnostic(t, bag, tt.code)
			if _, ok := res.Root(); ok {
				t.Error("Root must be absent")
			}
		})
	}
}

func TestParseFile_LexerErrorMakesRootAbsent(t *testing.T) {
	res, _, bag := parseSource(t, "int x = 1; /* never closed")
	expectSingleDiagnostic(t, bag, diag.LexUnterminatedBlockComment)
	if res.Errors != 0 {
		t.Errorf("parser errors = %d", res.Errors)
	}
	if _, ok := res.Root(); ok {
		t.Error("Root must be absent when the lexer failed")
	}
}

func TestParseFile_MaxErrors(t *testing.T) {
	p, _, bag := newTestParser("int = 1; int = 2; int = 3;", Options{MaxErrors: 2})
	if _, ok := p.ParseProgram(); ok {
		t.Fatal("expected failure")
	}
	if bag.Len() != 2 {
		t.Errorf("reported %d diagnostics, want 2", bag.Len())
	}
	if p.Errors() != 3 {
		t.Errorf("Errors() = %d, want 3", p.Errors())
	}
}

func TestParseFile_Empty(t *testing.T) {
	res, b, bag := parseSource(t, "  // nothing here\n")
	expectNoDiagnostics(t, bag)
	root, ok := res.Root()
	if !ok {
		t.Fatal("empty file must parse")
	}
	if len(b.Files.Get(root).Decls) != 0 {
		t.Error("expected no decls")
	}
}
