package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/rwiggins1/adequate-c/internal/ast"
	"github.com/rwiggins1/adequate-c/internal/diag"
	"github.com/rwiggins1/adequate-c/internal/lexer"
	"github.com/rwiggins1/adequate-c/internal/source"
)

// newTestParser создаёт парсер поверх виртуального файла; лексер и парсер пишут в один Bag.
func newTestParser(src string, opts Options) (*Parser, *ast.Builder, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.adc", []byte(src))
	file := fs.Get(fileID)

	bag := diag.NewBag(100)
	rep := &diag.BagReporter{Bag: bag}
	if opts.Reporter == nil {
		opts.Reporter = rep
	}
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	return New(lx, builder, opts), builder, bag
}

// parseSource разбирает файл целиком через ParseFile.
func parseSource(t *testing.T, src string) (Result, *ast.Builder, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.adc", []byte(src))
	file := fs.Get(fileID)

	bag := diag.NewBag(100)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := ParseFile(lx, builder, Options{Reporter: rep})
	if res.Bag != bag {
		t.Fatalf("Result.Bag must be the reporter's bag")
	}
	return res, builder, bag
}

func expectNoDiagnostics(t *testing.T, bag *diag.Bag) {
	t.Helper()
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", dumpDiagnostics(bag))
	}
}

// expectSingleDiagnostic проверяет, что в Bag ровно одна диагностика с нужным кодом.
func expectSingleDiagnostic(t *testing.T, bag *diag.Bag, code diag.Code) diag.Diagnostic {
	t.Helper()
	if bag.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic %s, got %d:\n%s", code.ID(), bag.Len(), dumpDiagnostics(bag))
	}
	d := bag.Items()[0]
	if d.Code != code {
		t.Fatalf("expected %s, got %s: %s", code.ID(), d.Code.ID(), d.Message)
	}
	return d
}

func dumpDiagnostics(bag *diag.Bag) string {
	var sb strings.Builder
	for _, d := range bag.Items() {
		fmt.Fprintf(&sb, "  %s %d:%d %s\n", d.Code.ID(), d.Line, d.Column, d.Message)
	}
	return sb.String()
}

// renderExpr печатает выражение в виде s-выражения: (+ 1 (* 2 3)).
func renderExpr(b *ast.Builder, id ast.ExprID) string {
	expr := b.Exprs.Get(id)
	if expr == nil {
		return "<nil>"
	}
	switch expr.Kind {
	case ast.ExprNumber:
		n, _ := b.Exprs.Number(id)
		return b.Name(n.Raw)
	case ast.ExprString:
		s, _ := b.Exprs.StringLit(id)
		return fmt.Sprintf("%q", b.Name(s.Value))
	case ast.ExprChar:
		c, _ := b.Exprs.Char(id)
		return fmt.Sprintf("'%c'", c.Value)
	case ast.ExprBool:
		v, _ := b.Exprs.Bool(id)
		return fmt.Sprint(v.Value)
	case ast.ExprVariable:
		v, _ := b.Exprs.Variable(id)
		return b.Name(v.Name)
	case ast.ExprUnary:
		u, _ := b.Exprs.Unary(id)
		if u.Postfix {
			return fmt.Sprintf("(%s%s)", renderExpr(b, u.Operand), u.Op)
		}
		return fmt.Sprintf("(%s%s)", u.Op, renderExpr(b, u.Operand))
	case ast.ExprBinary:
		bin, _ := b.Exprs.Binary(id)
		return fmt.Sprintf("(%s %s %s)", bin.Op, renderExpr(b, bin.Left), renderExpr(b, bin.Right))
	case ast.ExprCall:
		call, _ := b.Exprs.Call(id)
		args := make([]string, 0, len(call.Args))
		for _, a := range call.Args {
			args = append(args, renderExpr(b, a))
		}
		return fmt.Sprintf("%s(%s)", b.Name(call.Callee), strings.Join(args, ", "))
	}
	return "?"
}
