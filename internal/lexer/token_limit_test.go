package lexer

import (
	"strings"
	"testing"

	"github.com/rwiggins1/adequate-c/internal/diag"
	"github.com/rwiggins1/adequate-c/internal/source"
	"github.com/rwiggins1/adequate-c/internal/token"
)

func TestTokenTooLongIsReportedButEmitted(t *testing.T) {
	content := strings.Repeat("a", 9) + " b"
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("long.adc", []byte(content)))

	bag := diag.NewBag(4)
	lx := New(file, Options{Reporter: diag.BagReporter{Bag: bag}, MaxTokenLen: 8})

	tok := lx.Next()
	if tok.Kind != token.Ident || len(tok.Text) != 9 {
		t.Fatalf("expected 9-byte ident, got %v %q", tok.Kind, tok.Text)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexTokenTooLong {
		t.Fatalf("expected LexTokenTooLong, got %v", bag.Items())
	}
	if next := lx.Next(); next.Text != "b" {
		t.Fatalf("lexing must continue, got %v", next)
	}
}

func TestTokenAtLimitAllowed(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("limit.adc", []byte(strings.Repeat("b", 8))))

	bag := diag.NewBag(1)
	lx := New(file, Options{Reporter: diag.BagReporter{Bag: bag}, MaxTokenLen: 8})
	if tok := lx.Next(); tok.Kind != token.Ident {
		t.Fatalf("expected ident token, got %v", tok.Kind)
	}
	if bag.HasErrors() {
		t.Fatalf("did not expect diagnostics, got %v", bag.Items())
	}
}
