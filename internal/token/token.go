package token

import (
	"fmt"

	"github.com/rwiggins1/adequate-c/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Text    string
	Line    uint32 // 1-based
	Col     uint32 // 1-based, bytes
	Span    source.Span
	Leading []Trivia
}

func (t Token) IsLiteral() bool     { return t.Kind.IsLiteral() }
func (t Token) IsPunctOrOp() bool   { return t.Kind.IsPunctOrOp() }
func (t Token) IsKeyword() bool     { return t.Kind.IsKeyword() }
func (t Token) IsTypeKeyword() bool { return t.Kind.IsTypeKeyword() }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

func (t Token) String() string {
	return fmt.Sprintf("%s %q @%d:%d", t.Kind, t.Text, t.Line, t.Col)
}

// Describe renders the token for error messages: the quoted lexeme, or
// "end of file".
func (t Token) Describe() string {
	if t.Kind == EOF {
		return "end of file"
	}
	return fmt.Sprintf("'%s'", t.Text)
}
