package lexer

import (
	"github.com/rwiggins1/adequate-c/internal/token"
)

// scanNumber: DIGITS [ '.' DIGITS ]. Экспоненты и префиксов нет.
// "1." оставляет точку отдельным токеном Dot.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	lx.eatDigits()

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		lx.cursor.Bump() // '.'
		lx.eatDigits()
	}

	return token.Token{Kind: token.NumberLit, Span: lx.cursor.SpanFrom(start), Text: lx.text(start)}
}

func (lx *Lexer) eatDigits() {
	for !lx.cursor.EOF() && isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}
