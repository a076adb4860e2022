package lexer

import (
	"github.com/rwiggins1/adequate-c/internal/diag"
	"github.com/rwiggins1/adequate-c/internal/token"
)

// scanString читает до следующей неэкранированной '"' или конца буфера.
// '\' забирает следующий байт целиком; сами escape-последовательности не разбираются,
// лексема остаётся как в исходнике. Перевод строки внутри литерала допустим.
// Незакрытая строка → StringLit без закрывающей кавычки + ошибка лексера.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '\\' {
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
			continue
		}
		if b == '"' {
			return token.Token{Kind: token.StringLit, Span: lx.cursor.SpanFrom(start), Text: lx.text(start)}
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, start, "unterminated string literal")
	return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(start)}
}

// scanChar читает символьный литерал до неэкранированной кавычки, конца строки или буфера.
// Длину содержимого проверяет парсер.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '\''
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		b := lx.cursor.Bump()
		if b == '\\' {
			if !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			continue
		}
		if b == '\'' {
			return token.Token{Kind: token.CharLit, Span: lx.cursor.SpanFrom(start), Text: lx.text(start)}
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedChar, sp, start, "unterminated character literal")
	return token.Token{Kind: token.CharLit, Span: sp, Text: lx.text(start)}
}
