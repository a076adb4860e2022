package lexer

import (
	"github.com/rwiggins1/adequate-c/internal/diag"
	"github.com/rwiggins1/adequate-c/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil: тогда ошибки игнорируем (но продолжаем лексить)
	// MaxTokenLen limits the byte length of a single lexeme; 0 = unlimited.
	// Longer lexemes are reported but still emitted.
	MaxTokenLen int
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, at Mark, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	diag.ReportError(lx.opts.Reporter, diag.PhaseLexer, code, sp, at.Line, at.Col, msg).Emit()
}
