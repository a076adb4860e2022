package parser

import (
	"fmt"

	"github.com/rwiggins1/adequate-c/internal/diag"
	"github.com/rwiggins1/adequate-c/internal/source"
	"github.com/rwiggins1/adequate-c/internal/token"
)

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
		p.consumed++
	}
	return tok
}

// spanFrom покрывает диапазон от start до последнего съеденного токена.
func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}

// expect: ожидаем конкретный токен. Если нет, репортим и возвращаем (текущий,false).
// what описывает ожидаемое для сообщения: "';'", "identifier".
func (p *Parser) expect(k token.Kind, code diag.Code, what string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.errUnexpected(code, what)
	return p.lx.Peek(), false
}

// errUnexpected сообщает о неожиданном текущем токене. Invalid-токены
// всегда репортятся как неизвестный символ.
func (p *Parser) errUnexpected(code diag.Code, what string) {
	tok := p.lx.Peek()
	switch {
	case tok.Kind == token.Invalid:
		p.errAt(tok, diag.SynUnexpectedCharacter, fmt.Sprintf("unexpected character '%s'", tok.Text))
	case isReservedKeyword(tok.Kind):
		p.errAt(tok, diag.SynKeywordNotSupported, fmt.Sprintf("keyword '%s' is reserved and not supported here", tok.Text))
	default:
		p.errAt(tok, code, fmt.Sprintf("expected %s, got %s", what, tok.Describe()))
	}
}

// errAt репортит ошибку в позиции токена.
func (p *Parser) errAt(tok token.Token, code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, tok, msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, tok token.Token, msg string) bool {
	if sev == diag.SevError {
		p.errors++
		if p.opts.MaxErrors > 0 && p.errors > p.opts.MaxErrors {
			return false // достигли максимального количества ошибок
		}
	}
	if p.opts.Reporter == nil {
		return false
	}
	diag.NewReportBuilder(p.opts.Reporter, diag.PhaseParser, sev, code, tok.Span, tok.Line, tok.Col, msg).Emit()
	return true
}

// enter увеличивает вложенность; false, если предел превышен. Ошибка
// выдаётся один раз, пока разбор не вернётся на верхний уровень.
// Парный leave обязателен в любом случае.
func (p *Parser) enter() bool {
	p.depth++
	if p.depth <= maxNestingDepth {
		return true
	}
	if !p.tooDeep {
		p.tooDeep = true
		tok := p.lx.Peek()
		p.errAt(tok, diag.SynTooDeep, fmt.Sprintf("nesting exceeds %d levels at %s", maxNestingDepth, tok.Describe()))
	}
	return false
}

func (p *Parser) leave() {
	p.depth--
	if p.depth == 0 {
		p.tooDeep = false
	}
}
