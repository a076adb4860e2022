package parser

import (
	"github.com/rwiggins1/adequate-c/internal/ast"
	"github.com/rwiggins1/adequate-c/internal/diag"
	"github.com/rwiggins1/adequate-c/internal/token"
)

// parseReturnStmt: "return" [Expr] ";".
func (p *Parser) parseReturnStmt() (ast.StmtID, bool) {
	kw := p.advance()
	value, ok := p.parseOptionalValue()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewReturn(p.spanFrom(kw.Span), value), true
}

// parseBreakStmt: "break" [Expr] ";".
func (p *Parser) parseBreakStmt() (ast.StmtID, bool) {
	kw := p.advance()
	value, ok := p.parseOptionalValue()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewBreak(p.spanFrom(kw.Span), value), true
}

func (p *Parser) parseOptionalValue() (ast.ExprID, bool) {
	value := ast.NoExprID
	if !p.at(token.Semicolon) {
		var ok bool
		if value, ok = p.ParseExpr(); !ok {
			return ast.NoExprID, false
		}
	}
	if !p.expectSemicolon() {
		return ast.NoExprID, false
	}
	return value, true
}

// parseCondition: "(" Expr ")".
func (p *Parser) parseCondition() (ast.ExprID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynExpectLParen, "'('"); !ok {
		return ast.NoExprID, false
	}
	cond, ok := p.ParseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "')'"); !ok {
		return ast.NoExprID, false
	}
	return cond, true
}

// parseIfStmt: "if" "(" Expr ")" Block ["else" (Block | IfStmt)].
// else-if оборачивается в синтетический блок, чтобы ветка else всегда была блоком.
func (p *Parser) parseIfStmt() (ast.StmtID, bool) {
	kw := p.advance()
	cond, ok := p.parseCondition()
	if !ok {
		return ast.NoStmtID, false
	}
	then, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}

	els := ast.NoStmtID
	if p.at(token.KwElse) {
		p.advance()
		if p.at(token.KwIf) {
			nested, ok := p.parseIfStmt()
			if !ok {
				return ast.NoStmtID, false
			}
			els = p.arenas.Stmts.NewBlock(p.arenas.Stmts.Get(nested).Span, []ast.StmtID{nested})
		} else if els, ok = p.parseBlock(); !ok {
			return ast.NoStmtID, false
		}
	}
	return p.arenas.Stmts.NewIf(p.spanFrom(kw.Span), cond, then, els), true
}

// parseForStmt: "for" "(" [Init] ";" [Cond] ";" [Update] ")" Block.
// Init: объявление переменной или присваивание (вместе со своим ';'),
// Update: присваивание или выражение без ';'.
func (p *Parser) parseForStmt() (ast.StmtID, bool) {
	kw := p.advance()
	if _, ok := p.expect(token.LParen, diag.SynExpectLParen, "'('"); !ok {
		return ast.NoStmtID, false
	}

	init := ast.NoStmtID
	var ok bool
	switch {
	case p.at(token.Semicolon):
		p.advance()
	case isTypeStart(p.lx.Peek().Kind):
		if init, ok = p.ParseVarDecl(); !ok {
			return ast.NoStmtID, false
		}
	case p.at(token.Ident):
		if init, ok = p.parseIdentStmt(true); !ok {
			return ast.NoStmtID, false
		}
	default:
		if init, ok = p.parseExprStmt(true); !ok {
			return ast.NoStmtID, false
		}
	}

	cond := ast.NoExprID
	if !p.at(token.Semicolon) {
		if cond, ok = p.ParseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	if !p.expectSemicolon() {
		return ast.NoStmtID, false
	}

	update := ast.NoStmtID
	switch {
	case p.at(token.RParen):
	case p.at(token.Ident):
		if update, ok = p.parseIdentStmt(false); !ok {
			return ast.NoStmtID, false
		}
	default:
		if update, ok = p.parseExprStmt(false); !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "')'"); !ok {
		return ast.NoStmtID, false
	}

	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewFor(p.spanFrom(kw.Span), init, cond, update, body), true
}

// parseWhileStmt: "while" "(" Expr ")" Block.
func (p *Parser) parseWhileStmt() (ast.StmtID, bool) {
	kw := p.advance()
	cond, ok := p.parseCondition()
	if !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewWhile(p.spanFrom(kw.Span), cond, body), true
}

// parseDoWhileStmt: "do" Block "while" "(" Expr ")" ";".
func (p *Parser) parseDoWhileStmt() (ast.StmtID, bool) {
	kw := p.advance()
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.KwWhile, diag.SynExpectWhile, "'while'"); !ok {
		return ast.NoStmtID, false
	}
	cond, ok := p.parseCondition()
	if !ok {
		return ast.NoStmtID, false
	}
	if !p.expectSemicolon() {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewDoWhile(p.spanFrom(kw.Span), body, cond), true
}
