package parser

import (
	"github.com/rwiggins1/adequate-c/internal/ast"
	"github.com/rwiggins1/adequate-c/internal/diag"
	"github.com/rwiggins1/adequate-c/internal/source"
	"github.com/rwiggins1/adequate-c/internal/token"
	"github.com/rwiggins1/adequate-c/internal/types"
)

// ParseStatement разбирает одну инструкцию. Сама по себе не восстанавливается:
// при ошибке возвращает (NoStmtID, false), resync делает объемлющий блок.
func (p *Parser) ParseStatement() (ast.StmtID, bool) {
	ok := p.enter()
	defer p.leave()
	if !ok {
		return ast.NoStmtID, false
	}
	tok := p.lx.Peek()
	switch {
	case tok.Kind == token.LBrace:
		return p.parseBlock()
	case tok.Kind == token.KwReturn:
		return p.parseReturnStmt()
	case tok.Kind == token.KwBreak:
		return p.parseBreakStmt()
	case tok.Kind == token.KwIf:
		return p.parseIfStmt()
	case tok.Kind == token.KwFor:
		return p.parseForStmt()
	case tok.Kind == token.KwWhile:
		return p.parseWhileStmt()
	case tok.Kind == token.KwDo:
		return p.parseDoWhileStmt()
	case isTypeStart(tok.Kind):
		return p.ParseVarDecl()
	case tok.Kind == token.Ident:
		return p.parseIdentStmt(true)
	case isReservedKeyword(tok.Kind):
		p.errUnexpected(diag.SynKeywordNotSupported, "statement")
		return ast.NoStmtID, false
	default:
		return p.parseExprStmt(true)
	}
}

// parseBlock: "{" Stmt* "}". Ошибочные инструкции пропускаются через resyncStmt,
// блок при этом остаётся.
func (p *Parser) parseBlock() (ast.StmtID, bool) {
	openTok, ok := p.expect(token.LBrace, diag.SynExpectLBrace, "'{'")
	if !ok {
		return ast.NoStmtID, false
	}

	var stmts []ast.StmtID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		mark := p.consumed
		stmtID, ok := p.ParseStatement()
		if !ok {
			p.resyncNested(mark, isStmtStarter)
			continue
		}
		stmts = append(stmts, stmtID)
	}

	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "'}'"); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewBlock(p.spanFrom(openTok.Span), stmts), true
}

// ParseVarDecl: Type Ident ["=" Expr] ";".
func (p *Parser) ParseVarDecl() (ast.StmtID, bool) {
	start := p.lx.Peek().Span
	typ, ok := p.ParseType()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.parseVarDeclRest(start, typ)
}

// parseVarDeclRest продолжает объявление после уже разобранного типа.
func (p *Parser) parseVarDeclRest(start source.Span, typ *types.Type) (ast.StmtID, bool) {
	name, _, ok := p.parseIdent("identifier")
	if !ok {
		return ast.NoStmtID, false
	}

	init := ast.NoExprID
	if p.at(token.Assign) {
		p.advance()
		if init, ok = p.ParseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}

	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "';'"); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewVarDecl(p.spanFrom(start), typ, name, init), true
}

// parseIdentStmt: инструкция, начинающаяся с идентификатора:
// присваивание (x = e, x += e, ...) либо выражение (f(a), x++, x + 1).
// withSemi=false используется в заголовке for для шага цикла.
func (p *Parser) parseIdentStmt(withSemi bool) (ast.StmtID, bool) {
	nameTok := p.advance()

	if op, isAssign := assignOps[p.lx.Peek().Kind]; isAssign {
		p.advance()
		value, ok := p.ParseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		if withSemi && !p.expectSemicolon() {
			return ast.NoStmtID, false
		}
		name := p.arenas.StringsInterner.Intern(nameTok.Text)
		return p.arenas.Stmts.NewAssign(p.spanFrom(nameTok.Span), name, op, value), true
	}

	left, ok := p.parseIdentExpr(nameTok)
	if !ok {
		return ast.NoStmtID, false
	}
	expr, ok := p.parseBinaryRest(p.parsePostfixOps(left), precLogicalOr)
	if !ok {
		return ast.NoStmtID, false
	}
	if withSemi && !p.expectSemicolon() {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewExpr(p.spanFrom(nameTok.Span), expr), true
}

// parseExprStmt: Expr [";"].
func (p *Parser) parseExprStmt(withSemi bool) (ast.StmtID, bool) {
	start := p.lx.Peek().Span
	expr, ok := p.ParseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if withSemi && !p.expectSemicolon() {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewExpr(p.spanFrom(start), expr), true
}

func (p *Parser) expectSemicolon() bool {
	_, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "';'")
	return ok
}
