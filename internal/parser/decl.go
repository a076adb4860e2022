package parser

import (
	"github.com/rwiggins1/adequate-c/internal/ast"
	"github.com/rwiggins1/adequate-c/internal/diag"
	"github.com/rwiggins1/adequate-c/internal/token"
	"github.com/rwiggins1/adequate-c/internal/types"
)

// ParseDecl разбирает одну декларацию верхнего уровня (или внутри namespace).
// Не восстанавливается: resync выполняет вызывающий цикл.
func (p *Parser) ParseDecl() (ast.DeclID, bool) {
	ok := p.enter()
	defer p.leave()
	if !ok {
		return ast.NoDeclID, false
	}
	tok := p.lx.Peek()
	switch {
	case tok.Kind == token.KwFunc:
		return p.parseFnDecl()
	case tok.Kind == token.KwStruct:
		return p.parseStructOrGlobal()
	case tok.Kind == token.KwNamespace:
		return p.parseNamespaceDecl()
	case isTypeStart(tok.Kind):
		v, ok := p.ParseVarDecl()
		if !ok {
			return ast.NoDeclID, false
		}
		return p.arenas.Decls.NewGlobal(p.arenas.Stmts.Get(v).Span, v), true
	default:
		p.errUnexpected(diag.SynUnexpectedTopLevel, "declaration")
		return ast.NoDeclID, false
	}
}

// parseFnDecl: "func" Ident "(" [Param ("," Param)*] ")" ["->" Type] Block.
// Без "->" функция возвращает void.
func (p *Parser) parseFnDecl() (ast.DeclID, bool) {
	kw := p.advance()
	name, _, ok := p.parseIdent("function name")
	if !ok {
		return ast.NoDeclID, false
	}
	params, ok := p.parseFnParams()
	if !ok {
		return ast.NoDeclID, false
	}

	result := types.Void()
	if p.at(token.Arrow) {
		p.advance()
		if result, ok = p.ParseType(); !ok {
			return ast.NoDeclID, false
		}
	}

	if !p.at(token.LBrace) {
		p.errUnexpected(diag.SynExpectLBrace, "'{' to start function body")
		return ast.NoDeclID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoDeclID, false
	}
	return p.arenas.Decls.NewFn(p.spanFrom(kw.Span), name, params, result, body), true
}

func (p *Parser) parseFnParams() ([]ast.FnParam, bool) {
	if _, ok := p.expect(token.LParen, diag.SynExpectLParen, "'('"); !ok {
		return nil, false
	}
	var params []ast.FnParam
	if p.at(token.RParen) {
		p.advance()
		return params, true
	}
	for {
		start := p.lx.Peek().Span
		typ, ok := p.ParseType()
		if !ok {
			return nil, false
		}
		name, _, ok := p.parseIdent("parameter name")
		if !ok {
			return nil, false
		}
		params = append(params, ast.FnParam{Type: typ, Name: name, Span: p.spanFrom(start)})

		switch {
		case p.at(token.RParen):
			p.advance()
			return params, true
		case p.at(token.Comma):
			p.advance()
			if p.at(token.RParen) {
				p.errAt(p.lx.Peek(), diag.SynTrailingComma, "trailing comma before ')' in parameter list")
				return nil, false
			}
		default:
			p.errUnexpected(diag.SynExpectComma, "',' or ')'")
			return nil, false
		}
	}
}

// parseStructOrGlobal различает "struct Name { ... }" и глобальную
// переменную структурного типа "struct Name v;" по токену после имени.
func (p *Parser) parseStructOrGlobal() (ast.DeclID, bool) {
	kw := p.advance()
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "struct name")
	if !ok {
		return ast.NoDeclID, false
	}

	if !p.at(token.LBrace) {
		typ, ok := p.parseTypeSuffix(types.StructNamed(nameTok.Text))
		if !ok {
			return ast.NoDeclID, false
		}
		v, ok := p.parseVarDeclRest(kw.Span, typ)
		if !ok {
			return ast.NoDeclID, false
		}
		return p.arenas.Decls.NewGlobal(p.arenas.Stmts.Get(v).Span, v), true
	}

	// "struct" Ident "{" Field* "}" [";"]
	p.advance()
	var fields []ast.StmtID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		mark := p.consumed
		if !isTypeStart(p.lx.Peek().Kind) {
			p.errUnexpected(diag.SynExpectType, "field declaration")
			p.resyncNested(mark, isTypeStart)
			continue
		}
		field, ok := p.ParseVarDecl()
		if !ok {
			p.resyncNested(mark, isTypeStart)
			continue
		}
		fields = append(fields, field)
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "'}'"); !ok {
		return ast.NoDeclID, false
	}
	if p.at(token.Semicolon) {
		p.advance()
	}

	name := p.arenas.StringsInterner.Intern(nameTok.Text)
	return p.arenas.Decls.NewStruct(p.spanFrom(kw.Span), name, fields), true
}

// parseNamespaceDecl: "namespace" Ident "{" Decl* "}".
func (p *Parser) parseNamespaceDecl() (ast.DeclID, bool) {
	kw := p.advance()
	name, _, ok := p.parseIdent("namespace name")
	if !ok {
		return ast.NoDeclID, false
	}
	if _, ok := p.expect(token.LBrace, diag.SynExpectLBrace, "'{'"); !ok {
		return ast.NoDeclID, false
	}

	var decls []ast.DeclID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		mark := p.consumed
		declID, ok := p.ParseDecl()
		if !ok {
			p.resyncNested(mark, isDeclStarter)
			continue
		}
		decls = append(decls, declID)
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "'}'"); !ok {
		return ast.NoDeclID, false
	}
	return p.arenas.Decls.NewNamespace(p.spanFrom(kw.Span), name, decls), true
}
