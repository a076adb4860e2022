package parser

import (
	"fmt"
	"strconv"

	"github.com/rwiggins1/adequate-c/internal/ast"
	"github.com/rwiggins1/adequate-c/internal/diag"
	"github.com/rwiggins1/adequate-c/internal/token"
)

// ParseExpr разбирает выражение целиком, начиная с самого низкого приоритета (||).
func (p *Parser) ParseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(precLogicalOr)
}

// parseBinaryExpr implements precedence climbing: операнд и затем операторы с приоритетом >= minPrec.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnary()
	if !ok {
		return ast.NoExprID, false
	}
	return p.parseBinaryRest(left, minPrec)
}

// parseBinaryRest продолжает бинарное выражение от уже разобранного левого операнда.
func (p *Parser) parseBinaryRest(left ast.ExprID, minPrec int) (ast.ExprID, bool) {
	for {
		opTok := p.lx.Peek()
		prec := binaryPrec(opTok.Kind)
		if prec == precNone || prec < minPrec {
			return left, true
		}
		p.advance()

		// левоассоциативность: правый операнд связывает только более сильные операторы
		right, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			return ast.NoExprID, false
		}
		span := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBinary(span, binaryOps[opTok.Kind], left, right)
	}
}

// parseUnary: префиксные операторы (- + ! ~ ++ --) и далее постфиксная форма.
func (p *Parser) parseUnary() (ast.ExprID, bool) {
	ok := p.enter()
	defer p.leave()
	if !ok {
		return ast.NoExprID, false
	}
	tok := p.lx.Peek()
	op, isPrefix := prefixOps[tok.Kind]
	if !isPrefix {
		return p.parsePostfix()
	}
	p.advance()
	operand, ok := p.parseUnary()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewUnary(p.spanFrom(tok.Span), op, operand, false), true
}

// parsePostfix: первичное выражение и постфиксные ++/-- после переменной.
func (p *Parser) parsePostfix() (ast.ExprID, bool) {
	expr, ok := p.parsePrimary()
	if !ok {
		return ast.NoExprID, false
	}
	return p.parsePostfixOps(expr), true
}

func (p *Parser) parsePostfixOps(expr ast.ExprID) ast.ExprID {
	if p.arenas.Exprs.Get(expr).Kind != ast.ExprVariable {
		return expr
	}
	var op ast.ExprUnaryOp
	switch p.lx.Peek().Kind {
	case token.PlusPlus:
		op = ast.ExprUnaryInc
	case token.MinusMinus:
		op = ast.ExprUnaryDec
	default:
		return expr
	}
	p.advance()
	span := p.arenas.Exprs.Get(expr).Span.Cover(p.lastSpan)
	return p.arenas.Exprs.NewUnary(span, op, expr, true)
}

func (p *Parser) parsePrimary() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return p.parseIdentExpr(tok)

	case token.NumberLit:
		p.advance()
		value, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			p.errAt(tok, diag.SynBadNumber, fmt.Sprintf("invalid number literal '%s'", tok.Text))
			return ast.NoExprID, false
		}
		raw := p.arenas.StringsInterner.Intern(tok.Text)
		return p.arenas.Exprs.NewNumber(tok.Span, value, raw), true

	case token.StringLit:
		p.advance()
		value := p.arenas.StringsInterner.Intern(unquote(tok.Text, '"'))
		return p.arenas.Exprs.NewStringLit(tok.Span, value), true

	case token.CharLit:
		p.advance()
		content := unquote(tok.Text, '\'')
		if len(content) != 1 {
			p.errAt(tok, diag.SynBadChar, fmt.Sprintf("character literal must hold exactly one character, got %s", tok.Describe()))
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewChar(tok.Span, content[0]), true

	case token.KwTrue, token.KwFalse:
		p.advance()
		return p.arenas.Exprs.NewBool(tok.Span, tok.Kind == token.KwTrue), true

	case token.LParen:
		p.advance()
		inner, ok := p.ParseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "')'"); !ok {
			return ast.NoExprID, false
		}
		return inner, true

	default:
		p.errUnexpected(diag.SynExpectExpression, "expression")
		return ast.NoExprID, false
	}
}

// parseIdentExpr: идентификатор уже съеден, дальше вызов функции или переменная.
func (p *Parser) parseIdentExpr(nameTok token.Token) (ast.ExprID, bool) {
	name := p.arenas.StringsInterner.Intern(nameTok.Text)
	if !p.at(token.LParen) {
		return p.arenas.Exprs.NewVariable(nameTok.Span, name), true
	}
	args, ok := p.parseCallArgs()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewCall(p.spanFrom(nameTok.Span), name, args), true
}

// parseCallArgs разбирает "(" [Expr ("," Expr)*] ")".
func (p *Parser) parseCallArgs() ([]ast.ExprID, bool) {
	p.advance() // '('
	var args []ast.ExprID
	if p.at(token.RParen) {
		p.advance()
		return args, true
	}
	for {
		arg, ok := p.ParseExpr()
		if !ok {
			return nil, false
		}
		args = append(args, arg)

		switch {
		case p.at(token.RParen):
			p.advance()
			return args, true
		case p.at(token.Comma):
			p.advance()
			if p.at(token.RParen) {
				p.errAt(p.lx.Peek(), diag.SynTrailingComma, "trailing comma before ')' in argument list")
				return nil, false
			}
		default:
			p.errUnexpected(diag.SynExpectComma, "',' or ')'")
			return nil, false
		}
	}
}

// unquote срезает открывающую кавычку и закрывающую, если она есть
// (незакрытый литерал уже зарепорчен лексером).
func unquote(text string, quote byte) string {
	if len(text) == 0 || text[0] != quote {
		return text
	}
	text = text[1:]
	if len(text) > 0 && text[len(text)-1] == quote {
		text = text[:len(text)-1]
	}
	return text
}
