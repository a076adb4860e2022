package parser

import (
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"github.com/rwiggins1/adequate-c/internal/diag"
	"github.com/rwiggins1/adequate-c/internal/token"
	"github.com/rwiggins1/adequate-c/internal/types"
)

// ParseType разбирает аннотацию типа:
//
//	Type    := ("const" | "static") Type | Base Suffix*
//	Base    := int | float | double | char | bool | void | string | "struct" Ident
//	Suffix  := "[" NumberLit "]"
//
// Квалификатор оборачивает весь остаток, так что "const int[3]" это const (int[3]).
func (p *Parser) ParseType() (*types.Type, bool) {
	ok := p.enter()
	defer p.leave()
	if !ok {
		return nil, false
	}
	tok := p.lx.Peek()
	switch {
	case tok.Kind == token.KwConst || tok.Kind == token.KwStatic:
		p.advance()
		inner, ok := p.ParseType()
		if !ok {
			return nil, false
		}
		if tok.Kind == token.KwConst {
			return types.ConstOf(inner), true
		}
		return types.StaticOf(inner), true

	case tok.Kind == token.KwStruct:
		p.advance()
		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "struct name")
		if !ok {
			return nil, false
		}
		return p.parseTypeSuffix(types.StructNamed(nameTok.Text))

	case tok.Kind.IsTypeKeyword():
		p.advance()
		base, _ := types.FromKeyword(tok.Kind)
		return p.parseTypeSuffix(base)

	default:
		p.errUnexpected(diag.SynExpectType, "type")
		return nil, false
	}
}

// parseTypeSuffix навешивает на base суффиксы массивов: int[3][2].
func (p *Parser) parseTypeSuffix(base *types.Type) (*types.Type, bool) {
	t := base
	for p.at(token.LBracket) {
		p.advance()
		sizeTok, ok := p.expect(token.NumberLit, diag.SynExpectArraySize, "array size")
		if !ok {
			return nil, false
		}
		size, err := strconv.ParseUint(sizeTok.Text, 10, 32)
		if err != nil {
			p.errAt(sizeTok, diag.SynBadArraySize, fmt.Sprintf("array size must be a non-negative integer, got '%s'", sizeTok.Text))
			return nil, false
		}
		if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "']'"); !ok {
			return nil, false
		}
		n, err := safecast.Conv[uint32](size)
		if err != nil {
			panic(fmt.Errorf("array size overflow: %w", err))
		}
		t = types.ArrayOf(t, n)
	}
	return t, true
}
