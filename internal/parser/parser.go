package parser

import (
	"slices"

	"github.com/rwiggins1/adequate-c/internal/ast"
	"github.com/rwiggins1/adequate-c/internal/diag"
	"github.com/rwiggins1/adequate-c/internal/lexer"
	"github.com/rwiggins1/adequate-c/internal/source"
	"github.com/rwiggins1/adequate-c/internal/token"
)

type Options struct {
	// MaxErrors caps how many errors reach the Reporter; 0 = unlimited.
	// Parsing itself continues past the cap.
	MaxErrors uint
	Reporter  diag.Reporter
}

type Result struct {
	File   ast.FileID
	Bag    *diag.Bag
	Errors uint // ошибки парсера, включая не попавшие в Reporter из-за MaxErrors
}

// Unreported returns how many errors MaxErrors kept from the Reporter.
func (r Result) Unreported(opts Options) uint {
	if opts.MaxErrors == 0 || r.Errors <= opts.MaxErrors {
		return 0
	}
	return r.Errors - opts.MaxErrors
}

// Root returns the file only when parsing produced no errors, lexer errors included.
func (r Result) Root() (ast.FileID, bool) {
	if r.Errors > 0 || (r.Bag != nil && r.Bag.HasErrors()) {
		return ast.NoFileID, false
	}
	return r.File, r.File.IsValid()
}

// Parser: состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer // поток токенов (Peek/Next)
	arenas   *ast.Builder // построитель аренных узлов
	opts     Options
	errors   uint
	consumed uint        // счётчик съеденных токенов, для гарантии прогресса в resync
	lastSpan source.Span // span последнего съеденного токена
	depth    uint        // текущая вложенность выражений, инструкций, деклараций и типов
	tooDeep  bool        // SynTooDeep уже выдан для текущей конструкции
}

// maxNestingDepth ограничивает рекурсию парсера, чтобы глубоко вложенный
// вход давал ошибку, а не переполнение стека.
const maxNestingDepth = 1000

func New(lx *lexer.Lexer, arenas *ast.Builder, opts Options) *Parser {
	return &Parser{
		lx:     lx,
		arenas: arenas,
		opts:   opts,
	}
}

// ParseFile: входная точка для разбора одного файла.
// Требует уже созданный lexer (на основе source.File).
func ParseFile(lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	p := New(lx, arenas, opts)
	file, _ := p.ParseProgram()

	return Result{
		File:   file,
		Bag:    diag.BagOf(opts.Reporter),
		Errors: p.errors,
	}
}

// Errors reports how many errors this parser has hit so far.
func (p *Parser) Errors() uint {
	return p.errors
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// ParseProgram разбирает декларации до EOF. После неудачной декларации
// выполняется resyncTop, так что одна ошибка не обрывает разбор файла.
// ok == false, если во время разбора была хотя бы одна ошибка.
func (p *Parser) ParseProgram() (ast.FileID, bool) {
	before := p.errors
	start := p.lx.Peek().Span
	file := p.arenas.NewFile(start)

	for !p.at(token.EOF) {
		mark := p.consumed
		declID, ok := p.ParseDecl()
		if !ok {
			p.resyncTop(mark)
			continue
		}
		p.arenas.PushDecl(file, declID)
	}

	f := p.arenas.Files.Get(file)
	f.Span = start.Cover(p.lx.Peek().Span)
	return file, p.errors == before
}

// resyncTop: восстановление после ошибки на верхнем уровне:
// съедаем хотя бы один токен, затем прокручиваем до ';' (съедаем), '}' (съедаем)
// или стартового токена следующей декларации.
func (p *Parser) resyncTop(mark uint) {
	if p.consumed == mark && !p.at(token.EOF) {
		if tok := p.advance(); tok.Kind == token.Semicolon || tok.Kind == token.RBrace {
			return
		}
	}
	for !p.at(token.EOF) {
		k := p.lx.Peek().Kind
		switch {
		case k == token.Semicolon || k == token.RBrace:
			p.advance()
			return
		case isDeclStarter(k):
			return
		}
		p.advance()
	}
}

// resyncNested: то же, что resyncTop, но '}' не съедается: он закрывает
// объемлющий namespace, struct или блок.
func (p *Parser) resyncNested(mark uint, starter func(token.Kind) bool) {
	if p.consumed == mark && !p.at(token.EOF) && !p.at(token.RBrace) {
		if tok := p.advance(); tok.Kind == token.Semicolon {
			return
		}
	}
	for !p.at(token.EOF) {
		k := p.lx.Peek().Kind
		switch {
		case k == token.Semicolon:
			p.advance()
			return
		case k == token.RBrace || starter(k):
			return
		}
		p.advance()
	}
}

// isDeclStarter: принадлежит ли токен стартерам декларации.
func isDeclStarter(k token.Kind) bool {
	switch k {
	case token.KwFunc, token.KwStruct, token.KwNamespace, token.KwConst, token.KwStatic:
		return true
	default:
		return k.IsTypeKeyword()
	}
}

// isStmtStarter: принадлежит ли токен стартерам инструкции (без идентификаторов:
// на них остановка даёт каскад ошибок).
func isStmtStarter(k token.Kind) bool {
	switch k {
	case token.KwIf, token.KwFor, token.KwWhile, token.KwDo, token.KwReturn, token.KwBreak,
		token.LBrace, token.KwConst, token.KwStatic, token.KwStruct:
		return true
	default:
		return k.IsTypeKeyword()
	}
}

// isTypeStart: может ли токен начинать аннотацию типа.
func isTypeStart(k token.Kind) bool {
	return k.IsTypeKeyword() || k == token.KwConst || k == token.KwStatic || k == token.KwStruct
}

// isReservedKeyword: ключевые слова без продукции в грамматике.
func isReservedKeyword(k token.Kind) bool {
	switch k {
	case token.KwInfer, token.KwSwitch, token.KwCase, token.KwDefault, token.KwClass, token.KwEnum,
		token.KwPublic, token.KwPrivate, token.KwTry, token.KwCatch, token.KwThrow,
		token.KwOperator, token.KwImport:
		return true
	default:
		return false
	}
}

// parseIdent ожидает Ident и интернирует его, возвращает source.StringID.
func (p *Parser) parseIdent(what string) (source.StringID, token.Token, bool) {
	tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, what)
	if !ok {
		return source.NoStringID, tok, false
	}
	return p.arenas.StringsInterner.Intern(tok.Text), tok, true
}
