package ast

import (
	"github.com/rwiggins1/adequate-c/internal/source"
	"github.com/rwiggins1/adequate-c/internal/types"
)

type StmtKind uint8

const (
	StmtBlock StmtKind = iota
	StmtReturn
	StmtBreak
	StmtAssign
	StmtVarDecl
	StmtIf
	StmtFor
	StmtWhile
	StmtDoWhile
	StmtExpr
)

func (k StmtKind) String() string {
	switch k {
	case StmtBlock:
		return "Block"
	case StmtReturn:
		return "Return"
	case StmtBreak:
		return "Break"
	case StmtAssign:
		return "Assignment"
	case StmtVarDecl:
		return "VarDecl"
	case StmtIf:
		return "If"
	case StmtFor:
		return "For"
	case StmtWhile:
		return "While"
	case StmtDoWhile:
		return "DoWhile"
	case StmtExpr:
		return "ExprStmt"
	}
	return "Stmt(?)"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

// AssignOp is the operator of an assignment statement.
type AssignOp uint8

const (
	AssignSet AssignOp = iota // =
	AssignAdd                 // +=
	AssignSub                 // -=
	AssignMul                 // *=
	AssignDiv                 // /=
	AssignMod                 // %=
)

func (op AssignOp) String() string {
	switch op {
	case AssignSet:
		return "="
	case AssignAdd:
		return "+="
	case AssignSub:
		return "-="
	case AssignMul:
		return "*="
	case AssignDiv:
		return "/="
	case AssignMod:
		return "%="
	}
	return "?"
}

type BlockStmt struct {
	Stmts []StmtID
}

// ReturnStmt and BreakStmt carry an optional value; NoExprID when absent.
type ReturnStmt struct {
	Value ExprID
}

type BreakStmt struct {
	Value ExprID
}

type AssignStmt struct {
	Name  source.StringID
	Op    AssignOp
	Value ExprID
}

type VarDeclStmt struct {
	Type *types.Type
	Name source.StringID
	Init ExprID // NoExprID без инициализатора
}

// IfStmt: Then and Else are blocks; "else if" is wrapped into a block
// holding a single nested if.
type IfStmt struct {
	Cond ExprID
	Then StmtID
	Else StmtID
}

// ForStmt: Init is a VarDecl, Assign or Expr statement; Update is an Assign or Expr.
// All three header parts are optional.
type ForStmt struct {
	Init   StmtID
	Cond   ExprID
	Update StmtID
	Body   StmtID
}

type WhileStmt struct {
	Cond ExprID
	Body StmtID
}

type DoWhileStmt struct {
	Body StmtID
	Cond ExprID
}

type ExprStmt struct {
	Expr ExprID
}

type Stmts struct {
	Arena    *Arena[Stmt]
	Blocks   *Arena[BlockStmt]
	Returns  *Arena[ReturnStmt]
	Breaks   *Arena[BreakStmt]
	Assigns  *Arena[AssignStmt]
	VarDecls *Arena[VarDeclStmt]
	Ifs      *Arena[IfStmt]
	Fors     *Arena[ForStmt]
	Whiles   *Arena[WhileStmt]
	DoWhiles *Arena[DoWhileStmt]
	Exprs    *Arena[ExprStmt]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/4 + 1
	return &Stmts{
		Arena:    NewArena[Stmt](capHint),
		Blocks:   NewArena[BlockStmt](small),
		Returns:  NewArena[ReturnStmt](small),
		Breaks:   NewArena[BreakStmt](small),
		Assigns:  NewArena[AssignStmt](small),
		VarDecls: NewArena[VarDeclStmt](small),
		Ifs:      NewArena[IfStmt](small),
		Fors:     NewArena[ForStmt](small),
		Whiles:   NewArena[WhileStmt](small),
		DoWhiles: NewArena[DoWhileStmt](small),
		Exprs:    NewArena[ExprStmt](small),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payload(id StmtID, kind StmtKind) (uint32, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != kind {
		return 0, false
	}
	return uint32(st.Payload), true
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	return s.new(StmtBlock, span, s.Blocks.Allocate(BlockStmt{Stmts: stmts}))
}

func (s *Stmts) Block(id StmtID) (*BlockStmt, bool) {
	p, ok := s.payload(id, StmtBlock)
	if !ok {
		return nil, false
	}
	return s.Blocks.Get(p), true
}

func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	return s.new(StmtReturn, span, s.Returns.Allocate(ReturnStmt{Value: value}))
}

func (s *Stmts) Return(id StmtID) (*ReturnStmt, bool) {
	p, ok := s.payload(id, StmtReturn)
	if !ok {
		return nil, false
	}
	return s.Returns.Get(p), true
}

func (s *Stmts) NewBreak(span source.Span, value ExprID) StmtID {
	return s.new(StmtBreak, span, s.Breaks.Allocate(BreakStmt{Value: value}))
}

func (s *Stmts) Break(id StmtID) (*BreakStmt, bool) {
	p, ok := s.payload(id, StmtBreak)
	if !ok {
		return nil, false
	}
	return s.Breaks.Get(p), true
}

func (s *Stmts) NewAssign(span source.Span, name source.StringID, op AssignOp, value ExprID) StmtID {
	return s.new(StmtAssign, span, s.Assigns.Allocate(AssignStmt{Name: name, Op: op, Value: value}))
}

func (s *Stmts) Assign(id StmtID) (*AssignStmt, bool) {
	p, ok := s.payload(id, StmtAssign)
	if !ok {
		return nil, false
	}
	return s.Assigns.Get(p), true
}

func (s *Stmts) NewVarDecl(span source.Span, typ *types.Type, name source.StringID, init ExprID) StmtID {
	return s.new(StmtVarDecl, span, s.VarDecls.Allocate(VarDeclStmt{Type: typ, Name: name, Init: init}))
}

func (s *Stmts) VarDecl(id StmtID) (*VarDeclStmt, bool) {
	p, ok := s.payload(id, StmtVarDecl)
	if !ok {
		return nil, false
	}
	return s.VarDecls.Get(p), true
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	return s.new(StmtIf, span, s.Ifs.Allocate(IfStmt{Cond: cond, Then: then, Else: els}))
}

func (s *Stmts) If(id StmtID) (*IfStmt, bool) {
	p, ok := s.payload(id, StmtIf)
	if !ok {
		return nil, false
	}
	return s.Ifs.Get(p), true
}

func (s *Stmts) NewFor(span source.Span, init StmtID, cond ExprID, update, body StmtID) StmtID {
	return s.new(StmtFor, span, s.Fors.Allocate(ForStmt{Init: init, Cond: cond, Update: update, Body: body}))
}

func (s *Stmts) For(id StmtID) (*ForStmt, bool) {
	p, ok := s.payload(id, StmtFor)
	if !ok {
		return nil, false
	}
	return s.Fors.Get(p), true
}

func (s *Stmts) NewWhile(span source.Span, cond ExprID, body StmtID) StmtID {
	return s.new(StmtWhile, span, s.Whiles.Allocate(WhileStmt{Cond: cond, Body: body}))
}

func (s *Stmts) While(id StmtID) (*WhileStmt, bool) {
	p, ok := s.payload(id, StmtWhile)
	if !ok {
		return nil, false
	}
	return s.Whiles.Get(p), true
}

func (s *Stmts) NewDoWhile(span source.Span, body StmtID, cond ExprID) StmtID {
	return s.new(StmtDoWhile, span, s.DoWhiles.Allocate(DoWhileStmt{Body: body, Cond: cond}))
}

func (s *Stmts) DoWhile(id StmtID) (*DoWhileStmt, bool) {
	p, ok := s.payload(id, StmtDoWhile)
	if !ok {
		return nil, false
	}
	return s.DoWhiles.Get(p), true
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	return s.new(StmtExpr, span, s.Exprs.Allocate(ExprStmt{Expr: expr}))
}

func (s *Stmts) Expr(id StmtID) (*ExprStmt, bool) {
	p, ok := s.payload(id, StmtExpr)
	if !ok {
		return nil, false
	}
	return s.Exprs.Get(p), true
}
