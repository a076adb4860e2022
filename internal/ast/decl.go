package ast

import (
	"github.com/rwiggins1/adequate-c/internal/source"
	"github.com/rwiggins1/adequate-c/internal/types"
)

type DeclKind uint8

const (
	DeclFunction DeclKind = iota
	DeclStruct
	DeclNamespace
	DeclGlobal
)

func (k DeclKind) String() string {
	switch k {
	case DeclFunction:
		return "Function"
	case DeclStruct:
		return "Struct"
	case DeclNamespace:
		return "Namespace"
	case DeclGlobal:
		return "Global"
	}
	return "Decl(?)"
}

type Decl struct {
	Kind    DeclKind
	Span    source.Span
	Payload PayloadID
}

type FnParam struct {
	Type *types.Type
	Name source.StringID
	Span source.Span
}

// FnDecl is a prototype plus body. Result is void when the source omits "-> T".
type FnDecl struct {
	Name   source.StringID
	Params []FnParam
	Result *types.Type
	Body   StmtID
}

// StructDecl fields are VarDecl statements in declaration order.
type StructDecl struct {
	Name   source.StringID
	Fields []StmtID
}

type NamespaceDecl struct {
	Name  source.StringID
	Decls []DeclID
}

// GlobalDecl wraps a file- or namespace-level VarDecl statement.
type GlobalDecl struct {
	Var StmtID
}

type Decls struct {
	Arena      *Arena[Decl]
	Fns        *Arena[FnDecl]
	Structs    *Arena[StructDecl]
	Namespaces *Arena[NamespaceDecl]
	Globals    *Arena[GlobalDecl]
}

func NewDecls(capHint uint) *Decls {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Decls{
		Arena:      NewArena[Decl](capHint),
		Fns:        NewArena[FnDecl](capHint),
		Structs:    NewArena[StructDecl](capHint/4 + 1),
		Namespaces: NewArena[NamespaceDecl](capHint/8 + 1),
		Globals:    NewArena[GlobalDecl](capHint/4 + 1),
	}
}

func (d *Decls) new(kind DeclKind, span source.Span, payload uint32) DeclID {
	return DeclID(d.Arena.Allocate(Decl{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

func (d *Decls) Get(id DeclID) *Decl {
	return d.Arena.Get(uint32(id))
}

func (d *Decls) NewFn(span source.Span, name source.StringID, params []FnParam, result *types.Type, body StmtID) DeclID {
	return d.new(DeclFunction, span, d.Fns.Allocate(FnDecl{
		Name:   name,
		Params: params,
		Result: result,
		Body:   body,
	}))
}

func (d *Decls) Fn(id DeclID) (*FnDecl, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclFunction {
		return nil, false
	}
	return d.Fns.Get(uint32(decl.Payload)), true
}

func (d *Decls) NewStruct(span source.Span, name source.StringID, fields []StmtID) DeclID {
	return d.new(DeclStruct, span, d.Structs.Allocate(StructDecl{Name: name, Fields: fields}))
}

func (d *Decls) Struct(id DeclID) (*StructDecl, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclStruct {
		return nil, false
	}
	return d.Structs.Get(uint32(decl.Payload)), true
}

func (d *Decls) NewNamespace(span source.Span, name source.StringID, decls []DeclID) DeclID {
	return d.new(DeclNamespace, span, d.Namespaces.Allocate(NamespaceDecl{Name: name, Decls: decls}))
}

func (d *Decls) Namespace(id DeclID) (*NamespaceDecl, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclNamespace {
		return nil, false
	}
	return d.Namespaces.Get(uint32(decl.Payload)), true
}

func (d *Decls) NewGlobal(span source.Span, v StmtID) DeclID {
	return d.new(DeclGlobal, span, d.Globals.Allocate(GlobalDecl{Var: v}))
}

func (d *Decls) Global(id DeclID) (*GlobalDecl, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclGlobal {
		return nil, false
	}
	return d.Globals.Get(uint32(decl.Payload)), true
}
