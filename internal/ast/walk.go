package ast

import (
	"github.com/rwiggins1/adequate-c/internal/source"
)

// NodeKind tags which arena a NodeRef points into.
type NodeKind uint8

const (
	NodeFile NodeKind = iota
	NodeDecl
	NodeStmt
	NodeExpr
)

// NodeRef is a typed reference to any node of the tree.
// Exactly one of the ID fields matching Kind is set.
type NodeRef struct {
	Kind NodeKind
	File FileID
	Decl DeclID
	Stmt StmtID
	Expr ExprID
}

func FileRef(id FileID) NodeRef { return NodeRef{Kind: NodeFile, File: id} }
func DeclRef(id DeclID) NodeRef { return NodeRef{Kind: NodeDecl, Decl: id} }
func StmtRef(id StmtID) NodeRef { return NodeRef{Kind: NodeStmt, Stmt: id} }
func ExprRef(id ExprID) NodeRef { return NodeRef{Kind: NodeExpr, Expr: id} }

// Span returns the source range of the referenced node.
func (b *Builder) Span(ref NodeRef) source.Span {
	switch ref.Kind {
	case NodeFile:
		if f := b.Files.Get(ref.File); f != nil {
			return f.Span
		}
	case NodeDecl:
		if d := b.Decls.Get(ref.Decl); d != nil {
			return d.Span
		}
	case NodeStmt:
		if s := b.Stmts.Get(ref.Stmt); s != nil {
			return s.Span
		}
	case NodeExpr:
		if e := b.Exprs.Get(ref.Expr); e != nil {
			return e.Span
		}
	}
	return source.Span{}
}

// Children lists the direct children of ref in source order, skipping absent slots.
func (b *Builder) Children(ref NodeRef) []NodeRef {
	var out []NodeRef
	addStmt := func(id StmtID) {
		if id.IsValid() {
			out = append(out, StmtRef(id))
		}
	}
	addExpr := func(id ExprID) {
		if id.IsValid() {
			out = append(out, ExprRef(id))
		}
	}

	switch ref.Kind {
	case NodeFile:
		if f := b.Files.Get(ref.File); f != nil {
			for _, d := range f.Decls {
				out = append(out, DeclRef(d))
			}
		}
	case NodeDecl:
		if fn, ok := b.Decls.Fn(ref.Decl); ok {
			addStmt(fn.Body)
		} else if st, ok := b.Decls.Struct(ref.Decl); ok {
			for _, f := range st.Fields {
				addStmt(f)
			}
		} else if ns, ok := b.Decls.Namespace(ref.Decl); ok {
			for _, d := range ns.Decls {
				out = append(out, DeclRef(d))
			}
		} else if g, ok := b.Decls.Global(ref.Decl); ok {
			addStmt(g.Var)
		}
	case NodeStmt:
		st := b.Stmts.Get(ref.Stmt)
		if st == nil {
			return nil
		}
		switch st.Kind {
		case StmtBlock:
			blk, _ := b.Stmts.Block(ref.Stmt)
			for _, s := range blk.Stmts {
				addStmt(s)
			}
		case StmtReturn:
			r, _ := b.Stmts.Return(ref.Stmt)
			addExpr(r.Value)
		case StmtBreak:
			br, _ := b.Stmts.Break(ref.Stmt)
			addExpr(br.Value)
		case StmtAssign:
			a, _ := b.Stmts.Assign(ref.Stmt)
			addExpr(a.Value)
		case StmtVarDecl:
			v, _ := b.Stmts.VarDecl(ref.Stmt)
			addExpr(v.Init)
		case StmtIf:
			i, _ := b.Stmts.If(ref.Stmt)
			addExpr(i.Cond)
			addStmt(i.Then)
			addStmt(i.Else)
		case StmtFor:
			f, _ := b.Stmts.For(ref.Stmt)
			addStmt(f.Init)
			addExpr(f.Cond)
			addStmt(f.Update)
			addStmt(f.Body)
		case StmtWhile:
			w, _ := b.Stmts.While(ref.Stmt)
			addExpr(w.Cond)
			addStmt(w.Body)
		case StmtDoWhile:
			d, _ := b.Stmts.DoWhile(ref.Stmt)
			addStmt(d.Body)
			addExpr(d.Cond)
		case StmtExpr:
			e, _ := b.Stmts.Expr(ref.Stmt)
			addExpr(e.Expr)
		}
	case NodeExpr:
		if u, ok := b.Exprs.Unary(ref.Expr); ok {
			addExpr(u.Operand)
		} else if bin, ok := b.Exprs.Binary(ref.Expr); ok {
			addExpr(bin.Left)
			addExpr(bin.Right)
		} else if call, ok := b.Exprs.Call(ref.Expr); ok {
			for _, a := range call.Args {
				addExpr(a)
			}
		}
	}
	return out
}

// Walk visits ref and its descendants depth-first in source order.
// Returning false from visit skips the children of that node.
func (b *Builder) Walk(ref NodeRef, visit func(ref NodeRef, depth int) bool) {
	b.walk(ref, 0, visit)
}

func (b *Builder) walk(ref NodeRef, depth int, visit func(NodeRef, int) bool) {
	if !visit(ref, depth) {
		return
	}
	for _, child := range b.Children(ref) {
		b.walk(child, depth+1, visit)
	}
}
