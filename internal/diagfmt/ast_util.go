package diagfmt

import (
	"fmt"
	"strings"

	"github.com/rwiggins1/adequate-c/internal/ast"
	"github.com/rwiggins1/adequate-c/internal/source"
)

// formatSpan formats a source.Span into a string.
// If fs is non-nil, it resolves the span to "startLine:startCol-endLine:endCol",
// otherwise it returns "span(start-end)".
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fileOf(fs, span) != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

// nodeKind returns the arena name and the kind of the node, e.g. ("Stmt", "VarDecl").
func nodeKind(b *ast.Builder, ref ast.NodeRef) (typ, kind string) {
	switch ref.Kind {
	case ast.NodeFile:
		return "File", ""
	case ast.NodeDecl:
		if d := b.Decls.Get(ref.Decl); d != nil {
			return "Decl", d.Kind.String()
		}
		return "Decl", "<nil>"
	case ast.NodeStmt:
		if s := b.Stmts.Get(ref.Stmt); s != nil {
			return "Stmt", s.Kind.String()
		}
		return "Stmt", "<nil>"
	case ast.NodeExpr:
		if e := b.Exprs.Get(ref.Expr); e != nil {
			return "Expr", e.Kind.String()
		}
		return "Expr", "<nil>"
	}
	return "?", ""
}

// nodeDetail: краткие атрибуты узла, которые не видны по детям: имена, операторы, значения.
func nodeDetail(b *ast.Builder, ref ast.NodeRef) string {
	switch ref.Kind {
	case ast.NodeDecl:
		if fn, ok := b.Decls.Fn(ref.Decl); ok {
			params := make([]string, 0, len(fn.Params))
			for _, p := range fn.Params {
				params = append(params, fmt.Sprintf("%s %s", p.Type, b.Name(p.Name)))
			}
			return fmt.Sprintf("%s(%s) -> %s", b.Name(fn.Name), strings.Join(params, ", "), fn.Result)
		}
		if st, ok := b.Decls.Struct(ref.Decl); ok {
			return b.Name(st.Name)
		}
		if ns, ok := b.Decls.Namespace(ref.Decl); ok {
			return b.Name(ns.Name)
		}
	case ast.NodeStmt:
		if v, ok := b.Stmts.VarDecl(ref.Stmt); ok {
			return fmt.Sprintf("%s %s", v.Type, b.Name(v.Name))
		}
		if a, ok := b.Stmts.Assign(ref.Stmt); ok {
			return fmt.Sprintf("%s %s", b.Name(a.Name), a.Op)
		}
	case ast.NodeExpr:
		return exprDetail(b, ref.Expr)
	}
	return ""
}

func exprDetail(b *ast.Builder, id ast.ExprID) string {
	if n, ok := b.Exprs.Number(id); ok {
		return b.Name(n.Raw)
	}
	if s, ok := b.Exprs.StringLit(id); ok {
		return fmt.Sprintf("%q", b.Name(s.Value))
	}
	if c, ok := b.Exprs.Char(id); ok {
		return fmt.Sprintf("%q", rune(c.Value))
	}
	if v, ok := b.Exprs.Bool(id); ok {
		return fmt.Sprint(v.Value)
	}
	if u, ok := b.Exprs.Unary(id); ok {
		if u.Postfix {
			return u.Op.String() + " (postfix)"
		}
		return u.Op.String()
	}
	if bin, ok := b.Exprs.Binary(id); ok {
		return bin.Op.String()
	}
	if v, ok := b.Exprs.Variable(id); ok {
		return b.Name(v.Name)
	}
	if call, ok := b.Exprs.Call(id); ok {
		return b.Name(call.Callee)
	}
	return ""
}

// nodeLabel: "VarDecl int x", "Binary +", "Function main() -> void".
func nodeLabel(b *ast.Builder, ref ast.NodeRef) string {
	typ, kind := nodeKind(b, ref)
	label := kind
	if ref.Kind == ast.NodeFile {
		label = typ
	}
	if detail := nodeDetail(b, ref); detail != "" {
		label += " " + detail
	}
	return label
}
