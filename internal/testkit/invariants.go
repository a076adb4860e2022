// Package testkit holds structural checks over parsed trees, shared by parser,
// driver and fuzz tests.
package testkit

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"github.com/rwiggins1/adequate-c/internal/ast"
	"github.com/rwiggins1/adequate-c/internal/source"
)

// CheckSpanInvariants runs the span invariants on a parsed file:
// 1) file.Span lies within the file content and points to sf
// 2) every node span is non-empty, points to sf and lies within its parent's span
// 3) siblings appear in source order without overlapping
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	// 1) file span sanity
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.Start > f.Span.End || f.Span.End > lenContent {
		return fmt.Errorf("file span %v outside content of %d bytes", f.Span, lenContent)
	}
	if len(f.Decls) > 0 && f.Span.Empty() {
		return fmt.Errorf("file span is empty but file has %d declarations", len(f.Decls))
	}

	return checkChildren(b, ast.FileRef(fileID), f.Span, sf.ID)
}

func checkChildren(b *ast.Builder, parent ast.NodeRef, parentSpan source.Span, file source.FileID) error {
	var prev source.Span
	for i, child := range b.Children(parent) {
		sp := b.Span(child)
		switch {
		case sp.Empty():
			return fmt.Errorf("%s: empty span %v", describe(child), sp)
		case sp.File != file:
			return fmt.Errorf("%s: span file mismatch: got=%d want=%d", describe(child), sp.File, file)
		case sp.Start < parentSpan.Start || sp.End > parentSpan.End:
			return fmt.Errorf("%s: span %v is outside parent %s span %v", describe(child), sp, describe(parent), parentSpan)
		case i > 0 && sp.Start < prev.End:
			return fmt.Errorf("%s: span %v overlaps previous sibling %v", describe(child), sp, prev)
		}
		prev = sp
		if err := checkChildren(b, child, sp, file); err != nil {
			return err
		}
	}
	return nil
}

// CheckSingleOwner verifies that every node reachable from the file has exactly
// one parent: no ID is reachable twice, so the tree is a tree and not a DAG.
func CheckSingleOwner(b *ast.Builder, fileID ast.FileID) error {
	if b == nil || b.Files.Get(fileID) == nil {
		return fmt.Errorf("file node not found")
	}
	seen := make(map[ast.NodeRef]ast.NodeRef)
	var errs []error
	var visit func(parent ast.NodeRef)
	visit = func(parent ast.NodeRef) {
		for _, child := range b.Children(parent) {
			if owner, dup := seen[child]; dup {
				errs = append(errs, fmt.Errorf("%s owned by both %s and %s", describe(child), describe(owner), describe(parent)))
				continue
			}
			seen[child] = parent
			visit(child)
		}
	}
	visit(ast.FileRef(fileID))
	return errors.Join(errs...)
}

// CheckAll runs every invariant and joins the failures.
func CheckAll(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	return errors.Join(
		CheckSpanInvariants(b, fileID, sf),
		CheckSingleOwner(b, fileID),
	)
}

func describe(ref ast.NodeRef) string {
	switch ref.Kind {
	case ast.NodeFile:
		return fmt.Sprintf("file#%d", ref.File)
	case ast.NodeDecl:
		return fmt.Sprintf("decl#%d", ref.Decl)
	case ast.NodeStmt:
		return fmt.Sprintf("stmt#%d", ref.Stmt)
	default:
		return fmt.Sprintf("expr#%d", ref.Expr)
	}
}
