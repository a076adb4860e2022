package ast

import (
	"testing"

	"github.com/rwiggins1/adequate-c/internal/source"
	"github.com/rwiggins1/adequate-c/internal/types"
)

func TestArenaIDsAreOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil {
		t.Fatal("index 0 must be absent")
	}
	first := a.Allocate(10)
	second := a.Allocate(20)
	if first != 1 || second != 2 {
		t.Fatalf("ids = %d,%d; want 1,2", first, second)
	}
	if *a.Get(2) != 20 || a.Len() != 2 {
		t.Errorf("Get/Len mismatch")
	}
	if a.Get(3) != nil {
		t.Error("out of range index must be absent")
	}
}

func TestTypedAccessorsCheckKind(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	num := b.Exprs.NewNumber(source.Span{}, 2, b.StringsInterner.Intern("2"))

	if _, ok := b.Exprs.Binary(num); ok {
		t.Error("Binary accessor must reject a number node")
	}
	if d, ok := b.Exprs.Number(num); !ok || d.Value != 2 {
		t.Errorf("Number accessor = %+v,%v", d, ok)
	}
	if _, ok := b.Exprs.Number(NoExprID); ok {
		t.Error("absent id must not resolve")
	}
	ret := b.Stmts.NewReturn(source.Span{}, num)
	if _, ok := b.Stmts.Block(ret); ok {
		t.Error("Block accessor must reject a return node")
	}
}

// int x = 2 + 3; как глобальное объявление
func TestWalkVisitsInSourceOrder(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	in := b.StringsInterner

	two := b.Exprs.NewNumber(source.Span{Start: 8, End: 9}, 2, in.Intern("2"))
	three := b.Exprs.NewNumber(source.Span{Start: 12, End: 13}, 3, in.Intern("3"))
	sum := b.Exprs.NewBinary(source.Span{Start: 8, End: 13}, ExprBinaryAdd, two, three)
	v := b.Stmts.NewVarDecl(source.Span{Start: 0, End: 14}, types.Int(), in.Intern("x"), sum)
	g := b.Decls.NewGlobal(source.Span{Start: 0, End: 14}, v)
	file := b.NewFile(source.Span{Start: 0, End: 14})
	b.PushDecl(file, g)

	var kinds []NodeKind
	var depths []int
	b.Walk(FileRef(file), func(ref NodeRef, depth int) bool {
		kinds = append(kinds, ref.Kind)
		depths = append(depths, depth)
		return true
	})

	wantKinds := []NodeKind{NodeFile, NodeDecl, NodeStmt, NodeExpr, NodeExpr, NodeExpr}
	wantDepths := []int{0, 1, 2, 3, 4, 4}
	if len(kinds) != len(wantKinds) {
		t.Fatalf("visited %v", kinds)
	}
	for i := range wantKinds {
		if kinds[i] != wantKinds[i] || depths[i] != wantDepths[i] {
			t.Errorf("node %d: kind=%v depth=%d, want %v/%d", i, kinds[i], depths[i], wantKinds[i], wantDepths[i])
		}
	}

	if b.Name(b.Stmts.VarDecls.Get(1).Name) != "x" {
		t.Error("variable name must resolve through the interner")
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	arg := b.Exprs.NewBool(source.Span{}, true)
	call := b.Exprs.NewCall(source.Span{}, b.StringsInterner.Intern("f"), []ExprID{arg})

	count := 0
	b.Walk(ExprRef(call), func(NodeRef, int) bool {
		count++
		return false
	})
	if count != 1 {
		t.Errorf("visited %d nodes, want 1", count)
	}
}

func TestOperatorStrings(t *testing.T) {
	if ExprBinaryLogicalOr.String() != "||" || ExprBinaryGreaterEq.String() != ">=" {
		t.Error("binary op spelling")
	}
	if ExprUnaryBitNot.String() != "~" || AssignDiv.String() != "/=" {
		t.Error("unary/assign op spelling")
	}
	if StmtDoWhile.String() != "DoWhile" || DeclNamespace.String() != "Namespace" {
		t.Error("kind names")
	}
}
