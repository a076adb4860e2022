package ast

import (
	"github.com/rwiggins1/adequate-c/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena     *Arena[Expr]
	Numbers   *Arena[ExprNumberData]
	Strings   *Arena[ExprStringData]
	Chars     *Arena[ExprCharData]
	Bools     *Arena[ExprBoolData]
	Unaries   *Arena[ExprUnaryData]
	Binaries  *Arena[ExprBinaryData]
	Variables *Arena[ExprVariableData]
	Calls     *Arena[ExprCallData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint as the initial capacity.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/4 + 1
	return &Exprs{
		Arena:     NewArena[Expr](capHint),
		Numbers:   NewArena[ExprNumberData](capHint),
		Strings:   NewArena[ExprStringData](small),
		Chars:     NewArena[ExprCharData](small),
		Bools:     NewArena[ExprBoolData](small),
		Unaries:   NewArena[ExprUnaryData](small),
		Binaries:  NewArena[ExprBinaryData](capHint),
		Variables: NewArena[ExprVariableData](capHint),
		Calls:     NewArena[ExprCallData](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) NewNumber(span source.Span, value float64, raw source.StringID) ExprID {
	payload := e.Numbers.Allocate(ExprNumberData{Value: value, Raw: raw})
	return e.new(ExprNumber, span, PayloadID(payload))
}

func (e *Exprs) Number(id ExprID) (*ExprNumberData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprNumber {
		return nil, false
	}
	return e.Numbers.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewStringLit(span source.Span, value source.StringID) ExprID {
	payload := e.Strings.Allocate(ExprStringData{Value: value})
	return e.new(ExprString, span, PayloadID(payload))
}

func (e *Exprs) StringLit(id ExprID) (*ExprStringData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprString {
		return nil, false
	}
	return e.Strings.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewChar(span source.Span, value byte) ExprID {
	payload := e.Chars.Allocate(ExprCharData{Value: value})
	return e.new(ExprChar, span, PayloadID(payload))
}

func (e *Exprs) Char(id ExprID) (*ExprCharData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprChar {
		return nil, false
	}
	return e.Chars.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewBool(span source.Span, value bool) ExprID {
	payload := e.Bools.Allocate(ExprBoolData{Value: value})
	return e.new(ExprBool, span, PayloadID(payload))
}

func (e *Exprs) Bool(id ExprID) (*ExprBoolData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBool {
		return nil, false
	}
	return e.Bools.Get(uint32(expr.Payload)), true
}

// NewUnary creates a new unary expression; postfix marks x++ and x--.
func (e *Exprs) NewUnary(span source.Span, op ExprUnaryOp, operand ExprID, postfix bool) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand, Postfix: postfix})
	return e.new(ExprUnary, span, PayloadID(payload))
}

// Unary returns the unary data for the given expression ID.
func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(uint32(expr.Payload)), true
}

// NewBinary creates a new binary expression.
func (e *Exprs) NewBinary(span source.Span, op ExprBinaryOp, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, PayloadID(payload))
}

// Binary returns the binary data for the given expression ID.
func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewVariable(span source.Span, name source.StringID) ExprID {
	payload := e.Variables.Allocate(ExprVariableData{Name: name})
	return e.new(ExprVariable, span, PayloadID(payload))
}

func (e *Exprs) Variable(id ExprID) (*ExprVariableData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprVariable {
		return nil, false
	}
	return e.Variables.Get(uint32(expr.Payload)), true
}

// NewCall creates a call; args keep their source order.
func (e *Exprs) NewCall(span source.Span, callee source.StringID, args []ExprID) ExprID {
	payload := e.Calls.Allocate(ExprCallData{Callee: callee, Args: args})
	return e.new(ExprCall, span, PayloadID(payload))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}
