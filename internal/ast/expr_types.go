package ast

import (
	"github.com/rwiggins1/adequate-c/internal/source"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	ExprNumber ExprKind = iota
	ExprString
	ExprChar
	ExprBool
	ExprUnary
	ExprBinary
	ExprVariable
	ExprCall
)

func (k ExprKind) String() string {
	switch k {
	case ExprNumber:
		return "Number"
	case ExprString:
		return "String"
	case ExprChar:
		return "Char"
	case ExprBool:
		return "Bool"
	case ExprUnary:
		return "Unary"
	case ExprBinary:
		return "Binary"
	case ExprVariable:
		return "Variable"
	case ExprCall:
		return "Call"
	}
	return "Expr(?)"
}

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// ExprBinaryOp enumerates binary operator kinds.
type ExprBinaryOp uint8

const (
	// Арифметические
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv
	ExprBinaryMod

	// Битовые
	ExprBinaryBitAnd
	ExprBinaryBitOr
	ExprBinaryBitXor

	// Логические
	ExprBinaryLogicalAnd
	ExprBinaryLogicalOr

	// Сравнения
	ExprBinaryEq
	ExprBinaryNotEq
	ExprBinaryLess
	ExprBinaryLessEq
	ExprBinaryGreater
	ExprBinaryGreaterEq
)

func (op ExprBinaryOp) String() string {
	switch op {
	case ExprBinaryAdd:
		return "+"
	case ExprBinarySub:
		return "-"
	case ExprBinaryMul:
		return "*"
	case ExprBinaryDiv:
		return "/"
	case ExprBinaryMod:
		return "%"
	case ExprBinaryBitAnd:
		return "&"
	case ExprBinaryBitOr:
		return "|"
	case ExprBinaryBitXor:
		return "^"
	case ExprBinaryLogicalAnd:
		return "&&"
	case ExprBinaryLogicalOr:
		return "||"
	case ExprBinaryEq:
		return "=="
	case ExprBinaryNotEq:
		return "!="
	case ExprBinaryLess:
		return "<"
	case ExprBinaryLessEq:
		return "<="
	case ExprBinaryGreater:
		return ">"
	case ExprBinaryGreaterEq:
		return ">="
	}
	return "?"
}

// ExprUnaryOp enumerates unary operator kinds.
type ExprUnaryOp uint8

const (
	ExprUnaryPlus   ExprUnaryOp = iota // +x
	ExprUnaryMinus                     // -x
	ExprUnaryNot                       // !x
	ExprUnaryBitNot                    // ~x
	ExprUnaryInc                       // ++x / x++
	ExprUnaryDec                       // --x / x--
)

func (op ExprUnaryOp) String() string {
	switch op {
	case ExprUnaryPlus:
		return "+"
	case ExprUnaryMinus:
		return "-"
	case ExprUnaryNot:
		return "!"
	case ExprUnaryBitNot:
		return "~"
	case ExprUnaryInc:
		return "++"
	case ExprUnaryDec:
		return "--"
	}
	return "?"
}

type ExprNumberData struct {
	Value float64
	Raw   source.StringID // исходный текст литерала
}

// ExprStringData holds the literal text without surrounding quotes.
type ExprStringData struct {
	Value source.StringID
}

type ExprCharData struct {
	Value byte
}

type ExprBoolData struct {
	Value bool
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
	Postfix bool // x++ / x--
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}

type ExprVariableData struct {
	Name source.StringID
}

type ExprCallData struct {
	Callee source.StringID
	Args   []ExprID
}
