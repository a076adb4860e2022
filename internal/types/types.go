// Package types is the minimal type model of the language: primitives,
// fixed-size arrays, named structs and the const/static qualifiers.
package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rwiggins1/adequate-c/internal/token"
)

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat
	KindDouble
	KindBool
	KindChar
	KindString
	KindVoid
	KindArray
	KindStruct
	KindConst
	KindStatic
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindString:
		return "string"
	case KindVoid:
		return "void"
	case KindArray:
		return "array"
	case KindStruct:
		return "struct"
	case KindConst:
		return "const"
	case KindStatic:
		return "static"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a descriptor for any supported type.
// Array uses Elem and Size, Struct uses Name, Const and Static wrap Elem.
// A composite owns its Elem exclusively; constructors copy their argument.
type Type struct {
	Kind Kind
	Elem *Type
	Size uint32
	Name string
}

func Int() *Type    { return &Type{Kind: KindInt} }
func Float() *Type  { return &Type{Kind: KindFloat} }
func Double() *Type { return &Type{Kind: KindDouble} }
func Bool() *Type   { return &Type{Kind: KindBool} }
func Char() *Type   { return &Type{Kind: KindChar} }
func String() *Type { return &Type{Kind: KindString} }
func Void() *Type   { return &Type{Kind: KindVoid} }

// ArrayOf builds elem[size].
func ArrayOf(elem *Type, size uint32) *Type {
	return &Type{Kind: KindArray, Elem: elem.Clone(), Size: size}
}

// StructNamed refers to a struct by name; fields live in the declaration.
func StructNamed(name string) *Type {
	return &Type{Kind: KindStruct, Name: name}
}

func ConstOf(inner *Type) *Type {
	return &Type{Kind: KindConst, Elem: inner.Clone()}
}

func StaticOf(inner *Type) *Type {
	return &Type{Kind: KindStatic, Elem: inner.Clone()}
}

// FromKeyword maps a type keyword token to its primitive type.
func FromKeyword(k token.Kind) (*Type, bool) {
	switch k {
	case token.KwInt:
		return Int(), true
	case token.KwFloat:
		return Float(), true
	case token.KwDouble:
		return Double(), true
	case token.KwBool:
		return Bool(), true
	case token.KwChar:
		return Char(), true
	case token.KwString:
		return String(), true
	case token.KwVoid:
		return Void(), true
	}
	return nil, false
}

// IsPrimitive reports whether t is one of the keyword types.
func (t *Type) IsPrimitive() bool {
	if t == nil {
		return false
	}
	return t.Kind >= KindInt && t.Kind <= KindVoid
}

// Clone deep-copies t.
func (t *Type) Clone() *Type {
	if t == nil {
		return nil
	}
	c := *t
	c.Elem = t.Elem.Clone()
	return &c
}

// Unqualified strips any const/static wrappers.
func (t *Type) Unqualified() *Type {
	for t != nil && (t.Kind == KindConst || t.Kind == KindStatic) {
		t = t.Elem
	}
	return t
}

// Equal compares structurally. Qualifiers take part in the comparison:
// "const int" is not equal to "int".
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindArray:
		return t.Size == other.Size && t.Elem.Equal(other.Elem)
	case KindStruct:
		return t.Name == other.Name
	case KindConst, KindStatic:
		return t.Elem.Equal(other.Elem)
	default:
		return true
	}
}

// String renders t in source syntax: "int", "int[4]", "struct Point",
// "const int".
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t *Type) write(sb *strings.Builder) {
	switch t.Kind {
	case KindArray:
		if t.Elem == nil {
			sb.WriteString("<nil>")
		} else {
			t.Elem.write(sb)
		}
		sb.WriteByte('[')
		sb.WriteString(strconv.FormatUint(uint64(t.Size), 10))
		sb.WriteByte(']')
	case KindStruct:
		sb.WriteString("struct ")
		sb.WriteString(t.Name)
	case KindConst, KindStatic:
		sb.WriteString(t.Kind.String())
		sb.WriteByte(' ')
		if t.Elem == nil {
			sb.WriteString("<nil>")
		} else {
			t.Elem.write(sb)
		}
	default:
		sb.WriteString(t.Kind.String())
	}
}
