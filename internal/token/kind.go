package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates a byte the lexer could not classify.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	KwFunc      // func
	KwInfer     // infer
	KwIf        // if
	KwElse      // else
	KwFor       // for
	KwDo        // do
	KwWhile     // while
	KwReturn    // return
	KwBreak     // break
	KwSwitch    // switch
	KwCase      // case
	KwDefault   // default
	KwStruct    // struct
	KwClass     // class
	KwEnum      // enum
	KwStatic    // static
	KwPublic    // public
	KwPrivate   // private
	KwTry       // try
	KwCatch     // catch
	KwThrow     // throw
	KwNamespace // namespace
	KwOperator  // operator
	KwImport    // import
	KwConst     // const

	// Type keywords.
	KwInt    // int
	KwFloat  // float
	KwDouble // double
	KwChar   // char
	KwBool   // bool
	KwVoid   // void
	KwString // string

	// NumberLit is a decimal literal, optionally with a fractional part.
	NumberLit
	// StringLit keeps its quotes in Text.
	StringLit
	// CharLit keeps its quotes in Text.
	CharLit
	KwTrue  // true
	KwFalse // false

	Plus          // +
	Minus         // -
	Star          // *
	Slash         // /
	Percent       // %
	PlusPlus      // ++
	MinusMinus    // --
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	EqEq          // ==
	BangEq        // !=
	Gt            // >
	GtEq          // >=
	Lt            // <
	LtEq          // <=
	Assign        // =
	AndAnd        // &&
	OrOr          // ||
	Bang          // !
	Amp           // &
	Pipe          // |
	Caret         // ^
	Tilde         // ~
	Arrow         // ->
	Dot           // .
	Question      // ?
	Colon         // :
	Semicolon     // ;
	Comma         // ,
	LBrace        // {
	RBrace        // }
	LParen        // (
	RParen        // )
	LBracket      // [
	RBracket      // ]

	kindCount
)

var kindNames = [...]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Ident:         "Ident",
	KwFunc:        "KwFunc",
	KwInfer:       "KwInfer",
	KwIf:          "KwIf",
	KwElse:        "KwElse",
	KwFor:         "KwFor",
	KwDo:          "KwDo",
	KwWhile:       "KwWhile",
	KwReturn:      "KwReturn",
	KwBreak:       "KwBreak",
	KwSwitch:      "KwSwitch",
	KwCase:        "KwCase",
	KwDefault:     "KwDefault",
	KwStruct:      "KwStruct",
	KwClass:       "KwClass",
	KwEnum:        "KwEnum",
	KwStatic:      "KwStatic",
	KwPublic:      "KwPublic",
	KwPrivate:     "KwPrivate",
	KwTry:         "KwTry",
	KwCatch:       "KwCatch",
	KwThrow:       "KwThrow",
	KwNamespace:   "KwNamespace",
	KwOperator:    "KwOperator",
	KwImport:      "KwImport",
	KwConst:       "KwConst",
	KwInt:         "KwInt",
	KwFloat:       "KwFloat",
	KwDouble:      "KwDouble",
	KwChar:        "KwChar",
	KwBool:        "KwBool",
	KwVoid:        "KwVoid",
	KwString:      "KwString",
	NumberLit:     "NumberLit",
	StringLit:     "StringLit",
	CharLit:       "CharLit",
	KwTrue:        "KwTrue",
	KwFalse:       "KwFalse",
	Plus:          "Plus",
	Minus:         "Minus",
	Star:          "Star",
	Slash:         "Slash",
	Percent:       "Percent",
	PlusPlus:      "PlusPlus",
	MinusMinus:    "MinusMinus",
	PlusAssign:    "PlusAssign",
	MinusAssign:   "MinusAssign",
	StarAssign:    "StarAssign",
	SlashAssign:   "SlashAssign",
	PercentAssign: "PercentAssign",
	EqEq:          "EqEq",
	BangEq:        "BangEq",
	Gt:            "Gt",
	GtEq:          "GtEq",
	Lt:            "Lt",
	LtEq:          "LtEq",
	Assign:        "Assign",
	AndAnd:        "AndAnd",
	OrOr:          "OrOr",
	Bang:          "Bang",
	Amp:           "Amp",
	Pipe:          "Pipe",
	Caret:         "Caret",
	Tilde:         "Tilde",
	Arrow:         "Arrow",
	Dot:           "Dot",
	Question:      "Question",
	Colon:         "Colon",
	Semicolon:     "Semicolon",
	Comma:         "Comma",
	LBrace:        "LBrace",
	RBrace:        "RBrace",
	LParen:        "LParen",
	RParen:        "RParen",
	LBracket:      "LBracket",
	RBracket:      "RBracket",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

var kindSpellings = map[Kind]string{
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	PlusPlus: "++", MinusMinus: "--",
	PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=", SlashAssign: "/=", PercentAssign: "%=",
	EqEq: "==", BangEq: "!=", Gt: ">", GtEq: ">=", Lt: "<", LtEq: "<=",
	Assign: "=", AndAnd: "&&", OrOr: "||", Bang: "!",
	Amp: "&", Pipe: "|", Caret: "^", Tilde: "~",
	Arrow: "->", Dot: ".", Question: "?", Colon: ":", Semicolon: ";", Comma: ",",
	LBrace: "{", RBrace: "}", LParen: "(", RParen: ")", LBracket: "[", RBracket: "]",
}

// Spelling returns the fixed source text of operators, delimiters and keywords,
// or "" for kinds whose text varies.
func (k Kind) Spelling() string {
	if s, ok := kindSpellings[k]; ok {
		return s
	}
	if s, ok := keywordSpellings[k]; ok {
		return s
	}
	return ""
}

// IsKeyword reports whether k is a reserved word, including type names and true/false.
func (k Kind) IsKeyword() bool {
	return (k >= KwFunc && k <= KwString) || k == KwTrue || k == KwFalse
}

// IsTypeKeyword reports whether k names a primitive type.
func (k Kind) IsTypeKeyword() bool {
	return k >= KwInt && k <= KwString
}

// IsLiteral reports whether k is a number, string, char or boolean literal.
func (k Kind) IsLiteral() bool {
	return k >= NumberLit && k <= KwFalse
}

// IsPunctOrOp reports whether k is an operator or delimiter.
func (k Kind) IsPunctOrOp() bool {
	return k >= Plus && k <= RBracket
}

// IsAssignOp reports whether k is '=' or one of the compound assignments.
func (k Kind) IsAssignOp() bool {
	switch k {
	case Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign, PercentAssign:
		return true
	default:
		return false
	}
}
