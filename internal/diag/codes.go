package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexUnterminatedChar         Code = 1004
	LexTokenTooLong             Code = 1005

	// Парсерные
	SynInfo                Code = 2000
	SynUnexpectedToken     Code = 2001
	SynUnexpectedCharacter Code = 2002
	SynUnclosedParen       Code = 2003
	SynUnclosedBrace       Code = 2004
	SynUnclosedBracket     Code = 2005
	SynExpectSemicolon     Code = 2006
	SynExpectIdentifier    Code = 2007
	SynExpectType          Code = 2008
	SynExpectExpression    Code = 2009
	SynExpectLParen        Code = 2010
	SynExpectLBrace        Code = 2011
	SynExpectComma         Code = 2012
	SynTrailingComma       Code = 2013
	SynExpectArraySize     Code = 2014
	SynExpectWhile         Code = 2015
	SynUnexpectedTopLevel  Code = 2016
	SynKeywordNotSupported Code = 2017
	SynInvalidAssignTarget Code = 2018
	SynBadNumber           Code = 2100
	SynBadChar             Code = 2101
	SynBadArraySize        Code = 2102
	SynTooDeep             Code = 2103
	SynTooManyErrors       Code = 2900

	// Семантические (резерв)
	SemaInfo  Code = 3000
	SemaError Code = 3001

	// Кодогенерация (резерв)
	GenInfo  Code = 4000
	GenError Code = 4001

	// Ввод-вывод и проект
	IOLoadFileError Code = 5001
	ProjBadManifest Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexUnterminatedChar:         "Unterminated character literal",
	LexTokenTooLong:             "Token too long",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnexpectedCharacter:      "Unexpected character",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynUnclosedBrace:            "Unclosed brace",
	SynUnclosedBracket:          "Unclosed bracket",
	SynExpectSemicolon:          "Expect semicolon",
	SynExpectIdentifier:         "Expect identifier",
	SynExpectType:               "Expect type",
	SynExpectExpression:         "Expect expression",
	SynExpectLParen:             "Expect left parenthesis",
	SynExpectLBrace:             "Expect left brace",
	SynExpectComma:              "Expect comma",
	SynTrailingComma:            "Trailing comma in argument list",
	SynExpectArraySize:          "Expect array size",
	SynExpectWhile:              "Expect 'while' after do body",
	SynUnexpectedTopLevel:       "Unexpected token at top level",
	SynKeywordNotSupported:      "Keyword is reserved but not supported",
	SynInvalidAssignTarget:      "Invalid assignment target",
	SynBadNumber:                "Invalid number literal",
	SynBadChar:                  "Invalid character literal",
	SynBadArraySize:             "Invalid array size",
	SynTooDeep:                  "Nesting too deep",
	SynTooManyErrors:            "Too many errors",
	SemaInfo:                    "Semantic information",
	SemaError:                   "Semantic error",
	GenInfo:                     "Codegen information",
	GenError:                    "Codegen error",
	IOLoadFileError:             "I/O load file error",
	ProjBadManifest:             "Invalid project manifest",
}

// ID returns the stable short identifier, e.g. SYN2001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("GEN%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
