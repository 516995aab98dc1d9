// SPDX-FileCopyrightText: © 2024 The ixc authors <https://github.com/ixlang/ixc/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package ixtoken

// Group is the coarse character-class family a Token belongs to.
type Group string

const (
	GroupWhitespace   Group = "whitespace"
	GroupOpenBracket  Group = "open-bracket"
	GroupCloseBracket Group = "close-bracket"
	GroupSymbolic     Group = "symbolic"
	GroupEscape       Group = "escape"
	GroupAlphanumeric Group = "alphanumeric"
	GroupString       Group = "string-literal"
	GroupChar         Group = "char-literal"
	GroupNumeric      Group = "numeric"
	GroupHexNumeric   Group = "hex-numeric"
	GroupComment      Group = "comment"
	GroupPseudo       Group = "pseudo"
	GroupUnknown      Group = "unknown"
)

// Type is the fine-grained lexical classification of a Token (~80 tags in
// the source; the subset below is every tag this grammar's routines
// actually dispatch on).
type Type string

const (
	// Whitespace.
	Space   Type = "SPACE"
	Tab     Type = "TAB"
	Newline Type = "NEWLINE"

	// Openers.
	OpenBlock    Type = "OPEN_BLOCK"    // {
	OpenExpr     Type = "OPEN_EXPR"     // (
	OpenSubscript Type = "OPEN_SUBSCRIPT" // [
	OpenGeneric  Type = "OPEN_GENERIC"  // <

	// Closers.
	CloseBlock     Type = "CLOSE_BLOCK"     // }
	CloseExpr      Type = "CLOSE_EXPR"      // )
	CloseSubscript Type = "CLOSE_SUBSCRIPT" // ]
	CloseGeneric   Type = "CLOSE_GENERIC"   // >

	// Symbolic.
	OfType         Type = "OFTYPE"         // :
	Comma          Type = "COMMA"          // ,
	Stop           Type = "STOP"           // ;
	Selector       Type = "SELECTOR"       // .
	InstanceMember Type = "INSTANCE_MEMBER" // @
	ClassMember    Type = "CLASS_MEMBER"    // %
	BangPrefix     Type = "BANG_PREFIX"    // !
	AssignOp       Type = "ASSIGN_OP"      // =, +=, -=, ...
	InfixOp        Type = "INFIX_OP"       // + - * / == != && || etc.
	PrePostfixOp   Type = "PRE_POSTFIX_OP" // ++ --
	LineCommentMark  Type = "LINE_COMMENT_MARK"  // //
	BlockCommentMark Type = "BLOCK_COMMENT_MARK" // /* and */

	// Header/structural alphanumerics.
	Copyright Type = "COPYRIGHT"
	License   Type = "LICENSE"
	Class     Type = "CLASS"
	Interface Type = "INTERFACE"
	Package   Type = "PACKAGE"
	Include   Type = "INCLUDE"
	Namespace Type = "NAMESPACE"

	// Modifiers.
	ModPublic    Type = "MOD_PUBLIC"
	ModProtected Type = "MOD_PROTECTED"
	ModPrivate   Type = "MOD_PRIVATE"
	ModFunction  Type = "MOD_FUNCTION"

	// General keywords.
	KwBreak      Type = "KW_BREAK"
	KwCase       Type = "KW_CASE"
	KwCatch      Type = "KW_CATCH"
	KwConst      Type = "KW_CONST"
	KwDefault    Type = "KW_DEFAULT"
	KwExtends    Type = "KW_EXTENDS"
	KwImplements Type = "KW_IMPLEMENTS"
	KwFor        Type = "KW_FOR"
	KwForeach    Type = "KW_FOREACH"
	KwLet        Type = "KW_LET"
	KwReturn     Type = "KW_RETURN"
	KwSwitch     Type = "KW_SWITCH"
	KwTry        Type = "KW_TRY"
	KwVar        Type = "KW_VAR"
	KwNew        Type = "KW_NEW"
	KwIf         Type = "KW_IF"
	KwElse       Type = "KW_ELSE"
	KwWhile      Type = "KW_WHILE"
	KwOr         Type = "KW_OR"
	KwAs         Type = "KW_AS"
	KwIn         Type = "KW_IN"

	// Primitives.
	Primitive Type = "PRIMITIVE"

	// General identifier.
	Word Type = "WORD"

	// Literals.
	Numeric Type = "NUMERIC"
	Hex     Type = "HEX"
	String  Type = "STRING"
	Char    Type = "CHAR"

	// Comments (retagged at construction).
	Comment Type = "COMMENT"

	// Sentinel.
	End Type = "END"
)

// primitiveNames is the fixed primitive-type vocabulary (§3).
var primitiveNames = map[string]bool{
	"bool": true, "boolean": true, "byte": true, "char": true, "double": true,
	"float": true, "int": true, "integer": true, "long": true, "short": true,
	"signed": true, "string": true, "unsigned": true, "void": true,
}

// IsPrimitiveName reports whether name is one of the fixed primitive type
// names recognized by the grammar.
func IsPrimitiveName(name string) bool {
	return primitiveNames[name]
}

var keywordTypes = map[string]Type{
	"copyright": Copyright, "Copyright": Copyright,
	"license": License, "License": License, "licence": License, "Licence": License,
	"class": Class, "interface": Interface, "package": Package,
	"include": Include, "namespace": Namespace,
	"public": ModPublic, "protected": ModProtected, "private": ModPrivate, "function": ModFunction,
	"break": KwBreak, "case": KwCase, "catch": KwCatch, "const": KwConst, "default": KwDefault,
	"extends": KwExtends, "implements": KwImplements, "for": KwFor, "foreach": KwForeach,
	"let": KwLet, "return": KwReturn, "switch": KwSwitch, "try": KwTry, "var": KwVar, "new": KwNew,
	"if": KwIf, "else": KwElse, "while": KwWhile, "or": KwOr, "as": KwAs, "in": KwIn,
}

// classifyWord returns the Type for an alphanumeric lexeme: a keyword/
// modifier/structural type if it matches one exactly, PRIMITIVE if it names
// a primitive, or WORD otherwise.
func classifyWord(s string) Type {
	if t, ok := keywordTypes[s]; ok {
		return t
	}

	if IsPrimitiveName(s) {
		return Primitive
	}

	return Word
}

// Token is a classified lexeme: verbatim content, coarse Group, fine Type,
// and its source range.
type Token struct {
	Content string
	Group   Group
	Type    Type
	begin   Pos
	end     Pos
}

func NewToken(content string, group Group, typ Type, begin, end Pos) Token {
	return Token{Content: content, Group: group, Type: typ, begin: begin, end: end}
}

func (t Token) Begin() Pos { return t.begin }
func (t Token) End() Pos   { return t.end }

// IsTrivial reports whether the token is whitespace or a comment: tokens
// the Tree Builder attaches verbatim to whatever parent is current without
// going through Expect.
func (t Token) IsTrivial() bool {
	return t.Group == GroupWhitespace || t.Group == GroupComment
}
