// SPDX-FileCopyrightText: © 2024 The ixc authors <https://github.com/ixlang/ixc/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package ixsem walks a parsed ixtree into the semantic domain objects the
// emitter consumes: SourceUnit, Class, Member, Method, Signature, Parameter,
// Type, and the Statement/Conditional/Declaration/Expression family (§4.4),
// plus the cross-file Unit Collection (§4.5).
package ixsem

import "github.com/ixlang/ixc/internal/ixtree"

// Type is a resolved or unresolved type reference: a raw name plus the
// decoration flags the grammar recognizes on a member or parameter tail.
type Type struct {
	Name        string
	IsArray     bool
	IsPointer   bool
	IsReference bool

	// Default is the content of the non-whitespace tokens after the type
	// tail's "=", concatenated without the whitespace between them, or ""
	// if absent.
	Default string
}

// Parameter is one method parameter: a name plus its Type.
type Parameter struct {
	Name string
	Type Type
}

// Member is one class-block member (§4.4: "expect WORD, then :, then
// PRIMITIVE or WORD").
type Member struct {
	// Sigil is "@" for an instance member or "%" for a class member.
	Sigil string
	Name  string
	Type  Type
}

func (m Member) IsInstance() bool { return m.Sigil == "@" }
func (m Member) IsClass() bool    { return m.Sigil == "%" }

// Class is the unit's single class declaration.
type Class struct {
	Modifier   string
	Name       string
	Extends    string
	Implements []string
	Members    []Member
}

// Signature is the normalized view of a method header used by the emitter
// and the Unit Collection's mangled-key index (§4.5, Glossary).
type Signature struct {
	Modifier   string
	Const      bool
	Static     bool // set by a "function" marker before the method name; the C emitter then omits the implicit self parameter.
	Name       string
	Parameters []Parameter
	ReturnType Type

	// UnitIndex is the owning SourceUnit's position in the Unit
	// Collection: a non-owning interior index rather than a raw pointer
	// (§9, "Tree cycles").
	UnitIndex int
}

// IsConstructor reports whether this signature is the unit's "new" method.
func (s Signature) IsConstructor() bool { return s.Name == "new" }

// Method pairs a Signature with its body.
type Method struct {
	Signature Signature
	Body      []Statement
}

// StatementKind discriminates the Statement sum type (§9, "tagged variants
// vs. polymorphism").
type StatementKind int

const (
	StmtUnknown StatementKind = iota
	StmtDeclaration
	StmtConditional
	StmtExpression
)

// Statement is a tagged union: exactly one of Declaration, Conditional or
// Expr is populated according to Kind; Node always points at the backing
// ixtree subtree.
type Statement struct {
	Kind        StatementKind
	Declaration *Declaration
	Conditional *Conditional
	Expr        *Expression
	Node        *ixtree.Node
}

// Declaration is a `var name: type [= expr]` statement.
type Declaration struct {
	Name  string
	Type  Type
	Value *Expression
}

// Conditional covers if/else/for/foreach/or/while (§4.4: "build Conditional
// from the keyword node; its children contain a parenthesized head and a
// brace-delimited body Block").
type Conditional struct {
	Keyword string
	Head    *Expression
	Body    []Statement

	// Foreach-specific fields, populated only when Keyword == "foreach"
	// (§8 scenario 5).
	ForeachVariable  string
	ForeachIterator  string
	ForeachDirection string // "in", "as", or "" if malformed.
	Invalid          bool
}

// Expression wraps the raw parenthesized/standalone subtree an expression
// occupies in the tree. The emitter walks Node directly rather than a
// re-modeled AST, substituting @X -> self->X and %X -> <prefix>_X and
// passing every other token through verbatim (§4.6, §9).
type Expression struct {
	Node *ixtree.Node
}
