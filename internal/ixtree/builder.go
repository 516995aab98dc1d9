// SPDX-FileCopyrightText: © 2024 The ixc authors <https://github.com/ixlang/ixc/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package ixtree

import (
	"fmt"
	"os"

	"github.com/ixlang/ixc/internal/ixcoll"
	"github.com/ixlang/ixc/internal/ixtoken"
)

// Builder drives the grammar routines over a single Tokenizer. It keeps an
// auxiliary stack of the tags of the Node contexts currently open, read by
// Context and echoed by the Trace lines — the actual tree
// shape is threaded through the routines' parent-Node parameters, with the
// Go call stack playing the role of the real context stack.
type Builder struct {
	tz   *ixtoken.Tokenizer
	open *ixcoll.Stack[string]

	// Trace gates unconditional "[Builder] Open(tag)"/"Close(tag)" lines to
	// os.Stderr on every pushContext/popContext, off by default so a
	// compiler invoked from a build pipeline stays silent (§10.1).
	Trace bool
}

// NewBuilder creates a Builder over tz.
func NewBuilder(tz *ixtoken.Tokenizer) *Builder {
	return &Builder{tz: tz, open: ixcoll.NewStack[string]()}
}

// Build runs Root to completion and returns the resulting Tree.
func (b *Builder) Build() *Tree {
	return &Tree{Root: b.root()}
}

func (b *Builder) pushContext(tag string) {
	if b.Trace {
		fmt.Fprintf(os.Stderr, "[Builder] Open(%s)\n", tag)
	}

	b.open.Push(tag)
}

func (b *Builder) popContext() {
	if b.Trace {
		tag, _ := b.open.Peek()
		fmt.Fprintf(os.Stderr, "[Builder] Close(%s)\n", tag)
	}

	b.open.Pop()
}

// Context returns the chain of currently open tags, outermost first.
func (b *Builder) Context() []string {
	// arraystack iterates top-first; collect then reverse for outermost-first.
	var rev []string

	tmp := ixcoll.NewStack[string]()

	for {
		v, ok := b.open.Pop()
		if !ok {
			break
		}

		rev = append(rev, v)
		tmp.Push(v)
	}

	for {
		v, ok := tmp.Pop()
		if !ok {
			break
		}

		b.open.Push(v)
	}

	out := make([]string, len(rev))
	for i, v := range rev {
		out[len(rev)-1-i] = v
	}

	return out
}

// expect peels tokens rejected by allowed off the stream into a single
// freshly injected child of parent tagged "unexpected", stopping as soon as
// the head of the stream is allowed or END is reached (§4.3). A contiguous
// run of rejected tokens nests under one quarantine node rather than one
// per token, so the tree still reaches every input token exactly once.
func expect(parent *Node, tz *ixtoken.Tokenizer, allowed func(ixtoken.Type) bool) {
	var quarantine *Node

	for {
		pt := tz.PeekType()
		if pt == ixtoken.End || allowed(pt) {
			return
		}

		tok := tz.Next()

		if quarantine == nil {
			quarantine = NewNode(tok).WithTag("unexpected")
			parent.AddChild(quarantine)
		} else {
			quarantine.AddChild(NewNode(tok))
		}
	}
}

func typeIs(types ...ixtoken.Type) func(ixtoken.Type) bool {
	set := make(map[ixtoken.Type]bool, len(types))
	for _, t := range types {
		set[t] = true
	}

	return func(t ixtoken.Type) bool { return set[t] }
}

// attachTrivia moves leading whitespace and comment tokens onto parent as
// "whitespace"-tagged children, verbatim, so round-trip Text() reproduces
// them without the semantic routines ever having to look at them.
func attachTrivia(parent *Node, tz *ixtoken.Tokenizer) {
	for {
		if tz.PeekType() == ixtoken.End {
			return
		}

		tok := tz.Peek()
		if !tok.IsTrivial() {
			return
		}

		tz.Next()
		parent.AddChild(NewNode(tok).WithTag("whitespace"))
	}
}

// isOperatorLed reports whether t is one of the operator-ish types that
// trigger the shared "recurse into the last child" rule used across
// UntilStop's variants, Statement and Expression: a run that hits one of
// these builds a right-leaning subtree instead of continuing as flat
// siblings, since everything following an operator binds to it.
func isOperatorLed(t ixtoken.Type) bool {
	switch t {
	case ixtoken.OfType, ixtoken.AssignOp, ixtoken.InfixOp, ixtoken.PrePostfixOp,
		ixtoken.BangPrefix, ixtoken.InstanceMember, ixtoken.ClassMember:
		return true
	default:
		return false
	}
}

// untilStop is the shared body behind UntilStop / UntilStopOrEndEx /
// MemberUntilStop (§4.3): consume tokens as flat children of parent until
// one matches stop or END is reached, except that hitting an operator-led
// token recurses the same routine into that token's own (freshly created)
// node, so the remainder of the run becomes its descendant rather than its
// sibling.
func untilStop(parent *Node, tz *ixtoken.Tokenizer, stop func(ixtoken.Type) bool) {
	for {
		pt := tz.PeekType()
		if pt == ixtoken.End || stop(pt) {
			return
		}

		tok := tz.Next()
		child := NewNode(tok)
		parent.AddChild(child)

		if isOperatorLed(tok.Type) {
			untilStop(child, tz, stop)
			return
		}
	}
}

// UntilStop consumes a token run terminated by STOP.
func UntilStop(parent *Node, tz *ixtoken.Tokenizer) {
	untilStop(parent, tz, typeIs(ixtoken.Stop))
}

// UntilStopOrEndEx consumes a token run terminated by STOP, a comma or a
// closing expression parenthesis, used for a parameter's type tail where
// any of the three can legally follow.
func UntilStopOrEndEx(parent *Node, tz *ixtoken.Tokenizer) {
	untilStop(parent, tz, typeIs(ixtoken.Stop, ixtoken.Comma, ixtoken.CloseExpr))
}

// MemberUntilStop consumes a class-block member's tail, terminated by STOP,
// a comma, a start-block (inline initializer) or a close-expression.
func MemberUntilStop(parent *Node, tz *ixtoken.Tokenizer) {
	untilStop(parent, tz, typeIs(ixtoken.Stop, ixtoken.Comma, ixtoken.OpenBlock, ixtoken.CloseExpr))
}

// root is the entry grammar routine (§4.3). The root's allowed set narrows
// as each header line is consumed: copyright and license may each appear at
// most once, and only before the first modifier line.
func (b *Builder) root() *Node {
	root := NewNode(ixtoken.Token{}).WithTag("root")

	stage := 0 // 0: copyright+license+modifier allowed; 1: license+modifier; 2: modifier only.

	for {
		attachTrivia(root, b.tz)

		allowed := rootAllowed(stage)
		expect(root, b.tz, allowed)

		switch b.tz.PeekType() {
		case ixtoken.End:
			return root
		case ixtoken.Copyright:
			tok := b.tz.Next()
			root.AddChild(headerLine(tok, b.tz, "copyright"))
			stage = 1
		case ixtoken.License:
			tok := b.tz.Next()
			root.AddChild(headerLine(tok, b.tz, "license"))
			stage = 2
		default:
			tok := b.tz.Next()
			modNode := NewNode(tok)
			root.AddChild(modNode)
			b.pushContext("complex")
			b.complex(modNode)
			b.popContext()
			stage = 2
		}
	}
}

func rootAllowed(stage int) func(ixtoken.Type) bool {
	switch stage {
	case 0:
		return typeIs(ixtoken.Copyright, ixtoken.License,
			ixtoken.ModPublic, ixtoken.ModProtected, ixtoken.ModPrivate, ixtoken.ModFunction)
	case 1:
		return typeIs(ixtoken.License,
			ixtoken.ModPublic, ixtoken.ModProtected, ixtoken.ModPrivate, ixtoken.ModFunction)
	default:
		return typeIs(ixtoken.ModPublic, ixtoken.ModProtected, ixtoken.ModPrivate, ixtoken.ModFunction)
	}
}

// headerLine builds a copyright/license node: the recognized keyword token
// plus every token through (not including) the terminating newline, so the
// free-form remainder of the line survives verbatim as children. The
// Tokenizer's ignoreUntilNewline state already suppressed stop-insertion
// across this span.
func headerLine(tok ixtoken.Token, tz *ixtoken.Tokenizer, tag string) *Node {
	node := NewNode(tok).WithTag(tag)

	for {
		pt := tz.PeekType()
		if pt == ixtoken.End || pt == ixtoken.Newline {
			return node
		}

		node.AddChild(NewNode(tz.Next()))
	}
}

// complex dispatches a just-consumed modifier's subtree: a class keyword
// starts Class; zero or more method markers (const, function) followed by
// a method name starts Method (§4.3, §4.4: "the modifier node's first
// non-whitespace child is optionally const; then a WORD").
func (b *Builder) complex(parent *Node) {
	attachTrivia(parent, b.tz)
	expect(parent, b.tz, typeIs(ixtoken.Class, ixtoken.KwConst, ixtoken.ModFunction, ixtoken.KwNew, ixtoken.Word))

	for b.tz.PeekType() == ixtoken.KwConst || b.tz.PeekType() == ixtoken.ModFunction {
		parent.AddChild(NewNode(b.tz.Next()))
		attachTrivia(parent, b.tz)
		expect(parent, b.tz, typeIs(ixtoken.KwConst, ixtoken.ModFunction, ixtoken.KwNew, ixtoken.Word))
	}

	switch b.tz.PeekType() {
	case ixtoken.Class:
		tok := b.tz.Next()
		parent.Tag = "class"
		classNode := NewNode(tok)
		parent.AddChild(classNode)
		b.pushContext("class")
		b.class(classNode)
		b.popContext()
	case ixtoken.KwNew, ixtoken.Word:
		tok := b.tz.Next()
		parent.Tag = "method"
		nameNode := NewNode(tok)
		parent.AddChild(nameNode)
		b.pushContext("method")
		b.method(nameNode)
		b.popContext()
	}
}

// class expects the class's name, then consumes optional extends/implements
// clauses and the class body block (§4.3: "consumes optional
// extends/implements keyword runs... then a start-block whose subtree is
// ClassBlock").
func (b *Builder) class(parent *Node) {
	attachTrivia(parent, b.tz)

	// The class name is optional (an anonymous class is legal, §8 scenario
	// 1), so its absence is not quarantined: only consume it when present.
	if b.tz.PeekType() == ixtoken.Word {
		parent.AddChild(NewNode(b.tz.Next()))
	}

	for {
		attachTrivia(parent, b.tz)
		expect(parent, b.tz, typeIs(ixtoken.KwExtends, ixtoken.KwImplements, ixtoken.OpenBlock))

		switch b.tz.PeekType() {
		case ixtoken.KwExtends, ixtoken.KwImplements:
			tok := b.tz.Next()
			kwNode := NewNode(tok)
			parent.AddChild(kwNode)
			untilStop(kwNode, b.tz, typeIs(ixtoken.OpenBlock))
		case ixtoken.OpenBlock:
			tok := b.tz.Next()
			blockNode := NewNode(tok).WithTag("classblock")
			parent.AddChild(blockNode)
			b.classBlock(blockNode)

			return
		default:
			return
		}
	}
}

// classBlock repeatedly dispatches on @ (instance member), % (class
// member) or } (end of block).
func (b *Builder) classBlock(parent *Node) {
	for {
		attachTrivia(parent, b.tz)
		expect(parent, b.tz, typeIs(ixtoken.InstanceMember, ixtoken.ClassMember, ixtoken.CloseBlock))

		switch b.tz.PeekType() {
		case ixtoken.InstanceMember, ixtoken.ClassMember:
			tok := b.tz.Next()
			memberNode := NewNode(tok).WithTag("member")
			parent.AddChild(memberNode)
			b.classBlockMember(memberNode)
		case ixtoken.CloseBlock:
			tok := b.tz.Next()
			parent.AddChild(NewNode(tok))

			return
		default:
			return
		}
	}
}

// classBlockMember expects the member's name, then delegates its tail
// (type annotation, pointer/reference markers, inline initializer) to
// MemberUntilStop.
func (b *Builder) classBlockMember(parent *Node) {
	attachTrivia(parent, b.tz)
	expect(parent, b.tz, typeIs(ixtoken.Word))

	if b.tz.PeekType() != ixtoken.Word {
		return
	}

	tok := b.tz.Next()
	nameNode := NewNode(tok)
	parent.AddChild(nameNode)
	MemberUntilStop(nameNode, b.tz)

	switch b.tz.PeekType() {
	case ixtoken.Stop, ixtoken.Comma:
		parent.AddChild(NewNode(b.tz.Next()))
	}
}

// method builds a method's parameter list, optional return type and body,
// starting from the already-consumed name node (§4.3: "(start-expression)
// whose subtree is Parameters; then optional : whose subtree is UntilStop;
// then { whose subtree is Block").
func (b *Builder) method(parent *Node) {
	attachTrivia(parent, b.tz)
	expect(parent, b.tz, typeIs(ixtoken.OpenExpr))

	if b.tz.PeekType() != ixtoken.OpenExpr {
		return
	}

	tok := b.tz.Next()
	paramsNode := NewNode(tok).WithTag("parameters")
	parent.AddChild(paramsNode)
	b.parameters(paramsNode)

	attachTrivia(parent, b.tz)
	expect(parent, b.tz, typeIs(ixtoken.OfType, ixtoken.OpenBlock))

	if b.tz.PeekType() == ixtoken.OfType {
		tok2 := b.tz.Next()
		retNode := NewNode(tok2).WithTag("returntype")
		parent.AddChild(retNode)
		untilStop(retNode, b.tz, typeIs(ixtoken.OpenBlock))

		attachTrivia(parent, b.tz)
		expect(parent, b.tz, typeIs(ixtoken.OpenBlock))
	}

	if b.tz.PeekType() == ixtoken.OpenBlock {
		tok3 := b.tz.Next()
		blockNode := NewNode(tok3).WithTag("block")
		parent.AddChild(blockNode)
		b.block(blockNode)
	}
}

// parameters repeatedly expects a parameter name or the closing
// parenthesis.
func (b *Builder) parameters(parent *Node) {
	for {
		attachTrivia(parent, b.tz)
		expect(parent, b.tz, typeIs(ixtoken.Word, ixtoken.CloseExpr))

		switch b.tz.PeekType() {
		case ixtoken.Word:
			tok := b.tz.Next()
			paramNode := NewNode(tok).WithTag("parameter")
			parent.AddChild(paramNode)
			b.parameter(paramNode)
		case ixtoken.CloseExpr:
			tok := b.tz.Next()
			parent.AddChild(NewNode(tok))

			return
		default:
			return
		}
	}
}

// parameter expects an optional : (oftype) followed by its type tail
// (delegated to UntilStopOrEndEx, which consumes the ':' itself since
// oftype is operator-led and nests the type tail beneath it — the same
// shape classBlockMember gets from MemberUntilStop), then consumes a
// single trailing comma if present.
func (b *Builder) parameter(parent *Node) {
	attachTrivia(parent, b.tz)
	expect(parent, b.tz, typeIs(ixtoken.OfType, ixtoken.Comma, ixtoken.CloseExpr))
	UntilStopOrEndEx(parent, b.tz)

	if b.tz.PeekType() == ixtoken.Comma {
		parent.AddChild(NewNode(b.tz.Next()))
	}
}

// block consumes statements until a close-block or END. Virtually any
// token can start a statement in this grammar (an unrecognized leading
// token still yields an expression-kind statement), so block's only
// quarantine boundary is the close-block itself.
func (b *Builder) block(parent *Node) {
	for {
		attachTrivia(parent, b.tz)

		pt := b.tz.PeekType()
		if pt == ixtoken.End {
			return
		}

		if pt == ixtoken.CloseBlock {
			tok := b.tz.Next()
			parent.AddChild(NewNode(tok))

			return
		}

		tok := b.tz.Next()
		stmtNode := NewNode(tok).WithTag("statement")
		parent.AddChild(stmtNode)
		b.statement(stmtNode)
	}
}

// statement consumes one token at a time into parent. It returns on a
// consumed STOP or on an unconsumed close-block (left for block to
// handle); a nested open-paren recurses via Expression on the current last
// child (so a call immediately following an identifier binds to it); an
// open-brace always starts a fresh body Block as a direct child of parent
// (a conditional's head expression and body block are siblings, not
// nested); an operator-led token (oftype, assignment, infix/prefix/
// postfix, @ or %) recurses the statement grammar itself into a freshly
// created last child, so the remainder of the line binds to the operator
// as a right-leaning subtree (§4.3, §4.4).
func (b *Builder) statement(parent *Node) {
	for {
		pt := b.tz.PeekType()

		switch {
		case pt == ixtoken.End:
			return
		case pt == ixtoken.Stop:
			parent.AddChild(NewNode(b.tz.Next()))

			return
		case pt == ixtoken.CloseBlock:
			return
		case pt == ixtoken.OpenExpr:
			tok := b.tz.Next()
			node := NewNode(tok).WithTag("expression")
			parent.lastNonTrivialChildOrSelf().AddChild(node)
			b.expression(node)
		case pt == ixtoken.OpenBlock:
			// A body block always closes out the statement: unlike an
			// operator-led tail, nothing legally follows a conditional's
			// closing brace within the same statement.
			tok := b.tz.Next()
			node := NewNode(tok).WithTag("block")
			parent.AddChild(node)
			b.block(node)

			return
		case isOperatorLed(pt):
			tok := b.tz.Next()
			node := NewNode(tok)
			parent.lastNonTrivialChildOrSelf().AddChild(node)
			b.statement(node)

			return
		default:
			parent.AddChild(NewNode(b.tz.Next()))
		}
	}
}

// expression consumes tokens until a STOP or a close-expression, both of
// which it consumes itself (an expression can terminate either a bare
// expression-statement or a parenthesized sub-expression). A nested
// open-paren recurses on the current last child; an operator-led token
// recurses the expression grammar into a freshly created last child.
func (b *Builder) expression(parent *Node) {
	for {
		pt := b.tz.PeekType()

		switch {
		case pt == ixtoken.End:
			return
		case pt == ixtoken.Stop, pt == ixtoken.CloseExpr:
			parent.AddChild(NewNode(b.tz.Next()))

			return
		case pt == ixtoken.OpenExpr:
			tok := b.tz.Next()
			node := NewNode(tok).WithTag("expression")
			parent.lastNonTrivialChildOrSelf().AddChild(node)
			b.expression(node)
		case isOperatorLed(pt):
			tok := b.tz.Next()
			node := NewNode(tok)
			parent.lastNonTrivialChildOrSelf().AddChild(node)
			b.expression(node)

			return
		default:
			parent.AddChild(NewNode(b.tz.Next()))
		}
	}
}
