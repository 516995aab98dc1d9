// SPDX-FileCopyrightText: © 2024 The ixc authors <https://github.com/ixlang/ixc/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package ixtree implements the syntax-directed tree builder: a recursive
// set of grammar routines that turn a Tokenizer's token stream into an
// ordered tree of tagged Nodes, quarantining out-of-grammar tokens instead
// of failing (§4.3).
package ixtree

import (
	"strings"

	"github.com/ixlang/ixc/internal/ixtoken"
)

// Node is a tree vertex owning exactly one Token and an ordered sequence of
// child Nodes. An optional Tag names the grammatical role of the subtree
// rooted here (e.g. "class", "method", "statement", "whitespace",
// "unexpected"); untagged nodes are structural connective tissue.
type Node struct {
	Token    ixtoken.Token
	Tag      string
	Children []*Node
}

// NewNode creates a leaf node wrapping tok.
func NewNode(tok ixtoken.Token) *Node {
	return &Node{Token: tok}
}

// WithTag sets the node's tag and returns it, for builder-style chaining.
func (n *Node) WithTag(tag string) *Node {
	n.Tag = tag
	return n
}

// AddChild appends a child, preserving source order.
func (n *Node) AddChild(c *Node) *Node {
	n.Children = append(n.Children, c)
	return n
}

// lastChildOrSelf returns the most recently added child, or n itself if it
// has none yet. The Statement/Expression routines' "recurse into the last
// child" rule, which builds operator-led tails as right-leaning subtrees
// instead of flat sibling runs, goes through lastNonTrivialChildOrSelf below.
func (n *Node) lastChildOrSelf() *Node {
	if len(n.Children) == 0 {
		return n
	}

	return n.Children[len(n.Children)-1]
}

// lastNonTrivialChildOrSelf is lastChildOrSelf, skipping over any trailing
// whitespace/comment children: Statement and Expression interleave trivia
// with content as plain children rather than routing it through
// attachTrivia, so the "recurse into the last child" rule must bind an
// operator to the last real token that preceded it, not to a space or
// comment that happens to be last in Children.
func (n *Node) lastNonTrivialChildOrSelf() *Node {
	for i := len(n.Children) - 1; i >= 0; i-- {
		if !n.Children[i].isTrivial() {
			return n.Children[i]
		}
	}

	return n
}

// Begin returns the position of the node's own token.
func (n *Node) Begin() ixtoken.Pos {
	return n.Token.Begin()
}

// End returns the position following the node's last descendant, or its own
// token if it has no children.
func (n *Node) End() ixtoken.Pos {
	if len(n.Children) > 0 {
		return n.Children[len(n.Children)-1].End()
	}

	return n.Token.End()
}

// Text concatenates, in pre-order, the verbatim content of every token
// reachable from n. For the root of a fully built tree this reproduces the
// original file's non-discarded content, modulo synthetic STOP insertions
// (§8, "Round-trip fidelity").
func (n *Node) Text() string {
	sb := &strings.Builder{}
	n.writeText(sb)

	return sb.String()
}

func (n *Node) writeText(sb *strings.Builder) {
	sb.WriteString(n.Token.Content)

	for _, c := range n.Children {
		c.writeText(sb)
	}
}

// ChildrenTagged returns the direct children carrying the given tag, in
// source order.
func (n *Node) ChildrenTagged(tag string) []*Node {
	var out []*Node

	for _, c := range n.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}

	return out
}

// isTrivial reports whether c should be skipped by FirstNonTrivial/
// NonTrivialChildren: either attachTrivia tagged it "whitespace", or it is a
// plain whitespace/comment token picked up by a routine (like Statement or
// Expression) that interleaves trivia with content instead of tagging it.
func (c *Node) isTrivial() bool {
	return c.Tag == "whitespace" || c.Token.IsTrivial()
}

// FirstNonTrivial returns the first direct child that is not whitespace or
// comment trivia, or nil.
func (n *Node) FirstNonTrivial() *Node {
	for _, c := range n.Children {
		if !c.isTrivial() {
			return c
		}
	}

	return nil
}

// NonTrivialChildren returns every direct child that is not whitespace or
// comment trivia, in source order.
func (n *Node) NonTrivialChildren() []*Node {
	var out []*Node

	for _, c := range n.Children {
		if !c.isTrivial() {
			out = append(out, c)
		}
	}

	return out
}

// Tree is a thin owner of a root Node.
type Tree struct {
	Root *Node
}

// Quarantines returns every "unexpected"-tagged node in the tree, in source
// order — one per contiguous run of tokens the grammar rejected (§4.3). An
// empty result means the input was well-formed under the grammar.
func (t *Tree) Quarantines() []*Node {
	var out []*Node
	collectQuarantines(t.Root, &out)

	return out
}

func collectQuarantines(n *Node, out *[]*Node) {
	if n.Tag == "unexpected" {
		*out = append(*out, n)
	}

	for _, c := range n.Children {
		collectQuarantines(c, out)
	}
}
