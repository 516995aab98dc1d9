// SPDX-FileCopyrightText: © 2024 The ixc authors <https://github.com/ixlang/ixc/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package ixsem

import (
	"github.com/ixlang/ixc/internal/ixtoken"
	"github.com/ixlang/ixc/internal/ixtree"
)

// buildMethod walks a "method"-tagged modifier node into a Method (§4.4):
// the modifier node's leading non-trivial children are optional const/
// function markers; the next one is the method-name node, whose own
// tagged children are the parameter list, optional return type and body.
func buildMethod(modNode *ixtree.Node, unitIndex int) Method {
	sig := Signature{Modifier: modNode.Token.Content, UnitIndex: unitIndex}

	kids := modNode.NonTrivialChildren()

markers:
	for len(kids) > 0 {
		switch kids[0].Token.Type {
		case ixtoken.KwConst:
			sig.Const = true
		case ixtoken.ModFunction:
			sig.Static = true
		default:
			break markers
		}

		kids = kids[1:]
	}

	if len(kids) == 0 {
		return Method{Signature: sig}
	}

	nameNode := kids[0]
	sig.Name = nameNode.Token.Content

	var body []Statement

	for _, s := range nameNode.NonTrivialChildren() {
		switch s.Tag {
		case "parameters":
			sig.Parameters = buildParameters(s)
		case "returntype":
			sig.ReturnType = parseTypeTail(s)
		case "block":
			body = buildBlock(s)
		}
	}

	return Method{Signature: sig, Body: body}
}

// buildParameters builds one Parameter per "parameter"-tagged child, each
// parsed identically to a Member's type tail (§4.4).
func buildParameters(paramsNode *ixtree.Node) []Parameter {
	var out []Parameter

	for _, p := range paramsNode.ChildrenTagged("parameter") {
		out = append(out, Parameter{
			Name: p.Token.Content,
			Type: typeTailOf(p),
		})
	}

	return out
}

// buildBlock builds one Statement per "statement"-tagged child of a
// "block"-tagged node.
func buildBlock(blockNode *ixtree.Node) []Statement {
	var out []Statement

	for _, s := range blockNode.ChildrenTagged("statement") {
		out = append(out, buildStatement(s))
	}

	return out
}

// buildStatement dispatches on the statement's leading keyword (§4.4):
// var -> Declaration, return -> bare Expression, the conditional-family
// keywords -> Conditional, everything else -> Expression.
func buildStatement(stmtNode *ixtree.Node) Statement {
	switch stmtNode.Token.Type {
	case ixtoken.KwVar:
		return buildDeclaration(stmtNode)
	case ixtoken.KwIf, ixtoken.KwElse, ixtoken.KwFor, ixtoken.KwForeach, ixtoken.KwOr, ixtoken.KwWhile:
		return buildConditional(stmtNode)
	default:
		return Statement{Kind: StmtExpression, Expr: &Expression{Node: stmtNode}, Node: stmtNode}
	}
}

// buildDeclaration parses "var name: type [= expr]" (§4.4). The variable
// name is stmtNode's first child; its ":" child holds the type tail, which
// may itself carry a trailing assignment whose children become the
// initializer Expression.
func buildDeclaration(stmtNode *ixtree.Node) Statement {
	decl := &Declaration{}

	kids := stmtNode.NonTrivialChildren()
	if len(kids) == 0 {
		return Statement{Kind: StmtDeclaration, Declaration: decl, Node: stmtNode}
	}

	nameNode := kids[0]
	decl.Name = nameNode.Token.Content

	var colon *ixtree.Node

	for _, c := range nameNode.NonTrivialChildren() {
		if c.Token.Type == ixtoken.OfType {
			colon = c
		}
	}

	decl.Type = typeTailOf(nameNode)

	if colon != nil {
		if assign := findAssign(colon); assign != nil {
			decl.Value = &Expression{Node: trimTrailingStop(&ixtree.Node{Children: assign.Children})}
		}
	}

	return Statement{Kind: StmtDeclaration, Declaration: decl, Node: stmtNode}
}

// trimTrailingStop drops a trailing statement terminator from a value
// subtree: "=" nests the whole rest of the statement beneath it (§4.3),
// including the closing ";", and an operator-led token like "@" or "%"
// nests further still, so the terminator can sit several levels below n's
// direct children rather than as n's own last child. This follows the
// right-leaning chain down to wherever that Stop leaf actually is and
// returns a copy of the spine with it removed, leaving shared nodes
// elsewhere in the tree untouched.
func trimTrailingStop(n *ixtree.Node) *ixtree.Node {
	if n == nil || len(n.Children) == 0 {
		return n
	}

	last := n.Children[len(n.Children)-1]

	if last.Token.Type == ixtoken.Stop && len(last.Children) == 0 {
		cp := *n
		cp.Children = append([]*ixtree.Node{}, n.Children[:len(n.Children)-1]...)
		return &cp
	}

	trimmedLast := trimTrailingStop(last)
	if trimmedLast == last {
		return n
	}

	cp := *n
	cp.Children = append([]*ixtree.Node{}, n.Children...)
	cp.Children[len(cp.Children)-1] = trimmedLast
	return &cp
}

// findAssign locates the "=" node within a type tail's nested run, if any.
func findAssign(n *ixtree.Node) *ixtree.Node {
	for _, c := range n.NonTrivialChildren() {
		if c.Token.Type == ixtoken.AssignOp {
			return c
		}

		if found := findAssign(c); found != nil {
			return found
		}
	}

	return nil
}

// buildConditional builds a Conditional from a keyword-led statement node
// whose tagged children are an "expression" head and a "block" body
// (§4.4). foreach heads are further decomposed per §8 scenario 5.
func buildConditional(stmtNode *ixtree.Node) Statement {
	cond := &Conditional{Keyword: stmtNode.Token.Content}

	var head, body *ixtree.Node

	for _, c := range stmtNode.NonTrivialChildren() {
		switch c.Tag {
		case "expression":
			head = c
		case "block":
			body = c
		}
	}

	if head != nil {
		cond.Head = &Expression{Node: head}
	}

	if body != nil {
		cond.Body = buildBlock(body)
	}

	if cond.Keyword == "foreach" {
		parseForeachHead(cond, head)
	}

	return Statement{Kind: StmtConditional, Conditional: cond, Node: stmtNode}
}

// parseForeachHead binds variable/iterator/direction from a foreach head's
// three flat tokens: "var in iter" or "iter as var" (§8 scenario 5).
func parseForeachHead(cond *Conditional, head *ixtree.Node) {
	if head == nil {
		cond.Invalid = true

		return
	}

	var parts []*ixtree.Node

	for _, c := range head.NonTrivialChildren() {
		if c.Token.IsTrivial() || c.Token.Type == ixtoken.OpenExpr || c.Token.Type == ixtoken.CloseExpr {
			continue
		}

		parts = append(parts, c)
	}

	if len(parts) != 3 {
		cond.Invalid = true

		return
	}

	a, b, c := parts[0], parts[1], parts[2]

	switch b.Token.Type {
	case ixtoken.KwIn:
		cond.ForeachVariable = a.Token.Content
		cond.ForeachIterator = c.Token.Content
		cond.ForeachDirection = "in"
	case ixtoken.KwAs:
		cond.ForeachIterator = a.Token.Content
		cond.ForeachVariable = c.Token.Content
		cond.ForeachDirection = "as"
	default:
		cond.Invalid = true
	}
}
