// SPDX-FileCopyrightText: © 2024 The ixc authors <https://github.com/ixlang/ixc/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package ixsem

import (
	"path/filepath"
	"strings"

	"github.com/ixlang/ixc/internal/ixtoken"
	"github.com/ixlang/ixc/internal/ixtree"
)

// SourceUnit is the semantic model of one input file: its package/class
// identity, its single Class declaration (if any) and its top-level
// Methods, plus the header lines it contributed.
type SourceUnit struct {
	Path    string
	Package string
	Name    string

	Class   *Class
	Methods []Method

	CopyrightLines []string
	LicenseLines   []string

	// Invalid is set once a second class-tagged child is seen (§8,
	// "Invalid-class law"); the unit retains only its first class.
	Invalid bool
}

// Prefix is the unit's mangled C identifier stem,
// "<package-with-underscores>_<class-name>" (Glossary, "Unit prefix").
func (u *SourceUnit) Prefix() string {
	return strings.ReplaceAll(u.Package, ".", "_") + "_" + u.Name
}

// FullName is the unit's dotted fully-qualified name, "<package>.<name>".
func (u *SourceUnit) FullName() string {
	return u.Package + "." + u.Name
}

// splitPath derives (package, name) from a source path: the penultimate
// path segment is the package, the last segment's basename (without its
// extension) is the class name (§4.4, §6).
func splitPath(path string) (pkg, name string) {
	clean := filepath.ToSlash(path)
	segs := strings.Split(clean, "/")

	base := segs[len(segs)-1]
	base = strings.TrimSuffix(base, filepath.Ext(base))

	if len(segs) >= 2 {
		pkg = segs[len(segs)-2]
	}

	return pkg, base
}

// BuildSourceUnit walks root (the output of ixtree.Builder.Build) into a
// SourceUnit for the file at path (§4.4).
func BuildSourceUnit(path string, root *ixtree.Node) *SourceUnit {
	pkg, name := splitPath(path)

	unit := &SourceUnit{Path: path, Package: pkg, Name: name}

	for _, child := range root.Children {
		switch child.Tag {
		case "copyright":
			unit.CopyrightLines = append(unit.CopyrightLines, headerLineText(child))
		case "license":
			unit.LicenseLines = append(unit.LicenseLines, headerLineText(child))
		case "class":
			if unit.Class != nil {
				unit.Invalid = true

				continue
			}

			unit.Class = buildClass(child)
		case "method":
			unit.Methods = append(unit.Methods, buildMethod(child, 0))
		}
	}

	for i := range unit.Methods {
		if unit.Methods[i].Signature.IsConstructor() {
			unit.Methods[i].Signature.ReturnType = Type{Name: unit.FullName(), IsPointer: true}
		}
	}

	return unit
}

// headerLineText concatenates a copyright/license node's children (every
// token through, but not including, the terminating newline).
func headerLineText(node *ixtree.Node) string {
	sb := &strings.Builder{}

	for _, c := range node.Children {
		sb.WriteString(c.Token.Content)
	}

	return strings.TrimSpace(sb.String())
}

// buildClass walks a "class"-tagged modifier node: its single non-trivial
// child is the "class" keyword node, whose own children are the class
// name, optional extends/implements clauses, and the classblock (§4.4).
func buildClass(modNode *ixtree.Node) *Class {
	cls := &Class{Modifier: modifierName(modNode)}

	kids := modNode.NonTrivialChildren()
	if len(kids) == 0 {
		return cls
	}

	classTok := kids[0]

	for _, c := range classTok.NonTrivialChildren() {
		switch {
		case c.Token.Type == ixtoken.Word && cls.Name == "":
			cls.Name = c.Token.Content
		case c.Token.Type == ixtoken.KwExtends:
			cls.Extends = concatFlatten(c)
		case c.Token.Type == ixtoken.KwImplements:
			cls.Implements = splitOnComma(c)
		case c.Tag == "classblock":
			cls.Members = buildMembers(c)
		}
	}

	return cls
}

// modifierName returns the textual content of the modifier/marker tokens
// leading up to (but not including) a class/method's own name node: for a
// plain "public class" node this is just "public"; for "public function"
// it concatenates both tokens separated by a space.
func modifierName(modNode *ixtree.Node) string {
	parts := []string{modNode.Token.Content}

	for _, c := range modNode.NonTrivialChildren() {
		if c.Tag != "" {
			break
		}

		if c.Token.Type == ixtoken.KwConst || c.Token.Type == ixtoken.ModFunction {
			parts = append(parts, c.Token.Content)

			continue
		}

		break
	}

	return strings.Join(parts, " ")
}

func buildMembers(blockNode *ixtree.Node) []Member {
	var out []Member

	for _, m := range blockNode.ChildrenTagged("member") {
		out = append(out, buildMember(m))
	}

	return out
}

// buildMember expects a WORD (name) then delegates the tail to typeTailOf
// (§4.4).
func buildMember(memberNode *ixtree.Node) Member {
	kids := memberNode.NonTrivialChildren()
	if len(kids) == 0 {
		return Member{Sigil: memberNode.Token.Content}
	}

	nameNode := kids[0]

	return Member{
		Sigil: memberNode.Token.Content,
		Name:  nameNode.Token.Content,
		Type:  typeTailOf(nameNode),
	}
}

// typeTailOf finds nameNode's ":" (oftype) child, if any, and flattens the
// type-tail subtree beneath it into a Type (§4.4: "a following [] sets
// isArray; a following * infix-op sets isPointer; a following & infix-op
// sets isReference; a following assignment-op captures the default
// value"). It flattens the whole subtree rather than just direct children
// because the oftype/operator-led recursion in the tree builder nests
// "*"/"&"/"=" one level deeper than the plain tokens around them.
func typeTailOf(nameNode *ixtree.Node) Type {
	var colon *ixtree.Node

	for _, c := range nameNode.NonTrivialChildren() {
		if c.Token.Type == ixtoken.OfType {
			colon = c

			break
		}
	}

	if colon == nil {
		return Type{}
	}

	return parseTypeTail(colon)
}

func parseTypeTail(colon *ixtree.Node) Type {
	t := Type{}
	nodes := flattenRun(colon)

	i := 0
	if i < len(nodes) && (nodes[i].Token.Type == ixtoken.Primitive || nodes[i].Token.Type == ixtoken.Word) {
		t.Name = nodes[i].Token.Content
		i++
	}

	for ; i < len(nodes); i++ {
		n := nodes[i]

		switch {
		case n.Token.Type == ixtoken.OpenSubscript:
			t.IsArray = true
		case n.Token.Type == ixtoken.InfixOp && n.Token.Content == "*":
			t.IsPointer = true
		case n.Token.Type == ixtoken.InfixOp && n.Token.Content == "&":
			t.IsReference = true
		case n.Token.Type == ixtoken.AssignOp:
			t.Default = concatTokens(flattenRun(n))
		}
	}

	return t
}

// flattenRun collects every descendant of n, in pre-order (source order).
// Because untilStop only ever nests the remainder of a run beneath the
// single operator-led token that continues it, a pre-order walk recovers
// the original flat token sequence regardless of how deep that nesting
// went.
func flattenRun(n *ixtree.Node) []*ixtree.Node {
	if n == nil {
		return nil
	}

	var out []*ixtree.Node

	for _, c := range n.NonTrivialChildren() {
		out = append(out, c)
		out = append(out, flattenRun(c)...)
	}

	return out
}

func concatTokens(nodes []*ixtree.Node) string {
	sb := &strings.Builder{}
	for _, n := range nodes {
		sb.WriteString(n.Token.Content)
	}

	return sb.String()
}

func concatFlatten(n *ixtree.Node) string {
	return concatTokens(flattenRun(n))
}

func splitOnComma(n *ixtree.Node) []string {
	var out []string

	cur := &strings.Builder{}

	for _, tok := range flattenRun(n) {
		if tok.Token.Type == ixtoken.Comma {
			if cur.Len() > 0 {
				out = append(out, strings.TrimSpace(cur.String()))
				cur.Reset()
			}

			continue
		}

		cur.WriteString(tok.Token.Content)
	}

	if cur.Len() > 0 {
		out = append(out, strings.TrimSpace(cur.String()))
	}

	return out
}
