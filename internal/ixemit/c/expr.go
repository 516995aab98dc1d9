// SPDX-FileCopyrightText: © 2024 The ixc authors <https://github.com/ixlang/ixc/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package c

import (
	"strings"

	"github.com/ixlang/ixc/internal/ixsem"
	"github.com/ixlang/ixc/internal/ixtoken"
	"github.com/ixlang/ixc/internal/ixtree"
)

// exprToC completes the statement/expression emitter per §9 ("Statement/
// expression emission completeness") and §12: it walks n in pre-order,
// substituting "@" -> "self->" and "%" -> "<prefix>_" and copying every
// other token's content verbatim, original spacing and adjacency included,
// since n's Children already carry interleaved whitespace exactly as the
// Tree Builder consumed it.
func exprToC(n *ixtree.Node, prefix string) string {
	if n == nil {
		return ""
	}

	sb := &strings.Builder{}
	writeExprNode(sb, n, prefix)

	return sb.String()
}

func writeExprNode(sb *strings.Builder, n *ixtree.Node, prefix string) {
	switch n.Token.Type {
	case ixtoken.InstanceMember:
		sb.WriteString("self->")
	case ixtoken.ClassMember:
		sb.WriteString(prefix + "_")
	default:
		sb.WriteString(n.Token.Content)
	}

	for _, c := range n.Children {
		writeExprNode(sb, c, prefix)
	}
}

// statementToC renders one Statement as a C statement (§12).
func statementToC(s ixsem.Statement, prefix string, coll *ixsem.Collection) string {
	switch s.Kind {
	case ixsem.StmtDeclaration:
		return declarationToC(s.Declaration, prefix, coll)
	case ixsem.StmtConditional:
		return conditionalToC(s.Conditional, prefix, coll)
	case ixsem.StmtExpression:
		return exprToC(s.Expr.Node, prefix) + ";"
	default:
		return "// unknown statement"
	}
}

func declarationToC(d *ixsem.Declaration, prefix string, coll *ixsem.Collection) string {
	if d.Value != nil {
		return ctype(d.Type, coll) + " " + d.Name + " =" + exprToC(d.Value.Node, prefix) + ";"
	}

	return ctype(d.Type, coll) + " " + d.Name + ";"
}

// conditionalToC lowers a Conditional to a C control structure. if/else/
// while/for carry their parenthesized head through verbatim (via the
// substituting walker); foreach has no native C counterpart, so it is
// lowered to a best-effort indexed loop over the iterator expression, as
// flagged by §12 ("documented as a best-effort lowering").
func conditionalToC(c *ixsem.Conditional, prefix string, coll *ixsem.Collection) string {
	sb := &strings.Builder{}

	if c.Keyword == "foreach" {
		writeForeachHead(sb, c)
	} else {
		sb.WriteString(c.Keyword)

		if c.Head != nil {
			sb.WriteString(" ")
			sb.WriteString(exprToC(c.Head.Node, prefix))
		}

		sb.WriteString(" {")
	}

	sb.WriteString("\n")

	for _, stmt := range c.Body {
		sb.WriteString("\t")
		sb.WriteString(statementToC(stmt, prefix, coll))
		sb.WriteString("\n")
	}

	sb.WriteString("}")

	return sb.String()
}

// writeForeachHead emits the indexed-for-loop head plus the per-iteration
// binding line; the element type is unknowable from the source grammar, so
// the binding uses the GCC/Clang "__auto_type" extension rather than guess a
// C type (§1's Non-goals exclude full type checking, so no type is owed
// here; __auto_type keeps the lowering self-consistent without one).
func writeForeachHead(sb *strings.Builder, c *ixsem.Conditional) {
	if c.Invalid {
		sb.WriteString("// invalid foreach head")

		return
	}

	iter := c.ForeachIterator
	variable := c.ForeachVariable

	sb.WriteString("for (size_t ix_i = 0; ix_i < ")
	sb.WriteString(iter)
	sb.WriteString("_count; ix_i++) {\n")
	sb.WriteString("\t__auto_type ")
	sb.WriteString(variable)
	sb.WriteString(" = ")
	sb.WriteString(iter)
	sb.WriteString("[ix_i];")
}
