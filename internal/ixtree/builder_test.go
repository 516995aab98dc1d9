// SPDX-FileCopyrightText: © 2024 The ixc authors <https://github.com/ixlang/ixc/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package ixtree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ixlang/ixc/internal/ixio"
	"github.com/ixlang/ixc/internal/ixtoken"
)

func buildSource(t *testing.T, src string) *Node {
	t.Helper()

	rd := ixio.NewReaderFromBytes([]byte(src))
	tz := ixtoken.NewTokenizer("test.ix", rd)

	return NewBuilder(tz).Build().Root
}

func TestRootParsesCopyrightThenLicenseThenClass(t *testing.T) {
	root := buildSource(t, "copyright 2024 Acme\nlicense MIT\npublic class Foo {\n}\n")

	kids := root.NonTrivialChildren()
	require.Len(t, kids, 3)
	require.Equal(t, "copyright", kids[0].Tag)
	require.Equal(t, "license", kids[1].Tag)
	require.Equal(t, "class", kids[2].Tag)
}

func TestRootRejectsSecondCopyrightLine(t *testing.T) {
	root := buildSource(t, "copyright A\ncopyright B\npublic class Foo {\n}\n")

	kids := root.NonTrivialChildren()
	require.Equal(t, "copyright", kids[0].Tag)
	require.Equal(t, "unexpected", kids[1].Tag)
	require.Equal(t, "class", kids[2].Tag)
}

func TestTreeQuarantinesCollectsUnexpectedRuns(t *testing.T) {
	root := buildSource(t, "copyright A\ncopyright B\npublic class Foo {\n}\n")
	tree := &Tree{Root: root}

	qs := tree.Quarantines()
	require.Len(t, qs, 1)
	require.Equal(t, "unexpected", qs[0].Tag)
	require.Equal(t, 2, qs[0].Begin().Line)
}

func TestClassWithExtendsAndMembers(t *testing.T) {
	root := buildSource(t, "public class Foo extends Bar {\n@x:int;\n%count:int;\n}\n")

	modNode := root.NonTrivialChildren()[0]
	require.Equal(t, "class", modNode.Tag)

	classTokNode := modNode.NonTrivialChildren()[0]
	require.Equal(t, ixtoken.Class, classTokNode.Token.Type)

	body := classTokNode.NonTrivialChildren()

	var extendsFound, blockFound bool

	for _, c := range body {
		if c.Token.Type == ixtoken.KwExtends {
			extendsFound = true
		}

		if c.Tag == "classblock" {
			blockFound = true

			members := c.ChildrenTagged("member")
			require.Len(t, members, 2)
		}
	}

	require.True(t, extendsFound)
	require.True(t, blockFound)
}

func TestMethodParametersAndReturnType(t *testing.T) {
	root := buildSource(t, "public function add(a:int, b:int):int {\nreturn a;\n}\n")

	methodNode := root.NonTrivialChildren()[0]
	require.Equal(t, "method", methodNode.Tag)

	// The "function" marker precedes the method-name node.
	nameNode := methodNode.NonTrivialChildren()[1]
	sections := nameNode.NonTrivialChildren()

	var gotParams, gotReturn, gotBlock bool

	for _, s := range sections {
		switch s.Tag {
		case "parameters":
			gotParams = true
			require.Len(t, s.ChildrenTagged("parameter"), 2)
		case "returntype":
			gotReturn = true
		case "block":
			gotBlock = true
			require.NotEmpty(t, s.ChildrenTagged("statement"))
		}
	}

	require.True(t, gotParams)
	require.True(t, gotReturn)
	require.True(t, gotBlock)
}

func TestStatementAssignmentRecursesIntoLastChild(t *testing.T) {
	root := buildSource(t, "public function run():void {\nx = 1;\n}\n")

	methodNode := root.NonTrivialChildren()[0]
	// The "function" marker precedes the method-name node.
	nameNode := methodNode.NonTrivialChildren()[1]

	var blockNode *Node

	for _, s := range nameNode.NonTrivialChildren() {
		if s.Tag == "block" {
			blockNode = s
		}
	}

	require.NotNil(t, blockNode)

	stmts := blockNode.ChildrenTagged("statement")
	require.Len(t, stmts, 1)
	require.Equal(t, "x", stmts[0].Token.Content)

	assignNode := stmts[0].NonTrivialChildren()[0]
	require.Equal(t, ixtoken.AssignOp, assignNode.Token.Type)
	require.NotEmpty(t, assignNode.Children)
}

func TestTextRoundTripsSource(t *testing.T) {
	src := "public class Foo {\n}\n"
	root := buildSource(t, src)
	require.Equal(t, src, root.Text())
}
