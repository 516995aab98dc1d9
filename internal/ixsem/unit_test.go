// SPDX-FileCopyrightText: © 2024 The ixc authors <https://github.com/ixlang/ixc/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package ixsem

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/ixlang/ixc/internal/ixio"
	"github.com/ixlang/ixc/internal/ixtoken"
	"github.com/ixlang/ixc/internal/ixtree"
)

func parseUnit(t *testing.T, path, src string) *SourceUnit {
	t.Helper()

	rd := ixio.NewReaderFromBytes([]byte(src))
	tz := ixtoken.NewTokenizer(path, rd)
	root := ixtree.NewBuilder(tz).Build().Root

	return BuildSourceUnit(path, root)
}

func TestSplitPathDerivesPackageAndName(t *testing.T) {
	unit := parseUnit(t, "source/ix.base/StringBuffer.ix", "public class {\n@data: char[]\n%count: int\n}\n")

	require.Equal(t, "ix.base", unit.Package)
	require.Equal(t, "StringBuffer", unit.Name)
	require.Equal(t, "ix_base_StringBuffer", unit.Prefix())
}

func TestMembersCaptureTypeFlags(t *testing.T) {
	unit := parseUnit(t, "source/ix.base/StringBuffer.ix", "public class {\n@data: char[]\n%count: int\n}\n")

	require.NotNil(t, unit.Class)
	require.Len(t, unit.Class.Members, 2)

	data := unit.Class.Members[0]
	require.Equal(t, "@", data.Sigil)
	require.Equal(t, "data", data.Name)
	require.Equal(t, "char", data.Type.Name)
	require.True(t, data.Type.IsArray)

	count := unit.Class.Members[1]
	require.Equal(t, "%", count.Sigil)
	require.Equal(t, "count", count.Name)
	require.Equal(t, "int", count.Type.Name)
}

func TestPointerMemberSetsIsPointer(t *testing.T) {
	unit := parseUnit(t, "ix.base/Thing.ix", "public class {\n@next: Thing*\n}\n")

	require.Len(t, unit.Class.Members, 1)
	require.True(t, unit.Class.Members[0].Type.IsPointer)
	require.Equal(t, "Thing", unit.Class.Members[0].Type.Name)
}

func TestSecondClassMarksUnitInvalid(t *testing.T) {
	unit := parseUnit(t, "ix.base/Thing.ix", "public class Foo {\n}\npublic class Bar {\n}\n")

	require.True(t, unit.Invalid)
	require.NotNil(t, unit.Class)
	require.Equal(t, "Foo", unit.Class.Name)
}

func TestConstructorReturnTypeIsUnitPointer(t *testing.T) {
	unit := parseUnit(t, "ix.base/Thing.ix", "public new(name: string*) {\n}\n")

	require.Len(t, unit.Methods, 1)

	sig := unit.Methods[0].Signature
	require.True(t, sig.IsConstructor())
	require.Equal(t, "ix.base.Thing", sig.ReturnType.Name)
	require.True(t, sig.ReturnType.IsPointer)
	require.Len(t, sig.Parameters, 1)
	require.Equal(t, "name", sig.Parameters[0].Name)
	require.True(t, sig.Parameters[0].Type.IsPointer)
}

// TestMethodParameterListStructure compares the full Parameter slice against
// its expected shape via go-cmp, rather than asserting field-by-field, since
// a mismatch on any element (or a dropped/extra one) should fail with a
// single readable diff.
func TestMethodParameterListStructure(t *testing.T) {
	unit := parseUnit(t, "ix.base/Thing.ix", "public function add(a: int, b: int*) {\n}\n")

	require.Len(t, unit.Methods, 1)

	want := []Parameter{
		{Name: "a", Type: Type{Name: "int"}},
		{Name: "b", Type: Type{Name: "int", IsPointer: true}},
	}

	if diff := cmp.Diff(want, unit.Methods[0].Signature.Parameters); diff != "" {
		t.Errorf("parameter list mismatch (-want +got):\n%s", diff)
	}
}

func TestForeachHeadBindsInAndAs(t *testing.T) {
	unit := parseUnit(t, "ix.base/Thing.ix",
		"public function run():void {\nforeach(character in aString) {\n}\nforeach(aString as character) {\n}\n}\n")

	require.Len(t, unit.Methods, 1)
	body := unit.Methods[0].Body
	require.Len(t, body, 2)

	first := body[0].Conditional
	require.NotNil(t, first)
	require.Equal(t, "character", first.ForeachVariable)
	require.Equal(t, "aString", first.ForeachIterator)
	require.Equal(t, "in", first.ForeachDirection)

	second := body[1].Conditional
	require.NotNil(t, second)
	require.Equal(t, "character", second.ForeachVariable)
	require.Equal(t, "aString", second.ForeachIterator)
	require.Equal(t, "as", second.ForeachDirection)
}

func TestDeclarationCapturesDefaultValue(t *testing.T) {
	unit := parseUnit(t, "ix.base/Thing.ix", "public function run():void {\nvar x: int = 1;\n}\n")

	require.Len(t, unit.Methods, 1)
	body := unit.Methods[0].Body
	require.Len(t, body, 1)
	require.Equal(t, StmtDeclaration, body[0].Kind)

	decl := body[0].Declaration
	require.Equal(t, "x", decl.Name)
	require.Equal(t, "int", decl.Type.Name)
	require.NotNil(t, decl.Value)
}

func TestMangledKeyMatchesSpecExample(t *testing.T) {
	sig := &Signature{Name: "m", Parameters: []Parameter{{Name: "a"}, {Name: "b"}}}
	require.Equal(t, "P_T__m__a__b", MangledKey("P_T", sig))
}

func TestCollectionUnionsHeaderLinesWithoutDuplication(t *testing.T) {
	c := NewCollection()
	c.Add(parseUnit(t, "ix.base/A.ix", "copyright 2021 X\nlicense MIT\npublic class A {\n}\n"))
	c.Add(parseUnit(t, "ix.base/B.ix", "copyright 2021 X\nlicense MIT\npublic class B {\n}\n"))

	require.Equal(t, []string{"2021 X"}, c.CopyrightLines())
	require.Equal(t, []string{"MIT"}, c.LicenseLines())
}

func TestCollectionResolvesShortTypeNames(t *testing.T) {
	c := NewCollection()
	c.Add(parseUnit(t, "ix.base/StringBuffer.ix", "public class {\n}\n"))

	require.Equal(t, "ix.base.StringBuffer", c.ResolveType("StringBuffer"))
	require.Equal(t, "Unknown", c.ResolveType("Unknown"))
}
