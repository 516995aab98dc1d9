// SPDX-FileCopyrightText: © 2024 The ixc authors <https://github.com/ixlang/ixc/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package c

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ixlang/ixc/internal/ixio"
	"github.com/ixlang/ixc/internal/ixsem"
	"github.com/ixlang/ixc/internal/ixtoken"
	"github.com/ixlang/ixc/internal/ixtree"
)

func parseUnit(t *testing.T, path, src string) *ixsem.SourceUnit {
	t.Helper()

	rd := ixio.NewReaderFromBytes([]byte(src))
	tz := ixtoken.NewTokenizer(path, rd)
	root := ixtree.NewBuilder(tz).Build().Root

	return ixsem.BuildSourceUnit(path, root)
}

// TestStringBufferStructAndTypedef covers §8 scenario 1.
func TestStringBufferStructAndTypedef(t *testing.T) {
	coll := ixsem.NewCollection()
	coll.Add(parseUnit(t, "source/ix.base/StringBuffer.ix", "public class {\n@data: char[]\n%count: int\n}\n"))

	header := renderHeader(coll, collectionPackage(coll))
	require.Contains(t, header, "typedef struct _ix_base_StringBuffer ix_base_StringBuffer;")

	impl := renderImpl(coll, collectionPackage(coll))
	require.Contains(t, impl, "struct _ix_base_StringBuffer {\n\tchar* data;\n};")
	require.Contains(t, impl, "int ix_base_StringBuffer_count;")
}

// TestHeaderLinesFollowedByBlankLine covers §8 scenario 2.
func TestHeaderLinesFollowedByBlankLine(t *testing.T) {
	coll := ixsem.NewCollection()
	coll.Add(parseUnit(t, "ix.base/Thing.ix", "Copyright 2021 X\nLicense MIT\npublic class {\n}\n"))

	header := renderHeader(coll, collectionPackage(coll))
	require.Contains(t, header, "// Copyright 2021 X\n\n// License MIT\n\n")
}

// TestConstructorSignature covers §8 scenario 3.
func TestConstructorSignature(t *testing.T) {
	coll := ixsem.NewCollection()
	coll.Add(parseUnit(t, "ix.base/Thing.ix", "public new(name: string*) {\n}\n"))

	header := renderHeader(coll, collectionPackage(coll))
	require.Contains(t, header, "ix_base_Thing*\nix_base_Thing__new__name\n")
	require.Contains(t, header, "ix_base_Thing* self,\n\tstring* name")
}

// TestGetterSignatureOnlySelf covers §8 scenario 4.
func TestGetterSignatureOnlySelf(t *testing.T) {
	coll := ixsem.NewCollection()
	coll.Add(parseUnit(t, "ix.base/Thing.ix", "public get():string* {\n}\n"))

	header := renderHeader(coll, collectionPackage(coll))
	require.Contains(t, header, "string*\nix_base_Thing__get\n")
	require.Contains(t, header, "(\n\tix_base_Thing* self\n);")
}

// TestTwoUnitsShareOneTypedefBlock covers §8 scenario 6.
func TestTwoUnitsShareOneTypedefBlock(t *testing.T) {
	coll := ixsem.NewCollection()
	coll.Add(parseUnit(t, "ix.base/String.ix", "public class {\n}\n"))
	coll.Add(parseUnit(t, "ix.base/StringBuffer.ix", "public class {\n}\n"))

	header := renderHeader(coll, collectionPackage(coll))

	stringIdx := strings.Index(header, "ix_base_String ")
	bufferIdx := strings.Index(header, "ix_base_StringBuffer ")
	require.NotEqual(t, -1, stringIdx)
	require.NotEqual(t, -1, bufferIdx)
	require.Less(t, stringIdx, bufferIdx)
}

func TestInstanceAndClassMemberSubstitutionInExpression(t *testing.T) {
	unit := parseUnit(t, "ix.base/Thing.ix",
		"public function run():void {\nvar x: int = @count;\n}\n")

	body := unit.Methods[0].Body
	require.Len(t, body, 1)

	got := statementToC(body[0], "ix_base_Thing", ixsem.NewCollection())
	require.Contains(t, got, "self->count")
}

func TestForeachLowersToIndexedLoop(t *testing.T) {
	unit := parseUnit(t, "ix.base/Thing.ix",
		"public function run():void {\nforeach(character in aString) {\n}\n}\n")

	body := unit.Methods[0].Body
	require.Len(t, body, 1)

	got := statementToC(body[0], "ix_base_Thing", ixsem.NewCollection())
	require.Contains(t, got, "for (size_t ix_i = 0; ix_i < aString_count; ix_i++)")
	require.Contains(t, got, "__auto_type character = aString[ix_i];")
}
