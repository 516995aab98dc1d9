// SPDX-FileCopyrightText: © 2024 The ixc authors <https://github.com/ixlang/ixc/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package c

import (
	"strings"

	"github.com/ixlang/ixc/internal/ixsem"
	"github.com/ixlang/ixc/internal/ixtoken"
)

// ctype renders a semantic Type as a C type string (§4.6, "C type mapping"):
// an empty name maps to "void"; a primitive or already-qualified name is
// used raw with "."->"_"; a short name is resolved against coll first. The
// decoration suffix is appended directly against the base name with no
// space, matching the scenario examples ("char*", "ix_base_Thing*").
//
// An array-only type also decorates with "*" rather than the literal "[]"
// the abstract mapping rule names: scenario 1 ("@data: char[]" emits
// "char* data;") is the one concrete oracle for this case, and it resolves
// the array decoration to a bare pointer — consistent with C's own
// array-decays-to-pointer convention for a struct member of unspecified
// length. The concrete scenario is taken as authoritative over the prose.
func ctype(t ixsem.Type, coll *ixsem.Collection) string {
	base := baseCType(t.Name, coll)

	switch {
	case t.IsPointer && t.IsArray:
		// §9 open question: the intended C syntax for this combination is
		// unspecified; "?" is kept as the source's own sentinel.
		return base + "?"
	case t.IsPointer, t.IsArray:
		return base + "*"
	case t.IsReference:
		return base + "* REF"
	default:
		return base
	}
}

func baseCType(name string, coll *ixsem.Collection) string {
	if name == "" {
		return "void"
	}

	if ixtoken.IsPrimitiveName(name) || strings.Contains(name, ".") {
		return strings.ReplaceAll(name, ".", "_")
	}

	resolved := coll.ResolveType(name)
	if resolved == name {
		return name
	}

	return strings.ReplaceAll(resolved, ".", "_")
}
