// SPDX-FileCopyrightText: © 2024 The ixc authors <https://github.com/ixlang/ixc/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package c implements ixemit.Emitter for the C target (§4.6).
package c

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ixlang/ixc/internal/ixsem"
)

// Emitter writes the pair of output files <out>/include/<package>.h and
// <out>/c/<package>.c for a Unit Collection.
type Emitter struct{}

// New creates a C Emitter.
func New() *Emitter { return &Emitter{} }

// Emit implements ixemit.Emitter (§4.6).
func (e *Emitter) Emit(coll *ixsem.Collection, outDir string) error {
	includeDir := filepath.Join(outDir, "include")
	cDir := filepath.Join(outDir, "c")

	if err := os.MkdirAll(includeDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", includeDir, err)
	}

	if err := os.MkdirAll(cDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", cDir, err)
	}

	pkg := collectionPackage(coll)

	headerPath := filepath.Join(includeDir, pkg+".h")
	if err := os.WriteFile(headerPath, []byte(renderHeader(coll, pkg)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", headerPath, err)
	}

	implPath := filepath.Join(cDir, pkg+".c")
	if err := os.WriteFile(implPath, []byte(renderImpl(coll, pkg)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", implPath, err)
	}

	return nil
}

// collectionPackage picks the package a single-invocation compilation
// shares across its units: spec.md's scenario 6 example ("two inputs
// defining ix.base.String and ix.base.StringBuffer") is written entirely
// within one package, and §4.6 names the output files by "<package>" in the
// singular, so the first unit's package is taken as authoritative. Units
// named under a different package (not exercised by any scenario) still
// contribute their types, structs and signatures; only the header/
// implementation file names follow the first unit.
func collectionPackage(coll *ixsem.Collection) string {
	units := coll.Units()
	if len(units) == 0 {
		return "empty"
	}

	return units[0].Package
}

// renderHeader builds <package>.h (§4.6 step 2).
func renderHeader(coll *ixsem.Collection, pkg string) string {
	sb := &strings.Builder{}

	for _, line := range coll.CopyrightLines() {
		fmt.Fprintf(sb, "// Copyright %s\n", line)
	}

	sb.WriteString("\n")

	for _, line := range coll.LicenseLines() {
		fmt.Fprintf(sb, "// License %s\n", line)
	}

	sb.WriteString("\n")

	guard := strings.ReplaceAll(strings.ToUpper(pkg+".h"), ".", "_")

	fmt.Fprintf(sb, "#ifndef %s\n#define %s\n\n", guard, guard)

	writeTypedefs(sb, coll)
	sb.WriteString("\n")
	writeSignatureDeclarations(sb, coll)

	fmt.Fprintf(sb, "\n#endif\n")

	return sb.String()
}

// writeTypedefs emits one column-aligned forward declaration per resolved
// type (§4.6: "column-aligned padding to the longest type name").
func writeTypedefs(sb *strings.Builder, coll *ixsem.Collection) {
	names := resolvedCNames(coll)

	width := 0
	for _, n := range names {
		if len(n) > width {
			width = len(n)
		}
	}

	for _, n := range names {
		pad := strings.Repeat(" ", width-len(n))
		fmt.Fprintf(sb, "typedef struct _%s%s %s;\n", n, pad, n)
	}
}

// resolvedCNames returns the collection's known types as C identifiers
// (§4.6: "fully-qualified name with .->_"), in first-insertion order.
func resolvedCNames(coll *ixsem.Collection) []string {
	var out []string

	for _, short := range coll.ResolvedTypeNames() {
		out = append(out, strings.ReplaceAll(coll.ResolveType(short), ".", "_"))
	}

	return out
}

// writeSignatureDeclarations emits "<return-type>\n<function-name>\n
// <parameters>;\n" per mangled-key entry (§4.6 step 2).
func writeSignatureDeclarations(sb *strings.Builder, coll *ixsem.Collection) {
	for _, key := range coll.SignatureKeys() {
		sigs := coll.Signatures(key)
		if len(sigs) == 0 {
			continue
		}

		sig := sigs[0]
		unit := coll.Unit(sig.UnitIndex)

		fmt.Fprintf(sb, "%s\n%s\n%s;\n", ctype(sig.ReturnType, coll), key, paramList(sig, unit, coll))
	}
}

// renderImpl builds <package>.c (§4.6 step 3).
func renderImpl(coll *ixsem.Collection, pkg string) string {
	sb := &strings.Builder{}

	fmt.Fprintf(sb, "#include \"%s.h\"\n\n", pkg)

	for _, unit := range coll.Units() {
		writeStruct(sb, unit, coll)
	}

	for _, unit := range coll.Units() {
		prefix := unit.Prefix()

		for i := range unit.Methods {
			writeMethod(sb, unit, &unit.Methods[i], prefix, coll)
		}
	}

	return sb.String()
}

// writeStruct emits a unit's struct layout and its class-scoped (static)
// member globals (§4.6 step 3).
func writeStruct(sb *strings.Builder, unit *ixsem.SourceUnit, coll *ixsem.Collection) {
	if unit.Class == nil {
		return
	}

	prefix := unit.Prefix()

	fmt.Fprintf(sb, "struct _%s {\n", prefix)

	for _, m := range unit.Class.Members {
		if m.IsInstance() {
			fmt.Fprintf(sb, "\t%s %s;\n", ctype(m.Type, coll), m.Name)
		}
	}

	sb.WriteString("};\n\n")

	for _, m := range unit.Class.Members {
		if m.IsClass() {
			fmt.Fprintf(sb, "%s %s_%s;\n", ctype(m.Type, coll), prefix, m.Name)
		}
	}

	sb.WriteString("\n")
}

// writeMethod emits one method's comment header, signature and body
// (§4.6 step 3, §12).
func writeMethod(sb *strings.Builder, unit *ixsem.SourceUnit, m *ixsem.Method, prefix string, coll *ixsem.Collection) {
	key := ixsem.MangledKey(prefix, &m.Signature)

	constMark := ""
	if m.Signature.Const {
		constMark = " const"
	}

	fmt.Fprintf(sb, "// %s%s\n", m.Signature.Modifier, constMark)
	fmt.Fprintf(sb, "%s\n%s\n%s\n{\n", ctype(m.Signature.ReturnType, coll), key, paramList(&m.Signature, unit, coll))

	for _, stmt := range m.Body {
		fmt.Fprintf(sb, "\t%s\n", statementToC(stmt, prefix, coll))
	}

	sb.WriteString("}\n\n")
}

// paramList builds a signature's C parameter list, prepending the implicit
// self receiver for every non-static signature (§4.6, "Parameter list").
func paramList(sig *ixsem.Signature, unit *ixsem.SourceUnit, coll *ixsem.Collection) string {
	var params []string

	if !sig.Static && unit != nil {
		params = append(params, fmt.Sprintf("\t%s* self", unit.Prefix()))
	}

	for _, p := range sig.Parameters {
		params = append(params, fmt.Sprintf("\t%s %s", ctype(p.Type, coll), p.Name))
	}

	if len(params) == 0 {
		return "()"
	}

	return "(\n" + strings.Join(params, ",\n") + "\n)"
}
