// SPDX-FileCopyrightText: © 2024 The ixc authors <https://github.com/ixlang/ixc/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package ixsem

import (
	"fmt"
	"strings"

	"github.com/ixlang/ixc/internal/ixcoll"
)

// Collection is the cross-file Unit Collection (§4.5): an ordered list of
// units plus the derived indices the emitter reads — a resolved-types map
// (short name -> full name, first writer wins), a mangled-signature
// multi-map, and the set-union of header lines.
type Collection struct {
	units []*SourceUnit

	resolvedTypes *ixcoll.OrderedMap[string]
	signatures    *ixcoll.MultiMap[*Signature]

	copyrightLines []string
	licenseLines   []string
	seenCopyright  map[string]bool
	seenLicense    map[string]bool
}

// NewCollection creates an empty Collection.
func NewCollection() *Collection {
	return &Collection{
		resolvedTypes: ixcoll.NewOrderedMap[string](),
		signatures:    ixcoll.NewMultiMap[*Signature](),
		seenCopyright: make(map[string]bool),
		seenLicense:   make(map[string]bool),
	}
}

// Add appends unit, assigns it its interior index, and folds its
// contributions into the resolved-types map, the signatures multi-map and
// the header-line unions.
func (c *Collection) Add(unit *SourceUnit) {
	index := len(c.units)

	for i := range unit.Methods {
		unit.Methods[i].Signature.UnitIndex = index
	}

	c.units = append(c.units, unit)

	// The resolvable short name is the unit's file-derived name (§6: "the
	// class name is the file's base name without extension"), not the
	// optional name token after the "class" keyword — a class may be
	// anonymous (§8 scenario 1) and still be the thing P/T.ix resolves T to.
	if unit.Class != nil {
		c.resolvedTypes.PutIfAbsent(unit.Name, unit.FullName())
	}

	prefix := unit.Prefix()

	for i := range unit.Methods {
		key := MangledKey(prefix, &unit.Methods[i].Signature)
		c.signatures.Add(key, &unit.Methods[i].Signature)
	}

	for _, line := range unit.CopyrightLines {
		if !c.seenCopyright[line] {
			c.seenCopyright[line] = true
			c.copyrightLines = append(c.copyrightLines, line)
		}
	}

	for _, line := range unit.LicenseLines {
		if !c.seenLicense[line] {
			c.seenLicense[line] = true
			c.licenseLines = append(c.licenseLines, line)
		}
	}
}

// Units returns every added unit, in insertion order.
func (c *Collection) Units() []*SourceUnit { return c.units }

// Unit returns the unit at the given interior index.
func (c *Collection) Unit(index int) *SourceUnit {
	if index < 0 || index >= len(c.units) {
		return nil
	}

	return c.units[index]
}

// ResolveType resolves a short type name to its full "package.Name" form,
// falling back to the raw name if it is not a known short name (§4.5,
// §8 "Type resolution").
func (c *Collection) ResolveType(name string) string {
	if full, ok := c.resolvedTypes.Get(name); ok {
		return full
	}

	return name
}

// ResolvedTypeNames returns every known short type name, in first-insertion
// order (used by the emitter's typedef block, §4.6).
func (c *Collection) ResolvedTypeNames() []string { return c.resolvedTypes.Keys() }

// Signatures returns every Signature stored under key, in insertion order
// (duplicate keys accumulate rather than overwrite, §4.5).
func (c *Collection) Signatures(key string) []*Signature { return c.signatures.Get(key) }

// SignatureKeys returns every distinct mangled key, in first-insertion
// order.
func (c *Collection) SignatureKeys() []string { return c.signatures.Keys() }

// CopyrightLines returns the set-union of every unit's copyright lines, in
// order of first occurrence.
func (c *Collection) CopyrightLines() []string { return c.copyrightLines }

// LicenseLines returns the set-union of every unit's license lines, in
// order of first occurrence.
func (c *Collection) LicenseLines() []string { return c.licenseLines }

// MangledKey computes a signature's mangled key,
// "<prefix>__<method>__<param1>__<param2>..." (Glossary, §8 "Mangling").
func MangledKey(prefix string, sig *Signature) string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "%s__%s", prefix, sig.Name)

	for _, p := range sig.Parameters {
		fmt.Fprintf(sb, "__%s", p.Name)
	}

	return sb.String()
}
