// SPDX-FileCopyrightText: © 2024 The ixc authors <https://github.com/ixlang/ixc/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package ixcoll

// Take returns the value pointed to by slot and clears slot to the zero
// value, leaving no dangling reference behind.
//
// The source's take/give idiom used a two-level indirection and a null-out
// of the donor slot to model move semantics on a platform without language
// support for them. In Go there is a garbage collector and no aliasing
// hazard from a copied pointer, so nothing in this repo actually needs the
// null-out Take performs; it exists only to name that idiom for a reader
// coming from the source, not because any call site requires it.
func Take[T any](slot *T) T {
	v := *slot

	var zero T
	*slot = zero

	return v
}
