// SPDX-FileCopyrightText: © 2024 The ixc authors <https://github.com/ixlang/ixc/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package ixemit declares the Emitter contract shared by every target-
// language backend; internal/ixemit/c is the sole implementation (§4.6).
package ixemit

import "github.com/ixlang/ixc/internal/ixsem"

// Emitter turns a fully built Unit Collection into target-language source
// files rooted at outDir. The driver selects an Emitter by exact match
// against --target-language (§6); an unrecognized language never reaches
// this interface.
type Emitter interface {
	// Emit writes the target's output files under outDir, creating any
	// directories it needs first. A non-nil error means a directory or
	// file write failed (§4.6, "Failure semantics") — fatal, to be reported
	// and translated into a process exit by the caller.
	Emit(coll *ixsem.Collection, outDir string) error
}
