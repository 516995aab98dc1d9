// SPDX-FileCopyrightText: © 2024 The ixc authors <https://github.com/ixlang/ixc/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Command ixc is the IxCompiler driver: it parses flags, discovers input
// files, builds a Unit Collection, and selects an Emitter by
// --target-language (§6).
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/multierr"

	"github.com/ixlang/ixc/internal/ixemit"
	"github.com/ixlang/ixc/internal/ixemit/c"
	"github.com/ixlang/ixc/internal/ixerr"
	"github.com/ixlang/ixc/internal/ixio"
	"github.com/ixlang/ixc/internal/ixsem"
	"github.com/ixlang/ixc/internal/ixtoken"
	"github.com/ixlang/ixc/internal/ixtree"
)

// exitFailure is the driver's sole non-zero exit code, POSIX -1 (§6).
const exitFailure = 255

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("ixc", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)

	outputDir := fs.String("output-dir", "", "writable output directory; <dir>/include and <dir>/c are created if missing")
	targetLanguage := fs.String("target-language", "", "target language; only C is supported")
	dryRun := fs.Bool("dry-run", false, "parse and build the semantic model but do not write outputs")
	trace := fs.Bool("trace", false, "print Tree Builder Open/Close trace lines to stderr")

	if err := fs.Parse(args); err != nil {
		return exitFailure
	}

	if *outputDir == "" {
		fmt.Println("ixc: --output-dir is required")
		return exitFailure
	}

	if *targetLanguage == "" {
		fmt.Println("ixc: --target-language is required")
		return exitFailure
	}

	info, err := os.Stat(*outputDir)
	if err != nil || !info.IsDir() {
		fmt.Printf("ixc: output dir %q is missing or not writable\n", *outputDir)
		return exitFailure
	}

	emitter, ok := emitterFor(*targetLanguage)
	if !ok {
		fmt.Printf("ixc: unsupported target language %q\n", *targetLanguage)
		return exitFailure
	}

	files := fs.Args()
	if len(files) == 0 {
		fmt.Println("ixc: no source files given")
		return exitFailure
	}

	units, err := loadUnits(files, *trace)
	if err != nil {
		fmt.Println("ixc:", err)
		return exitFailure
	}

	coll := ixsem.NewCollection()
	for _, u := range units {
		coll.Add(u)
	}

	if *dryRun {
		return 0
	}

	if err := emitter.Emit(coll, *outputDir); err != nil {
		fmt.Println("ixc:", err)
		return exitFailure
	}

	return 0
}

// emitterFor selects an Emitter by exact target-language match (§4.6, §6).
func emitterFor(lang string) (ixemit.Emitter, bool) {
	if lang == "C" {
		return c.New(), true
	}

	return nil, false
}

// loadUnits reads and parses every input file into a SourceUnit (§6, "Input
// file layout"). Every missing/unreadable path is collected via multierr
// before aborting, so a user sees every bad path in one report rather than
// fixing them one at a time (§10.2). A malformed file is not itself fatal —
// quarantine (§4.3) lets the Tree Builder keep going around rejected
// tokens — but every quarantined run is surfaced as a positional diagnostic
// on stderr via ixerr, so a malformed file is never silently accepted.
func loadUnits(paths []string, trace bool) ([]*ixsem.SourceUnit, error) {
	var errs error

	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", p, err))

			continue
		}

		f.Close()
	}

	if errs != nil {
		return nil, errs
	}

	units := make([]*ixsem.SourceUnit, 0, len(paths))

	for _, p := range paths {
		rd := ixio.NewReader(p)
		tz := ixtoken.NewTokenizer(p, rd)

		builder := ixtree.NewBuilder(tz)
		builder.Trace = trace

		tree := builder.Build()
		reportQuarantines(tree)

		units = append(units, ixsem.BuildSourceUnit(p, tree.Root))
	}

	return units, nil
}

// reportQuarantines prints one caret-annotated diagnostic per quarantined
// token run found in tree (§4.3), via ixerr.Explain.
func reportQuarantines(tree *ixtree.Tree) {
	for _, q := range tree.Quarantines() {
		perr := ixerr.NewPosError(q.Begin(), fmt.Sprintf("unexpected %q", q.Token.Content))
		fmt.Fprint(os.Stderr, ixerr.Explain(perr))
	}
}
