// SPDX-FileCopyrightText: © 2024 The ixc authors <https://github.com/ixlang/ixc/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package ixerr carries the compiler's positional diagnostics. The driver's
// aggregation of fatal configuration/IO errors lives in cmd/ixc, which uses
// go.uber.org/multierr directly.
package ixerr

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ixlang/ixc/internal/ixtoken"
)

// Detail is a single positional remark attached to a PosError.
type Detail struct {
	Pos     ixtoken.Pos
	Message string
}

// PosError is a positional error carrying one or more Details, an optional
// wrapped Cause, and an optional Hint, in the shape of the source's PosError.
type PosError struct {
	Details []Detail
	Cause   error
	Hint    string
}

// NewPosError creates a PosError rooted at pos with the given message, plus
// any further details to chain (used when an error spans more than one
// token, e.g. an unmatched bracket pair).
func NewPosError(pos ixtoken.Pos, msg string, details ...Detail) *PosError {
	all := append([]Detail{{Pos: pos, Message: msg}}, details...)
	return &PosError{Details: all}
}

func (p *PosError) SetCause(err error) *PosError {
	p.Cause = err
	return p
}

func (p *PosError) SetHint(hint string) *PosError {
	p.Hint = hint
	return p
}

func (p *PosError) Unwrap() error {
	return p.Cause
}

func (p *PosError) firstDetail() Detail {
	if len(p.Details) > 0 {
		return p.Details[0]
	}

	return Detail{}
}

func (p *PosError) Error() string {
	if p.Cause == nil {
		return p.firstDetail().Message
	}

	return p.firstDetail().Message + ": " + p.Cause.Error()
}

// Explain renders a multi-line, caret-annotated explanation of the error,
// suitable for printing to a terminal. It reads the offending source file
// from disk to recover the line text; if that file can no longer be read,
// the offending line is rendered blank rather than failing.
func (p *PosError) Explain() string {
	indent := 0

	for _, d := range p.Details {
		if l := len(strconv.Itoa(d.Pos.Line)); l > indent {
			indent = l
		}
	}

	sb := &strings.Builder{}

	for i, d := range p.Details {
		if i == 0 || d.Pos.File != p.Details[i-1].Pos.File {
			sb.WriteString(d.Pos.String())
			sb.WriteString("\n")
		}

		lines := fileLines(d.Pos.File)
		line := lineAt(lines, d.Pos.Line)

		fmt.Fprintf(sb, "%*s |\n", indent, "")
		fmt.Fprintf(sb, "%*d |%s\n", indent, d.Pos.Line, line)
		fmt.Fprintf(sb, "%*s |", indent, "")
		fmt.Fprintf(sb, "%*s^~~~ %s\n", d.Pos.Col-1, "", d.Message)

		if i < len(p.Details)-1 {
			fmt.Fprintf(sb, "%*s...\n", indent, "")
		}
	}

	if p.Hint != "" {
		fmt.Fprintf(sb, "%*s = hint: %s\n", indent, "", p.Hint)
	}

	return sb.String()
}

func fileLines(path string) []string {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	return strings.Split(string(buf), "\n")
}

func lineAt(lines []string, n int) string {
	idx := n - 1
	if idx < 0 || idx >= len(lines) {
		return ""
	}

	return lines[idx]
}

// Explain renders err as a human-readable diagnostic. If err is not (or does
// not wrap) a *PosError, its plain Error() text is returned instead.
func Explain(err error) string {
	type unwrapper interface {
		Unwrap() error
	}

	for e := err; e != nil; {
		if pe, ok := e.(*PosError); ok {
			return "error: " + pe.Error() + "\n" + pe.Explain()
		}

		u, ok := e.(unwrapper)
		if !ok {
			break
		}

		e = u.Unwrap()
	}

	return err.Error()
}
