// SPDX-FileCopyrightText: © 2024 The ixc authors <https://github.com/ixlang/ixc/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTempUnit(t *testing.T, dir, name, src string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	return path
}

func TestRunRequiresOutputDir(t *testing.T) {
	require.Equal(t, exitFailure, run([]string{"--target-language", "C"}))
}

func TestRunRequiresTargetLanguage(t *testing.T) {
	require.Equal(t, exitFailure, run([]string{"--output-dir", t.TempDir()}))
}

func TestRunRejectsMissingOutputDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	got := run([]string{"--output-dir", missing, "--target-language", "C", "x.ix"})
	require.Equal(t, exitFailure, got)
}

func TestRunRejectsOutputDirThatIsAFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "notadir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	got := run([]string{"--output-dir", file, "--target-language", "C", "x.ix"})
	require.Equal(t, exitFailure, got)
}

func TestRunRejectsUnsupportedTargetLanguage(t *testing.T) {
	dir := t.TempDir()
	src := writeTempUnit(t, dir, "Thing.ix", "public class {\n}\n")

	got := run([]string{"--output-dir", dir, "--target-language", "Rust", src})
	require.Equal(t, exitFailure, got)
}

func TestRunRejectsNoSourceFiles(t *testing.T) {
	got := run([]string{"--output-dir", t.TempDir(), "--target-language", "C"})
	require.Equal(t, exitFailure, got)
}

func TestRunRejectsMissingSourceFile(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "Nope.ix")

	got := run([]string{"--output-dir", dir, "--target-language", "C", missing})
	require.Equal(t, exitFailure, got)
}

func TestRunReportsEveryMissingSourceFile(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "A.ix")
	b := filepath.Join(dir, "B.ix")

	r, w, err := os.Pipe()
	require.NoError(t, err)

	origStdout := os.Stdout
	os.Stdout = w

	got := run([]string{"--output-dir", dir, "--target-language", "C", a, b})

	require.NoError(t, w.Close())
	os.Stdout = origStdout

	buf := make([]byte, 4096)
	n, _ := r.Read(buf)
	captured := string(buf[:n])

	require.Equal(t, exitFailure, got)
	require.Contains(t, captured, a)
	require.Contains(t, captured, b)
}

func TestRunDryRunSucceedsWithoutWritingFiles(t *testing.T) {
	dir := t.TempDir()
	src := writeTempUnit(t, dir, "Thing.ix", "public class {\n}\n")

	got := run([]string{"--output-dir", dir, "--target-language", "C", "--dry-run", src})
	require.Equal(t, 0, got)

	_, err := os.Stat(filepath.Join(dir, "include"))
	require.True(t, os.IsNotExist(err))
}

// TestRunSurfacesQuarantineDiagnosticButStillSucceeds covers §4.3/§10.2: a
// malformed file (a second copyright line, which the grammar quarantines
// rather than rejects outright) still compiles, but a caret-annotated
// diagnostic naming the rejected line is written to stderr.
func TestRunSurfacesQuarantineDiagnosticButStillSucceeds(t *testing.T) {
	dir := t.TempDir()
	src := writeTempUnit(t, dir, "Thing.ix", "copyright A\ncopyright B\npublic class {\n}\n")

	r, w, err := os.Pipe()
	require.NoError(t, err)

	origStderr := os.Stderr
	os.Stderr = w

	got := run([]string{"--output-dir", dir, "--target-language", "C", src})

	require.NoError(t, w.Close())
	os.Stderr = origStderr

	buf := make([]byte, 4096)
	n, _ := r.Read(buf)
	captured := string(buf[:n])

	require.Equal(t, 0, got)
	require.Contains(t, captured, "unexpected")
	require.Contains(t, captured, "Thing.ix:2:")
}

func TestRunSucceedsAndWritesOutputFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "ix.base"), 0o755))
	src := writeTempUnit(t, filepath.Join(dir, "ix.base"), "Thing.ix", "public class {\n}\n")

	out := t.TempDir()

	got := run([]string{"--output-dir", out, "--target-language", "C", src})
	require.Equal(t, 0, got)

	entries, err := os.ReadDir(filepath.Join(out, "include"))
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	entries, err = os.ReadDir(filepath.Join(out, "c"))
	require.NoError(t, err)
	require.NotEmpty(t, entries)
}
