package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand("test")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestSearchWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "results")
	a := writeFile(t, dir, "a.md", "Intro | has searchterm here | no match | also searchterm\n\nother\n\n**SearchTerm** again")
	b := writeFile(t, dir, "b.txt", "nothing to see")
	missing := filepath.Join(dir, "missing.txt")

	out, _, err := run(t, "search", "searchterm", a, b, missing, "--out", outDir, "--format", "docx,pdf,html", "--diagnostics")
	require.NoError(t, err)

	assert.Contains(t, out, `Search results for "searchterm"`)
	assert.Contains(t, out, "a.md")
	assert.Contains(t, out, "1 of 2 with matches")
	assert.Contains(t, out, "term not found", "restructure trace should be printed")

	for _, ext := range []string{"docx", "pdf", "html"} {
		matches, err := filepath.Glob(filepath.Join(outDir, "search_results_*."+ext))
		require.NoError(t, err)
		assert.Len(t, matches, 1, ext)
	}
}

func TestSearchNoMatchesWritesNothing(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "para one\n\npara two\n\npara three")

	out, _, err := run(t, "search", "missing", a, "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "nothing written")

	matches, _ := filepath.Glob(filepath.Join(dir, "search_results_*"))
	assert.Empty(t, matches)
}

func TestSearchErrors(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "text")

	_, _, err := run(t, "search", "   ", a, "--out", dir)
	assert.Error(t, err)

	_, _, err = run(t, "search", "x", filepath.Join(dir, "nope.txt"))
	assert.EqualError(t, err, "none of the files could be read")

	_, _, err = run(t, "search", "x", a, "--format", "xls")
	assert.Error(t, err)

	_, _, err = run(t, "search", "x")
	assert.Error(t, err)
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "line one\nline two\nline three")

	out, _, err := run(t, "inspect", a, "--paragraphs")
	require.NoError(t, err)
	assert.Contains(t, out, "a.txt: 3 paragraphs (single_newline)")
	assert.Contains(t, out, "double_newline")
	assert.Contains(t, out, "line two")
}

func TestLoadFilesKeepsOrderAndDisambiguates(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	first := writeFile(t, dir, "same.txt", "one")
	second := writeFile(t, sub, "same.txt", "two")

	g := &globalOptions{}
	set, ids := loadFiles([]string{first, second}, g.logger(&bytes.Buffer{}), false)
	require.Equal(t, []string{"same.txt", second}, ids)
	assert.Equal(t, "one", set["same.txt"])
	assert.Equal(t, "two", set[second])
}
