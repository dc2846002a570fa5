package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const graph = `
shared: &shared {n: 1}
list: [*shared, *shared]
pattern: !regexp /a+/g
custom: !frozen {x: 1}
`

func writeGraph(t *testing.T, doc string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "graph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func TestInspect(t *testing.T) {
	out, err := run(t, "inspect", writeGraph(t, graph))
	require.NoError(t, err)
	assert.Contains(t, out, "5 composites, 2 shared references, 0 errors, 0 warnings")
}

func TestInspect_Dump(t *testing.T) {
	out, err := run(t, "inspect", "--dump", writeGraph(t, "a: {b: hello}\n"))
	require.NoError(t, err)
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "object.Object")
}

func TestInspect_NoExtensibility(t *testing.T) {
	out, err := run(t, "inspect", "--no-extensibility", writeGraph(t, graph))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed verification")
	assert.Contains(t, out, "[extensibility-mismatch]")
}

func TestInspect_MaxDepth(t *testing.T) {
	_, err := run(t, "inspect", "--max-depth", "2", writeGraph(t, "a: {b: {c: {}}}\n"))
	assert.ErrorContains(t, err, "deeper than the configured limit")
}

func TestInspect_Errors(t *testing.T) {
	_, err := run(t, "inspect")
	assert.Error(t, err)

	_, err = run(t, "inspect", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read graph file")

	_, err = run(t, "inspect", writeGraph(t, "a: !nope 1\n"))
	assert.ErrorContains(t, err, "unknown tag")
}

func TestInspect_Examples(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "examples", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			out, err := run(t, "inspect", file)
			require.NoError(t, err, out)
			assert.Contains(t, out, "0 errors")
		})
	}
}
