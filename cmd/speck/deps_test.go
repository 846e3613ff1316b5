package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozten/speck/pkg/adapters/live"
	"github.com/ozten/speck/pkg/spec"
	"github.com/ozten/speck/pkg/store"
)

func TestDepsEmptyStore(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("SPECK_STORE", ".speck")

	cmd := &cmdDeps{}
	out := captureStdout(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})
	assert.Contains(t, out, "No specs found in store.")
}

func TestDepsWithIndependentSpecs(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("SPECK_STORE", ".speck")

	fs := live.NewFileSystem()
	s := store.New(fs, ".speck")
	require.NoError(t, s.SaveTaskSpec(passingSpec("T-1")))
	require.NoError(t, s.SaveTaskSpec(passingSpec("T-2")))

	cmd := &cmdDeps{}
	out := captureStdout(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})
	assert.Contains(t, out, "No dependencies found among 2 spec(s).")
	assert.Contains(t, out, "All specs are independent:")
}

func TestDepsWithDependencyGraph(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("SPECK_STORE", ".speck")

	fs := live.NewFileSystem()
	s := store.New(fs, ".speck")
	require.NoError(t, s.SaveTaskSpec(passingSpec("T-1")))

	dependent := passingSpec("T-2")
	dependent.Context = &spec.TaskContext{Dependencies: []string{"T-1"}}
	require.NoError(t, s.SaveTaskSpec(dependent))

	cmd := &cmdDeps{}
	out := captureStdout(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})
	assert.Contains(t, out, "Dependency Graph:")
	assert.Contains(t, out, "depends on: T-1")
	assert.Contains(t, out, "blocks: T-2")
	assert.Contains(t, out, "Roots (no dependencies): T-1")
	assert.Contains(t, out, "Leaves (nothing depends on them): T-2")
}
