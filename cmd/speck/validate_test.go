package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozten/speck/pkg/adapters/live"
	"github.com/ozten/speck/pkg/spec"
	"github.com/ozten/speck/pkg/store"
)

func passingSpec(id string) *spec.TaskSpec {
	return &spec.TaskSpec{
		ID:                 id,
		Title:              "Task " + id,
		AcceptanceCriteria: []string{"it works"},
		SignalType:         spec.SignalClear,
		Verification: spec.DirectAssertionStrategy{
			Checks: spec.CheckList{spec.TestSuiteCheck{Command: "true", Expected: "pass"}},
		},
	}
}

func failingSpec(id string) *spec.TaskSpec {
	return &spec.TaskSpec{
		ID:                 id,
		Title:              "Task " + id,
		AcceptanceCriteria: []string{"it works"},
		SignalType:         spec.SignalClear,
		Verification: spec.DirectAssertionStrategy{
			Checks: spec.CheckList{spec.TestSuiteCheck{Command: "false", Expected: "pass"}},
		},
	}
}

func TestValidateRequiresSpecIDOrAll(t *testing.T) {
	cmd := &cmdValidate{}
	err := cmd.Execute(nil)
	assert.Error(t, err)
}

func TestValidateAllEmptyStore(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("SPECK_STORE", ".speck")

	cmd := &cmdValidate{All: true}
	out := captureStdout(t, func() {
		err := cmd.Execute(nil)
		require.NoError(t, err)
	})
	assert.Contains(t, out, "No specs found in store.")
}

func TestValidateSingleSpecNotFound(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("SPECK_STORE", ".speck")

	cmd := &cmdValidate{}
	cmd.Args.SpecID = "MISSING"
	err := cmd.Execute(nil)
	assert.Error(t, err)
}

func TestValidateSingleSpecPasses(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("SPECK_STORE", ".speck")

	fs := live.NewFileSystem()
	s := store.New(fs, ".speck")
	require.NoError(t, s.SaveTaskSpec(passingSpec("T-1")))

	cmd := &cmdValidate{}
	cmd.Args.SpecID = "T-1"
	out := captureStdout(t, func() {
		err := cmd.Execute(nil)
		require.NoError(t, err)
	})
	assert.Contains(t, out, "Spec T-1 — PASS")
}

func TestValidateSingleSpecFails(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("SPECK_STORE", ".speck")

	fs := live.NewFileSystem()
	s := store.New(fs, ".speck")
	require.NoError(t, s.SaveTaskSpec(failingSpec("T-2")))

	cmd := &cmdValidate{}
	cmd.Args.SpecID = "T-2"
	var execErr error
	out := captureStdout(t, func() {
		execErr = cmd.Execute(nil)
	})
	assert.Error(t, execErr)
	assert.Contains(t, out, "Spec T-2 — FAIL")
}
