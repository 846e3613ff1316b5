package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncRejectsUnknownTarget(t *testing.T) {
	cmd := &cmdSync{}
	cmd.Args.Target = "jira"
	err := cmd.Execute(nil)
	assert.ErrorContains(t, err, "unknown sync target: jira")
}

func TestSyncDryRunEmptyStore(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("SPECK_STORE", ".speck")

	cmd := &cmdSync{DryRun: true}
	cmd.Args.Target = "beads"
	out := captureStdout(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})
	assert.Contains(t, out, "No specs found in store.")
}
