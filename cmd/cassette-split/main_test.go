package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozten/speck/pkg/cassette"
)

func writeMonolithicFixture(t *testing.T, path string) {
	t.Helper()
	r := cassette.NewRecorder(path, "test-session", "abc123")
	r.Record("llm", "complete", []byte(`{"prompt":"hello"}`), []byte(`{"text":"world"}`))
	r.Record("fs", "read", []byte(`{"path":"/tmp/test"}`), []byte(`{"content":"data"}`))
	r.Record("llm", "complete", []byte(`{"prompt":"second"}`), []byte(`{"text":"response"}`))
	r.Record("git", "status", []byte(`{}`), []byte(`{"clean":true}`))
	_, err := r.Finish()
	require.NoError(t, err)
}

func TestSplitCreatesPerPortFilesWithCorrectContents(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "monolithic.yaml")
	output := filepath.Join(dir, "split_output")

	writeMonolithicFixture(t, input)
	require.NoError(t, splitCassette(input, output))

	llmPath := filepath.Join(output, "llm", "test-session.yaml")
	require.FileExists(t, llmPath)
	llmCassette, err := cassette.LoadCassette(llmPath)
	require.NoError(t, err)
	require.Len(t, llmCassette.Interactions, 2)
	assert.Equal(t, uint64(0), llmCassette.Interactions[0].Seq)
	assert.Equal(t, uint64(1), llmCassette.Interactions[1].Seq)
	assert.Equal(t, "test-session", llmCassette.SourceSession)

	fsPath := filepath.Join(output, "fs", "test-session.yaml")
	require.FileExists(t, fsPath)
	fsCassette, err := cassette.LoadCassette(fsPath)
	require.NoError(t, err)
	require.Len(t, fsCassette.Interactions, 1)
	assert.Equal(t, uint64(0), fsCassette.Interactions[0].Seq)

	gitPath := filepath.Join(output, "git", "test-session.yaml")
	require.FileExists(t, gitPath)
	gitCassette, err := cassette.LoadCassette(gitPath)
	require.NoError(t, err)
	require.Len(t, gitCassette.Interactions, 1)

	_, err = os.Stat(filepath.Join(output, "clock"))
	assert.True(t, os.IsNotExist(err), "clock dir should not exist")
	_, err = os.Stat(filepath.Join(output, "shell"))
	assert.True(t, os.IsNotExist(err), "shell dir should not exist")
}
