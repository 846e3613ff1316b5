package cassette

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFixtureCassette(t *testing.T, path string) {
	t.Helper()
	r := NewRecorder(path, "fixture", "abc123")
	r.Record("fs", "exists", []byte(`{}`), []byte(`true`))
	_, err := r.Finish()
	require.NoError(t, err)
}

func TestLoadAllLeavesUnconfiguredPortsNil(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fs.yaml")
	writeFixtureCassette(t, path)

	cfg := &Config{FS: path}
	replayers, err := cfg.LoadAll()
	require.NoError(t, err)

	require.NotNil(t, replayers.FS)
	require.Nil(t, replayers.Clock)
	require.Nil(t, replayers.Git)
	require.Nil(t, replayers.Shell)
	require.Nil(t, replayers.IDGen)
	require.Nil(t, replayers.LLM)
	require.Nil(t, replayers.Issues)
}

func TestPanicOnUnspecifiedLeavesEveryPortNil(t *testing.T) {
	replayers, err := PanicOnUnspecified().LoadAll()
	require.NoError(t, err)

	require.Nil(t, replayers.Clock)
	require.Nil(t, replayers.FS)
	require.Nil(t, replayers.Git)
	require.Nil(t, replayers.Shell)
	require.Nil(t, replayers.IDGen)
	require.Nil(t, replayers.LLM)
	require.Nil(t, replayers.Issues)
}

func TestLoadMonolithicSharesOneReplayerAcrossPorts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.yaml")

	r := NewRecorder(path, "session", "abc123")
	r.Record("llm", "complete", []byte(`{}`), []byte(`{"Ok":{"text":"world"}}`))
	r.Record("fs", "read_to_string", []byte(`{}`), []byte(`{"Ok":"data"}`))
	_, err := r.Finish()
	require.NoError(t, err)

	replayer, err := LoadMonolithic(path)
	require.NoError(t, err)

	llmInteraction := replayer.NextInteraction("llm", "complete")
	fsInteraction := replayer.NextInteraction("fs", "read_to_string")

	require.Contains(t, string(llmInteraction.Output), "world")
	require.Contains(t, string(fsInteraction.Output), "data")
}
