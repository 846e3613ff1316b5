package cassette

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordAssignsMonotonicSeq(t *testing.T) {
	r := NewRecorder(filepath.Join(t.TempDir(), "out.yaml"), "session", "abc123")

	r.Record("clock", "now", json.RawMessage(`{}`), json.RawMessage(`"t0"`))
	r.Record("fs", "read_to_string", json.RawMessage(`{}`), json.RawMessage(`"t1"`))
	r.Record("clock", "now", json.RawMessage(`{}`), json.RawMessage(`"t2"`))

	require.Equal(t, []uint64{0, 1, 2}, []uint64{
		r.interactions[0].Seq, r.interactions[1].Seq, r.interactions[2].Seq,
	})
}

func TestRecorderFinishWritesAndRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.yaml")
	r := NewRecorder(path, "session", "abc123")
	r.Record("id_gen", "generate_id", json.RawMessage(`{}`), json.RawMessage(`"abc-001"`))

	written, err := r.Finish()
	require.NoError(t, err)
	require.Equal(t, path, written)

	c, err := LoadCassette(path)
	require.NoError(t, err)
	require.Equal(t, "session", c.Name)
	require.Equal(t, "abc123", c.Commit)
	require.Len(t, c.Interactions, 1)
	require.Equal(t, uint64(0), c.Interactions[0].Seq)
	require.Equal(t, "id_gen", c.Interactions[0].Port)
}
