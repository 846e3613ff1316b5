package servicecontext

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozten/speck/pkg/cassette"
)

func writeCassetteFile(t *testing.T, path string) {
	t.Helper()
	r := cassette.NewRecorder(path, "test", "abc")

	nowOut, err := cassette.EncodeValue("2024-01-15T12:00:00Z")
	require.NoError(t, err)
	r.Record("clock", "now", []byte(`{}`), nowOut)

	idOut, err := cassette.EncodeValue("test-id-42")
	require.NoError(t, err)
	r.Record("id_gen", "generate_id", []byte(`{}`), idOut)

	_, err = r.Finish()
	require.NoError(t, err)
}

func TestReplayingContextServesRecordedData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.cassette.yaml")
	writeCassetteFile(t, path)

	ctx, err := Replaying(path)
	require.NoError(t, err)

	now := ctx.Clock.Now()
	assert.Equal(t, "2024-01-15T12:00:00Z", now.Format("2006-01-02T15:04:05Z"))

	id := ctx.IDGen.GenerateID()
	assert.Equal(t, "test-id-42", id)
}

func TestReplayingFromWithPerPortCassettes(t *testing.T) {
	dir := t.TempDir()
	clockPath := filepath.Join(dir, "clock.cassette.yaml")

	r := cassette.NewRecorder(clockPath, "test", "abc")
	nowOut, err := cassette.EncodeValue("2024-06-01T08:30:00Z")
	require.NoError(t, err)
	r.Record("clock", "now", []byte(`{}`), nowOut)
	_, err = r.Finish()
	require.NoError(t, err)

	cfg := &cassette.Config{Clock: clockPath}
	ctx, err := ReplayingFrom(cfg)
	require.NoError(t, err)

	now := ctx.Clock.Now()
	assert.Equal(t, "2024-06-01T08:30:00Z", now.Format("2006-01-02T15:04:05Z"))
}

func TestReplayingFromPanicsOnUnconfiguredPort(t *testing.T) {
	cfg := &cassette.Config{}
	ctx, err := ReplayingFrom(cfg)
	require.NoError(t, err)

	assert.PanicsWithValue(t, `no cassette configured for port "clock"`, func() {
		ctx.Clock.Now()
	})
}

func TestLiveContextUsesRealClock(t *testing.T) {
	ctx := Live(t.TempDir())
	assert.Equal(t, "UTC", ctx.Clock.Now().Location().String())
}

func TestRecordingContextWritesSevenCassettesOnFinish(t *testing.T) {
	dir := t.TempDir()

	ctx, session, err := Recording(dir)
	require.NoError(t, err)

	_ = ctx.Clock.Now()
	_ = ctx.IDGen.GenerateID()

	ReleaseRecording(session)

	outputDir, err := session.Finish()
	require.NoError(t, err)

	for _, port := range cassette.PortNames {
		path := filepath.Join(outputDir, port+".cassette.yaml")
		assert.FileExists(t, path)
	}
}
