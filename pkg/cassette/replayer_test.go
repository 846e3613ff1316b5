package cassette

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func monolithicFixture() *Cassette {
	return &Cassette{
		Name: "fixture",
		Interactions: []Interaction{
			{Seq: 0, Port: "p1", Method: "m1", Output: json.RawMessage(`"O1"`)},
			{Seq: 1, Port: "p2", Method: "m2", Output: json.RawMessage(`"O2"`)},
			{Seq: 2, Port: "p1", Method: "m1", Output: json.RawMessage(`"O3"`)},
		},
	}
}

func TestReplayMonolithicCassetteInOrder(t *testing.T) {
	r := NewReplayer(monolithicFixture())

	first := r.NextInteraction("p1", "m1")
	second := r.NextInteraction("p2", "m2")
	third := r.NextInteraction("p1", "m1")

	require.JSONEq(t, `"O1"`, string(first.Output))
	require.JSONEq(t, `"O2"`, string(second.Output))
	require.JSONEq(t, `"O3"`, string(third.Output))
}

func TestReplayStreamsAreIndependentOfInterleaving(t *testing.T) {
	r := NewReplayer(monolithicFixture())

	// Interleave differently than recorded: p2 before the first p1 call.
	second := r.NextInteraction("p2", "m2")
	first := r.NextInteraction("p1", "m1")
	third := r.NextInteraction("p1", "m1")

	require.JSONEq(t, `"O2"`, string(second.Output))
	require.JSONEq(t, `"O1"`, string(first.Output))
	require.JSONEq(t, `"O3"`, string(third.Output))
}

func TestExhaustedReplayerPanicsWithDescriptiveMessage(t *testing.T) {
	r := NewReplayer(monolithicFixture())
	r.NextInteraction("p2", "m2")

	defer func() {
		rec := recover()
		require.NotNil(t, rec)
		msg, ok := rec.(string)
		require.True(t, ok)
		require.Contains(t, msg, "cassette exhausted: all 1 interactions")
		require.Contains(t, msg, `port="p2"`)
		require.Contains(t, msg, `method="m2"`)
		require.Contains(t, msg, "seq=1")
	}()

	r.NextInteraction("p2", "m2")
}

func TestUnknownKeyPanics(t *testing.T) {
	r := NewReplayer(monolithicFixture())

	defer func() {
		rec := recover()
		require.NotNil(t, rec)
		msg, ok := rec.(string)
		require.True(t, ok)
		require.Contains(t, msg, "no interactions recorded")
		require.Contains(t, msg, "p1::m1")
		require.Contains(t, msg, "p2::m2")
	}()

	r.NextInteraction("llm", "complete")
}

func TestDeterminismAcrossTwoReplayers(t *testing.T) {
	c := monolithicFixture()

	r1 := NewReplayer(c)
	r2 := NewReplayer(c)

	a1 := r1.NextInteraction("p1", "m1")
	a2 := r2.NextInteraction("p1", "m1")
	require.Equal(t, a1.Output, a2.Output)
}
