package replaying

import (
	"context"

	"github.com/ozten/speck/pkg/cassette"
	"github.com/ozten/speck/pkg/ports"
)

// LLM serves recorded completions from a cassette.
type LLM struct {
	replayer *cassette.Replayer
}

// NewLLM returns an LLM backed by replayer.
func NewLLM(replayer *cassette.Replayer) LLM {
	return LLM{replayer: replayer}
}

// UnconfiguredLLM returns an LLM with no cassette; any call panics.
func UnconfiguredLLM() LLM {
	return LLM{}
}

// Complete returns the next recorded completion; req is ignored. ctx is
// honored only insofar as replay is itself synchronous and instantaneous.
func (l LLM) Complete(ctx context.Context, req ports.CompletionRequest) (ports.CompletionResponse, error) {
	output := nextOutput(l.replayer, "llm", "complete")
	var result ports.CompletionResponse
	err := decodeResult(output, &result)
	return result, err
}
