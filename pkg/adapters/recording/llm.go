package recording

import (
	"context"

	"github.com/ozten/speck/pkg/cassette"
	"github.com/ozten/speck/pkg/ports"
)

// LLM records every Complete call while delegating to inner.
type LLM struct {
	inner    ports.LLM
	recorder *cassette.Recorder
}

// NewLLM wraps inner with a recorder writing to r.
func NewLLM(inner ports.LLM, r *cassette.Recorder) LLM {
	return LLM{inner: inner, recorder: r}
}

// Complete resolves req against inner and records the interaction after
// the call completes, preserving cassette ordering at the await point.
func (l LLM) Complete(ctx context.Context, req ports.CompletionRequest) (ports.CompletionResponse, error) {
	result, err := l.inner.Complete(ctx, req)
	recordResult(l.recorder, "llm", "complete", req, result, err)
	return result, err
}
