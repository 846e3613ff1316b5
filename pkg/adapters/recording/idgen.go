package recording

import (
	"github.com/ozten/speck/pkg/cassette"
	"github.com/ozten/speck/pkg/ports"
)

// IDGenerator records every GenerateID call while delegating to inner.
type IDGenerator struct {
	inner    ports.IDGenerator
	recorder *cassette.Recorder
}

// NewIDGenerator wraps inner with a recorder writing to r.
func NewIDGenerator(inner ports.IDGenerator, r *cassette.Recorder) IDGenerator {
	return IDGenerator{inner: inner, recorder: r}
}

// GenerateID returns a new ID from inner and records the interaction.
func (g IDGenerator) GenerateID() string {
	result := g.inner.GenerateID()
	recordInteraction(g.recorder, "id_gen", "generate_id", struct{}{}, result)
	return result
}
