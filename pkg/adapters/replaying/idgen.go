package replaying

import "github.com/ozten/speck/pkg/cassette"

// IDGenerator serves recorded IDs from a cassette.
type IDGenerator struct {
	replayer *cassette.Replayer
}

// NewIDGenerator returns an IDGenerator backed by replayer.
func NewIDGenerator(replayer *cassette.Replayer) IDGenerator {
	return IDGenerator{replayer: replayer}
}

// UnconfiguredIDGenerator returns an IDGenerator with no cassette; any call panics.
func UnconfiguredIDGenerator() IDGenerator {
	return IDGenerator{}
}

// GenerateID returns the next recorded ID.
func (g IDGenerator) GenerateID() string {
	output := nextOutput(g.replayer, "id_gen", "generate_id")
	var result string
	decodeBare(output, &result)
	return result
}
