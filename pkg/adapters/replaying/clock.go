package replaying

import (
	"time"

	"github.com/ozten/speck/pkg/cassette"
)

// Clock serves recorded Now() results from a cassette.
type Clock struct {
	replayer *cassette.Replayer
}

// NewClock returns a Clock backed by replayer.
func NewClock(replayer *cassette.Replayer) Clock {
	return Clock{replayer: replayer}
}

// UnconfiguredClock returns a Clock with no cassette; any call panics.
func UnconfiguredClock() Clock {
	return Clock{}
}

// Now returns the next recorded clock reading.
func (c Clock) Now() time.Time {
	output := nextOutput(c.replayer, "clock", "now")
	var result time.Time
	decodeBare(output, &result)
	return result
}
