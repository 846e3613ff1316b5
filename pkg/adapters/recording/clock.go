package recording

import (
	"time"

	"github.com/ozten/speck/pkg/cassette"
	"github.com/ozten/speck/pkg/ports"
)

// Clock records every Now() call while delegating to inner.
type Clock struct {
	inner    ports.Clock
	recorder *cassette.Recorder
}

// NewClock wraps inner with a recorder writing to r.
func NewClock(inner ports.Clock, r *cassette.Recorder) Clock {
	return Clock{inner: inner, recorder: r}
}

// Now returns inner's current time and records the interaction.
func (c Clock) Now() time.Time {
	result := c.inner.Now()
	recordInteraction(c.recorder, "clock", "now", struct{}{}, result)
	return result
}
