// Package live provides the real, side-effecting implementations of every
// port: the ones that actually touch the clock, the filesystem, git, a
// shell, a UUID generator, the Anthropic API, and (as a stub) an issue
// tracker.
package live

import "time"

// Clock reports the real wall-clock time.
type Clock struct{}

// NewClock returns a live Clock.
func NewClock() Clock { return Clock{} }

// Now returns the current UTC instant.
func (Clock) Now() time.Time {
	return time.Now().UTC()
}
