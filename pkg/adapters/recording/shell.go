package recording

import (
	"github.com/ozten/speck/pkg/cassette"
	"github.com/ozten/speck/pkg/ports"
)

// Shell records every call while delegating to inner.
type Shell struct {
	inner    ports.Shell
	recorder *cassette.Recorder
}

// NewShell wraps inner with a recorder writing to r.
func NewShell(inner ports.Shell, r *cassette.Recorder) Shell {
	return Shell{inner: inner, recorder: r}
}

type commandInput struct {
	Command string `json:"command"`
}

// Run executes command via inner and records the interaction.
func (s Shell) Run(command string) (ports.ShellResult, error) {
	result, err := s.inner.Run(command)
	recordResult(s.recorder, "shell", "run", commandInput{Command: command}, result, err)
	return result, err
}
