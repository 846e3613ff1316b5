package replaying

import (
	"github.com/ozten/speck/pkg/cassette"
	"github.com/ozten/speck/pkg/ports"
)

// Shell serves recorded shell execution results from a cassette.
type Shell struct {
	replayer *cassette.Replayer
}

// NewShell returns a Shell backed by replayer.
func NewShell(replayer *cassette.Replayer) Shell {
	return Shell{replayer: replayer}
}

// UnconfiguredShell returns a Shell with no cassette; any call panics.
func UnconfiguredShell() Shell {
	return Shell{}
}

// Run returns the next recorded shell result; command is ignored.
func (s Shell) Run(command string) (ports.ShellResult, error) {
	output := nextOutput(s.replayer, "shell", "run")
	var result ports.ShellResult
	err := decodeResult(output, &result)
	return result, err
}
