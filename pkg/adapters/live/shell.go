package live

import (
	"bytes"
	"os/exec"

	"github.com/ozten/speck/pkg/ports"
)

// Shell runs commands through the real OS shell.
type Shell struct{}

// NewShell returns a live Shell.
func NewShell() Shell { return Shell{} }

// Run executes command via "sh -c" and captures its exit code and output.
func (Shell) Run(command string) (ports.ShellResult, error) {
	cmd := exec.Command("sh", "-c", command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			return ports.ShellResult{}, err
		}
	}

	return ports.ShellResult{
		ExitCode: exitCode,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}, nil
}
