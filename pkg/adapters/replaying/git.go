package replaying

import "github.com/ozten/speck/pkg/cassette"

// Git serves recorded git results from a cassette.
type Git struct {
	replayer *cassette.Replayer
}

// NewGit returns a Git backed by replayer.
func NewGit(replayer *cassette.Replayer) Git {
	return Git{replayer: replayer}
}

// UnconfiguredGit returns a Git with no cassette; any call panics.
func UnconfiguredGit() Git {
	return Git{}
}

// CurrentCommit returns the next recorded commit hash.
func (g Git) CurrentCommit() (string, error) {
	output := nextOutput(g.replayer, "git", "current_commit")
	var result string
	err := decodeResult(output, &result)
	return result, err
}

// Diff returns the next recorded diff.
func (g Git) Diff() (string, error) {
	output := nextOutput(g.replayer, "git", "diff")
	var result string
	err := decodeResult(output, &result)
	return result, err
}

// ListFiles returns the next recorded file listing; path is ignored.
func (g Git) ListFiles(path string) ([]string, error) {
	output := nextOutput(g.replayer, "git", "list_files")
	var result []string
	err := decodeResult(output, &result)
	return result, err
}
