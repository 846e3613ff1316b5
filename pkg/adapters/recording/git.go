package recording

import (
	"github.com/ozten/speck/pkg/cassette"
	"github.com/ozten/speck/pkg/ports"
)

// Git records every call while delegating to inner.
type Git struct {
	inner    ports.Git
	recorder *cassette.Recorder
}

// NewGit wraps inner with a recorder writing to r.
func NewGit(inner ports.Git, r *cassette.Recorder) Git {
	return Git{inner: inner, recorder: r}
}

// CurrentCommit returns inner's current commit and records the interaction.
func (g Git) CurrentCommit() (string, error) {
	result, err := g.inner.CurrentCommit()
	recordResult(g.recorder, "git", "current_commit", struct{}{}, result, err)
	return result, err
}

// Diff returns inner's diff and records the interaction.
func (g Git) Diff() (string, error) {
	result, err := g.inner.Diff()
	recordResult(g.recorder, "git", "diff", struct{}{}, result, err)
	return result, err
}

type gitPathInput struct {
	Path string `json:"path"`
}

// ListFiles lists path via inner and records the interaction.
func (g Git) ListFiles(path string) ([]string, error) {
	result, err := g.inner.ListFiles(path)
	recordResult(g.recorder, "git", "list_files", gitPathInput{Path: path}, result, err)
	return result, err
}
