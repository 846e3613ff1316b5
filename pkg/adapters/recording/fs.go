package recording

import (
	"github.com/ozten/speck/pkg/cassette"
	"github.com/ozten/speck/pkg/ports"
)

// FileSystem records every call while delegating to inner.
type FileSystem struct {
	inner    ports.FileSystem
	recorder *cassette.Recorder
}

// NewFileSystem wraps inner with a recorder writing to r.
func NewFileSystem(inner ports.FileSystem, r *cassette.Recorder) FileSystem {
	return FileSystem{inner: inner, recorder: r}
}

type readToStringInput struct {
	Path string `json:"path"`
}

// ReadToString reads path via inner and records the interaction.
func (f FileSystem) ReadToString(path string) (string, error) {
	result, err := f.inner.ReadToString(path)
	recordResult(f.recorder, "fs", "read_to_string", readToStringInput{Path: path}, result, err)
	return result, err
}

type writeInput struct {
	Path     string `json:"path"`
	Contents string `json:"contents"`
}

// Write writes contents to path via inner and records the interaction.
func (f FileSystem) Write(path, contents string) error {
	err := f.inner.Write(path, contents)
	recordResult(f.recorder, "fs", "write", writeInput{Path: path, Contents: contents}, struct{}{}, err)
	return err
}

type pathInput struct {
	Path string `json:"path"`
}

// Exists checks path via inner and records the interaction.
func (f FileSystem) Exists(path string) bool {
	result := f.inner.Exists(path)
	recordInteraction(f.recorder, "fs", "exists", pathInput{Path: path}, result)
	return result
}

// ListDir lists path via inner and records the interaction.
func (f FileSystem) ListDir(path string) ([]string, error) {
	result, err := f.inner.ListDir(path)
	recordResult(f.recorder, "fs", "list_dir", pathInput{Path: path}, result, err)
	return result, err
}
