package plan

import (
	"fmt"
	"time"

	"github.com/ozten/speck/pkg/ports"
)

// fixedClock reports a single fixed instant, parsed from an RFC3339 string.
type fixedClock struct{ iso string }

func (c fixedClock) Now() time.Time {
	t, err := time.Parse(time.RFC3339, c.iso)
	if err != nil {
		panic(err)
	}
	return t
}

// stubGit serves a fixed commit hash and file listing.
type stubGit struct {
	commit string
	files  []string
}

func (g *stubGit) CurrentCommit() (string, error)          { return g.commit, nil }
func (g *stubGit) Diff() (string, error)                   { return "", nil }
func (g *stubGit) ListFiles(path string) ([]string, error) { return g.files, nil }

// memFS is an in-memory ports.FileSystem backed by a plain map.
type memFS struct {
	files map[string]string
}

func (f *memFS) ReadToString(path string) (string, error) {
	content, ok := f.files[path]
	if !ok {
		return "", fmt.Errorf("no such file: %s", path)
	}
	return content, nil
}

func (f *memFS) Write(path, contents string) error {
	if f.files == nil {
		f.files = make(map[string]string)
	}
	f.files[path] = contents
	return nil
}

func (f *memFS) Exists(path string) bool {
	_, ok := f.files[path]
	return ok
}

func (f *memFS) ListDir(path string) ([]string, error) {
	var out []string
	for p := range f.files {
		out = append(out, p)
	}
	return out, nil
}

var _ ports.Clock = fixedClock{}
var _ ports.Git = (*stubGit)(nil)
var _ ports.FileSystem = (*memFS)(nil)
