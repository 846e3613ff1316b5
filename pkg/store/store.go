// Package store persists task specs and requirements as YAML, routed
// entirely through the fs port so it works unmodified against live,
// recording, and replaying service contexts.
package store

import (
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ozten/speck/pkg/ports"
	"github.com/ozten/speck/pkg/spec"
)

// SpecStore is rooted at a directory laid out as:
//
//	<root>/requirements/
//	<root>/tasks/
//	<root>/history/
type SpecStore struct {
	fs   ports.FileSystem
	root string
}

// New creates a store backed by fs, rooted at root.
func New(fs ports.FileSystem, root string) *SpecStore {
	return &SpecStore{fs: fs, root: root}
}

func (s *SpecStore) taskPath(id string) string {
	return path.Join(s.root, "tasks", id+".yaml")
}

// SaveTaskSpec writes spec as YAML to <root>/tasks/<id>.yaml.
func (s *SpecStore) SaveTaskSpec(ts *spec.TaskSpec) error {
	data, err := yaml.Marshal(ts)
	if err != nil {
		return fmt.Errorf("failed to serialize task spec %s: %w", ts.ID, err)
	}
	if err := s.fs.Write(s.taskPath(ts.ID), string(data)); err != nil {
		return fmt.Errorf("failed to write task spec %s: %w", ts.ID, err)
	}
	return nil
}

// LoadTaskSpec reads and parses the task spec with the given ID.
func (s *SpecStore) LoadTaskSpec(id string) (*spec.TaskSpec, error) {
	contents, err := s.fs.ReadToString(s.taskPath(id))
	if err != nil {
		return nil, fmt.Errorf("failed to read task spec %s: %w", id, err)
	}

	var ts spec.TaskSpec
	if err := yaml.Unmarshal([]byte(contents), &ts); err != nil {
		return nil, fmt.Errorf("failed to parse task spec %s: %w", id, err)
	}
	return &ts, nil
}

// ListTaskSpecs returns every task spec ID in the store, derived from
// filenames with the .yaml suffix stripped.
func (s *SpecStore) ListTaskSpecs() ([]string, error) {
	tasksDir := path.Join(s.root, "tasks")
	if !s.fs.Exists(tasksDir) {
		return []string{}, nil
	}

	entries, err := s.fs.ListDir(tasksDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks directory: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, name := range entries {
		if id, ok := strings.CutSuffix(name, ".yaml"); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// SaveRequirement writes a requirement document's raw content to
// <root>/requirements/<id>.yaml.
func (s *SpecStore) SaveRequirement(id, content string) error {
	p := path.Join(s.root, "requirements", id+".yaml")
	if err := s.fs.Write(p, content); err != nil {
		return fmt.Errorf("failed to write requirement %s: %w", id, err)
	}
	return nil
}
