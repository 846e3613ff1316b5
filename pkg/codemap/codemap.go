// Package codemap builds a structural snapshot of a Go project: its module
// boundaries, exported items, and internal dependency edges, derived
// entirely through the git and fs ports so it runs identically against
// live, recording, and replaying service contexts.
package codemap

import "time"

// CodebaseMap is a structural snapshot of a codebase tied to a specific
// commit.
type CodebaseMap struct {
	CommitHash         string          `yaml:"commit_hash"`
	GeneratedAt        time.Time       `yaml:"generated_at"`
	Modules            []ModuleSummary `yaml:"modules"`
	DirectoryTree      []string        `yaml:"directory_tree"`
	TestInfrastructure []string        `yaml:"test_infrastructure"`
}

// ModuleSummary describes a single module boundary: a directory containing
// at least one non-test .go file.
type ModuleSummary struct {
	Path         string   `yaml:"path"`
	PublicItems  []string `yaml:"public_items"`
	Dependencies []string `yaml:"dependencies"`
}
