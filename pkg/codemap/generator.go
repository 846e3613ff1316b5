package codemap

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ozten/speck/pkg/ports"
)

// OutputPath is where Generate writes the map, relative to the project
// root.
const OutputPath = ".spec-cache/codebase_map.yaml"

// Ports bundles the subset of the service context Generate needs.
type Ports struct {
	Clock ports.Clock
	Git   ports.Git
	FS    ports.FileSystem
}

// Generate builds a CodebaseMap for the project rooted at root, walking
// the tree via p.Git and reading sources via p.FS, then writes the result
// as YAML to <root>/.spec-cache/codebase_map.yaml.
//
// modulePrefix is the project's own module import path (the module line
// of its go.mod); it is used to distinguish internal dependency edges
// from third-party imports.
//
// Port calls happen in a fixed order — clock, then git.CurrentCommit,
// then git.ListFiles, then fs.ReadToString per file in listing order,
// then the final fs.Write — since this ordering is what a recorded
// cassette replays against.
func Generate(p Ports, root, modulePrefix string) (CodebaseMap, error) {
	generatedAt := p.Clock.Now()

	commitHash, err := p.Git.CurrentCommit()
	if err != nil {
		return CodebaseMap{}, fmt.Errorf("failed to get current commit: %w", err)
	}

	files, err := p.Git.ListFiles(root)
	if err != nil {
		return CodebaseMap{}, fmt.Errorf("failed to list files: %w", err)
	}

	directoryTree := append([]string(nil), files...)

	testInfrastructure := make([]string, 0)
	for _, f := range files {
		if isTestFile(f) {
			testInfrastructure = append(testInfrastructure, f)
		}
	}

	moduleRoots := findModuleRoots(files)

	modules := make([]ModuleSummary, 0, len(moduleRoots))
	for _, modulePath := range moduleRoots {
		modules = append(modules, buildModuleSummary(p.FS, root, modulePath, modulePrefix, files))
	}

	m := CodebaseMap{
		CommitHash:         commitHash,
		GeneratedAt:        generatedAt,
		Modules:            modules,
		DirectoryTree:      directoryTree,
		TestInfrastructure: testInfrastructure,
	}

	out, err := yaml.Marshal(&m)
	if err != nil {
		return CodebaseMap{}, fmt.Errorf("failed to serialize map: %w", err)
	}

	outputPath := path.Join(root, OutputPath)
	if err := p.FS.Write(outputPath, string(out)); err != nil {
		return CodebaseMap{}, fmt.Errorf("failed to write map to %s: %w", outputPath, err)
	}

	return m, nil
}

// isTestFile reports whether path looks like a test file or test fixture.
func isTestFile(p string) bool {
	name := p
	if idx := strings.LastIndex(p, "/"); idx != -1 {
		name = p[idx+1:]
	}
	return strings.HasSuffix(name, "_test.go") ||
		strings.Contains(p, "/testdata/") ||
		strings.HasPrefix(p, "testdata/")
}

// isGoSource reports whether path is a non-test .go file.
func isGoSource(p string) bool {
	return strings.HasSuffix(p, ".go") && !isTestFile(p)
}

// findModuleRoots returns the sorted, deduplicated set of directories
// containing at least one non-test .go file.
func findModuleRoots(files []string) []string {
	seen := make(map[string]bool)
	var roots []string
	for _, f := range files {
		if !isGoSource(f) {
			continue
		}
		dir := path.Dir(f)
		if dir == "." {
			dir = ""
		}
		if !seen[dir] {
			seen[dir] = true
			roots = append(roots, dir)
		}
	}
	sort.Strings(roots)
	return roots
}

// buildModuleSummary reads the direct-child .go source files of
// modulePath and extracts their exported declarations and internal
// import dependencies.
func buildModuleSummary(fs ports.FileSystem, root, modulePath, modulePrefix string, allFiles []string) ModuleSummary {
	prefix := modulePath + "/"
	if modulePath == "" {
		prefix = ""
	}

	var moduleFiles []string
	for _, f := range allFiles {
		if !isGoSource(f) {
			continue
		}
		rest, ok := strings.CutPrefix(f, prefix)
		if !ok || strings.Contains(rest, "/") {
			continue
		}
		moduleFiles = append(moduleFiles, f)
	}

	var publicItems, dependencies []string
	for _, f := range moduleFiles {
		fullPath := path.Join(root, f)
		content, err := fs.ReadToString(fullPath)
		if err != nil {
			continue
		}
		extractPublicItems(content, &publicItems)
		extractDependencies(content, modulePrefix, &dependencies)
	}

	sort.Strings(publicItems)
	publicItems = dedup(publicItems)
	sort.Strings(dependencies)
	dependencies = dedup(dependencies)

	return ModuleSummary{Path: modulePath, PublicItems: publicItems, Dependencies: dependencies}
}

// extractPublicItems appends "func Name" / "type Name" entries for every
// exported top-level function or type declaration in content. Methods
// (functions with a receiver) are not top-level declarations and are
// skipped.
func extractPublicItems(content string, items *[]string) {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "func "):
			rest := strings.TrimPrefix(trimmed, "func ")
			if strings.HasPrefix(rest, "(") {
				continue // method with a receiver, not top-level
			}
			if name, ok := exportedName(rest, "(["); ok {
				*items = append(*items, "func "+name)
			}
		case strings.HasPrefix(trimmed, "type "):
			rest := strings.TrimPrefix(trimmed, "type ")
			if name, ok := exportedName(rest, " [("); ok {
				*items = append(*items, "type "+name)
			}
		}
	}
}

// exportedName extracts the identifier at the start of rest, stopping at
// any of the given cutset characters, and reports whether it is exported
// (starts with an uppercase letter).
func exportedName(rest, cutset string) (string, bool) {
	name := rest
	if idx := strings.IndexAny(rest, cutset); idx != -1 {
		name = rest[:idx]
	}
	name = strings.TrimSpace(name)
	if name == "" || !(name[0] >= 'A' && name[0] <= 'Z') {
		return "", false
	}
	return name, true
}

// extractDependencies appends the internal import paths found in
// content's import declarations, relative to modulePrefix. Third-party
// and standard-library imports are ignored.
func extractDependencies(content, modulePrefix string, deps *[]string) {
	inBlock := false
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "import ("):
			inBlock = true
			continue
		case inBlock && trimmed == ")":
			inBlock = false
			continue
		case inBlock:
			if dep, ok := internalImportDep(trimmed, modulePrefix); ok {
				*deps = append(*deps, dep)
			}
		case strings.HasPrefix(trimmed, "import "):
			if dep, ok := internalImportDep(strings.TrimPrefix(trimmed, "import "), modulePrefix); ok {
				*deps = append(*deps, dep)
			}
		}
	}
}

// internalImportDep extracts the quoted import path from an import-block
// line and, if it's internal to modulePrefix, returns it relative to the
// module root.
func internalImportDep(line, modulePrefix string) (string, bool) {
	first := strings.IndexByte(line, '"')
	if first == -1 {
		return "", false
	}
	last := strings.LastIndexByte(line, '"')
	if last <= first {
		return "", false
	}
	importPath := line[first+1 : last]

	rel, ok := strings.CutPrefix(importPath, modulePrefix+"/")
	if !ok {
		return "", false
	}
	return rel, true
}

func dedup(items []string) []string {
	out := items[:0]
	var prev string
	for i, v := range items {
		if i == 0 || v != prev {
			out = append(out, v)
			prev = v
		}
	}
	return out
}
