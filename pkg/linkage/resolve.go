// Package linkage maps the abstract module references task specs carry
// against concrete module paths in a codebase map, and flags specs whose
// linked modules have drifted between two map snapshots.
package linkage

import (
	"strings"

	"github.com/ozten/speck/pkg/codemap"
	"github.com/ozten/speck/pkg/spec"
)

// ResolvedLink is a single resolved link from an abstract module reference
// to a concrete module path.
type ResolvedLink struct {
	ModuleRef    string
	ResolvedPath *string
}

// LinkageResult is the result of resolving every module reference in a
// spec.
type LinkageResult struct {
	SpecID string
	Links  []ResolvedLink
}

// FullyResolved reports whether every module reference resolved to a
// concrete path.
func (r LinkageResult) FullyResolved() bool {
	for _, l := range r.Links {
		if l.ResolvedPath == nil {
			return false
		}
	}
	return true
}

// Unresolved returns the module references that could not be resolved.
func (r LinkageResult) Unresolved() []string {
	var out []string
	for _, l := range r.Links {
		if l.ResolvedPath == nil {
			out = append(out, l.ModuleRef)
		}
	}
	return out
}

// Resolve resolves the abstract module references named in ts's context
// against codebaseMap.
func Resolve(ts *spec.TaskSpec, codebaseMap codemap.CodebaseMap) LinkageResult {
	var modules []string
	if ts.Context != nil {
		modules = ts.Context.Modules
	}

	links := make([]ResolvedLink, 0, len(modules))
	for _, moduleRef := range modules {
		links = append(links, ResolvedLink{
			ModuleRef:    moduleRef,
			ResolvedPath: findMatchingModule(moduleRef, codebaseMap.Modules),
		})
	}

	return LinkageResult{SpecID: ts.ID, Links: links}
}

// findMatchingModule finds the best matching module for an abstract
// reference, in priority order:
//  1. exact match in public items (case-insensitive)
//  2. substring match in module path (case-insensitive)
//  3. substring match in public items (case-insensitive)
func findMatchingModule(moduleRef string, modules []codemap.ModuleSummary) *string {
	needle := strings.ToLower(moduleRef)

	for _, module := range modules {
		for _, item := range module.PublicItems {
			if strings.ToLower(item) == needle {
				path := module.Path
				return &path
			}
		}
	}

	for _, module := range modules {
		if strings.Contains(strings.ToLower(module.Path), needle) {
			path := module.Path
			return &path
		}
	}

	for _, module := range modules {
		for _, item := range module.PublicItems {
			if strings.Contains(strings.ToLower(item), needle) {
				path := module.Path
				return &path
			}
		}
	}

	return nil
}
