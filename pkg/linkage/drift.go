package linkage

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ozten/speck/pkg/codemap"
	"github.com/ozten/speck/pkg/spec"
)

// DriftEntry is a single spec's drift information between two codebase map
// snapshots.
type DriftEntry struct {
	SpecID            string
	ChangedModules    []string
	RemovedModules    []string
	ReplanRecommended bool
}

// DriftReport is an aggregated drift report across multiple specs.
type DriftReport struct {
	Entries   []DriftEntry
	OldCommit string
	NewCommit string
}

// IsClean reports whether no specs have drift.
func (r DriftReport) IsClean() bool {
	return len(r.Entries) == 0
}

// AffectedCount returns the number of specs affected by drift.
func (r DriftReport) AffectedCount() int {
	return len(r.Entries)
}

// DetectDrift detects drift for a set of specs between two codebase map
// snapshots. For each spec, module references are resolved against
// oldMap, then checked against newMap: a module is "changed" if it exists
// in both but its public items or dependencies differ, and "removed" if
// it no longer appears.
func DetectDrift(specs []*spec.TaskSpec, oldMap, newMap codemap.CodebaseMap) DriftReport {
	var entries []DriftEntry
	for _, s := range specs {
		linkage := Resolve(s, oldMap)
		if entry, ok := checkSpecDrift(linkage, oldMap, newMap); ok {
			entries = append(entries, entry)
		}
	}

	return DriftReport{Entries: entries, OldCommit: oldMap.CommitHash, NewCommit: newMap.CommitHash}
}

func checkSpecDrift(linkage LinkageResult, oldMap, newMap codemap.CodebaseMap) (DriftEntry, bool) {
	var changedModules, removedModules []string

	for _, link := range linkage.Links {
		if link.ResolvedPath == nil {
			continue
		}
		path := *link.ResolvedPath

		oldModule, oldOK := findModuleByPath(oldMap.Modules, path)
		newModule, newOK := findModuleByPath(newMap.Modules, path)

		switch {
		case oldOK && !newOK:
			removedModules = append(removedModules, path)
		case oldOK && newOK:
			if !slices.Equal(oldModule.PublicItems, newModule.PublicItems) ||
				!slices.Equal(oldModule.Dependencies, newModule.Dependencies) {
				changedModules = append(changedModules, path)
			}
		}
	}

	if len(changedModules) == 0 && len(removedModules) == 0 {
		return DriftEntry{}, false
	}

	replanRecommended := len(removedModules) > 0 || len(changedModules) > 1

	return DriftEntry{
		SpecID:            linkage.SpecID,
		ChangedModules:    changedModules,
		RemovedModules:    removedModules,
		ReplanRecommended: replanRecommended,
	}, true
}

func findModuleByPath(modules []codemap.ModuleSummary, path string) (codemap.ModuleSummary, bool) {
	for _, m := range modules {
		if m.Path == path {
			return m, true
		}
	}
	return codemap.ModuleSummary{}, false
}

// FormatDriftReport formats a DriftReport as a human-readable string.
func FormatDriftReport(report DriftReport) string {
	if report.IsClean() {
		return fmt.Sprintf("No drift detected between %s and %s.", report.OldCommit, report.NewCommit)
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("Drift detected (%s -> %s):", report.OldCommit, report.NewCommit))
	lines = append(lines, "")

	for _, entry := range report.Entries {
		lines = append(lines, fmt.Sprintf("  Spec: %s", entry.SpecID))
		for _, path := range entry.ChangedModules {
			lines = append(lines, fmt.Sprintf("    [CHANGED] %s", path))
		}
		for _, path := range entry.RemovedModules {
			lines = append(lines, fmt.Sprintf("    [REMOVED] %s", path))
		}
		if entry.ReplanRecommended {
			lines = append(lines, "    -> Re-planning recommended")
		}
		lines = append(lines, "")
	}

	total := report.AffectedCount()
	suffix := "s"
	if total == 1 {
		suffix = ""
	}
	lines = append(lines, fmt.Sprintf("%d spec%s affected by drift.", total, suffix))

	return strings.Join(lines, "\n")
}
