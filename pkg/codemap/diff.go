package codemap

import "strings"

// MapDiff describes the differences between two codebase maps.
type MapDiff struct {
	AddedModules   []string
	RemovedModules []string
	ChangedModules []ModuleChange
}

// ModuleChange describes the changes within a single module between two
// maps.
type ModuleChange struct {
	Path         string
	AddedItems   []string
	RemovedItems []string
	AddedDeps    []string
	RemovedDeps  []string
}

// DiffMaps computes the differences between an old and a new codebase
// map.
func DiffMaps(old, new CodebaseMap) MapDiff {
	oldPaths := modulePaths(old)
	newPaths := modulePaths(new)

	var added, removed []string
	for _, p := range newPaths {
		if !contains(oldPaths, p) {
			added = append(added, p)
		}
	}
	for _, p := range oldPaths {
		if !contains(newPaths, p) {
			removed = append(removed, p)
		}
	}

	var changed []ModuleChange
	for _, newMod := range new.Modules {
		oldMod, ok := findModule(old.Modules, newMod.Path)
		if !ok {
			continue
		}
		if change, ok := diffModule(oldMod, newMod); ok {
			changed = append(changed, change)
		}
	}

	return MapDiff{AddedModules: added, RemovedModules: removed, ChangedModules: changed}
}

func modulePaths(m CodebaseMap) []string {
	paths := make([]string, len(m.Modules))
	for i, mod := range m.Modules {
		paths[i] = mod.Path
	}
	return paths
}

func findModule(modules []ModuleSummary, modulePath string) (ModuleSummary, bool) {
	for _, m := range modules {
		if m.Path == modulePath {
			return m, true
		}
	}
	return ModuleSummary{}, false
}

func diffModule(old, new ModuleSummary) (ModuleChange, bool) {
	addedItems := stringsNotIn(new.PublicItems, old.PublicItems)
	removedItems := stringsNotIn(old.PublicItems, new.PublicItems)
	addedDeps := stringsNotIn(new.Dependencies, old.Dependencies)
	removedDeps := stringsNotIn(old.Dependencies, new.Dependencies)

	if len(addedItems) == 0 && len(removedItems) == 0 && len(addedDeps) == 0 && len(removedDeps) == 0 {
		return ModuleChange{}, false
	}

	return ModuleChange{
		Path:         new.Path,
		AddedItems:   addedItems,
		RemovedItems: removedItems,
		AddedDeps:    addedDeps,
		RemovedDeps:  removedDeps,
	}, true
}

func stringsNotIn(items, exclude []string) []string {
	var out []string
	for _, i := range items {
		if !contains(exclude, i) {
			out = append(out, i)
		}
	}
	return out
}

func contains(items []string, target string) bool {
	for _, i := range items {
		if i == target {
			return true
		}
	}
	return false
}

// FormatDiff renders a MapDiff for human-readable display.
func FormatDiff(diff MapDiff) string {
	if len(diff.AddedModules) == 0 && len(diff.RemovedModules) == 0 && len(diff.ChangedModules) == 0 {
		return "No changes since last map."
	}

	var lines []string

	if len(diff.AddedModules) > 0 {
		lines = append(lines, "Added modules:")
		for _, m := range diff.AddedModules {
			lines = append(lines, "  + "+m)
		}
	}
	if len(diff.RemovedModules) > 0 {
		lines = append(lines, "Removed modules:")
		for _, m := range diff.RemovedModules {
			lines = append(lines, "  - "+m)
		}
	}
	for _, change := range diff.ChangedModules {
		lines = append(lines, "Changed: "+change.Path)
		for _, item := range change.AddedItems {
			lines = append(lines, "  + "+item)
		}
		for _, item := range change.RemovedItems {
			lines = append(lines, "  - "+item)
		}
		for _, dep := range change.AddedDeps {
			lines = append(lines, "  +dep "+dep)
		}
		for _, dep := range change.RemovedDeps {
			lines = append(lines, "  -dep "+dep)
		}
	}

	return strings.Join(lines, "\n")
}
