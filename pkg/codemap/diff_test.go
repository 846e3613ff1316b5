package codemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeMap(modules []ModuleSummary) CodebaseMap {
	return CodebaseMap{CommitHash: "abc123", Modules: modules}
}

func makeModule(path string, items, deps []string) ModuleSummary {
	return ModuleSummary{Path: path, PublicItems: items, Dependencies: deps}
}

func TestDiffDetectsAddedModule(t *testing.T) {
	old := makeMap([]ModuleSummary{makeModule("src", []string{"func Run"}, nil)})
	newMap := makeMap([]ModuleSummary{
		makeModule("src", []string{"func Run"}, nil),
		makeModule("src/map", []string{"func Generate"}, []string{"context"}),
	})

	d := DiffMaps(old, newMap)
	assert.Equal(t, []string{"src/map"}, d.AddedModules)
	assert.Empty(t, d.RemovedModules)
	assert.Empty(t, d.ChangedModules)
}

func TestDiffDetectsRemovedModule(t *testing.T) {
	old := makeMap([]ModuleSummary{
		makeModule("src", []string{"func Run"}, nil),
		makeModule("src/old", []string{"func Legacy"}, nil),
	})
	newMap := makeMap([]ModuleSummary{makeModule("src", []string{"func Run"}, nil)})

	d := DiffMaps(old, newMap)
	assert.Empty(t, d.AddedModules)
	assert.Equal(t, []string{"src/old"}, d.RemovedModules)
}

func TestDiffDetectsChangedItems(t *testing.T) {
	old := makeMap([]ModuleSummary{
		makeModule("src", []string{"func Run", "type App"}, []string{"config"}),
	})
	newMap := makeMap([]ModuleSummary{
		makeModule("src", []string{"func Run", "func NewFn"}, []string{"config", "mapgen"}),
	})

	d := DiffMaps(old, newMap)
	assert.Empty(t, d.AddedModules)
	assert.Empty(t, d.RemovedModules)
	require.Len(t, d.ChangedModules, 1)
}

func TestDiffNoChanges(t *testing.T) {
	m := makeMap([]ModuleSummary{makeModule("src", []string{"func Run"}, []string{"config"})})
	d := DiffMaps(m, m)
	assert.Empty(t, d.AddedModules)
	assert.Empty(t, d.RemovedModules)
	assert.Empty(t, d.ChangedModules)
}

func TestFormatDiffNoChanges(t *testing.T) {
	d := MapDiff{}
	assert.Equal(t, "No changes since last map.", FormatDiff(d))
}

func TestFormatDiffWithChanges(t *testing.T) {
	d := MapDiff{
		AddedModules:   []string{"src/new"},
		RemovedModules: []string{"src/old"},
		ChangedModules: []ModuleChange{{
			Path:        "src",
			AddedItems:  []string{"func Foo"},
			RemovedDeps: []string{"legacy"},
		}},
	}
	out := FormatDiff(d)
	assert.Contains(t, out, "+ src/new")
	assert.Contains(t, out, "- src/old")
	assert.Contains(t, out, "+ func Foo")
	assert.Contains(t, out, "-dep legacy")
}
