package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozten/speck/pkg/plan"
)

func TestResolveRequirementPrefersArgument(t *testing.T) {
	got, err := resolveRequirement("inline requirement", "")
	require.NoError(t, err)
	assert.Equal(t, "inline requirement", got)
}

func TestResolveRequirementFallsBackToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "req.txt")
	require.NoError(t, os.WriteFile(path, []byte("requirement from file"), 0o644))

	got, err := resolveRequirement("", path)
	require.NoError(t, err)
	assert.Equal(t, "requirement from file", got)
}

func TestResolveRequirementMissingFileErrors(t *testing.T) {
	_, err := resolveRequirement("", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestResolveRequirementRequiresOne(t *testing.T) {
	_, err := resolveRequirement("", "")
	assert.ErrorContains(t, err, "requirement text is required")
}

func TestPrintSurveyResultFormatsSections(t *testing.T) {
	result := plan.SurveyResult{
		RoutingTable:         map[string]string{"auth": "pkg/auth handles login"},
		CrossCuttingConcerns: []string{"logging touches every handler"},
		FoundationalGaps:     []string{"no rate limiter yet"},
		DependencyGraph:      map[string][]string{"pkg/auth": {"pkg/store"}},
	}

	out := captureStdout(t, func() { printSurveyResult(result) })

	assert.Contains(t, out, "=== Routing Table ===")
	assert.Contains(t, out, "auth: pkg/auth handles login")
	assert.Contains(t, out, "=== Cross-Cutting Concerns ===")
	assert.Contains(t, out, "logging touches every handler")
	assert.Contains(t, out, "=== Foundational Gaps ===")
	assert.Contains(t, out, "no rate limiter yet")
	assert.Contains(t, out, "=== Dependency Graph ===")
	assert.Contains(t, out, "pkg/auth -> pkg/store")
}

func TestPrintSurveyResultEmptySections(t *testing.T) {
	out := captureStdout(t, func() { printSurveyResult(plan.SurveyResult{}) })

	assert.Contains(t, out, "(none identified)")
	assert.NotContains(t, out, "=== Dependency Graph ===")
}
