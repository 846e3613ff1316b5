package plan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozten/speck/pkg/spec"
)

func reconcileSpec(id string, deps []string) *spec.TaskSpec {
	return &spec.TaskSpec{
		ID:                 id,
		Title:              "Task " + id,
		Context:            &spec.TaskContext{Dependencies: deps},
		AcceptanceCriteria: []string{"done"},
		SignalType:         spec.SignalClear,
		Verification:       spec.DirectAssertionStrategy{},
	}
}

func TestDetectCircularDependenciesFindsDirectCycle(t *testing.T) {
	specs := []*spec.TaskSpec{
		reconcileSpec("A", []string{"B"}),
		reconcileSpec("B", []string{"A"}),
	}

	cycles := detectCircularDependencies(specs)
	require.Len(t, cycles, 1)
	assert.ElementsMatch(t, []string{"A", "B"}, cycles[0])
}

func TestDetectCircularDependenciesFindsTransitiveCycle(t *testing.T) {
	specs := []*spec.TaskSpec{
		reconcileSpec("A", []string{"B"}),
		reconcileSpec("B", []string{"C"}),
		reconcileSpec("C", []string{"A"}),
	}

	cycles := detectCircularDependencies(specs)
	require.Len(t, cycles, 1)
	assert.Len(t, cycles[0], 3)
}

func TestDetectCircularDependenciesIgnoresUnknownDeps(t *testing.T) {
	specs := []*spec.TaskSpec{
		reconcileSpec("A", []string{"NOT-A-SPEC"}),
	}

	cycles := detectCircularDependencies(specs)
	assert.Empty(t, cycles)
}

func TestDetectCircularDependenciesNoCycle(t *testing.T) {
	specs := []*spec.TaskSpec{
		reconcileSpec("A", []string{"B"}),
		reconcileSpec("B", nil),
	}

	cycles := detectCircularDependencies(specs)
	assert.Empty(t, cycles)
}

func TestBuildReconciliationPromptIncludesCycles(t *testing.T) {
	specs := []*spec.TaskSpec{reconcileSpec("A", []string{"B"}), reconcileSpec("B", []string{"A"})}
	cycles := detectCircularDependencies(specs)

	prompt := buildReconciliationPrompt(specs, cycles)
	assert.Contains(t, prompt, "Detected Circular Dependencies")
	assert.Contains(t, prompt, "A -> B")
}

func TestBuildReconciliationPromptOmitsCyclesSectionWhenClean(t *testing.T) {
	specs := []*spec.TaskSpec{reconcileSpec("A", nil)}
	prompt := buildReconciliationPrompt(specs, nil)
	assert.NotContains(t, prompt, "Detected Circular Dependencies")
}

func TestParseReconciliationResponse(t *testing.T) {
	response := `{
		"merges": [{"task_ids": ["A", "B"], "reason": "same concern", "merged_title": "Combined task"}],
		"extractions": [{"task_ids": ["C", "D"], "abstraction": "shared validator", "suggested_task_title": "Extract validator"}],
		"reorders": [{"task_id": "E", "should_precede": "F", "reason": "E sets up F's fixture"}]
	}`

	result, err := parseReconciliationResponse(response)
	require.NoError(t, err)
	require.Len(t, result.SuggestedMerges, 1)
	assert.Equal(t, "Combined task", result.SuggestedMerges[0].MergedTitle)
	require.Len(t, result.SuggestedExtractions, 1)
	assert.Equal(t, "shared validator", result.SuggestedExtractions[0].Abstraction)
	require.Len(t, result.SuggestedReorders, 1)
	assert.Equal(t, "F", result.SuggestedReorders[0].ShouldPrecede)
}

func TestParseReconciliationResponseRejectsInvalidJSON(t *testing.T) {
	_, err := parseReconciliationResponse("not json")
	assert.Error(t, err)
}

func TestReconcileUsesLocallyDetectedCyclesNotLLM(t *testing.T) {
	specs := []*spec.TaskSpec{reconcileSpec("A", []string{"B"}), reconcileSpec("B", []string{"A"})}
	llm := &stubLLM{responses: []string{`{"merges": [], "extractions": [], "reorders": []}`}}

	result, err := Reconcile(context.Background(), llm, specs)
	require.NoError(t, err)
	require.Len(t, result.CircularDependencies, 1)
	assert.Equal(t, reconcileModel, llm.requests[0].Model)
	assert.Equal(t, 4096, llm.requests[0].MaxTokens)
}
