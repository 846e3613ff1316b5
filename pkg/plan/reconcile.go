package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ozten/speck/pkg/ports"
	"github.com/ozten/speck/pkg/spec"
)

const reconcileModel = "claude-sonnet-4-20250514"

// MergeSuggestion proposes folding several task specs into one.
type MergeSuggestion struct {
	TaskIDs     []string
	Reason      string
	MergedTitle string
}

// ExtractionSuggestion proposes pulling a shared abstraction out of
// several task specs into a new, foundational one.
type ExtractionSuggestion struct {
	TaskIDs            []string
	Abstraction        string
	SuggestedTaskTitle string
}

// ReorderSuggestion proposes moving a task earlier in execution order.
type ReorderSuggestion struct {
	TaskID        string
	ShouldPrecede string
	Reason        string
}

// ReconciliationResult is the reconciliation pass's findings across an
// entire batch of task specs.
type ReconciliationResult struct {
	SuggestedMerges      []MergeSuggestion
	SuggestedExtractions []ExtractionSuggestion
	SuggestedReorders    []ReorderSuggestion
	CircularDependencies [][]string
}

// Reconcile detects circular dependencies locally (no LLM involved) and
// asks the LLM for merge/extraction/reorder suggestions across taskSpecs.
func Reconcile(ctx context.Context, llm ports.LLM, taskSpecs []*spec.TaskSpec) (ReconciliationResult, error) {
	cycles := detectCircularDependencies(taskSpecs)

	prompt := buildReconciliationPrompt(taskSpecs, cycles)
	req := ports.CompletionRequest{Model: reconcileModel, Prompt: prompt, MaxTokens: 4096}

	resp, err := llm.Complete(ctx, req)
	if err != nil {
		return ReconciliationResult{}, fmt.Errorf("reconciliation LLM call failed: %w", err)
	}

	result, err := parseReconciliationResponse(resp.Text)
	if err != nil {
		return ReconciliationResult{}, err
	}
	result.CircularDependencies = cycles
	return result, nil
}

// detectCircularDependencies builds an adjacency map from each spec's
// declared dependencies, restricted to IDs that are themselves present in
// taskSpecs, then runs a DFS with gray/black coloring to find cycles.
func detectCircularDependencies(taskSpecs []*spec.TaskSpec) [][]string {
	known := make(map[string]bool, len(taskSpecs))
	for _, ts := range taskSpecs {
		known[ts.ID] = true
	}

	adjacency := make(map[string][]string, len(taskSpecs))
	for _, ts := range taskSpecs {
		var deps []string
		if ts.Context != nil {
			for _, d := range ts.Context.Dependencies {
				if known[d] {
					deps = append(deps, d)
				}
			}
		}
		adjacency[ts.ID] = deps
	}

	visited := make(map[string]bool)
	var cycles [][]string

	for _, ts := range taskSpecs {
		if !visited[ts.ID] {
			dfsFindCycles(ts.ID, adjacency, visited, make(map[string]bool), nil, &cycles)
		}
	}

	return cycles
}

// dfsFindCycles walks from node, marking nodes gray (onStack) while they
// are on the current path and black (visited) once fully explored.
// Hitting a gray node means the stack slice from that node's position
// onward is a cycle.
func dfsFindCycles(node string, adjacency map[string][]string, visited, onStack map[string]bool, stack []string, cycles *[][]string) {
	visited[node] = true
	onStack[node] = true
	stack = append(stack, node)

	for _, dep := range adjacency[node] {
		if onStack[dep] {
			for i, n := range stack {
				if n == dep {
					cycle := append([]string(nil), stack[i:]...)
					*cycles = append(*cycles, cycle)
					break
				}
			}
			continue
		}
		if !visited[dep] {
			dfsFindCycles(dep, adjacency, visited, onStack, stack, cycles)
		}
	}

	onStack[node] = false
}

func buildReconciliationPrompt(taskSpecs []*spec.TaskSpec, cycles [][]string) string {
	var b strings.Builder
	b.WriteString("Reconcile this batch of task specs for overlap, missing abstractions, and ordering.\n\n")
	b.WriteString("## Task Specs\n\n")

	for _, ts := range taskSpecs {
		fmt.Fprintf(&b, "### %s — %s\n", ts.ID, ts.Title)
		if ts.Requirement != nil {
			fmt.Fprintf(&b, "Requirement: %s\n", *ts.Requirement)
		}
		if ts.Context != nil {
			fmt.Fprintf(&b, "Modules: %s\n", strings.Join(ts.Context.Modules, ", "))
			fmt.Fprintf(&b, "Dependencies: %s\n", strings.Join(ts.Context.Dependencies, ", "))
		}
		b.WriteString("Acceptance criteria:\n")
		for _, ac := range ts.AcceptanceCriteria {
			fmt.Fprintf(&b, "  - %s\n", ac)
		}
		b.WriteString("\n")
	}

	if len(cycles) > 0 {
		b.WriteString("## Detected Circular Dependencies\n\n")
		for _, cycle := range cycles {
			fmt.Fprintf(&b, "- %s\n", strings.Join(cycle, " -> "))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Instructions\n\n")
	b.WriteString("Respond with JSON (no markdown fences):\n")
	b.WriteString("{\n  \"merges\": [{\"task_ids\": [\"...\"], \"reason\": \"...\", \"merged_title\": \"...\"}],\n")
	b.WriteString("  \"extractions\": [{\"task_ids\": [\"...\"], \"abstraction\": \"...\", \"suggested_task_title\": \"...\"}],\n")
	b.WriteString("  \"reorders\": [{\"task_id\": \"...\", \"should_precede\": \"...\", \"reason\": \"...\"}]\n}\n\n")
	b.WriteString("Omit any array that has no suggestions; empty arrays are also fine.\n")

	return b.String()
}

type reconciliationResponse struct {
	Merges      []mergeJSON      `json:"merges"`
	Extractions []extractionJSON `json:"extractions"`
	Reorders    []reorderJSON    `json:"reorders"`
}

type mergeJSON struct {
	TaskIDs     []string `json:"task_ids"`
	Reason      string   `json:"reason"`
	MergedTitle string   `json:"merged_title"`
}

type extractionJSON struct {
	TaskIDs            []string `json:"task_ids"`
	Abstraction        string   `json:"abstraction"`
	SuggestedTaskTitle string   `json:"suggested_task_title"`
}

type reorderJSON struct {
	TaskID        string `json:"task_id"`
	ShouldPrecede string `json:"should_precede"`
	Reason        string `json:"reason"`
}

// parseReconciliationResponse parses the LLM's merge/extraction/reorder
// suggestions. CircularDependencies is left unset here; Reconcile fills
// it in from the locally computed cycles, never from the LLM.
func parseReconciliationResponse(text string) (ReconciliationResult, error) {
	var parsed reconciliationResponse
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return ReconciliationResult{}, fmt.Errorf("failed to parse reconciliation response: %w", err)
	}

	merges := make([]MergeSuggestion, len(parsed.Merges))
	for i, m := range parsed.Merges {
		merges[i] = MergeSuggestion{TaskIDs: m.TaskIDs, Reason: m.Reason, MergedTitle: m.MergedTitle}
	}

	extractions := make([]ExtractionSuggestion, len(parsed.Extractions))
	for i, e := range parsed.Extractions {
		extractions[i] = ExtractionSuggestion{
			TaskIDs:            e.TaskIDs,
			Abstraction:        e.Abstraction,
			SuggestedTaskTitle: e.SuggestedTaskTitle,
		}
	}

	reorders := make([]ReorderSuggestion, len(parsed.Reorders))
	for i, r := range parsed.Reorders {
		reorders[i] = ReorderSuggestion{TaskID: r.TaskID, ShouldPrecede: r.ShouldPrecede, Reason: r.Reason}
	}

	return ReconciliationResult{
		SuggestedMerges:      merges,
		SuggestedExtractions: extractions,
		SuggestedReorders:    reorders,
	}, nil
}
