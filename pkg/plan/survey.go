// Package plan implements the four-state planning pipeline that turns a
// raw requirement into task specs: a broad survey of the codebase, signal
// classification of the requirement, reconciliation across the resulting
// task specs, and an interactive pushback loop for whatever the first
// three stages couldn't resolve on their own.
package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ozten/speck/pkg/codemap"
	"github.com/ozten/speck/pkg/ports"
)

const surveyModel = "claude-sonnet-4-20250514"

// SurveyResult is the broad-survey pass's map of a requirement onto the
// existing codebase, before any individual task spec exists.
type SurveyResult struct {
	RoutingTable         map[string]string
	CrossCuttingConcerns []string
	FoundationalGaps     []string
	DependencyGraph      map[string][]string
}

// BroadSurvey loads or generates the codebase map for root, asks the LLM
// to route requirement against it, and returns the combined result. The
// dependency graph is built directly from the codebase map rather than
// trusted to the LLM's response.
func BroadSurvey(ctx context.Context, llm ports.LLM, mapPorts codemap.Ports, root, modulePrefix, requirement string) (SurveyResult, error) {
	cbMap, err := loadOrGenerateMap(mapPorts, root, modulePrefix)
	if err != nil {
		return SurveyResult{}, fmt.Errorf("failed to load codebase map: %w", err)
	}

	prompt := buildSurveyPrompt(cbMap, requirement)
	req := ports.CompletionRequest{Model: surveyModel, Prompt: prompt, MaxTokens: 4096}

	resp, err := llm.Complete(ctx, req)
	if err != nil {
		return SurveyResult{}, fmt.Errorf("survey LLM call failed: %w", err)
	}

	return parseSurveyResponse(resp.Text, cbMap)
}

// loadOrGenerateMap reads the cached codebase map when it's current with
// the working tree's commit, and regenerates it otherwise.
func loadOrGenerateMap(p codemap.Ports, root, modulePrefix string) (codemap.CodebaseMap, error) {
	commit, err := p.Git.CurrentCommit()
	if err != nil {
		return codemap.CodebaseMap{}, fmt.Errorf("failed to get current commit: %w", err)
	}

	outputPath := path.Join(root, codemap.OutputPath)
	if p.FS.Exists(outputPath) {
		raw, err := p.FS.ReadToString(outputPath)
		if err == nil {
			var cached codemap.CodebaseMap
			if yamlErr := yaml.Unmarshal([]byte(raw), &cached); yamlErr == nil && cached.CommitHash == commit {
				return cached, nil
			}
		}
	}

	return codemap.Generate(p, root, modulePrefix)
}

// buildSurveyPrompt lists the codebase map's modules and asks the LLM to
// route requirement onto them.
func buildSurveyPrompt(m codemap.CodebaseMap, requirement string) string {
	var b strings.Builder
	b.WriteString("Survey this codebase against a new requirement.\n\n")
	b.WriteString("## Modules\n\n")
	for _, mod := range m.Modules {
		path := mod.Path
		if path == "" {
			path = "(root)"
		}
		fmt.Fprintf(&b, "### %s\n", path)
		fmt.Fprintf(&b, "Public items: %s\n", strings.Join(mod.PublicItems, ", "))
		fmt.Fprintf(&b, "Dependencies: %s\n\n", strings.Join(mod.Dependencies, ", "))
	}

	fmt.Fprintf(&b, "## Requirement\n\n%s\n\n", requirement)

	b.WriteString("## Instructions\n\n")
	b.WriteString("Respond with JSON (no markdown fences):\n")
	b.WriteString("{\n  \"routing_table\": {\"concern\": \"module path\"},\n")
	b.WriteString("  \"cross_cutting_concerns\": [\"...\"],\n")
	b.WriteString("  \"foundational_gaps\": [\"...\"]\n}\n\n")
	b.WriteString("- routing_table maps each concern in the requirement to the module that should own it.\n")
	b.WriteString("- cross_cutting_concerns lists concerns that span more than one module.\n")
	b.WriteString("- foundational_gaps lists infrastructure the codebase is missing entirely.\n")

	return b.String()
}

type surveyResponse struct {
	RoutingTable         map[string]string `json:"routing_table"`
	CrossCuttingConcerns []string          `json:"cross_cutting_concerns"`
	FoundationalGaps     []string          `json:"foundational_gaps"`
}

// parseSurveyResponse parses the LLM's JSON response and builds the
// dependency graph from cbMap directly, ignoring any dependency_graph the
// LLM may have echoed back.
func parseSurveyResponse(text string, cbMap codemap.CodebaseMap) (SurveyResult, error) {
	var parsed surveyResponse
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return SurveyResult{}, fmt.Errorf("failed to parse survey response: %w", err)
	}

	graph := make(map[string][]string, len(cbMap.Modules))
	for _, mod := range cbMap.Modules {
		deps := append([]string(nil), mod.Dependencies...)
		sort.Strings(deps)
		graph[mod.Path] = deps
	}

	return SurveyResult{
		RoutingTable:         parsed.RoutingTable,
		CrossCuttingConcerns: parsed.CrossCuttingConcerns,
		FoundationalGaps:     parsed.FoundationalGaps,
		DependencyGraph:      graph,
	}, nil
}
