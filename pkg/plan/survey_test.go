package plan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozten/speck/pkg/codemap"
	"github.com/ozten/speck/pkg/ports"
)

type stubLLM struct {
	responses []string
	calls     int
	requests  []ports.CompletionRequest
}

func (s *stubLLM) Complete(ctx context.Context, req ports.CompletionRequest) (ports.CompletionResponse, error) {
	s.requests = append(s.requests, req)
	text := s.responses[s.calls]
	s.calls++
	return ports.CompletionResponse{Text: text, PromptTokens: 100, CompletionTokens: 20}, nil
}

func TestBuildSurveyPromptListsModulesAndRequirement(t *testing.T) {
	m := codemap.CodebaseMap{
		Modules: []codemap.ModuleSummary{
			{Path: "internal/api", PublicItems: []string{"type Handler"}, Dependencies: []string{"internal/db"}},
		},
	}
	prompt := buildSurveyPrompt(m, "Add pagination to the list endpoint")

	assert.Contains(t, prompt, "internal/api")
	assert.Contains(t, prompt, "type Handler")
	assert.Contains(t, prompt, "Add pagination to the list endpoint")
	assert.Contains(t, prompt, "routing_table")
}

func TestParseSurveyResponseBuildsDependencyGraphFromMapNotLLM(t *testing.T) {
	m := codemap.CodebaseMap{
		Modules: []codemap.ModuleSummary{
			{Path: "internal/api", Dependencies: []string{"internal/db"}},
			{Path: "internal/db", Dependencies: nil},
		},
	}

	response := `{
		"routing_table": {"pagination": "internal/api"},
		"cross_cutting_concerns": ["logging"],
		"foundational_gaps": ["no integration tests"],
		"dependency_graph": {"internal/api": ["bogus"]}
	}`

	result, err := parseSurveyResponse(response, m)
	require.NoError(t, err)

	assert.Equal(t, "internal/api", result.RoutingTable["pagination"])
	assert.Equal(t, []string{"logging"}, result.CrossCuttingConcerns)
	assert.Equal(t, []string{"no integration tests"}, result.FoundationalGaps)

	// Dependency graph is derived from the codebase map, not the LLM's echo.
	assert.Equal(t, []string{"internal/db"}, result.DependencyGraph["internal/api"])
	assert.Empty(t, result.DependencyGraph["internal/db"])
}

func TestParseSurveyResponseRejectsInvalidJSON(t *testing.T) {
	_, err := parseSurveyResponse("not json", codemap.CodebaseMap{})
	assert.Error(t, err)
}

func TestBroadSurveyGeneratesMapWhenNoneCached(t *testing.T) {
	fs := &memFS{files: map[string]string{}}
	git := &stubGit{commit: "abc123", files: []string{"internal/api/handler.go"}}
	clock := fixedClock{iso: "2025-06-15T10:00:00Z"}

	fs.files["internal/api/handler.go"] = "package api\n\nfunc Handler() {}\n"

	response := `{"routing_table": {}, "cross_cutting_concerns": [], "foundational_gaps": []}`
	llm := &stubLLM{responses: []string{response}}

	result, err := BroadSurvey(context.Background(), llm, codemap.Ports{Clock: clock, Git: git, FS: fs}, "", "github.com/example/app", "Add an endpoint")
	require.NoError(t, err)
	assert.Contains(t, result.DependencyGraph, "internal/api")
	assert.Len(t, llm.requests, 1)
	assert.Equal(t, surveyModel, llm.requests[0].Model)
	assert.Equal(t, 4096, llm.requests[0].MaxTokens)
}
