package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ozten/speck/pkg/ports"
)

const classifyModel = "claude-sonnet-4-20250514"

// SignalType classifies how the LLM judges a requirement's verifiability,
// before a task spec is ever written. Distinct from spec.SignalType, which
// records the same idea (minus PushbackRequired, which never reaches a
// stored spec) on a finished TaskSpec.
type SignalType string

const (
	Clear                 SignalType = "clear"
	FuzzyButConstrainable SignalType = "fuzzy"
	InternalLogic         SignalType = "internal_logic"
)

// SubAssertion is one piece of a StructuralDecomposition verification
// strategy.
type SubAssertion struct {
	Description string
	Check       string
}

// VerificationStrategy is the classification pass's richer, pre-spec
// verification recommendation. Distinct from spec.VerificationStrategy,
// which only has room for the subset that survives to a stored TaskSpec.
type VerificationStrategy interface {
	verificationKind() string
}

// DirectAssertion recommends a fixed list of mechanical checks.
type DirectAssertion struct {
	Checks []string
}

func (DirectAssertion) verificationKind() string { return "direct_assertion" }

// StructuralDecomposition recommends breaking the requirement into
// sub-assertions, each independently checkable.
type StructuralDecomposition struct {
	SubAssertions []SubAssertion
}

func (StructuralDecomposition) verificationKind() string { return "structural_decomposition" }

// RefactorToExpose recommends refactoring internal logic to expose a
// decision point before it can be verified directly.
type RefactorToExpose struct {
	Description string
}

func (RefactorToExpose) verificationKind() string { return "refactor_to_expose" }

// TraceAssertion recommends verifying via trace output from instrumented
// code rather than a direct return-value assertion.
type TraceAssertion struct {
	Description string
}

func (TraceAssertion) verificationKind() string { return "trace_assertion" }

// ClassificationResult is either a successful classification or a request
// that a human resolve an under-specified requirement before planning can
// continue.
type ClassificationResult struct {
	Classified       *Classified
	PushbackRequired *PushbackRequired
}

// Classified pairs a signal type with the verification strategy the LLM
// recommends for it.
type Classified struct {
	SignalType SignalType
	Strategy   VerificationStrategy
}

// PushbackRequired means the requirement can't be classified as-is; Reason
// explains why, for presentation in the interactive pushback loop.
type PushbackRequired struct {
	Reason string
}

// Classify asks the LLM to classify requirement's verifiability against
// codebaseContext (typically a rendering of the relevant BroadSurvey
// routing entries).
func Classify(ctx context.Context, llm ports.LLM, requirement, codebaseContext string) (ClassificationResult, error) {
	prompt := buildClassificationPrompt(requirement, codebaseContext)
	req := ports.CompletionRequest{Model: classifyModel, Prompt: prompt, MaxTokens: 1024}

	resp, err := llm.Complete(ctx, req)
	if err != nil {
		return ClassificationResult{}, fmt.Errorf("classification LLM call failed: %w", err)
	}

	return parseClassificationResponse(resp.Text)
}

func buildClassificationPrompt(requirement, codebaseContext string) string {
	var b strings.Builder
	b.WriteString("Classify this requirement's verification signal.\n\n")
	fmt.Fprintf(&b, "## Requirement\n\n%s\n\n", requirement)
	if codebaseContext != "" {
		fmt.Fprintf(&b, "## Codebase Context\n\n%s\n\n", codebaseContext)
	}

	b.WriteString("## Instructions\n\n")
	b.WriteString("Respond with JSON (no markdown fences), one of four shapes:\n\n")
	b.WriteString("Clear signal, directly checkable:\n")
	b.WriteString("{\"type\": \"clear\", \"checks\": [\"go test ./...\"]}\n\n")
	b.WriteString("Fuzzy but constrainable into sub-assertions:\n")
	b.WriteString("{\"type\": \"fuzzy\", \"sub_assertions\": [{\"description\": \"...\", \"check\": \"...\"}]}\n\n")
	b.WriteString("Internal logic needing a refactor or a trace point:\n")
	b.WriteString("{\"type\": \"internal\", \"approach\": \"refactor\"|\"trace\", \"description\": \"...\"}\n\n")
	b.WriteString("Under-specified, needs human input:\n")
	b.WriteString("{\"type\": \"pushback\", \"reason\": \"...\"}\n")

	return b.String()
}

type classificationResponse struct {
	Type          string         `json:"type"`
	Checks        []string       `json:"checks"`
	SubAssertions []subAssertion `json:"sub_assertions"`
	Approach      string         `json:"approach"`
	Description   string         `json:"description"`
	Reason        string         `json:"reason"`
}

type subAssertion struct {
	Description string `json:"description"`
	Check       string `json:"check"`
}

func parseClassificationResponse(text string) (ClassificationResult, error) {
	var parsed classificationResponse
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return ClassificationResult{}, fmt.Errorf("failed to parse classification response: %w", err)
	}

	switch parsed.Type {
	case "clear":
		return ClassificationResult{Classified: &Classified{
			SignalType: Clear,
			Strategy:   DirectAssertion{Checks: parsed.Checks},
		}}, nil

	case "fuzzy":
		subs := make([]SubAssertion, len(parsed.SubAssertions))
		for i, s := range parsed.SubAssertions {
			subs[i] = SubAssertion{Description: s.Description, Check: s.Check}
		}
		return ClassificationResult{Classified: &Classified{
			SignalType: FuzzyButConstrainable,
			Strategy:   StructuralDecomposition{SubAssertions: subs},
		}}, nil

	case "internal":
		approach := parsed.Approach
		if approach == "" {
			approach = "refactor"
		}
		var strategy VerificationStrategy
		if approach == "trace" {
			strategy = TraceAssertion{Description: parsed.Description}
		} else {
			strategy = RefactorToExpose{Description: parsed.Description}
		}
		return ClassificationResult{Classified: &Classified{
			SignalType: InternalLogic,
			Strategy:   strategy,
		}}, nil

	case "pushback":
		reason := parsed.Reason
		if reason == "" {
			reason = "Requirement is under-specified"
		}
		return ClassificationResult{PushbackRequired: &PushbackRequired{Reason: reason}}, nil

	default:
		return ClassificationResult{}, fmt.Errorf("unknown signal type: %s", parsed.Type)
	}
}
