package spec

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// VerificationStrategy describes how a task's acceptance criteria will be
// verified. Internally tagged on disk: a "strategy" field sits beside the
// strategy's own fields.
type VerificationStrategy interface {
	strategyType() string
}

// DirectAssertionStrategy verifies via a list of mechanical checks.
type DirectAssertionStrategy struct {
	Checks CheckList `yaml:"checks"`
}

func (DirectAssertionStrategy) strategyType() string { return "direct_assertion" }

// RefactorToExposeStrategy asks that internal logic be refactored to
// expose a decision point for direct testing.
type RefactorToExposeStrategy struct {
	DecisionPoint     string `yaml:"decision_point"`
	RequiredStructure string `yaml:"required_structure"`
	Cases             []any  `yaml:"cases"`
}

func (RefactorToExposeStrategy) strategyType() string { return "refactor_to_expose" }

// TraceAssertionStrategy verifies by asserting on trace output from
// instrumented code.
type TraceAssertionStrategy struct {
	TracePoint    string `yaml:"trace_point"`
	TestInput     string `yaml:"test_input"`
	ExpectedTrace []any  `yaml:"expected_trace"`
}

func (TraceAssertionStrategy) strategyType() string { return "trace_assertion" }

type strategyEnvelope struct {
	Strategy          string    `yaml:"strategy"`
	Checks            CheckList `yaml:"checks,omitempty"`
	DecisionPoint     string    `yaml:"decision_point,omitempty"`
	RequiredStructure string    `yaml:"required_structure,omitempty"`
	Cases             []any     `yaml:"cases,omitempty"`
	TracePoint        string    `yaml:"trace_point,omitempty"`
	TestInput         string    `yaml:"test_input,omitempty"`
	ExpectedTrace     []any     `yaml:"expected_trace,omitempty"`
}

// MarshalStrategy flattens a VerificationStrategy into its tagged
// representation.
func MarshalStrategy(s VerificationStrategy) (any, error) {
	switch v := s.(type) {
	case DirectAssertionStrategy:
		return strategyEnvelope{Strategy: v.strategyType(), Checks: v.Checks}, nil
	case RefactorToExposeStrategy:
		return strategyEnvelope{
			Strategy:          v.strategyType(),
			DecisionPoint:     v.DecisionPoint,
			RequiredStructure: v.RequiredStructure,
			Cases:             v.Cases,
		}, nil
	case TraceAssertionStrategy:
		return strategyEnvelope{
			Strategy:      v.strategyType(),
			TracePoint:    v.TracePoint,
			TestInput:     v.TestInput,
			ExpectedTrace: v.ExpectedTrace,
		}, nil
	default:
		return nil, fmt.Errorf("spec: unknown VerificationStrategy type %T", s)
	}
}

// decodeStrategyEnvelope dispatches a decoded envelope into a concrete
// VerificationStrategy via its "strategy" discriminator.
func decodeStrategyEnvelope(e strategyEnvelope) (VerificationStrategy, error) {
	switch e.Strategy {
	case "direct_assertion":
		return DirectAssertionStrategy{Checks: e.Checks}, nil
	case "refactor_to_expose":
		return RefactorToExposeStrategy{
			DecisionPoint:     e.DecisionPoint,
			RequiredStructure: e.RequiredStructure,
			Cases:             e.Cases,
		}, nil
	case "trace_assertion":
		return TraceAssertionStrategy{
			TracePoint:    e.TracePoint,
			TestInput:     e.TestInput,
			ExpectedTrace: e.ExpectedTrace,
		}, nil
	default:
		return nil, fmt.Errorf("spec: unknown verification strategy %q", e.Strategy)
	}
}

// StrategyValue wraps a bare, top-level VerificationStrategy value (as
// opposed to one embedded in a TaskSpec) so it marshals and unmarshals
// through the tagged envelope.
type StrategyValue struct {
	VerificationStrategy
}

// MarshalYAML implements yaml.Marshaler.
func (v StrategyValue) MarshalYAML() (any, error) {
	return MarshalStrategy(v.VerificationStrategy)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *StrategyValue) UnmarshalYAML(value *yaml.Node) error {
	var e strategyEnvelope
	if err := value.Decode(&e); err != nil {
		return fmt.Errorf("failed to decode verification strategy: %w", err)
	}
	strategy, err := decodeStrategyEnvelope(e)
	if err != nil {
		return err
	}
	v.VerificationStrategy = strategy
	return nil
}
