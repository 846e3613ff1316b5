package spec

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// TaskContext describes the codebase area a task touches.
type TaskContext struct {
	Modules      []string `yaml:"modules,omitempty"`
	Patterns     *string  `yaml:"patterns,omitempty"`
	Dependencies []string `yaml:"dependencies,omitempty"`
}

// TaskSpec is a fully-specified task produced by the planning pipeline and
// consumed by validation.
type TaskSpec struct {
	ID                 string
	Title              string
	Requirement        *string
	Context            *TaskContext
	AcceptanceCriteria []string
	SignalType         SignalType
	Verification       VerificationStrategy
}

type taskSpecEnvelope struct {
	ID                 string           `yaml:"id"`
	Title              string           `yaml:"title"`
	Requirement        *string          `yaml:"requirement,omitempty"`
	Context            *TaskContext     `yaml:"context,omitempty"`
	AcceptanceCriteria []string         `yaml:"acceptance_criteria"`
	SignalType         SignalType       `yaml:"signal_type"`
	Verification       strategyEnvelope `yaml:"verification"`
}

// MarshalYAML implements yaml.Marshaler, flattening Verification through
// its tagged envelope.
func (t TaskSpec) MarshalYAML() (any, error) {
	strategy, err := MarshalStrategy(t.Verification)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal task spec %s: %w", t.ID, err)
	}

	env, ok := strategy.(strategyEnvelope)
	if !ok {
		return nil, fmt.Errorf("failed to marshal task spec %s: unexpected strategy envelope type", t.ID)
	}

	return taskSpecEnvelope{
		ID:                 t.ID,
		Title:              t.Title,
		Requirement:        t.Requirement,
		Context:            t.Context,
		AcceptanceCriteria: t.AcceptanceCriteria,
		SignalType:         t.SignalType,
		Verification:       env,
	}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *TaskSpec) UnmarshalYAML(value *yaml.Node) error {
	var env taskSpecEnvelope
	if err := value.Decode(&env); err != nil {
		return fmt.Errorf("failed to decode task spec: %w", err)
	}

	strategy, err := decodeStrategyEnvelope(env.Verification)
	if err != nil {
		return fmt.Errorf("failed to decode verification strategy for %s: %w", env.ID, err)
	}

	t.ID = env.ID
	t.Title = env.Title
	t.Requirement = env.Requirement
	t.Context = env.Context
	t.AcceptanceCriteria = env.AcceptanceCriteria
	t.SignalType = env.SignalType
	t.Verification = strategy
	return nil
}
