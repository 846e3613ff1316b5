package spec

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// VerificationCheck is a single check within a DirectAssertion verification
// strategy. It is internally tagged on disk: a "type" field sits beside the
// check's own fields, mirroring the original schema's serde(tag = "type")
// convention; Go has no native
// tagged-union support so the tag dispatch is implemented by hand in
// MarshalYAML/UnmarshalYAML below.
type VerificationCheck interface {
	checkType() string
}

// TestSuiteCheck runs a test command and expects a particular outcome.
type TestSuiteCheck struct {
	Command  string `yaml:"command"`
	Expected string `yaml:"expected"`
}

func (TestSuiteCheck) checkType() string { return "test_suite" }

// SqlAssertionCheck runs a SQL query and asserts on its result.
type SqlAssertionCheck struct {
	Query    string `yaml:"query"`
	Expected string `yaml:"expected"`
}

func (SqlAssertionCheck) checkType() string { return "sql_assertion" }

// CommandOutputCheck runs a command and checks its output.
type CommandOutputCheck struct {
	Command  string `yaml:"command"`
	Expected string `yaml:"expected"`
}

func (CommandOutputCheck) checkType() string { return "command_output" }

// MigrationRollbackCheck verifies a migration can be rolled back.
type MigrationRollbackCheck struct {
	Description string `yaml:"description"`
}

func (MigrationRollbackCheck) checkType() string { return "migration_rollback" }

// CustomCheck is a freeform check with no mechanical verification path.
type CustomCheck struct {
	Description string `yaml:"description"`
}

func (CustomCheck) checkType() string { return "custom" }

// RefactorToExposeCheck asks that a decision point be refactored into a
// directly testable shape. Supplements the original schema, which only
// offered RefactorToExpose as a top-level VerificationStrategy; §4.K
// requires it to also be classifiable as one check among several.
type RefactorToExposeCheck struct {
	DecisionPoint     string `yaml:"decision_point"`
	RequiredStructure string `yaml:"required_structure"`
}

func (RefactorToExposeCheck) checkType() string { return "refactor_to_expose" }

// TraceAssertionCheck asserts on trace output from instrumented code.
// Supplements the original schema for the same reason as
// RefactorToExposeCheck.
type TraceAssertionCheck struct {
	TracePoint string `yaml:"trace_point"`
}

func (TraceAssertionCheck) checkType() string { return "trace_assertion" }

type checkEnvelope struct {
	Type              string `yaml:"type"`
	Command           string `yaml:"command,omitempty"`
	Expected          string `yaml:"expected,omitempty"`
	Query             string `yaml:"query,omitempty"`
	Description       string `yaml:"description,omitempty"`
	DecisionPoint     string `yaml:"decision_point,omitempty"`
	RequiredStructure string `yaml:"required_structure,omitempty"`
	TracePoint        string `yaml:"trace_point,omitempty"`
}

// MarshalCheck flattens the check's fields alongside its "type"
// discriminator; CheckList.MarshalYAML calls it for each element.
func MarshalCheck(c VerificationCheck) (any, error) {
	switch v := c.(type) {
	case TestSuiteCheck:
		return checkEnvelope{Type: v.checkType(), Command: v.Command, Expected: v.Expected}, nil
	case SqlAssertionCheck:
		return checkEnvelope{Type: v.checkType(), Query: v.Query, Expected: v.Expected}, nil
	case CommandOutputCheck:
		return checkEnvelope{Type: v.checkType(), Command: v.Command, Expected: v.Expected}, nil
	case MigrationRollbackCheck:
		return checkEnvelope{Type: v.checkType(), Description: v.Description}, nil
	case CustomCheck:
		return checkEnvelope{Type: v.checkType(), Description: v.Description}, nil
	case RefactorToExposeCheck:
		return checkEnvelope{Type: v.checkType(), DecisionPoint: v.DecisionPoint, RequiredStructure: v.RequiredStructure}, nil
	case TraceAssertionCheck:
		return checkEnvelope{Type: v.checkType(), TracePoint: v.TracePoint}, nil
	default:
		return nil, fmt.Errorf("spec: unknown VerificationCheck type %T", c)
	}
}

// decodeCheckEnvelope dispatches on the envelope's "type" field to build
// the concrete VerificationCheck it describes.
func decodeCheckEnvelope(e checkEnvelope) (VerificationCheck, error) {
	switch e.Type {
	case "test_suite":
		return TestSuiteCheck{Command: e.Command, Expected: e.Expected}, nil
	case "sql_assertion":
		return SqlAssertionCheck{Query: e.Query, Expected: e.Expected}, nil
	case "command_output":
		return CommandOutputCheck{Command: e.Command, Expected: e.Expected}, nil
	case "migration_rollback":
		return MigrationRollbackCheck{Description: e.Description}, nil
	case "custom":
		return CustomCheck{Description: e.Description}, nil
	case "refactor_to_expose":
		return RefactorToExposeCheck{DecisionPoint: e.DecisionPoint, RequiredStructure: e.RequiredStructure}, nil
	case "trace_assertion":
		return TraceAssertionCheck{TracePoint: e.TracePoint}, nil
	default:
		return nil, fmt.Errorf("spec: unknown verification check type %q", e.Type)
	}
}

// CheckList is []VerificationCheck with YAML marshaling that dispatches
// each element through its "type" discriminator.
type CheckList []VerificationCheck

// MarshalYAML implements yaml.Marshaler.
func (l CheckList) MarshalYAML() (any, error) {
	out := make([]any, len(l))
	for i, c := range l {
		env, err := MarshalCheck(c)
		if err != nil {
			return nil, err
		}
		out[i] = env
	}
	return out, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *CheckList) UnmarshalYAML(value *yaml.Node) error {
	var envelopes []checkEnvelope
	if err := value.Decode(&envelopes); err != nil {
		return fmt.Errorf("failed to decode verification checks: %w", err)
	}

	result := make(CheckList, len(envelopes))
	for i, e := range envelopes {
		check, err := decodeCheckEnvelope(e)
		if err != nil {
			return err
		}
		result[i] = check
	}
	*l = result
	return nil
}
