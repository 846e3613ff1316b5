package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTaskSpecRoundTripsDirectAssertion(t *testing.T) {
	req := "REQ-1"
	ts := TaskSpec{
		ID:                 "IMPACT-42",
		Title:              "Add retry logic",
		Requirement:        &req,
		AcceptanceCriteria: []string{"retries three times"},
		SignalType:         SignalClear,
		Verification: DirectAssertionStrategy{
			Checks: CheckList{
				TestSuiteCheck{Command: "go test ./...", Expected: "pass"},
			},
		},
	}

	data, err := yaml.Marshal(&ts)
	require.NoError(t, err)

	var decoded TaskSpec
	require.NoError(t, yaml.Unmarshal(data, &decoded))

	assert.Equal(t, ts.ID, decoded.ID)
	assert.Equal(t, ts.SignalType, decoded.SignalType)
	strategy, ok := decoded.Verification.(DirectAssertionStrategy)
	require.True(t, ok)
	require.Len(t, strategy.Checks, 1)
	check, ok := strategy.Checks[0].(TestSuiteCheck)
	require.True(t, ok)
	assert.Equal(t, "go test ./...", check.Command)
}

func TestTaskSpecRoundTripsRefactorToExposeStrategy(t *testing.T) {
	ts := TaskSpec{
		ID:                 "IMPACT-7",
		Title:              "Expose pricing decision",
		AcceptanceCriteria: []string{"decision is a pure function"},
		SignalType:         SignalInternalLogic,
		Verification: RefactorToExposeStrategy{
			DecisionPoint:     "pricing tier selection",
			RequiredStructure: "func selectTier(input Input) Tier",
		},
	}

	data, err := yaml.Marshal(&ts)
	require.NoError(t, err)

	var decoded TaskSpec
	require.NoError(t, yaml.Unmarshal(data, &decoded))

	strategy, ok := decoded.Verification.(RefactorToExposeStrategy)
	require.True(t, ok)
	assert.Equal(t, "pricing tier selection", strategy.DecisionPoint)
}

func TestCheckListRoundTripsAllVariants(t *testing.T) {
	checks := CheckList{
		TestSuiteCheck{Command: "c1", Expected: "e1"},
		SqlAssertionCheck{Query: "select 1", Expected: "1"},
		CommandOutputCheck{Command: "echo hi", Expected: "hi"},
		MigrationRollbackCheck{Description: "rollback works"},
		CustomCheck{Description: "manual review"},
		RefactorToExposeCheck{DecisionPoint: "dp", RequiredStructure: "rs"},
		TraceAssertionCheck{TracePoint: "tp"},
	}

	data, err := yaml.Marshal(checks)
	require.NoError(t, err)

	var decoded CheckList
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	require.Len(t, decoded, len(checks))

	assert.IsType(t, TestSuiteCheck{}, decoded[0])
	assert.IsType(t, SqlAssertionCheck{}, decoded[1])
	assert.IsType(t, CommandOutputCheck{}, decoded[2])
	assert.IsType(t, MigrationRollbackCheck{}, decoded[3])
	assert.IsType(t, CustomCheck{}, decoded[4])
	assert.IsType(t, RefactorToExposeCheck{}, decoded[5])
	assert.IsType(t, TraceAssertionCheck{}, decoded[6])
}

func TestUnmarshalCheckRejectsUnknownType(t *testing.T) {
	var decoded CheckList
	err := yaml.Unmarshal([]byte("- type: not_a_real_check\n"), &decoded)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown verification check type")
}
