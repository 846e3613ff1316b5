package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozten/speck/pkg/ports"
	"github.com/ozten/speck/pkg/spec"
)

func sampleSpec(id, title string) *spec.TaskSpec {
	return &spec.TaskSpec{
		ID:                 id,
		Title:              title,
		AcceptanceCriteria: []string{"it works"},
		SignalType:         spec.SignalClear,
		Verification: spec.DirectAssertionStrategy{
			Checks: spec.CheckList{spec.TestSuiteCheck{Command: "go test ./...", Expected: "pass"}},
		},
	}
}

func sampleSpecWithDeps(id, title string, deps []string) *spec.TaskSpec {
	s := sampleSpec(id, title)
	s.Context = &spec.TaskContext{Dependencies: deps}
	return s
}

func TestPlanCreatesForNewSpecs(t *testing.T) {
	specs := []*spec.TaskSpec{sampleSpec("T-1", "First task")}
	actions := PlanSync(specs, nil)

	require.Len(t, actions, 1)
	create, ok := actions[0].(CreateAction)
	require.True(t, ok)
	assert.Equal(t, "T-1", create.SpecID)
}

func TestPlanMarksUnchangedWhenMatching(t *testing.T) {
	specs := []*spec.TaskSpec{sampleSpec("T-1", "First task")}
	existing := []ports.Issue{{ID: "ISS-1", Title: "[T-1] First task", Body: IssueBody(specs[0])}}

	actions := PlanSync(specs, existing)
	require.Len(t, actions, 1)
	unchanged, ok := actions[0].(UnchangedAction)
	require.True(t, ok)
	assert.Equal(t, "T-1", unchanged.SpecID)
}

func TestPlanMarksUpdateWhenTitleDiffers(t *testing.T) {
	specs := []*spec.TaskSpec{sampleSpec("T-1", "Updated title")}
	existing := []ports.Issue{{ID: "ISS-1", Title: "[T-1] Old title", Body: IssueBody(specs[0])}}

	actions := PlanSync(specs, existing)
	require.Len(t, actions, 1)
	update, ok := actions[0].(UpdateAction)
	require.True(t, ok)
	assert.Equal(t, "T-1", update.SpecID)
}

func TestPlanMarksUpdateWhenBodyDiffers(t *testing.T) {
	specs := []*spec.TaskSpec{sampleSpec("T-1", "First task")}
	existing := []ports.Issue{{ID: "ISS-1", Title: "[T-1] First task", Body: "old body"}}

	actions := PlanSync(specs, existing)
	require.Len(t, actions, 1)
	_, ok := actions[0].(UpdateAction)
	assert.True(t, ok)
}

func TestIssueBodyIncludesDependencies(t *testing.T) {
	s := sampleSpecWithDeps("T-1", "Task with deps", []string{"T-0", "T-2"})
	body := IssueBody(s)
	assert.Contains(t, body, "## Dependencies")
	assert.Contains(t, body, "- T-0")
	assert.Contains(t, body, "- T-2")
}

func TestFormatActionsShowsAllTypes(t *testing.T) {
	actions := []SyncAction{
		CreateAction{SpecID: "T-1", Title: "[T-1] New"},
		UpdateAction{SpecID: "T-2", IssueID: "ISS-2", Title: "[T-2] Changed"},
		UnchangedAction{SpecID: "T-3", IssueID: "ISS-3"},
	}
	output := FormatActions(actions)
	assert.Contains(t, output, "CREATE T-1")
	assert.Contains(t, output, "UPDATE T-2")
	assert.Contains(t, output, "UNCHANGED T-3")
}

func TestFormatActionsEmpty(t *testing.T) {
	assert.Equal(t, "No specs to sync.", FormatActions(nil))
}

type recordingIssueTracker struct {
	created []string
	updated []string
}

func (r *recordingIssueTracker) CreateIssue(title, body string) (ports.Issue, error) {
	r.created = append(r.created, title)
	return ports.Issue{ID: "NEW-1", Title: title, Body: body}, nil
}

func (r *recordingIssueTracker) UpdateIssue(id string, update ports.IssueUpdate) (ports.Issue, error) {
	r.updated = append(r.updated, id)
	return ports.Issue{ID: id}, nil
}

func (r *recordingIssueTracker) ListIssues(status *string) ([]ports.Issue, error) {
	return nil, nil
}

func TestExecuteSyncDispatchesByActionType(t *testing.T) {
	specs := []*spec.TaskSpec{sampleSpec("T-1", "First"), sampleSpec("T-2", "Second")}
	actions := []SyncAction{
		CreateAction{SpecID: "T-1", Title: "[T-1] First"},
		UpdateAction{SpecID: "T-2", IssueID: "ISS-2", Title: "[T-2] Second"},
	}

	tracker := &recordingIssueTracker{}
	require.NoError(t, ExecuteSync(tracker, specs, actions))
	assert.Equal(t, []string{"[T-1] First"}, tracker.created)
	assert.Equal(t, []string{"ISS-2"}, tracker.updated)
}
