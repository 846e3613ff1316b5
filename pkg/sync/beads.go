// Package sync bridges task specs to an external issue tracker. Sync is
// idempotent: re-running it against the same specs and existing issues
// produces no duplicate issues. Issues are matched to specs by the
// spec ID prefix ("[SPEC-ID]") carried in the issue title.
package sync

import (
	"fmt"
	"strings"

	"github.com/ozten/speck/pkg/ports"
	"github.com/ozten/speck/pkg/spec"
)

// SyncAction describes what a sync will do, or did, for a single spec.
type SyncAction interface {
	specID() string
}

// CreateAction means a new issue will be created for SpecID.
type CreateAction struct {
	SpecID string
	Title  string
}

func (a CreateAction) specID() string { return a.SpecID }

// UpdateAction means an existing issue's title/body is out of date.
type UpdateAction struct {
	SpecID  string
	IssueID string
	Title   string
}

func (a UpdateAction) specID() string { return a.SpecID }

// UnchangedAction means the matching issue is already up to date.
type UnchangedAction struct {
	SpecID  string
	IssueID string
}

func (a UnchangedAction) specID() string { return a.SpecID }

// IssueTitle builds the issue title for a task spec.
func IssueTitle(ts *spec.TaskSpec) string {
	return fmt.Sprintf("[%s] %s", ts.ID, ts.Title)
}

// IssueBody builds the issue body for a task spec, including acceptance
// criteria and dependency information.
func IssueBody(ts *spec.TaskSpec) string {
	var b strings.Builder
	b.WriteString("## Acceptance Criteria\n")
	for _, criterion := range ts.AcceptanceCriteria {
		fmt.Fprintf(&b, "- %s\n", criterion)
	}

	if ts.Context != nil && len(ts.Context.Dependencies) > 0 {
		b.WriteString("\n## Dependencies\n")
		for _, dep := range ts.Context.Dependencies {
			fmt.Fprintf(&b, "- %s\n", dep)
		}
	}

	return b.String()
}

// findMatchingIssue finds an existing issue whose title starts with
// "[specID]".
func findMatchingIssue(specID string, issues []ports.Issue) (ports.Issue, bool) {
	prefix := "[" + specID + "]"
	for _, issue := range issues {
		if strings.HasPrefix(issue.Title, prefix) {
			return issue, true
		}
	}
	return ports.Issue{}, false
}

// PlanSync plans sync actions for a list of task specs against a set of
// existing issues.
func PlanSync(specs []*spec.TaskSpec, existingIssues []ports.Issue) []SyncAction {
	actions := make([]SyncAction, 0, len(specs))
	for _, ts := range specs {
		existing, ok := findMatchingIssue(ts.ID, existingIssues)
		if !ok {
			actions = append(actions, CreateAction{SpecID: ts.ID, Title: IssueTitle(ts)})
			continue
		}

		newTitle := IssueTitle(ts)
		newBody := IssueBody(ts)
		if existing.Title == newTitle && existing.Body == newBody {
			actions = append(actions, UnchangedAction{SpecID: ts.ID, IssueID: existing.ID})
		} else {
			actions = append(actions, UpdateAction{SpecID: ts.ID, IssueID: existing.ID, Title: newTitle})
		}
	}
	return actions
}

// ExecuteSync executes planned sync actions against issues. Every
// action's SpecID must appear in specs; this is guaranteed when actions
// come from PlanSync.
func ExecuteSync(issues ports.IssueTracker, specs []*spec.TaskSpec, actions []SyncAction) error {
	findSpec := func(id string) *spec.TaskSpec {
		for _, s := range specs {
			if s.ID == id {
				return s
			}
		}
		panic("sync: action references unknown spec " + id)
	}

	for _, action := range actions {
		switch a := action.(type) {
		case CreateAction:
			ts := findSpec(a.SpecID)
			if _, err := issues.CreateIssue(IssueTitle(ts), IssueBody(ts)); err != nil {
				return fmt.Errorf("failed to create issue for %s: %w", a.SpecID, err)
			}
		case UpdateAction:
			ts := findSpec(a.SpecID)
			title := IssueTitle(ts)
			body := IssueBody(ts)
			if _, err := issues.UpdateIssue(a.IssueID, ports.IssueUpdate{Title: &title, Body: &body}); err != nil {
				return fmt.Errorf("failed to update issue for %s: %w", a.SpecID, err)
			}
		case UnchangedAction:
			// nothing to do
		}
	}
	return nil
}

// FormatActions formats sync actions as a human-readable report.
func FormatActions(actions []SyncAction) string {
	if len(actions) == 0 {
		return "No specs to sync."
	}

	lines := make([]string, 0, len(actions))
	for _, action := range actions {
		switch a := action.(type) {
		case CreateAction:
			lines = append(lines, fmt.Sprintf("  CREATE %s: %s", a.SpecID, a.Title))
		case UpdateAction:
			lines = append(lines, fmt.Sprintf("  UPDATE %s (issue %s): %s", a.SpecID, a.IssueID, a.Title))
		case UnchangedAction:
			lines = append(lines, fmt.Sprintf("  UNCHANGED %s (issue %s)", a.SpecID, a.IssueID))
		}
	}
	return strings.Join(lines, "\n")
}
