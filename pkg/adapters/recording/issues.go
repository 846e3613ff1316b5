package recording

import (
	"github.com/ozten/speck/pkg/cassette"
	"github.com/ozten/speck/pkg/ports"
)

// IssueTracker records every call while delegating to inner.
type IssueTracker struct {
	inner    ports.IssueTracker
	recorder *cassette.Recorder
}

// NewIssueTracker wraps inner with a recorder writing to r.
func NewIssueTracker(inner ports.IssueTracker, r *cassette.Recorder) IssueTracker {
	return IssueTracker{inner: inner, recorder: r}
}

type createIssueInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// CreateIssue creates an issue via inner and records the interaction.
func (t IssueTracker) CreateIssue(title, body string) (ports.Issue, error) {
	result, err := t.inner.CreateIssue(title, body)
	recordResult(t.recorder, "issues", "create_issue", createIssueInput{Title: title, Body: body}, result, err)
	return result, err
}

type updateIssueInput struct {
	ID     string  `json:"id"`
	Title  *string `json:"title"`
	Body   *string `json:"body"`
	Status *string `json:"status"`
}

// UpdateIssue updates an issue via inner and records the interaction.
func (t IssueTracker) UpdateIssue(id string, update ports.IssueUpdate) (ports.Issue, error) {
	result, err := t.inner.UpdateIssue(id, update)
	input := updateIssueInput{ID: id, Title: update.Title, Body: update.Body, Status: update.Status}
	recordResult(t.recorder, "issues", "update_issue", input, result, err)
	return result, err
}

type listIssuesInput struct {
	Status *string `json:"status"`
}

// ListIssues lists issues via inner and records the interaction.
func (t IssueTracker) ListIssues(status *string) ([]ports.Issue, error) {
	result, err := t.inner.ListIssues(status)
	recordResult(t.recorder, "issues", "list_issues", listIssuesInput{Status: status}, result, err)
	return result, err
}
