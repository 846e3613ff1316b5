package live

import (
	"errors"

	"github.com/ozten/speck/pkg/ports"
)

// ErrNotImplemented is returned by every IssueTracker method; no real
// tracker (GitHub, Jira, Linear, ...) is wired up yet.
var ErrNotImplemented = errors.New("live issue tracking not yet implemented")

// IssueTracker is a stub live adapter for the IssueTracker port.
type IssueTracker struct{}

// NewIssueTracker returns a stub live IssueTracker.
func NewIssueTracker() IssueTracker { return IssueTracker{} }

// CreateIssue always fails: live issue tracking not yet implemented.
func (IssueTracker) CreateIssue(title, body string) (ports.Issue, error) {
	return ports.Issue{}, ErrNotImplemented
}

// UpdateIssue always fails: live issue tracking not yet implemented.
func (IssueTracker) UpdateIssue(id string, update ports.IssueUpdate) (ports.Issue, error) {
	return ports.Issue{}, ErrNotImplemented
}

// ListIssues always fails: live issue tracking not yet implemented.
func (IssueTracker) ListIssues(status *string) ([]ports.Issue, error) {
	return nil, ErrNotImplemented
}
