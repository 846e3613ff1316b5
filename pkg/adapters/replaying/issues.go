package replaying

import (
	"github.com/ozten/speck/pkg/cassette"
	"github.com/ozten/speck/pkg/ports"
)

// IssueTracker serves recorded issue tracker results from a cassette.
type IssueTracker struct {
	replayer *cassette.Replayer
}

// NewIssueTracker returns an IssueTracker backed by replayer.
func NewIssueTracker(replayer *cassette.Replayer) IssueTracker {
	return IssueTracker{replayer: replayer}
}

// UnconfiguredIssueTracker returns an IssueTracker with no cassette; any call panics.
func UnconfiguredIssueTracker() IssueTracker {
	return IssueTracker{}
}

// CreateIssue returns the next recorded create result; title and body are ignored.
func (t IssueTracker) CreateIssue(title, body string) (ports.Issue, error) {
	output := nextOutput(t.replayer, "issues", "create_issue")
	var result ports.Issue
	err := decodeResult(output, &result)
	return result, err
}

// UpdateIssue returns the next recorded update result; id and update are ignored.
func (t IssueTracker) UpdateIssue(id string, update ports.IssueUpdate) (ports.Issue, error) {
	output := nextOutput(t.replayer, "issues", "update_issue")
	var result ports.Issue
	err := decodeResult(output, &result)
	return result, err
}

// ListIssues returns the next recorded listing; status is ignored.
func (t IssueTracker) ListIssues(status *string) ([]ports.Issue, error) {
	output := nextOutput(t.replayer, "issues", "list_issues")
	var result []ports.Issue
	err := decodeResult(output, &result)
	return result, err
}
