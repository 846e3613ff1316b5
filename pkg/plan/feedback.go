package plan

import (
	"fmt"

	"github.com/ozten/speck/pkg/validate"
)

// FailureType is the action a classified failure calls for.
type FailureType struct {
	// Exactly one of FixHint or RevisionHint is set, matching which of
	// ImplementationFailure/SpecFlaw validate.ClassifyFailure produced.
	FixHint      string
	RevisionHint string
}

// IsImplementationFailure reports whether this failure calls for fixing
// the code rather than revising the spec.
func (f FailureType) IsImplementationFailure() bool { return f.FixHint != "" }

// ClassifiedFailure pairs a failed check with the action it calls for.
type ClassifiedFailure struct {
	CheckName   string
	FailureType FailureType
	Detail      string
}

// FeedbackClassification is the result of classifying every failed check
// in a validate.ValidationResult.
type FeedbackClassification struct {
	SpecID   string
	Failures []ClassifiedFailure
}

// AllImplementationFailures reports whether every failure is something
// the agent can fix by writing more code.
func (c FeedbackClassification) AllImplementationFailures() bool {
	if len(c.Failures) == 0 {
		return false
	}
	for _, f := range c.Failures {
		if !f.FailureType.IsImplementationFailure() {
			return false
		}
	}
	return true
}

// HasSpecFlaws reports whether any failure calls for revising the spec.
func (c FeedbackClassification) HasSpecFlaws() bool {
	for _, f := range c.Failures {
		if !f.FailureType.IsImplementationFailure() {
			return true
		}
	}
	return false
}

// ImplementationFailures returns the subset of failures the agent should
// fix by writing more code.
func (c FeedbackClassification) ImplementationFailures() []ClassifiedFailure {
	var out []ClassifiedFailure
	for _, f := range c.Failures {
		if f.FailureType.IsImplementationFailure() {
			out = append(out, f)
		}
	}
	return out
}

// SpecFlaws returns the subset of failures that call for revising the
// spec.
func (c FeedbackClassification) SpecFlaws() []ClassifiedFailure {
	var out []ClassifiedFailure
	for _, f := range c.Failures {
		if !f.FailureType.IsImplementationFailure() {
			out = append(out, f)
		}
	}
	return out
}

// ClassifyFailures classifies every failed check in result as an
// implementation failure or a spec flaw, using the same
// validate.ClassifyFailure heuristic that underlies `speck validate`'s
// own reporting: executable checks are implementation failures, drift and
// manual-review checks are spec flaws.
func ClassifyFailures(result validate.ValidationResult) FeedbackClassification {
	failed := result.FailedChecks()
	failures := make([]ClassifiedFailure, len(failed))

	for i, check := range failed {
		var ft FailureType
		switch validate.ClassifyFailure(check) {
		case validate.ImplementationFailure:
			ft = FailureType{FixHint: fmt.Sprintf(
				"Check '%s' failed (%s). Fix the implementation to pass this check.",
				check.Name, check.Message,
			)}
		case validate.SpecFlaw:
			ft = FailureType{RevisionHint: specFlawHint(check)}
		}

		failures[i] = ClassifiedFailure{CheckName: check.Name, FailureType: ft, Detail: check.Message}
	}

	return FeedbackClassification{SpecID: result.SpecID, Failures: failures}
}

// specFlawHint tailors the revision hint to the check's category, mirroring
// drift-specific vs. manual-review-specific phrasing.
func specFlawHint(check validate.CheckResult) string {
	if check.Category == validate.CategoryDrift {
		return fmt.Sprintf(
			"Codebase drift detected for '%s'. Run `speck plan` to update the spec against the current codebase.",
			check.Name,
		)
	}
	return fmt.Sprintf(
		"Check '%s' requires manual review and cannot be automated. Consider revising the verification strategy to use executable checks.",
		check.Name,
	)
}

// SpecRevision is a proposed revision to a spec based on validation
// feedback.
type SpecRevision struct {
	SpecID    string
	CheckName string
	Action    string
}

// ProposeRevisions turns every spec flaw in classification into a
// proposed revision.
func ProposeRevisions(classification FeedbackClassification) []SpecRevision {
	flaws := classification.SpecFlaws()
	revisions := make([]SpecRevision, len(flaws))
	for i, flaw := range flaws {
		revisions[i] = SpecRevision{
			SpecID:    classification.SpecID,
			CheckName: flaw.CheckName,
			Action:    flaw.FailureType.RevisionHint,
		}
	}
	return revisions
}
