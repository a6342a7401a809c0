package validate

import "github.com/thirukguru/relnotes/model"

// Rule codes attached to validation issues. Stable so stored history can be
// filtered by rule across releases of this tool.
const (
	RuleDupVersion       = "dup-version"
	RuleBadVersion       = "bad-version"
	RuleBadDate          = "bad-date"
	RuleBadSHA           = "bad-sha"
	RuleDupSHA           = "dup-sha"
	RuleNegativeCount    = "negative-count"
	RuleBadType          = "bad-type"
	RuleEmptyDescription = "empty-description"
	RuleOrphanPR         = "orphan-pr"
	RuleBreakingMismatch = "breaking-mismatch"
)

type service struct{}

// Service checks a loaded corpus against the record-schema invariants.
type Service interface {
	Check(releases []model.Release) []model.Issue
	Summarize(issues []model.Issue) model.IssueSummary
}
