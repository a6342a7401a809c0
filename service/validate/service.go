// Package validate checks release records against the invariants of the
// record schema: unique version keys, globally unique commit SHAs,
// well-formed dates and identifiers, non-negative diff statistics, and the
// cross-references between curated changelog entries and the raw commit log.
package validate

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/thirukguru/relnotes/model"
)

// Commit timestamps appear in two layouts across the corpus; the generator
// switched formats around 0.9.
var commitDateLayouts = []string{
	"2006-01-02 15:04:05 -0700",
	time.RFC3339,
}

// NewService creates a new validation service.
func NewService() Service {
	return &service{}
}

// Check runs every rule against the corpus. Input order is preserved in the
// output: issues are grouped by release, newest release first.
func (s *service) Check(releases []model.Release) []model.Issue {
	var issues []model.Issue

	seenVersions := map[string]string{}
	seenSHAs := map[string]string{}

	for _, rel := range releases {
		if prev, ok := seenVersions[rel.Version]; ok {
			issues = append(issues, model.Issue{
				Severity: model.SeverityError,
				Rule:     RuleDupVersion,
				Version:  rel.Version,
				Ref:      rel.SourceFile,
				Message:  fmt.Sprintf("version %s already defined in %s", rel.Version, prev),
			})
		} else {
			seenVersions[rel.Version] = rel.SourceFile
		}

		issues = append(issues, s.checkRelease(rel)...)
		issues = append(issues, s.checkCommits(rel, seenSHAs)...)
		issues = append(issues, s.checkCrossReferences(rel)...)
	}

	return issues
}

// Summarize tallies issues by severity.
func (s *service) Summarize(issues []model.Issue) model.IssueSummary {
	var sum model.IssueSummary
	for _, issue := range issues {
		switch issue.Severity {
		case model.SeverityError:
			sum.Errors++
		case model.SeverityWarning:
			sum.Warnings++
		}
	}
	return sum
}

func (s *service) checkRelease(rel model.Release) []model.Issue {
	var issues []model.Issue

	if _, _, _, err := model.ParseVersion(rel.Version); err != nil {
		issues = append(issues, issue(model.SeverityError, RuleBadVersion, rel.Version, "",
			fmt.Sprintf("version key %q is not MAJOR.MINOR.PATCH", rel.Version)))
	} else if rel.SourceFile != "" {
		base := strings.TrimSuffix(filepath.Base(rel.SourceFile), ".cue")
		if base != rel.Version {
			issues = append(issues, issue(model.SeverityError, RuleBadVersion, rel.Version, rel.SourceFile,
				fmt.Sprintf("version %s recorded in file %s", rel.Version, filepath.Base(rel.SourceFile))))
		}
	}

	if _, err := time.Parse("2006-01-02", rel.Date); err != nil {
		issues = append(issues, issue(model.SeverityError, RuleBadDate, rel.Version, "",
			fmt.Sprintf("release date %q is not YYYY-MM-DD", rel.Date)))
	}

	for i, entry := range rel.Changelog {
		ref := fmt.Sprintf("changelog[%d]", i)
		if !slices.Contains(model.ChangelogTypes, entry.Type) {
			issues = append(issues, issue(model.SeverityError, RuleBadType, rel.Version, ref,
				fmt.Sprintf("changelog type %q is not one of %s", entry.Type, strings.Join(model.ChangelogTypes, "|"))))
		}
		if strings.TrimSpace(entry.Description) == "" {
			issues = append(issues, issue(model.SeverityError, RuleEmptyDescription, rel.Version, ref,
				"changelog entry has an empty description"))
		}
	}

	return issues
}

func (s *service) checkCommits(rel model.Release, seenSHAs map[string]string) []model.Issue {
	var issues []model.Issue

	for i, c := range rel.Commits {
		ref := shortSHA(c.SHA, i)

		if !isSHA(c.SHA) {
			issues = append(issues, issue(model.SeverityError, RuleBadSHA, rel.Version, ref,
				fmt.Sprintf("sha %q is not 40 hex characters", c.SHA)))
		} else if prev, ok := seenSHAs[c.SHA]; ok {
			issues = append(issues, issue(model.SeverityError, RuleDupSHA, rel.Version, ref,
				fmt.Sprintf("commit %s already recorded in release %s", c.SHA, prev)))
		} else {
			seenSHAs[c.SHA] = rel.Version
		}

		if !parseAnyDate(c.Date) {
			issues = append(issues, issue(model.SeverityError, RuleBadDate, rel.Version, ref,
				fmt.Sprintf("commit timestamp %q is not parseable", c.Date)))
		}
		if !slices.Contains(model.CommitTypes, c.Type) {
			issues = append(issues, issue(model.SeverityError, RuleBadType, rel.Version, ref,
				fmt.Sprintf("commit type %q is not one of %s", c.Type, strings.Join(model.CommitTypes, "|"))))
		}
		if strings.TrimSpace(c.Description) == "" {
			issues = append(issues, issue(model.SeverityError, RuleEmptyDescription, rel.Version, ref,
				"commit has an empty description"))
		}
		if c.FilesCount < 0 || c.InsertionsCount < 0 || c.DeletionsCount < 0 {
			issues = append(issues, issue(model.SeverityError, RuleNegativeCount, rel.Version, ref,
				fmt.Sprintf("negative diff statistics: files=%d insertions=%d deletions=%d",
					c.FilesCount, c.InsertionsCount, c.DeletionsCount)))
		}
	}

	return issues
}

// checkCrossReferences verifies the curated changelog against the raw commit
// log inside one release. The published corpus is known to violate both
// rules occasionally, so they report as warnings.
func (s *service) checkCrossReferences(rel model.Release) []model.Issue {
	var issues []model.Issue

	commitPRs := map[int]bool{}
	hasBreakingCommit := false
	for _, c := range rel.Commits {
		if c.PRNumber != nil {
			commitPRs[*c.PRNumber] = true
		}
		if c.BreakingChange {
			hasBreakingCommit = true
		}
	}

	for i, entry := range rel.Changelog {
		ref := fmt.Sprintf("changelog[%d]", i)
		for _, pr := range entry.PRNumbers {
			if !commitPRs[pr] {
				issues = append(issues, issue(model.SeverityWarning, RuleOrphanPR, rel.Version, ref,
					fmt.Sprintf("pr_numbers references #%d but no commit in %s carries that pr_number", pr, rel.Version)))
			}
		}
		if entry.Breaking && !hasBreakingCommit {
			issues = append(issues, issue(model.SeverityWarning, RuleBreakingMismatch, rel.Version, ref,
				fmt.Sprintf("changelog entry is breaking but no commit in %s has breaking_change: true", rel.Version)))
		}
	}

	return issues
}

func issue(severity, rule, version, ref, message string) model.Issue {
	return model.Issue{Severity: severity, Rule: rule, Version: version, Ref: ref, Message: message}
}

func isSHA(sha string) bool {
	if len(sha) != 40 {
		return false
	}
	for _, r := range sha {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

func parseAnyDate(value string) bool {
	for _, layout := range commitDateLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}

func shortSHA(sha string, index int) string {
	if len(sha) >= 8 {
		return "commit " + sha[:8]
	}
	return fmt.Sprintf("commit[%d]", index)
}
