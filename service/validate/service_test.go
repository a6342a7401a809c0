package validate

import (
	"strings"
	"testing"

	"github.com/thirukguru/relnotes/model"
)

func intPtr(n int) *int { return &n }

func cleanRelease() model.Release {
	return model.Release{
		Version:    "0.13.1",
		Date:       "2021-04-29",
		SourceFile: "releases/0.13.1.cue",
		Changelog: []model.ChangelogEntry{
			{Type: "fix", Scopes: []string{"sinks"}, Description: "Fix ack handling", PRNumbers: []int{7266}},
		},
		Commits: []model.Commit{
			{
				SHA:             "38f9b78aa693b941be33d33b7520fe3821d15df6",
				Date:            "2021-04-29 09:10:22 +0000",
				Description:     "fix(sinks): fix ack handling",
				PRNumber:        intPtr(7266),
				Type:            "fix",
				Author:          "Jane Doe",
				FilesCount:      1,
				InsertionsCount: 5,
				DeletionsCount:  2,
			},
		},
	}
}

func rulesOf(issues []model.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Rule)
	}
	return out
}

func requireRule(t *testing.T, issues []model.Issue, rule, severity string) model.Issue {
	t.Helper()
	for _, i := range issues {
		if i.Rule == rule {
			if i.Severity != severity {
				t.Fatalf("rule %s has severity %s, want %s", rule, i.Severity, severity)
			}
			return i
		}
	}
	t.Fatalf("expected rule %s in %v", rule, rulesOf(issues))
	return model.Issue{}
}

func TestCheckCleanCorpus(t *testing.T) {
	issues := NewService().Check([]model.Release{cleanRelease()})
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", rulesOf(issues))
	}
}

func TestCheckDuplicateVersionAcrossFiles(t *testing.T) {
	a := cleanRelease()
	b := cleanRelease()
	b.SourceFile = "releases/copy/0.13.1.cue"
	b.Commits = nil
	b.Changelog = nil

	issues := NewService().Check([]model.Release{a, b})
	got := requireRule(t, issues, RuleDupVersion, model.SeverityError)
	if !strings.Contains(got.Message, "releases/0.13.1.cue") {
		t.Fatalf("message should name the first file: %s", got.Message)
	}
}

func TestCheckVersionAndDateShape(t *testing.T) {
	rel := cleanRelease()
	rel.Version = "0.13"
	rel.Date = "April 29th"
	rel.SourceFile = ""

	issues := NewService().Check([]model.Release{rel})
	requireRule(t, issues, RuleBadVersion, model.SeverityError)
	requireRule(t, issues, RuleBadDate, model.SeverityError)
}

func TestCheckVersionFileMismatch(t *testing.T) {
	rel := cleanRelease()
	rel.SourceFile = "releases/0.13.0.cue"

	issues := NewService().Check([]model.Release{rel})
	requireRule(t, issues, RuleBadVersion, model.SeverityError)
}

func TestCheckCommitInvariants(t *testing.T) {
	rel := cleanRelease()
	rel.Commits = append(rel.Commits, model.Commit{
		SHA:             "NOT-A-SHA",
		Date:            "yesterday",
		Description:     " ",
		Type:            "wip",
		FilesCount:      -1,
		InsertionsCount: 3,
		DeletionsCount:  0,
	})

	issues := NewService().Check([]model.Release{rel})
	requireRule(t, issues, RuleBadSHA, model.SeverityError)
	requireRule(t, issues, RuleBadDate, model.SeverityError)
	requireRule(t, issues, RuleBadType, model.SeverityError)
	requireRule(t, issues, RuleEmptyDescription, model.SeverityError)
	requireRule(t, issues, RuleNegativeCount, model.SeverityError)
}

func TestCheckDuplicateSHAAcrossReleases(t *testing.T) {
	newer := cleanRelease()
	older := cleanRelease()
	older.Version = "0.13.0"
	older.SourceFile = "releases/0.13.0.cue"
	older.Changelog = nil

	issues := NewService().Check([]model.Release{newer, older})
	got := requireRule(t, issues, RuleDupSHA, model.SeverityError)
	if got.Version != "0.13.0" {
		t.Fatalf("duplicate should be reported on the second release, got %s", got.Version)
	}
}

func TestCheckRFC3339CommitDateAccepted(t *testing.T) {
	rel := cleanRelease()
	rel.Commits[0].Date = "2021-04-29T09:10:22Z"
	if issues := NewService().Check([]model.Release{rel}); len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", rulesOf(issues))
	}
}

func TestCheckOrphanPRIsWarning(t *testing.T) {
	rel := cleanRelease()
	rel.Changelog[0].PRNumbers = []int{9999}

	issues := NewService().Check([]model.Release{rel})
	requireRule(t, issues, RuleOrphanPR, model.SeverityWarning)
}

func TestCheckBreakingMismatchIsWarning(t *testing.T) {
	rel := cleanRelease()
	rel.Changelog[0].Breaking = true

	issues := NewService().Check([]model.Release{rel})
	requireRule(t, issues, RuleBreakingMismatch, model.SeverityWarning)

	// With a matching breaking commit the warning goes away.
	rel.Commits[0].BreakingChange = true
	if issues := NewService().Check([]model.Release{rel}); len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", rulesOf(issues))
	}
}

func TestSummarize(t *testing.T) {
	issues := []model.Issue{
		{Severity: model.SeverityError},
		{Severity: model.SeverityError},
		{Severity: model.SeverityWarning},
	}
	sum := NewService().Summarize(issues)
	if sum.Errors != 2 || sum.Warnings != 1 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}
