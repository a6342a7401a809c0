// Package tests contains unit tests for the corpus validation service.
package tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirukguru/relnotes/model"
	"github.com/thirukguru/relnotes/service/validate"
)

func validRelease() model.Release {
	pr := 7266
	return model.Release{
		Version: "0.13.1",
		Date:    "2021-04-29",
		Commits: []model.Commit{
			{
				SHA:             "38f9b78aa693b941be33d33b7520fe3821d15df6",
				Date:            "2021-04-29 14:10:22 +0000",
				Description:     "fix concurrency default",
				PRNumber:        &pr,
				Type:            "fix",
				Author:          "Jane Dev",
				FilesCount:      3,
				InsertionsCount: 12,
				DeletionsCount:  4,
			},
		},
	}
}

// TestValidReleaseHasNoIssues tests that a well-formed record passes clean
func TestValidReleaseHasNoIssues(t *testing.T) {
	svc := validate.NewService()
	issues := svc.Check([]model.Release{validRelease()})
	assert.Empty(t, issues)

	summary := svc.Summarize(issues)
	assert.Equal(t, 0, summary.Errors)
	assert.Equal(t, 0, summary.Warnings)
}

// TestDuplicateSHAAcrossReleases tests the global commit uniqueness rule
func TestDuplicateSHAAcrossReleases(t *testing.T) {
	rel1 := validRelease()
	rel2 := validRelease()
	rel2.Version = "0.13.2"

	svc := validate.NewService()
	issues := svc.Check([]model.Release{rel1, rel2})

	found := false
	for _, is := range issues {
		if is.Rule == validate.RuleDupSHA {
			found = true
			assert.Equal(t, model.SeverityError, is.Severity)
		}
	}
	assert.True(t, found, "expected a duplicate sha issue")
}

// TestSeverityRules tests which rules report as errors vs warnings
func TestSeverityRules(t *testing.T) {
	tests := []struct {
		name         string
		mutate       func(*model.Release)
		wantRule     string
		wantSeverity string
	}{
		{
			name:         "bad version shape",
			mutate:       func(r *model.Release) { r.Version = "v0.13" },
			wantRule:     validate.RuleBadVersion,
			wantSeverity: model.SeverityError,
		},
		{
			name:         "bad release date",
			mutate:       func(r *model.Release) { r.Date = "April 29" },
			wantRule:     validate.RuleBadDate,
			wantSeverity: model.SeverityError,
		},
		{
			name:         "negative diff count",
			mutate:       func(r *model.Release) { r.Commits[0].DeletionsCount = -1 },
			wantRule:     validate.RuleNegativeCount,
			wantSeverity: model.SeverityError,
		},
		{
			name: "changelog pr without commit",
			mutate: func(r *model.Release) {
				r.Changelog = []model.ChangelogEntry{{Type: "fix", Description: "x", PRNumbers: []int{9999}}}
			},
			wantRule:     validate.RuleOrphanPR,
			wantSeverity: model.SeverityWarning,
		},
		{
			name: "breaking changelog without breaking commit",
			mutate: func(r *model.Release) {
				r.Changelog = []model.ChangelogEntry{{Type: "feat", Description: "x", Breaking: true}}
			},
			wantRule:     validate.RuleBreakingMismatch,
			wantSeverity: model.SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rel := validRelease()
			tt.mutate(&rel)

			svc := validate.NewService()
			issues := svc.Check([]model.Release{rel})
			require.NotEmpty(t, issues)

			var match *model.Issue
			for i := range issues {
				if issues[i].Rule == tt.wantRule {
					match = &issues[i]
					break
				}
			}
			require.NotNil(t, match, "expected rule %s in %+v", tt.wantRule, issues)
			assert.Equal(t, tt.wantSeverity, match.Severity)
		})
	}
}
