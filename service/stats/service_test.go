package stats

import (
	"testing"

	"github.com/thirukguru/relnotes/model"
)

func testReleases() []model.Release {
	return []model.Release{
		{
			Version: "0.13.1",
			Commits: []model.Commit{
				{SHA: "a", Type: "fix", Author: "Jane Doe", Scopes: []string{"sinks"}, FilesCount: 1, InsertionsCount: 5, DeletionsCount: 2},
			},
		},
		{
			Version: "0.13.0",
			Changelog: []model.ChangelogEntry{
				{Type: "feat", Scopes: []string{"sources"}},
			},
			Commits: []model.Commit{
				{SHA: "b", Type: "feat", Author: "octocat", Scopes: []string{"sources"}, FilesCount: 12, InsertionsCount: 840, DeletionsCount: 3, BreakingChange: true},
				{SHA: "c", Type: "fix", Author: "Jane Doe", Scopes: []string{"config"}, FilesCount: 2, InsertionsCount: 10, DeletionsCount: 4},
				{SHA: "d", Type: "chore", Author: "octocat", Scopes: []string{"sources"}, FilesCount: 1, InsertionsCount: 1, DeletionsCount: 1},
			},
		},
	}
}

func TestPerRelease(t *testing.T) {
	stats := NewService().PerRelease(testReleases())
	if len(stats) != 2 {
		t.Fatalf("expected 2 stats rows, got %d", len(stats))
	}
	if stats[0].Version != "0.13.1" || stats[0].CommitCount != 1 || stats[0].AuthorCount != 1 {
		t.Fatalf("unexpected 0.13.1 stats: %+v", stats[0])
	}

	older := stats[1]
	if older.CommitCount != 3 || older.BreakingCount != 1 || older.AuthorCount != 2 {
		t.Fatalf("unexpected 0.13.0 stats: %+v", older)
	}
	if older.FilesCount != 15 || older.InsertionsCount != 851 || older.DeletionsCount != 8 {
		t.Fatalf("unexpected diff totals: %+v", older)
	}
	if older.CommitsByType["feat"] != 1 || older.CommitsByType["fix"] != 1 || older.CommitsByType["chore"] != 1 {
		t.Fatalf("unexpected type breakdown: %+v", older.CommitsByType)
	}
}

func TestTopContributors(t *testing.T) {
	top := NewService().TopContributors(testReleases(), 10)
	if len(top) != 2 {
		t.Fatalf("expected 2 contributors, got %d", len(top))
	}
	// Equal counts, alphabetical tiebreak.
	if top[0].Name != "Jane Doe" || top[0].Count != 2 || top[1].Name != "octocat" || top[1].Count != 2 {
		t.Fatalf("unexpected leaderboard: %+v", top)
	}

	if limited := NewService().TopContributors(testReleases(), 1); len(limited) != 1 {
		t.Fatalf("limit not applied: %+v", limited)
	}
}

func TestTopScopesCountsChangelogToo(t *testing.T) {
	top := NewService().TopScopes(testReleases(), 10)
	if top[0].Name != "sources" || top[0].Count != 3 {
		t.Fatalf("expected sources x3 first (2 commits + 1 changelog entry), got %+v", top)
	}
}
