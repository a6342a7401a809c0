package markdown

import (
	"strings"
	"testing"

	"github.com/thirukguru/relnotes/model"
)

func TestRenderReleaseFullPage(t *testing.T) {
	rel := model.Release{
		Version:     "0.13.0",
		Date:        "2021-04-21",
		Codename:    "The Long Road",
		Description: "This release includes a new journald source.",
		KnownIssues: []string{"Regression in sink acknowledgement handling."},
		WhatsNext: []model.WhatsNextEntry{
			{Title: "End-to-end acknowledgements", Description: "Acks will flow back to sources."},
		},
		Changelog: []model.ChangelogEntry{
			{Type: "fix", Scopes: []string{"config"}, Description: "Handle empty sections", Breaking: true, PRNumbers: []int{7002}},
			{Type: "feat", Scopes: []string{"sources"}, Description: "New journald source", PRNumbers: []int{7001}, Contributors: []string{"octocat"}},
		},
	}
	stats := model.ReleaseStats{CommitCount: 2, FilesCount: 14, InsertionsCount: 850, DeletionsCount: 7, AuthorCount: 2}

	out := RenderRelease(rel, stats)

	for _, want := range []string{
		"# Release 0.13.0 - The Long Road",
		"Released 2021-04-21.",
		"2 commits, 14 files changed, +850/-7 lines, 2 contributors.",
		"## Changelog",
		"### New features",
		"- `sources`: New journald source (#7001), thanks @octocat",
		"### Bug fixes",
		"- **breaking** `config`: Handle empty sections (#7002)",
		"## Known issues",
		"## What's next",
		"### End-to-end acknowledgements",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}

	// feat section renders before fix, regardless of input order.
	if strings.Index(out, "### New features") > strings.Index(out, "### Bug fixes") {
		t.Fatalf("section order wrong:\n%s", out)
	}
}

func TestRenderCorpusDocument(t *testing.T) {
	releases := []model.Release{
		{Version: "0.13.1", Date: "2021-04-29", Commits: []model.Commit{{SHA: strings.Repeat("a", 40)}}},
		{Version: "0.13.0", Date: "2021-04-21", Commits: []model.Commit{{SHA: strings.Repeat("b", 40)}, {SHA: strings.Repeat("c", 40)}}},
	}
	stats := []model.ReleaseStats{
		{Version: "0.13.1", CommitCount: 1},
		{Version: "0.13.0", CommitCount: 2},
	}

	out := RenderCorpus(releases, stats)

	for _, want := range []string{
		"# Release notes",
		"2 releases, 3 commits.",
		"# Release 0.13.1",
		"# Release 0.13.0",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Index(out, "# Release 0.13.1") > strings.Index(out, "# Release 0.13.0") {
		t.Fatalf("release order not preserved:\n%s", out)
	}
}

func TestRenderReleaseMinimal(t *testing.T) {
	out := RenderRelease(model.Release{Version: "0.1.0", Date: "2020-01-01"}, model.ReleaseStats{})
	if !strings.HasPrefix(out, "# Release 0.1.0\n") {
		t.Fatalf("unexpected title:\n%s", out)
	}
	if strings.Contains(out, "## Changelog") || strings.Contains(out, "## Known issues") {
		t.Fatalf("empty sections should be omitted:\n%s", out)
	}
}
