package cueformat

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/thirukguru/relnotes/model"
	"github.com/thirukguru/relnotes/service/corpus"
)

func intPtr(n int) *int { return &n }

func fullRelease() model.Release {
	return model.Release{
		Version:     "0.13.0",
		Date:        "2021-04-21",
		Codename:    "The Long Road",
		Description: "This release includes a new journald source.\n\nSee the highlights below.",
		KnownIssues: []string{"Regression in sink acknowledgement handling, fixed in 0.13.1."},
		WhatsNext: []model.WhatsNextEntry{
			{Title: "End-to-end acknowledgements", Description: "Acks will flow from sinks back to sources."},
		},
		Changelog: []model.ChangelogEntry{
			{Type: "feat", Scopes: []string{"sources"}, Description: "New journald source", PRNumbers: []int{7001}, Contributors: []string{"octocat"}},
			{Type: "fix", Scopes: []string{"config"}, Description: "Handle empty config sections", Breaking: true, PRNumbers: []int{7002}},
		},
		Commits: []model.Commit{
			{SHA: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Date: "2021-04-20 11:00:00 +0000",
				Description: "new journald source", PRNumber: intPtr(7001), Scopes: []string{"sources"},
				Type: "feat", Author: "octocat", FilesCount: 12, InsertionsCount: 840, DeletionsCount: 3},
			{SHA: "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", Date: "2021-04-20 15:30:00 +0000",
				Description: "handle empty config sections", Type: "fix", BreakingChange: true, Author: "Jane Doe",
				FilesCount: 2, InsertionsCount: 10, DeletionsCount: 4},
		},
	}
}

func TestWriteReleaseRoundTrip(t *testing.T) {
	want := fullRelease()

	var sb strings.Builder
	if err := WriteRelease(&sb, want); err != nil {
		t.Fatalf("WriteRelease failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "0.13.0.cue")
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	releases, err := corpus.NewService().LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile of emitted CUE failed: %v\n%s", err, sb.String())
	}
	if len(releases) != 1 {
		t.Fatalf("expected 1 release, got %d", len(releases))
	}

	got := releases[0]
	got.SourceFile = ""
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\ngot:  %+v\nwant: %+v", got, want)
	}
}

func TestWriteReleaseNullPRNumber(t *testing.T) {
	rel := model.Release{
		Version: "0.1.0",
		Date:    "2020-01-01",
		Commits: []model.Commit{
			{SHA: strings.Repeat("c", 40), Date: "2020-01-01 00:00:00 +0000", Description: "initial import", Type: "chore", Author: "a"},
		},
	}

	var sb strings.Builder
	if err := WriteRelease(&sb, rel); err != nil {
		t.Fatalf("WriteRelease failed: %v", err)
	}
	if !strings.Contains(sb.String(), "pr_number: null") {
		t.Fatalf("expected null pr_number in:\n%s", sb.String())
	}
}

func TestWriteReleaseOmitsEmptySections(t *testing.T) {
	rel := model.Release{Version: "0.1.0", Date: "2020-01-01"}

	var sb strings.Builder
	if err := WriteRelease(&sb, rel); err != nil {
		t.Fatalf("WriteRelease failed: %v", err)
	}
	out := sb.String()
	for _, absent := range []string{"codename", "known_issues", "whats_next", "changelog:"} {
		if strings.Contains(out, absent) {
			t.Fatalf("expected %q to be omitted:\n%s", absent, out)
		}
	}
}
