package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const releaseCue = `package metadata

releases: "0.13.1": {
	date: "2021-04-29"
	description: """
		This patch release contains a bug fix for a regression in 0.13.0.
		"""
	commits: [
		{sha: "38f9b78aa693b941be33d33b7520fe3821d15df6", date: "2021-04-29 09:10:22 +0000", description: "Fix sink acknowledgement handling", pr_number: 7266, scopes: ["sinks"], type: "fix", breaking_change: false, author: "Jane Doe", files_count: 1, insertions_count: 5, deletions_count: 2},
	]
}
`

const olderReleaseCue = `package metadata

releases: "0.13.0": {
	date:     "2021-04-21"
	codename: "The Long Road"
	known_issues: [
		"Regression in sink acknowledgement handling, fixed in 0.13.1.",
	]
	whats_next: [
		{title: "End-to-end acknowledgements", description: "Acks will flow from sinks back to sources."},
	]
	changelog: [
		{type: "feat", scopes: ["sources"], description: "New journald source", pr_numbers: [7001], contributors: ["octocat"]},
		{type: "fix", scopes: ["config"], description: "Handle empty config sections", breaking: false, pr_numbers: [7002]},
	]
	commits: [
		{sha: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", date: "2021-04-20 11:00:00 +0000", description: "feat(sources): new journald source", pr_number: 7001, scopes: ["sources"], type: "feat", breaking_change: false, author: "octocat", files_count: 12, insertions_count: 840, deletions_count: 3},
		{sha: "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", date: "2021-04-20 15:30:00 +0000", description: "fix(config): handle empty config sections", pr_number: null, scopes: ["config"], type: "fix", breaking_change: false, author: "Jane Doe", files_count: 2, insertions_count: 10, deletions_count: 4},
	]
}
`

func writeCorpus(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestLoadFileDecodesRecordUnchanged(t *testing.T) {
	dir := writeCorpus(t, map[string]string{"0.13.1.cue": releaseCue})

	releases, err := NewService().LoadFile(filepath.Join(dir, "0.13.1.cue"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(releases) != 1 {
		t.Fatalf("expected 1 release, got %d", len(releases))
	}

	rel := releases[0]
	if rel.Version != "0.13.1" || rel.Date != "2021-04-29" {
		t.Fatalf("unexpected release header: %+v", rel)
	}
	if len(rel.Commits) != 1 {
		t.Fatalf("expected 1 commit, got %d", len(rel.Commits))
	}
	c := rel.Commits[0]
	if c.SHA != "38f9b78aa693b941be33d33b7520fe3821d15df6" {
		t.Fatalf("unexpected sha: %s", c.SHA)
	}
	if c.PRNumber == nil || *c.PRNumber != 7266 {
		t.Fatalf("unexpected pr_number: %v", c.PRNumber)
	}
	if c.BreakingChange {
		t.Fatal("expected breaking_change false")
	}
	if c.FilesCount != 1 || c.InsertionsCount != 5 || c.DeletionsCount != 2 {
		t.Fatalf("unexpected diff stats: %+v", c)
	}
}

func TestLoadFileNullPRNumber(t *testing.T) {
	dir := writeCorpus(t, map[string]string{"0.13.0.cue": olderReleaseCue})

	releases, err := NewService().LoadFile(filepath.Join(dir, "0.13.0.cue"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	rel := releases[0]
	if rel.Codename != "The Long Road" {
		t.Fatalf("unexpected codename: %q", rel.Codename)
	}
	if len(rel.KnownIssues) != 1 || len(rel.WhatsNext) != 1 || len(rel.Changelog) != 2 {
		t.Fatalf("unexpected curated sections: %+v", rel)
	}
	if rel.Changelog[0].Contributors[0] != "octocat" || rel.Changelog[0].PRNumbers[0] != 7001 {
		t.Fatalf("unexpected changelog entry: %+v", rel.Changelog[0])
	}
	if rel.Commits[1].PRNumber != nil {
		t.Fatalf("expected nil pr_number for direct commit, got %v", *rel.Commits[1].PRNumber)
	}
}

func TestLoadSortsNewestFirst(t *testing.T) {
	dir := writeCorpus(t, map[string]string{
		"0.13.0.cue": olderReleaseCue,
		"0.13.1.cue": releaseCue,
	})

	releases, err := NewService().Load(context.Background(), dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(releases) != 2 {
		t.Fatalf("expected 2 releases, got %d", len(releases))
	}
	if releases[0].Version != "0.13.1" || releases[1].Version != "0.13.0" {
		t.Fatalf("unexpected order: %s, %s", releases[0].Version, releases[1].Version)
	}
	if filepath.Base(releases[1].SourceFile) != "0.13.0.cue" {
		t.Fatalf("unexpected source file: %s", releases[1].SourceFile)
	}
}

func TestLoadEmptyDirFails(t *testing.T) {
	if _, err := NewService().Load(context.Background(), t.TempDir()); err == nil {
		t.Fatal("expected error for empty corpus dir")
	}
}

func TestLoadFileRejectsMalformedCue(t *testing.T) {
	dir := writeCorpus(t, map[string]string{"bad.cue": "releases: \"0.1.0\": {date: }"})
	if _, err := NewService().LoadFile(filepath.Join(dir, "bad.cue")); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestLoadFileRequiresReleasesStruct(t *testing.T) {
	dir := writeCorpus(t, map[string]string{"stray.cue": "package metadata\n\nversions: [\"0.1.0\"]\n"})
	if _, err := NewService().LoadFile(filepath.Join(dir, "stray.cue")); err == nil {
		t.Fatal("expected error for missing releases struct")
	}
}
