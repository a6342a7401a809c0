package model

// Release is one published version's complete metadata block. Records are
// append-only: once a version ships, its record never changes.
type Release struct {
	Version     string           `json:"version"`
	Date        string           `json:"date"`
	Codename    string           `json:"codename,omitempty"`
	Description string           `json:"description,omitempty"`
	KnownIssues []string         `json:"known_issues,omitempty"`
	WhatsNext   []WhatsNextEntry `json:"whats_next,omitempty"`
	Changelog   []ChangelogEntry `json:"changelog,omitempty"`
	Commits     []Commit         `json:"commits"`

	// SourceFile is the corpus file the record was loaded from.
	// Not part of the record itself.
	SourceFile string `json:"-"`
}

// WhatsNextEntry is a forward-looking note attached to a release.
type WhatsNextEntry struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ChangelogEntry is a curated, human-written summary of one notable change.
type ChangelogEntry struct {
	Type         string   `json:"type"`
	Scopes       []string `json:"scopes,omitempty"`
	Description  string   `json:"description"`
	Breaking     bool     `json:"breaking,omitempty"`
	PRNumbers    []int    `json:"pr_numbers,omitempty"`
	Contributors []string `json:"contributors,omitempty"`
}

// Commit is a mechanically extracted record of one commit contributing to a
// release. PRNumber is nil for commits that landed without a pull request.
type Commit struct {
	SHA             string   `json:"sha"`
	Date            string   `json:"date"`
	Description     string   `json:"description"`
	PRNumber        *int     `json:"pr_number"`
	Scopes          []string `json:"scopes,omitempty"`
	Type            string   `json:"type"`
	BreakingChange  bool     `json:"breaking_change"`
	Author          string   `json:"author"`
	FilesCount      int      `json:"files_count"`
	InsertionsCount int      `json:"insertions_count"`
	DeletionsCount  int      `json:"deletions_count"`
}

// ChangelogTypes are the classifications accepted for curated changelog
// entries.
var ChangelogTypes = []string{"fix", "enhancement", "feat", "chore", "docs"}

// CommitTypes additionally admits classifications that appear in raw commit
// logs but are filtered out of curated changelogs.
var CommitTypes = []string{"fix", "enhancement", "feat", "chore", "docs", "perf", "revert", "status"}
