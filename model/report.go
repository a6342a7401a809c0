package model

// RenderCorpusInput carries everything the output layer needs to draw the
// load report.
type RenderCorpusInput struct {
	Dir      string
	Releases []Release
	Stats    []ReleaseStats
	Issues   []Issue
	Top      int
}

// Issue is one validation finding against the loaded corpus.
type Issue struct {
	Severity string `json:"severity"`
	Rule     string `json:"rule"`
	Version  string `json:"version,omitempty"`
	Ref      string `json:"ref,omitempty"`
	Message  string `json:"message"`
}

// Issue severities. Errors violate a hard invariant of the record schema;
// warnings flag cross-reference mismatches the source data is known to
// contain.
const (
	SeverityError   = "ERROR"
	SeverityWarning = "WARNING"
)

// ReleaseStats aggregates one release's commit log.
type ReleaseStats struct {
	Version         string         `json:"version"`
	CommitCount     int            `json:"commit_count"`
	CommitsByType   map[string]int `json:"commits_by_type"`
	FilesCount      int            `json:"files_count"`
	InsertionsCount int            `json:"insertions_count"`
	DeletionsCount  int            `json:"deletions_count"`
	BreakingCount   int            `json:"breaking_count"`
	AuthorCount     int            `json:"author_count"`
}

// NameCount is a generic label/tally pair used for leaderboards.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CorpusReportJSON is the top-level JSON report for a corpus load.
type CorpusReportJSON struct {
	Dir          string         `json:"dir"`
	GeneratedAt  string         `json:"generated_at"`
	ReleaseCount int            `json:"release_count"`
	CommitCount  int            `json:"commit_count"`
	Summary      IssueSummary   `json:"validation"`
	Releases     []Release      `json:"releases"`
	Stats        []ReleaseStats `json:"stats"`
	Issues       []Issue        `json:"issues,omitempty"`
	Contributors []NameCount    `json:"top_contributors,omitempty"`
	Scopes       []NameCount    `json:"top_scopes,omitempty"`
}

// IssueSummary counts validation issues by severity.
type IssueSummary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}
