package storage

import (
	"context"
	"time"

	"github.com/thirukguru/relnotes/model"
)

// Service defines persistence and history query operations.
type Service interface {
	SaveImport(ctx context.Context, input SaveImportInput) (int64, error)
	GetRecentImports(limit int) ([]ImportSummary, error)
	GetImportIssues(importID int64) ([]model.Issue, error)
	GetReleaseSummaries(limit int) ([]ReleaseSummary, error)
	GetCommitsByVersion(version string) ([]CommitRow, error)
	GetContributorLeaderboard(limit int) ([]model.NameCount, error)
	GetReleaseComparison(version1, version2 string) (*ReleaseComparison, error)
	Vacuum(ctx context.Context) error
	Reindex(ctx context.Context) error
	PurgeOlderThan(ctx context.Context, days int) (int64, error)
	Close() error
}

// SaveImportInput is the payload saved for a completed corpus import.
type SaveImportInput struct {
	ImportUUID   string
	CorpusDir    string
	Version      string
	ErrorCount   int
	WarningCount int
	Releases     []model.Release
	Stats        []model.ReleaseStats
	Issues       []model.Issue
}

// ImportSummary provides compact import-run metadata.
type ImportSummary struct {
	ImportID     int64
	ImportUUID   string
	CorpusDir    string
	ImportedAt   time.Time
	ReleaseCount int
	CommitCount  int
	ErrorCount   int
	WarningCount int
	Version      string
}

// ReleaseSummary is a stored release's aggregate row.
type ReleaseSummary struct {
	Version         string `json:"version"`
	Date            string `json:"date"`
	Codename        string `json:"codename,omitempty"`
	CommitCount     int    `json:"commit_count"`
	FilesCount      int    `json:"files_count"`
	InsertionsCount int    `json:"insertions_count"`
	DeletionsCount  int    `json:"deletions_count"`
	BreakingCount   int    `json:"breaking_count"`
	AuthorCount     int    `json:"author_count"`
}

// CommitRow is a stored commit record.
type CommitRow struct {
	SHA             string   `json:"sha"`
	Version         string   `json:"version"`
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

// ReleaseComparison holds authorship and volume deltas between two releases.
type ReleaseComparison struct {
	Version1         string
	Version2         string
	CommitCount1     int
	CommitCount2     int
	NewAuthors       []string
	ReturningAuthors int
}
