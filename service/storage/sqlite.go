package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/thirukguru/relnotes/model"
	_ "modernc.org/sqlite"
)

const defaultDBPath = "~/.relnotes/history.db"

// NewService creates a SQLite-backed storage service.
func NewService(dbPath string) (Service, error) {
	resolved, err := resolvePath(dbPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schemaV1); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &service{db: db, dbPath: resolved}, nil
}

type service struct {
	db     *sql.DB
	dbPath string
}

func resolvePath(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		p = defaultDBPath
	}
	if strings.HasPrefix(p, "~/") || p == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home dir: %w", err)
		}
		if p == "~" {
			p = home
		} else {
			p = filepath.Join(home, p[2:])
		}
	}
	return filepath.Clean(p), nil
}

// SaveImport records one corpus import: the run itself, the release and
// commit rows (upserted by natural key, since published records are
// immutable), and the validation issues observed during the run.
func (s *service) SaveImport(ctx context.Context, input SaveImportInput) (int64, error) {
	if input.CorpusDir == "" {
		return 0, errors.New("corpus dir is required")
	}
	if input.ImportUUID == "" {
		input.ImportUUID = fmt.Sprintf("import-%d", time.Now().UnixNano())
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	commitCount := 0
	for _, rel := range input.Releases {
		commitCount += len(rel.Commits)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO imports (
			import_uuid, corpus_dir, release_count, commit_count,
			error_count, warning_count, cli_version
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`, input.ImportUUID, input.CorpusDir, len(input.Releases), commitCount,
		input.ErrorCount, input.WarningCount, input.Version)
	if err != nil {
		return 0, err
	}
	importID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if err = s.saveReleasesTx(ctx, tx, input.Releases, input.Stats); err != nil {
		return 0, err
	}
	if err = s.saveIssuesTx(ctx, tx, importID, input.Issues); err != nil {
		return 0, err
	}

	err = tx.Commit()
	if err != nil {
		return 0, err
	}
	return importID, nil
}

func (s *service) saveReleasesTx(ctx context.Context, tx *sql.Tx, releases []model.Release, stats []model.ReleaseStats) error {
	statsByVersion := map[string]model.ReleaseStats{}
	for _, rs := range stats {
		statsByVersion[rs.Version] = rs
	}
	now := time.Now().UTC().Format(time.RFC3339)

	for _, rel := range releases {
		rs := statsByVersion[rel.Version]
		_, err := tx.ExecContext(ctx, `
			INSERT INTO releases (
				version, release_date, codename, description, commit_count,
				files_count, insertions_count, deletions_count, breaking_count,
				author_count, first_imported, last_imported
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(version) DO UPDATE SET
				release_date=excluded.release_date,
				codename=excluded.codename,
				description=excluded.description,
				commit_count=excluded.commit_count,
				files_count=excluded.files_count,
				insertions_count=excluded.insertions_count,
				deletions_count=excluded.deletions_count,
				breaking_count=excluded.breaking_count,
				author_count=excluded.author_count,
				last_imported=excluded.last_imported
		`, rel.Version, rel.Date, rel.Codename, rel.Description, len(rel.Commits),
			rs.FilesCount, rs.InsertionsCount, rs.DeletionsCount, rs.BreakingCount,
			rs.AuthorCount, now, now)
		if err != nil {
			return err
		}

		for _, c := range rel.Commits {
			var prNumber any
			if c.PRNumber != nil {
				prNumber = *c.PRNumber
			}
			scopes, err := json.Marshal(c.Scopes)
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO commits (
					sha, version, commit_date, description, pr_number, scopes,
					commit_type, breaking_change, author,
					files_count, insertions_count, deletions_count
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(sha) DO UPDATE SET
					version=excluded.version,
					commit_date=excluded.commit_date,
					description=excluded.description,
					pr_number=excluded.pr_number,
					scopes=excluded.scopes,
					commit_type=excluded.commit_type,
					breaking_change=excluded.breaking_change,
					author=excluded.author,
					files_count=excluded.files_count,
					insertions_count=excluded.insertions_count,
					deletions_count=excluded.deletions_count
			`, c.SHA, rel.Version, c.Date, c.Description, prNumber, string(scopes),
				c.Type, c.BreakingChange, c.Author,
				c.FilesCount, c.InsertionsCount, c.DeletionsCount)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *service) saveIssuesTx(ctx context.Context, tx *sql.Tx, importID int64, issues []model.Issue) error {
	for _, issue := range issues {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO issues (import_id, severity, rule, version, ref, message)
			VALUES (?, ?, ?, ?, ?, ?)
		`, importID, issue.Severity, issue.Rule, issue.Version, issue.Ref, issue.Message)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *service) GetRecentImports(limit int) ([]ImportSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(`
		SELECT import_id, import_uuid, corpus_dir, imported_at,
			release_count, commit_count, error_count, warning_count, cli_version
		FROM imports
		ORDER BY imported_at DESC, import_id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	imports := []ImportSummary{}
	for rows.Next() {
		var sum ImportSummary
		if err := rows.Scan(&sum.ImportID, &sum.ImportUUID, &sum.CorpusDir, &sum.ImportedAt,
			&sum.ReleaseCount, &sum.CommitCount, &sum.ErrorCount, &sum.WarningCount, &sum.Version); err != nil {
			return nil, err
		}
		imports = append(imports, sum)
	}
	return imports, rows.Err()
}

func (s *service) GetImportIssues(importID int64) ([]model.Issue, error) {
	rows, err := s.db.Query(`
		SELECT severity, rule, version, ref, message
		FROM issues WHERE import_id=? ORDER BY id ASC
	`, importID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	issues := []model.Issue{}
	for rows.Next() {
		var issue model.Issue
		if err := rows.Scan(&issue.Severity, &issue.Rule, &issue.Version, &issue.Ref, &issue.Message); err != nil {
			return nil, err
		}
		issues = append(issues, issue)
	}
	return issues, rows.Err()
}

func (s *service) GetReleaseSummaries(limit int) ([]ReleaseSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT version, release_date, codename, commit_count,
			files_count, insertions_count, deletions_count, breaking_count, author_count
		FROM releases
		ORDER BY release_date DESC, version DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	releases := []ReleaseSummary{}
	for rows.Next() {
		var sum ReleaseSummary
		if err := rows.Scan(&sum.Version, &sum.Date, &sum.Codename, &sum.CommitCount,
			&sum.FilesCount, &sum.InsertionsCount, &sum.DeletionsCount, &sum.BreakingCount, &sum.AuthorCount); err != nil {
			return nil, err
		}
		releases = append(releases, sum)
	}
	return releases, rows.Err()
}

func (s *service) GetCommitsByVersion(version string) ([]CommitRow, error) {
	rows, err := s.db.Query(`
		SELECT sha, version, commit_date, description, pr_number, scopes,
			commit_type, breaking_change, author, files_count, insertions_count, deletions_count
		FROM commits WHERE version=? ORDER BY commit_date ASC, sha ASC
	`, version)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	commits := []CommitRow{}
	for rows.Next() {
		var row CommitRow
		var prNumber sql.NullInt64
		var scopes string
		if err := rows.Scan(&row.SHA, &row.Version, &row.Date, &row.Description, &prNumber, &scopes,
			&row.Type, &row.BreakingChange, &row.Author, &row.FilesCount, &row.InsertionsCount, &row.DeletionsCount); err != nil {
			return nil, err
		}
		if prNumber.Valid {
			n := int(prNumber.Int64)
			row.PRNumber = &n
		}
		if scopes != "" && scopes != "null" {
			if err := json.Unmarshal([]byte(scopes), &row.Scopes); err != nil {
				return nil, fmt.Errorf("bad scopes payload for %s: %w", row.SHA, err)
			}
		}
		commits = append(commits, row)
	}
	return commits, rows.Err()
}

func (s *service) GetContributorLeaderboard(limit int) ([]model.NameCount, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(`
		SELECT author, COUNT(*) FROM commits
		WHERE author != '' GROUP BY author
		ORDER BY COUNT(*) DESC, author ASC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.NameCount{}
	for rows.Next() {
		var nc model.NameCount
		if err := rows.Scan(&nc.Name, &nc.Count); err != nil {
			return nil, err
		}
		out = append(out, nc)
	}
	return out, rows.Err()
}

// GetReleaseComparison diffs the commit authorship of two stored releases.
func (s *service) GetReleaseComparison(version1, version2 string) (*ReleaseComparison, error) {
	first, err := s.authorsByVersion(version1)
	if err != nil {
		return nil, err
	}
	second, err := s.authorsByVersion(version2)
	if err != nil {
		return nil, err
	}

	cmp := &ReleaseComparison{Version1: version1, Version2: version2}
	for author := range second {
		if !first[author] {
			cmp.NewAuthors = append(cmp.NewAuthors, author)
		} else {
			cmp.ReturningAuthors++
		}
	}

	err = s.db.QueryRow(`SELECT COUNT(*) FROM commits WHERE version=?`, version1).Scan(&cmp.CommitCount1)
	if err != nil {
		return nil, err
	}
	err = s.db.QueryRow(`SELECT COUNT(*) FROM commits WHERE version=?`, version2).Scan(&cmp.CommitCount2)
	if err != nil {
		return nil, err
	}
	return cmp, nil
}

func (s *service) authorsByVersion(version string) (map[string]bool, error) {
	rows, err := s.db.Query(`SELECT DISTINCT author FROM commits WHERE version=? AND author != ''`, version)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]bool{}
	for rows.Next() {
		var author string
		if err := rows.Scan(&author); err != nil {
			return nil, err
		}
		out[author] = true
	}
	return out, rows.Err()
}

func (s *service) Vacuum(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "VACUUM")
	return err
}

func (s *service) Reindex(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "REINDEX")
	return err
}

// PurgeOlderThan drops import runs (and their issues) older than the given
// number of days. Release and commit rows stay: the corpus is append-only.
func (s *service) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, errors.New("days must be > 0")
	}
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM imports WHERE imported_at < DATETIME('now', ?)
	`, fmt.Sprintf("-%d day", days))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *service) Close() error {
	return s.db.Close()
}
