// Package gitlog extracts commit entries from a git repository for a new
// release record. Subjects are parsed as conventional commits
// (type(scope1, scope2)!: description (#1234)) and diff statistics come from
// git's numstat output.
package gitlog

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/thirukguru/relnotes/model"
)

const (
	recordSep = "\x1e"
	fieldSep  = "\x1f"
)

var (
	subjectRe = regexp.MustCompile(`^([a-z]+)(?:\(([^)]*)\))?(!)?:\s*(.+)$`)
	prRefRe   = regexp.MustCompile(`\s*\(#(\d+)\)\s*$`)
)

// NewService creates a gitlog service reading from the repository at
// repoPath.
func NewService(repoPath string) Service {
	return &service{repoPath: repoPath}
}

// CommitsBetween returns the commit entries for fromRef..toRef, oldest
// first, the order release records carry them.
func (s *service) CommitsBetween(ctx context.Context, fromRef, toRef string) ([]model.Commit, error) {
	rangeSpec := fmt.Sprintf("%s..%s", fromRef, toRef)
	cmd := exec.CommandContext(ctx, "git", "-C", s.repoPath, "log",
		"--no-merges", "--reverse",
		"--pretty=format:"+recordSep+"%H"+fieldSep+"%aI"+fieldSep+"%an"+fieldSep+"%s",
		"--numstat", rangeSpec)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git log %s: %w", rangeSpec, err)
	}
	return parseLog(string(out))
}

// parseLog turns the record-separated log output into commit entries.
func parseLog(out string) ([]model.Commit, error) {
	var commits []model.Commit
	for _, record := range strings.Split(out, recordSep) {
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}

		lines := strings.Split(record, "\n")
		fields := strings.SplitN(lines[0], fieldSep, 4)
		if len(fields) != 4 {
			return nil, fmt.Errorf("malformed log record: %q", lines[0])
		}

		commit := model.Commit{
			SHA:    strings.ToLower(strings.TrimSpace(fields[0])),
			Date:   strings.TrimSpace(fields[1]),
			Author: strings.TrimSpace(fields[2]),
		}
		applySubject(&commit, strings.TrimSpace(fields[3]))

		for _, line := range lines[1:] {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			insertions, deletions, ok := parseNumstat(line)
			if !ok {
				continue
			}
			commit.FilesCount++
			commit.InsertionsCount += insertions
			commit.DeletionsCount += deletions
		}

		commits = append(commits, commit)
	}
	return commits, nil
}

// applySubject fills type, scopes, breaking flag, PR number, and description
// from a conventional-commit subject line. Non-conventional subjects become
// chore entries with the subject as description.
func applySubject(commit *model.Commit, subject string) {
	if m := prRefRe.FindStringSubmatch(subject); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			commit.PRNumber = &n
		}
		subject = strings.TrimSpace(prRefRe.ReplaceAllString(subject, ""))
	}

	m := subjectRe.FindStringSubmatch(subject)
	if m == nil {
		commit.Type = "chore"
		commit.Description = subject
		return
	}

	commit.Type = m[1]
	if !slices.Contains(model.CommitTypes, commit.Type) {
		commit.Type = "chore"
	}
	if m[2] != "" {
		for _, scope := range strings.Split(m[2], ",") {
			scope = strings.TrimSpace(scope)
			if scope != "" {
				commit.Scopes = append(commit.Scopes, scope)
			}
		}
	}
	commit.BreakingChange = m[3] == "!"
	commit.Description = strings.TrimSpace(m[4])
}

// parseNumstat reads one "insertions<TAB>deletions<TAB>path" line. Binary
// files report "-" and contribute a file count only.
func parseNumstat(line string) (insertions, deletions int, ok bool) {
	parts := strings.SplitN(line, "\t", 3)
	if len(parts) != 3 {
		return 0, 0, false
	}
	if parts[0] != "-" {
		n, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, 0, false
		}
		insertions = n
	}
	if parts[1] != "-" {
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, false
		}
		deletions = n
	}
	return insertions, deletions, true
}
