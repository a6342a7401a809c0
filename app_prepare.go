package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/pflag"
	"github.com/thirukguru/relnotes/model"
	"github.com/thirukguru/relnotes/service/config"
	"github.com/thirukguru/relnotes/service/corpus"
	"github.com/thirukguru/relnotes/service/github"
	"github.com/thirukguru/relnotes/service/gitlog"
	"github.com/thirukguru/relnotes/service/validate"
	"github.com/thirukguru/relnotes/shared/cueformat"
)

// runPrepareCommand drafts a new <version>.cue record from the git history
// between two refs, optionally enriching changelog entries with pull-request
// authors from the GitHub API.
func runPrepareCommand(args []string) error {
	fs := pflag.NewFlagSet("prepare", pflag.ContinueOnError)
	newVersion := fs.String("version", "", "Version for the new release record (required)")
	fromRef := fs.String("from-ref", "", "Git ref the release starts after (required)")
	toRef := fs.String("to-ref", "HEAD", "Git ref the release ends at")
	repoPath := fs.String("repo", ".", "Path to the local git repository")
	githubRepo := fs.String("github-repo", "", "GitHub owner/repo for PR author lookups")
	dir := fs.String("dir", "releases", "Directory to write the release record into")
	date := fs.String("date", time.Now().Format("2006-01-02"), "Release date (YYYY-MM-DD)")
	configPath := fs.String("config-path", "", "Path to relnotes config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *githubRepo == "" {
		if file, err := config.NewService().Load(*configPath); err == nil {
			*githubRepo = file.GitHubRepo
		}
	}

	if *newVersion == "" || *fromRef == "" {
		return fmt.Errorf("usage: relnotes prepare --version <M.m.p> --from-ref <tag> [--to-ref HEAD]")
	}
	if _, _, _, err := model.ParseVersion(*newVersion); err != nil {
		return fmt.Errorf("invalid --version: %w", err)
	}

	ctx := context.Background()

	gitlogService := gitlog.NewService(*repoPath)
	commits, err := gitlogService.CommitsBetween(ctx, *fromRef, *toRef)
	if err != nil {
		return fmt.Errorf("failed to read git log: %w", err)
	}
	if len(commits) == 0 {
		return fmt.Errorf("no commits found between %s and %s", *fromRef, *toRef)
	}

	var githubService github.Service
	if *githubRepo != "" {
		githubService = github.NewService(*githubRepo)
	}

	rel := model.Release{
		Version:   *newVersion,
		Date:      *date,
		Commits:   commits,
		Changelog: buildChangelog(ctx, commits, githubService),
	}

	path := filepath.Join(*dir, *newVersion+".cue")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("release record %s already exists", path)
	}
	if err := os.MkdirAll(*dir, 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := cueformat.WriteRelease(f, rel); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	// Reload the written record so format drift fails loudly here, not on
	// the next import.
	loaded, err := corpus.NewService().LoadFile(path)
	if err != nil {
		return fmt.Errorf("written record does not load back: %w", err)
	}
	validateService := validate.NewService()
	summary := validateService.Summarize(validateService.Check(loaded))

	fmt.Printf("Wrote %s: %d commits, %d changelog entries (%d errors, %d warnings)\n",
		path, len(rel.Commits), len(rel.Changelog), summary.Errors, summary.Warnings)
	return nil
}

// buildChangelog derives one changelog entry per user-facing commit. Commit
// types without a changelog section (perf, revert, status) are kept in the
// commit list only.
func buildChangelog(ctx context.Context, commits []model.Commit, githubService github.Service) []model.ChangelogEntry {
	var entries []model.ChangelogEntry
	for _, c := range commits {
		if !slices.Contains(model.ChangelogTypes, c.Type) {
			continue
		}
		entry := model.ChangelogEntry{
			Type:        c.Type,
			Scopes:      c.Scopes,
			Description: c.Description,
			Breaking:    c.BreakingChange,
		}
		if c.PRNumber != nil {
			entry.PRNumbers = []int{*c.PRNumber}
			if githubService != nil {
				if pr, err := githubService.GetPullRequest(ctx, *c.PRNumber); err == nil && pr.User.Login != "" {
					entry.Contributors = []string{pr.User.Login}
				}
			}
		}
		entries = append(entries, entry)
	}
	return entries
}
