// Package orchestrator coordinates loading, validation, and reporting.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/thirukguru/relnotes/model"
	"github.com/thirukguru/relnotes/service/corpus"
	"github.com/thirukguru/relnotes/service/output"
	"github.com/thirukguru/relnotes/service/stats"
	"github.com/thirukguru/relnotes/service/storage"
	"github.com/thirukguru/relnotes/service/validate"
	"golang.org/x/sync/errgroup"
)

// NewService creates a new orchestrator service.
func NewService(
	corpusService corpus.Service,
	validateService validate.Service,
	statsService stats.Service,
	outputService output.Service,
	storageService storage.Service,
	versionInfo model.VersionInfo,
) Service {
	return &service{
		corpusService:   corpusService,
		validateService: validateService,
		statsService:    statsService,
		outputService:   outputService,
		storageService:  storageService,
		versionInfo:     versionInfo,
	}
}

func (s *service) Orchestrate(flags model.Flags) error {
	if flags.Version {
		return s.versionWorkflow()
	}

	return s.corpusWorkflow(flags)
}

func (s *service) versionWorkflow() error {
	s.outputService.StopSpinner()

	fmt.Printf("relnotes version %s\n", s.versionInfo.Version)
	fmt.Printf("commit: %s\n", s.versionInfo.Commit)
	fmt.Printf("built at: %s\n", s.versionInfo.Date)

	return nil
}

func (s *service) corpusWorkflow(flags model.Flags) error {
	ctx := context.Background()

	releases, err := s.corpusService.Load(ctx, flags.Dir)
	if err != nil {
		s.outputService.StopSpinner()
		return err
	}

	issues := s.validateService.Check(releases)
	summary := s.validateService.Summarize(issues)

	var (
		perRelease   []model.ReleaseStats
		contributors []model.NameCount
		scopes       []model.NameCount
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		perRelease = s.statsService.PerRelease(releases)
		return nil
	})
	g.Go(func() error {
		contributors = s.statsService.TopContributors(releases, flags.Top)
		return nil
	})
	g.Go(func() error {
		scopes = s.statsService.TopScopes(releases, flags.Top)
		return nil
	})
	if err := g.Wait(); err != nil {
		s.outputService.StopSpinner()
		return err
	}

	s.outputService.StopSpinner()

	input := model.RenderCorpusInput{
		Dir:      flags.Dir,
		Releases: releases,
		Stats:    perRelease,
		Issues:   issues,
		Top:      flags.Top,
	}

	if flags.Release != "" {
		if err := s.releaseDetail(flags, input, contributors, scopes, summary); err != nil {
			return err
		}
	} else {
		if err := s.outputService.RenderCorpus(input, contributors, scopes, summary); err != nil {
			return err
		}
	}

	if err := s.exportIfRequested(flags, input, contributors, scopes, summary); err != nil {
		return err
	}

	if err := s.persistImportIfEnabled(ctx, flags, releases, perRelease, issues, summary); err != nil {
		return fmt.Errorf("failed to store import: %w", err)
	}

	if summary.Errors > 0 {
		return fmt.Errorf("corpus validation failed: %d error(s), %d warning(s)", summary.Errors, summary.Warnings)
	}
	if flags.Strict && summary.Warnings > 0 {
		return fmt.Errorf("corpus validation failed in strict mode: %d warning(s)", summary.Warnings)
	}

	return nil
}

func (s *service) releaseDetail(flags model.Flags, input model.RenderCorpusInput, contributors, scopes []model.NameCount, summary model.IssueSummary) error {
	var (
		rel      *model.Release
		relStats model.ReleaseStats
	)
	for i := range input.Releases {
		if input.Releases[i].Version == flags.Release {
			rel = &input.Releases[i]
			break
		}
	}
	if rel == nil {
		return fmt.Errorf("release %q not found in %s", flags.Release, flags.Dir)
	}
	for _, st := range input.Stats {
		if st.Version == rel.Version {
			relStats = st
			break
		}
	}

	if flags.Output == "json" {
		filtered := input
		filtered.Releases = []model.Release{*rel}
		filtered.Stats = []model.ReleaseStats{relStats}
		return s.outputService.RenderCorpus(filtered, contributors, scopes, summary)
	}

	return s.outputService.RenderRelease(*rel, relStats)
}
