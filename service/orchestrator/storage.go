package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/thirukguru/relnotes/model"
	"github.com/thirukguru/relnotes/service/storage"
)

func (s *service) persistImportIfEnabled(
	ctx context.Context,
	flags model.Flags,
	releases []model.Release,
	stats []model.ReleaseStats,
	issues []model.Issue,
	summary model.IssueSummary,
) error {
	if s.storageService == nil || !flags.Store {
		return nil
	}

	_, err := s.storageService.SaveImport(ctx, storage.SaveImportInput{
		ImportUUID:   fmt.Sprintf("import-%d", time.Now().UnixNano()),
		CorpusDir:    flags.Dir,
		Version:      s.versionInfo.Version,
		ErrorCount:   summary.Errors,
		WarningCount: summary.Warnings,
		Releases:     releases,
		Stats:        stats,
		Issues:       issues,
	})
	return err
}
