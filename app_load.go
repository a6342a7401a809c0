package main

import (
	"fmt"

	"github.com/thirukguru/relnotes/model"
	"github.com/thirukguru/relnotes/service/corpus"
	"github.com/thirukguru/relnotes/service/orchestrator"
	"github.com/thirukguru/relnotes/service/output"
	"github.com/thirukguru/relnotes/service/stats"
	"github.com/thirukguru/relnotes/service/storage"
	"github.com/thirukguru/relnotes/service/validate"
	"github.com/thirukguru/relnotes/shared/spinner"
)

func runCorpusImport(flags model.Flags, versionInfo model.VersionInfo, storageService storage.Service) error {
	if flags.Output == "table" {
		spinner.StartSpinner("loading release records...")
	}
	defer spinner.StopSpinner()

	corpusService := corpus.NewService()
	validateService := validate.NewService()
	statsService := stats.NewService()
	outputService := output.NewService(flags.Output, flags.OutputFile)

	orchestratorService := orchestrator.NewService(
		corpusService,
		validateService,
		statsService,
		outputService,
		storageService,
		versionInfo,
	)

	if err := orchestratorService.Orchestrate(flags); err != nil {
		return fmt.Errorf("corpus import failed for %s: %w", flags.Dir, err)
	}
	return nil
}
