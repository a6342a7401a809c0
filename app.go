// Package main is the entry point for the relnotes application.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/thirukguru/relnotes/model"
	"github.com/thirukguru/relnotes/service/config"
	"github.com/thirukguru/relnotes/service/flag"
	"github.com/thirukguru/relnotes/service/orchestrator"
	"github.com/thirukguru/relnotes/service/output"
	"github.com/thirukguru/relnotes/service/storage"
	"github.com/thirukguru/relnotes/shared/banner"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "db", "history", "serve":
			return runStorageCommand(os.Args[1], os.Args[2:])
		case "prepare":
			return runPrepareCommand(os.Args[2:])
		}
	}

	flagService := flag.NewService()
	flags, err := flagService.GetParsedFlags()
	if err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	versionInfo := model.VersionInfo{Version: version, Commit: commit, Date: date}

	if flags.Version {
		outputService := output.NewService(flags.Output, flags.OutputFile)
		orchestratorService := orchestrator.NewService(nil, nil, nil, outputService, nil, versionInfo)
		return orchestratorService.Orchestrate(flags)
	}

	configService := config.NewService()
	configFile, err := configService.Load(flags.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	explicit := map[string]bool{}
	pflag.Visit(func(f *pflag.Flag) { explicit[f.Name] = true })
	flags = configService.Apply(flags, configFile, explicit)

	if flags.Output == "table" {
		banner.DrawBannerTitle()
	}

	var storageService storage.Service
	if flags.Store {
		storageService, err = storage.NewService(flags.DBPath)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		defer storageService.Close()
	}

	return runCorpusImport(flags, versionInfo, storageService)
}
