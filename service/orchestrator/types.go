package orchestrator

import (
	"github.com/thirukguru/relnotes/model"
	"github.com/thirukguru/relnotes/service/corpus"
	"github.com/thirukguru/relnotes/service/output"
	"github.com/thirukguru/relnotes/service/stats"
	"github.com/thirukguru/relnotes/service/storage"
	"github.com/thirukguru/relnotes/service/validate"
)

type service struct {
	corpusService   corpus.Service
	validateService validate.Service
	statsService    stats.Service
	outputService   output.Service
	storageService  storage.Service
	versionInfo     model.VersionInfo
}

// Service is the interface for orchestrator service.
type Service interface {
	Orchestrate(flags model.Flags) error
}
