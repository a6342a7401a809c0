package gitlog

import (
	"context"

	"github.com/thirukguru/relnotes/model"
)

type service struct {
	repoPath string
}

// Service extracts commit entries from a local git repository.
type Service interface {
	CommitsBetween(ctx context.Context, fromRef, toRef string) ([]model.Commit, error)
}
