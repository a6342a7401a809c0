package corpus

import (
	"context"

	"github.com/thirukguru/relnotes/model"
)

type service struct {
	parallelism int
}

// Service loads release records from a corpus of CUE files.
type Service interface {
	Load(ctx context.Context, dir string) ([]model.Release, error)
	LoadFile(path string) ([]model.Release, error)
}
