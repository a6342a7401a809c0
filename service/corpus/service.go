// Package corpus loads release records from a directory of CUE files. Each
// record lives in its own <version>.cue file under a top-level "releases"
// struct keyed by version string, the layout the release tooling generates.
package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/thirukguru/relnotes/model"
	"golang.org/x/sync/errgroup"
)

const defaultParallelism = 8

// NewService creates a new corpus loader service.
func NewService() Service {
	return &service{parallelism: defaultParallelism}
}

// Load parses every .cue file directly under dir. Files are parsed
// independently so a duplicate version key across files surfaces as two
// records for the validator rather than a CUE unification error.
func (s *service) Load(ctx context.Context, dir string) ([]model.Release, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.cue"))
	if err != nil {
		return nil, fmt.Errorf("failed to list corpus dir %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .cue release records found in %s", dir)
	}
	sort.Strings(paths)

	var mu sync.Mutex
	releases := make([]model.Release, 0, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			recs, err := s.LoadFile(path)
			if err != nil {
				return err
			}
			mu.Lock()
			releases = append(releases, recs...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Newest release first, matching how the published notes are browsed.
	sort.SliceStable(releases, func(i, j int) bool {
		return model.CompareVersions(releases[i].Version, releases[j].Version) > 0
	})
	return releases, nil
}

// LoadFile parses a single corpus file. A file may carry several version
// keys; each becomes its own release record tagged with the source path.
func (s *service) LoadFile(path string) ([]model.Release, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cctx := cuecontext.New()
	v := cctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile %s: %s", path, cueerrors.Details(err, nil))
	}

	root := v.LookupPath(cue.ParsePath("releases"))
	if !root.Exists() {
		return nil, fmt.Errorf("%s: no top-level releases struct", path)
	}

	var byVersion map[string]model.Release
	if err := root.Decode(&byVersion); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %s", path, cueerrors.Details(err, nil))
	}

	releases := make([]model.Release, 0, len(byVersion))
	for version, rel := range byVersion {
		rel.Version = version
		rel.SourceFile = path
		releases = append(releases, rel)
	}
	sort.Slice(releases, func(i, j int) bool {
		return model.CompareVersions(releases[i].Version, releases[j].Version) > 0
	})
	return releases, nil
}
