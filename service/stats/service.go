// Package stats derives per-release and corpus-wide aggregates from the
// commit log: commit counts by type, diff totals, breaking-change counts,
// and contributor and scope leaderboards.
package stats

import (
	"sort"

	"github.com/thirukguru/relnotes/model"
)

// NewService creates a new stats service.
func NewService() Service {
	return &service{}
}

// PerRelease aggregates each release's commit log, preserving input order.
func (s *service) PerRelease(releases []model.Release) []model.ReleaseStats {
	out := make([]model.ReleaseStats, 0, len(releases))
	for _, rel := range releases {
		rs := model.ReleaseStats{
			Version:       rel.Version,
			CommitCount:   len(rel.Commits),
			CommitsByType: map[string]int{},
		}
		authors := map[string]bool{}
		for _, c := range rel.Commits {
			rs.CommitsByType[c.Type]++
			rs.FilesCount += c.FilesCount
			rs.InsertionsCount += c.InsertionsCount
			rs.DeletionsCount += c.DeletionsCount
			if c.BreakingChange {
				rs.BreakingCount++
			}
			if c.Author != "" {
				authors[c.Author] = true
			}
		}
		rs.AuthorCount = len(authors)
		out = append(out, rs)
	}
	return out
}

// TopContributors ranks commit authors across the whole corpus.
func (s *service) TopContributors(releases []model.Release, limit int) []model.NameCount {
	counts := map[string]int{}
	for _, rel := range releases {
		for _, c := range rel.Commits {
			if c.Author != "" {
				counts[c.Author]++
			}
		}
	}
	return rank(counts, limit)
}

// TopScopes ranks scope labels across commits and curated changelog entries.
func (s *service) TopScopes(releases []model.Release, limit int) []model.NameCount {
	counts := map[string]int{}
	for _, rel := range releases {
		for _, c := range rel.Commits {
			for _, scope := range c.Scopes {
				counts[scope]++
			}
		}
		for _, entry := range rel.Changelog {
			for _, scope := range entry.Scopes {
				counts[scope]++
			}
		}
	}
	return rank(counts, limit)
}

// rank orders by count descending, then name, for deterministic output.
func rank(counts map[string]int, limit int) []model.NameCount {
	out := make([]model.NameCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, model.NameCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
