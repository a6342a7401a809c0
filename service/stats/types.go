package stats

import "github.com/thirukguru/relnotes/model"

type service struct{}

// Service aggregates release and corpus level statistics.
type Service interface {
	PerRelease(releases []model.Release) []model.ReleaseStats
	TopContributors(releases []model.Release, limit int) []model.NameCount
	TopScopes(releases []model.Release, limit int) []model.NameCount
}
