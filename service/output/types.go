package output

import (
	"github.com/thirukguru/relnotes/model"
	"github.com/thirukguru/relnotes/shared/issuetable"
	"github.com/thirukguru/relnotes/shared/jsonoutput"
	"github.com/thirukguru/relnotes/shared/markdown"
	"github.com/thirukguru/relnotes/shared/releasetable"
	"github.com/thirukguru/relnotes/shared/spinner"
)

// Format represents the output format type
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Renderer defines the interface for drawing output
type Renderer interface {
	DrawIssueTable(issues []model.Issue, summary model.IssueSummary)
	DrawSummaryTable(releases []model.Release, stats []model.ReleaseStats)
	DrawChangelogTable(rel model.Release)
	DrawCommitTable(rel model.Release)
	DrawLeaderboards(contributors, scopes []model.NameCount)
	OutputCorpusJSON(input model.RenderCorpusInput, contributors, scopes []model.NameCount, summary model.IssueSummary) error
	RenderMarkdown(rel model.Release, stats model.ReleaseStats) string
	RenderCorpusMarkdown(releases []model.Release, stats []model.ReleaseStats) string
	StopSpinner()
}

type realRenderer struct{}

func (r *realRenderer) DrawIssueTable(issues []model.Issue, summary model.IssueSummary) {
	issuetable.DrawIssueTable(issues, summary)
}

func (r *realRenderer) DrawSummaryTable(releases []model.Release, stats []model.ReleaseStats) {
	releasetable.DrawSummaryTable(releases, stats)
}

func (r *realRenderer) DrawChangelogTable(rel model.Release) {
	releasetable.DrawChangelogTable(rel)
}

func (r *realRenderer) DrawCommitTable(rel model.Release) {
	releasetable.DrawCommitTable(rel)
}

func (r *realRenderer) DrawLeaderboards(contributors, scopes []model.NameCount) {
	releasetable.DrawLeaderboards(contributors, scopes)
}

func (r *realRenderer) OutputCorpusJSON(input model.RenderCorpusInput, contributors, scopes []model.NameCount, summary model.IssueSummary) error {
	return jsonoutput.OutputCorpusJSON(input, contributors, scopes, summary)
}

func (r *realRenderer) RenderMarkdown(rel model.Release, stats model.ReleaseStats) string {
	return markdown.RenderRelease(rel, stats)
}

func (r *realRenderer) RenderCorpusMarkdown(releases []model.Release, stats []model.ReleaseStats) string {
	return markdown.RenderCorpus(releases, stats)
}

func (r *realRenderer) StopSpinner() {
	spinner.StopSpinner()
}

// service is the internal implementation
type service struct {
	format     Format
	outputFile string
	renderer   Renderer
}

// Service defines the interface for output operations
type Service interface {
	RenderCorpus(input model.RenderCorpusInput, contributors, scopes []model.NameCount, summary model.IssueSummary) error
	RenderRelease(rel model.Release, stats model.ReleaseStats) error
	StopSpinner()
}
