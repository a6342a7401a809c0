// Package output provides a service for rendering results to the console.
package output

import (
	"fmt"
	"os"

	"github.com/thirukguru/relnotes/model"
)

// NewService creates a new output service with the specified format
func NewService(format, outputFile string) Service {
	f := FormatTable
	switch format {
	case "json":
		f = FormatJSON
	case "markdown":
		f = FormatMarkdown
	}

	return &service{
		format:     f,
		outputFile: outputFile,
		renderer:   &realRenderer{},
	}
}

// RenderCorpus renders the corpus-wide view: validation issues, the release
// summary table, and the leaderboards. JSON mode emits a single report;
// markdown mode emits one document for the whole corpus, honoring the
// output file when set.
func (s *service) RenderCorpus(input model.RenderCorpusInput, contributors, scopes []model.NameCount, summary model.IssueSummary) error {
	if s.format == FormatJSON {
		return s.renderer.OutputCorpusJSON(input, contributors, scopes, summary)
	}
	if s.format == FormatMarkdown {
		md := s.renderer.RenderCorpusMarkdown(input.Releases, input.Stats)
		return s.writeMarkdown(md)
	}
	s.renderer.DrawIssueTable(input.Issues, summary)
	s.renderer.DrawSummaryTable(input.Releases, input.Stats)
	s.renderer.DrawLeaderboards(contributors, scopes)
	return nil
}

// RenderRelease renders a single release in detail.
func (s *service) RenderRelease(rel model.Release, stats model.ReleaseStats) error {
	if s.format == FormatMarkdown {
		return s.writeMarkdown(s.renderer.RenderMarkdown(rel, stats))
	}
	s.renderer.DrawChangelogTable(rel)
	s.renderer.DrawCommitTable(rel)
	return nil
}

func (s *service) writeMarkdown(md string) error {
	if s.outputFile != "" {
		return os.WriteFile(s.outputFile, []byte(md), 0o644)
	}
	fmt.Print(md)
	return nil
}

func (s *service) StopSpinner() {
	s.renderer.StopSpinner()
}
