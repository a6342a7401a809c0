// Package jsonoutput builds and prints the machine-readable corpus report.
package jsonoutput

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/thirukguru/relnotes/model"
)

// OutputCorpusJSON prints the corpus report as indented JSON to stdout.
func OutputCorpusJSON(input model.RenderCorpusInput, contributors, scopes []model.NameCount, summary model.IssueSummary) error {
	report := BuildCorpusReport(input, contributors, scopes, summary, time.Now().UTC().Format(time.RFC3339))
	return printJSON(report)
}

// BuildCorpusReport assembles the JSON report model.
func BuildCorpusReport(input model.RenderCorpusInput, contributors, scopes []model.NameCount, summary model.IssueSummary, generatedAt string) model.CorpusReportJSON {
	commitCount := 0
	for _, rel := range input.Releases {
		commitCount += len(rel.Commits)
	}

	return model.CorpusReportJSON{
		Dir:          input.Dir,
		GeneratedAt:  generatedAt,
		ReleaseCount: len(input.Releases),
		CommitCount:  commitCount,
		Summary:      summary,
		Releases:     input.Releases,
		Stats:        input.Stats,
		Issues:       input.Issues,
		Contributors: contributors,
		Scopes:       scopes,
	}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
