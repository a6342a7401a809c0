package orchestrator

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/thirukguru/relnotes/model"
	"github.com/thirukguru/relnotes/shared/jsonoutput"
)

func (s *service) exportIfRequested(flags model.Flags, input model.RenderCorpusInput, contributors, scopes []model.NameCount, summary model.IssueSummary) error {
	if strings.TrimSpace(flags.ExportJSON) != "" {
		report := jsonoutput.BuildCorpusReport(input, contributors, scopes, summary, time.Now().UTC().Format(time.RFC3339))
		b, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(flags.ExportJSON, b, 0o644); err != nil {
			return err
		}
	}

	if strings.TrimSpace(flags.ExportCSV) != "" {
		f, err := os.Create(flags.ExportCSV)
		if err != nil {
			return err
		}
		defer f.Close()
		w := csv.NewWriter(f)
		defer w.Flush()
		_ = w.Write([]string{"version", "sha", "date", "type", "author", "pr_number", "breaking", "files", "insertions", "deletions", "description"})
		for _, rel := range input.Releases {
			for _, c := range rel.Commits {
				pr := ""
				if c.PRNumber != nil {
					pr = strconv.Itoa(*c.PRNumber)
				}
				_ = w.Write([]string{
					rel.Version, c.SHA, c.Date, c.Type, c.Author, pr,
					strconv.FormatBool(c.BreakingChange),
					strconv.Itoa(c.FilesCount), strconv.Itoa(c.InsertionsCount), strconv.Itoa(c.DeletionsCount),
					c.Description,
				})
			}
		}
	}

	return nil
}
