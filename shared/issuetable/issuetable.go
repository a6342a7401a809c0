// Package issuetable renders validation results as console tables.
package issuetable

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/thirukguru/relnotes/model"
)

// DrawIssueTable renders the validation report.
func DrawIssueTable(issues []model.Issue, summary model.IssueSummary) {
	fmt.Println("\n🔎 Validation")
	if len(issues) == 0 {
		fmt.Printf("   %s\n", text.FgGreen.Sprint("🟢 All invariants hold"))
		return
	}

	fmt.Print("   ")
	if summary.Errors > 0 {
		fmt.Printf("%s ", text.FgRed.Sprintf("🔴 %d Errors", summary.Errors))
	}
	if summary.Warnings > 0 {
		fmt.Printf("%s ", text.FgYellow.Sprintf("🟡 %d Warnings", summary.Warnings))
	}
	fmt.Println()

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Severity", "Rule", "Release", "Ref", "Message"})
	for _, issue := range issues {
		severity := issue.Severity
		switch issue.Severity {
		case model.SeverityError:
			severity = text.FgRed.Sprint(issue.Severity)
		case model.SeverityWarning:
			severity = text.FgYellow.Sprint(issue.Severity)
		}
		t.AppendRow(table.Row{severity, issue.Rule, issue.Version, issue.Ref, issue.Message})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}
