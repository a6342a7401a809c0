// Package releasetable renders release records and corpus statistics as
// console tables.
package releasetable

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/thirukguru/relnotes/model"
)

// DrawSummaryTable renders the per-release overview.
func DrawSummaryTable(releases []model.Release, stats []model.ReleaseStats) {
	if len(releases) == 0 {
		return
	}
	statsByVersion := map[string]model.ReleaseStats{}
	for _, rs := range stats {
		statsByVersion[rs.Version] = rs
	}

	fmt.Println("\n📦 Releases")

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Version", "Date", "Codename", "Commits", "Files", "+Lines", "-Lines", "Breaking", "Authors"})
	for _, rel := range releases {
		rs := statsByVersion[rel.Version]
		breaking := fmt.Sprintf("%d", rs.BreakingCount)
		if rs.BreakingCount > 0 {
			breaking = text.FgRed.Sprintf("%d", rs.BreakingCount)
		}
		t.AppendRow(table.Row{
			rel.Version, rel.Date, rel.Codename, rs.CommitCount,
			rs.FilesCount, rs.InsertionsCount, rs.DeletionsCount, breaking, rs.AuthorCount,
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// DrawChangelogTable renders one release's curated changelog.
func DrawChangelogTable(rel model.Release) {
	if len(rel.Changelog) == 0 {
		return
	}

	fmt.Printf("\n📝 Changelog for %s\n", rel.Version)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Type", "Scopes", "Description", "PRs", "Contributors"})
	for _, entry := range rel.Changelog {
		typeCell := entry.Type
		if entry.Breaking {
			typeCell = text.FgRed.Sprintf("%s (breaking)", entry.Type)
		}
		prs := make([]string, 0, len(entry.PRNumbers))
		for _, pr := range entry.PRNumbers {
			prs = append(prs, fmt.Sprintf("#%d", pr))
		}
		t.AppendRow(table.Row{
			typeCell,
			strings.Join(entry.Scopes, ", "),
			truncate(entry.Description, 70),
			strings.Join(prs, ", "),
			strings.Join(entry.Contributors, ", "),
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// DrawCommitTable renders one release's raw commit log.
func DrawCommitTable(rel model.Release) {
	if len(rel.Commits) == 0 {
		return
	}

	fmt.Printf("\n🔨 Commits for %s (%d)\n", rel.Version, len(rel.Commits))

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"SHA", "Type", "Description", "PR", "Author", "Files", "+", "-"})
	for _, c := range rel.Commits {
		pr := ""
		if c.PRNumber != nil {
			pr = fmt.Sprintf("#%d", *c.PRNumber)
		}
		desc := truncate(c.Description, 60)
		if c.BreakingChange {
			desc = text.FgRed.Sprint(desc)
		}
		t.AppendRow(table.Row{
			shortSHA(c.SHA), c.Type, desc, pr, c.Author,
			c.FilesCount, c.InsertionsCount, c.DeletionsCount,
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// DrawLeaderboards renders contributor and scope rankings side by side.
func DrawLeaderboards(contributors, scopes []model.NameCount) {
	if len(contributors) > 0 {
		fmt.Println("\n👥 Top contributors")
		drawNameCounts(contributors, "Author", "Commits")
	}
	if len(scopes) > 0 {
		fmt.Println("\n🏷️  Top scopes")
		drawNameCounts(scopes, "Scope", "Changes")
	}
}

func drawNameCounts(rows []model.NameCount, nameHeader, countHeader string) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{nameHeader, countHeader})
	for _, row := range rows {
		t.AppendRow(table.Row{row.Name, row.Count})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "\n", " ")
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
