// Package markdown renders a release record as a standalone release page.
package markdown

import (
	"fmt"
	"sort"
	"strings"

	"github.com/thirukguru/relnotes/model"
)

var sectionOrder = []string{"feat", "enhancement", "fix", "chore", "docs"}

var sectionTitles = map[string]string{
	"feat":        "New features",
	"enhancement": "Enhancements",
	"fix":         "Bug fixes",
	"chore":       "Chores",
	"docs":        "Documentation",
}

// RenderCorpus produces one markdown document covering every release,
// in the order given (newest first as loaded).
func RenderCorpus(releases []model.Release, stats []model.ReleaseStats) string {
	statsByVersion := map[string]model.ReleaseStats{}
	for _, rs := range stats {
		statsByVersion[rs.Version] = rs
	}

	commitCount := 0
	for _, rel := range releases {
		commitCount += len(rel.Commits)
	}

	var b strings.Builder
	b.WriteString("# Release notes\n\n")
	fmt.Fprintf(&b, "%d releases, %d commits.\n\n", len(releases), commitCount)
	for _, rel := range releases {
		b.WriteString(RenderRelease(rel, statsByVersion[rel.Version]))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// RenderRelease produces the markdown page for one release.
func RenderRelease(rel model.Release, stats model.ReleaseStats) string {
	var b strings.Builder

	title := "Release " + rel.Version
	if rel.Codename != "" {
		title += " - " + rel.Codename
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Released %s.\n\n", rel.Date)

	if rel.Description != "" {
		b.WriteString(strings.TrimSpace(rel.Description))
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "%d commits, %d files changed, +%d/-%d lines, %d contributors.\n\n",
		stats.CommitCount, stats.FilesCount, stats.InsertionsCount, stats.DeletionsCount, stats.AuthorCount)

	if len(rel.Changelog) > 0 {
		b.WriteString("## Changelog\n\n")
		writeChangelog(&b, rel.Changelog)
	}

	if len(rel.KnownIssues) > 0 {
		b.WriteString("## Known issues\n\n")
		for _, issue := range rel.KnownIssues {
			fmt.Fprintf(&b, "- %s\n", issue)
		}
		b.WriteString("\n")
	}

	if len(rel.WhatsNext) > 0 {
		b.WriteString("## What's next\n\n")
		for _, wn := range rel.WhatsNext {
			fmt.Fprintf(&b, "### %s\n\n%s\n\n", wn.Title, wn.Description)
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeChangelog(b *strings.Builder, entries []model.ChangelogEntry) {
	byType := map[string][]model.ChangelogEntry{}
	for _, entry := range entries {
		byType[entry.Type] = append(byType[entry.Type], entry)
	}

	types := make([]string, 0, len(byType))
	for _, t := range sectionOrder {
		if len(byType[t]) > 0 {
			types = append(types, t)
		}
	}
	// Unknown types still render, after the known ones.
	var rest []string
	for t := range byType {
		if _, ok := sectionTitles[t]; !ok {
			rest = append(rest, t)
		}
	}
	sort.Strings(rest)
	types = append(types, rest...)

	for _, t := range types {
		title := sectionTitles[t]
		if title == "" {
			title = t
		}
		fmt.Fprintf(b, "### %s\n\n", title)
		for _, entry := range byType[t] {
			b.WriteString("- ")
			if entry.Breaking {
				b.WriteString("**breaking** ")
			}
			if len(entry.Scopes) > 0 {
				fmt.Fprintf(b, "`%s`: ", strings.Join(entry.Scopes, ", "))
			}
			b.WriteString(strings.TrimSpace(entry.Description))
			if len(entry.PRNumbers) > 0 {
				prs := make([]string, 0, len(entry.PRNumbers))
				for _, pr := range entry.PRNumbers {
					prs = append(prs, fmt.Sprintf("#%d", pr))
				}
				fmt.Fprintf(b, " (%s)", strings.Join(prs, ", "))
			}
			if len(entry.Contributors) > 0 {
				fmt.Fprintf(b, ", thanks %s", "@"+strings.Join(entry.Contributors, ", @"))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
}
