// Package cueformat serializes a release record back into the corpus file
// layout. Loading the output must yield a field-for-field equal record.
package cueformat

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/thirukguru/relnotes/model"
)

// WriteRelease emits one <version>.cue file body for the record.
func WriteRelease(w io.Writer, rel model.Release) error {
	var b strings.Builder

	b.WriteString("package metadata\n\n")
	fmt.Fprintf(&b, "releases: %s: {\n", quote(rel.Version))
	fmt.Fprintf(&b, "\tdate: %s\n", quote(rel.Date))
	if rel.Codename != "" {
		fmt.Fprintf(&b, "\tcodename: %s\n", quote(rel.Codename))
	}
	if rel.Description != "" {
		fmt.Fprintf(&b, "\tdescription: %s\n", quote(rel.Description))
	}

	if len(rel.KnownIssues) > 0 {
		b.WriteString("\tknown_issues: [\n")
		for _, issue := range rel.KnownIssues {
			fmt.Fprintf(&b, "\t\t%s,\n", quote(issue))
		}
		b.WriteString("\t]\n")
	}

	if len(rel.WhatsNext) > 0 {
		b.WriteString("\twhats_next: [\n")
		for _, wn := range rel.WhatsNext {
			fmt.Fprintf(&b, "\t\t{title: %s, description: %s},\n", quote(wn.Title), quote(wn.Description))
		}
		b.WriteString("\t]\n")
	}

	if len(rel.Changelog) > 0 {
		b.WriteString("\tchangelog: [\n")
		for _, entry := range rel.Changelog {
			b.WriteString("\t\t{\n")
			fmt.Fprintf(&b, "\t\t\ttype: %s\n", quote(entry.Type))
			if len(entry.Scopes) > 0 {
				fmt.Fprintf(&b, "\t\t\tscopes: %s\n", stringList(entry.Scopes))
			}
			fmt.Fprintf(&b, "\t\t\tdescription: %s\n", quote(entry.Description))
			if entry.Breaking {
				b.WriteString("\t\t\tbreaking: true\n")
			}
			if len(entry.PRNumbers) > 0 {
				fmt.Fprintf(&b, "\t\t\tpr_numbers: %s\n", intList(entry.PRNumbers))
			}
			if len(entry.Contributors) > 0 {
				fmt.Fprintf(&b, "\t\t\tcontributors: %s\n", stringList(entry.Contributors))
			}
			b.WriteString("\t\t},\n")
		}
		b.WriteString("\t]\n")
	}

	b.WriteString("\tcommits: [\n")
	for _, c := range rel.Commits {
		b.WriteString("\t\t" + commitLiteral(c) + ",\n")
	}
	b.WriteString("\t]\n")
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// commitLiteral emits a commit entry as a single-line struct, the layout the
// generated corpus uses.
func commitLiteral(c model.Commit) string {
	fields := []string{
		"sha: " + quote(c.SHA),
		"date: " + quote(c.Date),
		"description: " + quote(c.Description),
		"pr_number: " + prNumber(c.PRNumber),
	}
	if len(c.Scopes) > 0 {
		fields = append(fields, "scopes: "+stringList(c.Scopes))
	}
	fields = append(fields,
		"type: "+quote(c.Type),
		"breaking_change: "+strconv.FormatBool(c.BreakingChange),
		"author: "+quote(c.Author),
		"files_count: "+strconv.Itoa(c.FilesCount),
		"insertions_count: "+strconv.Itoa(c.InsertionsCount),
		"deletions_count: "+strconv.Itoa(c.DeletionsCount),
	)
	return "{" + strings.Join(fields, ", ") + "}"
}

func prNumber(n *int) string {
	if n == nil {
		return "null"
	}
	return strconv.Itoa(*n)
}

func stringList(items []string) string {
	quoted := make([]string, 0, len(items))
	for _, item := range items {
		quoted = append(quoted, quote(item))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func intList(items []int) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, strconv.Itoa(item))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// quote produces a double-quoted CUE string. Go's escaping is a subset of
// CUE's for printable text, which is all the corpus contains.
func quote(s string) string {
	return strconv.Quote(s)
}
