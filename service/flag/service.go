package flag

import (
	"fmt"
	"slices"

	"github.com/spf13/pflag"
	"github.com/thirukguru/relnotes/model"
)

// NewService creates a new flag service.
func NewService() Service {
	return &service{}
}

// GetParsedFlags parses and returns the command-line flags.
func (s *service) GetParsedFlags() (model.Flags, error) {
	dir := pflag.StringP("dir", "d", "releases", "Directory containing <version>.cue release records")
	release := pflag.StringP("release", "r", "", "Limit the report to a single release version")
	output := pflag.StringP("output", "o", "table", "Output format (table, json, or markdown)")
	outputFile := pflag.StringP("output-file", "f", "", "Output file path (required for markdown format)")
	strict := pflag.Bool("strict", false, "Treat validation warnings as failures")
	store := pflag.Bool("store", false, "Persist the import in the local SQLite database")
	dbPath := pflag.String("db-path", "", "Custom SQLite database path (default ~/.relnotes/history.db)")
	exportJSON := pflag.String("export-json", "", "Export the loaded corpus as JSON to file path")
	exportCSV := pflag.String("export-csv", "", "Export the commit log as CSV to file path")
	top := pflag.Int("top", 10, "Number of rows in contributor and scope leaderboards")
	configPath := pflag.String("config-path", "", "Path to relnotes config file")
	version := pflag.BoolP("version", "v", false, "Show version information")

	pflag.Parse()

	flags := model.Flags{
		Dir:        *dir,
		Release:    *release,
		Output:     *output,
		OutputFile: *outputFile,
		Strict:     *strict,
		Store:      *store,
		DBPath:     *dbPath,
		ExportJSON: *exportJSON,
		ExportCSV:  *exportCSV,
		Top:        *top,
		ConfigPath: *configPath,
		Version:    *version,
	}

	if !slices.Contains([]string{"table", "json", "markdown"}, flags.Output) {
		return model.Flags{}, fmt.Errorf("unsupported output format: %s", flags.Output)
	}
	if flags.Output == "markdown" && flags.OutputFile == "" && flags.Release == "" {
		return model.Flags{}, fmt.Errorf("markdown output requires --release or --output-file")
	}

	return flags, nil
}
