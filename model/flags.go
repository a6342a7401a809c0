package model

// Flags represents the command line flags for the default load workflow.
type Flags struct {
	Dir        string
	Release    string
	Output     string
	OutputFile string
	Strict     bool
	Store      bool
	DBPath     string
	ExportJSON string
	ExportCSV  string
	Top        int
	ConfigPath string
	Version    bool
}
