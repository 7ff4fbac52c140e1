package cli

import (
	"fmt"

	"github.com/vburojevic/clw/internal/config"
	"github.com/vburojevic/clw/internal/output"
)

// ConfigCmd shows or manages configuration
type ConfigCmd struct {
	Show     ConfigShowCmd     `cmd:"" default:"withargs" help:"Show current configuration"`
	Path     ConfigPathCmd     `cmd:"" help:"Show configuration file path"`
	Generate ConfigGenerateCmd `cmd:"" help:"Generate sample configuration file"`
}

// ConfigShowCmd shows current configuration
type ConfigShowCmd struct{}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}
	sources := globals.ConfigSources
	if sources == nil {
		sources = config.ComputeSources(nil, globals.FlagsSet)
	}

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteRaw(map[string]interface{}{
			"type":          "config",
			"schemaVersion": output.SchemaVersion,
			"format":        cfg.Format,
			"quiet":         cfg.Quiet,
			"verbose":       cfg.Verbose,
			"scan":          cfg.Scan,
			"reminder":      cfg.Reminder,
			"config_file":   globals.ConfigFile,
			"sources":       sources,
		})
	}

	// Text output
	out := globals.Stdout
	fmt.Fprintln(out, "Current Configuration:")
	fmt.Fprintln(out, "")
	fmt.Fprintf(out, "  format:  %s (%s)\n", cfg.Format, sources["format"])
	fmt.Fprintf(out, "  quiet:   %v (%s)\n", cfg.Quiet, sources["quiet"])
	fmt.Fprintf(out, "  verbose: %v (%s)\n", cfg.Verbose, sources["verbose"])
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Scan:")
	fmt.Fprintf(out, "  projects_dir:   %s (%s)\n", cfg.Scan.ProjectsDir, sources["scan.projects_dir"])
	fmt.Fprintf(out, "  pattern:        %s (%s)\n", cfg.Scan.Pattern, sources["scan.pattern"])
	fmt.Fprintf(out, "  concurrency:    %d (%s)\n", cfg.Scan.Concurrency, sources["scan.concurrency"])
	fmt.Fprintf(out, "  max_line_bytes: %d (%s)\n", cfg.Scan.MaxLineBytes, sources["scan.max_line_bytes"])
	fmt.Fprintf(out, "  max_warnings:   %d (%s)\n", cfg.Scan.MaxWarnings, sources["scan.max_warnings"])
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Reminder:")
	fmt.Fprintf(out, "  enabled:    %v (%s)\n", cfg.Reminder.Enabled, sources["reminder.enabled"])
	fmt.Fprintf(out, "  interval:   %s (%s)\n", cfg.Reminder.Interval, sources["reminder.interval"])
	fmt.Fprintf(out, "  snooze:     %s (%s)\n", cfg.Reminder.Snooze, sources["reminder.snooze"])
	fmt.Fprintf(out, "  state_file: %s (%s)\n", cfg.Reminder.StateFile, sources["reminder.state_file"])

	if globals.ConfigFile != "" {
		fmt.Fprintln(out, "")
		fmt.Fprintf(out, "Loaded from: %s\n", globals.ConfigFile)
	}

	return nil
}

// ConfigPathCmd shows config file path
type ConfigPathCmd struct{}

// Run executes the config path command
func (c *ConfigPathCmd) Run(globals *Globals) error {
	path := config.ConfigFile()

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteRaw(map[string]interface{}{
			"type":          "config_path",
			"schemaVersion": output.SchemaVersion,
			"path":          path,
		})
	}

	if path == "" {
		fmt.Fprintln(globals.Stdout, "No configuration file found")
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintln(globals.Stdout, "Create one at:")
		fmt.Fprintln(globals.Stdout, "  ./.clw.yaml")
		fmt.Fprintln(globals.Stdout, "  ~/.clw.yaml")
		fmt.Fprintln(globals.Stdout, "  ~/.config/clw/config.yaml")
	} else {
		fmt.Fprintf(globals.Stdout, "Config file: %s\n", path)
	}

	return nil
}

// ConfigGenerateCmd generates a sample configuration file
type ConfigGenerateCmd struct{}

const sampleConfig = `# clw configuration file
# Place this file at ./.clw.yaml, ~/.clw.yaml or ~/.config/clw/config.yaml

# Output format: "ndjson" (default) or "text"
format: ndjson

# Suppress info output and per-line warnings
quiet: false

# Enable verbose/debug output
verbose: false

scan:
  # Where Claude Code keeps session logs (CLW_PROJECTS_DIR)
  projects_dir: ~/.claude/projects

  # Files to pick up when walking directories
  pattern: "*.jsonl"

  # Files scanned in parallel
  concurrency: 4

  # Longest line accepted before a file is abandoned
  max_line_bytes: 1048576

  # Per-line warnings kept per file (-1 keeps none)
  max_warnings: 50

reminder:
  # Nag when logs have not been analyzed for a while
  enabled: true

  # How long between analyses (CLW_REMIND_INTERVAL)
  interval: 168h

  # How long "Remind me later" waits
  snooze: 24h

  # Where reminder state is kept
  state_file: ~/.clw/reminder.json
`

// Run executes the config generate command
func (c *ConfigGenerateCmd) Run(globals *Globals) error {
	_, err := fmt.Fprint(globals.Stdout, sampleConfig)
	return err
}
