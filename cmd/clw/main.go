package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/vburojevic/clw/internal/cli"
	"github.com/vburojevic/clw/internal/config"
)

const quickStart = `clw - schema checks for Claude Code session logs

START HERE (this is the command you want):
  clw scan

Other useful commands:
  clw validate session.jsonl            Validate specific log files
  tail -n1 session.jsonl | clw check-line
                                        Validate one entry
  clw versions                          List supported log versions
  clw remind                            Nag if logs are due for analysis
`

func main() {
	// Show quick start if no args provided
	if len(os.Args) == 1 {
		fmt.Print(quickStart)
		return
	}

	// Load configuration from files/environment (plus provenance metadata).
	cfg, meta, err := config.LoadWithMeta()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
		meta = nil
	}

	var c cli.CLI

	// Apply config defaults before parsing
	// These will be overridden by CLI flags if specified
	vars := kong.Vars{
		"config_format": cfg.Format,
	}

	ctx := kong.Parse(&c,
		kong.Name("clw"),
		kong.Description("ClaudeLogWatcher: validate Claude Code session logs against known schema versions\n\nSTART HERE: clw scan"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		vars,
	)

	// Create globals with config fallbacks
	globals := cli.NewGlobalsWithConfig(&c, cfg)
	defer func() { _ = globals.Logger.Sync() }()

	// Record which flags were explicitly provided so config show can
	// distinguish CLI overrides from config defaults.
	flagsSet := map[string]bool{}
	for _, p := range ctx.Path {
		if p.Flag != nil {
			flagsSet[p.Flag.Name] = true
		}
	}
	globals.FlagsSet = flagsSet
	if meta != nil {
		globals.ConfigFile = meta.ConfigFile
	}
	globals.ConfigSources = config.ComputeSources(meta, flagsSet)
	globals.Debug("config sources: %v", globals.ConfigSources)

	if err := ctx.Run(globals); err != nil {
		_ = globals.Logger.Sync()
		os.Exit(1)
	}
}
