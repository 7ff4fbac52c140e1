package cli

import (
	"io"
	"os"

	"github.com/vburojevic/clw/internal/config"
	"github.com/vburojevic/clw/internal/output"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CLI is the root command structure for ClaudeLogWatcher
type CLI struct {
	// Global flags
	Format  string     `short:"f" default:"${config_format}" enum:"ndjson,text" help:"Output format"`
	Quiet   bool       `short:"q" help:"Suppress info output and per-line warnings"`
	Verbose bool       `short:"v" help:"Show debug output (files scanned, timings, config sources)"`
	Version VersionCmd `cmd:"" help:"Show version information"`
	Update  UpdateCmd  `cmd:"" help:"Show how to upgrade clw"`

	// Commands
	Validate   ValidateCmd   `cmd:"" help:"Validate Claude session log files against known schema versions"`
	Scan       ScanCmd       `cmd:"" help:"Scan the Claude projects directory and summarize log health"`
	CheckLine  CheckLineCmd  `cmd:"" name:"check-line" help:"Validate one JSON log entry read from stdin"`
	Versions   VersionsCmd   `cmd:"" help:"List supported log schema versions"`
	Remind     RemindCmd     `cmd:"" help:"Show or manage the reminder to re-analyze logs"`
	Schema     SchemaCmd     `cmd:"" help:"Output JSON Schema for clw output types"`
	Config     ConfigCmd     `cmd:"" help:"Show or manage configuration"`
	Doctor     DoctorCmd     `cmd:"" help:"Check configuration, log directory and reminder state"`
	Completion CompletionCmd `cmd:"" help:"Generate shell completions"`
}

// Globals holds shared state for all commands
type Globals struct {
	Format  string
	Quiet   bool
	Verbose bool
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config
	Logger  *zap.Logger

	// FlagsSet holds the global flags given on the command line
	FlagsSet map[string]bool
	// ConfigFile is the config file that was loaded, if any
	ConfigFile string
	// ConfigSources maps config keys to default/config/env/flag
	ConfigSources map[string]string
}

// NewGlobals creates a new Globals instance from CLI flags
func NewGlobals(cli *CLI) *Globals {
	return NewGlobalsWithConfig(cli, config.Default())
}

// NewGlobalsWithConfig creates a new Globals instance with config fallbacks
func NewGlobalsWithConfig(cli *CLI, cfg *config.Config) *Globals {
	if cfg == nil {
		cfg = config.Default()
	}
	g := &Globals{
		Format:  cli.Format,
		Quiet:   cli.Quiet,
		Verbose: cli.Verbose,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,
	}

	// If quiet/verbose weren't set via CLI, use config values
	if !cli.Quiet && cfg.Quiet {
		g.Quiet = true
	}
	if !cli.Verbose && cfg.Verbose {
		g.Verbose = true
	}

	g.Logger = newLogger(g.Stderr, g.Quiet, g.Verbose)
	return g
}

// newLogger builds the diagnostic logger. Diagnostics go to stderr so stdout
// stays a clean record stream.
func newLogger(w io.Writer, quiet, verbose bool) *zap.Logger {
	if quiet && !verbose {
		return zap.NewNop()
	}
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}

func (g *Globals) logger() *zap.Logger {
	if g == nil || g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}

// Debug prints a debug message if verbose mode is enabled
func (g *Globals) Debug(format string, args ...interface{}) {
	g.logger().Sugar().Debugf(format, args...)
}

// VersionCmd shows version information
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run(globals *Globals) error {
	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteRaw(map[string]interface{}{
			"type":          "version",
			"schemaVersion": output.SchemaVersion,
			"version":       Version,
			"commit":        Commit,
		})
	}
	_, err := io.WriteString(globals.Stdout, "clw version "+Version+" ("+Commit+")\n")
	return err
}

// Version information (set at build time)
var (
	Version = "dev"
	Commit  = "none"
)
