package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Global settings
	Format  string `mapstructure:"format" json:"format"`
	Quiet   bool   `mapstructure:"quiet" json:"quiet"`
	Verbose bool   `mapstructure:"verbose" json:"verbose"`

	Scan     ScanConfig     `mapstructure:"scan" json:"scan"`
	Reminder ReminderConfig `mapstructure:"reminder" json:"reminder"`
}

// ScanConfig holds defaults for validate and scan
type ScanConfig struct {
	ProjectsDir  string `mapstructure:"projects_dir" json:"projects_dir"`
	Pattern      string `mapstructure:"pattern" json:"pattern"`
	Concurrency  int    `mapstructure:"concurrency" json:"concurrency"`
	MaxLineBytes int    `mapstructure:"max_line_bytes" json:"max_line_bytes"`
	MaxWarnings  int    `mapstructure:"max_warnings" json:"max_warnings"`
}

// ReminderConfig controls the re-run nag
type ReminderConfig struct {
	Enabled   bool   `mapstructure:"enabled" json:"enabled"`
	Interval  string `mapstructure:"interval" json:"interval"`
	Snooze    string `mapstructure:"snooze" json:"snooze"`
	StateFile string `mapstructure:"state_file" json:"state_file"`
}

// Meta records where configuration came from
type Meta struct {
	ConfigFile string
	// ConfigKeys are keys present in the config file
	ConfigKeys map[string]bool
	// EnvKeys are keys set through environment variables
	EnvKeys map[string]bool
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format:  "ndjson",
		Quiet:   false,
		Verbose: false,
		Scan: ScanConfig{
			ProjectsDir:  "~/.claude/projects",
			Pattern:      "*.jsonl",
			Concurrency:  4,
			MaxLineBytes: 1024 * 1024,
			MaxWarnings:  50,
		},
		Reminder: ReminderConfig{
			Enabled:   true,
			Interval:  "168h",
			Snooze:    "24h",
			StateFile: "~/.clw/reminder.json",
		},
	}
}

// envNames maps config keys to the environment variables that set them,
// highest precedence first.
var envNames = map[string]string{
	"format":              "CLW_FORMAT",
	"quiet":               "CLW_QUIET",
	"verbose":             "CLW_VERBOSE",
	"scan.projects_dir":   "CLW_SCAN_PROJECTS_DIR CLW_PROJECTS_DIR",
	"scan.pattern":        "CLW_SCAN_PATTERN",
	"scan.concurrency":    "CLW_SCAN_CONCURRENCY",
	"scan.max_line_bytes": "CLW_SCAN_MAX_LINE_BYTES",
	"scan.max_warnings":   "CLW_SCAN_MAX_WARNINGS",
	"reminder.enabled":    "CLW_REMINDER_ENABLED",
	"reminder.interval":   "CLW_REMINDER_INTERVAL CLW_REMIND_INTERVAL",
	"reminder.snooze":     "CLW_REMINDER_SNOOZE",
	"reminder.state_file": "CLW_REMINDER_STATE_FILE",
}

// Keys returns every configuration key in display order
func Keys() []string {
	return []string{
		"format", "quiet", "verbose",
		"scan.projects_dir", "scan.pattern", "scan.concurrency", "scan.max_line_bytes", "scan.max_warnings",
		"reminder.enabled", "reminder.interval", "reminder.snooze", "reminder.state_file",
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault("format", d.Format)
	v.SetDefault("quiet", d.Quiet)
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("scan.projects_dir", d.Scan.ProjectsDir)
	v.SetDefault("scan.pattern", d.Scan.Pattern)
	v.SetDefault("scan.concurrency", d.Scan.Concurrency)
	v.SetDefault("scan.max_line_bytes", d.Scan.MaxLineBytes)
	v.SetDefault("scan.max_warnings", d.Scan.MaxWarnings)
	v.SetDefault("reminder.enabled", d.Reminder.Enabled)
	v.SetDefault("reminder.interval", d.Reminder.Interval)
	v.SetDefault("reminder.snooze", d.Reminder.Snooze)
	v.SetDefault("reminder.state_file", d.Reminder.StateFile)

	for key, names := range envNames {
		_ = v.BindEnv(append([]string{key}, strings.Fields(names)...)...)
	}
	return v
}

// Load loads configuration from files and environment
// Config file search order (highest precedence first):
// 1. ./.clw.yaml or ./.clw.yml
// 2. ~/.clw.yaml or ~/.clw.yml
// 3. $XDG_CONFIG_HOME/clw/config.yaml (or ~/.config/clw/config.yaml)
// 4. /etc/clw/config.yaml
func Load() (*Config, error) {
	cfg, _, err := LoadWithMeta()
	return cfg, err
}

// LoadWithMeta loads configuration and reports where values came from
func LoadWithMeta() (*Config, *Meta, error) {
	return load(findConfigFile())
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}
	cfg, _, err := load(path)
	return cfg, err
}

func load(path string) (*Config, *Meta, error) {
	v := newViper()
	meta := &Meta{
		ConfigFile: path,
		ConfigKeys: make(map[string]bool),
		EnvKeys:    make(map[string]bool),
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, nil, err
		}
		for _, key := range Keys() {
			if v.InConfig(key) {
				meta.ConfigKeys[key] = true
			}
		}
	}
	for key, names := range envNames {
		for _, name := range strings.Fields(names) {
			if _, ok := os.LookupEnv(name); ok {
				meta.EnvKeys[key] = true
			}
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, meta, nil
}

// Validate checks values that cannot be expressed as types
func (c *Config) Validate() error {
	switch c.Format {
	case "ndjson", "text":
	default:
		return fmt.Errorf("invalid format %q (want ndjson or text)", c.Format)
	}
	if _, err := c.Reminder.IntervalDuration(); err != nil {
		return err
	}
	if _, err := c.Reminder.SnoozeDuration(); err != nil {
		return err
	}
	if _, err := filepath.Match(c.Scan.Pattern, ""); err != nil {
		return fmt.Errorf("invalid scan.pattern %q: %w", c.Scan.Pattern, err)
	}
	return nil
}

// IntervalDuration parses the reminder interval
func (r ReminderConfig) IntervalDuration() (time.Duration, error) {
	return parsePositiveDuration("reminder.interval", r.Interval)
}

// SnoozeDuration parses the reminder snooze
func (r ReminderConfig) SnoozeDuration() (time.Duration, error) {
	return parsePositiveDuration("reminder.snooze", r.Snooze)
}

func parsePositiveDuration(key, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, s)
	}
	return d, nil
}

// ComputeSources reports, for every key, whether its effective value came
// from a flag, the environment, the config file or the defaults.
// flagsSet holds config keys that were given on the command line.
func ComputeSources(meta *Meta, flagsSet map[string]bool) map[string]string {
	sources := make(map[string]string, len(Keys()))
	for _, key := range Keys() {
		switch {
		case flagsSet[key]:
			sources[key] = "flag"
		case meta != nil && meta.EnvKeys[key]:
			sources[key] = "env"
		case meta != nil && meta.ConfigKeys[key]:
			sources[key] = "config"
		default:
			sources[key] = "default"
		}
	}
	return sources
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// findConfigFile searches for config file in standard locations
func findConfigFile() string {
	// Config file names to search for (in order)
	names := []string{".clw.yaml", ".clw.yml", "clw.yaml", "clw.yml"}

	home, homeErr := os.UserHomeDir()
	configDir, configDirErr := os.UserConfigDir()

	// Search locations in order of precedence (highest first)
	var searchPaths []string

	// 1. Current directory
	if cwd, err := os.Getwd(); err == nil {
		searchPaths = append(searchPaths, cwd)
	}

	// 2. Home directory
	if homeErr == nil {
		searchPaths = append(searchPaths, home)
	}

	// 3. Config directory (e.g., ~/.config/clw/)
	if configDirErr == nil {
		searchPaths = append(searchPaths, filepath.Join(configDir, "clw"))
	}

	// 4. System config
	searchPaths = append(searchPaths, "/etc/clw")

	for _, dir := range searchPaths {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		// Also check for config.yaml in the clw subdirectories
		if filepath.Base(dir) == "clw" {
			path := filepath.Join(dir, "config.yaml")
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}

	return ""
}

// ConfigFile returns the path to the config file that would be loaded
func ConfigFile() string {
	return findConfigFile()
}
