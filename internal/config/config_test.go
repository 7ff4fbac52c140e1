package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(origDir))
	})
	return tmpDir
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NotNil(t, cfg)
	assert.Equal(t, "ndjson", cfg.Format)
	assert.False(t, cfg.Quiet)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, "~/.claude/projects", cfg.Scan.ProjectsDir)
	assert.Equal(t, "*.jsonl", cfg.Scan.Pattern)
	assert.Equal(t, 4, cfg.Scan.Concurrency)
	assert.Equal(t, 1024*1024, cfg.Scan.MaxLineBytes)
	assert.Equal(t, 50, cfg.Scan.MaxWarnings)
	assert.True(t, cfg.Reminder.Enabled)
	assert.Equal(t, "168h", cfg.Reminder.Interval)
	assert.Equal(t, "24h", cfg.Reminder.Snooze)
	assert.Equal(t, "~/.clw/reminder.json", cfg.Reminder.StateFile)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("returns defaults when no config file exists", func(t *testing.T) {
		chdirTemp(t)

		cfg, err := Load()
		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, "*.jsonl", cfg.Scan.Pattern)
	})

	t.Run("loads config from file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configContent := `
format: text
quiet: true
scan:
  projects_dir: /data/claude
  concurrency: 8
`
		configPath := filepath.Join(tmpDir, "clw.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

		cfg, err := LoadFromFile(configPath)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "text", cfg.Format)
		assert.True(t, cfg.Quiet)
		assert.Equal(t, "/data/claude", cfg.Scan.ProjectsDir)
		assert.Equal(t, 8, cfg.Scan.Concurrency)
		// Unset keys keep their defaults
		assert.Equal(t, "*.jsonl", cfg.Scan.Pattern)
		assert.Equal(t, "168h", cfg.Reminder.Interval)
	})
}

func TestLoadFromFile(t *testing.T) {
	t.Run("returns error for empty path", func(t *testing.T) {
		cfg, err := LoadFromFile("")
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		cfg, err := LoadFromFile("/nonexistent/path/config.yaml")
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("invalid: yaml: content: ["), 0644))

		cfg, err := LoadFromFile(configPath)
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		tests := []struct {
			name    string
			content string
			wantErr string
		}{
			{"format", "format: xml", "invalid format"},
			{"interval", "reminder:\n  interval: weekly", "reminder.interval"},
			{"negative snooze", "reminder:\n  snooze: -1h", "must be positive"},
			{"pattern", "scan:\n  pattern: \"[\"", "scan.pattern"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				configPath := filepath.Join(t.TempDir(), "clw.yaml")
				require.NoError(t, os.WriteFile(configPath, []byte(tt.content), 0644))

				_, err := LoadFromFile(configPath)
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			})
		}
	})

	t.Run("parses all config fields", func(t *testing.T) {
		configContent := `
format: ndjson
quiet: false
verbose: true
scan:
  projects_dir: ~/logs
  pattern: "*.log"
  concurrency: 2
  max_line_bytes: 4096
  max_warnings: -1
reminder:
  enabled: false
  interval: 72h
  snooze: 2h
  state_file: /tmp/clw-state.json
`
		configPath := filepath.Join(t.TempDir(), "clw.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

		cfg, err := LoadFromFile(configPath)
		require.NoError(t, err)

		assert.Equal(t, "ndjson", cfg.Format)
		assert.False(t, cfg.Quiet)
		assert.True(t, cfg.Verbose)
		assert.Equal(t, "~/logs", cfg.Scan.ProjectsDir)
		assert.Equal(t, "*.log", cfg.Scan.Pattern)
		assert.Equal(t, 2, cfg.Scan.Concurrency)
		assert.Equal(t, 4096, cfg.Scan.MaxLineBytes)
		assert.Equal(t, -1, cfg.Scan.MaxWarnings)
		assert.False(t, cfg.Reminder.Enabled)
		assert.Equal(t, "/tmp/clw-state.json", cfg.Reminder.StateFile)

		interval, err := cfg.Reminder.IntervalDuration()
		require.NoError(t, err)
		assert.Equal(t, 72*time.Hour, interval)
		snooze, err := cfg.Reminder.SnoozeDuration()
		require.NoError(t, err)
		assert.Equal(t, 2*time.Hour, snooze)
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Run("finds .clw.yaml in current directory", func(t *testing.T) {
		tmpDir := chdirTemp(t)

		configPath := filepath.Join(tmpDir, ".clw.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("format: text"), 0644))

		found := findConfigFile()
		// Resolve symlinks for comparison (macOS /var -> /private/var)
		expectedPath, err := filepath.EvalSymlinks(configPath)
		require.NoError(t, err)
		foundPath, err := filepath.EvalSymlinks(found)
		require.NoError(t, err)
		assert.Equal(t, expectedPath, foundPath)
	})

	t.Run("prefers .clw.yaml over .clw.yml", func(t *testing.T) {
		tmpDir := chdirTemp(t)

		yamlPath := filepath.Join(tmpDir, ".clw.yaml")
		ymlPath := filepath.Join(tmpDir, ".clw.yml")
		require.NoError(t, os.WriteFile(yamlPath, []byte("format: text"), 0644))
		require.NoError(t, os.WriteFile(ymlPath, []byte("format: ndjson"), 0644))

		found := findConfigFile()
		expectedPath, err := filepath.EvalSymlinks(yamlPath)
		require.NoError(t, err)
		foundPath, err := filepath.EvalSymlinks(found)
		require.NoError(t, err)
		assert.Equal(t, expectedPath, foundPath)
		assert.Equal(t, found, ConfigFile())
	})
}

func TestEnvOverridesViaViper(t *testing.T) {
	t.Run("format overrides from env", func(t *testing.T) {
		t.Setenv("CLW_FORMAT", "text")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "text", cfg.Format)
	})

	t.Run("quiet overrides from env", func(t *testing.T) {
		t.Setenv("CLW_QUIET", "true")
		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.Quiet)
	})

	t.Run("nested key via full name", func(t *testing.T) {
		t.Setenv("CLW_SCAN_CONCURRENCY", "9")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 9, cfg.Scan.Concurrency)
	})

	t.Run("shortcuts", func(t *testing.T) {
		t.Setenv("CLW_PROJECTS_DIR", "/env/projects")
		t.Setenv("CLW_REMIND_INTERVAL", "12h")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "/env/projects", cfg.Scan.ProjectsDir)
		assert.Equal(t, "12h", cfg.Reminder.Interval)
	})

	t.Run("env beats config file", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "clw.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("format: ndjson"), 0644))
		t.Setenv("CLW_FORMAT", "text")

		cfg, err := LoadFromFile(configPath)
		require.NoError(t, err)
		assert.Equal(t, "text", cfg.Format)
	})
}

func TestComputeSources(t *testing.T) {
	tmpDir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".clw.yaml"), []byte("verbose: true\nscan:\n  pattern: \"*.log\"\n"), 0644))
	t.Setenv("CLW_PROJECTS_DIR", "/env/projects")

	_, meta, err := LoadWithMeta()
	require.NoError(t, err)
	require.NotEmpty(t, meta.ConfigFile)

	sources := ComputeSources(meta, map[string]bool{"format": true})
	assert.Equal(t, "flag", sources["format"])
	assert.Equal(t, "env", sources["scan.projects_dir"])
	assert.Equal(t, "config", sources["verbose"])
	assert.Equal(t, "config", sources["scan.pattern"])
	assert.Equal(t, "default", sources["reminder.interval"])
	assert.Len(t, sources, len(Keys()))

	t.Run("nil meta", func(t *testing.T) {
		sources := ComputeSources(nil, nil)
		assert.Equal(t, "default", sources["quiet"])
	})
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".clw", "reminder.json"), ExpandHome("~/.clw/reminder.json"))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, "/abs/path", ExpandHome("/abs/path"))
	assert.Equal(t, "~user/x", ExpandHome("~user/x"))
}
