package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/vburojevic/clw/internal/config"
	"github.com/vburojevic/clw/internal/logschema"
	"github.com/vburojevic/clw/internal/output"
	"github.com/vburojevic/clw/internal/reminder"
	"github.com/vburojevic/clw/internal/scan"
)

// DoctorCmd checks configuration, the log directory and reminder state
type DoctorCmd struct{}

// checkResult represents a single diagnostic check
type checkResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

// doctorReport is the complete diagnostic report
type doctorReport struct {
	Type          string        `json:"type"`
	SchemaVersion int           `json:"schemaVersion"`
	Timestamp     string        `json:"timestamp"`
	Checks        []checkResult `json:"checks"`
	AllPassed     bool          `json:"all_passed"`
	ErrorCount    int           `json:"error_count"`
	WarnCount     int           `json:"warn_count"`
}

// Run executes the doctor command
func (c *DoctorCmd) Run(globals *Globals) error {
	maybeNoStyle(globals)
	checks := []checkResult{
		c.checkConfig(globals),
		c.checkProjectsDir(globals),
		c.checkReminderState(globals),
		c.checkSchema(),
	}

	// Count errors and warnings
	errorCount := 0
	warnCount := 0
	for _, check := range checks {
		switch check.Status {
		case "error":
			errorCount++
		case "warning":
			warnCount++
		}
	}

	report := doctorReport{
		Type:          "doctor",
		SchemaVersion: output.SchemaVersion,
		Timestamp:     time.Now().Format(time.RFC3339),
		Checks:        checks,
		AllPassed:     errorCount == 0,
		ErrorCount:    errorCount,
		WarnCount:     warnCount,
	}

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteRaw(report)
	}

	// Text output
	fmt.Fprintln(globals.Stdout, output.Styles.Header.Render("clw Doctor"))
	fmt.Fprintln(globals.Stdout)

	for _, check := range checks {
		var icon string
		switch check.Status {
		case "ok":
			icon = output.Styles.Success.Render("✓")
		case "warning":
			icon = output.Styles.Warning.Render("⚠")
		case "error":
			icon = output.Styles.Danger.Render("✗")
		}

		fmt.Fprintf(globals.Stdout, "%s %s\n", icon, check.Name)
		if check.Message != "" {
			fmt.Fprintf(globals.Stdout, "  %s\n", check.Message)
		}
		if check.Details != "" {
			fmt.Fprintf(globals.Stdout, "  %s\n", check.Details)
		}
	}

	fmt.Fprintln(globals.Stdout)
	if errorCount == 0 && warnCount == 0 {
		fmt.Fprintln(globals.Stdout, "All checks passed!")
	} else {
		fmt.Fprintf(globals.Stdout, "Errors: %d, Warnings: %d\n", errorCount, warnCount)
	}

	return nil
}

func (c *DoctorCmd) checkConfig(globals *Globals) checkResult {
	path := globals.ConfigFile
	if path == "" {
		path = config.ConfigFile()
	}
	if path == "" {
		return checkResult{
			Name:    "config",
			Status:  "ok",
			Message: "No config file (using defaults)",
			Details: "Optional: clw config generate > ~/.clw.yaml",
		}
	}

	if _, err := config.LoadFromFile(path); err != nil {
		return checkResult{
			Name:    "config",
			Status:  "error",
			Message: "Config file is invalid: " + path,
			Details: err.Error(),
		}
	}
	return checkResult{
		Name:    "config",
		Status:  "ok",
		Message: "Loaded from: " + path,
	}
}

func (c *DoctorCmd) checkProjectsDir(globals *Globals) checkResult {
	dir := projectsDir(globals)
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return checkResult{
				Name:    "projects_dir",
				Status:  "warning",
				Message: "Not found: " + dir,
				Details: "Set scan.projects_dir or CLW_PROJECTS_DIR if Claude Code logs live elsewhere",
			}
		}
		return checkResult{
			Name:    "projects_dir",
			Status:  "error",
			Message: "Cannot access " + dir,
			Details: err.Error(),
		}
	}
	if !info.IsDir() {
		return checkResult{
			Name:    "projects_dir",
			Status:  "error",
			Message: dir + " is not a directory",
		}
	}

	files, err := scan.ExpandPaths([]string{dir}, scanOptions(globals))
	if err != nil {
		return checkResult{
			Name:    "projects_dir",
			Status:  "error",
			Message: "Cannot list " + dir,
			Details: err.Error(),
		}
	}
	if len(files) == 0 {
		return checkResult{
			Name:    "projects_dir",
			Status:  "warning",
			Message: "No session logs in " + dir,
		}
	}
	return checkResult{
		Name:    "projects_dir",
		Status:  "ok",
		Message: fmt.Sprintf("%d session logs in %s", len(files), dir),
	}
}

func (c *DoctorCmd) checkReminderState(globals *Globals) checkResult {
	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if !cfg.Reminder.Enabled {
		return checkResult{
			Name:    "reminder",
			Status:  "ok",
			Message: "Disabled in config",
		}
	}

	path := config.ExpandHome(cfg.Reminder.StateFile)
	store := reminder.NewStore(path)
	if err := store.Load(); err != nil {
		status := "error"
		if errors.Is(err, reminder.ErrCorruptState) {
			status = "warning"
		}
		return checkResult{
			Name:    "reminder",
			Status:  status,
			Message: "Cannot read state: " + path,
			Details: hintForReminder(err),
		}
	}

	st := store.State()
	msg := "State: " + path
	if st.LastRun.IsZero() {
		msg += " (logs never analyzed)"
	} else {
		msg += " (last run " + st.LastRun.Local().Format(time.RFC3339) + ")"
	}
	return checkResult{
		Name:    "reminder",
		Status:  "ok",
		Message: msg,
	}
}

func (c *DoctorCmd) checkSchema() checkResult {
	supported := logschema.SupportedVersions()
	var known []string
	for _, d := range logschema.Descriptors() {
		known = append(known, d.Version.Detected)
	}
	return checkResult{
		Name:    "log_schema",
		Status:  "ok",
		Message: "Supported versions: " + strings.Join(supported, ", "),
		Details: "Recognized versions: " + strings.Join(known, ", "),
	}
}
