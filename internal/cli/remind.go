package cli

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vburojevic/clw/internal/output"
	"github.com/vburojevic/clw/internal/reminder"
)

// RemindCmd shows or manages the re-analysis reminder
type RemindCmd struct {
	Check   RemindCheckCmd   `cmd:"" default:"withargs" help:"Nag if logs are due for analysis (interactive on a terminal)"`
	Status  RemindStatusCmd  `cmd:"" help:"Show reminder state"`
	Snooze  RemindSnoozeCmd  `cmd:"" help:"Postpone the reminder"`
	Disable RemindDisableCmd `cmd:"" help:"Stop reminding"`
	Reset   RemindResetCmd   `cmd:"" help:"Forget all reminder state"`
}

// RemindCheckCmd nags when analysis is due
type RemindCheckCmd struct {
	NoPrompt bool `name:"no-prompt" help:"Never show the interactive menu"`
}

// Run executes the remind command
func (c *RemindCheckCmd) Run(globals *Globals) error {
	maybeNoStyle(globals)
	r, err := newReminder(globals)
	if err != nil {
		return outputErrorCommon(globals, "INVALID_CONFIG", err.Error(), "Check reminder.interval and reminder.snooze")
	}

	if globals.Config != nil && !globals.Config.Reminder.Enabled {
		return writeReminder(globals, r.Status(), "", "Reminder disabled in config")
	}
	if !r.Due() {
		if globals.Quiet {
			return nil
		}
		return writeReminder(globals, r.Status(), "", "")
	}

	in, out, ok := c.terminal(globals)
	if !ok {
		return writeReminder(globals, r.Status(), r.Message()+" Run `clw scan` to analyze.", "")
	}

	choice, err := r.Prompt(tea.WithInput(in), tea.WithOutput(out))
	if err != nil {
		return outputErrorCommon(globals, "PROMPT_FAILED", err.Error())
	}
	runNow, err := r.Apply(choice)
	if err != nil {
		return outputErrorCommon(globals, "STATE_WRITE_FAILED", err.Error(), hintForReminder(err))
	}
	if runNow {
		_, err := runAnalysis(globals, analysisRequest{
			Paths:  []string{projectsDir(globals)},
			Record: true,
		})
		return err
	}

	var action string
	switch choice {
	case reminder.ChoiceSnooze:
		action = "Snoozed until " + r.Status().SnoozedUntil.Local().Format(time.RFC1123)
	case reminder.ChoiceDisable:
		action = "Reminder disabled; re-enable with `clw remind reset`"
	default:
		action = "No action taken"
	}
	return writeReminder(globals, r.Status(), "", action)
}

// terminal reports whether the menu can be shown
func (c *RemindCheckCmd) terminal(globals *Globals) (*os.File, *os.File, bool) {
	if c.NoPrompt || globals.Format != "text" {
		return nil, nil, false
	}
	in, ok := globals.Stdin.(*os.File)
	if !ok || !isTerminal(in) {
		return nil, nil, false
	}
	out, ok := globals.Stdout.(*os.File)
	if !ok || !isTerminal(out) {
		return nil, nil, false
	}
	return in, out, true
}

// RemindStatusCmd shows reminder state
type RemindStatusCmd struct{}

// Run executes the remind status command
func (c *RemindStatusCmd) Run(globals *Globals) error {
	maybeNoStyle(globals)
	r, err := newReminder(globals)
	if err != nil {
		return outputErrorCommon(globals, "INVALID_CONFIG", err.Error())
	}
	var message string
	if r.Due() {
		message = r.Message()
	}
	return writeReminder(globals, r.Status(), message, "")
}

// RemindSnoozeCmd postpones the reminder
type RemindSnoozeCmd struct {
	Duration time.Duration `arg:"" optional:"" help:"How long to snooze (default: reminder.snooze)"`
}

// Run executes the remind snooze command
func (c *RemindSnoozeCmd) Run(globals *Globals) error {
	maybeNoStyle(globals)
	if c.Duration < 0 {
		return outputErrorCommon(globals, "INVALID_DURATION", "snooze duration must be positive")
	}
	r, err := newReminder(globals)
	if err != nil {
		return outputErrorCommon(globals, "INVALID_CONFIG", err.Error())
	}
	if err := r.Snooze(c.Duration); err != nil {
		return outputErrorCommon(globals, "STATE_WRITE_FAILED", err.Error(), hintForReminder(err))
	}
	status := r.Status()
	return writeReminder(globals, status, "", "Snoozed until "+status.SnoozedUntil.Local().Format(time.RFC1123))
}

// RemindDisableCmd turns the reminder off
type RemindDisableCmd struct{}

// Run executes the remind disable command
func (c *RemindDisableCmd) Run(globals *Globals) error {
	maybeNoStyle(globals)
	r, err := newReminder(globals)
	if err != nil {
		return outputErrorCommon(globals, "INVALID_CONFIG", err.Error())
	}
	if err := r.Disable(); err != nil {
		return outputErrorCommon(globals, "STATE_WRITE_FAILED", err.Error(), hintForReminder(err))
	}
	return writeReminder(globals, r.Status(), "", "Reminder disabled")
}

// RemindResetCmd clears reminder state
type RemindResetCmd struct{}

// Run executes the remind reset command
func (c *RemindResetCmd) Run(globals *Globals) error {
	maybeNoStyle(globals)
	r, err := newReminder(globals)
	if err != nil {
		return outputErrorCommon(globals, "INVALID_CONFIG", err.Error())
	}
	if err := r.Reset(); err != nil {
		return outputErrorCommon(globals, "STATE_WRITE_FAILED", err.Error(), hintForReminder(err))
	}
	return writeReminder(globals, r.Status(), "", "Reminder state reset")
}

func writeReminder(globals *Globals, status reminder.Status, message, action string) error {
	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteReminder(status, message, action)
	}
	return output.NewTextWriter(globals.Stdout).WriteReminder(status, message, action)
}
