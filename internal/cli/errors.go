package cli

import (
	"fmt"

	"github.com/vburojevic/clw/internal/output"
)

// outputErrorCommon normalizes error emission across commands, respecting
// ndjson vs text formats so scripts always get machine-readable failures.
func outputErrorCommon(globals *Globals, code, message string, hint ...string) error {
	cliErr := &CLIError{Code: code, Message: message}
	if len(hint) > 0 {
		cliErr.Hint = hint[0]
	}
	if globals == nil {
		return cliErr
	}
	if globals.Format == "ndjson" {
		_ = output.NewNDJSONWriter(globals.Stdout).WriteError(code, message, cliErr.Hint)
		return cliErr
	}
	fmt.Fprintf(globals.Stderr, "Error [%s]: %s\n", code, message)
	if cliErr.Hint != "" {
		fmt.Fprintf(globals.Stderr, "Hint: %s\n", cliErr.Hint)
	}
	return cliErr
}

// emitWarning respects format/quiet.
func emitWarning(globals *Globals, msg string) {
	if globals.Quiet {
		return
	}
	if globals.Format == "ndjson" {
		_ = output.NewNDJSONWriter(globals.Stdout).WriteWarning(msg)
		return
	}
	fmt.Fprintf(globals.Stderr, "Warning: %s\n", msg)
}

// emitInfo respects format/quiet.
func emitInfo(globals *Globals, msg, runID string, files int) {
	if globals.Quiet {
		return
	}
	if globals.Format == "ndjson" {
		_ = output.NewNDJSONWriter(globals.Stdout).WriteInfo(msg, runID, files)
		return
	}
	fmt.Fprintln(globals.Stderr, output.Styles.Label.Render(msg))
}
