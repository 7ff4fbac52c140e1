package cli

import (
	"fmt"
)

// ValidateCmd checks named log files or directories
type ValidateCmd struct {
	Paths    []string `arg:"" name:"path" help:"Log files or directories to validate"`
	Strict   bool     `help:"Exit non-zero when any entry is not a valid, supported log entry"`
	NoRecord bool     `name:"no-record" help:"Do not count this run for the re-analysis reminder"`
}

// Run executes the validate command
func (c *ValidateCmd) Run(globals *Globals) error {
	summary, err := runAnalysis(globals, analysisRequest{
		Paths:   c.Paths,
		Reports: true,
		Record:  !c.NoRecord,
	})
	if err != nil {
		return err
	}

	if c.Strict && summary.HasProblems {
		bad := summary.Unsupported + summary.Unknown + summary.Malformed
		msg := fmt.Sprintf("%d of %d entries failed validation", bad, bad+summary.Valid)
		if summary.FailedFiles > 0 {
			msg += fmt.Sprintf("; %d files could not be read", summary.FailedFiles)
		}
		return outputErrorCommon(globals, "VALIDATION_FAILED", msg,
			"Run `clw versions` to see which log formats are supported")
	}
	return nil
}
