package cli

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/vburojevic/clw/internal/logschema"
	"github.com/vburojevic/clw/internal/output"
)

// CheckLineCmd validates a single JSON value from stdin
type CheckLineCmd struct {
	Context string `short:"c" help:"Location to mention in the warning, e.g. 'line 42'"`
	Strict  bool   `help:"Exit non-zero when the entry is not valid"`
}

// Run executes the check-line command
func (c *CheckLineCmd) Run(globals *Globals) error {
	maybeNoStyle(globals)

	in := globals.Stdin
	if in == nil {
		return outputErrorCommon(globals, "NO_INPUT", "no input available on stdin")
	}

	dec := json.NewDecoder(in)
	dec.UseNumber()
	var entry any
	if err := dec.Decode(&entry); err != nil {
		if errors.Is(err, io.EOF) {
			return outputErrorCommon(globals, "NO_INPUT", "no JSON value on stdin",
				"Pipe one log line in, e.g. `tail -n1 session.jsonl | clw check-line`")
		}
		return outputErrorCommon(globals, "INVALID_JSON", "invalid JSON: "+err.Error())
	}

	result := logschema.ValidateEntry(entry)
	if c.Context != "" && !result.Valid {
		result.Warning = logschema.BuildWarning(result.Version, c.Context)
	}
	kind := logschema.KindOf(entry)

	var err error
	if globals.Format == "ndjson" {
		err = output.NewNDJSONWriter(globals.Stdout).WriteValidation(result, kind)
	} else {
		err = output.NewTextWriter(globals.Stdout).WriteValidation(result, kind)
	}
	if err != nil {
		return err
	}

	if c.Strict && !result.Valid {
		return outputErrorCommon(globals, "INVALID_ENTRY", result.Warning,
			"Entries that fail validation are skipped when logs are processed")
	}
	return nil
}
