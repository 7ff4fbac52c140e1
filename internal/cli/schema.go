package cli

import (
	"encoding/json"
	"strings"

	"github.com/vburojevic/clw/internal/logschema"
	"github.com/vburojevic/clw/internal/output"
)

// SchemaCmd outputs JSON Schema for clw output types
type SchemaCmd struct {
	Type []string `short:"t" help:"Output types to include (entry_warning,file_report,scan_summary,validation,versions,reminder,error,info,warning). Default: all"`
}

var schemaTypes = []string{
	"entry_warning", "file_report", "scan_summary", "validation",
	"versions", "reminder", "error", "info", "warning",
}

// Run executes the schema command
func (c *SchemaCmd) Run(globals *Globals) error {
	schemas := map[string]interface{}{
		"entry_warning": entryWarningSchema(),
		"file_report":   fileReportSchema(),
		"scan_summary":  scanSummarySchema(),
		"validation":    validationSchema(),
		"versions":      versionsSchema(),
		"reminder":      reminderSchema(),
		"error":         errorSchema(),
		"info":          messageSchema("info", "Informational message"),
		"warning":       messageSchema("warning", "Non-fatal warning"),
	}

	// Determine which schemas to output
	typesToOutput := c.Type
	if len(typesToOutput) == 0 {
		typesToOutput = schemaTypes
	}

	defs := map[string]interface{}{}
	for _, t := range typesToOutput {
		t = strings.ToLower(strings.TrimSpace(t))
		if schema, ok := schemas[t]; ok {
			defs[t] = schema
		}
	}
	if len(defs) == 0 {
		return outputErrorCommon(globals, "UNKNOWN_TYPE", "no known output types in "+strings.Join(c.Type, ","),
			"Valid types: "+strings.Join(schemaTypes, ", "))
	}

	schemaOutput := map[string]interface{}{
		"$schema":       "http://json-schema.org/draft-07/schema#",
		"title":         "ClaudeLogWatcher Output Schemas",
		"description":   "JSON Schema definitions for all clw NDJSON output types",
		"schemaVersion": output.SchemaVersion,
		"definitions":   defs,
	}

	encoder := json.NewEncoder(globals.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(schemaOutput)
}

// schemaVersionProperty returns the schemaVersion property definition
func schemaVersionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"const":       output.SchemaVersion,
		"description": "Schema version for compatibility detection",
	}
}

func typeProperty(name string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "const": name}
}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{"type": typ, "description": description}
}

func countMap(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":                 "object",
		"additionalProperties": map[string]interface{}{"type": "integer"},
		"description":          description,
	}
}

func outcomeProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        []string{"valid", "unsupported", "unknown", "malformed"},
		"description": "How the line was classified",
	}
}

func schemaVersionObject() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"major":    prop("integer", "Major version"),
			"minor":    prop("integer", "Minor version"),
			"detected": prop("string", "Version label, e.g. \"1.0\""),
		},
		"required": []string{"major", "minor", "detected"},
	}
}

func entryWarningSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"title":       "Entry Warning",
		"description": "A session log line that is not a valid, supported entry",
		"properties": map[string]interface{}{
			"type":          typeProperty("entry_warning"),
			"schemaVersion": schemaVersionProperty(),
			"run_id":        prop("string", "ID of the scan run"),
			"path":          prop("string", "Log file path"),
			"line":          prop("integer", "1-based line number"),
			"outcome":       outcomeProperty(),
			"version":       prop("string", "Detected log schema version, if any"),
			"message":       prop("string", "Human-readable warning"),
		},
		"required": []string{"type", "schemaVersion", "path", "line", "outcome", "message"},
	}
}

func fileReportSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"title":       "File Report",
		"description": "Validation counts for one session log file",
		"properties": map[string]interface{}{
			"type":             typeProperty("file_report"),
			"schemaVersion":    schemaVersionProperty(),
			"path":             prop("string", "Log file path"),
			"lines":            prop("integer", "Lines read"),
			"blank":            prop("integer", "Blank lines"),
			"valid":            prop("integer", "Entries in a supported version"),
			"unsupported":      prop("integer", "Entries in a recognized but unsupported version"),
			"unknown":          prop("integer", "JSON values matching no known version"),
			"malformed":        prop("integer", "Lines that are not valid JSON"),
			"versions":         countMap("Entries per detected version"),
			"entry_types":      countMap("Recognized entries per type"),
			"sessions":         map[string]interface{}{"type": "array", "description": "Per-session counts in first-seen order"},
			"session_switches": prop("integer", "Entries whose session differs from the previous entry's"),
			"first_timestamp":  map[string]interface{}{"type": "string", "format": "date-time"},
			"last_timestamp":   map[string]interface{}{"type": "string", "format": "date-time"},
			"warnings":         map[string]interface{}{"type": "array", "description": "Capped list of line warnings"},
			"warning_count":    prop("integer", "All warnings, including ones past the cap"),
			"error":            prop("string", "Why the file could not be read to the end"),
		},
		"required": []string{"type", "schemaVersion", "path", "lines", "valid", "unsupported", "unknown", "malformed", "warning_count"},
	}
}

func scanSummarySchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"title":       "Scan Summary",
		"description": "Totals across all files of one validate or scan run",
		"properties": map[string]interface{}{
			"type":              typeProperty("scan_summary"),
			"schemaVersion":     schemaVersionProperty(),
			"run_id":            prop("string", "ID of the scan run"),
			"windowStart":       map[string]interface{}{"type": "string", "format": "date-time"},
			"windowEnd":         map[string]interface{}{"type": "string", "format": "date-time"},
			"files":             prop("integer", "Files scanned"),
			"failedFiles":       prop("integer", "Files that could not be read to the end"),
			"lines":             prop("integer", "Lines read"),
			"valid":             prop("integer", "Valid entries"),
			"unsupported":       prop("integer", "Entries in unsupported versions"),
			"unknown":           prop("integer", "Unrecognized entries"),
			"malformed":         prop("integer", "Lines that are not valid JSON"),
			"sessions":          prop("integer", "Distinct sessions"),
			"sessionSwitches":   prop("integer", "Session switches summed over files"),
			"versions":          countMap("Entries per detected version"),
			"entryTypes":        countMap("Recognized entries per type"),
			"hasProblems":       prop("boolean", "True if anything was skipped or unreadable"),
			"supportedVersions": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
			"validRate":         prop("number", "Valid entries over all entries"),
		},
		"required": []string{"type", "schemaVersion", "files", "lines", "valid", "hasProblems", "supportedVersions"},
	}
}

func validationSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"title":       "Validation",
		"description": "Result of validating one JSON value",
		"properties": map[string]interface{}{
			"type":          typeProperty("validation"),
			"schemaVersion": schemaVersionProperty(),
			"valid":         prop("boolean", "True only for a supported version"),
			"version":       schemaVersionObject(),
			"warning":       prop("string", "Present whenever valid is false"),
			"kind":          prop("string", "JSON kind of the input"),
		},
		"required": []string{"type", "schemaVersion", "valid", "kind"},
	}
}

func versionsSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"title":       "Versions",
		"description": "Supported log schema versions and the rules of each recognized version",
		"properties": map[string]interface{}{
			"type":          typeProperty("versions"),
			"schemaVersion": schemaVersionProperty(),
			"supported": map[string]interface{}{
				"type":    "array",
				"items":   map[string]interface{}{"type": "string"},
				"default": logschema.SupportedVersions(),
			},
			"descriptors": map[string]interface{}{"type": "array", "description": "Most recent version first"},
		},
		"required": []string{"type", "schemaVersion", "supported", "descriptors"},
	}
}

func reminderSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"title":       "Reminder",
		"description": "Reminder state and any action taken",
		"properties": map[string]interface{}{
			"type":          typeProperty("reminder"),
			"schemaVersion": schemaVersionProperty(),
			"message":       prop("string", "Nag message when analysis is due"),
			"action":        prop("string", "What the command changed"),
			"due":           prop("boolean", "Analysis is due"),
			"disabled":      prop("boolean", "Reminder turned off"),
			"interval":      prop("integer", "Interval in nanoseconds"),
			"last_run":      map[string]interface{}{"type": "string", "format": "date-time"},
			"snoozed_until": map[string]interface{}{"type": "string", "format": "date-time"},
			"next_due":      map[string]interface{}{"type": "string", "format": "date-time"},
			"state_file":    prop("string", "Where state is kept"),
		},
		"required": []string{"type", "schemaVersion", "due", "disabled", "state_file"},
	}
}

func errorSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"title":       "Error",
		"description": "Command failure",
		"properties": map[string]interface{}{
			"type":          typeProperty("error"),
			"schemaVersion": schemaVersionProperty(),
			"code":          prop("string", "Machine-readable error code"),
			"message":       prop("string", "Human-readable message"),
			"hint":          prop("string", "Suggested next step"),
		},
		"required": []string{"type", "schemaVersion", "code", "message"},
	}
}

func messageSchema(name, description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"title":       strings.ToUpper(name[:1]) + name[1:],
		"description": description,
		"properties": map[string]interface{}{
			"type":          typeProperty(name),
			"schemaVersion": schemaVersionProperty(),
			"message":       prop("string", "Message text"),
		},
		"required": []string{"type", "schemaVersion", "message"},
	}
}
