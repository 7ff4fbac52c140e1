package output

import (
	"encoding/json"
	"io"

	"github.com/vburojevic/clw/internal/domain"
	"github.com/vburojevic/clw/internal/logschema"
	"github.com/vburojevic/clw/internal/reminder"
)

// NDJSONWriter writes records as NDJSON
type NDJSONWriter struct {
	w       io.Writer
	encoder *json.Encoder
}

// NewNDJSONWriter creates a new NDJSON writer
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false) // keep paths and messages unescaped
	return &NDJSONWriter{
		w:       w,
		encoder: enc,
	}
}

// EntryWarningOutput is one skipped or suspect log line
type EntryWarningOutput struct {
	Type          string         `json:"type"` // Always "entry_warning"
	SchemaVersion int            `json:"schemaVersion"`
	RunID         string         `json:"run_id,omitempty"`
	Path          string         `json:"path"`
	Line          int            `json:"line"`
	Outcome       domain.Outcome `json:"outcome"`
	Version       string         `json:"version,omitempty"`
	Message       string         `json:"message"`
}

// ValidationOutput wraps a single ValidationResult
type ValidationOutput struct {
	Type          string `json:"type"` // Always "validation"
	SchemaVersion int    `json:"schemaVersion"`
	logschema.ValidationResult
	Kind string `json:"kind"` // JSON kind of the input
}

// VersionsOutput lists supported log schema versions
type VersionsOutput struct {
	Type          string                 `json:"type"` // Always "versions"
	SchemaVersion int                    `json:"schemaVersion"`
	Supported     []string               `json:"supported"`
	Descriptors   []logschema.Descriptor `json:"descriptors"`
}

// ReminderOutput reports reminder state
type ReminderOutput struct {
	Type          string `json:"type"` // Always "reminder"
	SchemaVersion int    `json:"schemaVersion"`
	Message       string `json:"message,omitempty"`
	Action        string `json:"action,omitempty"`
	reminder.Status
}

// InfoOutput represents an informational message
type InfoOutput struct {
	Type          string `json:"type"` // Always "info"
	SchemaVersion int    `json:"schemaVersion"`
	Message       string `json:"message"`
	RunID         string `json:"run_id,omitempty"`
	Files         int    `json:"files,omitempty"`
}

// WarningOutput represents a warning message
type WarningOutput struct {
	Type          string `json:"type"` // Always "warning"
	SchemaVersion int    `json:"schemaVersion"`
	Message       string `json:"message"`
}

// WriteEntryWarning outputs one line warning from a file report
func (w *NDJSONWriter) WriteEntryWarning(runID, path string, lw domain.LineWarning) error {
	return w.encoder.Encode(&EntryWarningOutput{
		Type:          "entry_warning",
		SchemaVersion: SchemaVersion,
		RunID:         runID,
		Path:          path,
		Line:          lw.Line,
		Outcome:       lw.Outcome,
		Version:       lw.Version,
		Message:       lw.Message,
	})
}

// WriteFileReport outputs a per-file report
func (w *NDJSONWriter) WriteFileReport(report *domain.FileReport) error {
	report.SchemaVersion = SchemaVersion
	return w.encoder.Encode(report)
}

// WriteSummary outputs a scan summary
func (w *NDJSONWriter) WriteSummary(summary *domain.ScanSummary) error {
	summary.SchemaVersion = SchemaVersion
	return w.encoder.Encode(summary)
}

// WriteValidation outputs a single validation result
func (w *NDJSONWriter) WriteValidation(result logschema.ValidationResult, kind logschema.Kind) error {
	return w.encoder.Encode(&ValidationOutput{
		Type:             "validation",
		SchemaVersion:    SchemaVersion,
		ValidationResult: result,
		Kind:             kind.String(),
	})
}

// WriteVersions outputs the supported versions and descriptor rules
func (w *NDJSONWriter) WriteVersions(supported []string, descriptors []logschema.Descriptor) error {
	return w.encoder.Encode(&VersionsOutput{
		Type:          "versions",
		SchemaVersion: SchemaVersion,
		Supported:     supported,
		Descriptors:   descriptors,
	})
}

// WriteReminder outputs reminder state, the nag message and any action taken
func (w *NDJSONWriter) WriteReminder(status reminder.Status, message, action string) error {
	return w.encoder.Encode(&ReminderOutput{
		Type:          "reminder",
		SchemaVersion: SchemaVersion,
		Message:       message,
		Action:        action,
		Status:        status,
	})
}

// WriteError outputs an error
func (w *NDJSONWriter) WriteError(code, message string, hint ...string) error {
	err := domain.NewErrorOutput(code, message)
	if len(hint) > 0 {
		err.Hint = hint[0]
	}
	err.SchemaVersion = SchemaVersion
	return w.encoder.Encode(err)
}

// WriteRaw outputs raw JSON data
func (w *NDJSONWriter) WriteRaw(v interface{}) error {
	return w.encoder.Encode(v)
}

// WriteInfo outputs an informational message
func (w *NDJSONWriter) WriteInfo(message, runID string, files int) error {
	return w.encoder.Encode(&InfoOutput{
		Type:          "info",
		SchemaVersion: SchemaVersion,
		Message:       message,
		RunID:         runID,
		Files:         files,
	})
}

// WriteWarning outputs a warning message
func (w *NDJSONWriter) WriteWarning(message string) error {
	return w.encoder.Encode(&WarningOutput{
		Type:          "warning",
		SchemaVersion: SchemaVersion,
		Message:       message,
	})
}
