package domain

import "time"

// Outcome classifies one log line
type Outcome string

const (
	OutcomeValid       Outcome = "valid"
	OutcomeUnsupported Outcome = "unsupported"
	OutcomeUnknown     Outcome = "unknown"
	OutcomeMalformed   Outcome = "malformed"
)

// LineWarning records why a line was skipped or flagged
type LineWarning struct {
	Line    int     `json:"line"`
	Outcome Outcome `json:"outcome"`
	Version string  `json:"version,omitempty"` // Detected schema version, if any
	Message string  `json:"message"`
}

// FileReport holds validation tallies for one JSONL file
type FileReport struct {
	Type          string `json:"type"`          // Always "file_report"
	SchemaVersion int    `json:"schemaVersion"` // Set by the output package

	Path  string `json:"path"`
	Lines int    `json:"lines"`
	Blank int    `json:"blank,omitempty"`

	// Outcome counts
	Valid       int `json:"valid"`
	Unsupported int `json:"unsupported"`
	Unknown     int `json:"unknown"`
	Malformed   int `json:"malformed"`

	// Recognized entries only
	Versions   map[string]int   `json:"versions,omitempty"`
	EntryTypes map[string]int   `json:"entry_types,omitempty"`
	Sessions   []SessionSummary `json:"sessions,omitempty"`

	// SessionSwitches counts entries whose session differs from the previous entry's
	SessionSwitches int `json:"session_switches,omitempty"`

	FirstTimestamp time.Time `json:"first_timestamp,omitzero"`
	LastTimestamp  time.Time `json:"last_timestamp,omitzero"`

	Warnings     []LineWarning `json:"warnings,omitempty"`
	WarningCount int           `json:"warning_count"`

	// Error is set when the file could not be read to the end
	Error string `json:"error,omitempty"`
}

// NewFileReport creates an empty report for path
func NewFileReport(path string) *FileReport {
	return &FileReport{
		Type:       "file_report",
		Path:       path,
		Versions:   make(map[string]int),
		EntryTypes: make(map[string]int),
	}
}

// Entries returns the number of non-blank lines
func (r *FileReport) Entries() int {
	return r.Valid + r.Unsupported + r.Unknown + r.Malformed
}

// Skipped returns the number of lines callers should not process
func (r *FileReport) Skipped() int {
	return r.Unknown + r.Malformed
}

// HasProblems reports whether any line was not valid or the read failed
func (r *FileReport) HasProblems() bool {
	return r.Unsupported > 0 || r.Skipped() > 0 || r.Error != ""
}

// ObserveTimestamp widens the report's time window
func (r *FileReport) ObserveTimestamp(ts time.Time) {
	if ts.IsZero() {
		return
	}
	if r.FirstTimestamp.IsZero() || ts.Before(r.FirstTimestamp) {
		r.FirstTimestamp = ts
	}
	if ts.After(r.LastTimestamp) {
		r.LastTimestamp = ts
	}
}
