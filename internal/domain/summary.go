package domain

import "time"

// ScanSummary aggregates file reports from one scan run
type ScanSummary struct {
	Type          string `json:"type"`          // Always "scan_summary"
	SchemaVersion int    `json:"schemaVersion"` // Schema version for compatibility
	RunID         string `json:"run_id,omitempty"`

	// Time window across all recognized entries
	WindowStart time.Time `json:"windowStart,omitzero"`
	WindowEnd   time.Time `json:"windowEnd,omitzero"`

	// Counts
	Files       int `json:"files"`
	FailedFiles int `json:"failedFiles"`
	Lines       int `json:"lines"`
	Valid       int `json:"valid"`
	Unsupported int `json:"unsupported"`
	Unknown     int `json:"unknown"`
	Malformed   int `json:"malformed"`
	Sessions    int `json:"sessions"`

	// SessionSwitches sums the per-file session switches
	SessionSwitches int `json:"sessionSwitches"`

	Versions   map[string]int `json:"versions,omitempty"`
	EntryTypes map[string]int `json:"entryTypes,omitempty"`

	// AI markers
	HasProblems bool `json:"hasProblems"`

	// SupportedVersions echoes the validator's supported set
	SupportedVersions []string `json:"supportedVersions"`

	// ValidRate is the share of non-blank lines that were valid (0..1)
	ValidRate float64 `json:"validRate"`
}

// NewScanSummary creates a new empty summary
func NewScanSummary() *ScanSummary {
	return &ScanSummary{
		Type:       "scan_summary",
		Versions:   make(map[string]int),
		EntryTypes: make(map[string]int),
	}
}

// ErrorOutput represents a structured error for NDJSON output
type ErrorOutput struct {
	Type          string `json:"type"`           // Always "error"
	SchemaVersion int    `json:"schemaVersion"`  // Schema version for compatibility
	Code          string `json:"code"`           // Machine-readable error code
	Message       string `json:"message"`        // Human-readable message
	Hint          string `json:"hint,omitempty"` // Suggested next step
}

// NewErrorOutput creates a new error output
// Note: SchemaVersion should be set by the caller (output package)
func NewErrorOutput(code, message string) *ErrorOutput {
	return &ErrorOutput{
		Type:    "error",
		Code:    code,
		Message: message,
	}
}
