package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vburojevic/clw/internal/domain"
	"github.com/vburojevic/clw/internal/logschema"
	"github.com/vburojevic/clw/internal/reminder"
)

func TestTextWriter_WriteFileReport(t *testing.T) {
	DisableStyles()
	t.Cleanup(func() { Styles = defaultStyles() })

	t.Run("clean file", func(t *testing.T) {
		var buf bytes.Buffer
		r := domain.NewFileReport("a.jsonl")
		r.Valid = 4

		require.NoError(t, NewTextWriter(&buf).WriteFileReport(r))
		assert.Equal(t, "OK a.jsonl valid=4\n", buf.String())
	})

	t.Run("file with problems", func(t *testing.T) {
		var buf bytes.Buffer
		r := domain.NewFileReport("b.jsonl")
		r.Valid = 1
		r.Unknown = 2
		r.Malformed = 1
		r.Error = "line 9 exceeds 1024 bytes"

		require.NoError(t, NewTextWriter(&buf).WriteFileReport(r))
		out := buf.String()
		assert.Contains(t, out, "ISSUES FOUND b.jsonl")
		assert.Contains(t, out, "unknown=2")
		assert.Contains(t, out, "malformed=1")
		assert.NotContains(t, out, "unsupported=")
		assert.Contains(t, out, "error: line 9 exceeds 1024 bytes")
	})
}

func TestTextWriter_WriteEntryWarning(t *testing.T) {
	DisableStyles()
	t.Cleanup(func() { Styles = defaultStyles() })

	var buf bytes.Buffer
	err := NewTextWriter(&buf).WriteEntryWarning("a.jsonl", domain.LineWarning{
		Line:    3,
		Outcome: domain.OutcomeMalformed,
		Message: "Malformed JSON (line 3). This entry will be skipped.",
	})
	require.NoError(t, err)
	assert.Equal(t, "BAD a.jsonl:3 Malformed JSON (line 3). This entry will be skipped.\n", buf.String())
}

func TestTextWriter_WriteSummary(t *testing.T) {
	DisableStyles()
	t.Cleanup(func() { Styles = defaultStyles() })

	var buf bytes.Buffer
	s := domain.NewScanSummary()
	s.Files = 2
	s.Valid = 9
	s.Unknown = 1
	s.ValidRate = 0.9
	s.EntryTypes["user"] = 5
	s.Versions["1.0"] = 9
	s.SupportedVersions = []string{"1.0"}
	s.HasProblems = true

	require.NoError(t, NewTextWriter(&buf).WriteSummary(s))
	out := buf.String()
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "Unknown format")
	assert.Contains(t, out, "90.0%")
	assert.Contains(t, out, "Type user")
	assert.Contains(t, out, "Version 1.0")
	assert.Contains(t, out, "Status: ISSUES FOUND")
}

func TestTextWriter_WriteValidation(t *testing.T) {
	DisableStyles()
	t.Cleanup(func() { Styles = defaultStyles() })

	tests := []struct {
		name   string
		result logschema.ValidationResult
		want   []string
	}{
		{
			name:   "valid",
			result: logschema.ValidationResult{Valid: true, Version: &logschema.SchemaVersion{Major: 1, Detected: "1.0"}},
			want:   []string{"valid version=1.0"},
		},
		{
			name: "unsupported",
			result: logschema.ValidationResult{
				Version: &logschema.SchemaVersion{Major: 2, Detected: "2.0"},
				Warning: "Unsupported log format version 2.0 detected.",
			},
			want: []string{"unsupported version=2.0", "Unsupported log format version 2.0"},
		},
		{
			name:   "unknown",
			result: logschema.ValidateEntry([]any{}),
			want:   []string{"unrecognized kind=array", "Unknown log format detected"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			kind := logschema.KindObject
			if tt.name == "unknown" {
				kind = logschema.KindArray
			}
			require.NoError(t, NewTextWriter(&buf).WriteValidation(tt.result, kind))
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestTextWriter_WriteVersions(t *testing.T) {
	DisableStyles()
	t.Cleanup(func() { Styles = defaultStyles() })

	var buf bytes.Buffer
	require.NoError(t, NewTextWriter(&buf).WriteVersions(logschema.SupportedVersions(), logschema.Descriptors()))

	out := buf.String()
	assert.Contains(t, out, "1.0")
	assert.Contains(t, out, "supported")
	assert.Contains(t, out, "user|assistant|system")
	assert.Contains(t, out, "Supported: 1.0")
}

func TestTextWriter_WriteReminder(t *testing.T) {
	DisableStyles()
	t.Cleanup(func() { Styles = defaultStyles() })

	var buf bytes.Buffer
	status := reminder.Status{Due: true, StateFile: "/tmp/r.json"}
	require.NoError(t, NewTextWriter(&buf).WriteReminder(status, "Logs have never been analyzed.", "Snoozed"))

	out := buf.String()
	assert.Contains(t, out, "Logs have never been analyzed.")
	assert.Contains(t, out, "Snoozed")
	assert.Contains(t, out, "/tmp/r.json")
	assert.Contains(t, out, "Next due")
}

func TestOutcomeIndicator(t *testing.T) {
	DisableStyles()
	t.Cleanup(func() { Styles = defaultStyles() })

	assert.Equal(t, "OK ", OutcomeIndicator(domain.OutcomeValid))
	assert.Equal(t, "VER", OutcomeIndicator(domain.OutcomeUnsupported))
	assert.Equal(t, "UNK", OutcomeIndicator(domain.OutcomeUnknown))
	assert.Equal(t, "BAD", OutcomeIndicator(domain.OutcomeMalformed))
	assert.Equal(t, "???", OutcomeIndicator(domain.Outcome("other")))
}
