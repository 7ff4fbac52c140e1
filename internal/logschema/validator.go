// Package logschema recognizes versioned Claude session log entry shapes.
//
// Every function is pure: no I/O, no shared mutable state. Malformed input is
// classified, never returned as an error.
package logschema

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tidwall/gjson"
)

// ValidationResult is the outcome of validating one entry.
// Valid results always carry a Version and no Warning; results without a
// Version are never valid and always carry a Warning.
type ValidationResult struct {
	Valid   bool           `json:"valid"`
	Version *SchemaVersion `json:"version,omitempty"`
	Warning string         `json:"warning,omitempty"`
}

// DetectVersion returns the version of the first descriptor entry matches,
// or nil. entry is any value decoded by encoding/json; json.RawMessage and
// gjson.Result are inspected in place.
func DetectVersion(entry any) *SchemaVersion {
	return detect(newValue(entry))
}

// DetectVersionJSON is DetectVersion over raw JSON text. Invalid JSON is nil.
func DetectVersionJSON(raw []byte) *SchemaVersion {
	if !gjson.ValidBytes(raw) {
		return nil
	}
	return detect(rawValue{r: gjson.ParseBytes(raw)})
}

func detect(entry value) *SchemaVersion {
	for _, d := range descriptors {
		if d.match(entry) {
			v := d.Version
			return &v
		}
	}
	return nil
}

// IsSupported reports whether v's label is in the supported set
func IsSupported(v SchemaVersion) bool {
	return slices.Contains(supportedVersions, v.Detected)
}

// BuildWarning describes why an entry is skipped or suspect. context, when
// not empty, is added in parentheses (a line number, a file name).
// Supported versions produce an empty string.
func BuildWarning(v *SchemaVersion, context string) string {
	where := ""
	if context != "" {
		where = " (" + context + ")"
	}
	if v == nil {
		return fmt.Sprintf("Unknown log format detected%s. This entry will be skipped.", where)
	}
	if IsSupported(*v) {
		return ""
	}
	return fmt.Sprintf("Unsupported log format version %s detected%s. Supported versions: %s. Processing may be incorrect.",
		v.Detected, where, strings.Join(supportedVersions, ", "))
}

// ValidateEntry detects the version of entry and classifies it
func ValidateEntry(entry any) ValidationResult {
	return classify(DetectVersion(entry), "")
}

// ValidateJSON validates raw JSON text, adding context to any warning
func ValidateJSON(raw []byte, context string) ValidationResult {
	return classify(DetectVersionJSON(raw), context)
}

func classify(v *SchemaVersion, context string) ValidationResult {
	if v == nil {
		return ValidationResult{Warning: BuildWarning(nil, context)}
	}
	if !IsSupported(*v) {
		return ValidationResult{Version: v, Warning: BuildWarning(v, context)}
	}
	return ValidationResult{Valid: true, Version: v}
}

// SupportedVersions returns the supported labels in declaration order
func SupportedVersions() []string {
	return slices.Clone(supportedVersions)
}

// Descriptors returns the known descriptors, most recent first
func Descriptors() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	for i, d := range descriptors {
		out[i] = d.clone()
	}
	return out
}
