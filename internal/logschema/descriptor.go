package logschema

import "slices"

// SchemaVersion identifies a recognized log entry shape.
// Values are compared with ==.
type SchemaVersion struct {
	Major    int    `json:"major"`
	Minor    int    `json:"minor"`
	Detected string `json:"detected"`
}

// String returns the version label
func (v SchemaVersion) String() string {
	return v.Detected
}

// Descriptor holds the structural rules of one schema version
type Descriptor struct {
	Version SchemaVersion `json:"version"`

	// RequiredFields must exist at the top level. A null value counts as present.
	RequiredFields []string `json:"required_fields"`

	TypeField    string `json:"type_field"`
	MessageField string `json:"message_field"`
	RoleField    string `json:"role_field"`
	ContentField string `json:"content_field"`

	// MessageFields must exist inside the nested message object.
	MessageFields []string `json:"message_fields"`

	// Types enumerates valid values for both the type field and message role.
	Types []string `json:"types"`

	// StringFields must hold strings when present.
	StringFields []string `json:"string_fields"`
}

var descriptorV1 = Descriptor{
	Version:        SchemaVersion{Major: 1, Minor: 0, Detected: "1.0"},
	RequiredFields: []string{"type", "message", "timestamp", "sessionId", "cwd"},
	TypeField:      "type",
	MessageField:   "message",
	RoleField:      "role",
	ContentField:   "content",
	MessageFields:  []string{"role", "content"},
	Types:          []string{"user", "assistant", "system"},
	StringFields:   []string{"timestamp", "sessionId", "cwd"},
}

// descriptors lists every known schema version, most recent first.
// Detection stops at the first match, so entries must not overlap.
var descriptors = []Descriptor{
	descriptorV1,
}

// supportedVersions are the labels processed without a warning.
var supportedVersions = []string{"1.0"}

// match reports whether entry satisfies every rule of d.
func (d Descriptor) match(entry value) bool {
	if entry == nil || entry.Kind() != KindObject {
		return false
	}
	for _, name := range d.RequiredFields {
		if _, ok := entry.Field(name); !ok {
			return false
		}
	}
	if !d.enumerated(entry, d.TypeField) {
		return false
	}

	msg, ok := entry.Field(d.MessageField)
	if !ok || msg.Kind() != KindObject {
		return false
	}
	for _, name := range d.MessageFields {
		if _, ok := msg.Field(name); !ok {
			return false
		}
	}
	if !d.enumerated(msg, d.RoleField) {
		return false
	}
	content, ok := msg.Field(d.ContentField)
	if !ok || content.Kind() != KindString {
		return false
	}

	for _, name := range d.StringFields {
		if f, ok := entry.Field(name); ok && f.Kind() != KindString {
			return false
		}
	}
	return true
}

// enumerated reports whether obj[name] is a string drawn from d.Types.
func (d Descriptor) enumerated(obj value, name string) bool {
	f, ok := obj.Field(name)
	if !ok {
		return false
	}
	s, ok := f.Str()
	if !ok {
		return false
	}
	return slices.Contains(d.Types, s)
}

func (d Descriptor) clone() Descriptor {
	d.RequiredFields = slices.Clone(d.RequiredFields)
	d.MessageFields = slices.Clone(d.MessageFields)
	d.Types = slices.Clone(d.Types)
	d.StringFields = slices.Clone(d.StringFields)
	return d
}
