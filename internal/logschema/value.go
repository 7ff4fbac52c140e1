package logschema

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Kind tags the shape of a JSON value
type Kind int

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the JSON name of the kind
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// KindOf classifies a decoded Go value. Types that encoding/json never
// produces (and that are not plain Go numbers) are KindInvalid.
func KindOf(v any) Kind {
	return newValue(v).Kind()
}

// value is a read-only view over one JSON value, decoded or raw.
type value interface {
	Kind() Kind
	// Str returns the string payload when Kind is KindString.
	Str() (string, bool)
	// Field looks up a key on an object; false when absent or not an object.
	Field(name string) (value, bool)
}

func newValue(v any) value {
	switch raw := v.(type) {
	case json.RawMessage:
		if !json.Valid(raw) {
			return goValue{v: invalid{}}
		}
		return rawValue{r: gjson.ParseBytes(raw)}
	case gjson.Result:
		return rawValue{r: raw}
	}
	return goValue{v: v}
}

// invalid marks a value that cannot be classified.
type invalid struct{}

// goValue wraps values produced by encoding/json (or built by hand).
type goValue struct {
	v any
}

func (g goValue) Kind() Kind {
	switch g.v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case string:
		return KindString
	case float64, float32, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return KindNumber
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	default:
		return KindInvalid
	}
}

func (g goValue) Str() (string, bool) {
	s, ok := g.v.(string)
	return s, ok
}

func (g goValue) Field(name string) (value, bool) {
	obj, ok := g.v.(map[string]any)
	if !ok {
		return nil, false
	}
	f, ok := obj[name]
	if !ok {
		return nil, false
	}
	return newValue(f), true
}

// rawValue inspects JSON text in place.
type rawValue struct {
	r gjson.Result
}

func (r rawValue) Kind() Kind {
	if !r.r.Exists() {
		return KindInvalid
	}
	switch r.r.Type {
	case gjson.Null:
		return KindNull
	case gjson.False, gjson.True:
		return KindBool
	case gjson.Number:
		return KindNumber
	case gjson.String:
		return KindString
	case gjson.JSON:
		if r.r.IsObject() {
			return KindObject
		}
		if r.r.IsArray() {
			return KindArray
		}
	}
	return KindInvalid
}

func (r rawValue) Str() (string, bool) {
	if r.r.Type != gjson.String {
		return "", false
	}
	return r.r.Str, true
}

func (r rawValue) Field(name string) (value, bool) {
	if !r.r.IsObject() {
		return nil, false
	}
	f := r.r.Get(name)
	if !f.Exists() {
		return nil, false
	}
	return rawValue{r: f}, true
}
