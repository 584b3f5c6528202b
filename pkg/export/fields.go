package export

import (
	"slices"
	"strconv"
)

// Fields is an insertion-ordered key-value document.
//
// The experiment runtime reads its configuration with a strict parser that
// expects elements in a fixed order, so Fields keeps keys in the order they
// were first set. Setting an existing key replaces its value in place.
//
// Supported value types are string, bool, int, float64, [Band], *Fields,
// []*Fields (repeated nested elements) and []string (repeated text
// elements). A nil value is encoded as an empty element.
//
// The zero value is an empty document ready to use.
type Fields struct {
	keys   []string
	values map[string]any
}

// NewFields returns an empty document.
func NewFields() *Fields {
	return &Fields{}
}

// Set assigns value to key, appending key if it is new.
func (f *Fields) Set(key string, value any) *Fields {
	if f.values == nil {
		f.values = make(map[string]any)
	}
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
	return f
}

// Get returns the value stored under key.
func (f *Fields) Get(key string) (any, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Text returns the encoded text of a scalar value, as it would appear in
// the exported document. Reports false for missing keys and nested values.
func (f *Fields) Text(key string) (string, bool) {
	v, ok := f.values[key]
	if !ok {
		return "", false
	}
	return formatScalar(v)
}

// Keys returns the keys in insertion order.
func (f *Fields) Keys() []string { return slices.Clone(f.keys) }

// Len returns the number of keys.
func (f *Fields) Len() int { return len(f.keys) }

// Merge copies every key of other into f, in other's order.
// Later merges win, which lets downstream signal stages override
// values contributed upstream.
func (f *Fields) Merge(other *Fields) *Fields {
	if other == nil {
		return f
	}
	for _, k := range other.keys {
		f.Set(k, other.values[k])
	}
	return f
}

// Band is a pair of optional frequency bounds in Hz, encoded as the two
// values joined by a single space. A missing bound is written as "None",
// which is what the runtime expects for an open band.
type Band struct {
	Low  *float64 `json:"low"`
	High *float64 `json:"high"`
}

// NewBand returns a closed band [low, high].
func NewBand(low, high float64) Band {
	return Band{Low: &low, High: &high}
}

// String returns the space-joined encoding of the band.
func (b Band) String() string {
	return formatBound(b.Low) + " " + formatBound(b.High)
}

func formatBound(v *float64) string {
	if v == nil {
		return "None"
	}
	return FormatFloat(*v)
}

// FormatBool encodes a boolean the way the runtime parses it.
func FormatBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// FormatFloat encodes a float with the shortest representation that
// round-trips, without an exponent for ordinary magnitudes.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatScalar(v any) (string, bool) {
	switch v := v.(type) {
	case nil:
		return "", true
	case string:
		return v, true
	case bool:
		return FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case float64:
		return FormatFloat(v), true
	case *float64:
		if v == nil {
			return "", true
		}
		return FormatFloat(*v), true
	case Band:
		return v.String(), true
	}
	return "", false
}
