package transform

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Record wraps one raw upstream record. The same semantic field appears
// under different spellings and nesting depending on API version, so every
// accessor takes an ordered candidate key list and returns the first value
// present.
type Record struct {
	raw map[string]any
}

// NewRecord wraps a decoded JSON object.
func NewRecord(raw map[string]any) Record {
	return Record{raw: raw}
}

// IsZero reports whether the record carries no data.
func (r Record) IsZero() bool {
	return len(r.raw) == 0
}

func (r Record) value(keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := r.raw[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// String returns the first present candidate as a string, or "".
func (r Record) String(keys ...string) string {
	v, ok := r.value(keys...)
	if !ok {
		return ""
	}
	return stringify(v)
}

// StringPtr returns the first present non-empty candidate, or nil.
func (r Record) StringPtr(keys ...string) *string {
	s := r.String(keys...)
	if s == "" {
		return nil
	}
	return &s
}

// ID returns the first present candidate formatted as an external id
// string. JSON numbers lose their fraction-free integer form in decoding;
// integral floats format without an exponent or trailing zeros.
func (r Record) ID(keys ...string) string {
	v, ok := r.value(keys...)
	if !ok {
		return ""
	}
	return stringify(v)
}

// IDPtr is ID returning nil for absent values.
func (r Record) IDPtr(keys ...string) *string {
	id := r.ID(keys...)
	if id == "" {
		return nil
	}
	return &id
}

// Object returns the first candidate that is a nested object.
func (r Record) Object(keys ...string) (Record, bool) {
	for _, key := range keys {
		if m, ok := r.raw[key].(map[string]any); ok {
			return Record{raw: m}, true
		}
	}
	return Record{}, false
}

// ObjectName unwraps a nested object's name, falling back to the value
// itself when the field is a plain string.
func (r Record) ObjectName(keys ...string) *string {
	for _, key := range keys {
		v, ok := r.raw[key]
		if !ok || v == nil {
			continue
		}
		if m, ok := v.(map[string]any); ok {
			if name := stringify(m["name"]); name != "" {
				return &name
			}
			continue
		}
		if s := stringify(v); s != "" {
			return &s
		}
	}
	return nil
}

// ObjectID unwraps a nested object's id, falling back to the value itself.
func (r Record) ObjectID(keys ...string) *string {
	for _, key := range keys {
		v, ok := r.raw[key]
		if !ok || v == nil {
			continue
		}
		if m, ok := v.(map[string]any); ok {
			if id := stringify(m["id"]); id != "" {
				return &id
			}
			continue
		}
		if s := stringify(v); s != "" {
			return &s
		}
	}
	return nil
}

// IntPtr returns the first candidate coercible to an int, or nil.
func (r Record) IntPtr(keys ...string) *int {
	v, ok := r.value(keys...)
	if !ok {
		return nil
	}
	switch n := v.(type) {
	case float64:
		i := int(n)
		return &i
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return &i
		}
	}
	return nil
}

// FloatPtr returns the first candidate coercible to a float, or nil.
func (r Record) FloatPtr(keys ...string) *float64 {
	v, ok := r.value(keys...)
	if !ok {
		return nil
	}
	switch n := v.(type) {
	case float64:
		return &n
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return &f
		}
	}
	return nil
}

// Bool returns the first candidate interpreted as a boolean. Absent values
// and unparseable strings are false.
func (r Record) Bool(keys ...string) bool {
	v, ok := r.value(keys...)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b != 0
	case string:
		parsed, err := strconv.ParseBool(b)
		return err == nil && parsed
	}
	return false
}

// DecimalPtr returns the first candidate coercible to a decimal, or nil.
func (r Record) DecimalPtr(keys ...string) *decimal.Decimal {
	v, ok := r.value(keys...)
	if !ok {
		return nil
	}
	d, err := decimal.NewFromString(stringify(v))
	if err != nil {
		return nil
	}
	return &d
}

// List returns the first candidate that is an array of objects.
func (r Record) List(keys ...string) []Record {
	for _, key := range keys {
		items, ok := r.raw[key].([]any)
		if !ok {
			continue
		}
		out := make([]Record, 0, len(items))
		for _, item := range items {
			if m, ok := item.(map[string]any); ok {
				out = append(out, Record{raw: m})
			}
		}
		return out
	}
	return nil
}

// Time returns the first candidate parseable as a timestamp.
func (r Record) Time(keys ...string) (time.Time, bool) {
	v, ok := r.value(keys...)
	if !ok {
		return time.Time{}, false
	}
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	return parseTimestamp(s)
}

// TimePtr is Time returning nil when absent or unparseable.
func (r Record) TimePtr(keys ...string) *time.Time {
	t, ok := r.Time(keys...)
	if !ok {
		return nil
	}
	return &t
}

// TimeOrNow parses the first candidate timestamp, falling back to now on
// any parse failure rather than raising.
func (r Record) TimeOrNow(keys ...string) time.Time {
	if t, ok := r.Time(keys...); ok {
		return t
	}
	return time.Now()
}

// parseTimestamp accepts ISO-8601 possibly suffixed with Z, with or without
// fractional seconds or an explicit offset, and bare dates.
func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case float64:
		if s == math.Trunc(s) && math.Abs(s) < 1e15 {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	}
	return ""
}
