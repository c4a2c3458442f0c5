package inference

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// FieldKind is the semantic kind guessed for a field's values.
type FieldKind int

const (
	KindUnknown FieldKind = iota
	KindTemporal
	KindNumeric
	KindCategorical
)

func (k FieldKind) String() string {
	switch k {
	case KindTemporal:
		return "temporal"
	case KindNumeric:
		return "numeric"
	case KindCategorical:
		return "categorical"
	default:
		return "unknown"
	}
}

// Field names that identify an axis role regardless of value contents.
// Name hints win over value inspection: a field literally named "label" is
// categorical even if its values parse as numbers.
var (
	temporalFieldNames    = map[string]bool{"t": true, "time": true, "date": true, "timestamp": true, "x": true}
	categoricalFieldNames = map[string]bool{"label": true, "category": true, "name": true}
)

// ClassifyField guesses the semantic kind of one field from its name and the
// values it takes across all records. A kind must cover a strict majority of
// the samples; mixed collections come back KindUnknown.
func ClassifyField(name string, values []any) FieldKind {
	lname := strings.ToLower(name)
	if categoricalFieldNames[lname] {
		return KindCategorical
	}
	if temporalFieldNames[lname] {
		return KindTemporal
	}

	if len(values) == 0 {
		return KindUnknown
	}

	counts := make(map[FieldKind]int)
	for _, v := range values {
		counts[classifyValue(v)]++
	}

	best, bestCount := KindUnknown, 0
	for _, kind := range []FieldKind{KindTemporal, KindNumeric, KindCategorical} {
		if counts[kind] > bestCount {
			best, bestCount = kind, counts[kind]
		}
	}
	if bestCount*2 > len(values) {
		return best
	}
	return KindUnknown
}

func classifyValue(v any) FieldKind {
	if v == nil {
		return KindUnknown
	}
	if looksLikeTime(v) {
		return KindTemporal
	}
	if _, ok := asFloat(v); ok {
		return KindNumeric
	}
	if s, ok := v.(string); ok && s != "" {
		return KindCategorical
	}
	return KindUnknown
}

// Layouts tried when sniffing date strings, most common first.
var timeLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// Unix-second bounds for treating a bare number as a timestamp (2000-2100).
const (
	minUnixSeconds = 946684800
	maxUnixSeconds = 4102444800
)

// looksLikeTime reports whether a value is plausibly a date or datetime.
func looksLikeTime(v any) bool {
	_, ok := parseTime(v)
	return ok
}

// parseTime attempts to interpret a value as a point in time. Strings are
// matched against known layouts; numbers are accepted when they fall in a
// sane unix-timestamp range.
func parseTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	case float64, int, int64:
		f, _ := asFloat(t)
		if f >= minUnixSeconds && f <= maxUnixSeconds {
			return time.Unix(int64(f), 0).UTC(), true
		}
	}
	return time.Time{}, false
}

// epochMillis normalizes a parsed time to the numeric representation used in
// extracted series.
func epochMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// asFloat converts JSON-decoded scalars to float64. Strings count as numeric
// only when they parse fully.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// stringify renders a scalar for use as a category label.
func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	case nil:
		return ""
	default:
		return ""
	}
}

// sortedKeys returns a record's keys in stable order. Fallback field
// discovery scans keys, and map iteration order must not leak into output.
func sortedKeys(rec map[string]any) []string {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
