// Package fields implements the normalization rules shared by every content
// resource: free text is trimmed, list-valued fields accept either a JSON
// array or a single comma-separated string, and legacy field aliases collapse
// to one canonical name.
package fields

import (
	"encoding/json"
	"strings"
)

// List is a []string that unmarshals from either a JSON array or a single
// comma-separated string. Entries are trimmed, empty entries dropped, and
// duplicates removed while preserving first-seen order.
type List []string

func (l *List) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.Split(s, ",")
	}
	*l = Normalize(raw)
	return nil
}

func (l List) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// Normalize trims each entry, drops empties, and de-duplicates in order.
func Normalize(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Trimmed returns s with surrounding whitespace removed.
func Trimmed(s string) string { return strings.TrimSpace(s) }

// FirstNonEmpty returns the first value that is non-empty after trimming.
// It is the resolver behind every per-family legacy alias mapping.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			return t
		}
	}
	return ""
}
