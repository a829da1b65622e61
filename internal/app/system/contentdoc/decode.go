// internal/app/system/contentdoc/decode.go
package contentdoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// decoder collects issues while walking the raw document.
type decoder struct {
	issues []Issue
}

func (d *decoder) add(path, format string, args ...any) {
	d.issues = append(d.issues, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

// object overlays the keys present in raw onto fields. Unknown keys are
// ignored; a section that is not an object keeps its defaults.
func (d *decoder) object(name string, raw json.RawMessage, fields []field) {
	if isAbsent(raw) {
		return
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		d.add(name, "not an object, using defaults")
		return
	}
	d.fill(name, m, fields)
}

func (d *decoder) fill(prefix string, m map[string]json.RawMessage, fields []field) {
	for _, f := range fields {
		v, ok := m[f.key]
		if !ok {
			continue
		}
		d.str(prefix+"."+f.key, v, f.dst)
	}
}

// list returns the elements of a list section. ok is false when the section
// is absent or unusable, in which case the default list stays in place.
func (d *decoder) list(name string, raw json.RawMessage) ([]json.RawMessage, bool) {
	if isAbsent(raw) {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		d.add(name, "not a list, using defaults")
		return nil, false
	}
	return items, true
}

// str assigns a JSON scalar to dst as a string. Null leaves dst unchanged.
func (d *decoder) str(path string, raw json.RawMessage, dst *string) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			d.add(path, "invalid string")
			return
		}
		*dst = s
	case 'n':
		// null keeps the current value
	case 't', 'f':
		*dst = string(raw)
	case '{', '[':
		d.add(path, "expected a string, kept previous value")
	default:
		*dst = string(raw)
		d.add(path, "number converted to string")
	}
}

// id parses an item id. Numeric strings are accepted; anything else yields 0
// and is repaired later.
func (d *decoder) id(path string, raw json.RawMessage) int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == 'n' {
		return 0
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			d.add(path, "id %q is not a number", s)
			return 0
		}
		return n
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		d.add(path, "id is not a number")
		return 0
	}
	if f != math.Trunc(f) || f > math.MaxInt32 {
		d.add(path, "id %v is not a whole number", f)
		return 0
	}
	return int(f)
}

func isAbsent(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

// decodeItems decodes each list element into a fresh T. Elements that are not
// objects are dropped. IDs are repaired after the whole list is read.
func decodeItems[T any](d *decoder, name string, items []json.RawMessage, fields func(*T) (*int, []field)) []T {
	out := make([]T, 0, len(items))
	for i, raw := range items {
		path := fmt.Sprintf("%s[%d]", name, i)
		var m map[string]json.RawMessage
		if err := json.Unmarshal(raw, &m); err != nil || m == nil {
			d.add(path, "not an object, dropped")
			continue
		}
		var item T
		idp, strs := fields(&item)
		if v, ok := m["id"]; ok {
			*idp = d.id(path+".id", v)
		}
		d.fill(path, m, strs)
		out = append(out, item)
	}
	d.issues = append(d.issues, repairIDs(name, out, func(t *T) *int {
		idp, _ := fields(t)
		return idp
	})...)
	return out
}

// repairIDs gives every item with a non-positive or duplicate id a fresh id
// above the current maximum. Valid ids and list order are left untouched.
func repairIDs[T any](name string, items []T, id func(*T) *int) []Issue {
	var issues []Issue
	seen := make(map[int]bool, len(items))
	maxID := 0
	for i := range items {
		if v := *id(&items[i]); v > maxID {
			maxID = v
		}
	}
	for i := range items {
		p := id(&items[i])
		if *p > 0 && !seen[*p] {
			seen[*p] = true
			continue
		}
		maxID++
		issues = append(issues, Issue{
			Path:    fmt.Sprintf("%s[%d].id", name, i),
			Message: fmt.Sprintf("invalid or duplicate id %d, assigned %d", *p, maxID),
		})
		*p = maxID
		seen[maxID] = true
	}
	return issues
}
