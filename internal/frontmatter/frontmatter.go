// Package frontmatter implements the ordered key/value header block used by
// daily notes. It is deliberately not a YAML parser: the vault format only
// ever uses flat scalars and string lists, and key order must survive a
// parse/serialize round trip.
package frontmatter

import (
	"strings"
)

// Kind discriminates the two value shapes a frontmatter field can hold.
type Kind int

const (
	Scalar Kind = iota
	List
)

// Value is a tagged union: either a scalar string or a list of strings.
// The shape is fixed at parse time, never inferred downstream.
type Value struct {
	Kind  Kind
	Str   string
	Items []string
}

// ScalarValue returns a scalar Value.
func ScalarValue(s string) Value {
	return Value{Kind: Scalar, Str: s}
}

// ListValue returns a list Value.
func ListValue(items ...string) Value {
	return Value{Kind: List, Items: items}
}

// Map is an ordered mapping from field name to Value. Keys serialize in
// first-set order.
type Map struct {
	keys   []string
	values map[string]Value
}

// NewMap returns an empty ordered map.
func NewMap() *Map {
	return &Map{values: make(map[string]Value)}
}

// Get returns the value for key and whether it is present.
func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Set stores a value, preserving the key's original position if it already
// exists.
func (m *Map) Set(key string, v Value) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of keys.
func (m *Map) Len() int {
	return len(m.keys)
}

// StringList returns the list items for key, or nil when the key is absent
// or holds a scalar.
func (m *Map) StringList(key string) []string {
	v, ok := m.values[key]
	if !ok || v.Kind != List {
		return nil
	}
	return v.Items
}

// AsAny flattens the map into plain Go values for JSON responses. Key order
// is not preserved; the wire format is an object.
func (m *Map) AsAny() map[string]any {
	out := make(map[string]any, len(m.keys))
	for _, k := range m.keys {
		v := m.values[k]
		if v.Kind == List {
			items := v.Items
			if items == nil {
				items = []string{}
			}
			out[k] = items
			continue
		}
		out[k] = v.Str
	}
	return out
}

// Equal reports value equality: same keys in the same order with value-equal
// entries.
func (m *Map) Equal(other *Map) bool {
	if len(m.keys) != len(other.keys) {
		return false
	}
	for i, k := range m.keys {
		if other.keys[i] != k {
			return false
		}
		a, b := m.values[k], other.values[k]
		if a.Kind != b.Kind {
			return false
		}
		if a.Kind == Scalar {
			if a.Str != b.Str {
				return false
			}
			continue
		}
		if len(a.Items) != len(b.Items) {
			return false
		}
		for j := range a.Items {
			if a.Items[j] != b.Items[j] {
				return false
			}
		}
	}
	return true
}

const delim = "---"

// Parse splits raw note content into its frontmatter map and body. The block
// must open with a "---" line at the very start of the content and close with
// another "---" line. Anything that does not match degrades to an empty map
// with the full input as body; Parse never fails.
func Parse(raw string) (*Map, string) {
	m := NewMap()

	rest, ok := strings.CutPrefix(raw, delim+"\n")
	if !ok {
		return m, raw
	}

	block, body, ok := cutClose(rest)
	if !ok {
		return m, raw
	}

	var currentKey string
	for _, line := range strings.Split(block, "\n") {
		if item, isItem := listItem(line); isItem && currentKey != "" {
			v, _ := m.Get(currentKey)
			if v.Kind != List {
				v = ListValue()
			}
			v.Items = append(v.Items, item)
			m.Set(currentKey, v)
			continue
		}

		key, val, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		currentKey = key
		val = strings.TrimSpace(val)
		if val == "" {
			// Empty value opens a list; following "- item" lines attach here.
			m.Set(key, ListValue())
		} else {
			m.Set(key, ScalarValue(val))
		}
	}

	return m, body
}

// cutClose finds the closing delimiter line within the text after the opening
// one and splits it into (block, body).
func cutClose(rest string) (block, body string, ok bool) {
	if after, found := strings.CutPrefix(rest, delim); found {
		// Immediately-closed block: empty frontmatter.
		if after == "" {
			return "", "", true
		}
		if body, found = strings.CutPrefix(after, "\n"); found {
			return "", body, true
		}
	}
	idx := strings.Index(rest, "\n"+delim)
	if idx < 0 {
		return "", "", false
	}
	block = rest[:idx]
	body = rest[idx+1+len(delim):]
	// The optional newline after the closing delimiter belongs to the
	// delimiter line, not the body.
	body = strings.TrimPrefix(body, "\n")
	return block, body, true
}

// listItem reports whether line is an indented "- item" list entry and
// returns the trimmed item text.
func listItem(line string) (string, bool) {
	if len(line) == 0 || (line[0] != ' ' && line[0] != '\t') {
		return "", false
	}
	trimmed := strings.TrimLeft(line, " \t")
	item, ok := strings.CutPrefix(trimmed, "- ")
	if !ok {
		return "", false
	}
	item = strings.TrimSpace(item)
	if item == "" {
		return "", false
	}
	return item, true
}

// Serialize renders the map back into a frontmatter block, keys in insertion
// order. Lists emit "key:" followed by two-space-indented items; an empty
// list emits just "key:" with no items.
func Serialize(m *Map) string {
	var b strings.Builder
	b.WriteString(delim + "\n")
	for _, key := range m.keys {
		v := m.values[key]
		if v.Kind == List {
			b.WriteString(key + ":\n")
			for _, item := range v.Items {
				b.WriteString("  - " + item + "\n")
			}
			continue
		}
		b.WriteString(key + ": " + v.Str + "\n")
	}
	b.WriteString(delim + "\n")
	return b.String()
}
