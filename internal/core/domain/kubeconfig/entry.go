package kubeconfig

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// EntryKey identifies a logical resource across the named collections
type EntryKey string

// NewEntryKey creates a validated entry key
func NewEntryKey(value string) (EntryKey, error) {
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("entry key cannot be empty")
	}
	return EntryKey(value), nil
}

// Value returns the raw key
func (k EntryKey) Value() string {
	return string(k)
}

// String implements fmt.Stringer
func (k EntryKey) String() string {
	return string(k)
}

// Entry is one named item of a collection. Everything besides the name is
// kept as YAML nodes so fields this tool does not know survive a rewrite
// with their original tags and styles.
type Entry struct {
	Name   EntryKey
	Fields map[string]yaml.Node

	// rawName is the decoded name node when it was not a plain string
	rawName *yaml.Node
}

// NewEntry creates an entry with a single role payload, e.g. "cluster"
func NewEntry(key EntryKey, field string, payload map[string]any) (Entry, error) {
	var node yaml.Node
	if err := node.Encode(payload); err != nil {
		return Entry{}, fmt.Errorf("failed to encode %s payload: %w", field, err)
	}
	return Entry{
		Name:   key,
		Fields: map[string]yaml.Node{field: node},
	}, nil
}

// Payload returns the role payload stored under field, if it is a mapping
func (e Entry) Payload(field string) (map[string]any, bool) {
	node, ok := e.Fields[field]
	if !ok || node.Kind != yaml.MappingNode {
		return nil, false
	}
	var payload map[string]any
	if err := node.Decode(&payload); err != nil {
		return nil, false
	}
	return payload, true
}

// UnmarshalYAML implements yaml.Unmarshaler
func (e *Entry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: entry must be a mapping", value.Line)
	}

	decoded := Entry{Fields: map[string]yaml.Node{}}
	seen := map[string]bool{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		if seen[key.Value] {
			return fmt.Errorf("line %d: entry field %q defined twice", key.Line, key.Value)
		}
		seen[key.Value] = true

		if key.Value != "name" {
			decoded.Fields[key.Value] = *val
			continue
		}
		if val.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: entry name must be a scalar", val.Line)
		}
		decoded.Name = EntryKey(val.Value)
		if val.ShortTag() != "!!str" {
			raw := *val
			decoded.rawName = &raw
		}
	}

	*e = decoded
	return nil
}

// MarshalYAML implements yaml.Marshaler. The name is written first and the
// remaining fields follow in key order.
func (e Entry) MarshalYAML() (interface{}, error) {
	name := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(e.Name)}
	if e.rawName != nil && e.rawName.Value == string(e.Name) {
		raw := *e.rawName
		name = &raw
	}

	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	out.Content = append(out.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "name"}, name)

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		val := e.Fields[k]
		out.Content = append(out.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, &val)
	}
	return out, nil
}

// Collection is an ordered list of entries for one role
type Collection []Entry

// Upsert removes every entry carrying e's key and appends e. Insert and
// update share this path, so repeating it with the same entry is a no-op
// on the result and the upserted entry always ends up last.
func (c Collection) Upsert(e Entry) Collection {
	out := make(Collection, 0, len(c)+1)
	for _, existing := range c {
		if existing.Name != e.Name {
			out = append(out, existing)
		}
	}
	return append(out, e)
}

// Find returns the first entry with the given key
func (c Collection) Find(key EntryKey) (Entry, bool) {
	for _, e := range c {
		if e.Name == key {
			return e, true
		}
	}
	return Entry{}, false
}

// Count returns how many entries carry the given key
func (c Collection) Count(key EntryKey) int {
	n := 0
	for _, e := range c {
		if e.Name == key {
			n++
		}
	}
	return n
}

// Keys returns entry keys in collection order
func (c Collection) Keys() []EntryKey {
	keys := make([]EntryKey, 0, len(c))
	for _, e := range c {
		keys = append(keys, e.Name)
	}
	return keys
}
