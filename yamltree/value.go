package yamltree

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// maxAliasDepth bounds alias chains so a malformed document cannot loop forever.
const maxAliasDepth = 32

// Kind classifies a Value.
type Kind int

const (
	// Invalid is the kind of the zero Value and of failed lookups.
	Invalid Kind = iota
	Mapping
	Sequence
	String
	Bool
	Null
	// Scalar covers every other scalar: integers, floats, timestamps, binary.
	Scalar
)

var kindNames = [...]string{
	Invalid:  "invalid",
	Mapping:  "mapping",
	Sequence: "sequence",
	String:   "string",
	Bool:     "bool",
	Null:     "null",
	Scalar:   "scalar",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Value is a read-only view over a parsed YAML node.
type Value struct {
	node *yaml.Node
}

// Entry is a single key/value pair of a mapping, in authored order.
type Entry struct {
	Key   Value
	Value Value
}

// String renders the entry for diagnostics.
func (e Entry) String() string {
	return e.Key.String() + ": " + e.Value.String()
}

// NewValue wraps an already parsed node.
func NewValue(node *yaml.Node) Value {
	return Value{node: node}
}

// Kind reports the variant held by v. Aliases are followed.
func (v Value) Kind() Kind {
	n := v.resolved()
	if n == nil {
		return Invalid
	}

	switch n.Kind {
	case yaml.MappingNode:
		return Mapping
	case yaml.SequenceNode:
		return Sequence
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!str":
			return String
		case "!!bool":
			// True and TRUE stay plain strings; only lowercase literals are booleans.
			if n.Value == "true" || n.Value == "false" {
				return Bool
			}
			return String
		case "!!null":
			return Null
		default:
			return Scalar
		}
	default:
		return Invalid
	}
}

// Get returns the value stored under a string key of a mapping. When the key
// appears more than once the last occurrence wins.
func (v Value) Get(key string) (Value, bool) {
	entries, ok := v.AsMapping()
	if !ok {
		return Value{}, false
	}

	var (
		found Value
		hit   bool
	)
	for _, entry := range entries {
		if k, ok := entry.Key.AsString(); ok && k == key {
			found = entry.Value
			hit = true
		}
	}
	return found, hit
}

// AsMapping returns the entries of a mapping in document order. A repeated
// scalar key keeps the position of its first occurrence and the value of its last.
func (v Value) AsMapping() ([]Entry, bool) {
	if v.Kind() != Mapping {
		return nil, false
	}

	n := v.resolved()
	entries := make([]Entry, 0, len(n.Content)/2)
	seen := make(map[string]int, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		entry := Entry{
			Key:   Value{node: n.Content[i]},
			Value: Value{node: n.Content[i+1]},
		}
		if id, ok := entry.Key.identity(); ok {
			if pos, dup := seen[id]; dup {
				entries[pos].Value = entry.Value
				continue
			}
			seen[id] = len(entries)
		}
		entries = append(entries, entry)
	}
	return entries, true
}

// AsString returns the text of a string scalar.
func (v Value) AsString() (string, bool) {
	if v.Kind() != String {
		return "", false
	}
	return v.resolved().Value, true
}

// AsBool returns the value of a boolean scalar.
func (v Value) AsBool() (bool, bool) {
	if v.Kind() != Bool {
		return false, false
	}

	return v.resolved().Value == "true", true
}

// String renders v as compact YAML for log messages.
func (v Value) String() string {
	n := v.resolved()
	if n == nil {
		return "<" + Invalid.String() + ">"
	}
	if n.Kind == yaml.ScalarNode {
		return n.Value
	}

	out, err := yaml.Marshal(n)
	if err != nil {
		return "<" + v.Kind().String() + ">"
	}
	return strings.TrimSpace(string(out))
}

// identity distinguishes scalar keys by resolved tag and text, so 1 and "1" differ.
func (v Value) identity() (string, bool) {
	n := v.resolved()
	if n == nil || n.Kind != yaml.ScalarNode {
		return "", false
	}
	return n.ShortTag() + "\x00" + n.Value, true
}

func (v Value) resolved() *yaml.Node {
	n := v.node
	for depth := 0; n != nil && n.Kind == yaml.AliasNode; depth++ {
		if depth >= maxAliasDepth {
			return nil
		}
		n = n.Alias
	}
	return n
}
