package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Tree is a JSON object that remembers the order its keys appeared in.
// Values are string, json.Number, bool, nil or *Tree. Arrays decode to a
// *Tree keyed by index.
type Tree struct {
	keys   []string
	values map[string]any
}

// NewTree returns an empty tree
func NewTree() *Tree {
	return &Tree{values: make(map[string]any)}
}

// Set inserts or replaces a value. A replaced key keeps its position.
func (t *Tree) Set(key string, value any) {
	if _, exists := t.values[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.values[key] = value
}

// Get returns the value stored under key
func (t *Tree) Get(key string) (any, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Keys returns the keys in document order
func (t *Tree) Keys() []string {
	return t.keys
}

func (t *Tree) Len() int {
	return len(t.keys)
}

// Merge copies the top-level entries of other into t, other winning on
// conflicts. Nested objects are replaced, not merged.
func (t *Tree) Merge(other *Tree) {
	if other == nil {
		return
	}
	for _, k := range other.keys {
		t.Set(k, other.values[k])
	}
}

// ParseTree decodes a JSON document whose root must be an object
func ParseTree(data []byte) (*Tree, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected a JSON object at the root, got %v", tok)
	}

	tree, err := decodeObject(dec)
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("parsing JSON: unexpected data after root object")
	}
	return tree, nil
}

// decodeObject reads entries until the closing brace; the opening brace has
// already been consumed.
func decodeObject(dec *json.Decoder) (*Tree, error) {
	tree := NewTree()
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := kt.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %T", kt)
		}
		value, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		tree.Set(key, value)
	}
	if _, err := dec.Token(); err != nil { // '}'
		return nil, err
	}
	return tree, nil
}

func decodeArray(dec *json.Decoder) (*Tree, error) {
	tree := NewTree()
	for i := 0; dec.More(); i++ {
		value, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		tree.Set(strconv.Itoa(i), value)
	}
	if _, err := dec.Token(); err != nil { // ']'
		return nil, err
	}
	return tree, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %v", v)
	default:
		return v, nil
	}
}

// leafString renders a leaf value the way it is matched against ignore patterns
func leafString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return "null"
	default:
		return fmt.Sprint(val)
	}
}
