package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/stefsoma/appcheck-cli/internal/analyzer"
	"github.com/stefsoma/appcheck-cli/internal/ignore"
)

// visitLeaves walks the tree depth-first in document order and calls fn for
// every non-object value with its dotted key.
func visitLeaves(tree *Tree, prefix string, fn func(key string, value any)) {
	if tree == nil {
		return
	}
	for _, k := range tree.keys {
		fullKey := k
		if prefix != "" {
			fullKey = prefix + "." + k
		}
		v := tree.values[k]
		if sub, ok := v.(*Tree); ok {
			visitLeaves(sub, fullKey, fn)
			continue
		}
		fn(fullKey, v)
	}
}

// Flatten returns the dotted leaf keys of tree that no ignore rule excludes
func Flatten(tree *Tree, rules *ignore.Rules) analyzer.KeySet {
	keys := make(analyzer.KeySet)
	visitLeaves(tree, "", func(key string, value any) {
		if rules.ShouldIgnore(key, leafString(value)) {
			return
		}
		keys.Add(key)
	})
	return keys
}

// FindDuplicates groups leaves sharing a value. A group is opened the first
// time a later key reproduces a value and every further key with that value
// is appended to it. Ignore rules are not applied.
func FindDuplicates(tree *Tree, source string) []analyzer.DuplicateGroup {
	d := newDuplicateIndex(source)
	visitLeaves(tree, "", d.observe)
	return d.groups
}

type duplicateIndex struct {
	source    string
	firstKey  map[any]string
	firstFile map[any]string
	groupAt   map[any]int
	groups    []analyzer.DuplicateGroup
}

func newDuplicateIndex(source string) *duplicateIndex {
	return &duplicateIndex{
		source:    source,
		firstKey:  make(map[any]string),
		firstFile: make(map[any]string),
		groupAt:   make(map[any]int),
	}
}

func (d *duplicateIndex) observe(key string, value any) {
	d.observeIn(key, value, "")
}

// observeIn records a leaf read from file. Groups only carry Files when
// every observation names its file.
func (d *duplicateIndex) observeIn(key string, value any, file string) {
	id := valueID(value)
	first, seen := d.firstKey[id]
	if !seen {
		d.firstKey[id] = key
		d.firstFile[id] = file
		return
	}
	if i, ok := d.groupAt[id]; ok {
		g := &d.groups[i]
		g.Keys = append(g.Keys, key)
		if file != "" {
			g.Files = append(g.Files, file)
		}
		return
	}
	group := analyzer.DuplicateGroup{
		Value:  leafString(value),
		Keys:   []string{first, key},
		Source: d.source,
	}
	if file != "" {
		group.Files = []string{d.firstFile[id], file}
	}
	d.groupAt[id] = len(d.groups)
	d.groups = append(d.groups, group)
}

// valueID returns a comparable identity for a leaf value. Strings and
// numbers with the same text stay distinct.
func valueID(v any) any {
	switch v.(type) {
	case string, json.Number, bool, nil:
		return v
	default:
		return fmt.Sprintf("%T:%v", v, v)
	}
}
