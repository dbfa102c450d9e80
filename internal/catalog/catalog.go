// Package catalog loads translation catalogs and reduces them to flat key
// sets and duplicate-value groups.
//
// Catalogs come either from local JSON files (a nested object tree) or from
// a remote API (a flat list of records). Both shapes are normalized here so
// callers only deal with the Catalog interface.
package catalog

import (
	"strings"

	"github.com/stefsoma/appcheck-cli/internal/analyzer"
	"github.com/stefsoma/appcheck-cli/internal/ignore"
)

// SourceAPI is the duplicate source label for remote catalogs
const SourceAPI = "API"

// Catalog is the key/value content of one language
type Catalog interface {
	Lang() string
	// Source describes where the catalog came from, for log output
	Source() string
	// Keys returns the flattened keys that survive the ignore rules
	Keys(rules *ignore.Rules) analyzer.KeySet
	// Duplicates returns values repeated under several keys, ignoring rules
	Duplicates() []analyzer.DuplicateGroup
}

// LocalCatalog is a catalog merged from one or more JSON files
type LocalCatalog struct {
	Language string
	Files    []string
	Tree     *Tree
	Origins  map[string]string // Top-level key -> file that supplied it
}

func (c *LocalCatalog) Lang() string { return c.Language }

func (c *LocalCatalog) Source() string {
	return strings.Join(c.Files, ", ")
}

func (c *LocalCatalog) Keys(rules *ignore.Rules) analyzer.KeySet {
	return Flatten(c.Tree, rules)
}

// Duplicates groups repeated values. When Origins is known each group lists
// the file every key came from.
func (c *LocalCatalog) Duplicates() []analyzer.DuplicateGroup {
	if len(c.Origins) == 0 || c.Tree == nil {
		return FindDuplicates(c.Tree, c.Source())
	}

	d := newDuplicateIndex(c.Source())
	for _, top := range c.Tree.Keys() {
		file := c.Origins[top]
		observe := func(key string, value any) { d.observeIn(key, value, file) }
		v, _ := c.Tree.Get(top)
		if sub, ok := v.(*Tree); ok {
			visitLeaves(sub, top, observe)
		} else {
			observe(top, v)
		}
	}
	return d.groups
}

// Record is one entry of a remote catalog response
type Record struct {
	TranslationCode string `json:"translationCode"`
	Value           any    `json:"value"`
}

// APICatalog is a catalog fetched from a remote endpoint. Its records are
// already flat, so each translation code is one key.
type APICatalog struct {
	Language string
	Code     string // Language code as sent to the endpoint
	Records  []Record
}

func (c *APICatalog) Lang() string { return c.Language }

func (c *APICatalog) Source() string { return SourceAPI }

func (c *APICatalog) Keys(rules *ignore.Rules) analyzer.KeySet {
	keys := make(analyzer.KeySet, len(c.Records))
	for _, r := range c.Records {
		if r.TranslationCode == "" {
			continue
		}
		if rules.ShouldIgnore(r.TranslationCode, leafString(r.Value)) {
			continue
		}
		keys.Add(r.TranslationCode)
	}
	return keys
}

func (c *APICatalog) Duplicates() []analyzer.DuplicateGroup {
	d := newDuplicateIndex(SourceAPI)
	seen := make(map[string]bool, len(c.Records))
	for _, r := range c.Records {
		// Codes are opaque keys, a repeated code is not a duplicate value
		if r.TranslationCode == "" || seen[r.TranslationCode] {
			continue
		}
		seen[r.TranslationCode] = true
		d.observe(r.TranslationCode, r.Value)
	}
	return d.groups
}

// Result reduces a catalog to the per-language value the pipeline folds
func Result(c Catalog, rules *ignore.Rules) analyzer.LanguageResult {
	return analyzer.LanguageResult{
		Language:   c.Lang(),
		Source:     c.Source(),
		Keys:       c.Keys(rules),
		Duplicates: c.Duplicates(),
	}
}
