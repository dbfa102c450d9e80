package analyzer

import "sort"

// KeySet is a set of flattened translation keys (e.g. "nav.home.title")
type KeySet map[string]struct{}

// NewKeySet builds a set from keys
func NewKeySet(keys ...string) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

func (s KeySet) Add(key string) {
	s[key] = struct{}{}
}

func (s KeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

func (s KeySet) Len() int {
	return len(s)
}

// Sorted returns the keys in lexical order
func (s KeySet) Sorted() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Union returns a new set containing the keys of every input set
func Union(sets ...KeySet) KeySet {
	out := make(KeySet)
	for _, s := range sets {
		for k := range s {
			out[k] = struct{}{}
		}
	}
	return out
}

// DuplicateGroup is a catalog value found under more than one key
type DuplicateGroup struct {
	Value  string   `json:"value"`
	Keys   []string `json:"keys"`            // First-seen key, then later keys in document order
	Files  []string `json:"files,omitempty"` // File each key was read from, parallel to Keys; local catalogs only
	Source string   `json:"source"`          // "API" or the catalog file paths
}

// LanguageResult is the outcome of loading one language's catalog
type LanguageResult struct {
	Language   string
	Source     string
	Keys       KeySet           // Flattened keys after ignore rules
	Duplicates []DuplicateGroup // Computed before ignore rules
}

// LanguageFailure records a language that was skipped
type LanguageFailure struct {
	Language string `json:"language"`
	Err      error  `json:"-"`
}

func (f LanguageFailure) Error() string {
	if f.Err == nil {
		return f.Language
	}
	return f.Err.Error()
}

// UsageResult splits the key universe into referenced and unreferenced keys
type UsageResult struct {
	Used   KeySet
	Unused KeySet
}

// MissingTranslation is literal UI text that is not passed through the
// translation function
type MissingTranslation struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Text string `json:"text"`
}

// LanguageSummary contains the usage statistics for one language
type LanguageSummary struct {
	Language        string   `json:"language"`
	TotalKeys       int      `json:"total_keys"`
	UsedKeys        []string `json:"used_keys"`
	UnusedKeys      []string `json:"unused_keys"`
	DuplicateCount  int      `json:"duplicate_count"`
	UsagePercentage float64  `json:"usage_percentage"`
}

// Report contains the complete analysis results
type Report struct {
	Source              string            // "API" or "Local Files"
	TranslationDir      string            // Empty in API mode
	Languages           []string          // Configured languages
	ProjectDirs         []string          // Code roots
	IgnoreRulesApplied  bool              // True if an ignore file contributed rules
	KeyUniverse         KeySet            // Union of keys across loaded languages
	Usage               UsageResult       // Computed once against KeyUniverse
	Summaries           []LanguageSummary // Loaded languages only, in configured order
	Duplicates          map[string][]DuplicateGroup
	MissingTranslations []MissingTranslation
	Failures            []LanguageFailure
	FilesScanned        int
}
