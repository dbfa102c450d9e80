package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/stefsoma/appcheck-cli/internal/config"
)

// Loader resolves the catalog for one language from the configured source
type Loader struct {
	kind config.SourceKind

	// Local mode
	root         string
	mergeLayouts bool

	// Remote mode
	endpoint string
	format   string
	mappings func(language string) []string
	token    string
	client   *http.Client

	logger *slog.Logger
}

// Option customizes a Loader
type Option func(*Loader)

// WithHTTPClient replaces the client used for remote catalogs
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithLogger sets the logger for debug output
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader creates a loader for the source selected by cfg
func NewLoader(cfg *config.Config, opts ...Option) *Loader {
	l := &Loader{
		kind:         cfg.Source(),
		root:         cfg.TranslationDir,
		mergeLayouts: cfg.MergeLayouts,
		endpoint:     cfg.APIEndpoint,
		format:       cfg.LanguageCodeFormat,
		mappings:     cfg.MappingFor,
		token:        cfg.APIToken,
		client:       &http.Client{Timeout: cfg.Timeout()},
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the catalog for language. Failures are *SourceError or
// *MalformedError and only concern this language.
func (l *Loader) Load(ctx context.Context, language string) (Catalog, error) {
	switch l.kind {
	case config.SourceAPI:
		return l.loadRemote(ctx, language)
	case config.SourceLocal:
		return l.loadLocal(language)
	default:
		return nil, &SourceError{Language: language, Err: fmt.Errorf("no translation source specified")}
	}
}

// CandidatePaths lists the conventional catalog locations for language under
// root, in merge order
func CandidatePaths(root, language string) []string {
	return []string{
		filepath.Join(root, language+".json"),
		filepath.Join(root, language, "translation.json"),
		filepath.Join(root, "locales", language+".json"),
		filepath.Join(root, "locales", language, "translation.json"),
	}
}

// findCatalogFiles returns the existing catalog files for language, each once
func (l *Loader) findCatalogFiles(language string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(path string) {
		path = filepath.Clean(path)
		if seen[path] {
			return
		}
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			return
		}
		seen[path] = true
		files = append(files, path)
	}

	for _, path := range CandidatePaths(l.root, language) {
		add(path)
	}

	if l.mergeLayouts {
		fsys := os.DirFS(l.root)
		for _, pattern := range []string{"**/" + language + ".json", language + "/**/*.json"} {
			matches, err := doublestar.Glob(fsys, pattern)
			if err != nil {
				return nil, fmt.Errorf("glob %s: %w", pattern, err)
			}
			sort.Strings(matches)
			for _, m := range matches {
				add(filepath.Join(l.root, filepath.FromSlash(m)))
			}
		}
	}

	return files, nil
}

func (l *Loader) loadLocal(language string) (Catalog, error) {
	if _, err := os.Stat(l.root); err != nil {
		return nil, &SourceError{Language: language, Source: l.root, Err: err}
	}

	files, err := l.findCatalogFiles(language)
	if err != nil {
		return nil, &SourceError{Language: language, Source: l.root, Err: err}
	}
	if len(files) == 0 {
		return nil, &SourceError{Language: language, Source: l.root}
	}

	merged := NewTree()
	origins := make(map[string]string)
	for _, path := range files {
		l.logger.Debug("loading catalog file", "language", language, "path", path)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &SourceError{Language: language, Source: path, Err: err}
		}
		tree, err := ParseTree(data)
		if err != nil {
			return nil, &MalformedError{Language: language, Source: path, Err: err}
		}
		// Later files override earlier ones
		merged.Merge(tree)
		for _, k := range tree.Keys() {
			origins[k] = path
		}
	}

	return &LocalCatalog{Language: language, Files: files, Tree: merged, Origins: origins}, nil
}
