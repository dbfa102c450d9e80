package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Language represents a source language whose files are searched for
// translation calls
type Language string

const (
	LanguageJavaScript Language = "javascript"
	LanguageTypeScript Language = "typescript"
	LanguageVue        Language = "vue"
	LanguageUnknown    Language = "unknown"
)

// FileInfo contains information about a file to be scanned
type FileInfo struct {
	Path     string
	Language Language
}

// Scanner handles file discovery and filtering
type Scanner struct {
	excludeDirs  map[string]bool // Directory names to exclude (e.g., "node_modules")
	excludePaths []string        // Paths relative to the scan root (e.g., "src/generated")
	excludeGlobs []string
	includeGlobs []string
}

// NewScanner creates a new scanner with default exclusions
func NewScanner() *Scanner {
	return &Scanner{
		excludeDirs: map[string]bool{
			"node_modules": true,
			"vendor":       true,
			".git":         true,
			"build":        true,
			"dist":         true,
			"out":          true,
			".next":        true,
			".nuxt":        true,
			".cache":       true,
			"coverage":     true,
		},
	}
}

// SetExcludeGlobs sets glob patterns to exclude
func (s *Scanner) SetExcludeGlobs(globs []string) {
	s.excludeGlobs = globs
}

// SetIncludeGlobs sets glob patterns to include (overrides excludes)
func (s *Scanner) SetIncludeGlobs(globs []string) {
	s.includeGlobs = globs
}

// AddExcludeDirs adds additional directories to exclude from scanning
// Can be directory names (e.g., "generated") or paths (e.g., "src/generated")
func (s *Scanner) AddExcludeDirs(dirs []string) {
	for _, dir := range dirs {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}
		if strings.Contains(dir, "/") || strings.Contains(dir, "\\") {
			s.excludePaths = append(s.excludePaths, strings.TrimSuffix(filepath.ToSlash(dir), "/*"))
		} else {
			s.excludeDirs[dir] = true
		}
	}
}

// detectLanguage determines the language from file extension
func detectLanguage(path string) Language {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".js", ".jsx", ".mjs", ".cjs":
		return LanguageJavaScript
	case ".ts", ".tsx", ".mts", ".cts":
		return LanguageTypeScript
	case ".vue":
		return LanguageVue
	default:
		return LanguageUnknown
	}
}

// isDeclarationFile skips TypeScript declaration files, which carry no calls
func isDeclarationFile(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".d.ts")
}

// matchesGlob checks if a path matches any of the glob patterns
func matchesGlob(path string, globs []string) bool {
	slashed := filepath.ToSlash(path)
	for _, glob := range globs {
		if matched, _ := doublestar.Match(glob, filepath.Base(path)); matched {
			return true
		}
		if matched, _ := doublestar.Match(glob, slashed); matched {
			return true
		}
	}
	return false
}

// shouldInclude checks if a file should be included based on include/exclude
// globs, matched against the path relative to the scan root
func (s *Scanner) shouldInclude(path string) bool {
	if len(s.includeGlobs) > 0 {
		return matchesGlob(path, s.includeGlobs)
	}
	if len(s.excludeGlobs) > 0 {
		return !matchesGlob(path, s.excludeGlobs)
	}
	return true
}

// isExcludedPath checks a directory path relative to the scan root
func (s *Scanner) isExcludedPath(root, path string) bool {
	if len(s.excludePaths) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, p := range s.excludePaths {
		if rel == p || strings.HasPrefix(rel, p+"/") {
			return true
		}
	}
	return false
}

// Scan recursively walks a directory and returns the source files found
func (s *Scanner) Scan(rootPath string) ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != rootPath && (s.excludeDirs[d.Name()] || s.isExcludedPath(rootPath, path)) {
				return filepath.SkipDir
			}
			return nil
		}

		lang := detectLanguage(path)
		if lang == LanguageUnknown || isDeclarationFile(path) {
			return nil
		}

		rel, err := filepath.Rel(rootPath, path)
		if err != nil {
			rel = path
		}
		if !s.shouldInclude(rel) {
			return nil
		}

		files = append(files, FileInfo{
			Path:     path,
			Language: lang,
		})
		return nil
	})

	return files, err
}

// ScanAll scans every root in order. A file reachable from two roots is
// returned once.
func (s *Scanner) ScanAll(roots []string) ([]FileInfo, error) {
	var all []FileInfo
	seen := make(map[string]bool)

	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			return nil, fmt.Errorf("project directory %s: %w", root, err)
		}
		files, err := s.Scan(root)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", root, err)
		}
		for _, f := range files {
			abs, err := filepath.Abs(f.Path)
			if err != nil {
				abs = f.Path
			}
			if seen[abs] {
				continue
			}
			seen[abs] = true
			all = append(all, f)
		}
	}

	return all, nil
}
