// Package usage finds which translation keys are referenced from code.
//
// A key counts as used when the corpus contains a literal call of the
// configured translation function with exactly that key, single or double
// quoted: t("nav.home") or t('nav.home'). Calls built from variables or
// template strings are not recognized.
package usage

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/stefsoma/appcheck-cli/internal/analyzer"
	"github.com/stefsoma/appcheck-cli/internal/scanner"
)

// Scanner matches keys against call-sites of one translation function
type Scanner struct {
	function string
	callOpen *regexp.Regexp
	logger   *slog.Logger
}

// New creates a scanner for calls of function
func New(function string, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scanner{
		function: function,
		callOpen: regexp.MustCompile(regexp.QuoteMeta(function) + `\(['"]`),
		logger:   logger,
	}
}

// CallPattern matches function('key') or function("key") anywhere in the
// text, so $t('key') and i18n.t('key') are calls of t
func CallPattern(function, key string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(function) + `\(['"]` + regexp.QuoteMeta(key) + `['"]\)`)
}

// Scan reports every key of keys as used or unused. Keys start unused and move
// to used on their first match. A file that cannot be read is logged and
// skipped.
func (s *Scanner) Scan(ctx context.Context, corpus *scanner.Corpus, keys analyzer.KeySet) (analyzer.UsageResult, error) {
	result := analyzer.UsageResult{
		Used:   make(analyzer.KeySet),
		Unused: make(analyzer.KeySet, len(keys)),
	}
	for k := range keys {
		result.Unused.Add(k)
	}

	// Keys that could end a literal early are checked with their own pattern
	var special []string
	for k := range keys {
		if strings.ContainsAny(k, `'")`) || strings.Contains(k, "\n") {
			special = append(special, k)
		}
	}
	patterns := make(map[string]*regexp.Regexp, len(special))
	for _, k := range special {
		patterns[k] = CallPattern(s.function, k)
	}

	for _, file := range corpus.Files() {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if result.Unused.Len() == 0 {
			break
		}

		content, err := corpus.Read(file.Path)
		if err != nil {
			s.logger.Warn("skipping unreadable file", "path", file.Path, "error", err)
			continue
		}

		for literal := range s.literals(content) {
			if result.Unused.Has(literal) {
				markUsed(result, literal)
			}
		}

		for k, re := range patterns {
			if result.Unused.Has(k) && re.MatchString(content) {
				markUsed(result, k)
			}
		}
	}

	s.logger.Debug("usage scan complete", "keys", len(keys), "used", result.Used.Len(), "files", corpus.Len())
	return result, nil
}

func markUsed(result analyzer.UsageResult, key string) {
	result.Used.Add(key)
	delete(result.Unused, key)
}

// literals returns the string arguments of every literal call in content.
// The literal runs to the first closing quote that is directly followed by
// ")" on the same line.
func (s *Scanner) literals(content string) map[string]struct{} {
	found := make(map[string]struct{})

	for _, loc := range s.callOpen.FindAllStringIndex(content, -1) {
		open := loc[1]
		lineEnd := strings.IndexByte(content[open:], '\n')
		if lineEnd < 0 {
			lineEnd = len(content)
		} else {
			lineEnd += open
		}

		for i := open; i+1 < lineEnd; i++ {
			if (content[i] == '\'' || content[i] == '"') && content[i+1] == ')' {
				found[content[open:i]] = struct{}{}
				break
			}
		}
	}

	return found
}
