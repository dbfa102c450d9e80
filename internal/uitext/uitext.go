// Package uitext finds user-visible text written directly into markup instead
// of being passed through the translation function.
package uitext

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/stefsoma/appcheck-cli/internal/analyzer"
	"github.com/stefsoma/appcheck-cli/internal/scanner"
)

const textTags = `div|span|p|h[1-6]|Text|label|button`

// elementPattern matches a single text-only element on one line. The closing
// tag is captured separately and compared in code.
var elementPattern = regexp.MustCompile(`<(` + textTags + `)(?:\s[^>]*)?>([^<>{}]+)</(` + textTags + `)>`)

var meaningful = regexp.MustCompile(`\w`)

// FindMissingTranslations returns every literal text element in the corpus,
// in file then line order. Text that already contains a call of function,
// translate or i18n is not reported. Unreadable files are skipped.
func FindMissingTranslations(ctx context.Context, corpus *scanner.Corpus, function string) ([]analyzer.MissingTranslation, error) {
	translated := translatedPattern(function)
	wd, _ := os.Getwd()

	var found []analyzer.MissingTranslation
	for _, file := range corpus.Files() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, err := corpus.Read(file.Path)
		if err != nil {
			continue
		}

		display := displayPath(wd, file.Path)
		for i, line := range strings.Split(content, "\n") {
			for _, text := range literalTexts(line) {
				if !meaningful.MatchString(text) || translated.MatchString(text) {
					continue
				}
				found = append(found, analyzer.MissingTranslation{
					File: display,
					Line: i + 1,
					Text: text,
				})
			}
		}
	}

	return found, nil
}

// literalTexts returns the trimmed inner text of each element on line whose
// opening and closing tags agree
func literalTexts(line string) []string {
	var texts []string
	for _, m := range elementPattern.FindAllStringSubmatch(line, -1) {
		if m[1] != m[3] {
			continue
		}
		if text := strings.TrimSpace(m[2]); text != "" {
			texts = append(texts, text)
		}
	}
	return texts
}

func translatedPattern(function string) *regexp.Regexp {
	names := []string{regexp.QuoteMeta(function), "translate", "i18n"}
	return regexp.MustCompile(`\b(?:` + strings.Join(names, "|") + `)\(['"]`)
}

// displayPath makes path relative to wd unless that would climb out of it
func displayPath(wd, path string) string {
	if wd == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
