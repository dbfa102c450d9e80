package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"

	"github.com/stefsoma/appcheck-cli/internal/analyzer"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGreen  = "\033[32m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// Options controls how a report is rendered
type Options struct {
	JSON       bool
	Silent     bool   // Exit code only
	Color      bool   // Emit ANSI colors
	SkipUnused bool   // Unused keys neither reported nor counted as issues
	LogFile    string // Mentioned in the summary when set
}

// ColorSupported reports whether f is a terminal that renders ANSI colors.
// NO_COLOR disables colors regardless of the terminal.
func ColorSupported(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if !term.IsTerminal(int(f.Fd())) {
		return false
	}
	return enableANSI(f)
}

// JSONOutput represents the JSON output format
type JSONOutput struct {
	Source              string                               `json:"source"`
	TranslationDir      string                               `json:"translation_dir,omitempty"`
	Languages           []string                             `json:"languages"`
	ProjectDirs         []string                             `json:"project_dirs"`
	IgnoreRulesApplied  bool                                 `json:"ignore_rules_applied"`
	FilesScanned        int                                  `json:"files_scanned"`
	TotalKeys           int                                  `json:"total_keys"`
	UsedKeys            []string                             `json:"used_keys"`
	UnusedKeys          []string                             `json:"unused_keys"`
	Summaries           []analyzer.LanguageSummary           `json:"languages_summary"`
	Duplicates          map[string][]analyzer.DuplicateGroup `json:"duplicates"`
	MissingTranslations []analyzer.MissingTranslation        `json:"missing_translations"`
	Failures            []JSONFailure                        `json:"failures"`
}

// JSONFailure is a skipped language with its reason
type JSONFailure struct {
	Language string `json:"language"`
	Error    string `json:"error"`
}

// Format writes the report to w in the selected format
func Format(w io.Writer, report *analyzer.Report, opts Options) error {
	if opts.Silent {
		// In silent mode, only return exit code (handled by caller)
		return nil
	}

	if opts.JSON {
		return formatJSON(w, report, opts)
	}

	return formatHumanReadable(w, report, opts)
}

// formatJSON outputs results in JSON format
func formatJSON(w io.Writer, report *analyzer.Report, opts Options) error {
	out := JSONOutput{
		Source:              report.Source,
		TranslationDir:      report.TranslationDir,
		Languages:           nonNil(report.Languages),
		ProjectDirs:         nonNil(report.ProjectDirs),
		IgnoreRulesApplied:  report.IgnoreRulesApplied,
		FilesScanned:        report.FilesScanned,
		TotalKeys:           report.KeyUniverse.Len(),
		UsedKeys:            nonNil(report.Usage.Used.Sorted()),
		UnusedKeys:          nonNil(report.Usage.Unused.Sorted()),
		Summaries:           report.Summaries,
		Duplicates:          report.Duplicates,
		MissingTranslations: report.MissingTranslations,
		Failures:            []JSONFailure{},
	}

	if opts.SkipUnused {
		out.UnusedKeys = []string{}
	}
	if out.Summaries == nil {
		out.Summaries = []analyzer.LanguageSummary{}
	}
	if out.Duplicates == nil {
		out.Duplicates = map[string][]analyzer.DuplicateGroup{}
	}
	if out.MissingTranslations == nil {
		out.MissingTranslations = []analyzer.MissingTranslation{}
	}
	for _, f := range report.Failures {
		out.Failures = append(out.Failures, JSONFailure{Language: f.Language, Error: f.Error()})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// printer writes colored lines, dropping colors when disabled
type printer struct {
	w     io.Writer
	color bool
}

func (p printer) c(code string) string {
	if p.color {
		return code
	}
	return ""
}

func (p printer) line(color, format string, args ...any) {
	fmt.Fprintf(p.w, "%s"+format+"%s\n", append(append([]any{p.c(color)}, args...), p.c(colorReset))...)
}

// formatHumanReadable outputs results in human-readable format
func formatHumanReadable(w io.Writer, report *analyzer.Report, opts Options) error {
	p := printer{w: w, color: opts.Color}

	if report.IgnoreRulesApplied {
		p.line(colorYellow, ".appcheckignore found and applied.")
	} else {
		p.line(colorYellow, ".appcheckignore not found, continuing without restrictions.")
	}

	p.line(colorYellow, "\nAnalysis Configuration:")
	p.line(colorYellow, "• Translation Source: %s", report.Source)
	translationDir := report.TranslationDir
	if translationDir == "" {
		translationDir = "N/A"
	}
	p.line(colorYellow, "• Translation Directory: %s", translationDir)
	p.line(colorYellow, "• Languages to check: %s", strings.Join(report.Languages, ", "))
	p.line(colorYellow, "• Project directories: %s", strings.Join(report.ProjectDirs, ", "))

	if len(report.Failures) > 0 {
		p.line(colorBold+colorYellow, "\nSkipped languages:")
		for _, f := range report.Failures {
			p.line(colorYellow, "• %s: %s%s", f.Language, p.c(colorGray), f.Error())
		}
	}

	p.line(colorBold+colorBlue, "\nAnalysis Results")
	p.line(colorGreen, "• Source files scanned: %d", report.FilesScanned)
	p.line(colorGreen, "• Total unique translation keys: %d", report.KeyUniverse.Len())
	p.line(colorGreen, "• Used translation keys: %d", report.Usage.Used.Len())
	if !opts.SkipUnused {
		p.line(colorYellow, "• Unused translation keys: %d", report.Usage.Unused.Len())
		if report.Usage.Unused.Len() > 0 && opts.LogFile != "" {
			p.line(colorYellow, "• Unused keys are logged in %s", opts.LogFile)
		}
	}
	if n := duplicateGroups(report); n > 0 {
		p.line(colorYellow, "• Duplicate values: %d", n)
	}
	if n := len(report.MissingTranslations); n > 0 {
		p.line(colorYellow, "• Missing translations in UI: %d", n)
	}

	if len(report.Summaries) > 0 {
		p.line(colorBold+colorBlue, "\nLanguage Summary")
		for _, s := range report.Summaries {
			color := usageColor(s.UsagePercentage)
			p.line(color, "• %s:", strings.ToUpper(s.Language))
			p.line(color, "  - Translation Keys: %d", s.TotalKeys)
			p.line(color, "  - Used Keys: %d", len(s.UsedKeys))
			p.line(color, "  - Unused Keys: %d", len(s.UnusedKeys))
			p.line(color, "  - Duplicate Values: %d", s.DuplicateCount)
			p.line(color, "  - Usage: %.2f%%", s.UsagePercentage)
		}
	}

	if !HasIssues(report, opts) {
		p.line(colorBold+colorGreen, "\n✓ No issues found. All translation keys are used and UI text is translated.")
	} else if opts.LogFile != "" {
		p.line(colorBold+colorBlue, "\nDetailed results are written to %s.", opts.LogFile)
	}
	fmt.Fprintln(w)

	return nil
}

// usageColor bands: above 80% green, above 50% yellow, else red
func usageColor(pct float64) string {
	switch {
	case pct > 80:
		return colorGreen
	case pct > 50:
		return colorYellow
	default:
		return colorRed
	}
}

func duplicateGroups(report *analyzer.Report) int {
	n := 0
	for _, groups := range report.Duplicates {
		n += len(groups)
	}
	return n
}

// sortedLanguages returns the languages with duplicates, in configured order
// first and any others after
func sortedLanguages(report *analyzer.Report) []string {
	var langs []string
	seen := make(map[string]bool)
	for _, lang := range report.Languages {
		if _, ok := report.Duplicates[lang]; ok && !seen[lang] {
			langs = append(langs, lang)
			seen[lang] = true
		}
	}
	var rest []string
	for lang := range report.Duplicates {
		if !seen[lang] {
			rest = append(rest, lang)
		}
	}
	sort.Strings(rest)
	return append(langs, rest...)
}

// HasIssues returns true if the report contains unused keys, duplicate values
// or untranslated UI text. Skipped languages are not issues.
func HasIssues(report *analyzer.Report, opts Options) bool {
	if !opts.SkipUnused && report.Usage.Unused.Len() > 0 {
		return true
	}
	if duplicateGroups(report) > 0 {
		return true
	}
	return len(report.MissingTranslations) > 0
}
