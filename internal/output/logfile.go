package output

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/stefsoma/appcheck-cli/internal/analyzer"
	"github.com/stefsoma/appcheck-cli/internal/catalog"
)

const logRule = "---------------------------------------------------------------"

// WriteLog writes the detailed analysis log to path, replacing any previous
// log
func WriteLog(path string, report *analyzer.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	if err := writeLog(f, report); err != nil {
		f.Close()
		return fmt.Errorf("failed to write log file: %w", err)
	}
	return f.Close()
}

func writeLog(w io.Writer, report *analyzer.Report) error {
	bw := bufio.NewWriter(w)

	fmt.Fprint(bw, "AppCheck Translation Analysis Log\n\n")

	for _, lang := range sortedLanguages(report) {
		groups := report.Duplicates[lang]
		if len(groups) == 0 {
			continue
		}
		kind := "local"
		if groups[0].Source == catalog.SourceAPI {
			kind = "API"
		}
		fmt.Fprintf(bw, "\nDuplicate values found in %s %s translations:\n%s\n", lang, kind, logRule)
		for _, g := range groups {
			fmt.Fprintf(bw, "  • Value: %q\n", g.Value)
			for i, key := range g.Keys {
				switch {
				case len(g.Files) == len(g.Keys):
					fmt.Fprintf(bw, "    - Key: %q in file %q\n", key, g.Files[i])
				case g.Source == catalog.SourceAPI || g.Source == "":
					fmt.Fprintf(bw, "    - Key: %q\n", key)
				default:
					fmt.Fprintf(bw, "    - Key: %q in file %q\n", key, g.Source)
				}
			}
		}
	}

	if len(report.Failures) > 0 {
		fmt.Fprintf(bw, "\nSkipped languages:\n%s\n", logRule)
		for _, f := range report.Failures {
			fmt.Fprintf(bw, "  • %s: %s\n", f.Language, f.Error())
		}
	}

	if len(report.MissingTranslations) > 0 {
		fmt.Fprintf(bw, "\nMissing Translations in UI:\n%s\n", logRule)
		for _, m := range report.MissingTranslations {
			fmt.Fprintf(bw, "• %s, Line %d: %q\n", m.File, m.Line, m.Text)
		}
	}

	if report.Usage.Unused.Len() > 0 {
		fmt.Fprintf(bw, "\nUnused translation keys:\n%s\n", logRule)
		for _, key := range report.Usage.Unused.Sorted() {
			fmt.Fprintf(bw, "  • %s\n", key)
		}
	}

	return bw.Flush()
}
