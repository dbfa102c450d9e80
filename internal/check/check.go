// Package check runs a full translation reconciliation: it loads every
// configured catalog, scans the project code once and folds the results into
// an analyzer.Report.
package check

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/stefsoma/appcheck-cli/internal/analyzer"
	"github.com/stefsoma/appcheck-cli/internal/catalog"
	"github.com/stefsoma/appcheck-cli/internal/config"
	"github.com/stefsoma/appcheck-cli/internal/ignore"
	"github.com/stefsoma/appcheck-cli/internal/logging"
	"github.com/stefsoma/appcheck-cli/internal/scanner"
	"github.com/stefsoma/appcheck-cli/internal/uitext"
	"github.com/stefsoma/appcheck-cli/internal/usage"
)

// Options tunes a run. The zero value is usable.
type Options struct {
	Logger     *slog.Logger
	HTTPClient *http.Client // Replaces the default client for remote catalogs
	CacheSize  int          // Corpus cache entries, scanner.DefaultCacheSize when zero
}

// Run executes one analysis. An invalid configuration is returned as
// *config.InvalidError before anything is loaded. Languages that fail to load
// are recorded in Report.Failures and do not stop the run.
func Run(ctx context.Context, cfg *config.Config, rules *ignore.Rules, opts Options) (*analyzer.Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	if rules == nil {
		rules = &ignore.Rules{}
	}

	report := &analyzer.Report{
		Source:             cfg.Source().String(),
		Languages:          cfg.Languages,
		ProjectDirs:        cfg.ProjectDirs,
		IgnoreRulesApplied: !rules.Empty(),
		Duplicates:         make(map[string][]analyzer.DuplicateGroup),
	}
	if cfg.Source() == config.SourceLocal {
		report.TranslationDir = cfg.TranslationDir
	}

	results, failures, err := loadLanguages(ctx, cfg, rules, opts, logger)
	if err != nil {
		return nil, err
	}
	report.Failures = failures
	for _, r := range results {
		if len(r.Duplicates) > 0 {
			report.Duplicates[r.Language] = r.Duplicates
		}
	}
	report.KeyUniverse = analyzer.KeyUniverse(results)

	corpus, err := buildCorpus(cfg, opts, logger)
	if err != nil {
		return nil, err
	}
	report.FilesScanned = corpus.Len()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result, err := usage.New(cfg.TranslationFunction, logger).Scan(gctx, corpus, report.KeyUniverse)
		if err != nil {
			return fmt.Errorf("usage scan failed: %w", err)
		}
		report.Usage = result
		return nil
	})
	g.Go(func() error {
		missing, err := uitext.FindMissingTranslations(gctx, corpus, cfg.TranslationFunction)
		if err != nil {
			return fmt.Errorf("UI text scan failed: %w", err)
		}
		report.MissingTranslations = missing
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.Summaries = analyzer.Aggregate(results, report.Usage)
	return report, nil
}

// loadLanguages loads each configured language in order. Only a cancelled
// context is returned as an error.
func loadLanguages(ctx context.Context, cfg *config.Config, rules *ignore.Rules, opts Options, logger *slog.Logger) ([]analyzer.LanguageResult, []analyzer.LanguageFailure, error) {
	loaderOpts := []catalog.Option{catalog.WithLogger(logger)}
	if opts.HTTPClient != nil {
		loaderOpts = append(loaderOpts, catalog.WithHTTPClient(opts.HTTPClient))
	}
	loader := catalog.NewLoader(cfg, loaderOpts...)

	var results []analyzer.LanguageResult
	var failures []analyzer.LanguageFailure

	for _, lang := range cfg.Languages {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		cat, err := loader.Load(ctx, lang)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
				return nil, nil, ctxErr
			}
			logger.Warn("skipping language", "language", lang, "error", err)
			failures = append(failures, analyzer.LanguageFailure{Language: lang, Err: err})
			continue
		}

		result := catalog.Result(cat, rules)
		logger.Debug("loaded catalog",
			"language", lang,
			"source", result.Source,
			"keys", result.Keys.Len(),
			"duplicates", len(result.Duplicates))
		results = append(results, result)
	}

	return results, failures, nil
}

// buildCorpus discovers code files under the configured project directories.
// Directories that do not exist are logged and skipped.
func buildCorpus(cfg *config.Config, opts Options, logger *slog.Logger) (*scanner.Corpus, error) {
	var roots []string
	for _, dir := range cfg.ProjectDirs {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			logger.Warn("skipping project directory", "path", dir, "error", err)
			continue
		}
		roots = append(roots, dir)
	}

	s := scanner.NewScanner()
	s.AddExcludeDirs(cfg.Exclude)
	s.SetIncludeGlobs(cfg.IncludeFiles)
	s.SetExcludeGlobs(cfg.ExcludeFiles)

	files, err := s.ScanAll(roots)
	if err != nil {
		return nil, err
	}
	logger.Debug("discovered source files", "count", len(files), "roots", len(roots))

	return scanner.NewCorpus(files, opts.CacheSize)
}
