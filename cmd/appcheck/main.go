package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/stefsoma/appcheck-cli/internal/check"
	"github.com/stefsoma/appcheck-cli/internal/config"
	"github.com/stefsoma/appcheck-cli/internal/ignore"
	"github.com/stefsoma/appcheck-cli/internal/logging"
	"github.com/stefsoma/appcheck-cli/internal/output"
)

// Version is set at build time via -ldflags
var Version = "dev"

// errIssuesFound ends a completed check that found issues. It sets the exit
// code without printing an error.
var errIssuesFound = errors.New("issues found")

var (
	rootCmd = &cobra.Command{
		Use:           "appcheck",
		Short:         "Check translation catalogs against application code",
		Long:          "A CLI tool that compares translation catalogs with the keys an application actually uses and flags untranslated UI text.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	checkCmd = &cobra.Command{
		Use:     "check-translations",
		Aliases: []string{"check"},
		Short:   "Analyze translation usage in the current project",
		Long:    "Load the configured catalogs, find unused keys, duplicate values and literal UI text, and write a detailed log.",
		Args:    cobra.NoArgs,
		RunE:    runCheck,
	}

	initConfigCmd = &cobra.Command{
		Use:   "init-config",
		Short: "Create an appcheck.config.yaml file in the current directory",
		Long:  "Creates an appcheck.config.yaml file with a commented default configuration in the current directory.",
		Args:  cobra.NoArgs,
		RunE:  runInitConfig,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Long:  "Print the version number of appcheck",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(Version)
		},
	}

	// Flags
	configPath string
	ignorePath string
	jsonOutput bool
	silent     bool
	skipUnused bool
	debug      bool
	noHeader   bool
	noFail     bool
	logLevel   string
	logFormat  string
	include    []string
	exclude    []string
)

func init() {
	checkCmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (default: appcheck.config.json or .yaml in the current directory)")
	checkCmd.Flags().StringVar(&ignorePath, "ignore-file", ignore.FileName, "Ignore rules file")
	checkCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")
	checkCmd.Flags().BoolVar(&silent, "silent", false, "Silent mode (exit code only)")
	checkCmd.Flags().BoolVar(&skipUnused, "skip-unused", false, "Skip reporting unused translation keys")
	checkCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	checkCmd.Flags().BoolVar(&noHeader, "no-header", false, "Skip printing the header")
	checkCmd.Flags().BoolVar(&noFail, "no-fail", false, "Exit 0 even when issues are found")
	checkCmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	checkCmd.Flags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
	checkCmd.Flags().StringSliceVar(&include, "include", nil, "Only scan code files matching these globs (adds to includeFiles)")
	checkCmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Skip code files matching these globs (adds to excludeFiles)")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initConfigCmd)
	rootCmd.AddCommand(versionCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	level := logLevel
	if debug {
		level = "debug"
	}
	if silent && !debug {
		level = "error"
	}
	logger := logging.New(os.Stderr, level, logFormat)

	// Print header unless disabled or in JSON/silent mode
	if !noHeader && !jsonOutput && !silent {
		printHeader()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.IncludeFiles = append(cfg.IncludeFiles, include...)
	cfg.ExcludeFiles = append(cfg.ExcludeFiles, exclude...)

	rules, err := ignore.Load(ignorePath)
	if err != nil {
		return fmt.Errorf("failed to load ignore rules: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	report, err := check.Run(ctx, cfg, rules, check.Options{Logger: logger})
	if err != nil {
		return err
	}

	if cfg.LogFile != "" {
		if err := output.WriteLog(cfg.LogFile, report); err != nil && !silent {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	opts := output.Options{
		JSON:       jsonOutput,
		Silent:     silent,
		Color:      !jsonOutput && output.ColorSupported(os.Stdout),
		SkipUnused: skipUnused,
		LogFile:    cfg.LogFile,
	}
	if err := output.Format(os.Stdout, report, opts); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if !noFail && output.HasIssues(report, opts) {
		return errIssuesFound
	}

	return nil
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	cfg, err := config.Load(".")
	if errors.Is(err, config.ErrNotFound) {
		return nil, fmt.Errorf("%w (looked for %v)", err, config.FileNames)
	}
	return cfg, err
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	if _, err := config.WriteTemplate("."); err != nil {
		return err
	}
	fmt.Printf("Created %s in the current directory\n", config.TemplateFileName)
	return nil
}

func printHeader() {
	header := `    _               ___ _           _   
   /_\  _ __ _ __  / __| |_  ___ __| |__
  / _ \| '_ \ '_ \| (__| ' \/ -_) _| / /
 /_/ \_\ .__/ .__/ \___|_||_\___\__|_\_\
       |_|  |_|                         
`
	fmt.Print(header)
	fmt.Printf("Version: %s\n\n", Version)
}

// exitCode maps the result of a command to the process exit code, printing
// real errors to stderr
func exitCode(err error, stderr io.Writer) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errIssuesFound):
		return 1
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

func main() {
	os.Exit(exitCode(rootCmd.ExecuteContext(context.Background()), os.Stderr))
}
