package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config file names, probed in order
var FileNames = []string{"appcheck.config.json", "appcheck.config.yaml", "appcheck.config.yml"}

// Environment overrides
const (
	EnvTranslationDir = "APPCHECK_TRANSLATION_DIR"
	EnvAPIEndpoint    = "APPCHECK_API_ENDPOINT"
	EnvAPIToken       = "APPCHECK_API_TOKEN"
)

const (
	DefaultTranslationFunction = "t"
	DefaultLogFile             = "translation_check.log"
	DefaultAPITimeout          = 30 * time.Second
)

// ErrNotFound is returned when no config file exists in the directory
var ErrNotFound = errors.New("configuration not found, run \"appcheck init-config\" first")

// SourceKind selects where catalogs are loaded from
type SourceKind int

const (
	SourceNone SourceKind = iota
	SourceLocal
	SourceAPI
)

func (k SourceKind) String() string {
	switch k {
	case SourceLocal:
		return "Local Files"
	case SourceAPI:
		return "API"
	default:
		return "None"
	}
}

// Config represents the appcheck configuration file
type Config struct {
	TranslationDir      string            `yaml:"translationDir" json:"translationDir,omitempty"`
	APIEndpoint         string            `yaml:"apiEndpoint" json:"apiEndpoint,omitempty"`
	LanguageCodeFormat  string            `yaml:"languageCodeFormat" json:"languageCodeFormat,omitempty"`
	Languages           []string          `yaml:"languages" json:"languages"`
	ProjectDirs         []string          `yaml:"projectDirs" json:"projectDirs"`
	TranslationFunction string            `yaml:"translationFunction" json:"translationFunction,omitempty"`
	LanguageMapping     []LanguageMapping `yaml:"languageMapping" json:"languageMapping,omitempty"`

	MergeLayouts bool     `yaml:"mergeLayouts" json:"mergeLayouts,omitempty"` // Also merge **/{lang}.json and {lang}/**/*.json
	APITimeout   Duration `yaml:"apiTimeout" json:"apiTimeout,omitempty"`     // Per-request deadline for remote catalogs
	LogFile      string   `yaml:"logFile" json:"logFile,omitempty"`           // Diagnostic log, truncated at run start
	Exclude      []string `yaml:"exclude" json:"exclude,omitempty"`           // Extra directory names or paths skipped when scanning code
	IncludeFiles []string `yaml:"includeFiles" json:"includeFiles,omitempty"` // When set, only code files matching one of these globs are scanned
	ExcludeFiles []string `yaml:"excludeFiles" json:"excludeFiles,omitempty"` // Code files matching these globs are not scanned

	APIToken string `yaml:"-" json:"-"` // Only from the environment

	path string
}

// LanguageMapping declares alternate codes for a configured language
type LanguageMapping struct {
	Language string   `yaml:"language" json:"language"`
	Mappings []string `yaml:"mappings" json:"mappings"`
}

// Duration decodes "30s" style strings as well as plain seconds
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*d = 0
		return nil
	}
	if parsed, err := time.ParseDuration(s); err == nil {
		*d = Duration(parsed)
		return nil
	}
	var secs float64
	if err := node.Decode(&secs); err != nil {
		return fmt.Errorf("invalid duration %q", s)
	}
	*d = Duration(time.Duration(secs * float64(time.Second)))
	return nil
}

// Load finds and loads the config file in dir, then applies .env and
// environment overrides.
func Load(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			// .env is optional
			_ = godotenv.Load(filepath.Join(dir, ".env"))
			return LoadFile(path)
		}
	}
	return nil, ErrNotFound
}

// LoadFile loads a specific config file (JSON or YAML)
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.path = path
	cfg.applyEnv()
	return cfg, nil
}

// Parse decodes config data. JSON is accepted since it is valid YAML.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return nil, &InvalidError{Field: "config", Reason: strings.Join(typeErr.Errors, "; ")}
		}
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.TranslationFunction == "" {
		c.TranslationFunction = DefaultTranslationFunction
	}
	if c.LogFile == "" {
		c.LogFile = DefaultLogFile
	}
	if c.APITimeout <= 0 {
		c.APITimeout = Duration(DefaultAPITimeout)
	}
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvTranslationDir)); v != "" {
		c.TranslationDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPIEndpoint)); v != "" {
		c.APIEndpoint = v
	}
	c.APIToken = strings.TrimSpace(os.Getenv(EnvAPIToken))
}

// Path returns the file the config was loaded from, if any
func (c *Config) Path() string {
	return c.path
}

// Source reports which catalog source drives this run. The API endpoint wins
// when both are set.
func (c *Config) Source() SourceKind {
	switch {
	case c.APIEndpoint != "":
		return SourceAPI
	case c.TranslationDir != "":
		return SourceLocal
	default:
		return SourceNone
	}
}

// Timeout returns the remote fetch deadline
func (c *Config) Timeout() time.Duration {
	if c.APITimeout <= 0 {
		return DefaultAPITimeout
	}
	return time.Duration(c.APITimeout)
}

// MappingFor returns the alternate codes declared for language
func (c *Config) MappingFor(language string) []string {
	for _, m := range c.LanguageMapping {
		if m.Language == language {
			return m.Mappings
		}
	}
	return nil
}
