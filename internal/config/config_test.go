package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_JSON(t *testing.T) {
	tmpDir := t.TempDir()
	content := `{
  "translationDir": "./i18n",
  "languages": ["en", "no"],
  "projectDirs": ["./src"],
  "translationFunction": "t",
  "languageMapping": [{"language": "no", "mappings": ["nb_NO", "nn_NO"]}],
  "apiTimeout": "5s"
}`
	if err := os.WriteFile(filepath.Join(tmpDir, "appcheck.config.json"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.TranslationDir != "./i18n" {
		t.Errorf("TranslationDir = %q, want ./i18n", cfg.TranslationDir)
	}
	if len(cfg.Languages) != 2 {
		t.Errorf("Expected 2 languages, got %d", len(cfg.Languages))
	}
	if got := cfg.MappingFor("no"); len(got) != 2 || got[0] != "nb_NO" {
		t.Errorf("MappingFor(no) = %v", got)
	}
	if cfg.Timeout() != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout())
	}
	if cfg.Source() != SourceLocal {
		t.Errorf("Source = %v, want local", cfg.Source())
	}
	if cfg.LogFile != DefaultLogFile {
		t.Errorf("LogFile = %q, want default", cfg.LogFile)
	}
	if cfg.Path() == "" {
		t.Error("Path should be set")
	}
}

func TestLoad_YAML(t *testing.T) {
	tmpDir := t.TempDir()
	content := `apiEndpoint: https://example.com/translations/
languages: [en]
projectDirs:
  - src
apiTimeout: 10
`
	if err := os.WriteFile(filepath.Join(tmpDir, "appcheck.config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Source() != SourceAPI {
		t.Errorf("Source = %v, want API", cfg.Source())
	}
	if cfg.TranslationFunction != DefaultTranslationFunction {
		t.Errorf("TranslationFunction = %q, want default", cfg.TranslationFunction)
	}
	if cfg.LanguageCodeFormat != "" {
		t.Errorf("LanguageCodeFormat = %q, want codes sent as configured", cfg.LanguageCodeFormat)
	}
	if cfg.Timeout() != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Timeout())
	}
}

func TestParse_FileGlobs(t *testing.T) {
	cfg, err := Parse([]byte(`translationDir: i18n
languages: [en]
projectDirs: [src]
includeFiles: ["**/*.vue", "**/*.js"]
excludeFiles: ["*.spec.js"]
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(cfg.IncludeFiles) != 2 || cfg.IncludeFiles[0] != "**/*.vue" {
		t.Errorf("IncludeFiles = %v", cfg.IncludeFiles)
	}
	if len(cfg.ExcludeFiles) != 1 || cfg.ExcludeFiles[0] != "*.spec.js" {
		t.Errorf("ExcludeFiles = %v", cfg.ExcludeFiles)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(t.TempDir())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "appcheck.config.json"), []byte(`{"translationDir": "i18n", "languages": ["en"], "projectDirs": ["src"]}`), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	t.Setenv(EnvAPIEndpoint, "http://localhost:9000/t/")
	t.Setenv(EnvAPIToken, "secret")

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIEndpoint != "http://localhost:9000/t/" {
		t.Errorf("APIEndpoint = %q", cfg.APIEndpoint)
	}
	if cfg.APIToken != "secret" {
		t.Errorf("APIToken = %q", cfg.APIToken)
	}
	if cfg.Source() != SourceAPI {
		t.Errorf("API endpoint should take precedence over translationDir")
	}
}

func TestParse_ProjectDirsNotList(t *testing.T) {
	_, err := Parse([]byte(`{"translationDir": "i18n", "languages": ["en"], "projectDirs": {"a": 1}}`))
	var invalid *InvalidError
	if !errors.As(err, &invalid) {
		t.Fatalf("Expected InvalidError, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid",
			cfg:  Config{TranslationDir: "i18n", Languages: []string{"en"}, ProjectDirs: []string{"src"}, TranslationFunction: "t"},
		},
		{
			name:    "no project dirs",
			cfg:     Config{TranslationDir: "i18n", Languages: []string{"en"}, TranslationFunction: "t"},
			wantErr: "projectDirs",
		},
		{
			name:    "blank project dirs",
			cfg:     Config{TranslationDir: "i18n", Languages: []string{"en"}, ProjectDirs: []string{" "}, TranslationFunction: "t"},
			wantErr: "projectDirs",
		},
		{
			name:    "no source",
			cfg:     Config{Languages: []string{"en"}, ProjectDirs: []string{"src"}, TranslationFunction: "t"},
			wantErr: "translationDir/apiEndpoint",
		},
		{
			name:    "no languages",
			cfg:     Config{TranslationDir: "i18n", ProjectDirs: []string{"src"}, TranslationFunction: "t"},
			wantErr: "languages",
		},
		{
			name:    "bad include glob",
			cfg:     Config{TranslationDir: "i18n", Languages: []string{"en"}, ProjectDirs: []string{"src"}, TranslationFunction: "t", IncludeFiles: []string{"[a-"}},
			wantErr: "includeFiles",
		},
		{
			name:    "bad exclude glob",
			cfg:     Config{TranslationDir: "i18n", Languages: []string{"en"}, ProjectDirs: []string{"src"}, TranslationFunction: "t", ExcludeFiles: []string{"*.spec.js", "[b"}},
			wantErr: "excludeFiles",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			var invalid *InvalidError
			if !errors.As(err, &invalid) {
				t.Fatalf("Expected InvalidError, got %v", err)
			}
			if invalid.Field != tt.wantErr {
				t.Errorf("Field = %q, want %q", invalid.Field, tt.wantErr)
			}
		})
	}
}

func TestWriteTemplate(t *testing.T) {
	tmpDir := t.TempDir()

	path, err := WriteTemplate(tmpDir)
	if err != nil {
		t.Fatalf("WriteTemplate failed: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("template does not load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("template should validate: %v", err)
	}
	if cfg.Source() != SourceLocal || cfg.TranslationFunction != "t" {
		t.Errorf("unexpected template config: %+v", cfg)
	}

	if _, err := WriteTemplate(tmpDir); err == nil {
		t.Error("expected error when a config already exists")
	}
}
