package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// TemplateFileName is the file written by init-config
const TemplateFileName = "appcheck.config.yaml"

// Template is the commented default configuration
const Template = `# appcheck.config.yaml
# Configuration file for appcheck

# Directory holding {language}.json catalogs (also {language}/translation.json,
# locales/{language}.json and locales/{language}/translation.json)
translationDir: ./src/i18n

# Fetch catalogs from an API instead; the language code is appended to the URL.
# Takes precedence over translationDir. APPCHECK_API_TOKEN is sent as a bearer token.
# apiEndpoint: https://example.com/translations/
# Send en_US style codes (de -> de_DE); codes are sent as configured otherwise
# languageCodeFormat: en_US
# apiTimeout: 30s

# Languages to check
languages:
  - en

# Alternate codes sent to the API for a language
# languageMapping:
#   - language: nb
#     mappings: [nb_NO]

# Directories searched for translation calls and literal UI text
projectDirs:
  - ./src

# Name of the translation function, as in t("nav.home")
translationFunction: t

# Also merge **/{language}.json and {language}/**/*.json under translationDir
# mergeLayouts: false

# Extra directories skipped when scanning code (names or relative paths)
exclude:
  # - stories
  # - src/generated

# Code file globs, matched against the file name or its path under a project
# directory. includeFiles takes precedence over excludeFiles.
# includeFiles: ["**/*.vue"]
# excludeFiles: ["*.spec.js", "**/__tests__/**"]

logFile: translation_check.log
`

// WriteTemplate writes Template into dir. It refuses to overwrite an existing
// configuration file of any supported name.
func WriteTemplate(dir string) (string, error) {
	for _, name := range FileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return "", fmt.Errorf("%s already exists in %s", name, dir)
		}
	}

	path := filepath.Join(dir, TemplateFileName)
	if err := os.WriteFile(path, []byte(Template), 0644); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", TemplateFileName, err)
	}
	return path, nil
}
