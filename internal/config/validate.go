package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// InvalidError reports a configuration problem that aborts the whole run
type InvalidError struct {
	Field  string
	Reason string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

// Validate checks the fields every run depends on
func (c *Config) Validate() error {
	if c == nil {
		return &InvalidError{Field: "config", Reason: "is missing"}
	}
	if len(nonEmpty(c.ProjectDirs)) == 0 {
		return &InvalidError{Field: "projectDirs", Reason: "should be a non-empty list"}
	}
	if c.Source() == SourceNone {
		return &InvalidError{Field: "translationDir/apiEndpoint", Reason: "must name a catalog source"}
	}
	if len(nonEmpty(c.Languages)) == 0 {
		return &InvalidError{Field: "languages", Reason: "should list at least one language"}
	}
	if strings.TrimSpace(c.TranslationFunction) == "" {
		return &InvalidError{Field: "translationFunction", Reason: "must not be empty"}
	}
	for field, globs := range map[string][]string{"includeFiles": c.IncludeFiles, "excludeFiles": c.ExcludeFiles} {
		for _, g := range globs {
			if !doublestar.ValidatePattern(g) {
				return &InvalidError{Field: field, Reason: fmt.Sprintf("has an invalid glob %q", g)}
			}
		}
	}
	return nil
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
