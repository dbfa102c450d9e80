package catalog

import "fmt"

// SourceError means a language's catalog could not be found or reached
type SourceError struct {
	Language string
	Source   string // Directory or URL that was tried
	Err      error
}

func (e *SourceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("no translation source found for %s", e.Language)
	}
	return fmt.Sprintf("translation source for %s unavailable (%s): %v", e.Language, e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// MalformedError means catalog content was found but has the wrong shape
type MalformedError struct {
	Language string
	Source   string // File path or URL
	Err      error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed translations for %s in %s: %v", e.Language, e.Source, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}
