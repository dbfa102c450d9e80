package ignore

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// FileName is the sidecar file read from the working directory
const FileName = ".appcheckignore"

// Section names understood by the parser
const (
	SectionKeys            = "keys"
	SectionPrefixes        = "prefixes"
	SectionSuffixes        = "suffixes"
	SectionPatterns        = "patterns"
	SectionKeysWithNumbers = "keysWithNumbers"
)

var listSections = map[string]bool{
	SectionKeys:     true,
	SectionPrefixes: true,
	SectionSuffixes: true,
	SectionPatterns: true,
}

// Matcher decides whether a single (key, value) pair is excluded from analysis
type Matcher interface {
	Matches(key, value string) bool
}

// PatternError is returned when a value pattern is not a valid regular expression
type PatternError struct {
	Pattern string
	Line    int
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid ignore pattern %q on line %d: %v", e.Pattern, e.Line, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// Rules is the parsed content of an ignore file
type Rules struct {
	Keys            []string
	Prefixes        []string
	Suffixes        []string
	Patterns        []string
	KeysWithNumbers bool

	matchers []Matcher
}

// Load reads rules from path. A missing file yields empty rules.
func Load(path string) (*Rules, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Rules{}, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rules, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}

// Parse reads the line-oriented ignore format.
//
// Each line is either "section: value", a section header "section:" whose
// following bare lines are values of that section, or a bare flag name.
// Blank lines and lines starting with # are skipped.
func Parse(r io.Reader) (*Rules, error) {
	rules := &Rules{}
	patternLines := make(map[int]int) // index in Patterns -> line number

	scanner := bufio.NewScanner(r)
	lineNum := 0
	current := ""

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		section, value, hasColon := strings.Cut(line, ":")
		section = strings.TrimSpace(section)
		value = strings.TrimSpace(value)

		if !hasColon || !isSectionName(section) {
			// Bare line: a flag, or a value inside an open list block
			if line == SectionKeysWithNumbers {
				rules.KeysWithNumbers = true
				current = ""
				continue
			}
			if listSections[current] {
				if current == SectionPatterns {
					patternLines[len(rules.Patterns)] = lineNum
				}
				rules.add(current, line)
			}
			continue
		}

		if value == "" {
			current = section
			if section == SectionKeysWithNumbers {
				rules.KeysWithNumbers = true
				current = ""
			}
			continue
		}

		current = ""
		if section == SectionPatterns {
			patternLines[len(rules.Patterns)] = lineNum
		}
		if section == SectionKeysWithNumbers {
			rules.KeysWithNumbers = isTrue(value)
			continue
		}
		rules.add(section, value)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ignore rules: %w", err)
	}

	if err := rules.compile(patternLines); err != nil {
		return nil, err
	}
	return rules, nil
}

func isSectionName(s string) bool {
	return listSections[s] || s == SectionKeysWithNumbers
}

func isTrue(s string) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "1", "on":
		return true
	}
	return false
}

func (r *Rules) add(section, value string) {
	switch section {
	case SectionKeys:
		r.Keys = append(r.Keys, value)
	case SectionPrefixes:
		r.Prefixes = append(r.Prefixes, value)
	case SectionSuffixes:
		r.Suffixes = append(r.Suffixes, value)
	case SectionPatterns:
		r.Patterns = append(r.Patterns, value)
	}
}

// Compile builds the matcher list from the exported fields. It is called by
// Parse; callers constructing Rules by hand must call it before use.
func (r *Rules) Compile() error {
	return r.compile(nil)
}

func (r *Rules) compile(patternLines map[int]int) error {
	r.matchers = r.matchers[:0]

	if len(r.Keys) > 0 {
		r.matchers = append(r.matchers, keyMatcher(r.Keys))
	}
	if len(r.Prefixes) > 0 {
		r.matchers = append(r.matchers, prefixMatcher(r.Prefixes))
	}
	if len(r.Suffixes) > 0 {
		r.matchers = append(r.matchers, suffixMatcher(r.Suffixes))
	}
	if len(r.Patterns) > 0 {
		pm := make(patternMatcher, 0, len(r.Patterns))
		for i, p := range r.Patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return &PatternError{Pattern: p, Line: patternLines[i], Err: err}
			}
			pm = append(pm, re)
		}
		r.matchers = append(r.matchers, pm)
	}
	if r.KeysWithNumbers {
		r.matchers = append(r.matchers, digitMatcher{})
	}
	return nil
}

// Empty reports whether no rule is configured
func (r *Rules) Empty() bool {
	return r == nil || len(r.matchers) == 0
}

// ShouldIgnore reports whether any rule matches the pair
func (r *Rules) ShouldIgnore(key, value string) bool {
	if r == nil {
		return false
	}
	for _, m := range r.matchers {
		if m.Matches(key, value) {
			return true
		}
	}
	return false
}

// Matchers returns the compiled predicates in evaluation order
func (r *Rules) Matchers() []Matcher {
	if r == nil {
		return nil
	}
	return r.matchers
}
