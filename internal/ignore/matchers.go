package ignore

import (
	"regexp"
	"strings"
)

// keyMatcher matches exact keys and "prefix*" wildcard entries
type keyMatcher []string

func (m keyMatcher) Matches(key, _ string) bool {
	for _, entry := range m {
		if key == entry {
			return true
		}
		if prefix, ok := strings.CutSuffix(entry, "*"); ok && strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

type prefixMatcher []string

func (m prefixMatcher) Matches(key, _ string) bool {
	for _, p := range m {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

type suffixMatcher []string

func (m suffixMatcher) Matches(key, _ string) bool {
	for _, s := range m {
		if strings.HasSuffix(key, s) {
			return true
		}
	}
	return false
}

// patternMatcher tests the value, not the key
type patternMatcher []*regexp.Regexp

func (m patternMatcher) Matches(_, value string) bool {
	for _, re := range m {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}

type digitMatcher struct{}

func (digitMatcher) Matches(key, _ string) bool {
	return strings.ContainsAny(key, "0123456789")
}
