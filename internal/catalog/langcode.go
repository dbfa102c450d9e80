package catalog

import "strings"

// FormatEnUS is the language code format that expands bare codes to
// language_COUNTRY
const FormatEnUS = "en_US"

// FormatLanguageCode converts a configured language into the code sent to the
// remote endpoint. The first declared mapping replaces the language; with the
// en_US format a code without an underscore becomes code_CODE ("de" -> "de_DE").
func FormatLanguageCode(language, format string, mappings []string) string {
	code := language
	if len(mappings) > 0 && strings.TrimSpace(mappings[0]) != "" {
		code = strings.TrimSpace(mappings[0])
	}

	if format == FormatEnUS && !strings.Contains(code, "_") {
		return code + "_" + strings.ToUpper(code)
	}
	return code
}
