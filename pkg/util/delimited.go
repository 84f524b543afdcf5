package util

import (
	"regexp"
	"strings"
)

// nestedValuePattern matches `key='value'` declarations whose value may contain commas.
var nestedValuePattern = regexp.MustCompile(`(\w+='.+?'),?`)

// ParseNestedCommaDelimited splits s on commas, except for commas inside
// single-quoted `key='value'` declarations. Unquoted tokens come first, quoted
// declarations are appended afterwards with their quotes removed.
//
// Trailing empty tokens are dropped. An empty input yields a single empty token.
func ParseNestedCommaDelimited(s string) []string {
	vars := splitDropTrailing(nestedValuePattern.ReplaceAllString(s, ""), ",")

	for _, match := range nestedValuePattern.FindAllStringSubmatch(s, -1) {
		vars = append(vars, strings.ReplaceAll(match[1], "'", ""))
	}

	return vars
}

func splitDropTrailing(s, sep string) []string {
	parts := strings.Split(s, sep)
	if s == "" {
		return parts
	}

	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	return parts
}
