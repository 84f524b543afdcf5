package util

import "strings"

// SplitAndTrimString returns a new slice from a string separated by the given separator
// with surrounding whitespace trimmed and all empty entries removed.
func SplitAndTrimString(s, sep string) []string {
	if len(s) == 0 {
		return nil
	}

	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}

	return result
}
