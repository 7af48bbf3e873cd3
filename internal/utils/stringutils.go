package utils

import "strings"

// SplitPatterns splits a semicolon- or comma-separated pattern list
// without breaking apart brace groups like "**/{a,b}.lcov", and trims
// surrounding whitespace from each part. Empty parts are dropped.
func SplitPatterns(s string) []string {
	var parts []string
	var current strings.Builder
	braceLevel := 0

	flush := func() {
		part := strings.TrimSpace(current.String())
		if part != "" {
			parts = append(parts, part)
		}
		current.Reset()
	}

	for _, r := range s {
		switch {
		case r == '{':
			braceLevel++
			current.WriteRune(r)
		case r == '}':
			if braceLevel > 0 {
				braceLevel--
			}
			current.WriteRune(r)
		case (r == ';' || r == ',') && braceLevel == 0:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return parts
}
