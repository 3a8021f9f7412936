// Package strings cleans operator-supplied string lists.
package strings

import "strings"

// Clean trims every value and drops empties and repeats, keeping the first
// occurrence's position.
func Clean(values []string) []string {
	return cleanWith(values, strings.TrimSpace)
}

// CleanFold is Clean for case-insensitive values; the results are lower case.
func CleanFold(values []string) []string {
	return cleanWith(values, func(s string) string {
		return strings.ToLower(strings.TrimSpace(s))
	})
}

func cleanWith(values []string, norm func(string) string) []string {
	if values == nil {
		return nil
	}
	out := values[:0:0]
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		key := norm(v)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}
