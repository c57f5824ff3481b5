package models

import (
	"sort"
	"strings"
)

var tagQuoteEscaper = strings.NewReplacer(`'`, `\'`, `"`, `\"`)

// TagsToString serializes tags into a stable string for environment variables
// and run scripts: tags are sorted and joined with commas, quotes are escaped.
// Commas inside a single tag are left as-is, so "a,b" and {"a","b"} serialize
// identically. Only quotes are escaped: `$`, backticks and backslashes pass
// through and are interpreted when the run script exports the value inside
// double quotes.
func TagsToString(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	sorted := make([]string, len(tags))
	copy(sorted, tags)
	sort.Strings(sorted)
	for i, t := range sorted {
		sorted[i] = tagQuoteEscaper.Replace(t)
	}
	return strings.Join(sorted, ",")
}

// ContainsAllTags reports whether have is a superset of want.
func ContainsAllTags(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	set := make(map[string]struct{}, len(have))
	for _, t := range have {
		set[t] = struct{}{}
	}
	for _, t := range want {
		if _, ok := set[t]; !ok {
			return false
		}
	}
	return true
}
