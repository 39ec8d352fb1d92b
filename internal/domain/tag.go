package domain

import "strings"

// Tag is an entry of the Shaarli tag listing.
// "occurences" is the spelling of the Shaarli wire format.
type Tag struct {
	Name        string `json:"name"`
	Occurrences int    `json:"occurences"`
}

// TagKey is the identity of a tag name. Shaarli and LinkDing both treat
// tags as case-insensitive.
func TagKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SameTag reports whether a and b name the same tag.
func SameTag(a, b string) bool {
	return TagKey(a) == TagKey(b)
}

// DedupeTags keeps the first occurrence of every tag name, compared
// case-insensitively, preserving order.
func DedupeTags(tags []Tag) []Tag {
	seen := make(map[string]bool, len(tags))
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		key := TagKey(t.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}
