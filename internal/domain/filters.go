package domain

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultLinkLimit is the page size Shaarli applies to link searches.
	DefaultLinkLimit = 20

	// limitAll is the literal Shaarli accepts for "no limit".
	limitAll = "all"
)

// Visibility values understood by Shaarli. Empty means unset.
const (
	VisibilityAll     = "all"
	VisibilityPrivate = "private"
	VisibilityPublic  = "public"
)

// LinkFilters are the optional query parameters of GET /api/v1/links.
type LinkFilters struct {
	Offset     int
	Limit      int
	All        bool // limit=all
	SearchTerm string
	SearchTags []string
	Visibility string
}

// TagFilters are the optional query parameters of GET /api/v1/tags.
type TagFilters struct {
	Offset     int
	Limit      int
	All        bool
	Visibility string
}

// ParseLinkFilters reads link filters from a query. Absent or malformed
// values fall back to defaults; a filter may repeat.
func ParseLinkFilters(q url.Values) LinkFilters {
	f := LinkFilters{
		Offset:     firstInt(q, "offset", 0),
		SearchTerm: strings.Join(nonBlank(q["searchterm"]), " "),
		Visibility: visibility(q),
	}
	f.Limit, f.All = parseLimit(q, DefaultLinkLimit, false)
	for _, v := range q["searchtags"] {
		f.SearchTags = append(f.SearchTags, strings.Fields(v)...)
	}
	return f
}

// ParseTagFilters reads tag filters from a query. Without a limit every tag
// is returned.
func ParseTagFilters(q url.Values) TagFilters {
	f := TagFilters{
		Offset:     firstInt(q, "offset", 0),
		Visibility: visibility(q),
	}
	f.Limit, f.All = parseLimit(q, 0, true)
	return f
}

// Window applies offset/limit to the full list.
func (f TagFilters) Window(tags []Tag) []Tag {
	return window(tags, f.Offset, f.Limit, f.All)
}

// Window applies offset/limit to the full list.
func (f LinkFilters) Window(links []Bookmark) []Bookmark {
	return window(links, f.Offset, f.Limit, f.All)
}

func window[T any](items []T, offset, limit int, all bool) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if !all && limit >= 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func parseLimit(q url.Values, def int, defAll bool) (int, bool) {
	v := strings.TrimSpace(q.Get("limit"))
	if strings.EqualFold(v, limitAll) {
		return 0, true
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 0 {
		return n, false
	}
	return def, defAll
}

func firstInt(q url.Values, key string, def int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(q.Get(key))); err == nil && n >= 0 {
		return n
	}
	return def
}

func visibility(q url.Values) string {
	switch v := strings.ToLower(strings.TrimSpace(q.Get("visibility"))); v {
	case VisibilityAll, VisibilityPrivate, VisibilityPublic:
		return v
	default:
		return ""
	}
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
