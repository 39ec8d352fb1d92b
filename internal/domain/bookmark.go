package domain

import (
	"strings"
	"time"
)

const (
	// DefaultBookmarkID is reported when the backend did not assign an id.
	DefaultBookmarkID int64 = 1
	// DefaultShortURL is reported when the backend did not assign a short url.
	DefaultShortURL = "111111"
)

// DefaultTimestamp is the created/updated value used when a backend does not report one.
var DefaultTimestamp = Timestamp{Time: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)}

// Bookmark is a link in the Shaarli API shape.
//
// Every backend fills what it knows; the HTTP layer overlays the result on
// DefaultBookmark so clients always receive every field.
type Bookmark struct {
	// ─────────────────────────────
	// Identity (backend-assigned)
	// ─────────────────────────────

	ID       int64  `json:"id"`
	ShortURL string `json:"shorturl"`

	// ─────────────────────────────
	// Content
	// ─────────────────────────────

	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Private     bool     `json:"private"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	Created Timestamp `json:"created"`
	Updated Timestamp `json:"updated"`
}

// DefaultBookmark returns the record used to fill fields a dispatcher left empty.
func DefaultBookmark() Bookmark {
	return Bookmark{
		ID:       DefaultBookmarkID,
		ShortURL: DefaultShortURL,
		Tags:     []string{},
		Created:  DefaultTimestamp,
		Updated:  DefaultTimestamp,
	}
}

// WithDefaults overlays b on DefaultBookmark: every field b sets is kept,
// every unset field takes the default value.
func (b Bookmark) WithDefaults() Bookmark {
	out := DefaultBookmark()
	if b.ID != 0 {
		out.ID = b.ID
	}
	if b.ShortURL != "" {
		out.ShortURL = b.ShortURL
	}
	out.URL = b.URL
	out.Title = b.Title
	out.Description = b.Description
	if b.Tags != nil {
		out.Tags = b.Tags
	}
	out.Private = b.Private
	if !b.Created.IsZero() {
		out.Created = b.Created
	}
	if !b.Updated.IsZero() {
		out.Updated = b.Updated
	}
	return out
}

// LinkInput holds the fields a client may send when creating a link.
// Unknown fields are ignored by the decoder; absent ones stay zero.
type LinkInput struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Private     bool     `json:"private"`
}

// Normalized returns a copy with tags cleaned by NormalizeTags.
func (in LinkInput) Normalized() LinkInput {
	in.Tags = NormalizeTags(in.Tags)
	return in
}

// Bookmark echoes the input as a record without any backend-assigned field.
func (in LinkInput) Bookmark() Bookmark {
	return Bookmark{
		URL:         in.URL,
		Title:       in.Title,
		Description: in.Description,
		Tags:        in.Tags,
		Private:     in.Private,
	}
}

// NormalizeTags drops blank entries. A nil or empty list becomes an empty,
// non-nil list. Clients send null (python-shaarli-client) or [""] (Shaarlier)
// when the user entered no tag.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if strings.TrimSpace(t) == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}
