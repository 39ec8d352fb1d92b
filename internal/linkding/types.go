package linkding

// bookmarkRequest is the body of POST api/bookmarks/.
// LinkDing has no "private" flag, so none is sent.
type bookmarkRequest struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	TagNames    []string `json:"tag_names"`
}

// bookmarkResponse is the subset of a LinkDing bookmark we read back.
type bookmarkResponse struct {
	ID           int64    `json:"id"`
	URL          string   `json:"url"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	TagNames     []string `json:"tag_names"`
	DateAdded    string   `json:"date_added"`
	DateModified string   `json:"date_modified"`
}

// tagPage is one page of GET api/tags/.
type tagPage struct {
	Count    int        `json:"count"`
	Next     *string    `json:"next"`
	Previous *string    `json:"previous"`
	Results  []tagEntry `json:"results"`
}

type tagEntry struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	DateAdded string `json:"date_added"`
}
