package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/linkbridge/internal/dispatch"
	"github.com/MrSnakeDoc/linkbridge/internal/domain"
	"github.com/MrSnakeDoc/linkbridge/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkbridge/internal/logger"
)

// cannedLink is the record answered to every update: updates are accepted
// and ignored.
var cannedLink = domain.Bookmark{
	ID:          345,
	URL:         "http://foo.bar",
	ShortURL:    "1H3Srg",
	Title:       "Link title",
	Description: "Hello, world!",
	Tags:        []string{"foo", "bar"},
	Private:     false,
	Created:     mustTimestamp("2015-05-05T12:30:00+03:00"),
	Updated:     mustTimestamp("2015-05-06T14:30:00+03:00"),
}

func mustTimestamp(s string) domain.Timestamp {
	ts, err := domain.ParseTimestamp(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// SearchLinks serves GET /api/v1/links.
func SearchLinks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := domain.ParseLinkFilters(r.URL.Query())

		d.Logger.Debug("search links",
			logger.Int("offset", f.Offset),
			logger.Int("limit", f.Limit),
			logger.Bool("all", f.All),
			logger.String("searchterm", f.SearchTerm),
			logger.Strings("searchtags", f.SearchTags),
			logger.String("visibility", f.Visibility))

		links, err := d.Dispatcher.SearchLinks(r.Context(), f)
		if err != nil {
			writeError(d, w, r, err)
			return
		}

		out := make([]domain.Bookmark, 0, len(links))
		for _, b := range links {
			out = append(out, b.WithDefaults())
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// AddLink serves POST /api/v1/links.
func AddLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in domain.LinkInput
		if _, err := decodeBody(r, &in); err != nil {
			writeError(d, w, r, err)
			return
		}
		in = in.Normalized()

		d.Logger.Info("add link",
			logger.String("url", in.URL),
			logger.Strings("tags", in.Tags),
			logger.Bool("private", in.Private),
			logger.String("dispatcher", dispatch.Kind(d.Dispatcher)))

		b, err := d.Dispatcher.AddLink(r.Context(), in)
		if err != nil {
			writeError(d, w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, b.WithDefaults())
	}
}

// UpdateLink serves PUT /api/v1/links/{id}. The body must be valid JSON;
// nothing is forwarded to the dispatcher.
func UpdateLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if _, err := decodeBody(r, &payload); err != nil {
			writeError(d, w, r, err)
			return
		}

		d.Logger.Info("update link ignored",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Any("payload", payload))

		writeJSON(w, http.StatusOK, cannedLink)
	}
}
