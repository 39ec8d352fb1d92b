package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/linkbridge/internal/domain"
	"github.com/MrSnakeDoc/linkbridge/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkbridge/internal/logger"
)

// SearchTags serves GET /api/v1/tags.
func SearchTags(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := domain.ParseTagFilters(r.URL.Query())

		tags, err := d.Dispatcher.SearchTags(r.Context(), f)
		if err != nil {
			writeError(d, w, r, err)
			return
		}
		if tags == nil {
			tags = []domain.Tag{}
		}

		d.Logger.Debug("search tags",
			logger.Int("offset", f.Offset),
			logger.Int("limit", f.Limit),
			logger.Bool("all", f.All),
			logger.Int("count", len(tags)))

		writeJSON(w, http.StatusOK, tags)
	}
}
