package handlers

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/linkbridge/internal/httpserver/deps"
)

type infoSettings struct {
	Title               string   `json:"title"`
	HeaderLink          string   `json:"header_link"`
	Timezone            string   `json:"timezone"`
	EnabledPlugins      []string `json:"enabled_plugins"`
	DefaultPrivateLinks bool     `json:"default_private_links"`
}

type infoResponse struct {
	GlobalCounter  int          `json:"global_counter"`
	PrivateCounter int          `json:"private_counter"`
	Settings       infoSettings `json:"settings"`
}

// Info serves GET /api/v1/info. Counters are always 0: links are never
// stored here.
func Info(d deps.Deps) http.HandlerFunc {
	plugins := d.Instance.EnabledPlugins
	if plugins == nil {
		plugins = []string{}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, infoResponse{
			Settings: infoSettings{
				Title:               d.Instance.Title,
				HeaderLink:          headerLink(r, d.BasePath, d.TrustProxy),
				Timezone:            d.Instance.Timezone,
				EnabledPlugins:      plugins,
				DefaultPrivateLinks: d.Instance.DefaultPrivateLinks,
			},
		})
	}
}

// headerLink rebuilds the public URL of the instance: scheme://host/basePath.
func headerLink(r *http.Request, basePath string, trustProxy bool) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if trustProxy {
		if proto := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); proto == "http" || proto == "https" {
			scheme = proto
		}
	}
	return scheme + "://" + r.Host + "/" + strings.Trim(basePath, "/")
}
