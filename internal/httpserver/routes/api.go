package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkbridge/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkbridge/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/linkbridge/internal/httpserver/mw"
)

func init() { Register(registerAPI) }

// registerAPI mounts the emulated Shaarli REST API v1. GET routes match by
// prefix ("/api/v1/links?x" and "/api/v1/links/3" both list links).
func registerAPI(r chi.Router, d deps.Deps) {
	r.Group(func(r chi.Router) {
		r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))
		r.Use(mw.RateLimit(mw.RateLimitConfig{
			Burst:      d.RateLimitBurst,
			PerMinute:  d.RateLimitPerMin,
			MaxClients: 10000,
			TrustProxy: d.TrustProxy,
		}))

		r.Get("/api/v1/info*", handlers.Info(d))
		r.Get("/api/v1/links*", handlers.SearchLinks(d))
		r.Get("/api/v1/tags*", handlers.SearchTags(d))

		r.Post("/api/v1/links", handlers.AddLink(d))
		r.Put("/api/v1/links/*", handlers.UpdateLink(d))
		r.Post("/api/v1/links/*", handlers.UpdateLink(d))
	})
}
