// Package router sets up all HTTP routes and middleware chains for the
// wedding theme API. It organizes routes into public and admin groups
// with appropriate middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"weddingplanner/internal/handlers"
	"weddingplanner/internal/metrics"
	"weddingplanner/internal/middleware"
)

// Options selects the optional parts of the route tree.
type Options struct {
	// AdminToken enables the admin routes when non-empty.
	AdminToken string
	// SuggestLimiter rate-limits POST /api/suggest when not nil.
	SuggestLimiter *middleware.RateLimiter
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. admin may be nil, which disables the admin
// routes like an empty AdminToken does.
func New(theme *handlers.Theme, admin *handlers.Admin, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if opts.SuggestLimiter != nil {
				r.Use(opts.SuggestLimiter.Middleware)
			}
			r.Post("/suggest", theme.Suggest)
		})
		r.Get("/wedding-types", theme.WeddingTypes)
		r.Get("/colours/{weddingType}", theme.Colours)
		r.Get("/engine/info", theme.EngineInfo)

		if admin == nil || opts.AdminToken == "" {
			return
		}

		// Admin area: token required, never cached.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdminToken(opts.AdminToken))
			r.Use(middleware.NoStore)

			r.Post("/engine/rebuild", admin.Rebuild)

			r.Route("/admin", func(r chi.Router) {
				r.Get("/cache-log", admin.CacheLog)

				// Global colour name mappings
				r.Get("/colour-mappings", admin.ColourMappingsList)
				r.Put("/colour-mappings/{colour}", admin.ColourMappingUpsert)
				r.Delete("/colour-mappings/{colour}", admin.ColourMappingDelete)

				// Wedding types and their rule tables
				r.Get("/wedding-types", admin.WeddingTypesList)
				r.Route("/wedding-types/{weddingType}", func(r chi.Router) {
					r.Put("/", admin.WeddingTypeUpsert)
					r.Delete("/", admin.WeddingTypeDelete)

					r.Get("/colours", admin.CulturalColoursList)
					r.Put("/colours/{colour}", admin.CulturalColourUpsert)
					r.Delete("/colours/{colour}", admin.CulturalColourDelete)

					r.Get("/restricted", admin.RestrictedColoursList)
					r.Put("/restricted/{colour}", admin.RestrictedColourAdd)
					r.Delete("/restricted/{colour}", admin.RestrictedColourDelete)

					r.Get("/rules", admin.ColourRulesList)
					r.Put("/rules/{brideColour}", admin.ColourRuleUpsert)
					r.Delete("/rules/{brideColour}", admin.ColourRuleDelete)

					r.Get("/food", admin.FoodLocationGet)
					r.Put("/food", admin.FoodLocationUpsert)
					r.Delete("/food", admin.FoodLocationDelete)
				})
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
