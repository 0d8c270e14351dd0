package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/VoidMesh/worldgen/internal/metrics"
)

// RouterOptions holds the optional pieces of the router.
type RouterOptions struct {
	Middleware  MiddlewareOptions
	Metrics     *metrics.Metrics
	RenderLimit int
}

func SetupRoutes(handler *Handler, presetHandlers *PresetHandlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}

	// Setup middleware
	for _, middleware := range SetupMiddleware(opts.Middleware) {
		r.Use(middleware)
	}

	// JSON content type
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// Health check endpoint
	r.Get("/health", handler.HealthCheck)

	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/biomes", handler.ListBiomes)

		r.Get("/preview", handler.GetPreview)
		r.Put("/preview", handler.SubmitPreview)
		r.Get("/preview.png", handler.GetPreviewPNG)

		// Synchronous renders are CPU bound
		r.Group(func(r chi.Router) {
			if opts.RenderLimit > 0 {
				r.Use(RenderLimitMiddleware(opts.RenderLimit))
			}
			r.Get("/terrain.png", handler.RenderTerrain)

			if presetHandlers != nil {
				presetHandlers.RegisterRoutes(r)
			}
		})
	})

	return r
}
