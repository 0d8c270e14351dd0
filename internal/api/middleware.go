package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// MiddlewareOptions tune SetupMiddleware.
type MiddlewareOptions struct {
	AllowedOrigins []string
	Timeout        time.Duration
}

func SetupMiddleware(opts MiddlewareOptions) []func(http.Handler) http.Handler {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return []func(http.Handler) http.Handler{
		// Request ID for tracing
		middleware.RequestID,

		// Logging middleware
		middleware.Logger,

		// Recovery middleware
		middleware.Recoverer,

		// CORS middleware for public API
		cors.Handler(cors.Options{
			AllowedOrigins:   origins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "If-None-Match", "X-Request-ID"},
			ExposedHeaders:   []string{"ETag", "X-Generation-Duration"},
			AllowCredentials: false,
			MaxAge:           300,
		}),

		// Content type middleware; image handlers override it
		middleware.SetHeader("Content-Type", "application/json"),

		// Timeout middleware
		middleware.Timeout(timeout),
	}
}

// RenderLimitMiddleware bounds concurrent synchronous renders.
func RenderLimitMiddleware(limit int) func(http.Handler) http.Handler {
	return middleware.ThrottleBacklog(limit, limit*4, 30*time.Second)
}
