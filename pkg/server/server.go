// Package server provides the HTTP API over source-location resolution.
//
// Routes:
//
//	POST /v1/source-location   resolve the entity in the request body
//	GET  /v1/integrations      list the configured integrations
//	GET  /health               liveness probe
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/sourceloc/pkg/observability"
	"github.com/matzehuels/sourceloc/pkg/scm"
	"github.com/matzehuels/sourceloc/pkg/source"
)

// DefaultRequestTimeout bounds the time spent on a single request.
const DefaultRequestTimeout = 10 * time.Second

// Option configures the API server.
type Option func(*serverConfig)

type serverConfig struct {
	logger      *log.Logger
	timeout     time.Duration
	resolveOpts []source.Option
	middlewares []func(http.Handler) http.Handler
}

// WithLogger sets the logger used for request logging.
func WithLogger(l *log.Logger) Option {
	return func(cfg *serverConfig) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithTimeout overrides [DefaultRequestTimeout].
func WithTimeout(d time.Duration) Option {
	return func(cfg *serverConfig) {
		if d > 0 {
			cfg.timeout = d
		}
	}
}

// WithResolverOptions passes options to the resolver serving requests.
func WithResolverOptions(opts ...source.Option) Option {
	return func(cfg *serverConfig) {
		cfg.resolveOpts = append(cfg.resolveOpts, opts...)
	}
}

// WithMiddlewares adds middleware after the built-in stack.
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(cfg *serverConfig) {
		cfg.middlewares = append(cfg.middlewares, mw...)
	}
}

// NewServer creates the router serving lookups against reg.
func NewServer(reg *scm.Integrations, opts ...Option) *chi.Mux {
	cfg := &serverConfig{
		logger:  log.Default(),
		timeout: DefaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware(cfg.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.timeout))
	for _, mw := range cfg.middlewares {
		r.Use(mw)
	}

	routes := newRoutes(reg, source.NewResolver(reg, cfg.resolveOpts...))
	r.Get("/health", routes.health)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/source-location", routes.resolveSourceLocation)
		r.Get("/integrations", routes.listIntegrations)
	})
	return r
}

// RequestID propagates the X-Request-Id header, generating a UUID when the
// client sent none. The id is readable with middleware.GetReqID.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(middleware.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(middleware.RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LoggingMiddleware logs every request at debug level and reports it to the
// registered HTTP hooks.
func LoggingMiddleware(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			hooks := observability.HTTP()
			hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			elapsed := time.Since(start)
			hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, elapsed)
			logger.Debug("http",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"duration", elapsed,
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
