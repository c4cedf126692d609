// Package web serves the viewer's pages and the same-origin media proxy.
package web

import (
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tokview/tokview/internal/tiktok"
)

// Server dispatches viewer requests to the extraction core and renders the
// results through its embedded templates.
type Server struct {
	client  *tiktok.Client
	logger  *slog.Logger
	tmpl    *template.Template
	metrics *metrics
	router  *mux.Router
}

// NewServer builds a Server around the given client. The client's fallback
// hook is claimed for the fallback counter; enableMetrics controls whether
// /metrics is routed.
func NewServer(client *tiktok.Client, logger *slog.Logger, enableMetrics bool) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		client:  client,
		logger:  logger,
		tmpl:    tmpl,
		metrics: newMetrics(),
		router:  mux.NewRouter(),
	}
	client.WithFallbackHook(func(kind, _ string) {
		s.metrics.fallbacks.WithLabelValues(kind).Inc()
	})
	s.routes(enableMetrics)
	return s, nil
}

func (s *Server) routes(enableMetrics bool) {
	r := s.router
	r.HandleFunc("/", s.handleHome).Methods(http.MethodGet)
	r.HandleFunc("/@{handle}", s.handleUser).Methods(http.MethodGet)
	r.HandleFunc("/video/{id}", s.handleVideo).Methods(http.MethodGet)
	r.HandleFunc("/tag/{name}", s.handleTag).Methods(http.MethodGet)
	r.HandleFunc("/redirect", s.handleRedirect).Methods(http.MethodGet)
	r.HandleFunc("/proxy", s.handleProxy).Methods(http.MethodGet)
	r.PathPrefix("/static/").Handler(http.FileServer(http.FS(staticFS)))
	if enableMetrics {
		r.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	}
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.renderError(w, http.StatusNotFound, "Page not found")
	})
}

// Handler returns the root handler with logging and privacy headers applied.
func (s *Server) Handler() http.Handler {
	return s.withRequestLog(securityHeaders(s.router))
}

// securityHeaders locks the rendered pages down so nothing loads from, or
// leaks to, the upstream platform.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Security-Policy",
			"default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; "+
				"img-src 'self' data:; media-src 'self'; frame-ancestors 'none'; form-action 'self'")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"took", time.Since(start),
		)
	})
}
