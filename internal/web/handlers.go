package web

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/tokview/tokview/internal/tiktok"
)

// handleHome renders the search page, or classifies ?q= input and redirects
// to the canonical route.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q != "" {
		if route, ok := tiktok.Classify(q); ok {
			http.Redirect(w, r, routePath(route), http.StatusFound)
			return
		}
	}
	s.render(w, http.StatusOK, "home.html", map[string]any{"Query": q})
}

// routePath maps a canonical route to the viewer's own path for it.
func routePath(route tiktok.Route) string {
	switch route.Kind {
	case tiktok.RouteVideo:
		return "/video/" + url.PathEscape(route.Key)
	case tiktok.RouteTag:
		return "/tag/" + url.PathEscape(route.Key)
	case tiktok.RouteShortLink:
		return "/redirect?url=" + url.QueryEscape(route.Key)
	default:
		return "/@" + url.PathEscape(route.Key)
	}
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	handle := strings.TrimPrefix(mux.Vars(r)["handle"], "@")
	defer s.observe("user", time.Now())

	user, err := s.client.FetchUser(r.Context(), handle)
	if err != nil {
		s.upstreamError(w, "user", err)
		return
	}
	s.metrics.pages.WithLabelValues("user").Inc()
	s.render(w, http.StatusOK, "user.html", map[string]any{"User": user})
}

func (s *Server) handleVideo(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	defer s.observe("video", time.Now())

	video, err := s.client.FetchVideo(r.Context(), id)
	if err != nil {
		s.upstreamError(w, "video", err)
		return
	}
	s.metrics.pages.WithLabelValues("video").Inc()
	s.render(w, http.StatusOK, "video.html", map[string]any{"Video": video})
}

func (s *Server) handleTag(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(mux.Vars(r)["name"], "#")
	defer s.observe("tag", time.Now())

	tag, err := s.client.FetchTag(r.Context(), name)
	if err != nil {
		s.upstreamError(w, "tag", err)
		return
	}
	s.metrics.pages.WithLabelValues("tag").Inc()
	s.render(w, http.StatusOK, "tag.html", map[string]any{"Tag": tag})
}

// handleRedirect resolves an opaque short link through the upstream redirect
// chain, then bounces the browser to the canonical internal path.
func (s *Server) handleRedirect(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("url")
	if raw == "" || !strings.Contains(raw, "tiktok.com") {
		s.renderError(w, http.StatusBadRequest, "Invalid URL format")
		return
	}

	route, err := s.client.ResolveShortLink(r.Context(), raw)
	if err != nil {
		s.upstreamError(w, "redirect", err)
		return
	}
	http.Redirect(w, r, routePath(route), http.StatusFound)
}

// handleProxy streams an allow-listed CDN asset to the client so the page's
// media loads same-origin.
func (s *Server) handleProxy(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("url")
	if raw == "" {
		s.renderError(w, http.StatusBadRequest, "Invalid URL format")
		return
	}
	// Some callers double-encode the target; a second decode is harmless for
	// the single-encoded case produced by our own templates.
	if dec, err := url.QueryUnescape(raw); err == nil {
		raw = dec
	}

	body, contentType, err := s.client.OpenMedia(r.Context(), raw)
	if err != nil {
		if errors.Is(err, tiktok.ErrMediaNotAllowed) {
			s.metrics.proxyDenied.Inc()
			s.renderError(w, http.StatusBadRequest, "Invalid URL format")
			return
		}
		s.upstreamError(w, "media", err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := io.Copy(w, body); err != nil {
		// Client gone mid-stream; nothing useful left to send.
		s.logger.Debug("media stream aborted", "error", err)
	}
}

// upstreamError maps a fetch failure to the user-visible error page. The
// page carries a generic message; the detail stays in the log.
func (s *Server) upstreamError(w http.ResponseWriter, kind string, err error) {
	s.metrics.upstreamErrors.WithLabelValues(kind).Inc()
	s.logger.Warn("upstream fetch failed", "kind", kind, "error", err)
	s.renderError(w, statusForError(err), messageForError(err))
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, tiktok.ErrMediaNotAllowed):
		return http.StatusBadRequest
	case errors.Is(err, tiktok.ErrNotFound), errors.Is(err, tiktok.ErrBadRedirect):
		return http.StatusNotFound
	case errors.Is(err, tiktok.ErrRateLimited), errors.Is(err, tiktok.ErrFetchFailed):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func messageForError(err error) string {
	switch {
	case errors.Is(err, tiktok.ErrNotFound), errors.Is(err, tiktok.ErrBadRedirect):
		return "TikTok content not found"
	case errors.Is(err, tiktok.ErrRateLimited), errors.Is(err, tiktok.ErrFetchFailed):
		return "Failed to fetch from TikTok"
	case errors.Is(err, tiktok.ErrMediaNotAllowed):
		return "Invalid URL format"
	}
	return "Internal server error"
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("render failed", "template", name, "error", err)
	}
}

func (s *Server) renderError(w http.ResponseWriter, status int, message string) {
	s.render(w, status, "error.html", map[string]any{
		"Status":  status,
		"Message": message,
	})
}

func (s *Server) observe(kind string, start time.Time) {
	s.metrics.duration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}
