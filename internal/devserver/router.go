package devserver

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/bft-labs/chatshell/internal/pages"
	"github.com/bft-labs/chatshell/internal/shell"
	"github.com/bft-labs/chatshell/pkg/log"
)

// newRouter registers, in order: proxy prefixes, health, assets, pages and
// the not-found shell.
func (s *Server) newRouter() http.Handler {
	r := mux.NewRouter()
	// Proxied paths are forwarded exactly as received.
	r.SkipClean(true)

	for _, route := range s.table.Routes() {
		r.MatcherFunc(pathPrefix(route.Prefix())).Handler(route)
	}

	r.HandleFunc("/healthz", handleHealthz).Methods(http.MethodGet, http.MethodHead)
	r.PathPrefix(assetPrefix).Handler(http.StripPrefix(assetPrefix, http.FileServerFS(s.assets))).
		Methods(http.MethodGet, http.MethodHead)

	for _, route := range pages.DefaultRoutes() {
		r.Handle(route.Path, s.pageHandler(s.pages.Outlet(route.Page))).
			Methods(http.MethodGet, http.MethodHead)
	}

	r.NotFoundHandler = s.notFoundHandler()

	var h http.Handler = r
	h = withRecovery(s.logger, h)
	h = withAccessLog(s.logger, h)
	h = withRequestID(h)
	return h
}

func pathPrefix(prefix string) mux.MatcherFunc {
	return func(r *http.Request, _ *mux.RouteMatch) bool {
		return strings.HasPrefix(r.URL.Path, prefix)
	}
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) pageHandler(outlet shell.Outlet) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, outlet)
	})
}

func (s *Server) notFoundHandler() http.Handler {
	outlet := s.pages.NotFound()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, outlet)
	})
}

// render writes the shell for the request path with outlet in the content
// region.
func (s *Server) render(w http.ResponseWriter, r *http.Request, outlet shell.Outlet) {
	var buf bytes.Buffer
	status, err := s.layout.Render(&buf, r.URL.Path, outlet)
	if err != nil {
		s.logger.Error("render shell failed",
			log.String("path", r.URL.Path),
			log.String("request_id", RequestID(r.Context())),
			log.Err(err),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		_, _ = buf.WriteTo(w)
	}
}
