package proxy

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bft-labs/chatshell/internal/domain"
)

type seenRequest struct {
	method, host, path, query, body, custom, forwardedFor string
}

func TestRoute_ForwardsUnchanged(t *testing.T) {
	seen := make(chan seenRequest, 1)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		seen <- seenRequest{
			method:       r.Method,
			host:         r.Host,
			path:         r.URL.Path,
			query:        r.URL.RawQuery,
			body:         string(body),
			custom:       r.Header.Get("X-Custom"),
			forwardedFor: r.Header.Get("X-Forwarded-For"),
		}
		w.Header().Set("X-Upstream", "yes")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"answer":"42"}`)
	}))
	defer upstream.Close()

	table, err := NewTable([]domain.ProxyRule{{Prefix: "/ask", Target: upstream.URL}})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "http://shell.local:5173/ask/followup?top=3", strings.NewReader(`{"question":"?"}`))
	req.Header.Set("X-Custom", "kept")
	rec := httptest.NewRecorder()

	route, ok := table.Match(req.URL.Path)
	if !ok {
		t.Fatal("Match() ok = false")
	}
	route.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if rec.Header().Get("X-Upstream") != "yes" {
		t.Error("upstream response header not relayed")
	}
	if rec.Body.String() != `{"answer":"42"}` {
		t.Errorf("body = %q", rec.Body.String())
	}

	got := <-seen
	want := seenRequest{
		method: http.MethodPost,
		host:   "shell.local:5173",
		path:   "/ask/followup",
		query:  "top=3",
		body:   `{"question":"?"}`,
		custom: "kept",
	}
	if got != want {
		t.Errorf("upstream saw %+v, want %+v", got, want)
	}
}

func TestRoute_PassesInboundForwardingHeaders(t *testing.T) {
	seen := make(chan string, 1)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Header.Get("X-Forwarded-For")
	}))
	defer upstream.Close()

	table, err := NewTable([]domain.ProxyRule{{Prefix: "/chat", Target: upstream.URL}})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/chat", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.1")
	route, _ := table.Match("/chat")
	route.ServeHTTP(httptest.NewRecorder(), req)

	if got := <-seen; got != "10.0.0.1" {
		t.Errorf("X-Forwarded-For = %q, want inbound value", got)
	}
}

func TestRoute_UnreachableUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	target := upstream.URL
	upstream.Close()

	table, err := NewTable([]domain.ProxyRule{{Prefix: "/ask", Target: target}})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	route, _ := table.Match("/ask")
	route.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}
