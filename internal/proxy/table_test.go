package proxy

import (
	"errors"
	"net/url"
	"testing"

	"github.com/bft-labs/chatshell/internal/domain"
)

func TestTable_DefaultRules(t *testing.T) {
	table, err := NewTable(domain.DefaultProxyRules())
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	tests := []struct {
		path    string
		wantOK  bool
		wantURL string
	}{
		{path: "/ask", wantOK: true, wantURL: "http://backend:8000/ask"},
		{path: "/ask/followup", wantOK: true, wantURL: "http://backend:8000/ask/followup"},
		{path: "/chat?stream=1", wantOK: true, wantURL: "http://backend:8000/chat?stream=1"},
		{path: "/chatty", wantOK: true, wantURL: "http://backend:8000/chatty"},
		{path: "/static/app.js", wantOK: false},
		{path: "/", wantOK: false},
		{path: "/qa", wantOK: false},
		{path: "/Ask", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			u, err := url.Parse(tt.path)
			if err != nil {
				t.Fatal(err)
			}
			got, ok := table.ForwardURL(u)
			if ok != tt.wantOK {
				t.Fatalf("ForwardURL(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if ok && got.String() != tt.wantURL {
				t.Errorf("ForwardURL(%q) = %q, want %q", tt.path, got, tt.wantURL)
			}
		})
	}
}

func TestTable_ForwardURLTargetPath(t *testing.T) {
	table, err := NewTable([]domain.ProxyRule{{Prefix: "/ask", Target: "http://api:9000/v1?k=1"}})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	u, _ := url.Parse("/ask/x?y=2")
	got, ok := table.ForwardURL(u)
	if !ok {
		t.Fatal("ForwardURL() ok = false")
	}
	if want := "http://api:9000/v1/ask/x?k=1&y=2"; got.String() != want {
		t.Errorf("ForwardURL() = %q, want %q", got, want)
	}
}

func TestTable_Match(t *testing.T) {
	table, err := NewTable(domain.DefaultProxyRules())
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	r, ok := table.Match("/chat/stream")
	if !ok || r.Prefix() != "/chat" {
		t.Fatalf("Match(/chat/stream) = %v, %v", r, ok)
	}
	if r.Rule().Target != domain.DefaultBackendOrigin {
		t.Errorf("Rule().Target = %q", r.Rule().Target)
	}
}

func TestTable_Rules(t *testing.T) {
	table, err := NewTable([]domain.ProxyRule{
		{Prefix: "/chat", Target: "http://b:1"},
		{Prefix: "/ask", Target: "http://a:1"},
	})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	rules := table.Rules()
	if len(rules) != 2 || rules[0].Prefix != "/ask" || rules[1].Prefix != "/chat" {
		t.Fatalf("Rules() = %v, want sorted by prefix", rules)
	}
	rules[0].Prefix = "/mutated"
	if table.Rules()[0].Prefix != "/ask" {
		t.Error("Rules() returned shared storage")
	}
	if table.Len() != 2 || len(table.Routes()) != 2 {
		t.Errorf("Len() = %d, Routes() = %d", table.Len(), len(table.Routes()))
	}
}

func TestNewTable_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		rules []domain.ProxyRule
		want  error
	}{
		{"no slash", []domain.ProxyRule{{Prefix: "ask", Target: "http://a"}}, domain.ErrInvalidProxyRule},
		{"bad scheme", []domain.ProxyRule{{Prefix: "/ask", Target: "ftp://a"}}, domain.ErrInvalidProxyRule},
		{"duplicate", []domain.ProxyRule{{Prefix: "/ask", Target: "http://a"}, {Prefix: "/ask", Target: "http://b"}}, domain.ErrDuplicatePrefix},
		{"overlap", []domain.ProxyRule{{Prefix: "/chat", Target: "http://a"}, {Prefix: "/chat/v2", Target: "http://b"}}, domain.ErrOverlappingPrefix},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTable(tt.rules); !errors.Is(err, tt.want) {
				t.Errorf("NewTable() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewTable_Empty(t *testing.T) {
	table, err := NewTable(nil)
	if err != nil {
		t.Fatalf("NewTable(nil) error = %v", err)
	}
	if _, ok := table.Match("/ask"); ok {
		t.Error("empty table matched /ask")
	}
}
