package proxy

import (
	"net/url"
	"strings"

	"github.com/bft-labs/chatshell/internal/domain"
	"github.com/bft-labs/chatshell/pkg/log"
)

// Table holds one route per proxy rule, ordered by prefix.
type Table struct {
	routes []*Route
}

// NewTable validates rules and builds a forwarding route for each.
func NewTable(rules []domain.ProxyRule, opts ...Option) (*Table, error) {
	if err := domain.ValidateProxyRules(rules); err != nil {
		return nil, err
	}

	o := options{logger: log.NewNoopLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	t := &Table{}
	for _, rule := range domain.SortProxyRules(rules) {
		target, err := domain.ParseTarget(rule.Target)
		if err != nil {
			return nil, err
		}
		t.routes = append(t.routes, newRoute(rule, target, o))
	}
	return t, nil
}

// Match returns the route whose prefix starts path.
func (t *Table) Match(path string) (*Route, bool) {
	for _, r := range t.routes {
		if strings.HasPrefix(path, r.rule.Prefix) {
			return r, true
		}
	}
	return nil, false
}

// ForwardURL returns the upstream URL for u: the target origin with u's
// path and query unchanged.
func (t *Table) ForwardURL(u *url.URL) (*url.URL, bool) {
	r, ok := t.Match(u.Path)
	if !ok {
		return nil, false
	}
	return r.forwardURL(u), true
}

// Rules returns a copy of the rules, ordered by prefix.
func (t *Table) Rules() []domain.ProxyRule {
	out := make([]domain.ProxyRule, len(t.routes))
	for i, r := range t.routes {
		out[i] = r.rule
	}
	return out
}

// Routes returns the routes, ordered by prefix.
func (t *Table) Routes() []*Route {
	out := make([]*Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Len returns the number of rules.
func (t *Table) Len() int {
	return len(t.routes)
}
