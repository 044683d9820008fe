package domain

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// DefaultBackendOrigin is the upstream every default rule forwards to.
const DefaultBackendOrigin = "http://backend:8000"

// ProxyRule forwards requests whose path starts with Prefix to Target.
type ProxyRule struct {
	Prefix string
	Target string
}

// DefaultProxyRules returns the development forwarding table.
func DefaultProxyRules() []ProxyRule {
	return []ProxyRule{
		{Prefix: "/ask", Target: DefaultBackendOrigin},
		{Prefix: "/chat", Target: DefaultBackendOrigin},
	}
}

// SortProxyRules returns a copy of rules ordered by prefix.
func SortProxyRules(rules []ProxyRule) []ProxyRule {
	out := make([]ProxyRule, len(rules))
	copy(out, rules)
	sort.Slice(out, func(i, j int) bool { return out[i].Prefix < out[j].Prefix })
	return out
}

// ParseTarget parses and checks an upstream origin.
func ParseTarget(target string) (*url.URL, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("%w: target %q: %v", ErrInvalidProxyRule, target, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: target %q must use http or https", ErrInvalidProxyRule, target)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: target %q has no host", ErrInvalidProxyRule, target)
	}
	return u, nil
}

// ValidateProxyRules checks prefixes and targets.
// Prefixes must start with "/", be distinct, and never be a string prefix of
// one another so that at most one rule matches any path.
func ValidateProxyRules(rules []ProxyRule) error {
	for _, r := range rules {
		if r.Prefix == "" || !strings.HasPrefix(r.Prefix, "/") {
			return fmt.Errorf("%w: prefix %q must start with /", ErrInvalidProxyRule, r.Prefix)
		}
		if _, err := ParseTarget(r.Target); err != nil {
			return err
		}
	}

	sorted := SortProxyRules(rules)
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1].Prefix, sorted[i].Prefix
		if prev == cur {
			return fmt.Errorf("%w: %q", ErrDuplicatePrefix, cur)
		}
		// Sorted order puts any prefix directly before the strings it prefixes.
		if strings.HasPrefix(cur, prev) {
			return fmt.Errorf("%w: %q and %q", ErrOverlappingPrefix, prev, cur)
		}
	}
	return nil
}
