package proxy

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/bft-labs/chatshell/internal/domain"
	"github.com/bft-labs/chatshell/pkg/log"
)

// forwardingHeaders are stripped by ReverseProxy in Rewrite mode. Inbound
// values are passed through untouched; none are added.
var forwardingHeaders = []string{"Forwarded", "X-Forwarded-For", "X-Forwarded-Host", "X-Forwarded-Proto"}

type options struct {
	logger    log.Logger
	transport http.RoundTripper
}

// Option configures a Table.
type Option func(*options)

// WithLogger sets the logger used for upstream failures.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTransport sets the transport used to reach upstreams.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.transport = rt
	}
}

// Route forwards requests for one prefix to its upstream.
type Route struct {
	rule   domain.ProxyRule
	target *url.URL
	proxy  *httputil.ReverseProxy
}

func newRoute(rule domain.ProxyRule, target *url.URL, o options) *Route {
	r := &Route{rule: rule, target: target}
	logger := o.logger
	r.proxy = &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.Out.Host = pr.In.Host
			for _, h := range forwardingHeaders {
				if v, ok := pr.In.Header[h]; ok {
					pr.Out.Header[h] = v
				}
			}
		},
		Transport: o.transport,
		ErrorHandler: func(w http.ResponseWriter, req *http.Request, err error) {
			logger.Warn("proxy upstream failed",
				log.String("prefix", rule.Prefix),
				log.String("target", rule.Target),
				log.String("method", req.Method),
				log.String("path", req.URL.Path),
				log.Err(err),
			)
			w.WriteHeader(http.StatusBadGateway)
		},
	}
	return r
}

// Rule returns the rule the route serves.
func (r *Route) Rule() domain.ProxyRule {
	return r.rule
}

// Prefix returns the matched path prefix.
func (r *Route) Prefix() string {
	return r.rule.Prefix
}

// ServeHTTP forwards the request upstream and relays the response.
func (r *Route) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.proxy.ServeHTTP(w, req)
}

func (r *Route) forwardURL(u *url.URL) *url.URL {
	out := *r.target
	if r.target.Path == "" {
		out.Path, out.RawPath = u.Path, u.RawPath
	} else {
		out.Path, out.RawPath = strings.TrimSuffix(r.target.Path, "/")+u.Path, ""
	}
	switch {
	case r.target.RawQuery == "":
		out.RawQuery = u.RawQuery
	case u.RawQuery != "":
		out.RawQuery = r.target.RawQuery + "&" + u.RawQuery
	}
	out.Fragment = ""
	return &out
}
