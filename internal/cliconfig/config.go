package cliconfig

import (
	"fmt"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/chatshell/internal/domain"
)

// Config holds CLI configuration for chatshell.
type Config struct {
	LogLevel  string
	PagesDir  string
	AssetsDir string

	// Dev server.
	Listen            string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	Watch             bool
	Proxy             map[string]string

	// proxyErr holds a CHATSHELL_PROXY parse error until ValidateProxy.
	proxyErr error

	// Production build.
	OutDir      string
	EmptyOutDir bool
	SourceMap   bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	proxy := make(map[string]string)
	for _, r := range domain.DefaultProxyRules() {
		proxy[r.Prefix] = r.Target
	}
	return Config{
		LogLevel:          "info",
		Listen:            "127.0.0.1:5173",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		Watch:             true,
		Proxy:             proxy,
		OutDir:            "dist",
		EmptyOutDir:       true,
		SourceMap:         true,
	}
}

// ProxyRules returns the proxy map as rules ordered by prefix.
func (c Config) ProxyRules() []domain.ProxyRule {
	prefixes := make([]string, 0, len(c.Proxy))
	for p := range c.Proxy {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	rules := make([]domain.ProxyRule, len(prefixes))
	for i, p := range prefixes {
		rules[i] = domain.ProxyRule{Prefix: p, Target: c.Proxy[p]}
	}
	return rules
}

// Validate checks the settings shared by every command. The proxy table is
// checked separately by ValidateProxy since build never reads it.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil || c.LogLevel == "" {
		return fmt.Errorf("%w: unknown log level %q", domain.ErrInvalidConfig, c.LogLevel)
	}
	if c.Listen == "" {
		return fmt.Errorf("%w: listen address is required", domain.ErrInvalidConfig)
	}
	if _, _, err := net.SplitHostPort(c.Listen); err != nil {
		return fmt.Errorf("%w: listen %q: %v", domain.ErrInvalidConfig, c.Listen, err)
	}
	if c.ReadHeaderTimeout <= 0 {
		return fmt.Errorf("%w: read header timeout must be positive", domain.ErrInvalidConfig)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown timeout must be positive", domain.ErrInvalidConfig)
	}
	if strings.TrimSpace(c.OutDir) == "" {
		return fmt.Errorf("%w: out-dir is required", domain.ErrInvalidConfig)
	}
	return nil
}

// ValidateProxy checks the dev proxy table.
func (c *Config) ValidateProxy() error {
	if c.proxyErr != nil {
		return c.proxyErr
	}
	return domain.ValidateProxyRules(c.ProxyRules())
}

// ParseProxyList parses "/ask=http://x,/chat=http://y" into a prefix map.
func ParseProxyList(s string) (map[string]string, error) {
	out := make(map[string]string)
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		prefix, target, ok := strings.Cut(item, "=")
		if !ok || prefix == "" || target == "" {
			return nil, fmt.Errorf("%w: proxy entry %q must be PREFIX=URL", domain.ErrInvalidProxyRule, item)
		}
		out[strings.TrimSpace(prefix)] = strings.TrimSpace(target)
	}
	return out, nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}

// setStringMap replaces dst with a copy of value if not empty and flag not
// changed. Maps are replaced, never merged.
func (s *configSetter) setStringMap(flag string, value map[string]string, dst *map[string]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	m := make(map[string]string, len(value))
	for k, v := range value {
		m[k] = v
	}
	*dst = m
}
