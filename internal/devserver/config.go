package devserver

import (
	"fmt"
	"time"

	"github.com/bft-labs/chatshell/internal/domain"
)

// Config holds the dev server settings.
type Config struct {
	// Listen is the TCP address to bind. Port 0 picks a free port.
	// Default: 127.0.0.1:5173
	Listen string

	// ReadHeaderTimeout bounds reading request headers.
	// Default: 5 seconds
	ReadHeaderTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown in Stop.
	// Default: 10 seconds
	ShutdownTimeout time.Duration

	// ProxyRules forward backend paths. nil means the default rules.
	ProxyRules []domain.ProxyRule

	// PagesDir loads pages from disk instead of the embedded set.
	PagesDir string
}

// SetDefaults fills zero fields.
func (c *Config) SetDefaults() {
	if c.Listen == "" {
		c.Listen = "127.0.0.1:5173"
	}
	if c.ReadHeaderTimeout <= 0 {
		c.ReadHeaderTimeout = 5 * time.Second
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	if c.ProxyRules == nil {
		c.ProxyRules = domain.DefaultProxyRules()
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("%w: listen address is required", domain.ErrInvalidConfig)
	}
	return domain.ValidateProxyRules(c.ProxyRules)
}
