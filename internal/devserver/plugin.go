package devserver

import (
	"context"

	"github.com/bft-labs/chatshell/pkg/log"
)

// Plugin extends the dev server with optional behaviour.
// Plugins are initialized when the server starts and shut down, in reverse
// order, when it stops.
type Plugin interface {
	// Name returns a unique identifier for the plugin.
	Name() string

	// Initialize is called once the server is listening.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown is called during graceful shutdown.
	Shutdown(ctx context.Context) error
}

// Reloader re-reads page content.
type Reloader interface {
	Reload() error
}

// PluginConfig is the runtime information handed to plugins.
type PluginConfig struct {
	// PagesDir is the directory pages are loaded from. Empty when the
	// embedded pages are served.
	PagesDir string

	// Pages reloads the served page set.
	Pages Reloader

	Logger log.Logger
}
