package devserver

import (
	"io/fs"

	"github.com/bft-labs/chatshell/internal/pages"
	"github.com/bft-labs/chatshell/pkg/lifecycle"
	"github.com/bft-labs/chatshell/pkg/log"
)

// Option configures optional behavior of a Server.
type Option func(*options)

type options struct {
	logger  log.Logger
	pages   *pages.Store
	assets  fs.FS
	emitter lifecycle.EventEmitter
	plugins []Plugin
}

// WithLogger sets the logger. Default is a no-op logger.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPages sets the page store. Default loads Config.PagesDir, or the
// embedded pages when it is empty.
func WithPages(store *pages.Store) Option {
	return func(o *options) {
		o.pages = store
	}
}

// WithAssets sets the files served under /assets/. Default is the shell's
// embedded stylesheet and script.
func WithAssets(assets fs.FS) Option {
	return func(o *options) {
		o.assets = assets
	}
}

// WithEventHandler receives lifecycle state changes.
func WithEventHandler(emitter lifecycle.EventEmitter) Option {
	return func(o *options) {
		o.emitter = emitter
	}
}

// WithPlugin registers a plugin. Plugins are initialized in registration
// order and shut down in reverse.
func WithPlugin(p Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, p)
	}
}
