package pagewatcher

import "github.com/bft-labs/chatshell/internal/devserver"

// WithPageWatcher returns a dev server Option that reloads pages on change.
//
// Usage:
//
//	srv, err := devserver.New(cfg,
//	    pagewatcher.WithPageWatcher(pagewatcher.Config{
//	        DebounceDelay: 100 * time.Millisecond,
//	    }),
//	)
func WithPageWatcher(cfg Config) devserver.Option {
	return devserver.WithPlugin(New(cfg))
}

// WithDefaultPageWatcher enables page watching with a 100ms debounce.
func WithDefaultPageWatcher() devserver.Option {
	return WithPageWatcher(DefaultConfig())
}
