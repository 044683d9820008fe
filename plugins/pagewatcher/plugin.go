// Package pagewatcher reloads markdown pages when they change on disk.
package pagewatcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/chatshell/internal/devserver"
	"github.com/bft-labs/chatshell/pkg/log"
)

// Plugin watches the pages directory and reloads the page store after a
// burst of changes has settled.
type Plugin struct {
	mu sync.Mutex

	debounceDelay time.Duration

	pagesDir string
	pages    devserver.Reloader
	logger   log.Logger
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	debounce *time.Timer
}

// Config holds configuration options for the page watcher.
type Config struct {
	// DebounceDelay is the quiet period after the last change before the
	// pages are reloaded.
	// Default: 100 milliseconds
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with a 100ms debounce.
func DefaultConfig() Config {
	return Config{DebounceDelay: 100 * time.Millisecond}
}

// New creates a page watcher.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	return &Plugin{
		debounceDelay: cfg.DebounceDelay,
		logger:        log.NewNoopLogger(),
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "pagewatcher"
}

// Initialize starts watching cfg.PagesDir. Without a pages directory the
// plugin stays idle.
func (p *Plugin) Initialize(ctx context.Context, cfg devserver.PluginConfig) error {
	p.mu.Lock()
	p.pagesDir = cfg.PagesDir
	p.pages = cfg.Pages
	if cfg.Logger != nil {
		p.logger = cfg.Logger
	}
	dir, pages, logger := p.pagesDir, p.pages, p.logger
	p.mu.Unlock()

	if dir == "" || pages == nil {
		logger.Warn("page watcher disabled: no pages directory configured")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	p.cancel = cancel
	p.mu.Unlock()

	logger.Info("page watcher started", log.String("dir", dir))

	p.wg.Add(1)
	go p.watchLoop(watchCtx, watcher, pages, logger)

	return nil
}

// Shutdown stops the watcher and any pending reload.
func (p *Plugin) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	cancel := p.cancel
	p.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	p.wg.Wait()

	p.mu.Lock()
	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.mu.Unlock()
	return nil
}

func (p *Plugin) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, pages devserver.Reloader, logger log.Logger) {
	defer p.wg.Done()
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			logger.Debug("page changed", log.String("file", filepath.Base(event.Name)), log.String("op", event.Op.String()))
			p.debounceReload(ctx, pages)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Error("page watcher error", log.Err(err))
		}
	}
}

func relevant(event fsnotify.Event) bool {
	if filepath.Ext(event.Name) != ".md" {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}

// debounceReload schedules pages.Reload after the debounce delay, replacing
// any pending reload. pages is the store of the run that saw the change.
func (p *Plugin) debounceReload(ctx context.Context, pages devserver.Reloader) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}

	p.debounce = time.AfterFunc(p.debounceDelay, func() {
		if ctx.Err() != nil {
			return
		}
		// Reload logs its own failures and keeps the previous pages.
		_ = pages.Reload()
	})
}

var _ devserver.Plugin = (*Plugin)(nil)
