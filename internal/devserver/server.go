package devserver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"sync"

	"github.com/bft-labs/chatshell/internal/domain"
	"github.com/bft-labs/chatshell/internal/pages"
	"github.com/bft-labs/chatshell/internal/proxy"
	"github.com/bft-labs/chatshell/internal/shell"
	"github.com/bft-labs/chatshell/pkg/lifecycle"
	"github.com/bft-labs/chatshell/pkg/log"
)

// Server is the development HTTP server.
// Use New() to create an instance, then Start() to begin serving.
type Server struct {
	config    Config
	logger    log.Logger
	lifecycle *lifecycle.Manager

	table   *proxy.Table
	pages   *pages.Store
	assets  fs.FS
	layout  *shell.Layout
	handler http.Handler
	plugins []Plugin

	mu       sync.Mutex
	srv      *http.Server
	listener net.Listener
	cancel   context.CancelFunc
	serveErr chan error
}

// New creates a Server in StateStopped.
func New(cfg Config, opts ...Option) (*Server, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	table, err := proxy.NewTable(cfg.ProxyRules, proxy.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	store := o.pages
	if store == nil {
		store, err = loadPages(cfg.PagesDir, logger)
		if err != nil {
			return nil, err
		}
	}

	assets := o.assets
	if assets == nil {
		assets = shell.Assets()
	}

	styles, scripts, err := assetURLs(assets)
	if err != nil {
		return nil, err
	}
	layout, err := shell.NewLayout(
		shell.WithStylesheets(styles...),
		shell.WithScripts(scripts...),
		shell.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:    cfg,
		logger:    logger,
		lifecycle: lifecycle.NewManager(logger, o.emitter),
		table:     table,
		pages:     store,
		assets:    assets,
		layout:    layout,
		plugins:   o.plugins,
	}
	s.handler = s.newRouter()
	return s, nil
}

func loadPages(dir string, logger log.Logger) (*pages.Store, error) {
	if dir == "" {
		return pages.NewStore(pages.DefaultContent(), pages.WithLogger(logger))
	}
	return pages.NewDirStore(dir, pages.WithLogger(logger))
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Pages returns the page store.
func (s *Server) Pages() *pages.Store {
	return s.pages
}

// Proxy returns the proxy table.
func (s *Server) Proxy() *proxy.Table {
	return s.table
}

// Start binds the listen address, initializes plugins and serves in the
// background. It returns once the server is accepting connections.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}
	if s.srv != nil {
		if err := s.stopCrashed(); err != nil {
			s.logger.Warn("previous run crashed", log.Err(err))
		}
	}
	if err := s.lifecycle.TransitionTo(lifecycle.StateStarting, "Start() called"); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", s.config.Listen)
	if err != nil {
		_ = s.lifecycle.TransitionTo(lifecycle.StateCrashed, "listen failed")
		return fmt.Errorf("listen %s: %w", s.config.Listen, err)
	}

	runCtx, cancel := context.WithCancel(ctx)

	pluginCfg := PluginConfig{
		PagesDir: s.config.PagesDir,
		Pages:    s.pages,
		Logger:   s.logger,
	}
	for i, p := range s.plugins {
		if err := p.Initialize(runCtx, pluginCfg); err != nil {
			s.logger.Error("plugin initialization failed",
				log.String("plugin", p.Name()),
				log.Err(err))
			s.shutdownPlugins(s.plugins[:i])
			cancel()
			_ = ln.Close()
			_ = s.lifecycle.TransitionTo(lifecycle.StateCrashed, "plugin init failed: "+p.Name())
			return err
		}
		s.logger.Info("plugin initialized", log.String("plugin", p.Name()))
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return runCtx },
	}
	s.srv = srv
	s.listener = ln
	s.cancel = cancel

	if err := s.lifecycle.TransitionTo(lifecycle.StateRunning, "listening"); err != nil {
		cancel()
		_ = ln.Close()
		s.release()
		return err
	}
	s.logger.Info("dev server listening",
		log.String("addr", "http://"+ln.Addr().String()),
		log.Int("proxy_rules", s.table.Len()))

	serveErr := make(chan error, 1)
	s.serveErr = serveErr
	s.lifecycle.Go(func() {
		err := srv.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("serve failed", log.Err(err))
			_ = s.lifecycle.TransitionTo(lifecycle.StateCrashed, err.Error())
			serveErr <- err
		}
	})

	return nil
}

// Stop shuts the server down gracefully within Config.ShutdownTimeout.
// In-flight requests are allowed to finish; after the deadline remaining
// connections are closed and the server ends in StateCrashed. Stopping a
// server whose serve loop crashed releases its plugins and returns the
// serve error.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lifecycle.State() == lifecycle.StateCrashed && s.srv != nil {
		return s.stopCrashed()
	}
	if !s.lifecycle.CanStop() {
		return domain.ErrNotRunning
	}
	if err := s.lifecycle.TransitionTo(lifecycle.StateStopping, "Stop() called"); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	err := s.srv.Shutdown(ctx)
	if err != nil {
		s.logger.Warn("graceful shutdown failed, closing connections", log.Err(err))
		_ = s.srv.Close()
	}
	if s.cancel != nil {
		s.cancel()
	}
	if waitErr := s.lifecycle.Wait(ctx); err == nil {
		err = waitErr
	}

	s.shutdownPlugins(s.plugins)
	s.release()

	if err != nil {
		_ = s.lifecycle.TransitionTo(lifecycle.StateCrashed, "shutdown timeout")
		return err
	}
	_ = s.lifecycle.TransitionTo(lifecycle.StateStopped, "graceful shutdown")
	return nil
}

// stopCrashed releases what a failed serve loop left behind. The server
// stays in StateCrashed and may be started again.
func (s *Server) stopCrashed() error {
	_ = s.srv.Close()
	s.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := s.lifecycle.Wait(ctx); err != nil {
		s.logger.Warn("serve loop did not exit", log.Err(err))
	}
	s.shutdownPlugins(s.plugins)

	var err error
	select {
	case serveErr := <-s.serveErr:
		err = fmt.Errorf("serve: %w", serveErr)
	default:
	}
	s.release()
	return err
}

// release drops the resources of the last run. Callers hold s.mu.
func (s *Server) release() {
	s.srv = nil
	s.cancel = nil
	s.serveErr = nil
}

// Run starts the server and stops it when ctx is done or the serve loop
// fails.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	serveErr := s.serveErr
	s.mu.Unlock()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
		return s.Stop()
	case err := <-serveErr:
		if stopErr := s.Stop(); stopErr != nil {
			s.logger.Warn("cleanup after serve failure", log.Err(stopErr))
		}
		return fmt.Errorf("serve: %w", err)
	}
}

func (s *Server) shutdownPlugins(plugins []Plugin) {
	ctx := context.Background()
	for i := len(plugins) - 1; i >= 0; i-- {
		p := plugins[i]
		if err := p.Shutdown(ctx); err != nil {
			s.logger.Error("plugin shutdown failed",
				log.String("plugin", p.Name()),
				log.Err(err))
		} else {
			s.logger.Info("plugin shutdown complete", log.String("plugin", p.Name()))
		}
	}
}

// Status returns the current lifecycle state.
func (s *Server) Status() lifecycle.State {
	return s.lifecycle.State()
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}
