package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bft-labs/chatshell/internal/cliconfig"
	"github.com/bft-labs/chatshell/internal/devserver"
	"github.com/bft-labs/chatshell/pkg/log"
	"github.com/bft-labs/chatshell/plugins/pagewatcher"
)

func (a *app) newDevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Serve the shell and forward backend paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}
			if err := a.cfg.ValidateProxy(); err != nil {
				return err
			}
			zl := cliconfig.Logger(a.stderr, a.cfg.LogLevel)
			zl.Info().Interface("config", a.cfg).Msg("configuration")
			logger := log.NewZerologAdapterWithLogger(zl)

			opts := []devserver.Option{devserver.WithLogger(logger)}
			if a.cfg.AssetsDir != "" {
				opts = append(opts, devserver.WithAssets(os.DirFS(a.cfg.AssetsDir)))
			}
			if a.cfg.Watch {
				opts = append(opts, pagewatcher.WithDefaultPageWatcher())
			}

			srv, err := devserver.New(devserver.Config{
				Listen:            a.cfg.Listen,
				ReadHeaderTimeout: a.cfg.ReadHeaderTimeout,
				ShutdownTimeout:   a.cfg.ShutdownTimeout,
				ProxyRules:        a.cfg.ProxyRules(),
				PagesDir:          a.cfg.PagesDir,
			}, opts...)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	f := cmd.Flags()
	f.StringVar(&a.cfg.Listen, "listen", a.cfg.Listen, "HTTP listen address")
	f.StringVar(&a.cfg.PagesDir, "pages-dir", a.cfg.PagesDir, "directory of markdown pages (default: embedded pages)")
	f.StringVar(&a.cfg.AssetsDir, "assets-dir", a.cfg.AssetsDir, "directory of static assets (default: embedded assets)")
	f.StringToStringVar(&a.cfg.Proxy, "proxy", a.cfg.Proxy, "forward PREFIX=URL; replaces the default table")
	f.BoolVar(&a.cfg.Watch, "watch", a.cfg.Watch, "reload pages when files in --pages-dir change")
	f.DurationVar(&a.cfg.ShutdownTimeout, "shutdown-timeout", a.cfg.ShutdownTimeout, "graceful shutdown deadline")
	f.DurationVar(&a.cfg.ReadHeaderTimeout, "read-header-timeout", a.cfg.ReadHeaderTimeout, "HTTP ReadHeaderTimeout")
	return cmd
}
