package main

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bft-labs/chatshell/internal/build"
	"github.com/bft-labs/chatshell/internal/cliconfig"
	"github.com/bft-labs/chatshell/internal/pages"
	"github.com/bft-labs/chatshell/pkg/log"
)

func (a *app) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Write the static shell to the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}
			logger := log.NewZerologAdapterWithLogger(cliconfig.Logger(a.stderr, a.cfg.LogLevel))

			opts := build.Options{
				OutDir:      a.cfg.OutDir,
				EmptyOutDir: a.cfg.EmptyOutDir,
				SourceMap:   a.cfg.SourceMap,
				Logger:      logger,
			}
			if a.cfg.AssetsDir != "" {
				opts.Assets = os.DirFS(a.cfg.AssetsDir)
			}
			if a.cfg.PagesDir != "" {
				store, err := pages.NewDirStore(a.cfg.PagesDir, pages.WithLogger(logger))
				if err != nil {
					return err
				}
				opts.Pages = store
			}

			b, err := build.New(opts)
			if err != nil {
				return err
			}
			res, err := b.Build(cmd.Context())
			if err != nil {
				return err
			}
			printBuildResult(a.stdout, res)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&a.cfg.OutDir, "out-dir", a.cfg.OutDir, "output directory")
	f.BoolVar(&a.cfg.EmptyOutDir, "empty-out-dir", a.cfg.EmptyOutDir, "remove existing output before writing")
	f.BoolVar(&a.cfg.SourceMap, "sourcemap", a.cfg.SourceMap, "write source maps for scripts and stylesheets")
	f.StringVar(&a.cfg.PagesDir, "pages-dir", a.cfg.PagesDir, "directory of markdown pages (default: embedded pages)")
	f.StringVar(&a.cfg.AssetsDir, "assets-dir", a.cfg.AssetsDir, "directory of static assets (default: embedded assets)")
	return cmd
}

func printBuildResult(w io.Writer, res build.Result) {
	r := lipgloss.NewRenderer(w)
	head := r.NewStyle().Bold(true).Foreground(colorHeading)
	dim := r.NewStyle().Foreground(colorDim)

	lines := []string{head.Render("built " + res.OutDir)}
	for _, f := range res.Files {
		lines = append(lines, "  "+dim.Render(f))
	}
	_, _ = w.Write([]byte(lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"))
}
