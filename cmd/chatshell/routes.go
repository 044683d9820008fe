package main

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bft-labs/chatshell/internal/pages"
	"github.com/bft-labs/chatshell/internal/proxy"
	"github.com/bft-labs/chatshell/internal/shell"
)

const (
	colorHeading lipgloss.Color = "#89b4fa"
	colorActive  lipgloss.Color = "#a6e3a1"
	colorDim     lipgloss.Color = "#7f849c"
)

func (a *app) newRoutesCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Show navigation entries and the proxy table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}
			if err := a.cfg.ValidateProxy(); err != nil {
				return err
			}
			table, err := proxy.NewTable(a.cfg.ProxyRules())
			if err != nil {
				return err
			}
			return renderRoutes(a.stdout, table, path)
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "explain how PATH is handled")
	cmd.Flags().StringToStringVar(&a.cfg.Proxy, "proxy", a.cfg.Proxy, "forward PREFIX=URL; replaces the default table")
	return cmd
}

func renderRoutes(w io.Writer, table *proxy.Table, path string) error {
	r := lipgloss.NewRenderer(w)
	head := r.NewStyle().Bold(true).Foreground(colorHeading)
	active := r.NewStyle().Foreground(colorActive)
	dim := r.NewStyle().Foreground(colorDim)
	col := r.NewStyle().Width(20)

	current := path
	if u, err := url.Parse(path); err == nil {
		current = u.Path
	}
	frame := shell.Compose(current)
	var lines []string

	lines = append(lines, head.Render("Navigation"))
	for _, l := range frame.Nav {
		line := "  " + col.Render(l.Label) + l.Target
		if path != "" && l.State.Active() {
			line = active.Render(line + "  (active)")
		}
		lines = append(lines, line)
	}

	lines = append(lines, "", head.Render("Proxy"))
	rules := table.Rules()
	if len(rules) == 0 {
		lines = append(lines, dim.Render("  (none)"))
	}
	for _, rule := range rules {
		lines = append(lines, "  "+col.Render(rule.Prefix)+"-> "+rule.Target)
	}

	if path != "" {
		lines = append(lines, "", head.Render("Path "+path))
		lines = append(lines, explain(table, frame, path)...)
	}

	_, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, lines...))
	return err
}

// explain describes how the dev server answers path.
func explain(table *proxy.Table, frame shell.Frame, path string) []string {
	u, err := url.Parse(path)
	if err != nil {
		return []string{"  invalid path: " + err.Error()}
	}
	if to, ok := table.ForwardURL(u); ok {
		return []string{"  forwarded to " + to.String()}
	}

	lines := []string{}
	if entry, ok := frame.ActiveEntry(); ok {
		lines = append(lines, "  active entry: "+entry.Label)
	} else {
		lines = append(lines, "  active entry: none")
	}
	for _, route := range pages.DefaultRoutes() {
		if route.Path == u.Path {
			return append(lines, "  served by the shell with page "+route.Page)
		}
	}
	if strings.HasPrefix(u.Path, "/assets/") {
		return append(lines, "  served as a static asset")
	}
	return append(lines, "  served by the shell as "+pages.NotFoundPage+" (404)")
}
