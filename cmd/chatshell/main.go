package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/chatshell/internal/cliconfig"
)

const helpDescription = `
Navigation shell for the document chat client.

Commands:
  dev     serve the shell and forward /ask and /chat to the backend
  build   write the static shell to the output directory
  routes  show navigation entries and the proxy table

Configuration is read from ./chatshell.toml, CHATSHELL_* environment
variables and flags, in increasing order of precedence.
`

var exampleUsage = strings.TrimSpace(`
  chatshell dev --proxy /ask=http://localhost:8000 --proxy /chat=http://localhost:8000
  chatshell build --out-dir dist --sourcemap=false
  chatshell routes --path /qa
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		log := cliconfig.Logger(os.Stderr, "info")
		log.Error().Err(err).Msg("chatshell")
		os.Exit(1)
	}
}

// app carries the configuration shared by all subcommands.
type app struct {
	cfg     cliconfig.Config
	cfgPath string
	stdout  io.Writer
	stderr  io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{cfg: cliconfig.DefaultConfig(), stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "chatshell",
		Short:         "Navigation shell and dev proxy for the document chat client",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "path to config file (default: ./chatshell.toml if present)")
	root.PersistentFlags().StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level (debug, info, warn, error)")

	root.AddCommand(a.newDevCmd(), a.newBuildCmd(), a.newRoutesCmd())
	return root
}

// load applies the config file and environment beneath explicitly set
// flags, then validates the result.
func (a *app) load(cmd *cobra.Command) error {
	cfgFile := a.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" {
		if !cliconfig.FileExists(cfgFile) {
			return fmt.Errorf("config file %s not found", cfgFile)
		}
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&a.cfg, fc, changed); err != nil {
			return err
		}
	}

	if err := cliconfig.ApplyEnvConfig(&a.cfg, changed); err != nil {
		return err
	}
	return a.cfg.Validate()
}
