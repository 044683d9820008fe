package cliconfig

import (
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultConfigFile is looked up in the working directory when --config is
// not given.
const DefaultConfigFile = "chatshell.toml"

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	LogLevel  string           `toml:"log_level"`
	PagesDir  string           `toml:"pages_dir"`
	AssetsDir string           `toml:"assets_dir"`
	Server    ServerFileConfig `toml:"server"`
	Build     BuildFileConfig  `toml:"build"`
}

// ServerFileConfig is the [server] table.
type ServerFileConfig struct {
	Listen            string            `toml:"listen"`
	ReadHeaderTimeout string            `toml:"read_header_timeout"`
	ShutdownTimeout   string            `toml:"shutdown_timeout"`
	Watch             *bool             `toml:"watch"`
	Proxy             map[string]string `toml:"proxy"`
}

// BuildFileConfig is the [build] table.
type BuildFileConfig struct {
	OutDir      string `toml:"out_dir"`
	EmptyOutDir *bool  `toml:"empty_out_dir"`
	SourceMap   *bool  `toml:"sourcemap"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ./chatshell.toml if it exists, otherwise "".
func DefaultConfigPath() string {
	if FileExists(DefaultConfigFile) {
		return DefaultConfigFile
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("pages-dir", fc.PagesDir, &cfg.PagesDir)
	s.setString("assets-dir", fc.AssetsDir, &cfg.AssetsDir)

	s.setString("listen", fc.Server.Listen, &cfg.Listen)
	if err := s.setDuration("read-header-timeout", fc.Server.ReadHeaderTimeout, &cfg.ReadHeaderTimeout); err != nil {
		return err
	}
	if err := s.setDuration("shutdown-timeout", fc.Server.ShutdownTimeout, &cfg.ShutdownTimeout); err != nil {
		return err
	}
	s.setBool("watch", fc.Server.Watch, &cfg.Watch)
	s.setStringMap("proxy", fc.Server.Proxy, &cfg.Proxy)

	s.setString("out-dir", fc.Build.OutDir, &cfg.OutDir)
	s.setBool("empty-out-dir", fc.Build.EmptyOutDir, &cfg.EmptyOutDir)
	s.setBool("sourcemap", fc.Build.SourceMap, &cfg.SourceMap)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
