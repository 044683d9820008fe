package cliconfig

import (
	"fmt"
	"os"
)

// EnvPrefix prefixes every environment variable chatshell reads.
const EnvPrefix = "CHATSHELL_"

// ApplyEnvConfig applies CHATSHELL_* environment variables to cfg.
// Environment values override the config file; flags that have been
// explicitly set (changed map) override both. A malformed CHATSHELL_PROXY
// is reported by Config.ValidateProxy, not here.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("log-level", os.Getenv(EnvPrefix+"LOG_LEVEL"), &cfg.LogLevel)
	s.setString("pages-dir", os.Getenv(EnvPrefix+"PAGES_DIR"), &cfg.PagesDir)
	s.setString("assets-dir", os.Getenv(EnvPrefix+"ASSETS_DIR"), &cfg.AssetsDir)
	s.setString("listen", os.Getenv(EnvPrefix+"LISTEN"), &cfg.Listen)
	s.setString("out-dir", os.Getenv(EnvPrefix+"OUT_DIR"), &cfg.OutDir)

	if err := s.setDuration("read-header-timeout", os.Getenv(EnvPrefix+"READ_HEADER_TIMEOUT"), &cfg.ReadHeaderTimeout); err != nil {
		return err
	}
	if err := s.setDuration("shutdown-timeout", os.Getenv(EnvPrefix+"SHUTDOWN_TIMEOUT"), &cfg.ShutdownTimeout); err != nil {
		return err
	}

	s.setBoolFromString("watch", os.Getenv(EnvPrefix+"WATCH"), &cfg.Watch)
	s.setBoolFromString("empty-out-dir", os.Getenv(EnvPrefix+"EMPTY_OUT_DIR"), &cfg.EmptyOutDir)
	s.setBoolFromString("sourcemap", os.Getenv(EnvPrefix+"SOURCEMAP"), &cfg.SourceMap)

	if v := os.Getenv(EnvPrefix + "PROXY"); v != "" {
		proxy, err := ParseProxyList(v)
		if err != nil {
			if !changed["proxy"] {
				cfg.proxyErr = fmt.Errorf("%sPROXY: %w", EnvPrefix, err)
			}
			return nil
		}
		s.setStringMap("proxy", proxy, &cfg.Proxy)
	}

	return nil
}
