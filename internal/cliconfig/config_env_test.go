package cliconfig

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/bft-labs/chatshell/internal/domain"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"CHATSHELL_LISTEN":              "0.0.0.0:3000",
				"CHATSHELL_PAGES_DIR":           "/env/pages",
				"CHATSHELL_ASSETS_DIR":          "/env/assets",
				"CHATSHELL_OUT_DIR":             "build",
				"CHATSHELL_LOG_LEVEL":           "debug",
				"CHATSHELL_SHUTDOWN_TIMEOUT":    "3s",
				"CHATSHELL_READ_HEADER_TIMEOUT": "1s",
				"CHATSHELL_WATCH":               "false",
				"CHATSHELL_EMPTY_OUT_DIR":       "1",
				"CHATSHELL_SOURCEMAP":           "true",
				"CHATSHELL_PROXY":               "/ask=http://env:1",
			},
			changed: map[string]bool{},
			initial: Config{Watch: true},
			expected: Config{
				Listen:            "0.0.0.0:3000",
				PagesDir:          "/env/pages",
				AssetsDir:         "/env/assets",
				OutDir:            "build",
				LogLevel:          "debug",
				ShutdownTimeout:   3 * time.Second,
				ReadHeaderTimeout: time.Second,
				Watch:             false,
				EmptyOutDir:       true,
				SourceMap:         true,
				Proxy:             map[string]string{"/ask": "http://env:1"},
			},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"CHATSHELL_LISTEN": "0.0.0.0:3000",
				"CHATSHELL_PROXY":  "/ask=http://env:1",
				"CHATSHELL_WATCH":  "false",
			},
			changed: map[string]bool{"listen": true, "proxy": true},
			initial: Config{
				Listen: "127.0.0.1:9999",
				Proxy:  map[string]string{"/chat": "http://flag:1"},
				Watch:  true,
			},
			expected: Config{
				Listen: "127.0.0.1:9999",
				Proxy:  map[string]string{"/chat": "http://flag:1"},
				Watch:  false,
			},
		},
		{
			name:    "returns error for invalid duration",
			envVars: map[string]string{"CHATSHELL_SHUTDOWN_TIMEOUT": "soon"},
			changed: map[string]bool{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)

			if tt.wantErr {
				if err == nil {
					t.Error("ApplyEnvConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnvConfig() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(cfg, tt.expected) {
				t.Errorf("ApplyEnvConfig() = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestApplyEnvConfig_MalformedProxyDeferred(t *testing.T) {
	t.Setenv("CHATSHELL_PROXY", "/ask")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, map[string]bool{}); err != nil {
		t.Fatalf("ApplyEnvConfig() error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
	if err := cfg.ValidateProxy(); !errors.Is(err, domain.ErrInvalidProxyRule) {
		t.Errorf("ValidateProxy() error = %v, want %v", err, domain.ErrInvalidProxyRule)
	}
	if len(cfg.Proxy) != 2 {
		t.Errorf("Proxy = %v, want defaults kept", cfg.Proxy)
	}

	flagged := DefaultConfig()
	if err := ApplyEnvConfig(&flagged, map[string]bool{"proxy": true}); err != nil {
		t.Fatalf("ApplyEnvConfig() error = %v", err)
	}
	if err := flagged.ValidateProxy(); err != nil {
		t.Errorf("ValidateProxy() with --proxy set error = %v, want nil", err)
	}
}

// Precedence order: flag > env > file > default.
func TestConfigPrecedence(t *testing.T) {
	falseVal := false

	fileConf := FileConfig{
		PagesDir: "/file/pages",
		Server: ServerFileConfig{
			Listen: "127.0.0.1:7000",
			Proxy:  map[string]string{"/ask": "http://file:1"},
		},
		Build: BuildFileConfig{OutDir: "file-dist", SourceMap: &falseVal},
	}

	t.Setenv("CHATSHELL_LISTEN", "127.0.0.1:8000")
	t.Setenv("CHATSHELL_OUT_DIR", "env-dist")

	changed := map[string]bool{"out-dir": true}

	cfg := DefaultConfig()
	cfg.OutDir = "flag-dist"

	if err := ApplyFileConfig(&cfg, fileConf, changed); err != nil {
		t.Fatalf("ApplyFileConfig failed: %v", err)
	}
	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatalf("ApplyEnvConfig failed: %v", err)
	}

	if cfg.OutDir != "flag-dist" {
		t.Errorf("OutDir = %v, want flag-dist (flag should win)", cfg.OutDir)
	}
	if cfg.Listen != "127.0.0.1:8000" {
		t.Errorf("Listen = %v, want 127.0.0.1:8000 (env should override file)", cfg.Listen)
	}
	if cfg.PagesDir != "/file/pages" {
		t.Errorf("PagesDir = %v, want /file/pages (file should set)", cfg.PagesDir)
	}
	if cfg.SourceMap {
		t.Error("SourceMap = true, want false (file should set)")
	}
	if !reflect.DeepEqual(cfg.Proxy, map[string]string{"/ask": "http://file:1"}) {
		t.Errorf("Proxy = %v, want file table replacing defaults", cfg.Proxy)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want default 10s", cfg.ShutdownTimeout)
	}
}
