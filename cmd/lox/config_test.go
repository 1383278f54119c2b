package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lox.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaultsWhenFileMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.REPL.Prompt != "> " || cfg.Serve.Addr != ":8080" || cfg.Serve.SessionTTL != 30*time.Minute {
		t.Fatalf("unexpected defaults %#v", cfg)
	}
}

func TestLoadConfigExplicitMissingFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestLoadConfigReadsYAML(t *testing.T) {
	path := writeConfig(t, `color: false
log_level: debug
repl:
  prompt: "lox> "
  plain: true
serve:
  addr: "127.0.0.1:9000"
  session_ttl: 5m
  max_sessions: 10
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Color || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected top-level settings %#v", cfg)
	}
	if cfg.REPL.Prompt != "lox> " || !cfg.REPL.Plain {
		t.Fatalf("unexpected repl settings %#v", cfg.REPL)
	}
	if cfg.Serve.Addr != "127.0.0.1:9000" || cfg.Serve.SessionTTL != 5*time.Minute || cfg.Serve.MaxSessions != 10 {
		t.Fatalf("unexpected serve settings %#v", cfg.Serve)
	}
}

func TestLoadConfigRejectsUnknownLogLevel(t *testing.T) {
	path := writeConfig(t, "log_level: loud\n")
	_, err := loadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "unknown log level") {
		t.Fatalf("expected log level error, got %v", err)
	}
}

func TestCommonFlagsOverrideConfig(t *testing.T) {
	path := writeConfig(t, "log_level: error\ncolor: true\n")
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	common := addCommonFlags(fs)
	if err := fs.Parse([]string{"-config", path, "-log-level", "off", "-no-color"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg, err := common.load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "off" || cfg.Color {
		t.Fatalf("flags did not override config: %#v", cfg)
	}
}

func TestNewLoggerOff(t *testing.T) {
	logger, err := newLogger("off", nil)
	if err != nil || logger != nil {
		t.Fatalf("expected nil logger, got %v, %v", logger, err)
	}
}

func TestNewPlaygroundUsesServeConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.LogLevel = "off"
	server, err := newPlayground(cfg)
	if err != nil {
		t.Fatalf("new playground: %v", err)
	}
	defer server.Close()
	if server.App() == nil {
		t.Fatalf("expected fiber app")
	}
}
