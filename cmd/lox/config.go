package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultConfigFile = ".lox.yaml"

// cliConfig holds settings read from the YAML config file. Command-line
// flags are applied on top.
type cliConfig struct {
	Color    bool        `yaml:"color"`
	LogLevel string      `yaml:"log_level"`
	REPL     replConfig  `yaml:"repl"`
	Serve    serveConfig `yaml:"serve"`
}

type replConfig struct {
	Prompt      string `yaml:"prompt"`
	Plain       bool   `yaml:"plain"`
	HistoryFile string `yaml:"history_file"`
}

type serveConfig struct {
	Addr        string        `yaml:"addr"`
	SessionTTL  time.Duration `yaml:"session_ttl"`
	MaxSessions int           `yaml:"max_sessions"`
}

func defaultConfig() cliConfig {
	return cliConfig{
		Color: os.Getenv("NO_COLOR") == "",
		REPL: replConfig{
			Prompt: "> ",
		},
		Serve: serveConfig{
			Addr:        ":8080",
			SessionTTL:  30 * time.Minute,
			MaxSessions: 1000,
		},
	}
}

// loadConfig reads path over the defaults. An empty path means the default
// file, which may be absent.
func loadConfig(path string) (cliConfig, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c cliConfig) validate() error {
	if _, err := newLogger(c.LogLevel, nil); err != nil {
		return err
	}
	if c.Serve.SessionTTL < 0 {
		return fmt.Errorf("serve.session_ttl must not be negative")
	}
	if c.Serve.MaxSessions < 0 {
		return fmt.Errorf("serve.max_sessions must not be negative")
	}
	return nil
}

type commonFlags struct {
	config   *string
	logLevel *string
	noColor  *bool
}

func addCommonFlags(fs *flag.FlagSet) *commonFlags {
	return &commonFlags{
		config:   fs.String("config", "", "YAML settings file"),
		logLevel: fs.String("log-level", "", "log level: debug, info, warn, error or off"),
		noColor:  fs.Bool("no-color", false, "disable colored diagnostics"),
	}
}

func (c *commonFlags) load() (cliConfig, error) {
	cfg, err := loadConfig(*c.config)
	if err != nil {
		return cfg, err
	}
	if *c.logLevel != "" {
		cfg.LogLevel = *c.logLevel
	}
	if *c.noColor {
		cfg.Color = false
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
