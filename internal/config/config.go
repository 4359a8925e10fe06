// Package config loads the optional YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/schovi/mdsh/internal/logger"
)

var log = logger.New("config")

const (
	appDir   = "mdsh"
	fileName = "config.yaml"
)

// Config holds user defaults. Command-line flags override every field.
type Config struct {
	Shell          string `yaml:"shell,omitempty"`
	CarriageReturn string `yaml:"carriage_return,omitempty"`
	TabWidth       int    `yaml:"tab_width,omitempty"`
	TimeoutSec     int    `yaml:"timeout_sec,omitempty"`
	LogDir         string `yaml:"log_dir,omitempty"`
	Logging        bool   `yaml:"logging"`
	Markdown       bool   `yaml:"markdown"`
	Cols           int    `yaml:"cols,omitempty"`
	Rows           int    `yaml:"rows,omitempty"`
}

func Default() Config {
	return Config{
		CarriageReturn: "overwrite",
		TabWidth:       8,
		TimeoutSec:     30,
		LogDir:         "logs",
		Logging:        true,
		Cols:           80,
		Rows:           24,
	}
}

// Path returns the config file used when none is given explicitly:
// $XDG_CONFIG_HOME/mdsh/config.yaml, else ~/.config/mdsh/config.yaml.
func Path() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appDir, fileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDir, fileName)
}

// Load reads path, or the default location when path is empty. A missing
// default file yields the defaults; a missing explicit file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = Path()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			log.Printf("no config at %s, using defaults", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	log.Printf("loaded %s", path)
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.CarriageReturn {
	case "overwrite", "clear":
	default:
		return fmt.Errorf("carriage_return: must be overwrite or clear, got %q", c.CarriageReturn)
	}
	if c.TabWidth < 1 {
		return fmt.Errorf("tab_width: must be positive, got %d", c.TabWidth)
	}
	if c.TimeoutSec < 0 {
		return fmt.Errorf("timeout_sec: must not be negative, got %d", c.TimeoutSec)
	}
	if c.Cols < 1 || c.Rows < 1 {
		return fmt.Errorf("cols/rows: must be positive, got %dx%d", c.Cols, c.Rows)
	}
	return nil
}

// ShellOrDefault returns the configured shell, then $SHELL, then /bin/sh.
func (c Config) ShellOrDefault() string {
	if c.Shell != "" {
		return c.Shell
	}
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}
