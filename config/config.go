// Package config loads hxparse.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Filename is looked up in the working directory when no path is given.
const Filename = "hxparse.yaml"

type Config struct {
	// Extensions selects the files scanned by check and the LSP server.
	Extensions []string `yaml:"extensions"`
	Watch      Watch    `yaml:"watch"`
	Log        Log      `yaml:"log"`
	LSP        LSP      `yaml:"lsp"`
}

type Watch struct {
	Interval time.Duration `yaml:"interval"`
}

type Log struct {
	Verbosity int    `yaml:"verbosity"`
	File      string `yaml:"file"`
}

type LSP struct {
	Hover bool `yaml:"hover"`
}

func Default() *Config {
	return &Config{
		Extensions: []string{".hx", ".hxe"},
		Watch:      Watch{Interval: 2 * time.Second},
		LSP:        LSP{Hover: true},
	}
}

// Load reads the configuration at path over the defaults. A missing file
// yields the defaults unless path was given explicitly.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = Filename
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Watch.Interval <= 0 {
		return fmt.Errorf("watch.interval must be positive, got %s", c.Watch.Interval)
	}
	if c.Log.Verbosity < 0 {
		return fmt.Errorf("log.verbosity must not be negative")
	}
	for i, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			c.Extensions[i] = "." + ext
		}
	}
	return nil
}

// Matches reports whether path has one of the configured extensions.
func (c *Config) Matches(path string) bool {
	ext := filepath.Ext(path)
	for _, want := range c.Extensions {
		if ext == want {
			return true
		}
	}
	return false
}
