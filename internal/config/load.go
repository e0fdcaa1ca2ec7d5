package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/fakebitmap/pkg/bitmap"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks decoder defaults and preloaded hints.
func (c *Config) Validate() error {
	if c.Decoder.DefaultWidth < 1 || c.Decoder.DefaultHeight < 1 {
		return fmt.Errorf("%w: default size %dx%d must be at least 1x1",
			ErrInvalidConfig, c.Decoder.DefaultWidth, c.Decoder.DefaultHeight)
	}
	if _, err := bitmap.ParseConfig(c.Decoder.DefaultFormat); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	for i, h := range c.Hints {
		set := 0
		for _, s := range []string{h.Key, h.File, h.URI} {
			if s != "" {
				set++
			}
		}
		if h.Resource != nil {
			set++
		}
		if set != 1 {
			return fmt.Errorf("%w: hint %d must name exactly one of key, file, uri, resource", ErrInvalidConfig, i)
		}
		if h.Width < 1 || h.Height < 1 {
			return fmt.Errorf("%w: hint %d has size %dx%d", ErrInvalidConfig, i, h.Width, h.Height)
		}
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./fakebitmap.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "fakebitmap")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "fakebitmap")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "fakebitmap")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "fakebitmap")
	}
}

// loadFromFile merges a YAML file into cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
