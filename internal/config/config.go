// Package config loads viewer settings from defaults, an optional YAML
// file and EBITLIGHTBOX_* environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides: EBITLIGHTBOX_DIR -> dir.
const EnvPrefix = "EBITLIGHTBOX_"

// Config holds everything the command needs to start the viewer.
type Config struct {
	// Dir is scanned for images when Catalog is empty.
	Dir string `koanf:"dir" yaml:"dir"`
	// Catalog is a YAML file listing images with alt text.
	Catalog string `koanf:"catalog" yaml:"catalog,omitempty"`
	// Include restricts the directory scan to matching paths.
	Include []string `koanf:"include" yaml:"include,omitempty"`
	// Category shows only images of one category; "all" shows everything.
	Category string `koanf:"category" yaml:"category"`
	// StartIndex is the image opened at startup.
	StartIndex int `koanf:"start_index" yaml:"start_index"`
	// StartOpen opens the lightbox immediately.
	StartOpen bool `koanf:"start_open" yaml:"start_open"`

	SlideshowInterval time.Duration `koanf:"slideshow_interval" yaml:"slideshow_interval"`
	Slideshow         bool          `koanf:"slideshow" yaml:"slideshow"`

	WindowWidth  int    `koanf:"window_width" yaml:"window_width"`
	WindowHeight int    `koanf:"window_height" yaml:"window_height"`
	Title        string `koanf:"title" yaml:"title"`
	Thumbnails   bool   `koanf:"thumbnails" yaml:"thumbnails"`
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() *Config {
	return &Config{
		Dir:               ".",
		Category:          "all",
		StartOpen:         true,
		SlideshowInterval: 3 * time.Second,
		WindowWidth:       1920,
		WindowHeight:      980,
		Title:             "Lightbox",
		Thumbnails:        true,
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Dir == "" && c.Catalog == "" {
		return fmt.Errorf("either dir or catalog is required")
	}
	if c.SlideshowInterval < 0 {
		return fmt.Errorf("slideshow_interval must be non-negative")
	}
	if c.Slideshow && c.SlideshowInterval == 0 {
		return fmt.Errorf("slideshow requires a positive slideshow_interval")
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.WindowWidth, c.WindowHeight)
	}
	return nil
}
