// Package config loads the optional logod YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/logotype"
	"github.com/gogpu/logotype/fonts"
)

// Config represents the optional logod.yaml configuration.
type Config struct {
	Server  ServerConfig      `yaml:"server"`
	Render  RenderConfig      `yaml:"render"`
	Fonts   []FontConfig      `yaml:"fonts"`
	Presets []logotype.Preset `yaml:"presets"`
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr,omitempty"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout,omitempty"`
	ReadTimeout     time.Duration `yaml:"read_timeout,omitempty"`
	WriteTimeout    time.Duration `yaml:"write_timeout,omitempty"`
	Cache           CacheConfig   `yaml:"cache"`
}

// CacheConfig bounds the rendered image cache. Entries <= 0 disables it;
// larger images than MaxImageBytes are rendered but never cached.
type CacheConfig struct {
	Entries       int `yaml:"entries"`
	MaxImageBytes int `yaml:"max_image_bytes,omitempty"`
}

// RenderConfig contains renderer limits and defaults.
type RenderConfig struct {
	DefaultPreset string `yaml:"default_preset,omitempty"`
	DefaultFont   string `yaml:"default_font,omitempty"`
	MaxWidth      int    `yaml:"max_width,omitempty"`
	MaxHeight     int    `yaml:"max_height,omitempty"`
	MaxTextLength int    `yaml:"max_text_length,omitempty"`
}

// FontConfig registers one font. Exactly one of Path or System is set.
type FontConfig struct {
	Name   string `yaml:"name"`
	Path   string `yaml:"path,omitempty"`
	System string `yaml:"system,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":3000",
			ShutdownTimeout: 5 * time.Second,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			Cache:           CacheConfig{Entries: 1024, MaxImageBytes: 256 << 10},
		},
		Render: RenderConfig{
			DefaultPreset: logotype.PresetClassic,
			DefaultFont:   fonts.GoRegular,
			MaxWidth:      4096,
			MaxHeight:     4096,
			MaxTextLength: 256,
		},
	}
}

// LoadOptional reads the file at path if present. A missing file yields the
// defaults; an empty path does too.
func LoadOptional(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("server.addr is empty")
	}
	if c.Render.MaxWidth <= 0 || c.Render.MaxHeight <= 0 {
		return fmt.Errorf("render max size %dx%d must be positive", c.Render.MaxWidth, c.Render.MaxHeight)
	}
	for i, f := range c.Fonts {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("fonts[%d]: name is empty", i)
		}
		if (f.Path == "") == (f.System == "") {
			return fmt.Errorf("font %q: set exactly one of path or system", f.Name)
		}
	}
	return nil
}

// FontOptions converts the font section into registry options.
func (c *Config) FontOptions() []fonts.Option {
	opts := make([]fonts.Option, 0, len(c.Fonts)+1)
	for _, f := range c.Fonts {
		if f.Path != "" {
			opts = append(opts, fonts.WithFontFile(f.Name, f.Path))
		} else {
			opts = append(opts, fonts.WithSystemFont(f.Name, f.System))
		}
	}
	if c.Render.DefaultFont != "" {
		opts = append(opts, fonts.WithDefault(c.Render.DefaultFont))
	}
	return opts
}

// RendererOptions converts the render and presets sections into renderer
// options.
func (c *Config) RendererOptions() []logotype.RendererOption {
	opts := []logotype.RendererOption{
		logotype.WithMaxDimensions(c.Render.MaxWidth, c.Render.MaxHeight),
		logotype.WithMaxTextLength(c.Render.MaxTextLength),
	}
	if len(c.Presets) > 0 {
		opts = append(opts, logotype.WithPresets(c.Presets...))
	}
	if c.Render.DefaultPreset != "" {
		opts = append(opts, logotype.WithDefaultPreset(c.Render.DefaultPreset))
	}
	return opts
}
