// Package config loads the YAML configuration shared by the server and CLI.
package config

import (
	"fmt"
	"image/png"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/glitchbl/image/internal/imaging"
	"github.com/glitchbl/image/internal/logger"
)

// Environment variables read by Load.
const (
	EnvConfigPath = "IMAGE_MCP_CONFIG"
	EnvLogLevel   = "IMAGE_MCP_LOG_LEVEL"
)

// Config holds all tunable settings.
type Config struct {
	Resize   ResizeConfig `yaml:"resize"`
	Encode   EncodeConfig `yaml:"encode"`
	Text     TextConfig   `yaml:"text"`
	Cache    CacheConfig  `yaml:"cache"`
	LogLevel string       `yaml:"log_level"`
}

// ResizeConfig is the bounding box used when a resize request gives none.
type ResizeConfig struct {
	MaxWidth  int `yaml:"max_width"`
	MaxHeight int `yaml:"max_height"`
}

// EncodeConfig controls PNG and JPEG output.
type EncodeConfig struct {
	JPEGQuality    int    `yaml:"jpeg_quality"`
	PNGCompression string `yaml:"png_compression"` // default, none, speed, best
	JPEGBackground string `yaml:"jpeg_background"`
}

// TextConfig holds addText defaults.
type TextConfig struct {
	Font       string `yaml:"font"`
	Padding    int    `yaml:"padding"`
	Color      string `yaml:"color"`
	Background string `yaml:"background"`
}

// CacheConfig toggles the decoded-image cache.
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Resize: ResizeConfig{
			MaxWidth:  imaging.DefaultMaxWidth,
			MaxHeight: imaging.DefaultMaxHeight,
		},
		Encode: EncodeConfig{
			JPEGQuality:    75,
			PNGCompression: "default",
			JPEGBackground: "#ffffff",
		},
		Text: TextConfig{
			Color:      "#ffffff",
			Background: "#ffffff00",
		},
		Cache:    CacheConfig{Enabled: true},
		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file. Keys missing from the
// file keep their default values.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Load reads the config at path, falling back to $IMAGE_MCP_CONFIG and then
// to Defaults. $IMAGE_MCP_LOG_LEVEL, when set, overrides the log level.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	cfg := Defaults()
	if path != "" {
		var err error
		if cfg, err = LoadFromFile(path); err != nil {
			return cfg, err
		}
	}

	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		cfg.LogLevel = lvl
	}
	return cfg, nil
}

// Validate checks ranges and parses every colour and enum once so later
// conversions cannot fail.
func (c Config) Validate() error {
	if c.Resize.MaxWidth < 1 || c.Resize.MaxHeight < 1 {
		return fmt.Errorf("resize bounds must be positive, got %dx%d", c.Resize.MaxWidth, c.Resize.MaxHeight)
	}
	if c.Encode.JPEGQuality < 1 || c.Encode.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality must be in 1-100, got %d", c.Encode.JPEGQuality)
	}
	if c.Text.Padding < 0 {
		return fmt.Errorf("text padding must not be negative, got %d", c.Text.Padding)
	}
	if _, err := parseCompression(c.Encode.PNGCompression); err != nil {
		return err
	}
	for name, s := range map[string]string{
		"encode.jpeg_background": c.Encode.JPEGBackground,
		"text.color":             c.Text.Color,
		"text.background":        c.Text.Background,
	} {
		if _, err := imaging.ParseColor(s); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// Level returns the configured log level.
func (c Config) Level() logger.Level {
	return logger.ParseLevel(c.LogLevel)
}

// EncodeOptions converts the encode section for the imaging package.
func (c Config) EncodeOptions() (imaging.EncodeOptions, error) {
	opts := imaging.DefaultEncodeOptions()
	opts.JPEGQuality = c.Encode.JPEGQuality

	level, err := parseCompression(c.Encode.PNGCompression)
	if err != nil {
		return opts, err
	}
	opts.PNGCompression = level

	bg, err := imaging.ParseColor(c.Encode.JPEGBackground)
	if err != nil {
		return opts, fmt.Errorf("encode.jpeg_background: %w", err)
	}
	opts.Background = bg
	return opts, nil
}

// TextOptions converts the text section into addText defaults.
func (c Config) TextOptions() (imaging.TextOptions, error) {
	opts := imaging.DefaultTextOptions()
	opts.Padding = c.Text.Padding

	fg, err := imaging.ParseColor(c.Text.Color)
	if err != nil {
		return opts, fmt.Errorf("text.color: %w", err)
	}
	bg, err := imaging.ParseColor(c.Text.Background)
	if err != nil {
		return opts, fmt.Errorf("text.background: %w", err)
	}
	opts.Color, opts.Background = fg, bg
	return opts, nil
}

func parseCompression(s string) (png.CompressionLevel, error) {
	switch strings.ToLower(s) {
	case "", "default":
		return png.DefaultCompression, nil
	case "none":
		return png.NoCompression, nil
	case "speed":
		return png.BestSpeed, nil
	case "best":
		return png.BestCompression, nil
	}
	return 0, fmt.Errorf("unknown png_compression %q", s)
}
