package config

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glitchbl/image/internal/logger"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, 1000, cfg.Resize.MaxWidth)
	assert.Equal(t, 1000, cfg.Resize.MaxHeight)
	assert.Equal(t, 75, cfg.Encode.JPEGQuality)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, logger.LevelInfo, cfg.Level())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
resize:
  max_width: 640
encode:
  jpeg_quality: 90
  png_compression: best
  jpeg_background: "#000000"
text:
  font: /fonts/sans.ttf
  padding: 8
log_level: debug
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 640, cfg.Resize.MaxWidth)
	assert.Equal(t, 1000, cfg.Resize.MaxHeight, "unset keys keep defaults")
	assert.Equal(t, 90, cfg.Encode.JPEGQuality)
	assert.Equal(t, "/fonts/sans.ttf", cfg.Text.Font)
	assert.Equal(t, 8, cfg.Text.Padding)
	assert.Equal(t, "#ffffff", cfg.Text.Color)
	assert.Equal(t, logger.LevelDebug, cfg.Level())

	opts, err := cfg.EncodeOptions()
	require.NoError(t, err)
	assert.Equal(t, 90, opts.JPEGQuality)
	assert.Equal(t, png.BestCompression, opts.PNGCompression)
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, opts.Background)
}

func TestLoadFromFile_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "resize: [1, 2"},
		{"zero width", "resize:\n  max_width: 0\n"},
		{"quality range", "encode:\n  jpeg_quality: 101\n"},
		{"compression", "encode:\n  png_compression: ultra\n"},
		{"color", "text:\n  color: red\n"},
		{"padding", "text:\n  padding: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_Env(t *testing.T) {
	path := writeConfig(t, "resize:\n  max_height: 300\nlog_level: warn\n")
	t.Setenv(EnvConfigPath, path)
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Resize.MaxHeight)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_ExplicitPathWins(t *testing.T) {
	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "missing.yaml"))
	path := writeConfig(t, "resize:\n  max_width: 123\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 123, cfg.Resize.MaxWidth)
}

func TestLoad_NoFile(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv(EnvLogLevel, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestTextOptions(t *testing.T) {
	cfg := Defaults()
	cfg.Text.Padding = 4
	cfg.Text.Color = "#ff0000"
	cfg.Text.Background = "transparent"

	opts, err := cfg.TextOptions()
	require.NoError(t, err)
	assert.Equal(t, 4, opts.Padding)
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, opts.Color)
	assert.Equal(t, uint8(0), opts.Background.(color.NRGBA).A)
	assert.Equal(t, 0, opts.Size)
}
