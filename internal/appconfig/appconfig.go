// Package appconfig loads the tuning configuration shared by the demo
// binaries. Values resolve in three layers: compiled defaults, then an
// optional YAML file, then LYON_* environment overrides.
package appconfig

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/lyon"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// envPrefix namespaces the environment overrides (LYON_SAMPLES,
// LYON_WINDOW_WIDTH, ...).
const envPrefix = "lyon"

// Config carries the launch tuning. Zero values mean "keep the scene's
// own default" where a default is noted.
type Config struct {
	// WindowWidth and WindowHeight override the scene's initial window
	// size when both are non-zero.
	WindowWidth  uint32 `yaml:"window_width" split_words:"true"`
	WindowHeight uint32 `yaml:"window_height" split_words:"true"`

	// Tolerance is the tessellation tolerance in path units. Zero keeps
	// each binary's native default.
	Tolerance float32 `yaml:"tolerance"`

	// Samples is the SVG viewer's default MSAA sample count. The -m
	// flag wins over it. Valid values are 1, 2, 4 and 8.
	Samples uint32 `yaml:"samples"`

	// Smoothing divisors for the animated view targets. Zero keeps the
	// scene default.
	ZoomSmoothing   float32 `yaml:"zoom_smoothing" split_words:"true"`
	ScrollSmoothing float32 `yaml:"scroll_smoothing" split_words:"true"`
	StrokeSmoothing float32 `yaml:"stroke_smoothing" split_words:"true"`

	// ClearColor is the frame clear color as r,g,b,a in 0..1. Empty
	// keeps the renderers' white.
	ClearColor []float32 `yaml:"clear_color" split_words:"true"`

	// LogLevel selects the slog level: debug, info, warn or error.
	LogLevel string `yaml:"log_level" split_words:"true"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		Samples:  1,
		LogLevel: "info",
	}
}

// Load resolves the configuration. path selects the YAML file; an
// empty path skips the file layer, any other unreadable path is an
// error. Environment overrides apply last.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("appconfig: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("appconfig: parse %s: %w", path, err)
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("appconfig: environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Samples {
	case 1, 2, 4, 8:
	default:
		return fmt.Errorf("appconfig: samples must be 1, 2, 4 or 8, got %d", c.Samples)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("appconfig: tolerance must not be negative, got %g", c.Tolerance)
	}
	for _, s := range []struct {
		key string
		v   float32
	}{
		{"zoom_smoothing", c.ZoomSmoothing},
		{"scroll_smoothing", c.ScrollSmoothing},
		{"stroke_smoothing", c.StrokeSmoothing},
	} {
		if s.v < 0 {
			return fmt.Errorf("appconfig: %s must not be negative, got %g", s.key, s.v)
		}
	}
	if n := len(c.ClearColor); n != 0 && n != 4 {
		return fmt.Errorf("appconfig: clear_color needs 4 components, got %d", n)
	}
	for i, v := range c.ClearColor {
		if v < 0 || v > 1 {
			return fmt.Errorf("appconfig: clear_color[%d] must be in 0..1, got %g", i, v)
		}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("appconfig: log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	return nil
}

// SlogLevel maps LogLevel onto its slog constant.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Smoothing merges the configured divisors over base, keeping base
// values where the config is zero.
func (c Config) Smoothing(base lyon.Smoothing) lyon.Smoothing {
	if c.ZoomSmoothing > 0 {
		base.Zoom = c.ZoomSmoothing
	}
	if c.ScrollSmoothing > 0 {
		base.Scroll = c.ScrollSmoothing
	}
	if c.StrokeSmoothing > 0 {
		base.StrokeWidth = c.StrokeSmoothing
	}
	return base
}

// ToleranceOrDefault returns the configured tolerance, or def when
// unset.
func (c Config) ToleranceOrDefault(def float32) float32 {
	if c.Tolerance > 0 {
		return c.Tolerance
	}
	return def
}

// ClearColorOrDefault returns the configured clear color, or white
// when unset.
func (c Config) ClearColorOrDefault() [4]float32 {
	if len(c.ClearColor) == 4 {
		return [4]float32{c.ClearColor[0], c.ClearColor[1], c.ClearColor[2], c.ClearColor[3]}
	}
	return [4]float32{1, 1, 1, 1}
}

// WindowSizeOrDefault returns the configured window size, or the given
// scene size when either dimension is unset.
func (c Config) WindowSizeOrDefault(w, h uint32) (uint32, uint32) {
	if c.WindowWidth > 0 && c.WindowHeight > 0 {
		return c.WindowWidth, c.WindowHeight
	}
	return w, h
}
