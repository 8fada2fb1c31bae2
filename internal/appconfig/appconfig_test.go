package appconfig

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/lyon"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lyon.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Samples != 1 {
		t.Errorf("Samples = %d, want 1", cfg.Samples)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.WindowWidth != 0 || cfg.WindowHeight != 0 {
		t.Errorf("window size = %dx%d, want unset", cfg.WindowWidth, cfg.WindowHeight)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Samples != 1 || cfg.LogLevel != "info" {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
	if cfg.Tolerance != 0 || cfg.ZoomSmoothing != 0 {
		t.Errorf("Load(\"\") set tuning values: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := writeConfigFile(t, "samples: [not a number\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := writeConfigFile(t, `
window_width: 1024
window_height: 768
tolerance: 0.05
samples: 4
zoom_smoothing: 4
clear_color: [0, 0, 0, 1]
log_level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WindowWidth != 1024 || cfg.WindowHeight != 768 {
		t.Errorf("window size = %dx%d, want 1024x768", cfg.WindowWidth, cfg.WindowHeight)
	}
	if cfg.Tolerance != 0.05 {
		t.Errorf("Tolerance = %g, want 0.05", cfg.Tolerance)
	}
	if cfg.Samples != 4 {
		t.Errorf("Samples = %d, want 4", cfg.Samples)
	}
	if cfg.ZoomSmoothing != 4 {
		t.Errorf("ZoomSmoothing = %g, want 4", cfg.ZoomSmoothing)
	}
	if got := cfg.ClearColorOrDefault(); got != [4]float32{0, 0, 0, 1} {
		t.Errorf("ClearColorOrDefault = %v, want black", got)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "samples: 4\nwindow_width: 640\nwindow_height: 480\n")
	t.Setenv("LYON_SAMPLES", "8")
	t.Setenv("LYON_WINDOW_WIDTH", "1920")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Samples != 8 {
		t.Errorf("Samples = %d, want env override 8", cfg.Samples)
	}
	if cfg.WindowWidth != 1920 {
		t.Errorf("WindowWidth = %d, want env override 1920", cfg.WindowWidth)
	}
	if cfg.WindowHeight != 480 {
		t.Errorf("WindowHeight = %d, want file value 480", cfg.WindowHeight)
	}
}

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv("LYON_LOG_LEVEL", "warn")
	t.Setenv("LYON_TOLERANCE", "0.1")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if cfg.Tolerance != 0.1 {
		t.Errorf("Tolerance = %g, want 0.1", cfg.Tolerance)
	}
}

func TestValidationNamesOffendingKey(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		key  string
	}{
		{"bad samples", "samples: 3\n", "samples"},
		{"negative tolerance", "tolerance: -1\n", "tolerance"},
		{"negative smoothing", "scroll_smoothing: -2\n", "scroll_smoothing"},
		{"short clear color", "clear_color: [1, 0]\n", "clear_color"},
		{"out of range clear color", "clear_color: [2, 0, 0, 1]\n", "clear_color"},
		{"bad log level", "log_level: loud\n", "log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.yaml)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.key) {
				t.Errorf("error %q does not name key %q", err, tt.key)
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		cfg := Config{LogLevel: tt.level}
		if got := cfg.SlogLevel(); got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestSmoothingMerge(t *testing.T) {
	base := lyon.DefaultSmoothing()

	cfg := Config{ZoomSmoothing: 10}
	merged := cfg.Smoothing(base)
	if merged.Zoom != 10 {
		t.Errorf("Zoom = %g, want 10", merged.Zoom)
	}
	if merged.Scroll != base.Scroll {
		t.Errorf("Scroll = %g, want base %g", merged.Scroll, base.Scroll)
	}
	if merged.StrokeWidth != base.StrokeWidth {
		t.Errorf("StrokeWidth = %g, want base %g", merged.StrokeWidth, base.StrokeWidth)
	}

	cfg = Config{}
	if got := cfg.Smoothing(base); got != base {
		t.Errorf("zero config changed smoothing: %+v", got)
	}
}

func TestToleranceOrDefault(t *testing.T) {
	if got := (Config{}).ToleranceOrDefault(0.02); got != 0.02 {
		t.Errorf("unset tolerance = %g, want 0.02", got)
	}
	if got := (Config{Tolerance: 0.5}).ToleranceOrDefault(0.02); got != 0.5 {
		t.Errorf("set tolerance = %g, want 0.5", got)
	}
}

func TestWindowSizeOrDefault(t *testing.T) {
	w, h := (Config{}).WindowSizeOrDefault(800, 800)
	if w != 800 || h != 800 {
		t.Errorf("unset size = %dx%d, want 800x800", w, h)
	}
	w, h = (Config{WindowWidth: 1024, WindowHeight: 768}).WindowSizeOrDefault(800, 800)
	if w != 1024 || h != 768 {
		t.Errorf("set size = %dx%d, want 1024x768", w, h)
	}
	// A single dimension is not enough to override.
	w, h = (Config{WindowWidth: 1024}).WindowSizeOrDefault(800, 800)
	if w != 800 || h != 800 {
		t.Errorf("partial size = %dx%d, want 800x800", w, h)
	}
}

func TestClearColorOrDefault(t *testing.T) {
	if got := (Config{}).ClearColorOrDefault(); got != [4]float32{1, 1, 1, 1} {
		t.Errorf("unset clear color = %v, want white", got)
	}
}
