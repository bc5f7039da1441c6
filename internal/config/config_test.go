package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test overlay defaults
	if cfg.Overlay.Capacity != 511 {
		t.Errorf("expected capacity 511, got %d", cfg.Overlay.Capacity)
	}
	if cfg.Overlay.VectorRadius != 0.3 {
		t.Errorf("expected vector radius 0.3, got %f", cfg.Overlay.VectorRadius)
	}
	if cfg.Overlay.TipHeight != 0.7 {
		t.Errorf("expected tip height 0.7, got %f", cfg.Overlay.TipHeight)
	}
	if cfg.Overlay.CylinderSlices != 24 {
		t.Errorf("expected 24 cylinder slices, got %d", cfg.Overlay.CylinderSlices)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero capacity", func(c *Config) { c.Overlay.Capacity = 0 }, "overlay.capacity"},
		{"negative capacity", func(c *Config) { c.Overlay.Capacity = -4 }, "overlay.capacity"},
		{"too few slices", func(c *Config) { c.Overlay.CylinderSlices = 2 }, "overlay.cylinder_slices"},
		{"too few edges", func(c *Config) { c.Overlay.ArrowEdges = 0 }, "overlay.arrow_edges"},
		{"radius out of range", func(c *Config) { c.Overlay.VectorRadius = 1.5 }, "overlay.vector_radius"},
		{"negative tip", func(c *Config) { c.Overlay.TipHeight = -0.1 }, "overlay.tip_height"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("expected error to mention %s, got %v", tt.field, err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

overlay:
  capacity: 128
  vector_radius: 0.1
  tip_height: 0.4
  cylinder_slices: 12
  arrow_edges: 6
  show_bounds: true

logging:
  level: "debug"
  log_file: "overlay.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := ReadFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}

	if cfg.Overlay.Capacity != 128 {
		t.Errorf("expected capacity 128, got %d", cfg.Overlay.Capacity)
	}
	if cfg.Overlay.VectorRadius != 0.1 {
		t.Errorf("expected vector radius 0.1, got %f", cfg.Overlay.VectorRadius)
	}
	if cfg.Overlay.ArrowEdges != 6 {
		t.Errorf("expected 6 arrow edges, got %d", cfg.Overlay.ArrowEdges)
	}
	if !cfg.Overlay.ShowBounds {
		t.Error("expected show_bounds to be true")
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "overlay.log" {
		t.Errorf("expected log file 'overlay.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
overlay:
  capacity: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := ReadFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := ReadFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Isolate from any real user config
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", filepath.Join(tmpDir, "home"))
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create config.yaml in current directory
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("overlay:\n  capacity: 64\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(*testing.T, *Config)
	}{
		{
			name: "debug flag",
			args: []string{"-debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "windowed wins over fullscreen",
			args: []string{"-fullscreen", "-windowed"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
		},
		{
			name: "fullscreen flag",
			args: []string{"-fullscreen"},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
		},
		{
			name: "width and height flags",
			args: []string{"-width", "2560", "-height", "1440"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
		},
		{
			name: "capacity and bounds flags",
			args: []string{"-capacity", "32", "-bounds"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Overlay.Capacity != 32 {
					t.Errorf("expected capacity 32, got %d", cfg.Overlay.Capacity)
				}
				if !cfg.Overlay.ShowBounds {
					t.Error("expected show_bounds with bounds flag")
				}
			},
		},
		{
			name: "no flags keep defaults",
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Overlay.Capacity != 511 {
					t.Errorf("expected default capacity 511, got %d", cfg.Overlay.Capacity)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := parseArgs(t, tt.args...)
			cfg := Default()
			f.Apply(cfg)
			tt.verify(t, cfg)
		})
	}
}

func parseArgs(t *testing.T, args ...string) *Flags {
	t.Helper()
	var f Flags
	fs := flag.NewFlagSet("overlay", flag.ContinueOnError)
	f.Register(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("failed to parse %v: %v", args, err)
	}
	return &f
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
graphics:
  width: 1600
  height: 900
overlay:
  capacity: 64
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadWith(parseArgs(t, "-config", configPath, "-width", "1920"))
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// width from the flag, the rest from the file
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
	if cfg.Overlay.Capacity != 64 {
		t.Errorf("expected capacity 64 from file, got %d", cfg.Overlay.Capacity)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative capacity", "overlay:\n  capacity: -1\n"},
		{"unknown key", "overlay:\n  capacty: 64\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(configPath, []byte(tt.yaml), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if _, err := LoadWith(parseArgs(t, "-config", configPath)); err == nil {
				t.Error("expected an error, got nil")
			}
		})
	}
}

func TestReadFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	cfg := Default()
	if err := ReadFile(cfg, configPath); err != nil {
		t.Fatalf("empty file should load, got %v", err)
	}
	if cfg.Overlay.Capacity != 511 {
		t.Errorf("expected default capacity, got %d", cfg.Overlay.Capacity)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Overlay.Capacity = 99
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := ReadFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Overlay.Capacity != 99 {
		t.Errorf("expected capacity 99 after reload, got %d", loaded.Overlay.Capacity)
	}
}
