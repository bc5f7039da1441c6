// Package config handles overlay configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all overlay settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Overlay  OverlayConfig  `yaml:"overlay"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings for the demo window.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// OverlayConfig holds batching and shape settings.
type OverlayConfig struct {
	Capacity       int     `yaml:"capacity"`        // Instances per batch
	VectorRadius   float32 `yaml:"vector_radius"`   // Default arrow radius
	TipHeight      float32 `yaml:"tip_height"`      // Default arrow tip length
	CylinderSlices int     `yaml:"cylinder_slices"` // Cylinder tessellation
	ArrowEdges     int     `yaml:"arrow_edges"`     // Arrow tessellation
	ShowBounds     bool    `yaml:"show_bounds"`     // Draw aggregated bounds as a wireframe
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Overlay: OverlayConfig{
			Capacity:       511,
			VectorRadius:   0.3,
			TipHeight:      0.7,
			CylinderSlices: 24,
			ArrowEdges:     10,
			ShowBounds:     false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values that would break batching or mesh generation.
func (c *Config) Validate() error {
	var errs []error
	if c.Overlay.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("overlay.capacity must be positive, got %d", c.Overlay.Capacity))
	}
	if c.Overlay.CylinderSlices < 3 {
		errs = append(errs, fmt.Errorf("overlay.cylinder_slices must be at least 3, got %d", c.Overlay.CylinderSlices))
	}
	if c.Overlay.ArrowEdges < 3 {
		errs = append(errs, fmt.Errorf("overlay.arrow_edges must be at least 3, got %d", c.Overlay.ArrowEdges))
	}
	if c.Overlay.VectorRadius < 0 || c.Overlay.VectorRadius > 1 {
		errs = append(errs, fmt.Errorf("overlay.vector_radius must be in [0, 1], got %v", c.Overlay.VectorRadius))
	}
	if c.Overlay.TipHeight < 0 || c.Overlay.TipHeight > 1 {
		errs = append(errs, fmt.Errorf("overlay.tip_height must be in [0, 1], got %v", c.Overlay.TipHeight))
	}
	return errors.Join(errs...)
}
