package config

import (
	"flag"
	"os"
)

// Flags are the command-line overrides. Zero values leave the config alone.
type Flags struct {
	Config     string
	Debug      bool
	Windowed   bool
	Fullscreen bool
	Width      int
	Height     int
	Capacity   int
	Bounds     bool
}

var cmdline Flags

// Register binds the flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&f.Windowed, "windowed", false, "Run in windowed mode")
	fs.BoolVar(&f.Fullscreen, "fullscreen", false, "Run in fullscreen mode")
	fs.IntVar(&f.Width, "width", 0, "Window width")
	fs.IntVar(&f.Height, "height", 0, "Window height")
	fs.IntVar(&f.Capacity, "capacity", 0, "Instances per overlay batch")
	fs.BoolVar(&f.Bounds, "bounds", false, "Draw overlay bounds")
}

// ParseFlags parses the process command line into the flags Load uses.
// Call this early in main().
func ParseFlags() {
	cmdline.Register(flag.CommandLine)
	_ = flag.CommandLine.Parse(os.Args[1:])
}

// Apply writes the overrides into cfg. Windowed wins over fullscreen.
func (f *Flags) Apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Fullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if f.Windowed {
		cfg.Graphics.Fullscreen = false
	}
	if f.Width > 0 {
		cfg.Graphics.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Graphics.Height = f.Height
	}
	if f.Capacity > 0 {
		cfg.Overlay.Capacity = f.Capacity
	}
	if f.Bounds {
		cfg.Overlay.ShowBounds = true
	}
}
