// Package demo runs the overlay showcase: an SDL window with an animated
// cube grid, cylinder ring and vector field drawn through the batch engine.
package demo

import (
	"errors"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-overlay/internal/config"
	"github.com/Faultbox/midgard-overlay/internal/demo/scene"
	"github.com/Faultbox/midgard-overlay/internal/engine/camera"
	"github.com/Faultbox/midgard-overlay/internal/engine/debug"
	"github.com/Faultbox/midgard-overlay/internal/engine/input"
	"github.com/Faultbox/midgard-overlay/internal/engine/overlay"
	"github.com/Faultbox/midgard-overlay/internal/engine/overlaygl"
	"github.com/Faultbox/midgard-overlay/internal/engine/window"
	"github.com/Faultbox/midgard-overlay/internal/logger"
	"github.com/Faultbox/midgard-overlay/pkg/math"
)

// Title is the window title prefix.
const Title = "Midgard Overlay"

// App is the demo instance.
type App struct {
	cfg     *config.Config
	running bool
	paused  bool
	capture bool

	window   *window.Window
	renderer *overlaygl.Renderer
	bounds   *overlaygl.BoundsRenderer
	input    *input.Input
	camera   *camera.OrbitCamera
	shots    *debug.Screenshots

	shapes  *overlay.ShapeRenderer
	vectors *overlay.VectorRenderer
	scene   scene.Scene
}

// New creates the window, GL renderer and overlay renderers.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing overlay demo",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int("capacity", cfg.Overlay.Capacity),
	)

	a := &App{
		cfg:    cfg,
		input:  input.New(),
		camera: camera.NewOrbitCamera(),
		shots:  debug.NewScreenshots("screenshots", "overlay"),
		scene:  scene.DefaultScene(),
	}

	var err error
	a.window, err = window.New(window.FromGraphics(Title, cfg.Graphics))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window just created.
	width, height := a.window.GetSize()
	a.renderer, err = overlaygl.New(overlaygl.Config{Width: width, Height: height})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.bounds, err = a.renderer.NewBoundsRenderer()
	if err != nil {
		// Bounds display is optional.
		logger.Warn("bounds display unavailable", zap.Error(err))
	}

	a.shapes, err = overlay.NewShapeRenderer(cfg.Overlay, a.renderer)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create shape renderer: %w", err)
	}
	a.vectors, err = overlay.NewVectorRenderer(cfg.Overlay, a.renderer)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create vector renderer: %w", err)
	}

	cubes, cylinders, vectors := a.scene.Counts()
	logger.Info("overlay demo initialized",
		zap.Int("cubes", cubes),
		zap.Int("cylinders", cylinders),
		zap.Int("vectors", vectors),
	)
	return a, nil
}

// Run starts the main loop.
func (a *App) Run() error {
	a.running = true

	start := time.Now()
	var sceneTime float32
	lastTime := start
	frameCount := 0
	fpsTimer := start

	logger.Info("starting demo loop")

	for a.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}
		if err := a.handleEvents(); err != nil {
			return err
		}

		if !a.paused {
			sceneTime += dt
		}
		if err := a.render(sceneTime); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		if a.capture {
			a.capture = false
			a.screenshot()
		}
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			stats := a.renderer.Stats()
			a.window.SetTitle(fmt.Sprintf("%s - %d fps, %d draws, %d uploads",
				Title, frameCount, stats.DrawCalls, stats.Uploads))
			logger.Debug("frame stats",
				zap.Int("fps", frameCount),
				zap.Int("draw_calls", stats.DrawCalls),
				zap.Int("instances", stats.Instances),
				zap.Int("uploads", stats.Uploads),
				zap.Int("shapes", a.shapes.Len()),
				zap.Int("vectors", a.vectors.Len()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handleEvents() error {
	for _, event := range a.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			width, height := a.window.GetSize()
			a.renderer.Resize(width, height)
		case input.EventDrag:
			a.camera.HandleDrag(event.DX, event.DY)
		case input.EventWheel:
			a.camera.HandleZoom(event.DY)
		case input.EventKeyDown:
			if err := a.handleKey(event.Key); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *App) handleKey(key sdl.Scancode) error {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		a.running = false
	case sdl.SCANCODE_SPACE:
		a.paused = !a.paused
	case sdl.SCANCODE_B:
		a.cfg.Overlay.ShowBounds = !a.cfg.Overlay.ShowBounds
	case sdl.SCANCODE_F12:
		a.capture = true
	case sdl.SCANCODE_F:
		a.camera.FitToBounds(a.shapes.Bounds().Union(a.vectors.Bounds()))
	case sdl.SCANCODE_EQUALS:
		return a.setCapacity(a.cfg.Overlay.Capacity * 2)
	case sdl.SCANCODE_MINUS:
		return a.setCapacity(a.cfg.Overlay.Capacity / 2)
	}
	return nil
}

// setCapacity reconfigures both overlay renderers between frames.
func (a *App) setCapacity(capacity int) error {
	if capacity < 1 {
		capacity = 1
	}
	a.cfg.Overlay.Capacity = capacity
	if err := a.shapes.Configure(a.cfg.Overlay); err != nil {
		return fmt.Errorf("reconfigure shapes: %w", err)
	}
	if err := a.vectors.Configure(a.cfg.Overlay); err != nil {
		return fmt.Errorf("reconfigure vectors: %w", err)
	}
	logger.Info("overlay capacity changed", zap.Int("capacity", capacity))
	return nil
}

// render draws one frame. Instanced draws are issued as each overlay ends,
// so the bounds drawn afterwards belong to this frame.
func (a *App) render(t float32) error {
	a.renderer.BeginFrame()
	a.renderer.SetCamera(a.camera.ViewProjection(a.renderer.Aspect()))

	if err := a.drawShapes(t); err != nil {
		return err
	}
	if err := a.drawVectors(t); err != nil {
		return err
	}
	a.drawBounds()
	return nil
}

func (a *App) drawShapes(t float32) (err error) {
	scope, err := a.shapes.Begin()
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, scope.Close()) }()
	return a.scene.Shapes(t, a.shapes)
}

func (a *App) drawVectors(t float32) (err error) {
	scope, err := a.vectors.Begin()
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, scope.Close()) }()
	return a.scene.Vectors(t, a.vectors)
}

func (a *App) drawBounds() {
	if a.bounds == nil || !a.cfg.Overlay.ShowBounds {
		return
	}
	a.bounds.Draw(a.shapes.CubeBounds(), math.ColorRed)
	a.bounds.Draw(a.shapes.CylinderBounds(), math.ColorYellow)
	a.bounds.Draw(a.vectors.Bounds(), math.ColorGreen)
}

func (a *App) screenshot() {
	pixels, width, height := a.renderer.ReadPixels()
	path, err := a.shots.Save(pixels, width, height)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close cleans up demo resources.
func (a *App) Close() {
	logger.Info("closing overlay demo")

	if a.shapes != nil {
		if err := a.shapes.Close(); err != nil {
			logger.Warn("failed to release shape backends", zap.Error(err))
		}
	}
	if a.vectors != nil {
		if err := a.vectors.Close(); err != nil {
			logger.Warn("failed to release vector backends", zap.Error(err))
		}
	}
	if a.bounds != nil {
		a.bounds.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
