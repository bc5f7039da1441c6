package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-overlay/internal/config"
	"github.com/Faultbox/midgard-overlay/internal/demo/scene"
	"github.com/Faultbox/midgard-overlay/internal/engine/camera"
	"github.com/Faultbox/midgard-overlay/internal/engine/debug"
	"github.com/Faultbox/midgard-overlay/internal/engine/framebuffer"
	"github.com/Faultbox/midgard-overlay/internal/engine/overlay"
	"github.com/Faultbox/midgard-overlay/internal/engine/overlaygl"
	"github.com/Faultbox/midgard-overlay/internal/engine/ui"
	"github.com/Faultbox/midgard-overlay/internal/logger"
)

const controlsWidth = 340

// App represents the inspector application state.
type App struct {
	cfg     *config.Config
	backend *ui.Backend

	renderer *overlaygl.Renderer
	bounds   *overlaygl.BoundsRenderer
	target   *framebuffer.Target
	camera   *camera.OrbitCamera
	shots    *debug.Screenshots

	shapes  *overlay.ShapeRenderer
	vectors *overlay.VectorRenderer
	scene   scene.Scene

	// Slider state mirrors the config until applied.
	capacity int32
	slices   int32
	edges    int32
	grid     int32

	paused       bool
	sceneTime    float32
	lastFrame    time.Time
	lastMousePos imgui.Vec2
	status       string

	// Written by the save dialog goroutine, consumed on the main thread.
	mu          sync.Mutex
	pendingSave string
}

// NewApp creates the ImGui window and the overlay pipeline.
func NewApp(cfg *config.Config) (*App, error) {
	app := &App{
		cfg:       cfg,
		camera:    camera.NewOrbitCamera(),
		shots:     debug.NewScreenshots("screenshots", "inspector"),
		scene:     scene.DefaultScene(),
		capacity:  int32(cfg.Overlay.Capacity),
		slices:    int32(cfg.Overlay.CylinderSlices),
		edges:     int32(cfg.Overlay.ArrowEdges),
		lastFrame: time.Now(),
	}
	app.grid = int32(app.scene.GridSize)

	var err error
	app.backend, err = ui.NewBackend("Overlay Inspector", cfg.Graphics.Width, cfg.Graphics.Height)
	if err != nil {
		return nil, err
	}

	app.renderer, err = overlaygl.New(overlaygl.Config{Width: 1, Height: 1})
	if err != nil {
		return nil, err
	}
	app.bounds, err = app.renderer.NewBoundsRenderer()
	if err != nil {
		logger.Warn("bounds display unavailable", zap.Error(err))
	}
	app.target, err = framebuffer.New(1, 1)
	if err != nil {
		return nil, err
	}

	app.shapes, err = overlay.NewShapeRenderer(cfg.Overlay, app.renderer)
	if err != nil {
		return nil, err
	}
	app.vectors, err = overlay.NewVectorRenderer(cfg.Overlay, app.renderer)
	if err != nil {
		return nil, err
	}

	logger.Info("inspector initialized", zap.Int("capacity", cfg.Overlay.Capacity))
	return app, nil
}

// Run starts the main application loop.
func (app *App) Run() {
	app.backend.Run(app.render)
}

// Close releases GL resources.
func (app *App) Close() {
	if app.target != nil {
		app.target.Destroy()
	}
	if app.shapes != nil {
		if err := app.shapes.Close(); err != nil {
			logger.Warn("failed to release shape backends", zap.Error(err))
		}
	}
	if app.vectors != nil {
		if err := app.vectors.Close(); err != nil {
			logger.Warn("failed to release vector backends", zap.Error(err))
		}
	}
	if app.bounds != nil {
		app.bounds.Close()
	}
	if app.renderer != nil {
		app.renderer.Close()
	}
}

func (app *App) render() {
	now := time.Now()
	if !app.paused {
		app.sceneTime += float32(now.Sub(app.lastFrame).Seconds())
	}
	app.lastFrame = now

	app.processPendingSave()

	if ui.IsKeyPressed(imgui.KeySpace) && !imgui.IsAnyItemActive() {
		app.paused = !app.paused
	}

	x, y, width, height := ui.Viewport()
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(width-controlsWidth, height))
	if imgui.BeginV("Viewport", nil, flags|imgui.WindowFlagsNoScrollbar) {
		app.renderViewport()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(x+width-controlsWidth, y))
	imgui.SetNextWindowSize(imgui.NewVec2(controlsWidth, height))
	if imgui.BeginV("Controls", nil, flags) {
		app.renderControls()
		imgui.Separator()
		app.renderStats()
	}
	imgui.End()
}

// renderViewport draws the overlay into the offscreen target and shows it.
func (app *App) renderViewport() {
	avail := imgui.ContentRegionAvail()
	if app.target.Resize(int32(avail.X), int32(avail.Y)) {
		w, h := app.target.Size()
		app.renderer.Resize(int(w), int(h))
	}

	if err := app.drawOverlay(); err != nil {
		app.setStatus("draw failed: %v", err)
		logger.Error("overlay draw failed", zap.Error(err))
	}

	ui.Image(app.target.Texture(), avail.X, avail.Y)

	if imgui.IsItemHovered() {
		mousePos := imgui.MousePos()
		if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
			app.camera.HandleDrag(mousePos.X-app.lastMousePos.X, mousePos.Y-app.lastMousePos.Y)
		}
		app.lastMousePos = mousePos

		if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
			app.camera.HandleZoom(wheel)
		}
	}
}

func (app *App) drawOverlay() error {
	restore := app.target.Begin()
	defer restore()

	app.renderer.BeginFrame()
	app.renderer.SetCamera(app.camera.ViewProjection(app.renderer.Aspect()))

	shapes, err := app.shapes.Begin()
	if err != nil {
		return err
	}
	err = app.scene.Shapes(app.sceneTime, app.shapes)
	if cerr := shapes.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	vectors, err := app.vectors.Begin()
	if err != nil {
		return err
	}
	err = app.scene.Vectors(app.sceneTime, app.vectors)
	if cerr := vectors.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	if app.bounds != nil && app.cfg.Overlay.ShowBounds {
		for _, s := range app.shapes.Stats() {
			app.bounds.Draw(s.Bounds, boundsColor(s.Name))
		}
		app.bounds.Draw(app.vectors.Bounds(), boundsColor("VectorShape"))
	}
	return nil
}

// applyOverlay pushes the overlay config into both renderers.
func (app *App) applyOverlay() {
	app.cfg.Overlay.Capacity = int(app.capacity)
	app.cfg.Overlay.CylinderSlices = int(app.slices)
	app.cfg.Overlay.ArrowEdges = int(app.edges)

	if err := app.cfg.Validate(); err != nil {
		app.setStatus("invalid settings: %v", err)
		return
	}
	if err := app.shapes.Configure(app.cfg.Overlay); err != nil {
		app.setStatus("configure shapes: %v", err)
		return
	}
	if err := app.vectors.Configure(app.cfg.Overlay); err != nil {
		app.setStatus("configure vectors: %v", err)
		return
	}
	logger.Debug("overlay reconfigured",
		zap.Int("capacity", app.cfg.Overlay.Capacity),
		zap.Int("cylinder_slices", app.cfg.Overlay.CylinderSlices),
		zap.Int("arrow_edges", app.cfg.Overlay.ArrowEdges),
	)
}

func (app *App) screenshot() {
	pixels, width, height := app.target.ReadPixels()
	path, err := app.shots.Save(pixels, width, height)
	if err != nil {
		app.setStatus("screenshot failed: %v", err)
		return
	}
	app.setStatus("saved %s", path)
}

// saveConfigDialog asks for a path off the main thread; the write happens
// in processPendingSave.
func (app *App) saveConfigDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("YAML", "yaml", "yml").
			Title("Save Overlay Config").
			Save()
		if err != nil {
			if err != dialog.ErrCancelled {
				logger.Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		app.mu.Lock()
		app.pendingSave = filename
		app.mu.Unlock()
	}()
}

func (app *App) processPendingSave() {
	app.mu.Lock()
	path := app.pendingSave
	app.pendingSave = ""
	app.mu.Unlock()

	if path == "" {
		return
	}
	if err := app.cfg.SaveTo(path); err != nil {
		app.setStatus("save failed: %v", err)
		return
	}
	app.setStatus("config saved to %s", path)
}

func (app *App) setStatus(format string, args ...any) {
	app.status = fmt.Sprintf(format, args...)
	logger.Info(app.status)
}
