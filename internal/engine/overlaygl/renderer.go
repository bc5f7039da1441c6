// Package overlaygl draws overlay batches with OpenGL 4.1 instancing.
package overlaygl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-overlay/internal/engine/overlaygl/shaders"
	"github.com/Faultbox/midgard-overlay/internal/engine/shader"
	"github.com/Faultbox/midgard-overlay/internal/logger"
	"github.com/Faultbox/midgard-overlay/pkg/batch"
	"github.com/Faultbox/midgard-overlay/pkg/geometry"
	"github.com/Faultbox/midgard-overlay/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Stats counts GPU work since the last BeginFrame.
type Stats struct {
	DrawCalls int
	Instances int
	Uploads   int
}

// Renderer owns the GL state for overlay drawing. It implements
// overlay.Provider: every request gets a fresh instanced backend owned by the
// caller. Only compiled programs are shared.
type Renderer struct {
	config Config
	log    *zap.Logger

	programs map[string]*shader.Program
	backends map[*MeshBackend]struct{}

	viewProj math.Mat4
	lightDir math.Vec3
	stats    Stats
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		log:      logger.Named("overlaygl"),
		programs: make(map[string]*shader.Program),
		backends: make(map[*MeshBackend]struct{}),
		viewProj: math.Identity(),
		lightDir: math.Vec3{X: -0.4, Y: -1, Z: -0.3}.Normalize(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	return r, nil
}

// Close releases every backend that was not closed by its owner, then the
// programs.
func (r *Renderer) Close() {
	r.log.Info("closing overlay renderer", zap.Int("backends", len(r.backends)))
	for b := range r.backends {
		b.release()
	}
	clear(r.backends)
	for name, p := range r.programs {
		p.Delete()
		delete(r.programs, name)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// BeginFrame clears the framebuffer and resets stats.
func (r *Renderer) BeginFrame() {
	r.stats = Stats{}
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SetCamera sets the view-projection used by the following submissions.
func (r *Renderer) SetCamera(viewProj math.Mat4) {
	r.viewProj = viewProj
}

// SetLightDirection sets the directional light used for shading.
func (r *Renderer) SetLightDirection(dir math.Vec3) {
	r.lightDir = dir.Normalize()
}

// Stats returns counters for the current frame.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Backend implements overlay.Provider. The returned backend belongs to the
// caller, which releases it with Close.
func (r *Renderer) Backend(mesh *geometry.Mesh, layout *batch.Layout, capacity int) (batch.Backend, error) {
	prog, err := r.program(layout)
	if err != nil {
		return nil, err
	}

	b, err := newMeshBackend(r, prog, mesh, layout, capacity)
	if err != nil {
		return nil, err
	}
	r.backends[b] = struct{}{}

	r.log.Debug("mesh backend created",
		zap.String("mesh", mesh.Name),
		zap.String("layout", layout.Name),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("capacity", capacity),
		zap.Int("live", len(r.backends)),
	)
	return b, nil
}

// Backends returns the number of live mesh backends.
func (r *Renderer) Backends() int {
	return len(r.backends)
}

func (r *Renderer) program(layout *batch.Layout) (*shader.Program, error) {
	if p, ok := r.programs[layout.Name]; ok {
		return p, nil
	}
	vert, err := vertexSource(layout)
	if err != nil {
		return nil, err
	}
	p, err := shader.Build(layout.Name, vert, shaders.OverlayFragmentShader, "uViewProj", "uLightDir")
	if err != nil {
		return nil, err
	}
	r.programs[layout.Name] = p
	return p, nil
}

// ReadPixels reads the back buffer as bottom-up RGBA bytes.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	width, height := r.config.Width, r.config.Height
	pixels := make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels, width, height
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}
