package overlay

import (
	"errors"
	"fmt"
	"io"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-overlay/internal/config"
	"github.com/Faultbox/midgard-overlay/internal/logger"
	"github.com/Faultbox/midgard-overlay/pkg/batch"
	"github.com/Faultbox/midgard-overlay/pkg/geometry"
	"github.com/Faultbox/midgard-overlay/pkg/math"
)

// shapeBatcher pairs one mesh with the session that batches its instances.
type shapeBatcher struct {
	mesh    *geometry.Mesh
	session *batch.Session[batch.ShapeRecord]
	backend batch.Backend
	bounds  batch.Bounds
}

func newShapeBatcher(mesh *geometry.Mesh, capacity int) *shapeBatcher {
	sb := &shapeBatcher{mesh: mesh}
	sb.session = batch.NewSession[batch.ShapeRecord](batch.ShapeLayout, capacity, nil, func(b batch.Bounds) {
		sb.bounds = b
	})
	return sb
}

// ShapeRenderer draws cubes and cylinders. Both shapes are bracketed by the
// same Begin/End pair.
type ShapeRenderer struct {
	cfg      config.OverlayConfig
	provider Provider
	log      *zap.Logger

	cubes     *shapeBatcher
	cylinders *shapeBatcher
}

// NewShapeRenderer builds the meshes and backends for cfg.
func NewShapeRenderer(cfg config.OverlayConfig, provider Provider) (*ShapeRenderer, error) {
	r := &ShapeRenderer{
		cfg:      cfg,
		provider: provider,
		log:      logger.Named("shapes"),
	}
	if err := r.Configure(cfg); err != nil {
		return nil, err
	}
	return r, nil
}

// Configure rebuilds meshes, backends and batch pools. Call it when shape
// tessellation or capacity changes; it is refused while a frame is open.
func (r *ShapeRenderer) Configure(cfg config.OverlayConfig) error {
	if r.isOpen() {
		return fmt.Errorf("configure shapes: %w", batch.ErrAlreadyOpen)
	}

	fresh := make(map[*shapeBatcher]bool, 2)
	if r.cubes == nil || r.cfg.Capacity != cfg.Capacity {
		r.cubes = r.replace(r.cubes, geometry.Cube(), cfg.Capacity)
		fresh[r.cubes] = true
	}
	if r.cylinders == nil || r.cfg.Capacity != cfg.Capacity || r.cfg.CylinderSlices != cfg.CylinderSlices {
		r.cylinders = r.replace(r.cylinders, geometry.Cylinder(cfg.CylinderSlices), cfg.Capacity)
		fresh[r.cylinders] = true
	}
	r.cfg = cfg

	for _, sb := range []*shapeBatcher{r.cubes, r.cylinders} {
		if needsBackend(sb.backend) {
			sb.backend = resolveBackend(r.log, r.provider, sb.mesh, batch.ShapeLayout, cfg.Capacity)
		}
		sb.session.Pool().SetBackend(sb.backend)
		if fresh[sb] {
			continue
		}
		if err := sb.session.Clear(); err != nil {
			return err
		}
	}

	r.log.Debug("shape renderer configured",
		zap.Int("capacity", cfg.Capacity),
		zap.Int("cylinder_slices", cfg.CylinderSlices),
	)
	return nil
}

// replace builds a batcher for mesh and releases the backend of the one it
// supersedes.
func (r *ShapeRenderer) replace(old *shapeBatcher, mesh *geometry.Mesh, capacity int) *shapeBatcher {
	if old != nil {
		releaseBackend(r.log, old.mesh, old.backend)
	}
	return newShapeBatcher(mesh, capacity)
}

// Close releases the cube and cylinder backends. The renderer draws nothing
// afterwards until the next Configure.
func (r *ShapeRenderer) Close() error {
	if r.isOpen() {
		return fmt.Errorf("close shapes: %w", batch.ErrAlreadyOpen)
	}
	for _, sb := range []*shapeBatcher{r.cubes, r.cylinders} {
		releaseBackend(r.log, sb.mesh, sb.backend)
		sb.backend = nil
		sb.session.Pool().SetBackend(nil)
	}
	return nil
}

func (r *ShapeRenderer) isOpen() bool {
	return r.cubes != nil && r.cubes.session.IsOpen()
}

// Begin opens a frame. Close the returned scope (usually with defer) to end
// it.
func (r *ShapeRenderer) Begin() (*batch.Scope, error) {
	if err := r.cubes.session.Begin(); err != nil {
		return nil, err
	}
	if err := r.cylinders.session.Begin(); err != nil {
		_, _ = r.cubes.session.End()
		return nil, err
	}
	return batch.NewScope(r.End), nil
}

// End closes the frame and submits every batch.
func (r *ShapeRenderer) End() error {
	_, cubeErr := r.cubes.session.End()
	_, cylErr := r.cylinders.session.End()
	return errors.Join(cubeErr, cylErr)
}

// DrawCube draws a unit cube.
func (r *ShapeRenderer) DrawCube(position math.Vec3, color math.Color) error {
	return r.DrawCubeRotated(position, math.QuatIdentity(), math.One3, color)
}

// DrawCubeSized draws an axis-aligned box.
func (r *ShapeRenderer) DrawCubeSized(position, size math.Vec3, color math.Color) error {
	return r.DrawCubeRotated(position, math.QuatIdentity(), size, color)
}

// DrawCubeRotated draws an oriented box.
func (r *ShapeRenderer) DrawCubeRotated(position math.Vec3, rotation math.Quat, size math.Vec3, color math.Color) error {
	return r.cubes.session.Draw(batch.ShapeRecord{
		Position: position,
		Rotation: rotation,
		Scale:    size,
		Color:    color,
	})
}

// DrawCylinder draws a cylinder of the given radius from tail to head.
func (r *ShapeRenderer) DrawCylinder(tail, head math.Vec3, radius float32, color math.Color) error {
	return r.cylinders.session.Draw(CylinderRecord(tail, head, radius, color))
}

// CylinderRecord places the unit Y-aligned cylinder between tail and head.
func CylinderRecord(tail, head math.Vec3, radius float32, color math.Color) batch.ShapeRecord {
	dir := head.Sub(tail)
	// The mesh runs along +Y; tip it onto +Z before looking along dir.
	rot := math.QuatLookRotation(dir, math.Up3).
		Mul(math.QuatFromAxisAngle(math.Right3, math32.Pi/2))
	return batch.ShapeRecord{
		Position: head.Add(tail).Scale(0.5),
		Rotation: rot,
		Scale:    math.Vec3{X: radius * 2, Y: dir.Length(), Z: radius * 2},
		Color:    color,
	}
}

// CubeBounds returns the last published bounds of the cube batches.
func (r *ShapeRenderer) CubeBounds() batch.Bounds { return r.cubes.bounds }

// CylinderBounds returns the last published bounds of the cylinder batches.
func (r *ShapeRenderer) CylinderBounds() batch.Bounds { return r.cylinders.bounds }

// Bounds returns the union of cube and cylinder bounds.
func (r *ShapeRenderer) Bounds() batch.Bounds {
	return r.cubes.bounds.Union(r.cylinders.bounds)
}

// Len returns the number of shapes drawn in the last frame.
func (r *ShapeRenderer) Len() int {
	return r.cubes.session.Pool().Len() + r.cylinders.session.Pool().Len()
}

// needsBackend reports whether a batcher has no working backend yet. A
// failed provider is retried on every Configure.
func needsBackend(b batch.Backend) bool {
	return b == nil || b == batch.NopBackend
}

// resolveBackend asks the provider for a backend and falls back to the no-op
// backend, logging the failure once per mesh.
func resolveBackend(log *zap.Logger, p Provider, mesh *geometry.Mesh, layout *batch.Layout, capacity int) batch.Backend {
	if p == nil {
		return batch.NopBackend
	}
	backend, err := p.Backend(mesh, layout, capacity)
	if err != nil {
		logger.WarnOnce("overlay-backend:"+mesh.Name, "overlay backend unavailable, drawing disabled",
			zap.String("mesh", mesh.Name),
			zap.String("layout", layout.Name),
			zap.Error(err),
		)
		return batch.NopBackend
	}
	log.Debug("overlay backend ready", zap.String("mesh", mesh.Name))
	return backend
}

// releaseBackend closes a backend that owns resources. Plain backends and
// the no-op backend are left alone.
func releaseBackend(log *zap.Logger, mesh *geometry.Mesh, b batch.Backend) {
	c, ok := b.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		log.Warn("failed to release overlay backend",
			zap.String("mesh", mesh.Name),
			zap.Error(err),
		)
	}
}
