package overlay

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-overlay/internal/config"
	"github.com/Faultbox/midgard-overlay/internal/logger"
	"github.com/Faultbox/midgard-overlay/pkg/batch"
	"github.com/Faultbox/midgard-overlay/pkg/geometry"
	"github.com/Faultbox/midgard-overlay/pkg/math"
)

// VectorRenderer draws arrows from a tail point to a head point.
type VectorRenderer struct {
	cfg      config.OverlayConfig
	provider Provider
	log      *zap.Logger

	mesh    *geometry.Mesh
	session *batch.Session[batch.VectorRecord]
	backend batch.Backend
	bounds  batch.Bounds
}

// NewVectorRenderer builds the arrow mesh and backend for cfg.
func NewVectorRenderer(cfg config.OverlayConfig, provider Provider) (*VectorRenderer, error) {
	r := &VectorRenderer{
		provider: provider,
		log:      logger.Named("vectors"),
	}
	if err := r.Configure(cfg); err != nil {
		return nil, err
	}
	return r, nil
}

// Configure rebuilds the arrow mesh, backend and batch pool.
func (r *VectorRenderer) Configure(cfg config.OverlayConfig) error {
	if r.session != nil && r.session.IsOpen() {
		return fmt.Errorf("configure vectors: %w", batch.ErrAlreadyOpen)
	}

	fresh := r.session == nil || r.cfg.Capacity != cfg.Capacity || r.cfg.ArrowEdges != cfg.ArrowEdges
	if fresh {
		if r.session != nil {
			releaseBackend(r.log, r.mesh, r.backend)
		}
		r.mesh = geometry.Arrow(cfg.ArrowEdges)
		r.session = batch.NewSession[batch.VectorRecord](batch.VectorLayout, cfg.Capacity, nil, func(b batch.Bounds) {
			r.bounds = b
		})
		r.backend = nil
	}
	r.cfg = cfg

	if needsBackend(r.backend) {
		r.backend = resolveBackend(r.log, r.provider, r.mesh, batch.VectorLayout, cfg.Capacity)
	}
	r.session.Pool().SetBackend(r.backend)
	if !fresh {
		if err := r.session.Clear(); err != nil {
			return err
		}
	}

	r.log.Debug("vector renderer configured",
		zap.Int("capacity", cfg.Capacity),
		zap.Int("arrow_edges", cfg.ArrowEdges),
		zap.Float32("radius", cfg.VectorRadius),
		zap.Float32("tip_height", cfg.TipHeight),
	)
	return nil
}

// Close releases the arrow backend. The renderer draws nothing afterwards
// until the next Configure.
func (r *VectorRenderer) Close() error {
	if r.session.IsOpen() {
		return fmt.Errorf("close vectors: %w", batch.ErrAlreadyOpen)
	}
	releaseBackend(r.log, r.mesh, r.backend)
	r.backend = nil
	r.session.Pool().SetBackend(nil)
	return nil
}

// Begin opens a frame. Close the returned scope to end it.
func (r *VectorRenderer) Begin() (*batch.Scope, error) {
	return r.session.Acquire()
}

// End closes the frame and submits every batch.
func (r *VectorRenderer) End() error {
	_, err := r.session.End()
	return err
}

// Draw draws a vector with the configured radius and tip height.
func (r *VectorRenderer) Draw(tail, head math.Vec3, color math.Color) error {
	return r.DrawTip(tail, head, r.cfg.VectorRadius, r.cfg.TipHeight, color)
}

// DrawRadius draws a vector with a custom shaft radius.
func (r *VectorRenderer) DrawRadius(tail, head math.Vec3, radius float32, color math.Color) error {
	return r.DrawTip(tail, head, radius, r.cfg.TipHeight, color)
}

// DrawTip draws a vector with a custom radius and tip height.
func (r *VectorRenderer) DrawTip(tail, head math.Vec3, radius, tipHeight float32, color math.Color) error {
	return r.session.Draw(batch.VectorRecord{
		Tail:      tail,
		Head:      head,
		Radius:    radius,
		TipLength: tipHeight,
		Color:     color,
	})
}

// Len returns the number of vectors drawn in the last frame.
func (r *VectorRenderer) Len() int {
	return r.session.Pool().Len()
}

// Bounds returns the last published bounds.
func (r *VectorRenderer) Bounds() batch.Bounds { return r.bounds }
