package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/midgard-overlay/pkg/batch"
	"github.com/Faultbox/midgard-overlay/pkg/math"
)

func TestOrbitPosition(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Vec3{X: 1, Y: 2, Z: 3}
	c.RotationX = 0
	c.RotationY = 0
	c.Distance = 10

	p := c.Position()
	assert.InDelta(t, 1, p.X, 1e-5)
	assert.InDelta(t, 2, p.Y, 1e-5)
	assert.InDelta(t, 13, p.Z, 1e-5)
	assert.InDelta(t, 10, p.Distance(c.Center), 1e-4)
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 10000)
	assert.Equal(t, c.MaxPitch, c.RotationX)
	c.HandleDrag(0, -100000)
	assert.Equal(t, c.MinPitch, c.RotationX)
}

func TestHandleZoomClamps(t *testing.T) {
	c := NewOrbitCamera()
	for i := 0; i < 100; i++ {
		c.HandleZoom(1)
	}
	assert.Equal(t, c.MinDistance, c.Distance)
	for i := 0; i < 200; i++ {
		c.HandleZoom(-1)
	}
	assert.Equal(t, c.MaxDistance, c.Distance)
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	b := batch.NewBounds(math.Vec3{X: -0.55, Y: -0.55, Z: -0.55}, math.Vec3{X: 9.55, Y: 0.55, Z: 0.55})
	c.FitToBounds(b)

	assert.InDelta(t, 4.5, c.Center.X, 1e-5)
	want := b.Size().Length() / 2 / math32.Sin(c.FovY/2)
	assert.InDelta(t, want, c.Distance, 1e-3)
}

func TestFitToBoundsIgnoresUndefined(t *testing.T) {
	c := NewOrbitCamera()
	before := *c
	c.FitToBounds(batch.Bounds{})
	assert.Equal(t, before, *c)
}

func TestViewProjectionCentersTarget(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Vec3{X: 5}
	p := c.ViewProjection(16.0 / 9.0).TransformVec3(c.Center)
	assert.InDelta(t, 0, p.X, 1e-4)
	assert.InDelta(t, 0, p.Y, 1e-4)
}
