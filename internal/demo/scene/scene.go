// Package scene builds the animated content of the overlay demo.
package scene

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-overlay/internal/engine/overlay"
	"github.com/Faultbox/midgard-overlay/pkg/math"
)

// Scene produces the animated overlay content drawn every frame.
type Scene struct {
	GridSize  int     // cubes per grid side
	Spacing   float32 // distance between grid cells
	Pillars   int     // cylinders on the ring
	FieldSize int     // vectors per field side
}

// DefaultScene returns a scene that spans several batches at the default
// capacity.
func DefaultScene() Scene {
	return Scene{
		GridSize:  24,
		Spacing:   1.5,
		Pillars:   16,
		FieldSize: 12,
	}
}

// Counts returns how many cubes, cylinders and vectors one frame draws.
func (s Scene) Counts() (cubes, cylinders, vectors int) {
	return s.GridSize * s.GridSize, s.Pillars, s.FieldSize * s.FieldSize
}

// Shapes draws the cube grid and the cylinder ring at time t (seconds).
func (s Scene) Shapes(t float32, r *overlay.ShapeRenderer) error {
	half := float32(s.GridSize-1) * s.Spacing / 2
	for z := 0; z < s.GridSize; z++ {
		for x := 0; x < s.GridSize; x++ {
			fx, fz := float32(x)*s.Spacing-half, float32(z)*s.Spacing-half
			wave := math32.Sin(t*1.5 + (fx+fz)*0.25)
			pos := math.Vec3{X: fx, Y: wave, Z: fz}
			size := math.Vec3{X: 1, Y: 1 + 0.5*wave, Z: 1}
			if err := r.DrawCubeSized(pos, size, gridColor(x, z, s.GridSize)); err != nil {
				return err
			}
		}
	}

	radius := half + 3
	for i := 0; i < s.Pillars; i++ {
		angle := float32(i)*2*math32.Pi/float32(s.Pillars) + t*0.2
		base := math.Vec3{X: radius * math32.Cos(angle), Y: -2, Z: radius * math32.Sin(angle)}
		top := base.Add(math.Vec3{Y: 4 + 2*math32.Sin(t+float32(i))})
		if err := r.DrawCylinder(base, top, 0.4, math.ColorYellow); err != nil {
			return err
		}
	}

	if s.GridSize > 0 {
		spin := math.QuatFromAxisAngle(math.Vec3{X: 1, Y: 1}.Normalize(), t)
		return r.DrawCubeRotated(math.Vec3{Y: 6}, spin, math.Vec3{X: 2, Y: 2, Z: 2}, math.ColorWhite)
	}
	return nil
}

// Vectors draws a swirling vector field above the grid.
func (s Scene) Vectors(t float32, r *overlay.VectorRenderer) error {
	half := float32(s.FieldSize - 1)
	for z := 0; z < s.FieldSize; z++ {
		for x := 0; x < s.FieldSize; x++ {
			tail := math.Vec3{X: float32(x)*2 - half, Y: 3, Z: float32(z)*2 - half}
			swirl := math.Vec3{X: -tail.Z, Z: tail.X}.Normalize()
			lift := math.Vec3{Y: 0.5 * math32.Sin(t+tail.X*0.3)}
			head := tail.Add(swirl.Scale(1.5)).Add(lift)
			if err := r.Draw(tail, head, math.ColorGreen); err != nil {
				return err
			}
		}
	}
	// Up axis marker with a thinner shaft.
	return r.DrawRadius(math.Zero3, math.Vec3{Y: 10}, 0.1, math.ColorBlue)
}

func gridColor(x, z, n int) math.Color {
	if n <= 1 {
		return math.ColorRed
	}
	u := float32(x) / float32(n-1)
	v := float32(z) / float32(n-1)
	return math.Color{R: u, G: 0.3, B: v, A: 1}
}
