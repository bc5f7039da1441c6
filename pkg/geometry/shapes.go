package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-overlay/pkg/math"
)

// Default tessellation used by the overlay renderers.
const (
	DefaultCylinderSlices = 24
	DefaultArrowEdges     = 10
)

// Cube returns a unit cube centered at the origin with flat-shaded faces.
func Cube() *Mesh {
	sides := []math.Quat{
		math.QuatIdentity(),
		math.QuatFromAxisAngle(math.Right3, math32.Pi/2),
		math.QuatFromAxisAngle(math.Right3, math32.Pi),
		math.QuatFromAxisAngle(math.Right3, 3*math32.Pi/2),
		math.QuatFromAxisAngle(math.Up3, math32.Pi/2),
		math.QuatFromAxisAngle(math.Up3, 3*math32.Pi/2),
	}
	corners := [4]math.Vec3{
		{X: -0.5, Y: -0.5, Z: -0.5},
		{X: -0.5, Y: 0.5, Z: -0.5},
		{X: 0.5, Y: 0.5, Z: -0.5},
		{X: 0.5, Y: -0.5, Z: -0.5},
	}

	m := &Mesh{Name: "CubeShape"}
	for _, side := range sides {
		base := uint16(len(m.Vertices))
		normal := side.Rotate(math.Vec3{Z: -1})
		for _, c := range corners {
			m.Vertices = append(m.Vertices, side.Rotate(c))
			m.Normals = append(m.Normals, normal)
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// Cylinder returns a unit-height, unit-diameter cylinder along Y, centered
// at the origin.
func Cylinder(slices int) *Mesh {
	if slices < 3 {
		slices = DefaultCylinderSlices
	}

	m := &Mesh{Name: "CylinderShape"}
	m.Vertices = append(m.Vertices,
		math.Vec3{Y: 0.5},         // top center
		math.Vec3{Y: -0.5},        // bottom center
		math.Vec3{X: 0.5, Y: 0.5}, // top rim
		math.Vec3{X: 0.5, Y: -0.5},
		math.Vec3{X: 0.5, Y: 0.5}, // side
		math.Vec3{X: 0.5, Y: -0.5},
	)
	down := math.Vec3{Y: -1}
	m.Normals = append(m.Normals, math.Up3, down, math.Up3, down, math.Right3, math.Right3)

	for i := 0; i < slices; i++ {
		theta := 2 * math32.Pi / float32(slices) * float32(i+1)
		cos, sin := math32.Cos(theta), math32.Sin(theta)

		top := math.Vec3{X: cos * 0.5, Y: 0.5, Z: sin * 0.5}
		bottom := math.Vec3{X: cos * 0.5, Y: -0.5, Z: sin * 0.5}
		normal := math.Vec3{X: cos, Z: sin}

		m.Vertices = append(m.Vertices, top, bottom, top, bottom)
		m.Normals = append(m.Normals, math.Up3, down, normal, normal)

		o := uint16(i * 4)
		m.Indices = append(m.Indices,
			0, 6+o, 2+o,
			1, 3+o, 7+o,
			4+o, 8+o, 5+o,
			5+o, 8+o, 9+o,
		)
	}
	return m
}

// Arrow vertex tags. The vector shader reads the red channel to pick the
// tail radius ring and the green channel to pick the tip position.
var (
	arrowBase   = math.Color{R: 0.5, G: 0, B: 0, A: 1}
	arrowNeck   = math.Color{R: 0.5, G: 1, B: 0, A: 1}
	arrowTip    = math.Color{R: 1, G: 1, B: 0, A: 1}
	arrowCenter = math.ColorBlack
)

// Arrow returns the template vector mesh: a shaft ring at y=0, a neck ring
// at y=-1 and an apex at the origin. The shader moves tagged vertices onto
// the tail, neck and head of each instance.
func Arrow(edges int) *Mesh {
	if edges < 3 {
		edges = DefaultArrowEdges
	}

	m := &Mesh{Name: "VectorShape"}
	add := func(p, n math.Vec3, c math.Color) {
		m.Vertices = append(m.Vertices, p)
		m.Normals = append(m.Normals, n)
		m.Colors = append(m.Colors, c)
	}
	down := math.Vec3{Y: -1}

	add(math.Zero3, down, arrowCenter)

	for i := 0; i < edges; i++ {
		angle := float32(i+1) * 2 * math32.Pi / float32(edges)
		pos := math.Vec3{X: math32.Cos(angle), Z: math32.Sin(angle)}
		neck := pos.Add(down)

		j := uint16((i+1)%edges*7 + 1)
		k := uint16(i*7 + 1)

		add(pos, down, arrowBase) // base cap
		m.Indices = append(m.Indices, 0, j, k)

		add(pos, pos, arrowBase) // shaft
		add(neck, pos, arrowNeck)
		m.Indices = append(m.Indices, j+1, j+2, k+2, j+1, k+2, k+1)

		add(neck, down, arrowNeck) // tip underside
		add(neck, down, arrowTip)
		m.Indices = append(m.Indices, j+3, j+4, k+4, j+3, k+4, k+3)

		add(neck, pos, arrowTip) // cone
		add(math.Zero3, pos.Add(math.Up3).Normalize(), arrowTip)
		m.Indices = append(m.Indices, j+5, j+6, k+5)
	}
	return m
}
