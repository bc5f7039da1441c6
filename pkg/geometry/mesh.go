// Package geometry generates the unit meshes drawn by overlay batches.
//
// Every mesh is built once at configuration time; per-instance placement is
// done in the vertex shader from the batch attribute channels.
package geometry

import "github.com/Faultbox/midgard-overlay/pkg/math"

// Mesh is an indexed triangle list.
type Mesh struct {
	Name     string
	Vertices []math.Vec3
	Normals  []math.Vec3
	// Colors is optional. The arrow mesh uses it to tag which end of the
	// vector a vertex follows.
	Colors  []math.Color
	Indices []uint16
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Interleave returns position, normal and color per vertex as a flat slice
// ready for a vertex buffer (10 floats per vertex). Missing colors are white.
func (m *Mesh) Interleave() []float32 {
	out := make([]float32, 0, len(m.Vertices)*InterleavedStride)
	for i, v := range m.Vertices {
		n := m.Normals[i]
		c := math.ColorWhite
		if i < len(m.Colors) {
			c = m.Colors[i]
		}
		out = append(out, v.X, v.Y, v.Z, n.X, n.Y, n.Z, c.R, c.G, c.B, c.A)
	}
	return out
}

// InterleavedStride is the number of floats per vertex from Interleave.
const InterleavedStride = 10

// Extent returns the min and max corners of the vertex positions.
func (m *Mesh) Extent() (min, max math.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	min, max = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		min = min.Min(v)
		max = max.Max(v)
	}
	return min, max
}
