package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-overlay/pkg/math"
)

func checkIndices(t *testing.T, m *Mesh) {
	t.Helper()
	require.Zero(t, len(m.Indices)%3, "%s: index count not a multiple of 3", m.Name)
	for i, idx := range m.Indices {
		require.Less(t, int(idx), m.VertexCount(), "%s: index %d out of range", m.Name, i)
	}
	require.Len(t, m.Normals, m.VertexCount())
}

func TestCube(t *testing.T) {
	m := Cube()
	checkIndices(t, m)
	assert.Equal(t, 24, m.VertexCount())
	assert.Len(t, m.Indices, 36)

	min, max := m.Extent()
	assert.InDelta(t, -0.5, min.X, 1e-5)
	assert.InDelta(t, -0.5, min.Y, 1e-5)
	assert.InDelta(t, -0.5, min.Z, 1e-5)
	assert.InDelta(t, 0.5, max.X, 1e-5)
	assert.InDelta(t, 0.5, max.Y, 1e-5)
	assert.InDelta(t, 0.5, max.Z, 1e-5)

	for _, n := range m.Normals {
		assert.InDelta(t, 1, n.Length(), 1e-5)
	}
}

func TestCylinder(t *testing.T) {
	for _, slices := range []int{3, 8, DefaultCylinderSlices} {
		m := Cylinder(slices)
		checkIndices(t, m)
		assert.Equal(t, 6+4*slices, m.VertexCount())
		assert.Len(t, m.Indices, 12*slices)

		min, max := m.Extent()
		assert.InDelta(t, -0.5, min.Y, 1e-5)
		assert.InDelta(t, 0.5, max.Y, 1e-5)
		assert.LessOrEqual(t, max.X, float32(0.5001))
	}

	assert.Equal(t, Cylinder(DefaultCylinderSlices).VertexCount(), Cylinder(0).VertexCount())
}

func TestArrow(t *testing.T) {
	m := Arrow(DefaultArrowEdges)
	checkIndices(t, m)
	assert.Equal(t, 1+7*DefaultArrowEdges, m.VertexCount())
	assert.Len(t, m.Colors, m.VertexCount())
	assert.Len(t, m.Indices, 18*DefaultArrowEdges)

	min, max := m.Extent()
	assert.InDelta(t, -1, min.Y, 1e-5)
	assert.InDelta(t, 0, max.Y, 1e-5)
}

func TestInterleave(t *testing.T) {
	m := Cube()
	data := m.Interleave()
	require.Len(t, data, m.VertexCount()*InterleavedStride)

	// cube has no vertex colors, so every vertex is white
	for i := 0; i < m.VertexCount(); i++ {
		rgba := data[i*InterleavedStride+6 : i*InterleavedStride+10]
		assert.Equal(t, []float32{1, 1, 1, 1}, rgba)
	}
}

func TestBoxWireframe(t *testing.T) {
	v := BoxWireframe(math.Vec3{X: -1, Y: -2, Z: -3}, math.Vec3{X: 1, Y: 2, Z: 3})
	require.Len(t, v, WireframeVertexCount*3)
	assert.Equal(t, []float32{-1, -2, -3, 1, -2, -3}, v[:6])
}

func TestPaddedBoxWireframe(t *testing.T) {
	// corners given in the wrong order are normalized
	v := PaddedBoxWireframe(math.Vec3{X: 1, Y: 1, Z: 1}, math.Vec3{}, 0.5)
	require.Len(t, v, WireframeVertexCount*3)
	assert.Equal(t, []float32{-0.5, -0.5, -0.5, 1.5, -0.5, -0.5}, v[:6])
}
