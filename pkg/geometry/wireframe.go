package geometry

import "github.com/Faultbox/midgard-overlay/pkg/math"

// WireframeVertexCount is the number of vertices for a box wireframe (12 edges × 2).
const WireframeVertexCount = 24

// BoxWireframe creates line vertices for a wireframe box.
// Returns 24 vertices (12 edges × 2 endpoints), format: [x, y, z] per vertex.
func BoxWireframe(min, max math.Vec3) []float32 {
	minX, minY, minZ := min.X, min.Y, min.Z
	maxX, maxY, maxZ := max.X, max.Y, max.Z
	return []float32{
		// Bottom face (4 edges)
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face (4 edges)
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges (4 edges)
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// PaddedBoxWireframe expands the box by padding on all sides before
// generating its wireframe. Swapped corners are normalized first.
func PaddedBoxWireframe(min, max math.Vec3, padding float32) []float32 {
	lo, hi := min.Min(max), min.Max(max)
	pad := math.Vec3{X: padding, Y: padding, Z: padding}
	return BoxWireframe(lo.Sub(pad), hi.Add(pad))
}
