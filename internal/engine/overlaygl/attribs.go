package overlaygl

import (
	"errors"
	"fmt"

	"github.com/Faultbox/midgard-overlay/internal/engine/overlaygl/shaders"
	"github.com/Faultbox/midgard-overlay/pkg/batch"
	"github.com/Faultbox/midgard-overlay/pkg/geometry"
)

// Vertex attribute locations shared by every overlay program. Instance
// channels follow the mesh attributes in layout order.
const (
	locPosition  = 0
	locNormal    = 1
	locTag       = 2
	locInstance0 = 3
)

// Bytes per packed channel element (one Vec4).
const channelStride = 4 * 4

// ErrUnsupportedLayout is returned for layouts without a vertex program.
var ErrUnsupportedLayout = errors.New("unsupported layout")

// vertexSource picks the vertex program for a layout.
func vertexSource(layout *batch.Layout) (string, error) {
	switch layout.Name {
	case batch.ShapeLayout.Name:
		return shaders.ShapeVertexShader, nil
	case batch.VectorLayout.Name:
		return shaders.VectorVertexShader, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnsupportedLayout, layout.Name)
}

// instanceLocations maps each layout channel to its attribute location.
func instanceLocations(layout *batch.Layout) []uint32 {
	locs := make([]uint32, len(layout.Channels))
	for i := range locs {
		locs[i] = uint32(locInstance0 + i)
	}
	return locs
}

// meshAttrib is one interleaved mesh attribute.
type meshAttrib struct {
	loc    uint32
	size   int32
	offset uintptr
}

// meshAttribs describes the Interleave layout of geometry.Mesh.
func meshAttribs() []meshAttrib {
	return []meshAttrib{
		{loc: locPosition, size: 3, offset: 0},
		{loc: locNormal, size: 3, offset: 3 * 4},
		{loc: locTag, size: 4, offset: 6 * 4},
	}
}

const meshStride = geometry.InterleavedStride * 4
