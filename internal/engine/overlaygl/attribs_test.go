package overlaygl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-overlay/internal/engine/overlaygl/shaders"
	"github.com/Faultbox/midgard-overlay/pkg/batch"
	"github.com/Faultbox/midgard-overlay/pkg/geometry"
)

func TestVertexSource(t *testing.T) {
	src, err := vertexSource(batch.ShapeLayout)
	require.NoError(t, err)
	assert.Equal(t, shaders.ShapeVertexShader, src)

	src, err = vertexSource(batch.VectorLayout)
	require.NoError(t, err)
	assert.Equal(t, shaders.VectorVertexShader, src)

	_, err = vertexSource(&batch.Layout{Name: "sprite"})
	assert.ErrorIs(t, err, ErrUnsupportedLayout)
}

func TestInstanceLocations(t *testing.T) {
	assert.Equal(t, []uint32{3, 4, 5, 6}, instanceLocations(batch.ShapeLayout))
	assert.Equal(t, []uint32{3, 4, 5}, instanceLocations(batch.VectorLayout))
}

// Every channel name must be declared as an input of its vertex program at
// the location the backend binds it to.
func TestShadersDeclareChannels(t *testing.T) {
	for _, layout := range []*batch.Layout{batch.ShapeLayout, batch.VectorLayout} {
		src, err := vertexSource(layout)
		require.NoError(t, err)
		for i, name := range layout.Channels {
			decl := "layout(location = " + string(rune('0'+locInstance0+i)) + ") in vec4 " + name + ";"
			assert.Contains(t, src, decl, layout.Name)
		}
	}
}

func TestMeshAttribsFitStride(t *testing.T) {
	attribs := meshAttribs()
	last := attribs[len(attribs)-1]
	assert.Equal(t, uintptr(meshStride), last.offset+uintptr(last.size)*4)
	assert.Equal(t, geometry.InterleavedStride*4, meshStride)
}
