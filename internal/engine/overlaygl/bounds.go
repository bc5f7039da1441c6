package overlaygl

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-overlay/internal/engine/overlaygl/shaders"
	"github.com/Faultbox/midgard-overlay/internal/engine/shader"
	"github.com/Faultbox/midgard-overlay/pkg/batch"
	"github.com/Faultbox/midgard-overlay/pkg/geometry"
	"github.com/Faultbox/midgard-overlay/pkg/math"
)

// BoundsRenderer draws published overlay bounds as line boxes.
type BoundsRenderer struct {
	r       *Renderer
	program *shader.Program
	vao     uint32
	vbo     uint32
}

// NewBoundsRenderer compiles the line program and allocates one box worth
// of vertex storage.
func (r *Renderer) NewBoundsRenderer() (*BoundsRenderer, error) {
	prog, err := shader.Build("bounds", shaders.BoundsVertexShader, shaders.BoundsFragmentShader, "uViewProj", "uColor")
	if err != nil {
		return nil, err
	}
	br := &BoundsRenderer{r: r, program: prog}

	gl.GenVertexArrays(1, &br.vao)
	gl.BindVertexArray(br.vao)
	gl.GenBuffers(1, &br.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, br.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, geometry.WireframeVertexCount*3*4, nil, gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(locPosition, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(locPosition)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	return br, nil
}

// Draw draws b if it is defined.
func (br *BoundsRenderer) Draw(b batch.Bounds, color math.Color) {
	if !b.Valid {
		return
	}
	lines := geometry.BoxWireframe(b.Min, b.Max)

	gl.BindBuffer(gl.ARRAY_BUFFER, br.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(lines)*4, unsafe.Pointer(&lines[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	br.program.Use()
	viewProj := br.r.viewProj
	gl.UniformMatrix4fv(br.program.Uniform("uViewProj"), 1, false, viewProj.Ptr())
	gl.Uniform3f(br.program.Uniform("uColor"), color.R, color.G, color.B)

	gl.BindVertexArray(br.vao)
	gl.DrawArrays(gl.LINES, 0, geometry.WireframeVertexCount)
	gl.BindVertexArray(0)
	br.r.stats.DrawCalls++
}

// Close releases GL objects.
func (br *BoundsRenderer) Close() {
	gl.DeleteVertexArrays(1, &br.vao)
	gl.DeleteBuffers(1, &br.vbo)
	br.program.Delete()
}
