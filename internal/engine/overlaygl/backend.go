package overlaygl

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-overlay/internal/engine/shader"
	"github.com/Faultbox/midgard-overlay/pkg/batch"
	"github.com/Faultbox/midgard-overlay/pkg/geometry"
)

// ErrEmptyMesh is returned for meshes with no triangles.
var ErrEmptyMesh = errors.New("empty mesh")

// MeshBackend draws one mesh instanced once per batch slot. Each slot owns a
// VAO and one instance buffer per channel, so a clean batch is redrawn from
// the buffers it uploaded on an earlier frame.
type MeshBackend struct {
	r        *Renderer
	program  *shader.Program
	layout   *batch.Layout
	capacity int

	vbo        uint32
	ebo        uint32
	indexCount int32

	slots []*instanceSlot
}

type instanceSlot struct {
	vao     uint32
	buffers []uint32
}

func newMeshBackend(r *Renderer, prog *shader.Program, mesh *geometry.Mesh, layout *batch.Layout, capacity int) (*MeshBackend, error) {
	if len(mesh.Indices) == 0 {
		return nil, fmt.Errorf("%s: %w", mesh.Name, ErrEmptyMesh)
	}
	if capacity <= 0 {
		capacity = batch.DefaultCapacity
	}

	b := &MeshBackend{
		r:          r,
		program:    prog,
		layout:     layout,
		capacity:   capacity,
		indexCount: int32(len(mesh.Indices)),
	}

	vertices := mesh.Interleave()
	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*2, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	return b, nil
}

// Submit implements batch.Backend. A closed backend draws nothing.
func (b *MeshBackend) Submit(s *batch.Submission) {
	if s.Count == 0 || b.Closed() {
		return
	}
	slot := b.slot(s.Slot)

	if s.Upload {
		for i, ch := range s.Channels {
			gl.BindBuffer(gl.ARRAY_BUFFER, slot.buffers[i])
			gl.BufferSubData(gl.ARRAY_BUFFER, 0, s.Count*channelStride, unsafe.Pointer(&ch[0]))
		}
		gl.BindBuffer(gl.ARRAY_BUFFER, 0)
		b.r.stats.Uploads++
	}

	b.program.Use()
	viewProj := b.r.viewProj
	gl.UniformMatrix4fv(b.program.Uniform("uViewProj"), 1, false, viewProj.Ptr())
	light := b.r.lightDir
	gl.Uniform3f(b.program.Uniform("uLightDir"), light.X, light.Y, light.Z)

	gl.BindVertexArray(slot.vao)
	gl.DrawElementsInstanced(gl.TRIANGLES, b.indexCount, gl.UNSIGNED_SHORT, nil, int32(s.Count))
	gl.BindVertexArray(0)

	b.r.stats.DrawCalls++
	b.r.stats.Instances += s.Count
}

// slot returns the GL objects for a batch slot, creating them on first use.
func (b *MeshBackend) slot(i int) *instanceSlot {
	for len(b.slots) <= i {
		b.slots = append(b.slots, b.newSlot())
	}
	return b.slots[i]
}

func (b *MeshBackend) newSlot() *instanceSlot {
	s := &instanceSlot{buffers: make([]uint32, len(b.layout.Channels))}

	gl.GenVertexArrays(1, &s.vao)
	gl.BindVertexArray(s.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	for _, a := range meshAttribs() {
		gl.VertexAttribPointerWithOffset(a.loc, a.size, gl.FLOAT, false, meshStride, a.offset)
		gl.EnableVertexAttribArray(a.loc)
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)

	gl.GenBuffers(int32(len(s.buffers)), &s.buffers[0])
	for i, loc := range instanceLocations(b.layout) {
		gl.BindBuffer(gl.ARRAY_BUFFER, s.buffers[i])
		gl.BufferData(gl.ARRAY_BUFFER, b.capacity*channelStride, nil, gl.DYNAMIC_DRAW)
		gl.VertexAttribPointerWithOffset(loc, 4, gl.FLOAT, false, channelStride, 0)
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribDivisor(loc, 1)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return s
}

// Slots returns the number of slots with GL objects.
func (b *MeshBackend) Slots() int {
	return len(b.slots)
}

// Closed reports whether the GL objects were released.
func (b *MeshBackend) Closed() bool {
	return b.vbo == 0
}

// Close releases the GL objects of the backend. It is safe to call more than
// once.
func (b *MeshBackend) Close() error {
	b.release()
	delete(b.r.backends, b)
	return nil
}

func (b *MeshBackend) release() {
	for _, s := range b.slots {
		gl.DeleteBuffers(int32(len(s.buffers)), &s.buffers[0])
		gl.DeleteVertexArrays(1, &s.vao)
	}
	b.slots = nil
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
		b.vbo = 0
	}
	if b.ebo != 0 {
		gl.DeleteBuffers(1, &b.ebo)
		b.ebo = 0
	}
}
