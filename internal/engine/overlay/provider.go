// Package overlay provides the immediate-mode shape and vector renderers
// built on top of the batching engine.
package overlay

import (
	"github.com/Faultbox/midgard-overlay/pkg/batch"
	"github.com/Faultbox/midgard-overlay/pkg/geometry"
)

// Provider creates the backend that draws one mesh with one attribute
// layout. A Provider failure (missing shader, no GL context) is a
// configuration error: the renderer logs it once and keeps batching with
// batch.NopBackend.
type Provider interface {
	Backend(mesh *geometry.Mesh, layout *batch.Layout, capacity int) (batch.Backend, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(mesh *geometry.Mesh, layout *batch.Layout, capacity int) (batch.Backend, error)

// Backend implements Provider.
func (f ProviderFunc) Backend(mesh *geometry.Mesh, layout *batch.Layout, capacity int) (batch.Backend, error) {
	return f(mesh, layout, capacity)
}
