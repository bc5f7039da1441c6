package batch

import "github.com/Faultbox/midgard-overlay/pkg/math"

// DefaultCapacity is the number of instances per batch. Backends size their
// per-instance attribute arrays to the pool capacity.
const DefaultCapacity = 511

// Submission is handed to the backend once per closed, non-empty batch.
// The slices alias batch storage and are only valid during Submit.
type Submission struct {
	Layout *Layout
	// Slot is the batch index inside its pool; backends key per-batch GPU
	// buffers on it.
	Slot  int
	Count int
	// Upload is set when any channel changed since the last submission of
	// this slot.
	Upload   bool
	Matrices []math.Mat4
	Channels [][]math.Vec4
	Bounds   Bounds
}

// Backend performs the instanced draw for a submission.
type Backend interface {
	Submit(s *Submission)
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(s *Submission)

// Submit implements Backend.
func (f BackendFunc) Submit(s *Submission) {
	f(s)
}

type nopBackend struct{}

func (nopBackend) Submit(*Submission) {}

// NopBackend discards submissions. Batching still runs, there is simply
// nothing to draw with.
var NopBackend Backend = nopBackend{}
