// Package batchtest provides a recording backend for batch tests.
package batchtest

import (
	"github.com/Faultbox/midgard-overlay/pkg/batch"
	"github.com/Faultbox/midgard-overlay/pkg/math"
)

// Call is a copy of one submission.
type Call struct {
	Layout   string
	Slot     int
	Count    int
	Upload   bool
	Matrices int
	Channels [][]math.Vec4
	Bounds   batch.Bounds
}

// Recorder stores every submission it receives.
type Recorder struct {
	Calls []Call
}

// Submit implements batch.Backend.
func (r *Recorder) Submit(s *batch.Submission) {
	call := Call{
		Layout:   s.Layout.Name,
		Slot:     s.Slot,
		Count:    s.Count,
		Upload:   s.Upload,
		Matrices: len(s.Matrices),
		Bounds:   s.Bounds,
	}
	for _, ch := range s.Channels {
		call.Channels = append(call.Channels, append([]math.Vec4(nil), ch[:s.Count]...))
	}
	r.Calls = append(r.Calls, call)
}

// Reset forgets recorded calls.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}

// Uploads counts submissions that carried new attribute data.
func (r *Recorder) Uploads() int {
	n := 0
	for _, c := range r.Calls {
		if c.Upload {
			n++
		}
	}
	return n
}

// Counts returns the instance count of each submission in order.
func (r *Recorder) Counts() []int {
	counts := make([]int, len(r.Calls))
	for i, c := range r.Calls {
		counts[i] = c.Count
	}
	return counts
}
