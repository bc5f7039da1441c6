// Package batch packs immediate-mode overlay draw records into
// fixed-capacity instance batches and submits them as instanced draws.
package batch

import (
	"fmt"

	"github.com/Faultbox/midgard-overlay/pkg/math"
)

// Batch stores up to capacity records as parallel channel arrays and owns a
// single instanced submission.
type Batch[R Record] struct {
	layout   *Layout
	backend  Backend
	slot     int
	channels [][]math.Vec4
	matrices []math.Mat4

	idx    int
	length int
	dirty  bool
	open   bool
	bounds Bounds
	sub    Submission
}

func newBatch[R Record](layout *Layout, capacity, slot int, backend Backend) *Batch[R] {
	b := &Batch[R]{
		layout:   layout,
		backend:  backend,
		slot:     slot,
		channels: make([][]math.Vec4, len(layout.Channels)),
		// nothing has been uploaded for this slot yet
		dirty: true,
	}
	for i := range b.channels {
		b.channels[i] = make([]math.Vec4, capacity)
	}
	return b
}

// Begin resets the write cursor.
func (b *Batch[R]) Begin() error {
	if b.open {
		return fmt.Errorf("batch %d: %w", b.slot, ErrBatchOpen)
	}
	b.open = true
	b.idx = 0
	return nil
}

// HasCapacity reports whether another record fits.
func (b *Batch[R]) HasCapacity() bool {
	return b.idx < b.Cap()
}

// Draw writes r into the next slot. The batch becomes dirty when any channel
// differs bitwise from what the slot held before, so a repeated NaN record
// does not force an upload.
func (b *Batch[R]) Draw(r R) error {
	if !b.open {
		return fmt.Errorf("batch %d: %w", b.slot, ErrBatchClosed)
	}
	if b.idx >= b.Cap() {
		return fmt.Errorf("batch %d: index %d, capacity %d: %w", b.slot, b.idx, b.Cap(), ErrBatchFull)
	}

	var packed [MaxChannels]math.Vec4
	attrs := packed[:len(b.channels)]
	r.Pack(attrs)

	changed := false
	for ch, v := range attrs {
		if !b.channels[ch][b.idx].SameBits(v) {
			changed = true
			break
		}
	}
	if changed {
		for ch, v := range attrs {
			b.channels[ch][b.idx] = v
		}
		b.dirty = true
	}
	b.idx++
	return nil
}

// End freezes the batch length, refreshes its bounds and submits it. Empty
// batches submit nothing and have undefined bounds.
func (b *Batch[R]) End() error {
	if !b.open {
		return fmt.Errorf("batch %d: %w", b.slot, ErrBatchClosed)
	}
	b.open = false
	b.length = b.idx
	b.bounds = b.computeBounds()
	if b.length == 0 {
		return nil
	}

	upload := b.dirty
	b.dirty = false
	if len(b.matrices) < b.length {
		b.growMatrices(b.length)
	}

	b.sub = Submission{
		Layout:   b.layout,
		Slot:     b.slot,
		Count:    b.length,
		Upload:   upload,
		Matrices: b.matrices[:b.length],
		Channels: b.channels,
		Bounds:   b.bounds,
	}
	b.backend.Submit(&b.sub)
	return nil
}

// growMatrices extends the identity matrix cache. The backend only uses it
// for the instance count; transforms live in the channels.
func (b *Batch[R]) growMatrices(n int) {
	for len(b.matrices) < n {
		b.matrices = append(b.matrices, math.Identity())
	}
}

func (b *Batch[R]) computeBounds() Bounds {
	if b.length == 0 {
		return Bounds{}
	}

	var packed [MaxChannels]math.Vec4
	attrs := packed[:len(b.channels)]
	var result Bounds
	for i := 0; i < b.length; i++ {
		for ch := range b.channels {
			attrs[ch] = b.channels[ch][i]
		}
		extent := b.layout.Extent(attrs).Scale(BoundsMargin)
		if !result.Valid {
			result = extent
			continue
		}
		result = result.Union(extent)
	}
	return result
}

// Len returns the number of records frozen by the last End.
func (b *Batch[R]) Len() int { return b.length }

// Cap returns the fixed capacity.
func (b *Batch[R]) Cap() int { return len(b.channels[0]) }

// Slot returns the batch index inside its pool.
func (b *Batch[R]) Slot() int { return b.slot }

// Dirty reports whether the channels changed since the last upload.
func (b *Batch[R]) Dirty() bool { return b.dirty }

// Open reports whether the batch is between Begin and End.
func (b *Batch[R]) Open() bool { return b.open }

// Bounds returns the bounds computed by the last End.
func (b *Batch[R]) Bounds() Bounds { return b.bounds }

// Matrices returns the cached identity matrices.
func (b *Batch[R]) Matrices() []math.Mat4 { return b.matrices }

// Channel returns the backing array of channel i.
func (b *Batch[R]) Channel(i int) []math.Vec4 { return b.channels[i] }
