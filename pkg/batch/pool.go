package batch

import "fmt"

// Pool routes records to the batch with remaining capacity. Batches are
// never shrunk: a later session reuses everything an earlier, larger one
// allocated.
type Pool[R Record] struct {
	layout   *Layout
	capacity int
	backend  Backend

	batches     []*Batch[R]
	active      int
	allocations int
}

// NewPool creates a pool holding one empty batch. A non-positive capacity
// selects DefaultCapacity and a nil backend selects NopBackend.
func NewPool[R Record](layout *Layout, capacity int, backend Backend) *Pool[R] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if backend == nil {
		backend = NopBackend
	}
	p := &Pool[R]{
		layout:   layout,
		capacity: capacity,
		backend:  backend,
	}
	p.Clear()
	return p
}

// Clear drops every batch and allocates a single fresh one. The old batch
// list is released with its channel arrays.
func (p *Pool[R]) Clear() {
	p.batches = []*Batch[R]{p.allocate(0)}
	p.active = 0
}

// SetBackend swaps the backend used by every batch, present and future.
func (p *Pool[R]) SetBackend(backend Backend) {
	if backend == nil {
		backend = NopBackend
	}
	p.backend = backend
	for _, b := range p.batches {
		b.backend = backend
	}
}

func (p *Pool[R]) allocate(slot int) *Batch[R] {
	p.allocations++
	return newBatch[R](p.layout, p.capacity, slot, p.backend)
}

// Begin rewinds to the first batch.
func (p *Pool[R]) Begin() error {
	p.active = 0
	return p.batches[0].Begin()
}

// EnsureWritable returns the batch that receives the next record, closing
// the active batch and moving on when it is full.
func (p *Pool[R]) EnsureWritable() (*Batch[R], error) {
	current := p.batches[p.active]
	if current.HasCapacity() {
		return current, nil
	}
	if err := current.End(); err != nil {
		return nil, err
	}
	p.active++

	var next *Batch[R]
	if p.active < len(p.batches) {
		next = p.batches[p.active]
	} else {
		next = p.allocate(p.active)
		p.batches = append(p.batches, next)
	}
	if err := next.Begin(); err != nil {
		return nil, err
	}
	return next, nil
}

// Draw routes r through EnsureWritable.
func (p *Pool[R]) Draw(r R) error {
	b, err := p.EnsureWritable()
	if err != nil {
		return err
	}
	return b.Draw(r)
}

// End closes the active batch. Earlier batches were closed when the pool
// rotated past them.
func (p *Pool[R]) End() error {
	if err := p.batches[p.active].End(); err != nil {
		return fmt.Errorf("closing pool: %w", err)
	}
	return nil
}

// AggregateBounds combines the bounds of the batches used by the last
// session. Empty batches are excluded.
func (p *Pool[R]) AggregateBounds() Bounds {
	var buf [8]Bounds
	bounds := buf[:0]
	for _, b := range p.Used() {
		if b.Len() > 0 {
			bounds = append(bounds, b.Bounds())
		}
	}
	return Aggregate(bounds...)
}

// Used returns the batches touched since the last Begin.
func (p *Pool[R]) Used() []*Batch[R] {
	return p.batches[:p.active+1]
}

// Batches returns every allocated batch.
func (p *Pool[R]) Batches() []*Batch[R] {
	return p.batches
}

// Len returns the number of records closed in the last session.
func (p *Pool[R]) Len() int {
	n := 0
	for _, b := range p.Used() {
		n += b.Len()
	}
	return n
}

// Cap returns the per-batch capacity.
func (p *Pool[R]) Cap() int {
	return p.capacity
}

// Allocations counts batches allocated over the pool's lifetime.
func (p *Pool[R]) Allocations() int {
	return p.allocations
}
