package batch

import "fmt"

// BoundsFunc receives the aggregated bounds when a session ends.
type BoundsFunc func(Bounds)

// Session gates a pool with a Begin/End bracket. It is not safe for
// concurrent use; independent overlays need independent sessions.
type Session[R Record] struct {
	pool     *Pool[R]
	open     bool
	bounds   Bounds
	onBounds BoundsFunc
}

// NewSession creates a closed session over a fresh pool.
func NewSession[R Record](layout *Layout, capacity int, backend Backend, onBounds BoundsFunc) *Session[R] {
	return &Session[R]{
		pool:     NewPool[R](layout, capacity, backend),
		onBounds: onBounds,
	}
}

// Begin opens the session and rewinds the pool without reallocating.
func (s *Session[R]) Begin() error {
	if s.open {
		return ErrAlreadyOpen
	}
	if err := s.pool.Begin(); err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	s.open = true
	return nil
}

// Draw adds one record to the open session.
func (s *Session[R]) Draw(r R) error {
	if !s.open {
		return ErrNotOpen
	}
	return s.pool.Draw(r)
}

// End closes the session, submits the last batch and publishes the
// aggregated bounds. Undefined bounds (nothing drawn) are returned but not
// published.
func (s *Session[R]) End() (Bounds, error) {
	if !s.open {
		return Bounds{}, ErrNotOpen
	}
	s.open = false
	if err := s.pool.End(); err != nil {
		return Bounds{}, err
	}

	bounds := s.pool.AggregateBounds()
	if bounds.Valid {
		s.bounds = bounds
		if s.onBounds != nil {
			s.onBounds(bounds)
		}
	}
	return bounds, nil
}

// Acquire begins the session and returns a scope whose Close ends it.
func (s *Session[R]) Acquire() (*Scope, error) {
	if err := s.Begin(); err != nil {
		return nil, err
	}
	return NewScope(func() error {
		_, err := s.End()
		return err
	}), nil
}

// Clear rebuilds the pool. It is the handler for configuration changes and
// is refused while a session is open.
func (s *Session[R]) Clear() error {
	if s.open {
		return ErrAlreadyOpen
	}
	s.pool.Clear()
	return nil
}

// IsOpen reports whether the session is between Begin and End.
func (s *Session[R]) IsOpen() bool { return s.open }

// Bounds returns the last published bounds.
func (s *Session[R]) Bounds() Bounds { return s.bounds }

// Pool exposes the underlying pool.
func (s *Session[R]) Pool() *Pool[R] { return s.pool }

// Scope ends a bracket exactly once. Use it with defer so the bracket closes
// even when drawing code returns early.
type Scope struct {
	end    func() error
	closed bool
}

// NewScope wraps end in a Scope.
func NewScope(end func() error) *Scope {
	return &Scope{end: end}
}

// Close runs the end function the first time it is called.
func (s *Scope) Close() error {
	if s == nil || s.closed {
		return nil
	}
	s.closed = true
	return s.end()
}
