package overlay

import "github.com/Faultbox/midgard-overlay/pkg/batch"

// PoolStats summarizes one batch pool after the last frame.
type PoolStats struct {
	Name        string
	Batches     int // allocated batches
	Used        int // batches touched in the last frame
	Instances   int
	Capacity    int
	Allocations int
	Bounds      batch.Bounds
}

func poolStats[R batch.Record](name string, s *batch.Session[R]) PoolStats {
	p := s.Pool()
	return PoolStats{
		Name:        name,
		Batches:     len(p.Batches()),
		Used:        len(p.Used()),
		Instances:   p.Len(),
		Capacity:    p.Cap(),
		Allocations: p.Allocations(),
		Bounds:      s.Bounds(),
	}
}

// Stats returns cube and cylinder pool statistics.
func (r *ShapeRenderer) Stats() []PoolStats {
	return []PoolStats{
		poolStats(r.cubes.mesh.Name, r.cubes.session),
		poolStats(r.cylinders.mesh.Name, r.cylinders.session),
	}
}

// Stats returns the vector pool statistics.
func (r *VectorRenderer) Stats() PoolStats {
	return poolStats(r.mesh.Name, r.session)
}
