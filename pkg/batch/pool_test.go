package batch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-overlay/pkg/batch"
	"github.com/Faultbox/midgard-overlay/pkg/batch/batchtest"
)

func drawCubes(t *testing.T, pool *batch.Pool[batch.ShapeRecord], n int) {
	t.Helper()
	require.NoError(t, pool.Begin())
	for i := 0; i < n; i++ {
		require.NoError(t, pool.Draw(cube(float32(i), 0, 0)))
	}
	require.NoError(t, pool.End())
}

func usedLengths(pool *batch.Pool[batch.ShapeRecord]) []int {
	var lengths []int
	for _, b := range pool.Used() {
		lengths = append(lengths, b.Len())
	}
	return lengths
}

func TestPoolSingleBatch(t *testing.T) {
	const capacity = 16
	for _, n := range []int{1, 7, capacity} {
		rec := &batchtest.Recorder{}
		pool := batch.NewPool[batch.ShapeRecord](batch.ShapeLayout, capacity, rec)

		drawCubes(t, pool, n)

		assert.Len(t, pool.Batches(), 1, "n=%d", n)
		assert.Equal(t, []int{n}, usedLengths(pool), "n=%d", n)
		assert.Equal(t, []int{n}, rec.Counts(), "n=%d", n)
		assert.Equal(t, n, pool.Len())
	}
}

func TestPoolRotation(t *testing.T) {
	const capacity = 5
	tests := []struct {
		n    int
		want []int
	}{
		{6, []int{5, 1}},
		{10, []int{5, 5}},
		{11, []int{5, 5, 1}},
		{23, []int{5, 5, 5, 5, 3}},
	}

	for _, tt := range tests {
		rec := &batchtest.Recorder{}
		pool := batch.NewPool[batch.ShapeRecord](batch.ShapeLayout, capacity, rec)

		drawCubes(t, pool, tt.n)

		assert.Equal(t, tt.want, usedLengths(pool), "n=%d", tt.n)
		assert.Equal(t, tt.want, rec.Counts(), "n=%d", tt.n)
		assert.Len(t, pool.Batches(), (tt.n+capacity-1)/capacity)
		assert.Equal(t, tt.n, pool.Len())
	}
}

func TestPoolWarmUp(t *testing.T) {
	pool := batch.NewPool[batch.ShapeRecord](batch.ShapeLayout, 4, nil)

	drawCubes(t, pool, 10)
	warm := pool.Allocations()
	assert.Equal(t, 3, warm)

	for _, n := range []int{10, 3, 12, 0, 9} {
		drawCubes(t, pool, n)
	}
	assert.Equal(t, warm, pool.Allocations())
	assert.Len(t, pool.Batches(), 3)

	// growing past the warm size allocates only the difference
	drawCubes(t, pool, 13)
	assert.Equal(t, warm+1, pool.Allocations())
}

func TestPoolShrinkKeepsBatches(t *testing.T) {
	rec := &batchtest.Recorder{}
	pool := batch.NewPool[batch.ShapeRecord](batch.ShapeLayout, 4, rec)

	drawCubes(t, pool, 12)
	rec.Reset()
	drawCubes(t, pool, 2)

	assert.Len(t, pool.Batches(), 3)
	assert.Equal(t, []int{2}, usedLengths(pool))
	assert.Equal(t, []int{2}, rec.Counts())
	assert.Equal(t, 2, pool.Len())

	// stale batches from the larger frame do not widen the bounds
	bb := pool.AggregateBounds()
	assert.InDelta(t, 1.55, bb.Max.X, 1e-5)
}

func TestPoolEmptySession(t *testing.T) {
	rec := &batchtest.Recorder{}
	pool := batch.NewPool[batch.ShapeRecord](batch.ShapeLayout, 4, rec)

	drawCubes(t, pool, 0)

	assert.Equal(t, []int{0}, usedLengths(pool))
	assert.Empty(t, rec.Calls)
	assert.False(t, pool.AggregateBounds().Valid)
}

func TestPoolClear(t *testing.T) {
	pool := batch.NewPool[batch.ShapeRecord](batch.ShapeLayout, 2, nil)
	drawCubes(t, pool, 7)
	require.Len(t, pool.Batches(), 4)
	old := pool.Batches()
	first := old[0]

	pool.Clear()
	assert.Len(t, pool.Batches(), 1)
	assert.Equal(t, 1, cap(pool.Batches()), "discarded batches must not stay reachable")
	assert.Same(t, first, old[0], "Clear must not write into the old batch list")
	assert.NotSame(t, first, pool.Batches()[0])
	assert.Equal(t, 5, pool.Allocations())

	drawCubes(t, pool, 2)
	assert.Equal(t, []int{2}, usedLengths(pool))
}

func TestPoolDefaults(t *testing.T) {
	pool := batch.NewPool[batch.VectorRecord](batch.VectorLayout, 0, nil)
	assert.Equal(t, batch.DefaultCapacity, pool.Cap())
	assert.Equal(t, batch.DefaultCapacity, pool.Batches()[0].Cap())
}

func TestPoolSetBackend(t *testing.T) {
	pool := batch.NewPool[batch.ShapeRecord](batch.ShapeLayout, 2, nil)
	drawCubes(t, pool, 5)

	rec := &batchtest.Recorder{}
	pool.SetBackend(rec)
	drawCubes(t, pool, 5)

	assert.Equal(t, []int{2, 2, 1}, rec.Counts())
	// identical frame: nothing to upload
	assert.Equal(t, 0, rec.Uploads())
}
