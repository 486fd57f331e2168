package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolExecutePreservesOrder(t *testing.T) {
	p := NewPool[int, int](3, func(_ context.Context, n int) (int, error) {
		if n == 4 {
			return 0, errors.New("boom")
		}
		return n * n, nil
	})

	results := p.Execute(context.Background(), []int{1, 2, 3, 4, 5})
	require.Len(t, results, 5)

	for i, r := range results {
		assert.Equal(t, i+1, r.Input)
	}
	assert.Equal(t, 9, results[2].Output)
	assert.EqualError(t, results[3].Err, "boom")
	assert.NoError(t, results[4].Err)
}

func TestPoolCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	p := NewPool[int, int](2, func(_ context.Context, n int) (int, error) {
		calls.Add(1)
		return n, nil
	})

	results := p.Execute(ctx, []int{1, 2, 3})
	require.Len(t, results, 3)
	for _, r := range results {
		if r.Err != nil {
			assert.ErrorIs(t, r.Err, context.Canceled)
		}
	}
	assert.LessOrEqual(t, int(calls.Load()), 3)
}

func TestNewPoolMinimumWorkers(t *testing.T) {
	p := NewPool[string, int](0, func(_ context.Context, s string) (int, error) { return len(s), nil })
	results := p.Execute(context.Background(), []string{"AHhb"})
	assert.Equal(t, 4, results[0].Output)
}

func TestBatch(t *testing.T) {
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, Batch([]int{1, 2, 3, 4, 5}, 2))
	assert.Equal(t, [][]int{{1}, {2}}, Batch([]int{1, 2}, 0))
	assert.Nil(t, Batch([]int{}, 3))
}
