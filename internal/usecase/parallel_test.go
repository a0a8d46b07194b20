package usecase

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelMapKeepsOrder(t *testing.T) {
	t.Parallel()

	in := rowIndexes(500)
	out, err := parallelMap(context.Background(), 7, in, func(i int) int { return i * i })
	require.NoError(t, err)
	require.Len(t, out, len(in))
	for i, v := range out {
		assert.Equal(t, i*i, v)
	}
}

func TestParallelMapRespectsLimit(t *testing.T) {
	t.Parallel()

	var running, peak atomic.Int32
	_, err := parallelMap(context.Background(), 3, rowIndexes(100), func(i int) int {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		running.Add(-1)
		return i
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestParallelMapCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out, err := parallelMap(ctx, 2, rowIndexes(10), func(i int) int { return i })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, out)
}

func TestParallelMapZeroWorkers(t *testing.T) {
	t.Parallel()

	out, err := parallelMap(context.Background(), 0, []string{"a", "b"}, func(s string) string { return s + s })
	require.NoError(t, err)
	assert.Equal(t, []string{"aa", "bb"}, out)
}
