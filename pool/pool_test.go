package pool_test

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/xuyanwen2012/splinetree-substrate/affinity"
	"github.com/xuyanwen2012/splinetree-substrate/pool"
)

func testCores(t *testing.T, n int) affinity.CoreList {
	t.Helper()
	available, err := affinity.AvailableCores()
	require.NoError(t, err)
	if len(available) < n {
		t.Skipf("host exposes only %d cores, need %d", len(available), n)
	}
	return available[:n]
}

// Sums [0, 1_000_000) over 4 pinned workers.
func TestSubmitBlocksSumsFullRange(t *testing.T) {
	cores := testCores(t, 4)
	p := pool.New(cores, zerolog.Nop())
	defer p.Stop()

	const n = 1_000_000
	mf, err := pool.SubmitBlocks(p, 0, n, len(cores), func(start, end int) (int64, error) {
		var sum int64
		for i := start; i < end; i++ {
			sum += int64(i)
		}
		return sum, nil
	})
	require.NoError(t, err)

	results, err := mf.Wait()
	require.NoError(t, err)

	var total int64
	for _, r := range results {
		total += r
	}
	require.Equal(t, int64(499999500000), total)
}

func TestSubmitBlocksEmptyRange(t *testing.T) {
	cores := testCores(t, 1)
	p := pool.New(cores, zerolog.Nop())
	defer p.Stop()

	mf, err := pool.SubmitBlocks(p, 10, 10, 4, func(start, end int) (int, error) {
		t.Fatalf("block func should not run on an empty range")
		return 0, nil
	})
	require.NoError(t, err)
	require.Equal(t, 0, mf.Len())
}

func TestSubmitBlocksUnionIsDisjointAndComplete(t *testing.T) {
	cores := testCores(t, 3)
	p := pool.New(cores, zerolog.Nop())
	defer p.Stop()

	const first, last = 7, 103
	type span struct{ start, end int }
	mf, err := pool.SubmitBlocks(p, first, last, 5, func(start, end int) (span, error) {
		return span{start, end}, nil
	})
	require.NoError(t, err)

	spans, err := mf.Wait()
	require.NoError(t, err)
	require.LessOrEqual(t, len(spans), 5)

	seen := make(map[int]bool)
	for _, s := range spans {
		for i := s.start; i < s.end; i++ {
			require.False(t, seen[i], "index %d covered twice", i)
			seen[i] = true
		}
	}
	require.Len(t, seen, last-first)
}

func TestSubmitTaskAfterStopFails(t *testing.T) {
	cores := testCores(t, 1)
	p := pool.New(cores, zerolog.Nop())
	p.Stop()

	_, err := pool.SubmitTask(p, func() (int, error) { return 0, nil })
	require.Error(t, err)
}

func TestSubmitTaskPropagatesTaskError(t *testing.T) {
	cores := testCores(t, 1)
	p := pool.New(cores, zerolog.Nop())
	defer p.Stop()

	f, err := pool.SubmitTask(p, func() (int, error) {
		return 0, errors.New("task failed")
	})
	require.NoError(t, err)

	_, waitErr := f.Wait()
	require.Error(t, waitErr)
}
