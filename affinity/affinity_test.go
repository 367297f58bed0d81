package affinity_test

import (
	"runtime"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/xuyanwen2012/splinetree-substrate/affinity"
)

// For every core in the process's current affinity mask, pinning the
// calling OS thread to that core must succeed without error.
func TestPinCurrentThreadSucceedsForEveryAvailableCore(t *testing.T) {
	cores, err := affinity.AvailableCores()
	require.NoError(t, err)
	require.NotEmpty(t, cores)

	for _, c := range cores {
		c := c
		t.Run("", func(t *testing.T) {
			done := make(chan error, 1)
			go func() {
				unlock, err := affinity.PinCurrentThread(c, zerolog.Nop())
				if err != nil {
					done <- err
					return
				}
				defer unlock()
				done <- nil
			}()
			require.NoError(t, <-done)
		})
	}
}

func TestValidateRejectsCoreOutsideMask(t *testing.T) {
	cores, err := affinity.AvailableCores()
	require.NoError(t, err)

	bogus := affinity.CoreList{len(cores) + runtime.NumCPU() + 1000}
	ok, err := affinity.Validate(bogus)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestValidateAcceptsAvailableCores(t *testing.T) {
	cores, err := affinity.AvailableCores()
	require.NoError(t, err)

	ok, err := affinity.Validate(cores)
	require.NoError(t, err)
	require.True(t, ok)
}
