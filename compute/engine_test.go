package compute_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xuyanwen2012/splinetree-substrate/compute"
)

// Creates 10 buffers and 3 sequences, closes the Engine, and asserts the
// allocator reports zero outstanding allocations.
//
// Algorithms need a real .spv on disk to load, which this repository does
// not ship (compiling kernels is out of scope here); this test exercises
// the buffer/sequence half of the teardown property and leaves algorithm
// teardown to an integration environment with real shaders.
func TestEngineTeardownFreesAllocations(t *testing.T) {
	e := newTestEngine(t)

	const numBuffers = 10
	for i := 0; i < numBuffers; i++ {
		_, err := e.Buffer(256)
		require.NoError(t, err)
	}

	const numSequences = 3
	for i := 0; i < numSequences; i++ {
		_, err := e.Sequence()
		require.NoError(t, err)
	}

	require.Equal(t, numBuffers, e.Allocator().LiveAllocations())

	e.Close()

	require.Equal(t, 0, e.Allocator().LiveAllocations())
}

func TestUnmanagedEngineDoesNotTrackResources(t *testing.T) {
	e, err := newUnmanagedTestEngine(t)
	if err != nil {
		t.Skipf("no Vulkan-capable device available: %v", err)
	}
	defer e.Close()

	buf, err := e.Buffer(256)
	require.NoError(t, err)
	defer buf.Close()

	// In unmanaged mode the buffer is released by its own deferred Close,
	// not by Engine.Close; until then the allocator counts it as live.
	require.Equal(t, 1, e.Allocator().LiveAllocations())
}
