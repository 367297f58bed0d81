package compute_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/xuyanwen2012/splinetree-substrate/compute"
)

func newTestEngine(t *testing.T) *compute.Engine {
	t.Helper()
	e, err := compute.NewEngine(zerolog.Nop(), compute.NewShaderLoader(compute.DefaultShaderSearchPath))
	if err != nil {
		t.Skipf("no Vulkan-capable device available: %v", err)
	}
	return e
}

func newUnmanagedTestEngine(t *testing.T) (*compute.Engine, error) {
	t.Helper()
	return compute.NewEngine(zerolog.Nop(), compute.NewShaderLoader(compute.DefaultShaderSearchPath), compute.WithUnmanagedResources())
}

// Allocates 1 MiB, fills it with 0x42, verifies the fill, zeros it, and
// verifies the zero.
func TestBufferFillAndZero(t *testing.T) {
	e := newTestEngine(t)
	defer e.Close()

	const size = 1 << 20
	buf, err := e.Buffer(size)
	require.NoError(t, err)

	buf.Fill(0x42)
	for i, b := range buf.AsBytes() {
		require.Equalf(t, byte(0x42), b, "byte %d not filled", i)
	}

	buf.Zeros()
	for i, b := range buf.AsBytes() {
		require.Equalf(t, byte(0), b, "byte %d not zeroed", i)
	}
}

// zeros(); fill(v); zeros() must leave every byte zero.
func TestBufferZerosFillZerosIdempotent(t *testing.T) {
	e := newTestEngine(t)
	defer e.Close()

	buf, err := e.Buffer(4096)
	require.NoError(t, err)

	buf.Zeros()
	buf.Fill(0x7F)
	buf.Zeros()

	for _, b := range buf.AsBytes() {
		require.Equal(t, byte(0), b)
	}
}

func TestTypedBufferViewRoundTrips(t *testing.T) {
	e := newTestEngine(t)
	defer e.Close()

	tb, err := compute.EngineTypedBuffer[uint32](e, 1024)
	require.NoError(t, err)
	require.Equal(t, 1024, tb.Len())

	for i := 0; i < tb.Len(); i++ {
		tb.Set(i, uint32(i))
	}
	view := tb.View()
	for i, v := range view {
		require.Equal(t, uint32(i), v)
	}
}
