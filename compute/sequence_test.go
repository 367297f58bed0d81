package compute_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xuyanwen2012/splinetree-substrate/compute"
)

// Any operation invoked in the wrong state must fail without corrupting
// the sequence's reusability.
func TestSequenceRejectsOutOfOrderTransitions(t *testing.T) {
	e := newTestEngine(t)
	defer e.Close()

	seq, err := e.Sequence()
	require.NoError(t, err)

	// cmd_end before cmd_begin: Fresh -> Recorded is not a legal edge.
	require.Error(t, seq.CmdEnd())

	// launch_async before any recording: Fresh -> InFlight is not legal.
	require.Error(t, seq.LaunchAsync())

	// sync with nothing in flight.
	require.Error(t, seq.Sync())
}

func TestSequenceFullLifecycle(t *testing.T) {
	e := newTestEngine(t)
	defer e.Close()

	seq, err := e.Sequence()
	require.NoError(t, err)

	require.NoError(t, seq.CmdBegin())
	require.NoError(t, seq.CmdEnd())
	require.NoError(t, seq.LaunchAsync())
	require.NoError(t, seq.Sync())

	// Recorded again: re-recording is legal once back in Recorded.
	require.NoError(t, seq.CmdBegin())
	require.NoError(t, seq.CmdEnd())
}
