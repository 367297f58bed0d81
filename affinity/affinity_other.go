//go:build !linux

package affinity

import (
	"runtime"

	"github.com/rs/zerolog"
)

// AvailableCores reports runtime.NumCPU logical cores, numbered 0..N-1.
// Non-Linux hosts have no portable affinity-mask query, so every logical
// core is reported available; SetAffinity on these hosts is a no-op success
// rather than a failure, and this mirrors that for the availability
// query as well.
func AvailableCores() (CoreList, error) {
	n := runtime.NumCPU()
	cores := make(CoreList, n)
	for i := 0; i < n; i++ {
		cores[i] = i
	}
	return cores, nil
}

// SetAffinity is a no-op on platforms without a core-pinning syscall.
func SetAffinity(core int) error {
	return nil
}

// Validate reports whether every core in requested is within [0, NumCPU).
func Validate(requested CoreList) (bool, error) {
	available, _ := AvailableCores()
	for _, c := range requested {
		if !available.Contains(c) {
			return false, nil
		}
	}
	return true, nil
}

// PinCurrentThread is a no-op on platforms without a core-pinning syscall;
// it still locks the goroutine to its OS thread for consistency with the
// Linux implementation.
func PinCurrentThread(core int, log zerolog.Logger) (unlock func(), err error) {
	runtime.LockOSThread()
	log.Debug().Int("core", core).Msg("affinity not supported on this platform, running unpinned")
	return runtime.UnlockOSThread, nil
}
