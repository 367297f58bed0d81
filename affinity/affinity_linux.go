//go:build linux

// Binding via sched_setaffinity/sched_getaffinity.
package affinity

import (
	"fmt"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

// AvailableCores reads the process's current OS affinity mask.
func AvailableCores() (CoreList, error) {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return nil, newError("available_cores", -1, KindOsError, err)
	}

	cores := make(CoreList, 0, set.Count())
	for i := 0; i < unix.CPU_SETSIZE; i++ {
		if set.IsSet(i) {
			cores = append(cores, i)
		}
	}
	return cores, nil
}

// SetAffinity binds the calling OS thread to exactly one logical CPU.
//
// The caller must have already locked the calling goroutine to its OS
// thread via runtime.LockOSThread — affinity is a property of the OS
// thread, not the goroutine, and the Go scheduler is free to migrate an
// unlocked goroutine to a different thread between calls.
func SetAffinity(core int) error {
	if core < 0 {
		return newError("set_affinity", core, KindInvalidCore, fmt.Errorf("negative core index"))
	}

	mask, err := AvailableCores()
	if err != nil {
		return err
	}
	if !mask.Contains(core) {
		return newError("set_affinity", core, KindInvalidCore, fmt.Errorf("core not in process mask"))
	}

	var set unix.CPUSet
	set.Zero()
	set.Set(core)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		// Some hosts (containers with a restrictive seccomp profile,
		// or non-Linux kernels reached through an emulation layer)
		// reject the syscall outright; treat that as a no-op success
		// rather than a failure, consistent with the non-Linux fallback.
		if err == unix.ENOSYS || err == unix.EPERM {
			return nil
		}
		return newError("set_affinity", core, KindOsError, err)
	}
	return nil
}

// Validate reports whether every core in requested is present in the
// process's current affinity mask.
func Validate(requested CoreList) (bool, error) {
	available, err := AvailableCores()
	if err != nil {
		return false, err
	}
	for _, c := range requested {
		if !available.Contains(c) {
			return false, nil
		}
	}
	return true, nil
}

// PinCurrentThread locks the calling goroutine to its OS thread and binds
// that thread to core. It is the composition every ThreadPool worker uses
// at startup, and returns the runtime.UnlockOSThread cleanup for the
// caller to defer.
func PinCurrentThread(core int, log zerolog.Logger) (unlock func(), err error) {
	runtime.LockOSThread()
	if err := SetAffinity(core); err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}
	log.Debug().Int("core", core).Msg("pinned worker thread")
	return runtime.UnlockOSThread, nil
}
