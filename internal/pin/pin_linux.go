//go:build linux

package pin

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

func pinCPU(cpu int) (func(), error) {
	runtime.LockOSThread()

	var prev unix.CPUSet

	// pid 0 is the calling thread.
	err := unix.SchedGetaffinity(0, &prev)
	if err != nil {
		runtime.UnlockOSThread()

		return nil, fmt.Errorf("get cpu affinity: %w", err)
	}

	var set unix.CPUSet

	set.Zero()
	set.Set(cpu)

	err = unix.SchedSetaffinity(0, &set)
	if err != nil {
		runtime.UnlockOSThread()

		return nil, fmt.Errorf("pin to cpu %d: %w", cpu, err)
	}

	release := func() {
		_ = unix.SchedSetaffinity(0, &prev)

		runtime.UnlockOSThread()
	}

	return release, nil
}
