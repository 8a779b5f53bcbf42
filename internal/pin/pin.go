// Package pin binds the calling goroutine to one OS thread on one CPU while
// samples are taken.
package pin

import (
	"errors"
	"fmt"
)

// Error variables for CPU pinning.
var (
	ErrInvalidCPU  = errors.New("invalid cpu index")
	ErrUnsupported = errors.New("cpu pinning is not supported on this platform")
)

// CPU locks the calling goroutine to its OS thread and restricts that thread
// to the given CPU. The returned release func restores the previous affinity
// and unlocks the thread. It must be called from the same goroutine.
func CPU(cpu int) (func(), error) {
	if cpu < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCPU, cpu)
	}

	return pinCPU(cpu)
}
