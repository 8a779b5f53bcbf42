package bench

import "time"

// maxPrealloc caps how many samples are allocated up front, so a huge
// iteration limit cut short by a time budget does not reserve memory it never
// uses.
const maxPrealloc = 1 << 16

// Sample is the outcome of one measured iteration.
type Sample struct {
	Duration time.Duration
	Count    int
}

// Run samples bench under lim. See [RunAndCount].
func Run(lim Limits, bench func() (int, error)) ([]Sample, error) {
	identity := func(n int) (int, error) { return n, nil }

	return RunAndCount(lim, identity, bench)
}

// RunAndCount samples bench followed by count under lim.
//
// The warm-up loop runs at most lim.MaxWarmupIters iterations and stops once
// lim.MaxWarmupTime has elapsed. Its results are discarded. The measurement
// loop then runs at most lim.MaxIters iterations and stops once lim.MaxTime has
// elapsed since it began. Each measured iteration times bench and count
// together and records one [Sample].
//
// Any error aborts the run and no samples are returned.
func RunAndCount[T any](lim Limits, count func(T) (int, error), bench func() (T, error)) ([]Sample, error) {
	warmupStart := time.Now()

	for range lim.MaxWarmupIters {
		_, err := iterate(count, bench)
		if err != nil {
			return nil, err
		}

		if expired(warmupStart, lim.MaxWarmupTime) {
			break
		}
	}

	samples := make([]Sample, 0, min(max(lim.MaxIters, 0), maxPrealloc))
	runStart := time.Now()

	for range lim.MaxIters {
		start := time.Now()
		n, err := iterate(count, bench)
		elapsed := time.Since(start)

		if err != nil {
			return nil, err
		}

		samples = append(samples, Sample{Duration: elapsed, Count: n})

		if expired(runStart, lim.MaxTime) {
			break
		}
	}

	return samples, nil
}

func iterate[T any](count func(T) (int, error), bench func() (T, error)) (int, error) {
	result, err := bench()
	if err != nil {
		return 0, err
	}

	return count(result)
}

func expired(start time.Time, budget time.Duration) bool {
	return budget > 0 && time.Since(start) >= budget
}
