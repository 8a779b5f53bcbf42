package bench

import (
	"fmt"

	"github.com/calvinalkan/rxbench/internal/engine"
)

// Compile validates b and builds its matcher with the given backend. Capture
// tracking is enabled only for models that count captures.
func Compile(b *Benchmark, kind engine.Kind) (engine.Matcher, error) {
	model, err := b.Validate()
	if err != nil {
		return nil, err
	}

	return compile(b, model, kind)
}

func compile(b *Benchmark, model Model, kind engine.Kind) (engine.Matcher, error) {
	return engine.Compile(b.Pattern(), engine.Options{
		Kind:            kind,
		CaseInsensitive: b.Regex.CaseInsensitive,
		Captures:        model.NeedsCaptures(),
	})
}

// Execute validates b, then runs its model with the given backend and returns
// the samples in iteration order.
func Execute(b *Benchmark, kind engine.Kind) ([]Sample, error) {
	model, err := b.Validate()
	if err != nil {
		return nil, err
	}

	haystack, err := b.HaystackString()
	if err != nil {
		return nil, err
	}

	switch model {
	case ModelCompile:
		return runCompile(b, model, kind, haystack)
	case ModelCount:
		return runWorkload(b, model, kind, haystack, countMatches)
	case ModelCountSpans:
		return runWorkload(b, model, kind, haystack, countSpans)
	case ModelCountCaptures:
		return runWorkload(b, model, kind, haystack, countCaptures)
	case ModelGrep:
		return runWorkload(b, model, kind, haystack, grep)
	case ModelGrepCaptures:
		return runWorkload(b, model, kind, haystack, grepCaptures)
	}

	panic(fmt.Sprintf("bench: invalid model %d", int(model)))
}

// runCompile rebuilds the matcher inside every timed iteration.
func runCompile(b *Benchmark, model Model, kind engine.Kind, haystack string) ([]Sample, error) {
	build := func() (engine.Matcher, error) {
		return compile(b, model, kind)
	}
	count := func(m engine.Matcher) (int, error) {
		return countMatches(m, haystack)
	}

	// A bad pattern must fail before the first sample.
	_, err := build()
	if err != nil {
		return nil, err
	}

	return RunAndCount(b.Limits, count, build)
}

// runWorkload compiles once and samples only the workload.
func runWorkload(b *Benchmark, model Model, kind engine.Kind, haystack string, w Workload) ([]Sample, error) {
	m, err := compile(b, model, kind)
	if err != nil {
		return nil, err
	}

	return Run(b.Limits, func() (int, error) {
		return w(m, haystack)
	})
}
