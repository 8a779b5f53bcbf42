// Package bench runs one regex benchmark: it validates the decoded
// definition, compiles the matcher, and samples the workload selected by the
// benchmark model.
package bench

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// Benchmark is a decoded benchmark definition. Treat it as read-only once
// decoded.
type Benchmark struct {
	Name     string
	Model    string
	Regex    Regex
	Haystack []byte
	Limits   Limits
}

// Regex holds the pattern list and the flags that apply to it.
type Regex struct {
	Patterns        []string
	CaseInsensitive bool

	// Unicode is decoded but ignored. Haystacks are always matched as UTF-8.
	Unicode bool
}

// Limits bounds the warm-up and measurement loops. A zero duration means no
// time budget.
type Limits struct {
	MaxIters       int
	MaxWarmupIters int
	MaxTime        time.Duration
	MaxWarmupTime  time.Duration
}

// Validate rejects definitions that no model can run and returns the parsed
// model. It never compiles.
func (b *Benchmark) Validate() (Model, error) {
	if len(b.Regex.Patterns) != 1 {
		return 0, fmt.Errorf("%w (got %d)", ErrMultiPattern, len(b.Regex.Patterns))
	}

	return ParseModel(b.Model)
}

// Pattern returns the single pattern. Call only after [Benchmark.Validate].
func (b *Benchmark) Pattern() string {
	return b.Regex.Patterns[0]
}

// HaystackString returns the haystack as text, failing if it is not UTF-8.
func (b *Benchmark) HaystackString() (string, error) {
	if !utf8.Valid(b.Haystack) {
		return "", ErrHaystackNotUTF8
	}

	return string(b.Haystack), nil
}
