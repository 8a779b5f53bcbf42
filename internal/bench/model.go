package bench

import (
	"fmt"
	"iter"
	"strings"

	"github.com/calvinalkan/rxbench/internal/engine"
)

// Model names a measured workload.
type Model int

// Benchmark models. The zero value is invalid.
const (
	ModelCompile Model = iota + 1
	ModelCount
	ModelCountSpans
	ModelCountCaptures
	ModelGrep
	ModelGrepCaptures
)

var modelNames = map[Model]string{
	ModelCompile:       "compile",
	ModelCount:         "count",
	ModelCountSpans:    "count-spans",
	ModelCountCaptures: "count-captures",
	ModelGrep:          "grep",
	ModelGrepCaptures:  "grep-captures",
}

// Models returns every model in a stable order.
func Models() []Model {
	return []Model{
		ModelCompile,
		ModelCount,
		ModelCountSpans,
		ModelCountCaptures,
		ModelGrep,
		ModelGrepCaptures,
	}
}

// ParseModel parses a model name from a benchmark definition.
func ParseModel(name string) (Model, error) {
	for _, m := range Models() {
		if modelNames[m] == name {
			return m, nil
		}
	}

	return 0, fmt.Errorf("%w '%s'", ErrUnknownModel, name)
}

func (m Model) String() string {
	if name, ok := modelNames[m]; ok {
		return name
	}

	return fmt.Sprintf("Model(%d)", int(m))
}

// NeedsCaptures reports whether the model counts capture groups and so needs
// a matcher that tracks them.
func (m Model) NeedsCaptures() bool {
	switch m {
	case ModelCompile, ModelCount, ModelCountSpans, ModelGrep:
		return false
	case ModelCountCaptures, ModelGrepCaptures:
		return true
	}

	panic(fmt.Sprintf("bench: invalid model %d", int(m)))
}

// Workload is one timed unit of work over a compiled matcher and a haystack.
// It returns the count reported with the sample.
type Workload func(m engine.Matcher, haystack string) (int, error)

func countMatches(m engine.Matcher, haystack string) (int, error) {
	count := 0
	for range m.FindAll(haystack) {
		count++
	}

	return count, nil
}

func countSpans(m engine.Matcher, haystack string) (int, error) {
	sum := 0
	for match := range m.FindAll(haystack) {
		sum += len(match.Str())
	}

	return sum, nil
}

func countCaptures(m engine.Matcher, haystack string) (int, error) {
	return populatedGroups(m, haystack), nil
}

func grep(m engine.Matcher, haystack string) (int, error) {
	count := 0

	for line := range lines(haystack) {
		if m.IsMatch(line) {
			count++
		}
	}

	return count, nil
}

func grepCaptures(m engine.Matcher, haystack string) (int, error) {
	count := 0
	for line := range lines(haystack) {
		count += populatedGroups(m, line)
	}

	return count, nil
}

// populatedGroups counts every group slot, group 0 included, that took part
// in a match.
func populatedGroups(m engine.Matcher, haystack string) int {
	count := 0

	for match := range m.FindAll(haystack) {
		for i := range match.GroupLen() {
			if _, ok := match.Group(i); ok {
				count++
			}
		}
	}

	return count
}

// lines yields the lines of s without their terminators. A "\r\n" terminator
// is removed whole, and a trailing terminator does not start another line.
func lines(s string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for line := range strings.Lines(s) {
			if trimmed, ok := strings.CutSuffix(line, "\n"); ok {
				line = strings.TrimSuffix(trimmed, "\r")
			}

			if !yield(line) {
				return
			}
		}
	}
}
