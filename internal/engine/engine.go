// Package engine wraps the regex backends rxbench can measure behind one
// matcher interface.
//
// Both backends always decode the haystack as UTF-8. There is no switch to turn
// that off, and the Perl classes (\w, \d, \s, \b) stay ASCII-only either way.
package engine

import (
	"fmt"
	"iter"
)

// Options configures [Compile].
type Options struct {
	Kind            Kind
	CaseInsensitive bool

	// Captures asks the matcher to report capture group boundaries in
	// addition to the whole match. Without it only group 0 is reported.
	Captures bool
}

// Matcher is a compiled pattern. It holds no per-query state, so one value can
// be queried any number of times.
type Matcher interface {
	// FindAll yields successive non-overlapping leftmost-first matches.
	// Nothing is searched until the sequence is ranged over, and every range
	// starts a fresh search.
	FindAll(haystack string) iter.Seq[Match]

	// IsMatch reports whether the pattern matches anywhere in haystack.
	IsMatch(haystack string) bool

	// Captures reports whether matches carry capture group boundaries.
	Captures() bool
}

// Span is a half-open byte range into a haystack.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Match is one match found by [Matcher.FindAll].
type Match struct {
	haystack string
	// slots holds start/end pairs, group 0 first. A negative start means the
	// group did not participate.
	slots []int
}

// Span returns the bounds of the whole match.
func (m Match) Span() Span {
	return Span{Start: m.slots[0], End: m.slots[1]}
}

// Str returns the matched text.
func (m Match) Str() string {
	return m.haystack[m.slots[0]:m.slots[1]]
}

// GroupLen returns the number of group slots, including group 0.
func (m Match) GroupLen() int {
	return len(m.slots) / 2
}

// Group returns the bounds of group i. ok is false when i is out of range or
// the group did not take part in the match.
func (m Match) Group(i int) (Span, bool) {
	if i < 0 || i >= m.GroupLen() {
		return Span{}, false
	}

	start, end := m.slots[2*i], m.slots[2*i+1]
	if start < 0 {
		return Span{}, false
	}

	return Span{Start: start, End: end}, true
}

// finder is the method set shared by *regexp.Regexp and *re2.Regexp.
type finder interface {
	FindAllStringIndex(s string, n int) [][]int
	FindAllStringSubmatchIndex(s string, n int) [][]int
	MatchString(s string) bool
}

// Compile builds a matcher for pattern with the backend named in opts.
//
// Backend failures come back as *[CompileError].
func Compile(pattern string, opts Options) (Matcher, error) {
	expr := pattern
	if opts.CaseInsensitive {
		// A prefix, not a wrapping group: the pattern must not be able to
		// close a group it did not open.
		expr = "(?i)" + pattern
	}

	var (
		f   finder
		err error
	)

	switch opts.Kind {
	case PikeVM:
		f, err = compileVM(expr)
	case PikeJIT:
		f, err = compileJIT(expr)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, opts.Kind)
	}

	if err != nil {
		return nil, &CompileError{Kind: opts.Kind, Pattern: pattern, Err: err}
	}

	return &matcher{re: f, captures: opts.Captures}, nil
}

type matcher struct {
	re       finder
	captures bool
}

func (m *matcher) FindAll(haystack string) iter.Seq[Match] {
	return func(yield func(Match) bool) {
		var all [][]int
		if m.captures {
			all = m.re.FindAllStringSubmatchIndex(haystack, -1)
		} else {
			all = m.re.FindAllStringIndex(haystack, -1)
		}

		for _, slots := range all {
			if !yield(Match{haystack: haystack, slots: slots}) {
				return
			}
		}
	}
}

func (m *matcher) IsMatch(haystack string) bool {
	return m.re.MatchString(haystack)
}

func (m *matcher) Captures() bool {
	return m.captures
}
