package engine_test

import (
	"errors"
	"regexp/syntax"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/rxbench/internal/engine"
)

func TestParseKind(t *testing.T) {
	t.Parallel()

	for _, k := range engine.Kinds() {
		got, err := engine.ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := engine.ParseKind("backtrack")
	require.ErrorIs(t, err, engine.ErrUnknownEngine)
	assert.Equal(t, "unrecognized engine 'backtrack'", err.Error())

	_, err = engine.ParseKind("")
	require.ErrorIs(t, err, engine.ErrUnknownEngine)
}

func TestKindVersionNotEmpty(t *testing.T) {
	t.Parallel()

	for _, k := range engine.Kinds() {
		assert.NotEmpty(t, k.Version(), k.String())
	}
}

func spans(m engine.Matcher, haystack string) []engine.Span {
	var out []engine.Span
	for match := range m.FindAll(haystack) {
		out = append(out, match.Span())
	}

	return out
}

func TestFindAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		pattern  string
		opts     engine.Options
		haystack string
		want     []engine.Span
	}{
		{
			name:     "NonOverlapping",
			pattern:  "a+",
			haystack: "aaa bb aaaa",
			want:     []engine.Span{{Start: 0, End: 3}, {Start: 7, End: 11}},
		},
		{
			name:     "NoMatch",
			pattern:  "z",
			haystack: "aaa",
			want:     nil,
		},
		{
			name:     "EmptyHaystack",
			pattern:  "a",
			haystack: "",
			want:     nil,
		},
		{
			name:     "CaseInsensitive",
			pattern:  "abc",
			opts:     engine.Options{CaseInsensitive: true},
			haystack: "ABC abc aBc",
			want:     []engine.Span{{Start: 0, End: 3}, {Start: 4, End: 7}, {Start: 8, End: 11}},
		},
		{
			name:     "CaseSensitiveByDefault",
			pattern:  "abc",
			haystack: "ABC abc",
			want:     []engine.Span{{Start: 4, End: 7}},
		},
		{
			name:     "UnicodeAlwaysOn",
			pattern:  ".",
			haystack: "é",
			want:     []engine.Span{{Start: 0, End: 2}},
		},
		{
			name:     "CaseInsensitiveAlternation",
			pattern:  "x|y",
			opts:     engine.Options{CaseInsensitive: true},
			haystack: "XaY",
			want:     []engine.Span{{Start: 0, End: 1}, {Start: 2, End: 3}},
		},
	}

	for _, k := range engine.Kinds() {
		for _, tc := range tests {
			t.Run(k.String()+"/"+tc.name, func(t *testing.T) {
				t.Parallel()

				opts := tc.opts
				opts.Kind = k

				m, err := engine.Compile(tc.pattern, opts)
				require.NoError(t, err)

				if diff := cmp.Diff(tc.want, spans(m, tc.haystack)); diff != "" {
					t.Errorf("spans mismatch (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func TestFindAllIsRestartable(t *testing.T) {
	t.Parallel()

	for _, k := range engine.Kinds() {
		m, err := engine.Compile("b+", engine.Options{Kind: k})
		require.NoError(t, err)

		seq := m.FindAll("ab abb abbb")
		first := 0
		for range seq {
			first++
		}

		second := 0
		for range seq {
			second++
		}

		assert.Equal(t, 3, first, k.String())
		assert.Equal(t, first, second, k.String())
	}
}

func TestFindAllStopsEarly(t *testing.T) {
	t.Parallel()

	m, err := engine.Compile("a", engine.Options{Kind: engine.PikeVM})
	require.NoError(t, err)

	n := 0
	for range m.FindAll("aaaa") {
		n++
		if n == 2 {
			break
		}
	}

	assert.Equal(t, 2, n)
}

func TestCaptures(t *testing.T) {
	t.Parallel()

	for _, k := range engine.Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			t.Parallel()

			m, err := engine.Compile("(a)(b)?", engine.Options{Kind: k, Captures: true})
			require.NoError(t, err)
			require.True(t, m.Captures())

			var got []engine.Match
			for match := range m.FindAll("xa ab") {
				got = append(got, match)
			}

			require.Len(t, got, 2)

			first := got[0]
			assert.Equal(t, "a", first.Str())
			assert.Equal(t, 3, first.GroupLen())

			span, ok := first.Group(1)
			assert.True(t, ok)
			assert.Equal(t, engine.Span{Start: 1, End: 2}, span)

			_, ok = first.Group(2)
			assert.False(t, ok, "optional group did not participate")

			_, ok = first.Group(3)
			assert.False(t, ok, "out of range group")

			second := got[1]
			assert.Equal(t, "ab", second.Str())

			span, ok = second.Group(2)
			assert.True(t, ok)
			assert.Equal(t, 1, span.Len())
		})
	}
}

func TestNoCapturesReportsWholeMatchOnly(t *testing.T) {
	t.Parallel()

	for _, k := range engine.Kinds() {
		m, err := engine.Compile("(a)(b)", engine.Options{Kind: k})
		require.NoError(t, err)
		assert.False(t, m.Captures())

		for match := range m.FindAll("ab") {
			assert.Equal(t, 1, match.GroupLen(), k.String())

			span, ok := match.Group(0)
			assert.True(t, ok)
			assert.Equal(t, engine.Span{Start: 0, End: 2}, span)
		}
	}
}

func TestIsMatch(t *testing.T) {
	t.Parallel()

	for _, k := range engine.Kinds() {
		m, err := engine.Compile("a+", engine.Options{Kind: k})
		require.NoError(t, err)

		assert.True(t, m.IsMatch("bbab"), k.String())
		assert.False(t, m.IsMatch("bbb"), k.String())
		assert.False(t, m.IsMatch(""), k.String())
	}
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	for _, k := range engine.Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			t.Parallel()

			_, err := engine.Compile("a(b", engine.Options{Kind: k})
			require.Error(t, err)
			require.ErrorIs(t, err, engine.ErrCompile)

			var compileErr *engine.CompileError
			require.ErrorAs(t, err, &compileErr)
			assert.Equal(t, k, compileErr.Kind)
			assert.Equal(t, "a(b", compileErr.Pattern)
			assert.Contains(t, err.Error(), k.String())
		})
	}
}

func TestCompileCaseInsensitiveRejectsUnbalancedGroups(t *testing.T) {
	t.Parallel()

	for _, k := range engine.Kinds() {
		for _, pattern := range []string{"a)|(b", "a)(b", ")"} {
			_, err := engine.Compile(pattern, engine.Options{Kind: k, CaseInsensitive: true, Captures: true})
			require.ErrorIs(t, err, engine.ErrCompile, "%s %q", k, pattern)
		}
	}
}

func TestCompileCaseInsensitiveKeepsGroupLayout(t *testing.T) {
	t.Parallel()

	for _, k := range engine.Kinds() {
		re, err := engine.Compile("(a)(b)", engine.Options{Kind: k, CaseInsensitive: true, Captures: true})
		require.NoError(t, err, k.String())

		var groups []int
		for m := range re.FindAll("xAbx") {
			groups = append(groups, m.GroupLen())
		}

		assert.Equal(t, []int{3}, groups, k.String())
	}
}

func TestCompileErrorKeepsBackendDetail(t *testing.T) {
	t.Parallel()

	for _, k := range engine.Kinds() {
		_, err := engine.Compile("[z-a]", engine.Options{Kind: k})

		var syntaxErr *syntax.Error
		require.True(t, errors.As(err, &syntaxErr), k.String())
		assert.Equal(t, syntax.ErrInvalidCharRange, syntaxErr.Code, k.String())
	}
}

func TestCompileRejectsInvalidKind(t *testing.T) {
	t.Parallel()

	_, err := engine.Compile("a", engine.Options{})
	require.ErrorIs(t, err, engine.ErrUnknownEngine)
}
