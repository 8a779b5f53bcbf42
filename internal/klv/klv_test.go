package klv_test

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/calvinalkan/rxbench/internal/bench"
	"github.com/calvinalkan/rxbench/internal/klv"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	input := "name:9:curated/a\n" +
		"model:5:count\n" +
		"pattern:2:a+\n" +
		"case-insensitive:4:true\n" +
		"unicode:5:false\n" +
		"max-iters:3:100\n" +
		"max-warmup-iters:2:10\n" +
		"max-time:10:3000000000\n" +
		"max-warmup-time:9:500000000\n" +
		"haystack:11:aaa bb aaaa\n"

	got, err := klv.Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	want := &bench.Benchmark{
		Name:  "curated/a",
		Model: "count",
		Regex: bench.Regex{
			Patterns:        []string{"a+"},
			CaseInsensitive: true,
		},
		Haystack: []byte("aaa bb aaaa"),
		Limits: bench.Limits{
			MaxIters:       100,
			MaxWarmupIters: 10,
			MaxTime:        3 * time.Second,
			MaxWarmupTime:  500 * time.Millisecond,
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeValueMayContainSeparators(t *testing.T) {
	t.Parallel()

	got, err := klv.Parse([]byte("pattern:5:a:\nb:\nhaystack:6:x\n\ny:z\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if diff := cmp.Diff([]string{"a:\nb:"}, got.Regex.Patterns); diff != "" {
		t.Errorf("patterns mismatch (-want +got):\n%s", diff)
	}

	if string(got.Haystack) != "x\n\ny:z" {
		t.Errorf("haystack = %q", got.Haystack)
	}
}

func TestDecodeKeepsEveryPattern(t *testing.T) {
	t.Parallel()

	got, err := klv.Parse([]byte("pattern:1:a\npattern:1:b\npattern:0:\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if diff := cmp.Diff([]string{"a", "b", ""}, got.Regex.Patterns); diff != "" {
		t.Errorf("patterns mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeEmptyInput(t *testing.T) {
	t.Parallel()

	got, err := klv.Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if diff := cmp.Diff(&bench.Benchmark{}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
		wantMsg string
	}{
		{"NoSeparator", "model", klv.ErrMalformed, "missing ':' after key"},
		{"NoLength", "model:count\n", klv.ErrMalformed, "missing ':' after length"},
		{"BadLength", "model:x:count\n", klv.ErrMalformed, "bad value length"},
		{"NegativeLength", "model:-1:count\n", klv.ErrMalformed, "bad value length"},
		{"Truncated", "haystack:10:abc\n", klv.ErrMalformed, "not enough bytes remaining for length 10"},
		{"NoNewline", "model:5:count", klv.ErrMalformed, "did not find \\n after value for key 'model'"},
		{"WrongTerminator", "model:4:countX", klv.ErrMalformed, "did not find \\n"},
		{"UnknownKey", "flavor:3:abc\n", klv.ErrUnknownKey, "'flavor'"},
		{"BadBool", "unicode:3:yes\n", klv.ErrValue, "expected true or false"},
		{"BadInt", "max-iters:3:ten\n", klv.ErrValue, "max-iters"},
		{"NegativeInt", "max-time:2:-5\n", klv.ErrValue, "must not be negative"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := klv.Parse([]byte(tc.input))
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Parse(%q) error = %v, want %v", tc.input, err, tc.wantErr)
			}

			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("error %q should contain %q", err, tc.wantMsg)
			}
		})
	}
}

func TestDecodeReadError(t *testing.T) {
	t.Parallel()

	errRead := errors.New("disk on fire")

	_, err := klv.Decode(iotest.ErrReader(errRead))
	if !errors.Is(err, errRead) {
		t.Fatalf("Decode error = %v, want %v", err, errRead)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	t.Parallel()

	want := &bench.Benchmark{
		Name:  "wild/captures",
		Model: "grep-captures",
		Regex: bench.Regex{
			Patterns: []string{`(\w+):(\d+)?`, "second"},
			Unicode:  true,
		},
		Haystack: []byte("k:1\nv:\n"),
		Limits: bench.Limits{
			MaxIters:      7,
			MaxTime:       time.Second,
			MaxWarmupTime: time.Millisecond,
		},
	}

	got, err := klv.Parse(klv.Marshal(want))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
