// Package klv decodes benchmark definitions from the key-length-value format
// that benchmark drivers write to a runner's stdin.
//
// Each item is "<key>:<len>:<value>\n" where len is the byte length of value.
// Values are raw bytes and may contain ':' or '\n'.
package klv

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/calvinalkan/rxbench/internal/bench"
)

// Keys understood by [Decode].
const (
	KeyName            = "name"
	KeyModel           = "model"
	KeyPattern         = "pattern"
	KeyCaseInsensitive = "case-insensitive"
	KeyUnicode         = "unicode"
	KeyHaystack        = "haystack"
	KeyMaxIters        = "max-iters"
	KeyMaxWarmupIters  = "max-warmup-iters"
	KeyMaxTime         = "max-time"
	KeyMaxWarmupTime   = "max-warmup-time"
)

// Error variables for decoding.
var (
	ErrMalformed  = errors.New("invalid KLV item")
	ErrUnknownKey = errors.New("unrecognized KLV item key")
	ErrValue      = errors.New("invalid KLV value")
)

// Item is a single decoded key and its value.
type Item struct {
	Key   string
	Value []byte
}

// Decode reads r to EOF and decodes one benchmark definition.
//
// Decode does not check semantic rules such as the pattern count or the model
// name. See [bench.Benchmark.Validate].
func Decode(r io.Reader) (*bench.Benchmark, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	return Parse(raw)
}

// Parse decodes one benchmark definition from raw.
func Parse(raw []byte) (*bench.Benchmark, error) {
	b := &bench.Benchmark{}

	for len(raw) > 0 {
		item, n, err := next(raw)
		if err != nil {
			return nil, err
		}

		raw = raw[n:]

		err = apply(b, item)
		if err != nil {
			return nil, err
		}
	}

	return b, nil
}

// next splits the first item off raw and reports how many bytes it used.
func next(raw []byte) (Item, int, error) {
	key, rest, ok := bytes.Cut(raw, []byte(":"))
	if !ok {
		return Item{}, 0, fmt.Errorf("%w: missing ':' after key", ErrMalformed)
	}

	lenField, rest, ok := bytes.Cut(rest, []byte(":"))
	if !ok {
		return Item{}, 0, fmt.Errorf("%w: missing ':' after length for key '%s'", ErrMalformed, key)
	}

	valueLen, err := strconv.Atoi(string(lenField))
	if err != nil || valueLen < 0 {
		return Item{}, 0, fmt.Errorf("%w: bad value length %q for key '%s'", ErrMalformed, lenField, key)
	}

	if len(rest) < valueLen {
		return Item{}, 0, fmt.Errorf(
			"%w: not enough bytes remaining for length %d for key '%s'",
			ErrMalformed, valueLen, key,
		)
	}

	value := rest[:valueLen]
	if len(rest) == valueLen || rest[valueLen] != '\n' {
		return Item{}, 0, fmt.Errorf("%w: did not find \\n after value for key '%s'", ErrMalformed, key)
	}

	n := len(key) + 1 + len(lenField) + 1 + valueLen + 1

	return Item{Key: string(key), Value: value}, n, nil
}

func apply(b *bench.Benchmark, item Item) error {
	var err error

	switch item.Key {
	case KeyName:
		b.Name = string(item.Value)
	case KeyModel:
		b.Model = string(item.Value)
	case KeyPattern:
		b.Regex.Patterns = append(b.Regex.Patterns, string(item.Value))
	case KeyCaseInsensitive:
		b.Regex.CaseInsensitive, err = parseBool(item)
	case KeyUnicode:
		b.Regex.Unicode, err = parseBool(item)
	case KeyHaystack:
		b.Haystack = item.Value
	case KeyMaxIters:
		b.Limits.MaxIters, err = parseCount(item)
	case KeyMaxWarmupIters:
		b.Limits.MaxWarmupIters, err = parseCount(item)
	case KeyMaxTime:
		b.Limits.MaxTime, err = parseNanos(item)
	case KeyMaxWarmupTime:
		b.Limits.MaxWarmupTime, err = parseNanos(item)
	default:
		return fmt.Errorf("%w '%s'", ErrUnknownKey, item.Key)
	}

	return err
}

func parseBool(item Item) (bool, error) {
	switch string(item.Value) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}

	return false, fmt.Errorf("%w for '%s': expected true or false, got %q", ErrValue, item.Key, item.Value)
}

func parseCount(item Item) (int, error) {
	n, err := strconv.Atoi(string(item.Value))
	if err != nil {
		return 0, fmt.Errorf("%w for '%s': %w", ErrValue, item.Key, err)
	}

	if n < 0 {
		return 0, fmt.Errorf("%w for '%s': must not be negative", ErrValue, item.Key)
	}

	return n, nil
}

func parseNanos(item Item) (time.Duration, error) {
	n, err := parseCount(item)
	if err != nil {
		return 0, err
	}

	return time.Duration(n), nil
}
