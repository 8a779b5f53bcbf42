package klv

import (
	"strconv"

	"github.com/calvinalkan/rxbench/internal/bench"
)

// AppendItem appends one encoded item to dst.
func AppendItem(dst []byte, key string, value []byte) []byte {
	dst = append(dst, key...)
	dst = append(dst, ':')
	dst = strconv.AppendInt(dst, int64(len(value)), 10)
	dst = append(dst, ':')
	dst = append(dst, value...)

	return append(dst, '\n')
}

// Marshal encodes b. Parse(Marshal(b)) yields an equal benchmark.
func Marshal(b *bench.Benchmark) []byte {
	var out []byte

	out = AppendItem(out, KeyName, []byte(b.Name))
	out = AppendItem(out, KeyModel, []byte(b.Model))

	for _, p := range b.Regex.Patterns {
		out = AppendItem(out, KeyPattern, []byte(p))
	}

	out = AppendItem(out, KeyCaseInsensitive, strconv.AppendBool(nil, b.Regex.CaseInsensitive))
	out = AppendItem(out, KeyUnicode, strconv.AppendBool(nil, b.Regex.Unicode))
	out = AppendItem(out, KeyMaxIters, strconv.AppendInt(nil, int64(b.Limits.MaxIters), 10))
	out = AppendItem(out, KeyMaxWarmupIters, strconv.AppendInt(nil, int64(b.Limits.MaxWarmupIters), 10))
	out = AppendItem(out, KeyMaxTime, strconv.AppendInt(nil, int64(b.Limits.MaxTime), 10))
	out = AppendItem(out, KeyMaxWarmupTime, strconv.AppendInt(nil, int64(b.Limits.MaxWarmupTime), 10))
	out = AppendItem(out, KeyHaystack, b.Haystack)

	return out
}
