// Package report serializes benchmark samples as "<nanoseconds>,<count>"
// lines, one per sample, in iteration order.
package report

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/natefinch/atomic"

	"github.com/calvinalkan/rxbench/internal/bench"
)

// AppendSample appends the line for s, including its trailing newline.
func AppendSample(dst []byte, s bench.Sample) []byte {
	dst = strconv.AppendInt(dst, s.Duration.Nanoseconds(), 10)
	dst = append(dst, ',')
	dst = strconv.AppendInt(dst, int64(s.Count), 10)

	return append(dst, '\n')
}

// Write writes one line per sample to w.
func Write(w io.Writer, samples []bench.Sample) error {
	bw := bufio.NewWriter(w)

	var line []byte
	for _, s := range samples {
		line = AppendSample(line[:0], s)

		_, err := bw.Write(line)
		if err != nil {
			return fmt.Errorf("write samples: %w", err)
		}
	}

	err := bw.Flush()
	if err != nil {
		return fmt.Errorf("write samples: %w", err)
	}

	return nil
}

// WriteFile replaces path with the sample lines. Readers see either the old
// file or the complete new one.
func WriteFile(path string, samples []bench.Sample) error {
	var buf bytes.Buffer

	err := Write(&buf, samples)
	if err != nil {
		return err
	}

	err = atomic.WriteFile(path, &buf)
	if err != nil {
		return fmt.Errorf("write samples file %s: %w", path, err)
	}

	return nil
}
