// Package main provides rxbench-klv, a tool that encodes a benchmark
// definition for rxbench's stdin.
//
//	rxbench-klv -m count -p 'a+' -f haystack.txt | rxbench pike_vm
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/rxbench/internal/bench"
	"github.com/calvinalkan/rxbench/internal/klv"
)

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, out io.Writer) error {
	var (
		b            bench.Benchmark
		haystack     string
		haystackFile string
	)

	flags := flag.NewFlagSet("rxbench-klv", flag.ContinueOnError)
	flags.StringVarP(&b.Name, "name", "n", "adhoc", "Benchmark name")
	flags.StringVarP(&b.Model, "model", "m", "count", "Benchmark model")
	flags.StringArrayVarP(&b.Regex.Patterns, "pattern", "p", nil, "Pattern (repeatable)")
	flags.BoolVarP(&b.Regex.CaseInsensitive, "ignore-case", "i", false, "Match case-insensitively")
	flags.BoolVar(&b.Regex.Unicode, "unicode", true, "Request Unicode mode")
	flags.StringVar(&haystack, "haystack", "", "Haystack text")
	flags.StringVarP(&haystackFile, "haystack-file", "f", "", "Read the haystack from a file (- for stdin)")
	flags.IntVar(&b.Limits.MaxIters, "max-iters", 100, "Maximum measured iterations")
	flags.IntVar(&b.Limits.MaxWarmupIters, "max-warmup-iters", 10, "Maximum warm-up iterations")
	flags.DurationVar(&b.Limits.MaxTime, "max-time", 3*time.Second, "Measurement time budget")
	flags.DurationVar(&b.Limits.MaxWarmupTime, "max-warmup-time", time.Second, "Warm-up time budget")

	err := flags.Parse(args)
	if err != nil {
		return err
	}

	switch {
	case haystackFile == "-":
		b.Haystack, err = io.ReadAll(stdin)
	case haystackFile != "":
		b.Haystack, err = os.ReadFile(haystackFile)
	default:
		b.Haystack = []byte(haystack)
	}

	if err != nil {
		return fmt.Errorf("reading haystack: %w", err)
	}

	_, err = out.Write(klv.Marshal(&b))

	return err
}
