// Package main provides rxbench, a benchmark runner for regex engines.
//
// It reads one KLV-encoded benchmark from stdin and prints one
// "<nanoseconds>,<count>" line per sample to stdout.
package main

import (
	"os"
	"strings"

	"github.com/calvinalkan/rxbench/internal/cli"
)

func main() {
	environ := os.Environ()
	env := make(map[string]string, len(environ))

	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	exitCode := cli.Run(os.Stdin, os.Stdout, os.Stderr, os.Args, env)

	os.Exit(exitCode)
}
