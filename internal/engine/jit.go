package engine

import (
	"regexp/syntax"

	re2 "github.com/wasilibs/go-re2"
)

// compileJIT parses expr on the Go side first. RE2 logs its own parse errors
// straight to the process stderr, bypassing the CLI's writers.
func compileJIT(expr string) (finder, error) {
	_, err := syntax.Parse(expr, syntax.Perl)
	if err != nil {
		return nil, err
	}

	return re2.Compile(expr)
}
