package cli

import (
	"fmt"
	"io"
)

// IO holds the writers a command prints to. Samples and help go to out,
// diagnostics to errOut.
type IO struct {
	out    io.Writer
	errOut io.Writer
}

// NewIO creates a new IO instance.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: out, errOut: errOut}
}

// Out returns the stdout writer.
func (o *IO) Out() io.Writer {
	return o.out
}

// ErrOut returns the stderr writer.
func (o *IO) ErrOut() io.Writer {
	return o.errOut
}

// Println writes to stdout.
func (o *IO) Println(a ...any) {
	_, _ = fmt.Fprintln(o.out, a...)
}

// ErrPrintln writes to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}
