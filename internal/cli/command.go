package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command defines a CLI command with unified help generation.
type Command struct {
	// Flags defines command-specific flags.
	Flags *flag.FlagSet

	// Usage is the freeform usage string shown after "rxbench" in help.
	Usage string

	// Short is a one-line description.
	Short string

	// Long is the full description shown in help.
	// If empty, Short is used instead.
	Long string

	// Exec runs the command after flags are parsed.
	Exec func(o *IO, args []string) error
}

// usageError marks errors caused by how the command was invoked. Help is
// printed after them.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func (e usageError) Unwrap() error { return e.err }

// PrintHelp prints the full help output to w.
func (c *Command) PrintHelp(w io.Writer) {
	fprintln(w, "Usage: rxbench", c.Usage)
	fprintln(w)

	desc := c.Long
	if desc == "" {
		desc = c.Short
	}

	fprintln(w, desc)

	if c.Flags != nil && c.Flags.HasFlags() {
		fprintln(w)
		fprintln(w, "Flags:")

		var buf strings.Builder
		c.Flags.SetOutput(&buf)
		c.Flags.PrintDefaults()
		_, _ = fmt.Fprint(w, buf.String())
	}
}

// Run parses flags and executes the command. Returns exit code.
// Handles error printing internally for consistent output ordering.
func (c *Command) Run(o *IO, args []string) int {
	c.Flags.SetOutput(&strings.Builder{}) // discard pflag output

	err := c.Flags.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(o.Out())
			return 0
		}

		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		c.PrintHelp(o.ErrOut())

		return 1
	}

	err = c.Exec(o, c.Flags.Args())
	if err != nil {
		o.ErrPrintln("error:", err)

		var usageErr usageError
		if errors.As(err, &usageErr) {
			o.ErrPrintln()
			c.PrintHelp(o.ErrOut())
		}

		return 1
	}

	return 0
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}
