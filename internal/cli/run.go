// Package cli implements the rxbench command line: it reads one benchmark
// definition from stdin, runs it with the engine named on the command line and
// prints one "<nanoseconds>,<count>" line per sample.
package cli

import (
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/rxbench/internal/bench"
	"github.com/calvinalkan/rxbench/internal/engine"
	"github.com/calvinalkan/rxbench/internal/klv"
	"github.com/calvinalkan/rxbench/internal/pin"
	"github.com/calvinalkan/rxbench/internal/report"
)

// Version is the rxbench version, overridden at build time with -ldflags.
var Version = "v0.1.0"

// Run is the main entry point. Returns exit code.
func Run(stdin io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string) int {
	o := NewIO(out, errOut)

	if len(args) == 0 {
		args = []string{"rxbench"}
	}

	return rootCmd(stdin, env).Run(o, args[1:])
}

type runOptions struct {
	quiet      bool
	version    bool
	configPath string
}

func rootCmd(stdin io.Reader, env map[string]string) *Command {
	var opts runOptions

	flags := flag.NewFlagSet("rxbench", flag.ContinueOnError)
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "Run the benchmark but do not print samples")
	flags.BoolVar(&opts.version, "version", false, "Print the engine version (or rxbench's without an engine) and exit")
	flags.StringVarP(&opts.configPath, "config", "c", "", "Use specified config file")

	return &Command{
		Flags: flags,
		Usage: "<engine> [flags] < benchmark.klv",
		Short: "Run one regex benchmark read from stdin",
		Long: `Run one regex benchmark read from stdin and print one "<nanoseconds>,<count>"
line per sample.

Engines:
  pike_vm     Go regexp (interpreted)
  pike_jit    RE2 compiled to WebAssembly, run by the wazero compiler

Models: compile, count, count-spans, count-captures, grep, grep-captures`,
		Exec: func(o *IO, args []string) error {
			return execRun(o, stdin, env, opts, args)
		},
	}
}

func execRun(o *IO, stdin io.Reader, env map[string]string, opts runOptions, args []string) error {
	if len(args) > 1 {
		return usageError{fmt.Errorf("%w, got %d arguments", ErrTooManyArgs, len(args))}
	}

	if len(args) == 0 {
		if opts.version {
			o.Println(Version)
			return nil
		}

		return usageError{ErrMissingEngine}
	}

	kind, err := engine.ParseKind(args[0])
	if err != nil {
		return usageError{err}
	}

	if opts.version {
		o.Println(kind.Version())
		return nil
	}

	cfg, err := LoadConfig(LoadConfigInput{ConfigPath: opts.configPath, Env: env})
	if err != nil {
		return err
	}

	logger := newLogger(o.ErrOut(), cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	logger.Debug("config loaded",
		zap.String("global", cfg.Sources.Global),
		zap.String("explicit", cfg.Sources.Explicit),
	)

	b, err := klv.Decode(stdin)
	if err != nil {
		return fmt.Errorf("failed to read KLV data from <stdin>: %w", err)
	}

	logger.Debug("benchmark decoded",
		zap.String("name", b.Name),
		zap.String("model", b.Model),
		zap.Stringer("engine", kind),
		zap.Int("patterns", len(b.Regex.Patterns)),
		zap.Int("haystack_bytes", len(b.Haystack)),
		zap.Int("max_iters", b.Limits.MaxIters),
		zap.Duration("max_time", b.Limits.MaxTime),
	)

	if !b.Regex.Unicode {
		logger.Debug("unicode=false is ignored, haystacks are always decoded as UTF-8")
	}

	samples, err := sample(logger, cfg, b, kind)
	if err != nil {
		return err
	}

	if cfg.SamplesFile != "" {
		err = report.WriteFile(cfg.SamplesFile, samples)
		if err != nil {
			return err
		}

		logger.Info("samples file written", zap.String("path", cfg.SamplesFile), zap.Int("samples", len(samples)))
	}

	if opts.quiet {
		return nil
	}

	return report.Write(o.Out(), samples)
}

// sample runs b, pinned to a CPU if configured.
func sample(logger *zap.Logger, cfg Config, b *bench.Benchmark, kind engine.Kind) ([]bench.Sample, error) {
	if cfg.PinCPU != nil {
		release, err := pin.CPU(*cfg.PinCPU)
		if err != nil {
			return nil, err
		}
		defer release()

		logger.Debug("pinned to cpu", zap.Int("cpu", *cfg.PinCPU))
	}

	start := time.Now()

	samples, err := bench.Execute(b, kind)
	if err != nil {
		return nil, err
	}

	logger.Debug("sampling finished",
		zap.Int("samples", len(samples)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return samples, nil
}
