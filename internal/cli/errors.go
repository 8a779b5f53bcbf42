package cli

import "errors"

// Error variables for CLI and config handling.
var (
	ErrMissingEngine      = errors.New("missing engine name")
	ErrTooManyArgs        = errors.New("expected exactly one engine name")
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrLogLevelInvalid    = errors.New("invalid log level")
	ErrPinCPUInvalid      = errors.New("pin_cpu must not be negative")
)
