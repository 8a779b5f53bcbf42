package bench

import "errors"

// Error variables for benchmark validation and execution.
var (
	ErrMultiPattern    = errors.New("multiregex are not supported: number of patterns must be 1")
	ErrUnknownModel    = errors.New("unrecognized benchmark model")
	ErrHaystackNotUTF8 = errors.New("haystack is not valid UTF-8")
)
