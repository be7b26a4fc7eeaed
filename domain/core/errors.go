package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input errors. Malformed numeric or time data is fatal and surfaced
	// to the caller immediately; it is never coerced to a default.
	ErrMalformedSample = errors.New("malformed sample data")
	ErrMalformedFile   = errors.New("malformed metric dump")

	// Data-condition errors. These cover operations that require input the
	// caller failed to provide (missing files, unknown instances). Valid
	// empty or degenerate statistics are NOT errors - they are represented
	// as nil results by the stats packages.
	ErrNoData           = errors.New("no data loaded")
	ErrInsufficientData = errors.New("insufficient data for analysis")
	ErrRunNotFound      = errors.New("analysis run not found")
)

// Error constructors with context
func NewSampleError(position int, raw string, err error) error {
	return fmt.Errorf("%w: value %q at position %d: %v", ErrMalformedSample, raw, position, err)
}

func NewFileError(path string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrMalformedFile, path, err)
}

// Error checking helpers
func IsMalformedInput(err error) bool {
	return errors.Is(err, ErrMalformedSample) || errors.Is(err, ErrMalformedFile)
}

func IsInsufficientData(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}
