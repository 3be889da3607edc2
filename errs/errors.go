// Package errs defines the sentinel errors shared by all timsdf packages.
//
// Callers match against these sentinels with errors.Is; the concrete
// errors returned by the library wrap them with contextual detail via
// fmt.Errorf("%w").
package errs

import "errors"

var (
	// ErrIO indicates a file-level failure: the metadata store or the
	// binary data file is missing, unreadable, or truncated.
	ErrIO = errors.New("i/o failure")

	// ErrSchema indicates that the metadata store is readable but
	// structurally invalid: a required table or column is absent, or the
	// frame table references byte ranges outside the binary data file.
	ErrSchema = errors.New("invalid metadata schema")

	// ErrNotFound indicates an unknown frame identifier.
	ErrNotFound = errors.New("frame not found")

	// ErrOutOfRange indicates a scan or peak index outside the bounds
	// recorded for the acquisition.
	ErrOutOfRange = errors.New("index out of range")

	// ErrCorruptFrame indicates that a frame block violated a decoding
	// invariant: a truncated varint, a peak-count mismatch, or an
	// arithmetic overflow during delta accumulation.
	ErrCorruptFrame = errors.New("corrupt frame")

	// ErrMissingCalibration indicates that a physical-unit conversion was
	// requested but the acquisition carries no calibration coefficients.
	ErrMissingCalibration = errors.New("missing calibration")
)
