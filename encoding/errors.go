package encoding

import "errors"

var (
	// ErrTruncated indicates the input ended in the middle of an encoded
	// integer, or before the expected number of values was decoded.
	ErrTruncated = errors.New("truncated varint stream")

	// ErrValueOverflow indicates a decoded value does not fit the 32-bit
	// range required for scan counts, mobility deltas, or intensities.
	ErrValueOverflow = errors.New("varint value overflows 32-bit range")
)
