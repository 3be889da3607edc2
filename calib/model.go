// Package calib evaluates the vendor calibration polynomials that map
// raw indices onto physical units: scan index to inverse reduced ion
// mobility (1/K0) and time-of-flight index to mass-to-charge.
//
// Coefficients are opaque inputs supplied by the instrument vendor; this
// package applies them and never derives them. A Model is immutable and
// both conversions are pure functions, so a Model is safe for concurrent
// use.
package calib

import (
	"fmt"

	"github.com/arloliu/timsdf/errs"
)

// Params are the raw per-acquisition calibration inputs.
type Params struct {
	// TimsCoeffs are the scan-index to mobility polynomial coefficients,
	// lowest order first.
	TimsCoeffs []float64
	// TimsDirection is +1 when the polynomial is stored over the natural
	// scan axis and -1 when it is stored over the reversed axis (mobility
	// decreasing with scan index).
	TimsDirection int
	// MzCoeffs are the TOF-index to m/z polynomial coefficients, lowest
	// order first.
	MzCoeffs []float64
	// NumScans is the scan count of the acquisition; it bounds the valid
	// scan index range and anchors the reversed axis.
	NumScans uint32
}

// Model is an immutable, evaluable calibration.
type Model struct {
	timsCoeffs []float64
	direction  int
	mzCoeffs   []float64
	numScans   uint32
}

// Load builds a Model from raw calibration parameters.
//
// It fails with an error wrapping errs.ErrMissingCalibration when either
// coefficient set is absent or empty, and with one wrapping
// errs.ErrSchema when the direction flag is invalid.
func Load(p Params) (*Model, error) {
	if len(p.TimsCoeffs) == 0 || len(p.MzCoeffs) == 0 {
		return nil, fmt.Errorf("%w: acquisition carries no calibration coefficients", errs.ErrMissingCalibration)
	}
	if p.TimsDirection != 1 && p.TimsDirection != -1 {
		return nil, fmt.Errorf("%w: calibration direction must be 1 or -1, got %d", errs.ErrSchema, p.TimsDirection)
	}

	m := &Model{
		timsCoeffs: append([]float64(nil), p.TimsCoeffs...),
		direction:  p.TimsDirection,
		mzCoeffs:   append([]float64(nil), p.MzCoeffs...),
		numScans:   p.NumScans,
	}

	return m, nil
}

// Mobility converts a scan index to inverse reduced ion mobility (1/K0).
//
// The conversion is monotonic in the scan index; the stored direction
// flag fixes whether it increases or decreases. Scan indices at or above
// the acquisition's scan count fail with errs.ErrOutOfRange.
func (m *Model) Mobility(scanIndex uint32) (float64, error) {
	if scanIndex >= m.numScans {
		return 0, fmt.Errorf("%w: scan index %d, acquisition has %d scans",
			errs.ErrOutOfRange, scanIndex, m.numScans)
	}

	x := float64(scanIndex)
	if m.direction < 0 {
		x = float64(m.numScans-1) - x
	}

	return evalPolynomial(m.timsCoeffs, x), nil
}

// MZ converts a time-of-flight index to mass-to-charge.
func (m *Model) MZ(tofIndex uint32) float64 {
	return evalPolynomial(m.mzCoeffs, float64(tofIndex))
}

// evalPolynomial evaluates coefficients (lowest order first) at x using
// Horner's method.
func evalPolynomial(coeffs []float64, x float64) float64 {
	result := 0.0
	for i := len(coeffs) - 1; i >= 0; i-- {
		result = result*x + coeffs[i]
	}

	return result
}
