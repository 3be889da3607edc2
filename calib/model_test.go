package calib

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/timsdf/errs"
)

func TestLoad_MissingCoefficients(t *testing.T) {
	_, err := Load(Params{TimsDirection: 1, NumScans: 10})
	require.ErrorIs(t, err, errs.ErrMissingCalibration)

	_, err = Load(Params{TimsCoeffs: []float64{1}, TimsDirection: 1, NumScans: 10})
	require.ErrorIs(t, err, errs.ErrMissingCalibration)

	_, err = Load(Params{MzCoeffs: []float64{1}, TimsDirection: 1, NumScans: 10})
	require.ErrorIs(t, err, errs.ErrMissingCalibration)
}

func TestLoad_InvalidDirection(t *testing.T) {
	_, err := Load(Params{
		TimsCoeffs:    []float64{1, 2},
		MzCoeffs:      []float64{1, 2},
		TimsDirection: 0,
		NumScans:      10,
	})
	require.ErrorIs(t, err, errs.ErrSchema)
}

func TestLoad_CopiesCoefficients(t *testing.T) {
	tims := []float64{1, 2}
	mz := []float64{3, 4}

	model, err := Load(Params{TimsCoeffs: tims, MzCoeffs: mz, TimsDirection: 1, NumScans: 4})
	require.NoError(t, err)

	// Mutating the caller's slices must not affect the model.
	tims[0] = 99
	mz[0] = 99

	mob, err := model.Mobility(0)
	require.NoError(t, err)
	require.InDelta(t, 1.0, mob, 1e-12)
	require.InDelta(t, 3.0, model.MZ(0), 1e-12)
}

func TestMobility_PolynomialEvaluation(t *testing.T) {
	// mobility(x) = 0.5 + 0.01*x + 0.001*x^2, natural axis.
	model, err := Load(Params{
		TimsCoeffs:    []float64{0.5, 0.01, 0.001},
		MzCoeffs:      []float64{0},
		TimsDirection: 1,
		NumScans:      100,
	})
	require.NoError(t, err)

	mob, err := model.Mobility(0)
	require.NoError(t, err)
	require.InDelta(t, 0.5, mob, 1e-12)

	mob, err = model.Mobility(10)
	require.NoError(t, err)
	require.InDelta(t, 0.5+0.1+0.1, mob, 1e-12)
}

func TestMobility_ReversedAxis(t *testing.T) {
	// With direction -1 the polynomial is evaluated over the reversed
	// scan axis: scan 0 maps to x = numScans-1.
	coeffs := []float64{0.5, 0.01}
	model, err := Load(Params{
		TimsCoeffs:    coeffs,
		MzCoeffs:      []float64{0},
		TimsDirection: -1,
		NumScans:      100,
	})
	require.NoError(t, err)

	first, err := model.Mobility(0)
	require.NoError(t, err)
	require.InDelta(t, 0.5+0.01*99, first, 1e-12)

	last, err := model.Mobility(99)
	require.NoError(t, err)
	require.InDelta(t, 0.5, last, 1e-12)

	// Mobility decreases with scan index on the reversed axis.
	prev := first
	for scan := uint32(1); scan < 100; scan++ {
		mob, err := model.Mobility(scan)
		require.NoError(t, err)
		require.Less(t, mob, prev)
		prev = mob
	}
}

func TestMobility_OutOfRange(t *testing.T) {
	model, err := Load(Params{
		TimsCoeffs:    []float64{1, 1},
		MzCoeffs:      []float64{1},
		TimsDirection: 1,
		NumScans:      10,
	})
	require.NoError(t, err)

	_, err = model.Mobility(10)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	_, err = model.Mobility(4096)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}

func TestMZ_PolynomialEvaluation(t *testing.T) {
	// mz(x) = 100 + 0.002*x.
	model, err := Load(Params{
		TimsCoeffs:    []float64{1},
		MzCoeffs:      []float64{100, 0.002},
		TimsDirection: 1,
		NumScans:      10,
	})
	require.NoError(t, err)

	require.InDelta(t, 100.0, model.MZ(0), 1e-12)
	require.InDelta(t, 300.0, model.MZ(100000), 1e-9)
}
