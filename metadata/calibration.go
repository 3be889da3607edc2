package metadata

import (
	"database/sql"
	"fmt"

	"github.com/arloliu/timsdf/errs"
)

// Calibration coefficient tables. Each holds a single per-acquisition
// row of polynomial coefficients, lowest order first; the mobility table
// additionally records the monotonic direction of the scan axis.
const (
	TimsCalibrationTable = "TimsCalibration"
	MzCalibrationTable   = "MzCalibration"
)

func (idx *Index) loadCalibration(db *sql.DB) error {
	timsOK, err := tableExists(db, TimsCalibrationTable)
	if err != nil {
		return err
	}
	mzOK, err := tableExists(db, MzCalibrationTable)
	if err != nil {
		return err
	}
	if !timsOK || !mzOK {
		// Coefficients are optional; conversion requests against an
		// uncalibrated acquisition fail later with ErrMissingCalibration.
		return nil
	}

	cal := &Calibration{}

	row := db.QueryRow("SELECT C0, C1, C2, C3, Direction FROM " + TimsCalibrationTable + " LIMIT 1")
	var c0, c1, c2, c3 float64
	var direction int64
	if err := row.Scan(&c0, &c1, &c2, &c3, &direction); err != nil {
		if err == sql.ErrNoRows {
			return nil
		}

		return fmt.Errorf("%w: read %s table: %w", errs.ErrIO, TimsCalibrationTable, err)
	}
	if direction != 1 && direction != -1 {
		return fmt.Errorf("%w: %s Direction must be 1 or -1, got %d",
			errs.ErrSchema, TimsCalibrationTable, direction)
	}
	cal.TimsCoeffs = []float64{c0, c1, c2, c3}
	cal.TimsDirection = int(direction)

	row = db.QueryRow("SELECT C0, C1, C2, C3 FROM " + MzCalibrationTable + " LIMIT 1")
	if err := row.Scan(&c0, &c1, &c2, &c3); err != nil {
		if err == sql.ErrNoRows {
			return nil
		}

		return fmt.Errorf("%w: read %s table: %w", errs.ErrIO, MzCalibrationTable, err)
	}
	cal.MzCoeffs = []float64{c0, c1, c2, c3}

	idx.calibration = cal

	return nil
}
