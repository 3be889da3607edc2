package metadata

import (
	"database/sql"
	"fmt"

	"github.com/arloliu/timsdf/errs"
	"github.com/arloliu/timsdf/frame"
)

// MaldiTableName is the imaging frame table. Its presence (with at least
// one row) makes the acquisition an imaging dataset.
const MaldiTableName = "MaldiFrameInfo"

func (idx *Index) loadMaldi(db *sql.DB) error {
	ok, err := tableExists(db, MaldiTableName)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	rows, err := db.Query("SELECT Frame, SpotName, XIndexPos, YIndexPos, PositionX, PositionY," +
		" LaserPower, LaserRepRate, NumLaserShots FROM " + MaldiTableName)
	if err != nil {
		return fmt.Errorf("%w: read %s table: %w", errs.ErrIO, MaldiTableName, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			mi               frame.MaldiInfo
			spotName         sql.NullString
			posX, posY       sql.NullFloat64
			power, repRate   sql.NullFloat64
			shots            sql.NullInt64
			pixelX, pixelY   int64
		)
		if err := rows.Scan(&mi.FrameID, &spotName, &pixelX, &pixelY,
			&posX, &posY, &power, &repRate, &shots); err != nil {
			return fmt.Errorf("%w: read %s table: %w", errs.ErrIO, MaldiTableName, err)
		}

		mi.SpotName = spotName.String
		mi.PixelX = int32(pixelX)
		mi.PixelY = int32(pixelY)
		mi.PositionX = posX.Float64
		mi.PositionY = posY.Float64
		mi.LaserPower = power.Float64
		mi.LaserRepRate = repRate.Float64
		mi.LaserShots = int32(shots.Int64)

		idx.maldi[mi.FrameID] = mi
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: read %s table: %w", errs.ErrIO, MaldiTableName, err)
	}

	idx.isMaldi = len(idx.maldi) > 0

	return nil
}
