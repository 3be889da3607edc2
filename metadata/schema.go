package metadata

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/arloliu/timsdf/errs"
	"github.com/arloliu/timsdf/format"
	"github.com/arloliu/timsdf/frame"
)

// requiredFrameColumns are the frame table columns every readable
// acquisition must provide. TimsId is the block byte offset and
// BinarySize the block byte length inside the binary data file.
var requiredFrameColumns = []string{
	"Id", "Time", "Polarity", "MsMsType", "ScanMode", "NumScans", "NumPeaks",
	"AccumulationTime", "TimsId", "BinarySize",
}

// extendedFrameColumns are optional; their joint presence enables the
// dataset-wide extended metadata.
var extendedFrameColumns = []string{"SummedIntensities", "MaxIntensity"}

func tableExists(db *sql.DB, name string) (bool, error) {
	row := db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name=?", name)

	var found string
	if err := row.Scan(&found); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}

		return false, fmt.Errorf("%w: probe table %s: %w", errs.ErrIO, name, err)
	}

	return true, nil
}

func tableColumns(db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("%w: inspect table %s: %w", errs.ErrIO, table, err)
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var (
			cid      int
			name     string
			colType  string
			notNull  int
			dflt     sql.NullString
			primaryK int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &primaryK); err != nil {
			return nil, fmt.Errorf("%w: inspect table %s: %w", errs.ErrIO, table, err)
		}
		columns[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: inspect table %s: %w", errs.ErrIO, table, err)
	}

	return columns, nil
}

func (idx *Index) loadFrames(db *sql.DB) error {
	ok, err := tableExists(db, "Frames")
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: required table Frames is missing", errs.ErrSchema)
	}

	columns, err := tableColumns(db, "Frames")
	if err != nil {
		return err
	}

	var missing []string
	for _, col := range requiredFrameColumns {
		if !columns[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: Frames table is missing columns %s",
			errs.ErrSchema, strings.Join(missing, ", "))
	}

	idx.hasExtended = true
	for _, col := range extendedFrameColumns {
		if !columns[col] {
			idx.hasExtended = false
			break
		}
	}

	query := "SELECT Id, Time, Polarity, MsMsType, ScanMode, NumScans, NumPeaks, AccumulationTime, TimsId, BinarySize"
	if idx.hasExtended {
		query += ", SummedIntensities, MaxIntensity"
	}
	query += " FROM Frames ORDER BY Id"

	rows, err := db.Query(query)
	if err != nil {
		return fmt.Errorf("%w: read Frames table: %w", errs.ErrIO, err)
	}
	defer rows.Close()

	prevID := int64(-1)
	for rows.Next() {
		var (
			fm                 FrameMeta
			polarity           sql.NullString
			msmsType, scanMode int64
			numScans, numPeaks int64
			length             int64
			summed, maxInt     sql.NullFloat64
		)

		dest := []any{
			&fm.ID, &fm.Time, &polarity, &msmsType, &scanMode, &numScans, &numPeaks,
			&fm.AccumulationTime, &fm.Offset, &length,
		}
		if idx.hasExtended {
			dest = append(dest, &summed, &maxInt)
		}
		if err := rows.Scan(dest...); err != nil {
			return fmt.Errorf("%w: read Frames table: %w", errs.ErrIO, err)
		}

		if fm.ID <= prevID {
			return fmt.Errorf("%w: frame identifiers are not strictly increasing at id %d",
				errs.ErrSchema, fm.ID)
		}
		prevID = fm.ID

		if msmsType < 0 || msmsType > 255 || scanMode < 0 || scanMode > 255 {
			return fmt.Errorf("%w: frame %d has invalid MsMsType/ScanMode", errs.ErrSchema, fm.ID)
		}
		if numScans < 0 || numPeaks < 0 || length < 0 || fm.Offset < 0 {
			return fmt.Errorf("%w: frame %d has negative layout fields", errs.ErrSchema, fm.ID)
		}

		fm.Polarity = frame.PolarityFromString(polarity.String)
		fm.MsMsType = uint8(msmsType)
		fm.ScanMode = uint8(scanMode)
		fm.NumScans = uint32(numScans)
		fm.NumPeaks = uint64(numPeaks)
		fm.Length = uint32(length)
		if idx.hasExtended {
			fm.SummedIntensities = summed.Float64
			fm.MaxIntensity = maxInt.Float64
		}

		idx.byID[fm.ID] = len(idx.frames)
		idx.frames = append(idx.frames, fm)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: read Frames table: %w", errs.ErrIO, err)
	}

	return nil
}

func (idx *Index) loadGlobalMetadata(db *sql.DB) error {
	// Acquisitions predating the compression type entry default to the
	// packed payload without an outer codec.
	idx.compression = format.CompressionTims

	ok, err := tableExists(db, "GlobalMetadata")
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	row := db.QueryRow("SELECT Value FROM GlobalMetadata WHERE Key='TimsCompressionType'")

	var value string
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return nil
		}

		return fmt.Errorf("%w: read GlobalMetadata: %w", errs.ErrIO, err)
	}

	ct, err := parseCompressionType(value)
	if err != nil {
		return err
	}
	idx.compression = ct

	return nil
}
