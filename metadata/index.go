// Package metadata loads the relational metadata store of a TIMS-TOF
// acquisition directory (analysis.tdf, an SQLite database) into
// immutable in-memory structures.
//
// The index is loaded eagerly and completely by Open: frame descriptors,
// the optional MALDI imaging table, calibration coefficient rows, and
// the global key/value metadata. The SQLite connection is closed before
// Open returns, so a loaded Index performs no further I/O and is safe
// for concurrent use without locking.
package metadata

import (
	"database/sql"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/arloliu/timsdf/errs"
	"github.com/arloliu/timsdf/format"
	"github.com/arloliu/timsdf/frame"
)

// MetadataFileName is the name of the relational metadata store inside
// an acquisition directory.
const MetadataFileName = "analysis.tdf"

// FrameMeta is one row of the frame table: the descriptor of a single
// frame, including its byte range in the binary data file.
type FrameMeta struct {
	// ID is the unique, strictly increasing frame identifier.
	ID int64
	// Time is the acquisition (retention) time in seconds.
	Time float64
	// MsMsType is the vendor MS/MS type code (0 MS1, 8/9 MS2).
	MsMsType uint8
	// Polarity is the ion polarity of the frame.
	Polarity frame.Polarity
	// ScanMode is the vendor scan mode code.
	ScanMode uint8
	// NumScans is the number of mobility scans in the frame.
	NumScans uint32
	// NumPeaks is the declared total peak count of the frame.
	NumPeaks uint64
	// AccumulationTime is the ion accumulation time in milliseconds.
	AccumulationTime float64
	// Offset and Length locate the frame's compressed block inside the
	// binary data file.
	Offset int64
	Length uint32

	// SummedIntensities and MaxIntensity are only meaningful when the
	// dataset carries the optional extended frame columns; see
	// Index.HasExtended.
	SummedIntensities float64
	MaxIntensity      float64
}

// Calibration holds the raw per-acquisition calibration coefficient rows
// as stored in the metadata tables. The calib package turns them into an
// evaluable model.
type Calibration struct {
	// TimsCoeffs are the scan-index to mobility polynomial coefficients,
	// lowest order first.
	TimsCoeffs []float64
	// TimsDirection is +1 when mobility increases with scan index and
	// -1 when the polynomial is stored over the reversed scan axis.
	TimsDirection int
	// MzCoeffs are the TOF-index to m/z polynomial coefficients, lowest
	// order first.
	MzCoeffs []float64
}

// Index is the loaded metadata of one acquisition.
type Index struct {
	frames      []FrameMeta
	byID        map[int64]int
	maldi       map[int64]frame.MaldiInfo
	isMaldi     bool
	hasExtended bool
	compression format.CompressionType
	calibration *Calibration
	logger      *slog.Logger
}

// Open loads the metadata store of the acquisition at path.
//
// path may be the acquisition directory (containing analysis.tdf) or the
// metadata file itself. logger may be nil, in which case the index is
// silent.
//
// Open fails with an error wrapping errs.ErrIO when the store cannot be
// read and with one wrapping errs.ErrSchema when a required table or
// column is missing or the frame table is structurally invalid. The
// absence of the MALDI or calibration tables is not an error.
func Open(path string, logger *slog.Logger) (*Index, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	dbPath, err := resolveMetadataPath(path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", errs.ErrIO, dbPath, err)
	}
	defer db.Close()

	idx := &Index{
		byID:   make(map[int64]int),
		maldi:  make(map[int64]frame.MaldiInfo),
		logger: logger,
	}

	if err := idx.loadFrames(db); err != nil {
		return nil, err
	}
	if err := idx.loadGlobalMetadata(db); err != nil {
		return nil, err
	}
	if err := idx.loadMaldi(db); err != nil {
		return nil, err
	}
	if err := idx.loadCalibration(db); err != nil {
		return nil, err
	}

	logger.Debug("metadata index loaded",
		"frames", len(idx.frames),
		"maldi", idx.isMaldi,
		"extended", idx.hasExtended,
		"compression", idx.compression.String(),
	)

	return idx, nil
}

func resolveMetadataPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", errs.ErrIO, path, err)
	}
	if !info.IsDir() {
		return path, nil
	}

	dbPath := filepath.Join(path, MetadataFileName)
	if _, err := os.Stat(dbPath); err != nil {
		return "", fmt.Errorf("%w: %s: %w", errs.ErrIO, dbPath, err)
	}

	return dbPath, nil
}

// Len returns the number of frames in the acquisition.
func (idx *Index) Len() int {
	return len(idx.frames)
}

// Frame returns the descriptor for the given frame identifier, or an
// error wrapping errs.ErrNotFound for an unknown identifier.
func (idx *Index) Frame(id int64) (FrameMeta, error) {
	i, ok := idx.byID[id]
	if !ok {
		return FrameMeta{}, fmt.Errorf("%w: frame %d", errs.ErrNotFound, id)
	}

	return idx.frames[i], nil
}

// Frames returns a restartable sequence of frame descriptors in
// ascending identifier order. Each range over the returned sequence
// starts from the first frame.
func (idx *Index) Frames() iter.Seq[FrameMeta] {
	return func(yield func(FrameMeta) bool) {
		for _, fm := range idx.frames {
			if !yield(fm) {
				return
			}
		}
	}
}

// IsMaldi reports whether the acquisition is an imaging dataset: the
// MALDI frame table exists and is non-empty. The answer is fixed at open
// time.
func (idx *Index) IsMaldi() bool {
	return idx.isMaldi
}

// MaldiInfo returns the imaging metadata for the given frame, or nil.
//
// For non-imaging datasets the result is always nil; that is a
// documented, expected path, not an error. For an imaging dataset with
// an unexpectedly absent row the miss is logged and nil is returned
// rather than failing the frame read.
func (idx *Index) MaldiInfo(id int64) *frame.MaldiInfo {
	if !idx.isMaldi {
		return nil
	}

	mi, ok := idx.maldi[id]
	if !ok {
		idx.logger.Warn("imaging dataset has no MALDI row for frame", "frame_id", id)
		return nil
	}

	return &mi
}

// HasExtended reports whether the frame table carries the optional
// extended columns (summed and maximum intensity). Like IsMaldi this is
// a dataset-wide property asserted once at open time.
func (idx *Index) HasExtended() bool {
	return idx.hasExtended
}

// Compression returns the block payload compression type recorded in the
// global metadata table.
func (idx *Index) Compression() format.CompressionType {
	return idx.compression
}

// Calibration returns the raw calibration coefficient rows, or nil when
// the acquisition carries none.
func (idx *Index) Calibration() *Calibration {
	return idx.calibration
}

func parseCompressionType(value string) (format.CompressionType, error) {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: TimsCompressionType %q is not an integer", errs.ErrSchema, value)
	}

	ct := format.CompressionType(v)
	switch ct {
	case format.CompressionTims, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		return ct, nil
	default:
		return 0, fmt.Errorf("%w: unknown TimsCompressionType %d", errs.ErrSchema, v)
	}
}
