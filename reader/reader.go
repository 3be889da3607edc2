// Package reader composes the metadata index, the binary frame store,
// the frame decoder, and the calibration model into the acquisition
// facade.
//
// A FrameReader is safe for concurrent use once opened: metadata and
// calibration are immutable after load, block fetches use positioned
// reads with no shared cursor, and frame decoding is a pure function of
// the block bytes. All resources are scoped to the reader and released
// by Close; Open releases them itself on every error path.
package reader

import (
	"fmt"
	"iter"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/arloliu/timsdf/calib"
	"github.com/arloliu/timsdf/compress"
	"github.com/arloliu/timsdf/errs"
	"github.com/arloliu/timsdf/frame"
	"github.com/arloliu/timsdf/internal/options"
	"github.com/arloliu/timsdf/metadata"
	"github.com/arloliu/timsdf/tdfbin"
)

// FrameReader provides random and sequential access to the decoded
// frames of one acquisition.
type FrameReader struct {
	meta    *metadata.Index
	store   *tdfbin.Store
	model   *calib.Model
	acqType frame.AcquisitionType
	logger  *slog.Logger
}

// Open opens the acquisition at path, which must be a directory holding
// the metadata store (analysis.tdf) and the binary data file
// (analysis.tdf_bin).
//
// Errors identify the failing store: metadata problems (missing file,
// missing tables or columns) and binary-store problems (missing file,
// frame byte ranges outside the file) each come back wrapped with the
// store's name and the matching errs sentinel. A dataset without
// calibration tables opens fine; only conversion requests fail later
// with errs.ErrMissingCalibration.
func Open(path string, opts ...Option) (*FrameReader, error) {
	cfg := &config{logger: slog.New(slog.DiscardHandler)}
	if err := applyOptions(cfg, opts); err != nil {
		return nil, err
	}

	meta, err := metadata.Open(path, cfg.logger)
	if err != nil {
		return nil, fmt.Errorf("open metadata store: %w", err)
	}

	codec, err := compress.GetCodec(meta.Compression())
	if err != nil {
		return nil, fmt.Errorf("open metadata store: %w: %w", errs.ErrSchema, err)
	}

	entries := make([]tdfbin.Entry, 0, meta.Len())
	for fm := range meta.Frames() {
		entries = append(entries, tdfbin.Entry{ID: fm.ID, Offset: fm.Offset, Length: fm.Length})
	}

	binPath, err := resolveBinaryPath(path)
	if err != nil {
		return nil, fmt.Errorf("open binary frame store: %w", err)
	}

	store, err := tdfbin.Open(binPath, entries, codec, cfg.logger)
	if err != nil {
		return nil, fmt.Errorf("open binary frame store: %w", err)
	}

	r := &FrameReader{
		meta:    meta,
		store:   store,
		acqType: acquisitionType(meta),
		logger:  cfg.logger,
	}

	if cal := meta.Calibration(); cal != nil {
		model, err := calib.Load(calib.Params{
			TimsCoeffs:    cal.TimsCoeffs,
			TimsDirection: cal.TimsDirection,
			MzCoeffs:      cal.MzCoeffs,
			NumScans:      maxNumScans(meta),
		})
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("load calibration: %w", err)
		}
		r.model = model
	}

	return r, nil
}

func applyOptions(cfg *config, opts []Option) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := options.Apply(cfg, opt); err != nil {
			return err
		}
	}

	return nil
}

func resolveBinaryPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", errs.ErrIO, path, err)
	}

	dir := path
	if !info.IsDir() {
		dir = filepath.Dir(path)
	}

	return filepath.Join(dir, tdfbin.BinaryFileName), nil
}

// acquisitionType classifies the dataset from its MsMsType codes: any
// DDA-PASEF fragment frame (code 8) makes the acquisition DDA-PASEF,
// otherwise any DIA-PASEF frame (code 9) makes it DIA-PASEF.
func acquisitionType(meta *metadata.Index) frame.AcquisitionType {
	sawDIA := false
	for fm := range meta.Frames() {
		switch fm.MsMsType {
		case 8:
			return frame.AcquisitionDDAPASEF
		case 9:
			sawDIA = true
		}
	}
	if sawDIA {
		return frame.AcquisitionDIAPASEF
	}

	return frame.AcquisitionUnknown
}

func maxNumScans(meta *metadata.Index) uint32 {
	var maxScans uint32
	for fm := range meta.Frames() {
		if fm.NumScans > maxScans {
			maxScans = fm.NumScans
		}
	}

	return maxScans
}

// Len returns the number of frames in the acquisition.
func (r *FrameReader) Len() int {
	return r.meta.Len()
}

// IsMaldi reports whether the acquisition is an imaging dataset.
func (r *FrameReader) IsMaldi() bool {
	return r.meta.IsMaldi()
}

// AcquisitionType returns the dataset's acquisition mode. Like IsMaldi
// it is a dataset-wide property fixed at open time.
func (r *FrameReader) AcquisitionType() frame.AcquisitionType {
	return r.acqType
}

// Frame returns the fully hydrated frame for the given identifier:
// metadata, optional extended and imaging metadata, and scan data
// decoded on demand through Frame.Scans.
//
// Unknown identifiers fail with an error wrapping errs.ErrNotFound.
// A decoding failure of one frame never affects other frames.
func (r *FrameReader) Frame(id int64) (*frame.Frame, error) {
	fm, err := r.meta.Frame(id)
	if err != nil {
		return nil, err
	}

	return r.hydrate(fm), nil
}

// Frames returns a finite, restartable lazy sequence over all frames in
// ascending identifier order. Scan data stays undecoded until Scans is
// called on a yielded frame, so iterating metadata over very large
// imaging acquisitions stays cheap.
func (r *FrameReader) Frames() iter.Seq[*frame.Frame] {
	return r.Filter(nil)
}

// Filter returns a restartable lazy sequence over the frames matching
// the predicate, in ascending identifier order. A nil predicate matches
// every frame. The predicate sees hydrated frames and may inspect
// metadata without triggering block reads.
func (r *FrameReader) Filter(pred func(*frame.Frame) bool) iter.Seq[*frame.Frame] {
	return func(yield func(*frame.Frame) bool) {
		for fm := range r.meta.Frames() {
			f := r.hydrate(fm)
			if pred != nil && !pred(f) {
				continue
			}
			if !yield(f) {
				return
			}
		}
	}
}

// Calibration returns the acquisition's calibration model, or an error
// wrapping errs.ErrMissingCalibration when the acquisition carries no
// coefficients.
func (r *FrameReader) Calibration() (*calib.Model, error) {
	if r.model == nil {
		return nil, fmt.Errorf("%w: acquisition has no calibration tables", errs.ErrMissingCalibration)
	}

	return r.model, nil
}

// Checksum returns the xxHash64 digest of a frame's raw block bytes.
// Repeated calls against an unchanged file return the same digest.
func (r *FrameReader) Checksum(id int64) (uint64, error) {
	return r.store.Checksum(id)
}

// Close releases the reader's file handles. The reader must not be used
// afterwards.
func (r *FrameReader) Close() error {
	return r.store.Close()
}

func (r *FrameReader) hydrate(fm metadata.FrameMeta) *frame.Frame {
	f := &frame.Frame{
		ID:               fm.ID,
		Time:             fm.Time,
		MSLevel:          frame.MSLevelFromMsMsType(fm.MsMsType),
		Polarity:         fm.Polarity,
		ScanMode:         fm.ScanMode,
		NumScans:         fm.NumScans,
		PeakCount:        fm.NumPeaks,
		AccumulationTime: fm.AccumulationTime,
	}
	if fm.AccumulationTime > 0 {
		f.IntensityCorrectionFactor = 1.0 / fm.AccumulationTime
	}

	if r.meta.HasExtended() {
		f.Extended = &frame.ExtendedMeta{
			SummedIntensities: fm.SummedIntensities,
			MaxIntensity:      fm.MaxIntensity,
		}
	}

	// Populated for every frame of an imaging dataset, never otherwise;
	// an individually missing row degrades to nil inside MaldiInfo.
	f.Maldi = r.meta.MaldiInfo(fm.ID)

	id, numScans, numPeaks := fm.ID, fm.NumScans, fm.NumPeaks
	f.ScanSource = func() ([]frame.Scan, error) {
		payload, err := r.store.ReadPayload(id)
		if err != nil {
			return nil, err
		}

		return frame.Decode(payload, numScans, numPeaks)
	}

	return f
}
