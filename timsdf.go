// Package timsdf reads trapped-ion-mobility time-of-flight (TIMS-TOF)
// acquisition directories: an SQLite metadata store (analysis.tdf) plus
// a binary file of concatenated compressed frame blocks
// (analysis.tdf_bin).
//
// It decodes the vendor's packed frame format into per-scan peak lists,
// joins per-frame metadata and optional MALDI imaging metadata, and
// applies vendor calibration polynomials to convert raw indices into
// physical ion-mobility and mass-to-charge values.
//
// # Core Features
//
//   - Bit-exact decoding of the packed varint frame format with strict
//     corruption detection (no silent truncation or overflow)
//   - Lazy, restartable iteration over frames; scan data decoded on
//     demand, never cached by the library
//   - MALDI-TIMS-MSI support with pixel coordinates and laser metadata
//   - Safe concurrent reads after open: positioned file reads, immutable
//     metadata and calibration state
//   - Optional outer block compression (Zstandard, plus S2/LZ4 for
//     sidecar-recompressed datasets)
//
// # Basic Usage
//
//	reader, err := timsdf.Open("sample.d")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer reader.Close()
//
//	for f := range reader.Frames() {
//	    scans, err := f.Scans()
//	    if err != nil {
//	        log.Printf("frame %d: %v", f.ID, err)
//	        continue
//	    }
//	    fmt.Printf("frame %d: %d scans, %d peaks\n", f.ID, len(scans), f.PeakCount)
//	}
//
// Imaging datasets expose spatial metadata on every frame:
//
//	if reader.IsMaldi() {
//	    f, _ := reader.Frame(1)
//	    fmt.Printf("pixel (%d, %d)\n", f.Maldi.PixelX, f.Maldi.PixelY)
//	}
//
// # Package Structure
//
// This package provides thin wrappers around the reader package for the
// common cases. For direct access to the individual layers use the
// metadata, tdfbin, frame, and calib packages.
package timsdf

import (
	"log/slog"

	"github.com/arloliu/timsdf/reader"
)

// Open opens the acquisition at path and returns a reader over its
// frames.
//
// path must be the acquisition directory containing analysis.tdf and
// analysis.tdf_bin. The returned reader is safe for concurrent use and
// must be closed when done.
func Open(path string, opts ...reader.Option) (*reader.FrameReader, error) {
	return reader.Open(path, opts...)
}

// WithLogger attaches a structured logger to the reader; see
// reader.WithLogger.
func WithLogger(logger *slog.Logger) reader.Option {
	return reader.WithLogger(logger)
}
