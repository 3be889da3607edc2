// Package encoding implements the low-level integer stream codecs of the
// packed frame payload.
//
// A payload carries two physical streams:
//
//   - Scan counts: one unsigned varint per scan holding that scan's peak
//     count. Cumulative scan offsets are not stored; decoders derive them
//     as prefix sums.
//   - Peak pairs: for every peak, in scan order, a zigzag-encoded varint
//     mobility-index delta followed by an unsigned varint intensity. The
//     delta chain restarts at zero at the start of every scan.
//
// Varints are the byte-oriented encoding of encoding/binary: 7 data bits
// per byte, high bit set on continuation bytes. Zigzag folds signed
// deltas into unsigned values (v -> 2v for v >= 0, v -> -2v-1 for v < 0)
// so that small magnitudes of either sign encode in one byte.
//
// This package is purely mechanical: it reports truncation and 32-bit
// range violations but knows nothing about frames. The frame package
// maps these failures onto the corrupt-frame error taxonomy and enforces
// the frame-level invariants (peak totals, delta accumulation bounds).
package encoding
