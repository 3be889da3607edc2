package frame

import (
	"fmt"
	"math"

	"github.com/arloliu/timsdf/encoding"
	"github.com/arloliu/timsdf/errs"
)

// Decode turns a packed frame block payload into scans.
//
// The payload must already be unwrapped from its outer compression layer
// (see the compress package); Decode only understands the packed varint
// layout.
//
// Decoding is two-pass:
//
//  1. Read numScans peak counts and derive the cumulative prefix-sum
//     offsets that locate each scan's peaks within the logical peak
//     stream. The summed total must equal declaredPeaks.
//  2. Walk the interleaved (delta, intensity) pairs once, rebuilding each
//     scan's absolute mobility indices as a running sum that restarts at
//     zero at the start of every scan.
//
// Scans come back in index order 0..numScans-1, peaks within a scan in
// increasing mobility-index order by construction. A scan with zero
// peaks decodes to an empty Scan; numScans == 0 decodes to an empty
// slice.
//
// Decode is a pure function of its inputs and safe for concurrent use.
//
// Failure conditions, all reported as errs.ErrCorruptFrame:
//   - the payload ends mid-encoded-integer
//   - the summed peak counts disagree with declaredPeaks (the decoder
//     never truncates or pads to reconcile a mismatch)
//   - the mobility running sum leaves the uint32 range (overflow is
//     fatal, never silent wraparound)
//   - an intensity exceeds the uint32 range
//
// Bytes remaining after the final peak pair are tolerated as alignment
// padding.
func Decode(payload []byte, numScans uint32, declaredPeaks uint64) ([]Scan, error) {
	if numScans == 0 {
		if declaredPeaks != 0 {
			return nil, fmt.Errorf("%w: %d peaks declared for a frame with no scans", errs.ErrCorruptFrame, declaredPeaks)
		}

		return []Scan{}, nil
	}

	// Pass 1: peak counts and their total.
	countDecoder := encoding.NewScanCountDecoder()
	counts, offset, err := countDecoder.Decode(payload, int(numScans))
	if err != nil {
		return nil, fmt.Errorf("%w: scan count stream: %w", errs.ErrCorruptFrame, err)
	}

	var total uint64
	for _, c := range counts {
		total += uint64(c)
	}
	if total != declaredPeaks {
		return nil, fmt.Errorf("%w: decoded peak total %d disagrees with declared count %d",
			errs.ErrCorruptFrame, total, declaredPeaks)
	}

	// Pass 2: peak pairs with a per-scan delta chain.
	pairDecoder := encoding.NewPeakPairDecoder()
	scans := make([]Scan, numScans)

	for scanIndex, peakCount := range counts {
		if peakCount == 0 {
			scans[scanIndex] = Scan{}
			continue
		}

		indices := make([]uint32, 0, peakCount)
		intensities := make([]uint32, 0, peakCount)

		var mobility int64
		for p := uint32(0); p < peakCount; p++ {
			delta, intensity, n, err := pairDecoder.DecodePair(payload[offset:])
			if err != nil {
				return nil, fmt.Errorf("%w: scan %d peak %d: %w", errs.ErrCorruptFrame, scanIndex, p, err)
			}
			offset += n

			mobility += delta
			if mobility < 0 || mobility > math.MaxUint32 {
				return nil, fmt.Errorf("%w: scan %d peak %d: mobility index %d outside uint32 range",
					errs.ErrCorruptFrame, scanIndex, p, mobility)
			}

			indices = append(indices, uint32(mobility))
			intensities = append(intensities, intensity)
		}

		scans[scanIndex] = Scan{
			MobilityIndices: indices,
			Intensities:     intensities,
		}
	}

	return scans, nil
}
