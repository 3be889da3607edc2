package frame

import (
	"fmt"

	"github.com/arloliu/timsdf/compress"
	"github.com/arloliu/timsdf/encoding"
	"github.com/arloliu/timsdf/endian"
	"github.com/arloliu/timsdf/format"
)

// Encoder builds packed frame block payloads in memory.
//
// It is the reference implementation of the wire format consumed by
// Decode and exists to construct synthetic frames for round-trip tests
// and tooling; the library never writes dataset files.
//
// Usage:
//
//	encoder := frame.NewEncoder()
//	encoder.AddScan([]uint32{5, 8}, []uint32{100, 50})
//	encoder.AddScan(nil, nil) // empty scan
//	payload, err := encoder.Payload()
type Encoder struct {
	counts *encoding.ScanCountEncoder
	pairs  *encoding.PeakPairEncoder
	peaks  uint64
}

// NewEncoder creates an empty frame block encoder.
func NewEncoder() *Encoder {
	return &Encoder{
		counts: encoding.NewScanCountEncoder(),
		pairs:  encoding.NewPeakPairEncoder(),
	}
}

// AddScan appends one scan's peak list.
//
// mobilityIndices must be strictly increasing (the encoding precondition
// of the wire format) and index-aligned with intensities. Passing two
// empty slices records a zero-peak scan.
func (e *Encoder) AddScan(mobilityIndices, intensities []uint32) error {
	if len(mobilityIndices) != len(intensities) {
		return fmt.Errorf("mobility index count %d does not match intensity count %d",
			len(mobilityIndices), len(intensities))
	}

	e.counts.Write(uint32(len(mobilityIndices)))
	e.peaks += uint64(len(mobilityIndices))

	// Delta chain restarts at zero for every scan.
	var prev int64
	for i, idx := range mobilityIndices {
		if i > 0 && int64(idx) <= prev {
			return fmt.Errorf("mobility indices must be strictly increasing: index %d after %d", idx, prev)
		}
		e.pairs.WritePair(int64(idx)-prev, intensities[i])
		prev = int64(idx)
	}

	return nil
}

// NumScans returns the number of scans added so far.
func (e *Encoder) NumScans() uint32 {
	return uint32(e.counts.Len())
}

// PeakCount returns the total number of peaks added so far. This is the
// value a frame table row declares for the frame.
func (e *Encoder) PeakCount() uint64 {
	return e.peaks
}

// Payload returns the packed payload: the scan count stream followed by
// the interleaved peak pair stream. The outer compression layer is not
// applied; see Block.
func (e *Encoder) Payload() []byte {
	payload := make([]byte, 0, e.counts.Size()+e.pairs.Size())
	payload = append(payload, e.counts.Bytes()...)
	payload = append(payload, e.pairs.Bytes()...)

	return payload
}

// Block returns the complete on-disk block: a little-endian uint32 total
// length header followed by the payload wrapped in the codec for the
// given compression type.
func (e *Encoder) Block(compressionType format.CompressionType) ([]byte, error) {
	codec, err := compress.GetCodec(compressionType)
	if err != nil {
		return nil, err
	}

	wrapped, err := codec.Compress(e.Payload())
	if err != nil {
		return nil, fmt.Errorf("compress block payload: %w", err)
	}

	engine := endian.GetLittleEndianEngine()
	block := make([]byte, 0, format.BlockHeaderSize+len(wrapped))
	block = engine.AppendUint32(block, uint32(format.BlockHeaderSize+len(wrapped)))
	block = append(block, wrapped...)

	return block, nil
}

// Finish releases the internal buffers back to their pools and resets
// the encoder for a new frame.
func (e *Encoder) Finish() {
	e.counts.Finish()
	e.pairs.Finish()
	e.peaks = 0
}
