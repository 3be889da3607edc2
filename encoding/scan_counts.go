package encoding

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/arloliu/timsdf/internal/pool"
)

// ScanCountEncoder encodes the per-scan peak count stream of a frame
// payload as unsigned varints.
//
// Peak counts are small in practice (most TIMS scans hold well under 128
// peaks), so the stream usually costs a single byte per scan versus four
// for a fixed-width layout.
//
// Internal state:
//   - temp: reusable scratch for varint encoding (avoids allocations)
//   - buf: pooled output buffer accumulating encoded data
//   - count: number of scan counts encoded
type ScanCountEncoder struct {
	temp  [binary.MaxVarintLen64]byte
	buf   *pool.ByteBuffer
	count int
}

// NewScanCountEncoder creates a new scan count encoder backed by a
// pooled buffer.
func NewScanCountEncoder() *ScanCountEncoder {
	return &ScanCountEncoder{
		buf: pool.GetFrameBuffer(),
	}
}

// Write encodes a single scan's peak count.
func (e *ScanCountEncoder) Write(peakCount uint32) {
	e.count++
	e.buf.Grow(binary.MaxVarintLen32)

	n := binary.PutUvarint(e.temp[:], uint64(peakCount))
	e.buf.MustWrite(e.temp[:n])
}

// WriteSlice encodes a slice of per-scan peak counts in order.
func (e *ScanCountEncoder) WriteSlice(peakCounts []uint32) {
	if len(peakCounts) == 0 {
		return
	}

	e.count += len(peakCounts)
	// Optimistic estimate: one byte per scan for typical sparse scans.
	e.buf.Grow(len(peakCounts) * 2)

	for _, c := range peakCounts {
		n := binary.PutUvarint(e.temp[:], uint64(c))
		e.buf.MustWrite(e.temp[:n])
	}
}

// Bytes returns the encoded byte slice containing all written counts.
//
// The returned slice references the internal buffer and is valid until
// the next call to Write, WriteSlice, or Finish.
func (e *ScanCountEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of encoded scan counts.
func (e *ScanCountEncoder) Len() int {
	return e.count
}

// Size returns the size in bytes of the encoded stream.
func (e *ScanCountEncoder) Size() int {
	return e.buf.Len()
}

// Finish releases the internal buffer back to the pool and resets the
// encoder for a new frame.
func (e *ScanCountEncoder) Finish() {
	pool.PutFrameBuffer(e.buf)
	e.buf = pool.GetFrameBuffer()
	e.count = 0
}

// ScanCountDecoder decodes the per-scan peak count stream.
//
// The decoder is stateless and safe for concurrent use.
type ScanCountDecoder struct{}

// NewScanCountDecoder creates a new scan count decoder.
func NewScanCountDecoder() ScanCountDecoder {
	return ScanCountDecoder{}
}

// Decode reads exactly count scan counts from the head of data.
//
// Returns the decoded counts, the number of bytes consumed, and an
// error when the stream ends mid-integer (ErrTruncated) or a count
// exceeds the 32-bit range (ErrValueOverflow).
func (d ScanCountDecoder) Decode(data []byte, count int) ([]uint32, int, error) {
	if count < 0 {
		return nil, 0, fmt.Errorf("%w: negative scan count %d", ErrValueOverflow, count)
	}

	counts := make([]uint32, 0, count)
	offset := 0

	for i := 0; i < count; i++ {
		v, n := binary.Uvarint(data[offset:])
		if n <= 0 {
			return nil, offset, fmt.Errorf("%w: scan count %d of %d", ErrTruncated, i, count)
		}
		if v > math.MaxUint32 {
			return nil, offset, fmt.Errorf("%w: scan count %d is %d", ErrValueOverflow, i, v)
		}
		offset += n
		counts = append(counts, uint32(v))
	}

	return counts, offset, nil
}
