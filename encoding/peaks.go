package encoding

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/arloliu/timsdf/internal/pool"
)

// PeakPairEncoder encodes the interleaved peak stream of a frame
// payload: for every peak a zigzag + varint mobility-index delta
// followed by an unsigned varint intensity.
//
// The encoder is agnostic to scan boundaries; the caller restarts its
// own delta chain at the start of every scan and feeds this encoder the
// resulting deltas in peak order.
type PeakPairEncoder struct {
	temp  [binary.MaxVarintLen64]byte
	buf   *pool.ByteBuffer
	count int
}

// NewPeakPairEncoder creates a new peak pair encoder backed by a pooled
// buffer.
func NewPeakPairEncoder() *PeakPairEncoder {
	return &PeakPairEncoder{
		buf: pool.GetFrameBuffer(),
	}
}

// WritePair encodes one (mobility delta, intensity) pair.
//
// The delta is zigzag-folded before varint encoding. Valid frame data
// only produces non-negative deltas, but the fold is part of the fixed
// wire format and keeps accidental negative deltas representable rather
// than silently corrupting the stream.
func (e *PeakPairEncoder) WritePair(delta int64, intensity uint32) {
	e.count++
	e.buf.Grow(2 * binary.MaxVarintLen64)

	zigzag := uint64((delta << 1) ^ (delta >> 63))
	n := binary.PutUvarint(e.temp[:], zigzag)
	e.buf.MustWrite(e.temp[:n])

	n = binary.PutUvarint(e.temp[:], uint64(intensity))
	e.buf.MustWrite(e.temp[:n])
}

// Bytes returns the encoded byte slice containing all written pairs.
//
// The returned slice references the internal buffer and is valid until
// the next call to WritePair or Finish.
func (e *PeakPairEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of encoded pairs.
func (e *PeakPairEncoder) Len() int {
	return e.count
}

// Size returns the size in bytes of the encoded stream.
func (e *PeakPairEncoder) Size() int {
	return e.buf.Len()
}

// Finish releases the internal buffer back to the pool and resets the
// encoder for a new frame.
func (e *PeakPairEncoder) Finish() {
	pool.PutFrameBuffer(e.buf)
	e.buf = pool.GetFrameBuffer()
	e.count = 0
}

// PeakPairDecoder decodes the interleaved peak stream.
//
// The decoder is stateless and safe for concurrent use.
type PeakPairDecoder struct{}

// NewPeakPairDecoder creates a new peak pair decoder.
func NewPeakPairDecoder() PeakPairDecoder {
	return PeakPairDecoder{}
}

// DecodePair reads one (mobility delta, intensity) pair from the head of
// data.
//
// Returns the unfolded delta, the intensity, the number of bytes
// consumed, and an error when the stream ends mid-integer
// (ErrTruncated) or the intensity exceeds the 32-bit range
// (ErrValueOverflow). Delta range is not validated here: the frame
// decoder bounds the running sum, which subsumes any per-delta check.
func (d PeakPairDecoder) DecodePair(data []byte) (delta int64, intensity uint32, n int, err error) {
	zigzag, dn := binary.Uvarint(data)
	if dn <= 0 {
		return 0, 0, 0, fmt.Errorf("%w: mobility delta", ErrTruncated)
	}
	delta = int64(zigzag>>1) ^ -int64(zigzag&1)

	raw, in := binary.Uvarint(data[dn:])
	if in <= 0 {
		return 0, 0, dn, fmt.Errorf("%w: intensity", ErrTruncated)
	}
	if raw > math.MaxUint32 {
		return 0, 0, dn, fmt.Errorf("%w: intensity %d", ErrValueOverflow, raw)
	}

	return delta, uint32(raw), dn + in, nil
}
