package pool

import "sync"

const (
	// FrameBufferDefaultSize is the initial capacity of buffers obtained
	// from the pool. Typical frame payloads are a few KiB after packing.
	FrameBufferDefaultSize = 1024 * 16 // 16KiB

	// FrameBufferMaxThreshold is the capacity above which buffers are not
	// returned to the pool, to avoid pinning memory after an unusually
	// large frame.
	FrameBufferMaxThreshold = 1024 * 512 // 512KiB
)

// ByteBuffer is a minimal append-oriented byte buffer with an amortized
// growth strategy, intended to be pooled and reused across frame
// encoding operations.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, retaining the allocated memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Grow ensures the buffer can hold requiredBytes more bytes without
// reallocating. Small buffers grow by FrameBufferDefaultSize, larger
// ones by 25% of their capacity.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := FrameBufferDefaultSize
	if cap(bb.B) > 4*FrameBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

var frameBufferPool = sync.Pool{
	New: func() any {
		return NewByteBuffer(FrameBufferDefaultSize)
	},
}

// GetFrameBuffer obtains a reset ByteBuffer from the pool.
func GetFrameBuffer() *ByteBuffer {
	bb, _ := frameBufferPool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// PutFrameBuffer returns a ByteBuffer to the pool. Oversized buffers are
// dropped so the pool does not accumulate worst-case allocations.
func PutFrameBuffer(bb *ByteBuffer) {
	if bb == nil || cap(bb.B) > FrameBufferMaxThreshold {
		return
	}
	frameBufferPool.Put(bb)
}
