package compress

// NoOpCodec passes payloads through unchanged.
//
// This is the codec for compression type 2, where the packed varint
// payload is stored directly after the block header with no outer
// compression layer.
type NoOpCodec struct{}

var _ Codec = (*NoOpCodec)(nil)

// NewNoOpCodec creates a pass-through codec.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Compress returns the input slice as-is, without copying.
//
// The returned slice shares memory with the input; callers must not
// modify the input afterwards if they keep the returned slice.
func (c NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input slice as-is, without copying.
//
// The returned slice shares memory with the input; callers must not
// modify the input afterwards if they keep the returned slice.
func (c NoOpCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
