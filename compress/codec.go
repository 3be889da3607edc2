// Package compress implements the block payload codecs used by the
// binary frame store.
//
// A frame block on disk is a length-prefixed payload; the payload may be
// wrapped in an outer compression layer selected by the acquisition's
// TimsCompressionType metadata value. This package maps each compression
// type to a Codec that unwraps (and, for synthetic data, wraps) that
// layer. The packed varint encoding inside the payload is handled by the
// encoding and frame packages, not here.
package compress

import (
	"fmt"

	"github.com/arloliu/timsdf/format"
)

// Compressor wraps a frame payload in the codec's outer compression layer.
//
// Compression only exists in this library to build synthetic datasets
// for tests and tooling; instrument files are read, never written.
type Compressor interface {
	// Compress compresses the input payload and returns the result.
	//
	// The returned slice is newly allocated and owned by the caller
	// unless the codec is a no-op, in which case the input is returned
	// as-is. The input slice is never modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor unwraps the outer compression layer of a frame payload.
//
// Implementations must be safe for concurrent use: the frame reader
// decodes frames from multiple goroutines against a single shared codec.
type Decompressor interface {
	// Decompress decompresses the input data and returns the packed
	// payload. It returns an error if the data is corrupted or was
	// produced by a different codec.
	//
	// The returned slice is newly allocated and owned by the caller
	// unless the codec is a no-op. The input slice is never modified.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of a block payload codec.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionTims: NewNoOpCodec(),
	format.CompressionZstd: NewZstdCodec(),
	format.CompressionS2:   NewS2Codec(),
	format.CompressionLZ4:  NewLZ4Codec(),
}

// GetCodec returns the built-in Codec for the given compression type.
//
// An unknown compression type is a structural property of the dataset,
// so callers surface this error at open time rather than per frame.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s (%d)", compressionType, uint8(compressionType))
}
