// Package format defines wire-level constants shared across the timsdf
// packages: the compression type values recorded in the acquisition
// metadata and the fixed sizes of the binary block framing.
package format

// CompressionType identifies the codec applied to a frame block payload.
//
// The value is taken verbatim from the TimsCompressionType entry of the
// acquisition's global metadata table. Instruments emit CompressionTims
// (packed payload, no outer codec) or CompressionZstd (packed payload
// wrapped in a Zstandard block). The S2 and LZ4 values are accepted for
// datasets re-compressed by sidecar tooling; they never appear in
// instrument output.
type CompressionType uint8

const (
	// CompressionTims is the packed varint payload with no outer compression.
	CompressionTims CompressionType = 2
	// CompressionZstd is the packed payload wrapped in a Zstandard block.
	CompressionZstd CompressionType = 3
	// CompressionS2 is the packed payload wrapped in an S2 block.
	CompressionS2 CompressionType = 4
	// CompressionLZ4 is the packed payload wrapped in an LZ4 block.
	CompressionLZ4 CompressionType = 5
)

// BlockHeaderSize is the size in bytes of the per-block framing header:
// a single little-endian uint32 holding the total block length,
// header included.
const BlockHeaderSize = 4

func (c CompressionType) String() string {
	switch c {
	case CompressionTims:
		return "Tims"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
