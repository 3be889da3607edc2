package compress

// ZstdCodec handles the Zstandard block layer of compression type 3
// datasets.
//
// Zstd is the only outer compression layer current instruments emit.
// Frame payloads are typically 1KB-256KB of packed varints, which zstd
// shrinks by a further 2-4x over the packing itself.
//
// Two implementations back this type, selected at build time the same
// way the rest of the module picks between pure-Go and cgo paths:
//   - pure Go (default): github.com/klauspost/compress/zstd
//   - cgo builds: github.com/valyala/gozstd bindings to libzstd
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a Zstandard payload codec.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
