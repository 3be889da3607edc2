package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/timsdf/format"
)

func testPayload() []byte {
	// Compressible but not trivial: repeated runs with a varying tail.
	var buf bytes.Buffer
	for i := 0; i < 64; i++ {
		buf.WriteString("scan-count-stream|peak-pair-stream|")
		buf.WriteByte(byte(i * 7))
	}

	return buf.Bytes()
}

func TestGetCodec(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionTims,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(ct)
		require.NoError(t, err, "type %s", ct)
		require.NotNil(t, codec)
	}
}

func TestGetCodec_Unknown(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0))
	require.Error(t, err)

	_, err = GetCodec(format.CompressionType(99))
	require.Error(t, err)
}

func TestCodec_RoundTrip(t *testing.T) {
	payload := testPayload()

	for _, ct := range []format.CompressionType{
		format.CompressionTims,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, payload, decompressed)
		})
	}
}

func TestCodec_EmptyPayload(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionTims,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(nil)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

func TestNoOpCodec_PassesBytesThrough(t *testing.T) {
	codec := NewNoOpCodec()
	payload := testPayload()

	compressed, err := codec.Compress(payload)
	require.NoError(t, err)
	require.Equal(t, payload, compressed)

	decompressed, err := codec.Decompress(payload)
	require.NoError(t, err)
	require.Equal(t, payload, decompressed)
}

func TestZstdCodec_RejectsGarbage(t *testing.T) {
	codec := NewZstdCodec()

	_, err := codec.Decompress([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	require.Error(t, err)
}

func TestLZ4Codec_RejectsGarbage(t *testing.T) {
	codec := NewLZ4Codec()

	_, err := codec.Decompress([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	require.Error(t, err)
}
