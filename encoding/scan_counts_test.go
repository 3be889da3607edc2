package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScanCountEncoder_RoundTrip(t *testing.T) {
	encoder := NewScanCountEncoder()
	defer encoder.Finish()

	counts := []uint32{2, 0, 1, 300, 0, 7}
	encoder.WriteSlice(counts)

	require.Equal(t, len(counts), encoder.Len())
	require.Greater(t, encoder.Size(), 0)

	decoder := NewScanCountDecoder()
	decoded, n, err := decoder.Decode(encoder.Bytes(), len(counts))
	require.NoError(t, err)
	require.Equal(t, encoder.Size(), n)
	require.Equal(t, counts, decoded)
}

func TestScanCountEncoder_Write_Single(t *testing.T) {
	encoder := NewScanCountEncoder()
	defer encoder.Finish()

	encoder.Write(42)

	decoder := NewScanCountDecoder()
	decoded, n, err := decoder.Decode(encoder.Bytes(), 1)
	require.NoError(t, err)
	require.Equal(t, 1, n) // 42 fits in one varint byte
	require.Equal(t, []uint32{42}, decoded)
}

func TestScanCountDecoder_ZeroCount(t *testing.T) {
	decoder := NewScanCountDecoder()

	decoded, n, err := decoder.Decode(nil, 0)
	require.NoError(t, err)
	require.Zero(t, n)
	require.Empty(t, decoded)
}

func TestScanCountDecoder_Truncated(t *testing.T) {
	decoder := NewScanCountDecoder()

	// High bit set means continuation; the stream ends mid-integer.
	_, _, err := decoder.Decode([]byte{0x02, 0x80}, 2)
	require.ErrorIs(t, err, ErrTruncated)

	// Fewer values than requested.
	_, _, err = decoder.Decode([]byte{0x02}, 2)
	require.ErrorIs(t, err, ErrTruncated)
}

func TestScanCountDecoder_Overflow(t *testing.T) {
	// A hand-built varint above the uint32 range: 2^35.
	data := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}

	decoder := NewScanCountDecoder()
	_, _, err := decoder.Decode(data, 1)
	require.ErrorIs(t, err, ErrValueOverflow)
}

func TestScanCountEncoder_Finish_Resets(t *testing.T) {
	encoder := NewScanCountEncoder()
	encoder.WriteSlice([]uint32{1, 2, 3})
	encoder.Finish()

	require.Equal(t, 0, encoder.Len())
	require.Equal(t, 0, encoder.Size())
	require.Empty(t, encoder.Bytes())
}
