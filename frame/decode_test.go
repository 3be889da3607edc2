package frame

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/timsdf/errs"
)

// threeScans is a hand-assembled payload for a frame with per-scan peak
// counts [2, 0, 1]:
//
//	scan 0: deltas (5, 100), (3, 50) -> indices [5, 8]
//	scan 1: empty
//	scan 2: delta (7, 20)            -> index [7]
//
// Counts are varints 0x02 0x00 0x01; each pair is a zigzag varint delta
// followed by a varint intensity.
var threeScans = []byte{
	0x02, 0x00, 0x01, // counts
	0x0A, 0x64, // zigzag(5)=10, 100
	0x06, 0x32, // zigzag(3)=6, 50
	0x0E, 0x14, // zigzag(7)=14, 20
}

func TestDecode_DeltaChainRestartsPerScan(t *testing.T) {
	scans, err := Decode(threeScans, 3, 3)
	require.NoError(t, err)
	require.Len(t, scans, 3)

	require.Equal(t, []uint32{5, 8}, scans[0].MobilityIndices)
	require.Equal(t, []uint32{100, 50}, scans[0].Intensities)

	require.Zero(t, scans[1].Len())

	// Scan 2's running sum restarts at zero; its single delta of 7 is
	// the absolute index, not 8+7.
	require.Equal(t, []uint32{7}, scans[2].MobilityIndices)
	require.Equal(t, []uint32{20}, scans[2].Intensities)
}

func TestDecode_DeclaredCountMismatch(t *testing.T) {
	// Same bytes, declared total bumped from 3 to 4. The decoder must
	// refuse rather than truncate or pad.
	_, err := Decode(threeScans, 3, 4)
	require.ErrorIs(t, err, errs.ErrCorruptFrame)

	_, err = Decode(threeScans, 3, 2)
	require.ErrorIs(t, err, errs.ErrCorruptFrame)
}

func TestDecode_EmptyFrame(t *testing.T) {
	scans, err := Decode(nil, 0, 0)
	require.NoError(t, err)
	require.NotNil(t, scans)
	require.Empty(t, scans)

	_, err = Decode(nil, 0, 5)
	require.ErrorIs(t, err, errs.ErrCorruptFrame)
}

func TestDecode_AllScansEmpty(t *testing.T) {
	scans, err := Decode([]byte{0x00, 0x00, 0x00, 0x00}, 4, 0)
	require.NoError(t, err)
	require.Len(t, scans, 4)
	for _, s := range scans {
		require.Zero(t, s.Len())
	}
}

func TestDecode_TruncatedPayload(t *testing.T) {
	// Drop the last byte of every prefix; each must fail as corruption,
	// except prefixes that happen to end on a smaller consistent frame,
	// which the declared total still rules out.
	for n := 0; n < len(threeScans); n++ {
		_, err := Decode(threeScans[:n], 3, 3)
		require.ErrorIs(t, err, errs.ErrCorruptFrame, "prefix length %d", n)
	}
}

func TestDecode_TrailingPaddingTolerated(t *testing.T) {
	padded := append(append([]byte{}, threeScans...), 0x00, 0x00, 0x00)
	scans, err := Decode(padded, 3, 3)
	require.NoError(t, err)
	require.Equal(t, []uint32{5, 8}, scans[0].MobilityIndices)
	require.Equal(t, []uint32{7}, scans[2].MobilityIndices)
}

func TestDecode_MobilityOverflow(t *testing.T) {
	// Two deltas of MaxUint32 each push the running sum past the uint32
	// range on the second peak.
	payload := []byte{
		0x02, // one scan, two peaks
		// zigzag(2^32 - 1) = 2^33 - 2
		0xFE, 0xFF, 0xFF, 0xFF, 0x1F, 0x01,
		0xFE, 0xFF, 0xFF, 0xFF, 0x1F, 0x01,
	}

	_, err := Decode(payload, 1, 2)
	require.ErrorIs(t, err, errs.ErrCorruptFrame)
}

func TestDecode_NegativeMobility(t *testing.T) {
	// zigzag(-1) = 1: the first delta drives the running sum below zero.
	payload := []byte{0x01, 0x01, 0x05}
	_, err := Decode(payload, 1, 1)
	require.ErrorIs(t, err, errs.ErrCorruptFrame)
}

func TestDecode_IntensityOverflow(t *testing.T) {
	// One scan, one peak: delta 1 followed by intensity 2^35.
	payload := []byte{
		0x01,
		0x02,
		0x80, 0x80, 0x80, 0x80, 0x80, 0x01,
	}
	_, err := Decode(payload, 1, 1)
	require.ErrorIs(t, err, errs.ErrCorruptFrame)
}

func TestDecode_Deterministic(t *testing.T) {
	first, err := Decode(threeScans, 3, 3)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Decode(threeScans, 3, 3)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	encoder := NewEncoder()
	defer encoder.Finish()

	want := [][]uint32{
		{1, 2, 3, 1000, 70000},
		nil,
		{0, 4294967295},
		{42},
	}
	intensities := [][]uint32{
		{10, 20, 30, 40, 50},
		nil,
		{1, 4294967295},
		{7},
	}

	for i := range want {
		require.NoError(t, encoder.AddScan(want[i], intensities[i]))
	}

	scans, err := Decode(encoder.Payload(), encoder.NumScans(), encoder.PeakCount())
	require.NoError(t, err)
	require.Len(t, scans, len(want))

	for i := range want {
		require.Equal(t, len(want[i]), scans[i].Len(), "scan %d", i)
		if len(want[i]) == 0 {
			continue
		}
		require.Equal(t, want[i], scans[i].MobilityIndices, "scan %d", i)
		require.Equal(t, intensities[i], scans[i].Intensities, "scan %d", i)
	}
}

func TestDecode_MonotonicWithinScan(t *testing.T) {
	encoder := NewEncoder()
	defer encoder.Finish()

	indices := make([]uint32, 500)
	values := make([]uint32, 500)
	for i := range indices {
		indices[i] = uint32(i * 3)
		values[i] = uint32(i%251 + 1)
	}
	require.NoError(t, encoder.AddScan(indices, values))

	scans, err := Decode(encoder.Payload(), 1, encoder.PeakCount())
	require.NoError(t, err)
	require.Len(t, scans, 1)

	got := scans[0].MobilityIndices
	for i := 1; i < len(got); i++ {
		require.Greater(t, got[i], got[i-1], "peak %d", i)
	}
}
