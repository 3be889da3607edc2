package timsdf

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/arloliu/timsdf/errs"
	"github.com/arloliu/timsdf/format"
	"github.com/arloliu/timsdf/frame"
	"github.com/arloliu/timsdf/metadata"
	"github.com/arloliu/timsdf/tdfbin"
)

// writeAcquisition builds a one-frame acquisition directory.
func writeAcquisition(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	encoder := frame.NewEncoder()
	require.NoError(t, encoder.AddScan([]uint32{5, 8}, []uint32{100, 50}))
	require.NoError(t, encoder.AddScan([]uint32{7}, []uint32{20}))
	block, err := encoder.Block(format.CompressionZstd)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, tdfbin.BinaryFileName), block, 0o644))

	db, err := sql.Open("sqlite", filepath.Join(dir, metadata.MetadataFileName))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE Frames (
		Id INTEGER PRIMARY KEY, Time REAL, Polarity TEXT, MsMsType INTEGER, ScanMode INTEGER,
		NumScans INTEGER, NumPeaks INTEGER, AccumulationTime REAL,
		TimsId INTEGER, BinarySize INTEGER
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO Frames VALUES (1, 0.5, '+', 0, 8, ?, ?, 100.0, 0, ?)`,
		encoder.NumScans(), encoder.PeakCount(), len(block))
	require.NoError(t, err)
	encoder.Finish()

	_, err = db.Exec(`CREATE TABLE GlobalMetadata (Key TEXT, Value TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO GlobalMetadata (Key, Value) VALUES ('TimsCompressionType', '3')`)
	require.NoError(t, err)

	return dir
}

func TestOpen_ReadsFrames(t *testing.T) {
	reader, err := Open(writeAcquisition(t))
	require.NoError(t, err)
	defer reader.Close()

	require.Equal(t, 1, reader.Len())
	require.False(t, reader.IsMaldi())

	f, err := reader.Frame(1)
	require.NoError(t, err)
	require.Equal(t, frame.MSLevelMS1, f.MSLevel)

	scans, err := f.Scans()
	require.NoError(t, err)
	require.Len(t, scans, 2)
	require.Equal(t, []uint32{5, 8}, scans[0].MobilityIndices)
	require.Equal(t, []uint32{7}, scans[1].MobilityIndices)

	_, err = reader.Calibration()
	require.ErrorIs(t, err, errs.ErrMissingCalibration)
}

func TestOpen_MissingDataset(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.d"))
	require.ErrorIs(t, err, errs.ErrIO)
}
