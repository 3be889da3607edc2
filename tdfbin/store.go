// Package tdfbin reads raw compressed frame blocks from the binary data
// file of an acquisition (analysis.tdf_bin).
//
// The file is a concatenation of frame blocks addressed by the byte
// offsets and lengths recorded in the metadata frame table. Each block
// starts with a little-endian uint32 holding the total block length
// (header included), which the store cross-checks against the metadata
// before handing out the payload.
//
// Concurrency discipline: the store keeps a single file handle and
// serves every fetch with an explicit-offset positioned read
// (os.File.ReadAt). ReadAt carries no shared cursor and is safe for
// parallel use, so concurrent reads neither race nor observe partial
// data; short reads surface as I/O errors.
package tdfbin

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/arloliu/timsdf/compress"
	"github.com/arloliu/timsdf/endian"
	"github.com/arloliu/timsdf/errs"
	"github.com/arloliu/timsdf/format"
	"github.com/arloliu/timsdf/internal/hash"
)

// BinaryFileName is the name of the binary data file inside an
// acquisition directory.
const BinaryFileName = "analysis.tdf_bin"

// Entry locates one frame's block inside the binary data file.
type Entry struct {
	// ID is the frame identifier.
	ID int64
	// Offset is the byte offset of the block, including its header.
	Offset int64
	// Length is the total block length in bytes, header included.
	Length uint32
}

// Store resolves frame identifiers to byte ranges and reads raw blocks.
type Store struct {
	f       *os.File
	size    int64
	entries map[int64]Entry
	codec   compress.Codec
	engine  endian.EndianEngine
	logger  *slog.Logger
}

// Open opens the binary data file and validates every entry's byte range
// against the file size.
//
// A missing or unreadable file fails with an error wrapping errs.ErrIO.
// An entry pointing outside the file means the metadata and the binary
// file disagree about the acquisition's layout; that is a structural
// problem surfaced at open time as an error wrapping errs.ErrSchema.
// logger may be nil.
func Open(path string, entries []Entry, codec compress.Codec, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrIO, path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrIO, path, err)
	}

	s := &Store{
		f:       f,
		size:    info.Size(),
		entries: make(map[int64]Entry, len(entries)),
		codec:   codec,
		engine:  endian.GetLittleEndianEngine(),
		logger:  logger,
	}

	for _, e := range entries {
		if e.Length < format.BlockHeaderSize || e.Offset < 0 || e.Offset+int64(e.Length) > s.size {
			f.Close()
			return nil, fmt.Errorf("%w: frame %d block [%d, %d) lies outside binary file of %d bytes",
				errs.ErrSchema, e.ID, e.Offset, e.Offset+int64(e.Length), s.size)
		}
		s.entries[e.ID] = e
	}

	return s, nil
}

// Resolve maps a frame identifier to its block byte range. Unknown
// identifiers fail with an error wrapping errs.ErrOutOfRange.
func (s *Store) Resolve(id int64) (offset int64, length uint32, err error) {
	e, ok := s.entries[id]
	if !ok {
		return 0, 0, fmt.Errorf("%w: no binary block for frame %d", errs.ErrOutOfRange, id)
	}

	return e.Offset, e.Length, nil
}

// ReadRaw returns the frame's raw block bytes after the length header,
// still wrapped in the dataset's outer compression layer.
//
// The block's recorded length header must match the metadata's length;
// a mismatch means the offsets point at the wrong place or the file was
// rewritten, reported as errs.ErrCorruptFrame. Short reads fail with an
// error wrapping errs.ErrIO.
func (s *Store) ReadRaw(id int64) ([]byte, error) {
	e, ok := s.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: no binary block for frame %d", errs.ErrOutOfRange, id)
	}

	block := make([]byte, e.Length)
	if _, err := s.f.ReadAt(block, e.Offset); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: truncated read of frame %d block", errs.ErrIO, id)
		}

		return nil, fmt.Errorf("%w: read frame %d block: %w", errs.ErrIO, id, err)
	}

	recorded := s.engine.Uint32(block[:format.BlockHeaderSize])
	if recorded != e.Length {
		return nil, fmt.Errorf("%w: frame %d block header declares %d bytes, metadata records %d",
			errs.ErrCorruptFrame, id, recorded, e.Length)
	}

	return block[format.BlockHeaderSize:], nil
}

// ReadPayload returns the frame's packed payload with the outer
// compression layer removed, ready for frame.Decode.
func (s *Store) ReadPayload(id int64) ([]byte, error) {
	raw, err := s.ReadRaw(id)
	if err != nil {
		return nil, err
	}

	payload, err := s.codec.Decompress(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: frame %d payload: %w", errs.ErrCorruptFrame, id, err)
	}

	if s.logger.Enabled(context.Background(), slog.LevelDebug) {
		s.logger.Debug("frame block read",
			"frame_id", id,
			"raw_bytes", len(raw),
			"payload_bytes", len(payload),
			"checksum", hash.Checksum(raw),
		)
	}

	return payload, nil
}

// Checksum returns the xxHash64 digest of the frame's raw block bytes
// (compression layer included). Unchanged files yield identical digests
// on every call.
func (s *Store) Checksum(id int64) (uint64, error) {
	raw, err := s.ReadRaw(id)
	if err != nil {
		return 0, err
	}

	return hash.Checksum(raw), nil
}

// Close releases the underlying file handle.
func (s *Store) Close() error {
	return s.f.Close()
}
