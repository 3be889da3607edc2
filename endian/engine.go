// Package endian provides byte order utilities for the binary block
// framing.
//
// It combines the ByteOrder and AppendByteOrder interfaces of the
// standard encoding/binary package into a single EndianEngine interface,
// which keeps APIs that both read and append framing fields to a single
// parameter.
//
// Frame blocks are always little-endian on disk; GetLittleEndianEngine
// is the engine used throughout the library. The big-endian engine
// exists for tooling that inspects foreign byte orders.
package endian

import "encoding/binary"

// EndianEngine combines the ByteOrder and AppendByteOrder interfaces
// from encoding/binary for convenient byte order operations.
//
// binary.LittleEndian and binary.BigEndian both satisfy this interface,
// so an EndianEngine is always stateless and safe for concurrent use.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
//
// This is the byte order of the on-disk block framing and the one every
// reader and encoder in this module uses.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
