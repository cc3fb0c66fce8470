// Package endian provides the byte-order engine used to encode and decode
// gtype's binary container format.
//
// The container format is a contiguous, 4-byte-aligned varlena buffer, so
// every multi-byte field (header words, entry words, extended-scalar
// payloads) goes through a single, injectable ByteOrder implementation
// rather than hard-coding host endianness.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// Engine combines binary.ByteOrder and binary.AppendByteOrder so callers get
// both read/write and allocation-free append operations from one value.
type Engine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Native returns the byte order of the running process.
func Native() Engine {
	var i uint16 = 0x0100
	b := *(*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// LittleEndian is the engine gtype containers are built with. The format is
// defined as little-endian on the wire regardless of host architecture, so
// blobs built on one machine are readable on another.
func LittleEndian() Engine { return binary.LittleEndian }

// BigEndian is provided for hosts that need to interoperate with a
// big-endian wire convention; gtype itself always builds LittleEndian().
func BigEndian() Engine { return binary.BigEndian }
