// Package endian provides byte order utilities for reading object sections.
//
// This package combines encoding/binary's ByteOrder and AppendByteOrder
// interfaces into a single EndianEngine, selected from the byte order a
// backing store reports for its object.
//
// # Basic Usage
//
//	engine := endian.GetEngine(access.ByteOrder())
//	length := engine.Uint32(data[0:4])
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"

	"github.com/arloliu/memdwarf/format"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// NativeByteOrder returns the host byte order as a format.ByteOrder.
func NativeByteOrder() format.ByteOrder {
	if CheckEndianness() == binary.BigEndian {
		return format.BigEndian
	}

	return format.LittleEndian
}

// GetEngine returns the engine for the given object byte order.
// Unknown values fall back to little-endian.
func GetEngine(order format.ByteOrder) EndianEngine {
	if order == format.BigEndian {
		return GetBigEndianEngine()
	}

	return GetLittleEndianEngine()
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
