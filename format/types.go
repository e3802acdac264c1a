package format

import "strings"

type (
	ByteOrder       uint8
	CompressionType uint8
)

const (
	LittleEndian ByteOrder = 0x0 // LittleEndian is the default object byte order.
	BigEndian    ByteOrder = 0x1 // BigEndian represents big-endian objects.

	CompressionNone CompressionType = 0x1 // CompressionNone represents an uncompressed section.
	CompressionZlib CompressionType = 0x2 // CompressionZlib represents zlib (ELFCOMPRESS_ZLIB) content.
	CompressionZstd CompressionType = 0x3 // CompressionZstd represents Zstandard (ELFCOMPRESS_ZSTD) content.
	CompressionS2   CompressionType = 0x4 // CompressionS2 represents S2 compressed content.
	CompressionLZ4  CompressionType = 0x5 // CompressionLZ4 represents LZ4 block compressed content.
)

func (b ByteOrder) String() string {
	switch b {
	case LittleEndian:
		return "Little"
	case BigEndian:
		return "Big"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZlib:
		return "Zlib"
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

// ParseByteOrder parses "little" or "big", case-insensitively.
func ParseByteOrder(s string) (ByteOrder, bool) {
	switch strings.ToLower(s) {
	case "", "little", "le":
		return LittleEndian, true
	case "big", "be":
		return BigEndian, true
	default:
		return LittleEndian, false
	}
}

// ParseCompressionType parses a compression name as printed by String.
// The empty string maps to CompressionNone.
func ParseCompressionType(s string) (CompressionType, bool) {
	switch strings.ToLower(s) {
	case "", "none":
		return CompressionNone, true
	case "zlib":
		return CompressionZlib, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
