// Package sample carries a tiny DWARF 2 object produced by GCC 9.3 for
//
//	int f(void) { int i; ... }
//
// as three static sections. It is the default input of the dwarfdump command
// and a fixture for tests.
package sample

import (
	"github.com/arloliu/memdwarf/section"
)

// SectionCount is the number of sections in the sample store, including the
// reserved slot 0.
const SectionCount = 4

// Abbrev is the .debug_abbrev content.
var Abbrev = []byte{
	0x01, 0x11, 0x01, 0x25, 0x0e, 0x13, 0x0b, 0x03, 0x08, 0x1b,
	0x0e, 0x11, 0x01, 0x12, 0x01, 0x10, 0x06, 0x00, 0x00, 0x02,
	0x2e, 0x01, 0x3f, 0x0c, 0x03, 0x08, 0x3a, 0x0b, 0x3b, 0x0b,
	0x39, 0x0b, 0x27, 0x0c, 0x11, 0x01, 0x12, 0x01, 0x40, 0x06,
	0x97, 0x42, 0x0c, 0x01, 0x13, 0x00, 0x00, 0x03, 0x34, 0x00,
	0x03, 0x08, 0x3a, 0x0b, 0x3b, 0x0b, 0x39, 0x0b, 0x49, 0x13,
	0x02, 0x0a, 0x00, 0x00, 0x04, 0x24, 0x00, 0x0b, 0x0b, 0x3e,
	0x0b, 0x03, 0x08, 0x00, 0x00, 0x00,
}

// Info is the .debug_info content: one compile unit.
var Info = []byte{
	0x60, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x08, 0x01, 0x00, 0x00, 0x00, 0x00, 0x0c, 0x74, 0x2e, 0x63,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x02, 0x01, 0x66, 0x00, 0x01,
	0x02, 0x06, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x01, 0x5c, 0x00, 0x00, 0x00, 0x03, 0x69,
	0x00, 0x01, 0x03, 0x08, 0x5c, 0x00, 0x00, 0x00, 0x02, 0x91,
	0x6c, 0x00, 0x04, 0x04, 0x05, 0x69, 0x6e, 0x74, 0x00, 0x00,
}

// Str is the .debug_str content.
var Str = []byte(
	"GNU C17 9.3.0 -mtune=generic -march=x86-64 -gdwarf-2 -O0" +
		" -fasynchronous-unwind-tables -fstack-protector-strong" +
		" -fstack-clash-protection -fcf-protection\x00" +
		"/var/tmp/tinydwarf\x00")

// Producer and CompDir are the strings the compile unit references.
const (
	Producer = "GNU C17 9.3.0 -mtune=generic -march=x86-64 -gdwarf-2 -O0" +
		" -fasynchronous-unwind-tables -fstack-protector-strong" +
		" -fstack-clash-protection -fcf-protection"
	CompDir = "/var/tmp/tinydwarf"
)

// Sections returns the sample section table without the reserved slot.
// Each call returns fresh copies of the content.
func Sections() []section.Section {
	return []section.Section{
		{Name: section.DebugAbbrev, Content: clone(Abbrev)},
		{Name: section.DebugInfo, Content: clone(Info)},
		{Name: section.DebugStr, Content: clone(Str)},
	}
}

// NewStore builds the sample store: little-endian, 32-bit pointers and
// offsets, a reserved slot 0 and SectionCount sections.
func NewStore(opts ...section.StoreOption) (*section.Store, error) {
	base := []section.StoreOption{
		section.WithLittleEndian(),
		section.WithPointerSize(32),
		section.WithOffsetSize(32),
		section.WithReservedSlot(),
		section.WithSectionCount(SectionCount),
	}

	return section.NewStore(Sections(), append(base, opts...)...)
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
