// Package objaccess defines the capability set a DWARF reader uses to reach
// object sections, and an adapter that serves it from a section.Store.
package objaccess

import (
	"github.com/arloliu/memdwarf/format"
)

// SectionInfo is the per-section metadata exposed to the reader. Fields an
// in-memory source does not track are zero.
type SectionInfo struct {
	Name      string
	Type      uint64
	Flags     uint64
	Addr      uint64
	Offset    uint64
	Size      uint64
	Link      uint64
	Info      uint64
	AddrAlign uint64
	EntSize   uint64
}

// Access is the object access capability set.
//
// Implementations must be safe for concurrent use. Slices returned by
// LoadSection stay valid and unchanged for the lifetime of the Access.
type Access interface {
	// SectionInfo describes the section at index, or fails with
	// errs.ErrNotFound when index is out of range.
	SectionInfo(index int) (SectionInfo, error)
	ByteOrder() format.ByteOrder
	// OffsetSize is the width of section offsets in bytes.
	OffsetSize() int
	// PointerSize is the width of addresses in bytes.
	PointerSize() int
	ObjectSize() uint64
	SectionCount() int
	// LoadSection returns the content of the section at index, or fails with
	// errs.ErrNotFound when index is out of range.
	LoadSection(index int) ([]byte, error)
	// Relocate applies relocations to a loaded section. Implementations
	// without relocation support return errs.ErrUnsupportedCapability.
	Relocate(index int) error
}
