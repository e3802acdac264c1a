package section

import (
	"github.com/arloliu/memdwarf/format"
)

// Section is the caller-supplied input for one store slot.
type Section struct {
	// Name may be empty, for example for the reserved slot 0.
	Name string
	// Address is the section's load address, 0 if unused.
	Address uint64
	// Content is the stored bytes, compressed with Compression.
	// The store takes ownership; the caller must not modify it afterwards.
	Content []byte
	// Compression selects the storage codec. Zero means CompressionNone.
	Compression format.CompressionType
	// Size is the uncompressed size. Required when Compression is not
	// CompressionNone, ignored otherwise.
	Size uint64
}

// Descriptor describes one store slot.
type Descriptor struct {
	Index       int
	Name        string
	Address     uint64
	Size        uint64
	Compression format.CompressionType
	// StoredSize is the size of the bytes held by the store.
	StoredSize uint64
	// Fingerprint is the xxHash64 of the uncompressed content. It is zero
	// for a compressed section that has not been loaded yet.
	Fingerprint uint64
}

// IsCompressed reports whether the section is held compressed.
func (d Descriptor) IsCompressed() bool {
	return d.Compression != format.CompressionNone
}
