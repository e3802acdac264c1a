// Package memdwarf reads DWARF debugging information from debug sections
// held in memory.
//
// A caller that already has the raw bytes of .debug_info, .debug_abbrev and
// friends (a JIT, a loader, a test) places them in a section.Store and opens a
// reader.Session over it. No object file is parsed and no file is opened.
//
// # Core Features
//
//   - DWARF versions 2 through 5, 32-bit and 64-bit units, .debug_types
//   - Every attribute form, including indexed and supplementary strings
//   - Sections held compressed in memory (zlib, zstd, s2, lz4)
//   - Pluggable object access through objaccess.Access
//
// # Basic Usage
//
//	store, _ := memdwarf.NewStore([]section.Section{
//	    {Name: section.DebugAbbrev, Content: abbrev},
//	    {Name: section.DebugInfo, Content: info},
//	    {Name: section.DebugStr, Content: str},
//	}, section.WithReservedSlot())
//
//	sess, _ := memdwarf.Open(store)
//	defer sess.Finish()
//
//	for {
//	    hdr, err := sess.NextUnit(true)
//	    if errors.Is(err, errs.ErrEndOfData) {
//	        break
//	    }
//	    root, _ := sess.Root()
//	    reader.Walk(root, func(rec *reader.Record, depth int) error {
//	        fmt.Println(depth, rec.Tag)
//	        return nil
//	    })
//	}
//
// # Package Structure
//
// This package wraps the section, objaccess and reader packages for the
// common case. Use them directly for custom object access or relocation.
package memdwarf

import (
	"github.com/arloliu/memdwarf/internal/hash"
	"github.com/arloliu/memdwarf/objaccess"
	"github.com/arloliu/memdwarf/reader"
	"github.com/arloliu/memdwarf/section"
)

// NewStore builds a section store. See section.NewStore.
func NewStore(sections []section.Section, opts ...section.StoreOption) (*section.Store, error) {
	return section.NewStore(sections, opts...)
}

// Open opens a reader session over store.
func Open(store *section.Store, opts ...reader.Option) (*reader.Session, error) {
	return reader.Open(objaccess.NewStoreAdapter(store), opts...)
}

// OpenStore builds a store from sections and opens a session over it.
func OpenStore(sections []section.Section, storeOpts []section.StoreOption, opts ...reader.Option) (*reader.Session, error) {
	store, err := NewStore(sections, storeOpts...)
	if err != nil {
		return nil, err
	}

	return Open(store, opts...)
}

// SectionID returns the 64-bit identifier the store uses to index a section
// name.
func SectionID(name string) uint64 {
	return hash.ID(name)
}
