// Package section implements the in-memory section table a debug
// information reader consumes instead of an object file.
//
// A Store is an immutable, ordered table of named byte ranges plus the
// object-level metadata a file parser would normally report: word size,
// byte order, pointer and offset widths and the logical object size.
//
// # Layout
//
//	index | name            | address | size | content
//	------|-----------------|---------|------|---------
//	0     | ""              | 0       | 0    | (reserved slot)
//	1     | .debug_abbrev   | 0       | 76   | abbrev bytes
//	2     | .debug_info     | 0       | 100  | info bytes
//	3     | .debug_str      | 0       | 171  | string bytes
//
// Indices are 0-based and contiguous. Slot 0 may be a reserved, unnamed
// placeholder, mirroring the ELF null section.
//
// # Compressed Content
//
// A section may be held compressed with any codec from the compress
// package. Descriptor.Size is always the uncompressed size. The first Load
// decompresses and verifies the size; the result is cached for the lifetime
// of the store and every later Load returns the same slice.
//
// # Usage
//
//	store, err := section.NewStore([]section.Section{
//	    {Name: ".debug_abbrev", Content: abbrev},
//	    {Name: ".debug_info", Content: info},
//	    {Name: ".debug_str", Content: str},
//	}, section.WithReservedSlot(), section.WithPointerSize(64))
//
//	desc, err := store.Describe(2)
//	data, err := store.Load(2)
//
// # Thread Safety
//
// A Store is safe for concurrent use once constructed. Callers must not
// modify slices returned by Load.
package section
