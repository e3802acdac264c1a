package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of a section name.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// Fingerprint computes the xxHash64 of section content.
func Fingerprint(content []byte) uint64 {
	return xxhash.Sum64(content)
}
