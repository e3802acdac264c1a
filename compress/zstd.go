package compress

// ZstdCompressor handles Zstandard frames, the payload format of
// ELFCOMPRESS_ZSTD sections.
//
// The implementation is selected at build time: pure Go by default, cgo
// gozstd with the gozstd build tag.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
