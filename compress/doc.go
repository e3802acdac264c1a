// Package compress provides the codecs a section store uses for debug
// sections that are held compressed in memory.
//
// ELF objects carry compressed debug sections as zlib or Zstandard streams
// (SHF_COMPRESSED with ELFCOMPRESS_ZLIB / ELFCOMPRESS_ZSTD). A producer that
// keeps generated debug information in memory, such as a JIT, may also pick
// a faster block codec. The package supports:
//   - None: content is stored as-is
//   - Zlib: the classic compressed debug section format
//   - Zstd: ELFCOMPRESS_ZSTD
//   - S2: fast block compression
//   - LZ4: fast block compression, small decoder
//
// # Architecture
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// Use CreateCodec or GetCodec to obtain a codec for a format.CompressionType.
//
// # Zstd Backends
//
// The default Zstd codec is pure Go (github.com/klauspost/compress/zstd).
// Building with the gozstd tag on a cgo toolchain switches to
// github.com/valyala/gozstd.
//
// # Thread Safety
//
// All codecs are stateless values and safe for concurrent use. Encoders and
// decoders are pooled internally where the underlying library benefits.
package compress
