package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/memdwarf/format"
)

// sectionLikeData mimics .debug_str content: many NUL-terminated, repetitive strings.
func sectionLikeData() []byte {
	var buf bytes.Buffer
	for i := 0; i < 200; i++ {
		buf.WriteString("GNU C17 9.3.0 -mtune=generic -march=x86-64 -gdwarf-2 -O0")
		buf.WriteByte(0)
		buf.WriteString("/var/tmp/tinydwarf")
		buf.WriteByte(0)
	}

	return buf.Bytes()
}

var allTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZlib,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

func TestCodecs_RoundTrip(t *testing.T) {
	data := sectionLikeData()

	for _, ct := range allTypes {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := CreateCodec(ct, "section")
			require.NoError(t, err)

			compressed, err := codec.Compress(data)
			require.NoError(t, err)
			if ct != format.CompressionNone {
				require.Less(t, len(compressed), len(data))
			}

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, data, decompressed)
		})
	}
}

func TestCodecs_EmptyInput(t *testing.T) {
	for _, ct := range []format.CompressionType{format.CompressionZlib, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			out, err := codec.Decompress(nil)
			require.NoError(t, err)
			require.Empty(t, out)
		})
	}
}

func TestCodecs_CorruptedInput(t *testing.T) {
	garbage := []byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02, 0x03}

	for _, ct := range []format.CompressionType{format.CompressionZlib, format.CompressionZstd} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			_, err = codec.Decompress(garbage)
			require.Error(t, err)
		})
	}
}

func TestLZ4_DecompressSized(t *testing.T) {
	data := sectionLikeData()
	codec := NewLZ4Compressor()

	compressed, err := codec.Compress(data)
	require.NoError(t, err)

	out, err := codec.DecompressSized(compressed, len(data))
	require.NoError(t, err)
	require.Equal(t, data, out)

	_, err = codec.DecompressSized(compressed, len(data)/2)
	require.Error(t, err)
}

func TestNoOp_SharesMemory(t *testing.T) {
	data := []byte{1, 2, 3}

	out, err := NewNoOpCompressor().Decompress(data)
	require.NoError(t, err)
	require.Same(t, &data[0], &out[0])
}

func TestCreateCodec_Invalid(t *testing.T) {
	_, err := CreateCodec(format.CompressionType(0x7f), "section")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid section compression")

	_, err = GetCodec(format.CompressionType(0))
	require.Error(t, err)
}

func TestS2_DecompressSized(t *testing.T) {
	data := sectionLikeData()
	codec := NewS2Compressor()

	compressed, err := codec.Compress(data)
	require.NoError(t, err)

	out, err := codec.DecompressSized(compressed, len(data))
	require.NoError(t, err)
	require.Equal(t, data, out)

	_, err = codec.DecompressSized(compressed, len(data)+1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected")
}
