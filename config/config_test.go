package config

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/memdwarf/errs"
	"github.com/arloliu/memdwarf/format"
	"github.com/arloliu/memdwarf/sample"
	"github.com/arloliu/memdwarf/section"
)

func TestDecodeHex(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []byte
	}{
		{"plain", "0111ff", []byte{0x01, 0x11, 0xff}},
		{"spaced", "01 11\tff\n", []byte{0x01, 0x11, 0xff}},
		{"commas and prefixes", "0x01, 0x11,0xFF", []byte{0x01, 0x11, 0xff}},
		{"short byte", "0x1 0x2", []byte{0x01, 0x02}},
		{"empty", "", []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeHex(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := DecodeHex("zz")
	require.ErrorIs(t, err, errs.ErrInvalidOption)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown field", "bogus: 1\n"},
		{"byte order", "byte_order: middle\n"},
		{"compression", "sections:\n  - name: .debug_info\n    compression: brotli\n"},
		{"hex and file", "sections:\n  - name: .debug_info\n    hex: \"00\"\n    file: x.bin\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
		})
	}

	_, err := Parse([]byte("byte_order: middle\n"))
	require.ErrorIs(t, err, errs.ErrInvalidOption)
}

func sampleYAML() string {
	return "is_64bit: false\n" +
		"byte_order: little\n" +
		"pointer_size_bits: 32\n" +
		"offset_size_bits: 32\n" +
		"section_count: 4\n" +
		"reserved_slot: true\n" +
		"sections:\n" +
		"  - name: .debug_abbrev\n" +
		"    hex: \"" + hex.EncodeToString(sample.Abbrev) + "\"\n" +
		"  - name: .debug_info\n" +
		"    hex: \"" + hex.EncodeToString(sample.Info) + "\"\n" +
		"    compression: zstd\n" +
		"  - name: .debug_str\n" +
		"    address: 0x1000\n" +
		"    hex: \"" + hex.EncodeToString(sample.Str) + "\"\n"
}

func TestNewStore_Sample(t *testing.T) {
	f, err := Parse([]byte(sampleYAML()))
	require.NoError(t, err)
	require.Len(t, f.Sections, 3)
	require.NotNil(t, f.SectionCount)
	require.Equal(t, 4, *f.SectionCount)

	store, err := f.NewStore()
	require.NoError(t, err)
	require.Equal(t, sample.SectionCount, store.SectionCount())
	require.Equal(t, format.LittleEndian, store.ByteOrder())
	require.Equal(t, uint(32), store.PointerSizeBits())
	require.False(t, store.Is64Bit())

	idx, ok := store.Find(section.DebugInfo)
	require.True(t, ok)
	require.Equal(t, 2, idx)

	desc, err := store.Describe(idx)
	require.NoError(t, err)
	require.True(t, desc.IsCompressed())
	require.Equal(t, uint64(len(sample.Info)), desc.Size)

	info, err := store.Load(idx)
	require.NoError(t, err)
	require.Equal(t, sample.Info, info)

	idx, ok = store.Find(section.DebugStr)
	require.True(t, ok)
	desc, err = store.Describe(idx)
	require.NoError(t, err)
	require.Equal(t, uint64(0x1000), desc.Address)
}

func TestNewStore_SectionCountMismatch(t *testing.T) {
	f, err := Parse([]byte("section_count: 3\nsections:\n  - name: .debug_info\n    hex: \"00\"\n"))
	require.NoError(t, err)

	_, err = f.NewStore()
	require.ErrorIs(t, err, errs.ErrInvalidSectionCount)
}

func TestNewStore_InvalidPointerSize(t *testing.T) {
	f, err := Parse([]byte("pointer_size_bits: 24\n"))
	require.NoError(t, err)

	_, err = f.NewStore()
	require.ErrorIs(t, err, errs.ErrInvalidOption)
}

func TestLoad_RelativeFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "abbrev.bin"), sample.Abbrev, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "info.bin"), sample.Info, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "str.bin"), sample.Str, 0o600))

	table := "byte_order: le\n" +
		"reserved_slot: true\n" +
		"sections:\n" +
		"  - name: .debug_abbrev\n    file: abbrev.bin\n    compression: lz4\n" +
		"  - name: .debug_info\n    file: info.bin\n" +
		"  - name: .debug_str\n    file: str.bin\n    compression: s2\n"
	path := filepath.Join(dir, "sections.yaml")
	require.NoError(t, os.WriteFile(path, []byte(table), 0o600))

	f, err := Load(path)
	require.NoError(t, err)

	store, err := f.NewStore()
	require.NoError(t, err)
	require.Equal(t, 4, store.SectionCount())

	for i, want := range [][]byte{sample.Abbrev, sample.Info, sample.Str} {
		got, err := store.Load(i + 1)
		require.NoError(t, err)
		require.Equal(t, want, got)
		require.NoError(t, store.Verify(i+1))
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(dir, "sections.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sections:\n  - name: .debug_info\n    file: gone.bin\n"), 0o600))

	f, err := Load(path)
	require.NoError(t, err)

	_, err = f.NewStore()
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_Empty(t *testing.T) {
	f, err := Parse(nil)
	require.NoError(t, err)
	require.Empty(t, f.Sections)

	store, err := f.NewStore()
	require.NoError(t, err)
	require.Equal(t, 0, store.SectionCount())
}
