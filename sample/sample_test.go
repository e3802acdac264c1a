package sample

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/memdwarf/section"
)

func TestSections_Fresh(t *testing.T) {
	first := Sections()
	first[1].Content[0] = 0xff

	second := Sections()
	require.Equal(t, Info, second[1].Content)
	require.Equal(t, byte(0x60), Info[0])
}

func TestStrings(t *testing.T) {
	require.Equal(t, 0, bytes.Index(Str, []byte(Producer+"\x00")))
	require.Equal(t, len(Producer)+1, bytes.Index(Str, []byte(CompDir+"\x00")))
	require.Len(t, Str, len(Producer)+len(CompDir)+2)
}

func TestNewStore(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)
	require.Equal(t, SectionCount, store.SectionCount())
	require.Equal(t, uint(32), store.PointerSizeBits())

	idx, ok := store.Find(section.DebugStr)
	require.True(t, ok)
	require.Equal(t, 3, idx)

	_, err = NewStore(section.WithSectionCount(5))
	require.Error(t, err)
}
