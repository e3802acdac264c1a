package objaccess

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/memdwarf/errs"
	"github.com/arloliu/memdwarf/format"
	"github.com/arloliu/memdwarf/section"
)

func newAdapter(t *testing.T, opts ...section.StoreOption) *StoreAdapter {
	t.Helper()

	store, err := section.NewStore([]section.Section{
		{Name: section.DebugAbbrev, Content: []byte{0x00}},
		{Name: section.DebugInfo, Address: 0x1000, Content: []byte{0x01, 0x02, 0x03}},
		{Name: section.DebugStr, Content: []byte("x\x00")},
	}, append([]section.StoreOption{section.WithReservedSlot()}, opts...)...)
	require.NoError(t, err)

	return NewStoreAdapter(store)
}

func TestStoreAdapter_Metadata(t *testing.T) {
	a := newAdapter(t, section.WithPointerSize(64), section.WithObjectSize(512))

	require.Equal(t, format.LittleEndian, a.ByteOrder())
	require.Equal(t, 4, a.OffsetSize())
	require.Equal(t, 8, a.PointerSize())
	require.Equal(t, uint64(512), a.ObjectSize())
	require.Equal(t, 4, a.SectionCount())
	require.NotNil(t, a.Store())
}

func TestStoreAdapter_SectionInfo(t *testing.T) {
	a := newAdapter(t)

	info, err := a.SectionInfo(0)
	require.NoError(t, err)
	require.Equal(t, SectionInfo{EntSize: 1}, info)

	info, err = a.SectionInfo(2)
	require.NoError(t, err)
	require.Equal(t, section.DebugInfo, info.Name)
	require.Equal(t, uint64(0x1000), info.Addr)
	require.Equal(t, uint64(3), info.Size)
	require.Equal(t, uint64(1), info.EntSize)
	require.Zero(t, info.Type)
	require.Zero(t, info.Link)
}

func TestStoreAdapter_OutOfRange(t *testing.T) {
	a := newAdapter(t)

	_, err := a.SectionInfo(99)
	require.ErrorIs(t, err, errs.ErrNotFound)

	_, err = a.LoadSection(99)
	require.ErrorIs(t, err, errs.ErrNotFound)

	require.ErrorIs(t, a.Relocate(99), errs.ErrNotFound)
}

func TestStoreAdapter_LoadAndRelocate(t *testing.T) {
	a := newAdapter(t)

	data, err := a.LoadSection(2)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02, 0x03}, data)

	err = a.Relocate(2)
	require.ErrorIs(t, err, errs.ErrUnsupportedCapability)
	require.NotErrorIs(t, err, errs.ErrNotFound)
}
