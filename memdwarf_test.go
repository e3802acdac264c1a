package memdwarf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/memdwarf/dw"
	"github.com/arloliu/memdwarf/errs"
	"github.com/arloliu/memdwarf/reader"
	"github.com/arloliu/memdwarf/sample"
	"github.com/arloliu/memdwarf/section"
)

func TestOpen_Sample(t *testing.T) {
	store, err := sample.NewStore()
	require.NoError(t, err)

	sess, err := Open(store)
	require.NoError(t, err)
	defer sess.Finish()

	hdr, err := sess.NextUnit(true)
	require.NoError(t, err)
	require.Equal(t, uint16(2), hdr.Version)

	root, err := sess.Root()
	require.NoError(t, err)
	require.Equal(t, dw.TagCompileUnit, root.Tag)

	var tags []dw.Tag
	err = reader.Walk(root, func(rec *reader.Record, _ int) error {
		tags = append(tags, rec.Tag)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []dw.Tag{dw.TagCompileUnit, dw.TagSubprogram, dw.TagVariable, dw.TagBaseType}, tags)

	_, err = sess.NextUnit(true)
	require.True(t, errors.Is(err, errs.ErrEndOfData))
}

func TestOpenStore(t *testing.T) {
	sess, err := OpenStore(sample.Sections(), []section.StoreOption{section.WithPointerSize(64)})
	require.NoError(t, err)
	defer sess.Finish()

	_, err = sess.NextUnit(true)
	require.NoError(t, err)

	root, err := sess.Root()
	require.NoError(t, err)

	producer, ok := root.Attr(dw.AttrProducer)
	require.True(t, ok)
	value, err := sess.FormString(producer)
	require.NoError(t, err)
	require.Equal(t, sample.Producer, value)
}

func TestOpenStore_Errors(t *testing.T) {
	_, err := OpenStore(sample.Sections(), []section.StoreOption{section.WithSectionCount(9)})
	require.ErrorIs(t, err, errs.ErrInvalidSectionCount)

	_, err = OpenStore([]section.Section{{Name: section.DebugAbbrev}}, nil)
	require.ErrorIs(t, err, errs.ErrNoDebugInfo)
}

func TestSectionID(t *testing.T) {
	require.Equal(t, SectionID(section.DebugInfo), SectionID(section.DebugInfo))
	require.NotEqual(t, SectionID(section.DebugInfo), SectionID(section.DebugStr))
}
