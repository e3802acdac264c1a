package cursor

import (
	"bytes"
	"testing"

	"github.com/go-delve/delve/pkg/dwarf/util"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/memdwarf/endian"
	"github.com/arloliu/memdwarf/errs"
)

func TestCursor_FixedWidth(t *testing.T) {
	data := []byte{
		0x01,
		0x02, 0x01,
		0x03, 0x02, 0x01,
		0x04, 0x03, 0x02, 0x01,
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
	}

	c := New(data, endian.GetLittleEndianEngine())
	u8, err := c.U8()
	require.NoError(t, err)
	require.Equal(t, uint8(1), u8)

	u16, err := c.U16()
	require.NoError(t, err)
	require.Equal(t, uint16(0x0102), u16)

	u24, err := c.U24()
	require.NoError(t, err)
	require.Equal(t, uint32(0x010203), u24)

	u32, err := c.U32()
	require.NoError(t, err)
	require.Equal(t, uint32(0x01020304), u32)

	u64, err := c.U64()
	require.NoError(t, err)
	require.Equal(t, uint64(0x0102030405060708), u64)
	require.True(t, c.AtEnd())

	_, err = c.U8()
	require.ErrorIs(t, err, errs.ErrMalformed)
}

func TestCursor_BigEndian(t *testing.T) {
	c := New([]byte{0x01, 0x02, 0x03, 0x01, 0x02, 0x03, 0x04}, endian.GetBigEndianEngine())

	u24, err := c.U24()
	require.NoError(t, err)
	require.Equal(t, uint32(0x010203), u24)

	u32, err := c.Uint(4)
	require.NoError(t, err)
	require.Equal(t, uint64(0x01020304), u32)
}

func TestCursor_OffsetAndAddress(t *testing.T) {
	data := []byte{
		0x60, 0x00, 0x00, 0x00,
		0x10, 0x11, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x34, 0x12, 0x00, 0x00,
	}
	c := New(data, endian.GetLittleEndianEngine())

	off, err := c.Offset(4)
	require.NoError(t, err)
	require.Equal(t, uint64(0x60), off)

	addr, err := c.Address(8)
	require.NoError(t, err)
	require.Equal(t, uint64(0x1110), addr)

	addr, err = c.Address(4)
	require.NoError(t, err)
	require.Equal(t, uint64(0x1234), addr)

	_, err = c.Offset(2)
	require.ErrorIs(t, err, errs.ErrMalformed)

	_, err = c.Address(8)
	require.ErrorIs(t, err, errs.ErrMalformed)
}

func TestCursor_LEB128(t *testing.T) {
	var buf bytes.Buffer
	util.EncodeULEB128(&buf, 624485)
	util.EncodeSLEB128(&buf, -123456)
	util.EncodeULEB128(&buf, 0)

	c := New(buf.Bytes(), endian.GetLittleEndianEngine())

	u, err := c.ULEB128()
	require.NoError(t, err)
	require.Equal(t, uint64(624485), u)

	s, err := c.SLEB128()
	require.NoError(t, err)
	require.Equal(t, int64(-123456), s)

	u, err = c.ULEB128()
	require.NoError(t, err)
	require.Zero(t, u)
	require.True(t, c.AtEnd())
}

func TestCursor_UnterminatedLEB128(t *testing.T) {
	c := New([]byte{0x80, 0x80}, endian.GetLittleEndianEngine())

	_, err := c.ULEB128()
	require.ErrorIs(t, err, errs.ErrMalformed)
	require.Equal(t, 0, c.Pos())

	_, err = c.SLEB128()
	require.ErrorIs(t, err, errs.ErrMalformed)
}

func TestCursor_LEB128TooLong(t *testing.T) {
	tooLong := append(bytes.Repeat([]byte{0xff}, 10), 0x01)

	c := New(tooLong, endian.GetLittleEndianEngine())
	_, err := c.ULEB128()
	require.ErrorIs(t, err, errs.ErrMalformed)
	require.Equal(t, 0, c.Pos())

	_, err = c.SLEB128()
	require.ErrorIs(t, err, errs.ErrMalformed)
	require.Equal(t, 0, c.Pos())

	maxLen := append(bytes.Repeat([]byte{0xff}, 9), 0x01)
	c = New(maxLen, endian.GetLittleEndianEngine())
	u, err := c.ULEB128()
	require.NoError(t, err)
	require.Equal(t, ^uint64(0), u)
	require.True(t, c.AtEnd())
}

func TestCursor_LEB128WithinLimit(t *testing.T) {
	data := []byte{0xe5, 0x8e, 0x26, 0x7f, 0x05}
	c := New(data, endian.GetLittleEndianEngine())
	require.NoError(t, c.Limit(4))

	u, err := c.ULEB128()
	require.NoError(t, err)
	require.Equal(t, uint64(624485), u)
	require.Equal(t, 3, c.Pos())

	v, err := c.SLEB128()
	require.NoError(t, err)
	require.Equal(t, int64(-1), v)
	require.Equal(t, 4, c.Pos())

	_, err = c.ULEB128()
	require.ErrorIs(t, err, errs.ErrMalformed)
}

func TestCursor_CString(t *testing.T) {
	c := New([]byte("t.c\x00int\x00tail"), endian.GetLittleEndianEngine())

	s, err := c.CString()
	require.NoError(t, err)
	require.Equal(t, "t.c", s)
	require.Equal(t, 4, c.Pos())

	s, err = c.CString()
	require.NoError(t, err)
	require.Equal(t, "int", s)
	require.Equal(t, 8, c.Pos())

	_, err = c.CString()
	require.ErrorIs(t, err, errs.ErrMalformed)
	require.Equal(t, 8, c.Pos())
}

func TestCursor_LimitAndSeek(t *testing.T) {
	c := New([]byte{1, 2, 3, 4, 5, 6}, endian.GetLittleEndianEngine())

	require.NoError(t, c.Limit(4))
	require.Equal(t, 4, c.End())
	require.Equal(t, 4, c.Remaining())

	b, err := c.Bytes(3)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, b)

	_, err = c.U16()
	require.ErrorIs(t, err, errs.ErrMalformed)

	require.ErrorIs(t, c.Seek(5), errs.ErrMalformed)
	require.ErrorIs(t, c.Limit(7), errs.ErrMalformed)

	require.NoError(t, c.Limit(c.Len()))
	require.NoError(t, c.Seek(5))
	require.NoError(t, c.Skip(1))
	require.True(t, c.AtEnd())
	require.ErrorIs(t, c.Skip(1), errs.ErrMalformed)
}

func TestStringAt(t *testing.T) {
	data := []byte("GNU C17\x00/var/tmp\x00")

	s, err := StringAt(data, 0)
	require.NoError(t, err)
	require.Equal(t, "GNU C17", s)

	s, err = StringAt(data, 8)
	require.NoError(t, err)
	require.Equal(t, "/var/tmp", s)

	_, err = StringAt(data, uint64(len(data)))
	require.ErrorIs(t, err, errs.ErrMalformed)

	_, err = StringAt([]byte("abc"), 1)
	require.ErrorIs(t, err, errs.ErrMalformed)
}

func TestCursor_CBytes(t *testing.T) {
	data := []byte("f\x00i\x00")
	c := New(data, endian.GetLittleEndianEngine())

	b, err := c.CBytes()
	require.NoError(t, err)
	require.Equal(t, []byte("f"), b)
	require.Same(t, &data[0], &b[0])

	b, err = c.CBytes()
	require.NoError(t, err)
	require.Equal(t, []byte("i"), b)

	_, err = c.CBytes()
	require.ErrorIs(t, err, errs.ErrMalformed)
}
