// Package cursor provides bounded reads over a loaded section.
//
// Positions are absolute section offsets. A cursor may be narrowed with
// Limit so that reads stop at the end of a unit rather than the end of the
// section. Every failed read wraps errs.ErrMalformed and leaves the position
// unchanged.
package cursor

import (
	"bytes"
	"fmt"

	"github.com/go-delve/delve/pkg/dwarf/util"

	"github.com/arloliu/memdwarf/endian"
	"github.com/arloliu/memdwarf/errs"
)

// Cursor reads fixed-width integers, LEB128 values and strings from a
// byte slice in the engine's byte order. A Cursor is not safe for
// concurrent use.
type Cursor struct {
	data   []byte
	pos    int
	limit  int
	engine endian.EndianEngine
}

// New returns a cursor at offset 0 of data.
func New(data []byte, engine endian.EndianEngine) *Cursor {
	return &Cursor{data: data, limit: len(data), engine: engine}
}

// Pos returns the current offset.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the length of the underlying data.
func (c *Cursor) Len() int { return len(c.data) }

// End returns the current read limit.
func (c *Cursor) End() int { return c.limit }

// Remaining returns the number of bytes left before the limit.
func (c *Cursor) Remaining() int { return c.limit - c.pos }

// AtEnd reports whether no bytes are left before the limit.
func (c *Cursor) AtEnd() bool { return c.pos >= c.limit }

// Seek moves the cursor to pos, which may equal the limit.
func (c *Cursor) Seek(pos int) error {
	if pos < 0 || pos > c.limit {
		return fmt.Errorf("%w: seek to 0x%x outside [0, 0x%x]", errs.ErrMalformed, pos, c.limit)
	}
	c.pos = pos

	return nil
}

// Limit narrows reads to end those before end. end must not exceed the data
// length. Limit(Len()) removes any narrowing.
func (c *Cursor) Limit(end int) error {
	if end < 0 || end > len(c.data) {
		return fmt.Errorf("%w: limit 0x%x beyond data length 0x%x", errs.ErrMalformed, end, len(c.data))
	}
	c.limit = end
	if c.pos > end {
		c.pos = end
	}

	return nil
}

func (c *Cursor) need(n int, what string) error {
	if n < 0 || c.pos+n > c.limit {
		return fmt.Errorf("%w: %s of %d bytes at 0x%x past end 0x%x", errs.ErrMalformed, what, n, c.pos, c.limit)
	}

	return nil
}

// U8 reads one byte.
func (c *Cursor) U8() (uint8, error) {
	if err := c.need(1, "u8"); err != nil {
		return 0, err
	}
	v := c.data[c.pos]
	c.pos++

	return v, nil
}

// U16 reads a 2-byte unsigned integer.
func (c *Cursor) U16() (uint16, error) {
	if err := c.need(2, "u16"); err != nil {
		return 0, err
	}
	v := c.engine.Uint16(c.data[c.pos:])
	c.pos += 2

	return v, nil
}

// U24 reads a 3-byte unsigned integer.
func (c *Cursor) U24() (uint32, error) {
	if err := c.need(3, "u24"); err != nil {
		return 0, err
	}
	b := c.data[c.pos : c.pos+3]
	c.pos += 3

	if c.engine == endian.GetBigEndianEngine() {
		return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]), nil
	}

	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16, nil
}

// U32 reads a 4-byte unsigned integer.
func (c *Cursor) U32() (uint32, error) {
	if err := c.need(4, "u32"); err != nil {
		return 0, err
	}
	v := c.engine.Uint32(c.data[c.pos:])
	c.pos += 4

	return v, nil
}

// U64 reads an 8-byte unsigned integer.
func (c *Cursor) U64() (uint64, error) {
	if err := c.need(8, "u64"); err != nil {
		return 0, err
	}
	v := c.engine.Uint64(c.data[c.pos:])
	c.pos += 8

	return v, nil
}

// Uint reads an unsigned integer of size 1, 2, 3, 4 or 8 bytes.
func (c *Cursor) Uint(size int) (uint64, error) {
	switch size {
	case 1:
		v, err := c.U8()
		return uint64(v), err
	case 2:
		v, err := c.U16()
		return uint64(v), err
	case 3:
		v, err := c.U24()
		return uint64(v), err
	case 4:
		v, err := c.U32()
		return uint64(v), err
	case 8:
		return c.U64()
	default:
		return 0, fmt.Errorf("%w: unsupported integer size %d", errs.ErrMalformed, size)
	}
}

// Offset reads a section offset of offsetSize bytes (4 or 8).
func (c *Cursor) Offset(offsetSize int) (uint64, error) {
	if offsetSize != 4 && offsetSize != 8 {
		return 0, fmt.Errorf("%w: offset size %d", errs.ErrMalformed, offsetSize)
	}

	return c.Uint(offsetSize)
}

// Address reads a target address of addrSize bytes.
func (c *Cursor) Address(addrSize int) (uint64, error) {
	if addrSize == 1 {
		return c.Uint(1)
	}
	if err := c.need(addrSize, "address"); err != nil {
		return 0, err
	}

	v, err := util.ReadUintRaw(bytes.NewReader(c.data[c.pos:c.pos+addrSize]), c.engine, addrSize)
	if err != nil {
		return 0, fmt.Errorf("%w: address at 0x%x: %w", errs.ErrMalformed, c.pos, err)
	}
	c.pos += addrSize

	return v, nil
}

// maxLEB128Len is the longest encoding of a 64-bit LEB128 value.
const maxLEB128Len = 10

// checkLEB verifies that a LEB128 value of at most maxLEB128Len bytes is
// terminated before the limit.
func (c *Cursor) checkLEB(what string) error {
	for i := c.pos; i < c.limit; i++ {
		if i-c.pos >= maxLEB128Len {
			return fmt.Errorf("%w: %s at 0x%x longer than %d bytes", errs.ErrMalformed, what, c.pos, maxLEB128Len)
		}
		if c.data[i]&0x80 == 0 {
			return nil
		}
	}

	return fmt.Errorf("%w: unterminated %s at 0x%x", errs.ErrMalformed, what, c.pos)
}

// ULEB128 reads an unsigned LEB128 value.
func (c *Cursor) ULEB128() (uint64, error) {
	if err := c.checkLEB("uleb128"); err != nil {
		return 0, err
	}

	v, n := util.DecodeULEB128(bytes.NewBuffer(c.data[c.pos:c.limit]))
	c.pos += int(n)

	return v, nil
}

// SLEB128 reads a signed LEB128 value.
func (c *Cursor) SLEB128() (int64, error) {
	if err := c.checkLEB("sleb128"); err != nil {
		return 0, err
	}

	v, n := util.DecodeSLEB128(bytes.NewBuffer(c.data[c.pos:c.limit]))
	c.pos += int(n)

	return v, nil
}

// CString reads a NUL-terminated string. The terminator is consumed but not
// returned.
func (c *Cursor) CString() (string, error) {
	s, err := util.ParseString(bytes.NewBuffer(c.data[c.pos:c.limit]))
	if err != nil {
		return "", fmt.Errorf("%w: unterminated string at 0x%x: %w", errs.ErrMalformed, c.pos, err)
	}
	c.pos += len(s) + 1

	return s, nil
}

// CBytes reads a NUL-terminated string and returns its bytes, without the
// terminator, as a view of the underlying data.
func (c *Cursor) CBytes() ([]byte, error) {
	end := bytes.IndexByte(c.data[c.pos:c.limit], 0)
	if end < 0 {
		return nil, fmt.Errorf("%w: unterminated string at 0x%x", errs.ErrMalformed, c.pos)
	}
	b := c.data[c.pos : c.pos+end : c.pos+end]
	c.pos += end + 1

	return b, nil
}

// Bytes returns the next n bytes without copying.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if err := c.need(n, "block"); err != nil {
		return nil, err
	}
	b := c.data[c.pos : c.pos+n : c.pos+n]
	c.pos += n

	return b, nil
}

// Skip advances the cursor by n bytes.
func (c *Cursor) Skip(n int) error {
	if err := c.need(n, "skip"); err != nil {
		return err
	}
	c.pos += n

	return nil
}

// StringAt returns the NUL-terminated string starting at off in data.
func StringAt(data []byte, off uint64) (string, error) {
	if off >= uint64(len(data)) {
		return "", fmt.Errorf("%w: string offset 0x%x outside section of 0x%x bytes", errs.ErrMalformed, off, len(data))
	}

	c := &Cursor{data: data, pos: int(off), limit: len(data)} //nolint:gosec

	return c.CString()
}
