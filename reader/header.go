package reader

import (
	"fmt"

	"github.com/arloliu/memdwarf/dw"
	"github.com/arloliu/memdwarf/errs"
	"github.com/arloliu/memdwarf/internal/cursor"
	"github.com/arloliu/memdwarf/section"
)

// UnitHeader holds the decoded header of one unit.
type UnitHeader struct {
	// Offset is the section offset of the unit's initial length field.
	Offset uint64
	// UnitLength is the value of the initial length field, excluding the
	// field itself.
	UnitLength   uint64
	Version      uint16
	AbbrevOffset uint64
	AddressSize  int
	// OffsetSize is 4 for 32-bit DWARF and 8 for 64-bit DWARF.
	OffsetSize int
	// ExtensionSize is 4 when the length used the 0xffffffff escape.
	ExtensionSize int
	// Signature is the type signature of a type unit or the dwo_id of a
	// skeleton or split compile unit.
	Signature  [8]byte
	TypeOffset uint64
	// NextUnitOffset is the section offset of the following unit.
	NextUnitOffset uint64
	UnitType       dw.UnitType
	// DIEOffset is the section offset of the first record.
	DIEOffset uint64
	IsInfo    bool
}

// HeaderSize returns the number of bytes between Offset and DIEOffset.
func (h UnitHeader) HeaderSize() uint64 {
	return h.DIEOffset - h.Offset
}

const (
	escape64     = 0xffffffff
	reservedLow  = 0xfffffff0
	versionFirst = 2
	versionLast  = 5
)

type unit struct {
	header  UnitHeader
	data    []byte
	abbrevs abbrevTable

	strOffsetsBase    uint64
	hasStrOffsetsBase bool
}

// NextUnit reads the header of the next unit in .debug_info (isInfo) or
// .debug_types and makes it the open unit. The previous unit's records are
// released.
//
// Returns errs.ErrEndOfData when the area is exhausted or absent, and
// errs.ErrMalformed when the header is inconsistent with the section.
func (s *Session) NextUnit(isInfo bool) (UnitHeader, error) {
	if err := s.usable(); err != nil {
		return UnitHeader{}, err
	}

	s.releaseUnit()

	ar := &s.areas[areaTypes]
	if isInfo {
		ar = &s.areas[areaInfo]
	}

	if !ar.present {
		return UnitHeader{}, fmt.Errorf("%w: no %s", errs.ErrEndOfData, ar.name)
	}
	if !ar.loaded {
		data, _, err := s.section(ar.name)
		if err != nil {
			return UnitHeader{}, err
		}
		ar.data = data
		ar.loaded = true
	}

	if ar.next >= uint64(len(ar.data)) {
		return UnitHeader{}, fmt.Errorf("%w: %s at 0x%x", errs.ErrEndOfData, ar.name, ar.next)
	}

	hdr, err := s.parseHeader(ar.data, ar.next, isInfo)
	if err != nil {
		return UnitHeader{}, fmt.Errorf("%s unit at 0x%x: %w", ar.name, ar.next, err)
	}

	if hdr.NextUnitOffset <= ar.next {
		s.poisoned = fmt.Errorf("%w: %s next unit 0x%x does not follow 0x%x",
			errs.ErrCursorRegression, ar.name, hdr.NextUnitOffset, ar.next)

		return UnitHeader{}, s.poisoned
	}

	abbrevs, err := s.abbrevTable(hdr.AbbrevOffset)
	if err != nil {
		return UnitHeader{}, fmt.Errorf("%s unit at 0x%x: %w", ar.name, ar.next, err)
	}

	ar.next = hdr.NextUnitOffset
	s.unit = &unit{
		header:  hdr,
		data:    ar.data,
		abbrevs: abbrevs,
	}

	s.logger.Debug().
		Str("area", ar.name).
		Uint64("offset", hdr.Offset).
		Uint64("length", hdr.UnitLength).
		Uint16("version", hdr.Version).
		Int("address_size", hdr.AddressSize).
		Int("offset_size", hdr.OffsetSize).
		Stringer("unit_type", hdr.UnitType).
		Uint64("next", hdr.NextUnitOffset).
		Msg("unit header parsed")

	if ps := s.access.PointerSize(); ps != hdr.AddressSize {
		s.logger.Warn().
			Uint64("offset", hdr.Offset).
			Int("address_size", hdr.AddressSize).
			Int("pointer_size", ps).
			Msg("unit address size differs from object pointer size")
	}

	return hdr, nil
}

func (s *Session) parseHeader(data []byte, start uint64, isInfo bool) (UnitHeader, error) {
	hdr := UnitHeader{Offset: start, IsInfo: isInfo}

	c := cursor.New(data, s.engine)
	if err := c.Seek(int(start)); err != nil { //nolint:gosec
		return hdr, err
	}

	length32, err := c.U32()
	if err != nil {
		return hdr, err
	}

	switch {
	case length32 == escape64:
		hdr.OffsetSize = 8
		hdr.ExtensionSize = 4
		if hdr.UnitLength, err = c.U64(); err != nil {
			return hdr, err
		}
	case length32 == 0 && s.access.OffsetSize() == 8:
		// 64-bit length without the escape, as written by IRIX producers.
		hdr.OffsetSize = 8
		if err := c.Seek(int(start)); err != nil { //nolint:gosec
			return hdr, err
		}
		if hdr.UnitLength, err = c.U64(); err != nil {
			return hdr, err
		}
	case length32 >= reservedLow:
		return hdr, fmt.Errorf("%w: reserved initial length 0x%x", errs.ErrMalformed, length32)
	default:
		hdr.OffsetSize = 4
		hdr.UnitLength = uint64(length32)
	}

	lengthEnd := uint64(c.Pos()) //nolint:gosec
	remaining := uint64(len(data)) - lengthEnd
	if hdr.UnitLength > remaining {
		return hdr, fmt.Errorf("%w: unit length 0x%x exceeds the 0x%x bytes left in the section",
			errs.ErrMalformed, hdr.UnitLength, remaining)
	}
	hdr.NextUnitOffset = lengthEnd + hdr.UnitLength

	if err := c.Limit(int(hdr.NextUnitOffset)); err != nil { //nolint:gosec
		return hdr, err
	}

	if hdr.Version, err = c.U16(); err != nil {
		return hdr, err
	}
	if hdr.Version < versionFirst || hdr.Version > versionLast {
		return hdr, fmt.Errorf("%w: unsupported version %d", errs.ErrMalformed, hdr.Version)
	}

	if hdr.Version >= 5 {
		err = s.parseHeaderV5(c, &hdr)
	} else {
		err = s.parseHeaderV2(c, &hdr)
	}
	if err != nil {
		return hdr, err
	}

	switch hdr.AddressSize {
	case 1, 2, 4, 8:
	default:
		return hdr, fmt.Errorf("%w: invalid address size %d", errs.ErrMalformed, hdr.AddressSize)
	}

	hdr.DIEOffset = uint64(c.Pos()) //nolint:gosec

	if hdr.UnitType == dw.UnitTypeType || hdr.UnitType == dw.UnitTypeSplitType {
		if hdr.TypeOffset < hdr.HeaderSize() || hdr.Offset+hdr.TypeOffset >= hdr.NextUnitOffset {
			return hdr, fmt.Errorf("%w: type offset 0x%x outside unit", errs.ErrMalformed, hdr.TypeOffset)
		}
	}

	return hdr, nil
}

func (s *Session) parseHeaderV2(c *cursor.Cursor, hdr *UnitHeader) error {
	var err error
	if hdr.AbbrevOffset, err = c.Offset(hdr.OffsetSize); err != nil {
		return err
	}

	addrSize, err := c.U8()
	if err != nil {
		return err
	}
	hdr.AddressSize = int(addrSize)

	if hdr.IsInfo {
		hdr.UnitType = dw.UnitTypeCompile
		return nil
	}

	hdr.UnitType = dw.UnitTypeType

	return s.parseSignature(c, hdr, true)
}

func (s *Session) parseHeaderV5(c *cursor.Cursor, hdr *UnitHeader) error {
	unitType, err := c.U8()
	if err != nil {
		return err
	}
	hdr.UnitType = dw.UnitType(unitType)

	addrSize, err := c.U8()
	if err != nil {
		return err
	}
	hdr.AddressSize = int(addrSize)

	if hdr.AbbrevOffset, err = c.Offset(hdr.OffsetSize); err != nil {
		return err
	}

	switch hdr.UnitType {
	case dw.UnitTypeCompile, dw.UnitTypePartial:
		return nil
	case dw.UnitTypeSkeleton, dw.UnitTypeSplitCompile:
		return s.parseSignature(c, hdr, false)
	case dw.UnitTypeType, dw.UnitTypeSplitType:
		return s.parseSignature(c, hdr, true)
	default:
		return fmt.Errorf("%w: unknown unit type 0x%x", errs.ErrMalformed, unitType)
	}
}

// parseSignature reads the 8-byte signature and, for type units, the type
// offset that follows it.
func (s *Session) parseSignature(c *cursor.Cursor, hdr *UnitHeader, withTypeOffset bool) error {
	sig, err := c.Bytes(8)
	if err != nil {
		return err
	}
	copy(hdr.Signature[:], sig)

	if !withTypeOffset {
		return nil
	}

	hdr.TypeOffset, err = c.Offset(hdr.OffsetSize)

	return err
}

// abbrevTable returns the abbreviation table at offset, parsing it on first
// use.
func (s *Session) abbrevTable(offset uint64) (abbrevTable, error) {
	if table, ok := s.abbrevs[offset]; ok {
		return table, nil
	}

	data, ok, err := s.section(section.DebugAbbrev)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no %s", errs.ErrMalformed, section.DebugAbbrev)
	}

	table, err := parseAbbrevTable(data, offset, s.engine)
	if err != nil {
		return nil, err
	}
	s.abbrevs[offset] = table

	s.logger.Debug().
		Uint64("offset", offset).
		Int("entries", len(table)).
		Msg("abbreviation table parsed")

	return table, nil
}
