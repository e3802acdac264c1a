package reader

import (
	"fmt"

	"github.com/arloliu/memdwarf/dw"
	"github.com/arloliu/memdwarf/errs"
	"github.com/arloliu/memdwarf/internal/cursor"
	"github.com/arloliu/memdwarf/section"
)

// FormString resolves the value of a string-bearing attribute.
//
// Indexed forms (DW_FORM_strx*, DW_FORM_GNU_str_index) are resolved against
// the open unit's string offsets base.
//
// Returns errs.ErrNotStringForm for any other form, and an error wrapping
// errs.ErrStringDecode and its cause when the string cannot be resolved.
func (s *Session) FormString(attr Attribute) (string, error) {
	if !attr.Form.IsString() {
		return "", fmt.Errorf("%w: %s", errs.ErrNotStringForm, attr.Form)
	}
	if err := s.usable(); err != nil {
		return "", err
	}

	str, err := s.resolveString(attr)
	if err != nil {
		return "", fmt.Errorf("%w: %s %s: %w", errs.ErrStringDecode, attr.Attr, attr.Form, err)
	}

	return str, nil
}

func (s *Session) resolveString(attr Attribute) (string, error) {
	switch attr.Form {
	case dw.FormString:
		return string(attr.Bytes), nil
	case dw.FormStrp:
		return s.stringAt(section.DebugStr, attr.Unsigned)
	case dw.FormLineStrp:
		return s.stringAt(section.DebugLineStr, attr.Unsigned)
	case dw.FormStrpSup, dw.FormGNUStrpAlt:
		data, err := s.supplementaryStrings()
		if err != nil {
			return "", err
		}

		return cursor.StringAt(data, attr.Unsigned)
	default:
		off, err := s.stringOffset(attr.Unsigned)
		if err != nil {
			return "", err
		}

		return s.stringAt(section.DebugStr, off)
	}
}

func (s *Session) stringAt(name string, off uint64) (string, error) {
	data, ok, err := s.section(name)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: no %s", errs.ErrNotFound, name)
	}

	return cursor.StringAt(data, off)
}

// stringOffset maps a string index of the open unit to a .debug_str offset.
func (s *Session) stringOffset(index uint64) (uint64, error) {
	if s.unit == nil {
		return 0, errs.ErrNoOpenUnit
	}

	data, ok, err := s.section(section.DebugStrOffsets)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: no %s", errs.ErrNotFound, section.DebugStrOffsets)
	}

	hdr := s.unit.header
	base := s.unit.strOffsetsBase
	if !s.unit.hasStrOffsetsBase && hdr.Version >= 5 {
		// Skip the contribution header: unit length, version, padding.
		base = uint64(2 * hdr.OffsetSize) //nolint:gosec
	}

	size := uint64(hdr.OffsetSize) //nolint:gosec
	total := uint64(len(data))
	if base > total || index >= (total-base)/size {
		return 0, fmt.Errorf("%w: string index %d at base 0x%x outside %s",
			errs.ErrMalformed, index, base, section.DebugStrOffsets)
	}
	entry := base + index*size

	c := cursor.New(data, s.engine)
	if err := c.Seek(int(entry)); err != nil { //nolint:gosec
		return 0, err
	}

	return c.Offset(hdr.OffsetSize)
}
