package reader

import (
	"fmt"

	"github.com/arloliu/memdwarf/dw"
	"github.com/arloliu/memdwarf/errs"
	"github.com/arloliu/memdwarf/internal/cursor"
)

// Attribute is one decoded attribute value.
//
// Unsigned carries addresses, constants, flags, references, section offsets
// and string or address indices. Signed carries DW_FORM_sdata and
// DW_FORM_implicit_const values, and the sign-extended value of the
// fixed-size data forms. Bytes carries blocks, expressions, DW_FORM_data16
// and the text of DW_FORM_string; it aliases section content.
type Attribute struct {
	Attr     dw.Attr
	Form     dw.Form
	Unsigned uint64
	Signed   int64
	Bytes    []byte
}

// maxIndirect bounds chains of DW_FORM_indirect.
const maxIndirect = 8

// decodeAttr decodes one attribute value at the cursor.
func decodeAttr(c *cursor.Cursor, spec attrSpec, hdr *UnitHeader) (Attribute, error) {
	attr := Attribute{Attr: spec.attr, Form: spec.form}

	for range maxIndirect {
		if attr.Form != dw.FormIndirect {
			return attr, decodeValue(c, &attr, spec.implicit, hdr)
		}

		form, err := c.ULEB128()
		if err != nil {
			return attr, err
		}
		attr.Form = dw.Form(form)
		if attr.Form == dw.FormImplicitConst {
			return attr, fmt.Errorf("%w: DW_FORM_implicit_const through DW_FORM_indirect", errs.ErrMalformed)
		}
	}

	return attr, fmt.Errorf("%w: DW_FORM_indirect chain longer than %d", errs.ErrMalformed, maxIndirect)
}

func decodeValue(c *cursor.Cursor, attr *Attribute, implicit int64, hdr *UnitHeader) error {
	var err error

	switch attr.Form {
	case dw.FormAddr:
		attr.Unsigned, err = c.Address(hdr.AddressSize)

	case dw.FormData1, dw.FormRef1, dw.FormFlag, dw.FormStrx1, dw.FormAddrx1:
		err = fixed(c, attr, 1)
	case dw.FormData2, dw.FormRef2, dw.FormStrx2, dw.FormAddrx2:
		err = fixed(c, attr, 2)
	case dw.FormStrx3, dw.FormAddrx3:
		err = fixed(c, attr, 3)
	case dw.FormData4, dw.FormRef4, dw.FormRefSup4, dw.FormStrx4, dw.FormAddrx4:
		err = fixed(c, attr, 4)
	case dw.FormData8, dw.FormRef8, dw.FormRefSig8, dw.FormRefSup8:
		err = fixed(c, attr, 8)

	case dw.FormData16:
		attr.Bytes, err = c.Bytes(16)

	case dw.FormBlock1:
		err = block(c, attr, func() (uint64, error) { v, err := c.U8(); return uint64(v), err })
	case dw.FormBlock2:
		err = block(c, attr, func() (uint64, error) { v, err := c.U16(); return uint64(v), err })
	case dw.FormBlock4:
		err = block(c, attr, func() (uint64, error) { v, err := c.U32(); return uint64(v), err })
	case dw.FormBlock, dw.FormExprloc:
		err = block(c, attr, c.ULEB128)

	case dw.FormString:
		attr.Bytes, err = c.CBytes()

	case dw.FormStrp, dw.FormLineStrp, dw.FormStrpSup, dw.FormGNUStrpAlt,
		dw.FormSecOffset, dw.FormGNURefAlt:
		attr.Unsigned, err = c.Offset(hdr.OffsetSize)

	case dw.FormRefAddr:
		// DWARF 2 sized DW_FORM_ref_addr like an address.
		if hdr.Version <= 2 {
			attr.Unsigned, err = c.Address(hdr.AddressSize)
		} else {
			attr.Unsigned, err = c.Offset(hdr.OffsetSize)
		}

	case dw.FormSdata:
		attr.Signed, err = c.SLEB128()
		attr.Unsigned = uint64(attr.Signed) //nolint:gosec

	case dw.FormUdata, dw.FormRefUdata,
		dw.FormStrx, dw.FormAddrx, dw.FormLoclistx, dw.FormRnglistx,
		dw.FormGNUAddrIndex, dw.FormGNUStrIndex:
		attr.Unsigned, err = c.ULEB128()

	case dw.FormFlagPresent:
		attr.Unsigned = 1

	case dw.FormImplicitConst:
		attr.Signed = implicit
		attr.Unsigned = uint64(implicit) //nolint:gosec

	default:
		return fmt.Errorf("%w: cannot decode %s", errs.ErrMalformed, attr.Form)
	}

	return err
}

// fixed reads a size-byte unsigned value and its sign extension.
func fixed(c *cursor.Cursor, attr *Attribute, size int) error {
	v, err := c.Uint(size)
	if err != nil {
		return err
	}

	attr.Unsigned = v
	shift := 64 - 8*size
	attr.Signed = int64(v<<shift) >> shift //nolint:gosec

	return nil
}

func block(c *cursor.Cursor, attr *Attribute, length func() (uint64, error)) error {
	n, err := length()
	if err != nil {
		return err
	}
	if n > uint64(c.Remaining()) { //nolint:gosec
		return fmt.Errorf("%w: block of %d bytes at 0x%x exceeds unit", errs.ErrMalformed, n, c.Pos())
	}

	attr.Bytes, err = c.Bytes(int(n)) //nolint:gosec

	return err
}
