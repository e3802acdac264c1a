package reader

import (
	"fmt"

	"github.com/arloliu/memdwarf/dw"
	"github.com/arloliu/memdwarf/endian"
	"github.com/arloliu/memdwarf/errs"
	"github.com/arloliu/memdwarf/internal/cursor"
)

type attrSpec struct {
	attr dw.Attr
	form dw.Form
	// implicit is the value of a DW_FORM_implicit_const attribute.
	implicit int64
}

type abbrev struct {
	code     uint64
	tag      dw.Tag
	children bool
	specs    []attrSpec
}

type abbrevTable map[uint64]*abbrev

// parseAbbrevTable decodes the abbreviation declarations starting at offset
// up to the terminating zero code or the end of the section.
func parseAbbrevTable(data []byte, offset uint64, engine endian.EndianEngine) (abbrevTable, error) {
	if offset >= uint64(len(data)) {
		return nil, fmt.Errorf("%w: abbreviation offset 0x%x outside section of 0x%x bytes", errs.ErrMalformed, offset, len(data))
	}

	c := cursor.New(data, engine)
	if err := c.Seek(int(offset)); err != nil { //nolint:gosec
		return nil, err
	}

	table := abbrevTable{}
	for !c.AtEnd() {
		code, err := c.ULEB128()
		if err != nil {
			return nil, fmt.Errorf("abbreviation code: %w", err)
		}
		if code == 0 {
			break
		}
		if _, dup := table[code]; dup {
			return nil, fmt.Errorf("%w: duplicate abbreviation code %d", errs.ErrMalformed, code)
		}

		tag, err := c.ULEB128()
		if err != nil {
			return nil, fmt.Errorf("abbreviation %d tag: %w", code, err)
		}

		children, err := c.U8()
		if err != nil {
			return nil, fmt.Errorf("abbreviation %d children flag: %w", code, err)
		}

		ab := &abbrev{code: code, tag: dw.Tag(tag), children: children == dw.ChildrenYes}
		for {
			attr, err := c.ULEB128()
			if err != nil {
				return nil, fmt.Errorf("abbreviation %d attribute: %w", code, err)
			}
			form, err := c.ULEB128()
			if err != nil {
				return nil, fmt.Errorf("abbreviation %d form: %w", code, err)
			}
			if attr == 0 && form == 0 {
				break
			}

			spec := attrSpec{attr: dw.Attr(attr), form: dw.Form(form)}
			if spec.form == dw.FormImplicitConst {
				if spec.implicit, err = c.SLEB128(); err != nil {
					return nil, fmt.Errorf("abbreviation %d implicit constant: %w", code, err)
				}
			}
			ab.specs = append(ab.specs, spec)
		}

		table[code] = ab
	}

	return table, nil
}
