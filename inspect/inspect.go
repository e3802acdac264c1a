// Package inspect turns decoded records and attributes into structured,
// printable descriptions.
package inspect

import (
	"github.com/arloliu/memdwarf/reader"
)

// StringResolver resolves the value of a string-bearing attribute.
// *reader.Session implements it.
type StringResolver interface {
	FormString(attr reader.Attribute) (string, error)
}

var _ StringResolver = (*reader.Session)(nil)

// Attribute describes one attribute.
type Attribute struct {
	// Name is the DW_AT label, or "<unknown attribute 0x..>".
	Name string
	// Form is the DW_FORM label, or "<unknown form 0x..>".
	Form      string
	NameKnown bool
	FormKnown bool
	// Value is the resolved string for string-bearing forms.
	Value    string
	HasValue bool
}

// Record describes one record and its attributes.
type Record struct {
	Offset     uint64
	Tag        string
	TagKnown   bool
	Attributes []Attribute
}

// DescribeAttribute resolves the names of attr and, for string-bearing
// forms, its string value.
//
// Unknown codes are not errors. When the string value cannot be resolved
// the description is returned with HasValue false, together with the
// resolver's error.
func DescribeAttribute(strs StringResolver, attr reader.Attribute) (Attribute, error) {
	desc := Attribute{
		Name: attr.Attr.String(),
		Form: attr.Form.String(),
	}
	_, desc.NameKnown = attr.Attr.Name()
	_, desc.FormKnown = attr.Form.Name()

	if !attr.Form.IsString() {
		return desc, nil
	}

	value, err := strs.FormString(attr)
	if err != nil {
		return desc, err
	}
	desc.Value = value
	desc.HasValue = true

	return desc, nil
}

// DescribeRecord describes rec and every attribute it carries. It fails on
// a released record or on the first attribute whose string cannot be
// resolved.
func DescribeRecord(strs StringResolver, rec *reader.Record) (Record, error) {
	if err := rec.Err(); err != nil {
		return Record{}, err
	}

	out := Record{
		Offset: rec.Offset,
		Tag:    rec.Tag.String(),
	}
	_, out.TagKnown = rec.Tag.Name()

	attrs := rec.Attributes()
	out.Attributes = make([]Attribute, 0, len(attrs))
	for _, attr := range attrs {
		desc, err := DescribeAttribute(strs, attr)
		if err != nil {
			return out, err
		}
		out.Attributes = append(out.Attributes, desc)
	}

	return out, nil
}
