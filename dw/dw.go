// Package dw holds the DWARF tag, attribute, form and unit type codes and
// their DW_ prefixed names.
//
// Unknown codes are not errors: Name reports false and String returns a
// sentinel label such as "<unknown form 0x1234>".
package dw

import "fmt"

// Tag is a DW_TAG code.
type Tag uint64

// Attr is a DW_AT code.
type Attr uint64

// Form is a DW_FORM code.
type Form uint64

// UnitType is a DWARF 5 DW_UT code.
type UnitType uint8

// Children flags in an abbreviation declaration.
const (
	ChildrenNo  = 0x00
	ChildrenYes = 0x01
)

const (
	UnitTypeCompile      UnitType = 0x01
	UnitTypeType         UnitType = 0x02
	UnitTypePartial      UnitType = 0x03
	UnitTypeSkeleton     UnitType = 0x04
	UnitTypeSplitCompile UnitType = 0x05
	UnitTypeSplitType    UnitType = 0x06
)

var unitTypeNames = map[UnitType]string{
	UnitTypeCompile:      "DW_UT_compile",
	UnitTypeType:         "DW_UT_type",
	UnitTypePartial:      "DW_UT_partial",
	UnitTypeSkeleton:     "DW_UT_skeleton",
	UnitTypeSplitCompile: "DW_UT_split_compile",
	UnitTypeSplitType:    "DW_UT_split_type",
}

// Name returns the DW_TAG label of t.
func (t Tag) Name() (string, bool) {
	name, ok := tagNames[t]
	return name, ok
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}

	return fmt.Sprintf("<unknown tag 0x%x>", uint64(t))
}

// Name returns the DW_AT label of a.
func (a Attr) Name() (string, bool) {
	name, ok := attrNames[a]
	return name, ok
}

func (a Attr) String() string {
	if name, ok := attrNames[a]; ok {
		return name
	}

	return fmt.Sprintf("<unknown attribute 0x%x>", uint64(a))
}

// Name returns the DW_FORM label of f.
func (f Form) Name() (string, bool) {
	name, ok := formNames[f]
	return name, ok
}

func (f Form) String() string {
	if name, ok := formNames[f]; ok {
		return name
	}

	return fmt.Sprintf("<unknown form 0x%x>", uint64(f))
}

// IsString reports whether values of form f are strings.
func (f Form) IsString() bool {
	switch f {
	case FormString, FormStrp, FormLineStrp,
		FormStrx, FormStrx1, FormStrx2, FormStrx3, FormStrx4,
		FormGNUStrIndex, FormStrpSup, FormGNUStrpAlt:
		return true
	default:
		return false
	}
}

// IsIndexedString reports whether f is resolved through .debug_str_offsets.
func (f Form) IsIndexedString() bool {
	switch f {
	case FormStrx, FormStrx1, FormStrx2, FormStrx3, FormStrx4, FormGNUStrIndex:
		return true
	default:
		return false
	}
}

// Name returns the DW_UT label of u.
func (u UnitType) Name() (string, bool) {
	name, ok := unitTypeNames[u]
	return name, ok
}

func (u UnitType) String() string {
	if name, ok := unitTypeNames[u]; ok {
		return name
	}

	return fmt.Sprintf("<unknown unit type 0x%x>", uint8(u))
}
