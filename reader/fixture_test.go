package reader

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/go-delve/delve/pkg/dwarf/util"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/memdwarf/dw"
	"github.com/arloliu/memdwarf/endian"
	"github.com/arloliu/memdwarf/objaccess"
	"github.com/arloliu/memdwarf/section"
)

type spec struct {
	attr     dw.Attr
	form     dw.Form
	implicit int64
}

type decl struct {
	code     uint64
	tag      dw.Tag
	children bool
	specs    []spec
}

func encodeAbbrevs(decls ...decl) []byte {
	var buf bytes.Buffer
	for _, d := range decls {
		util.EncodeULEB128(&buf, d.code)
		util.EncodeULEB128(&buf, uint64(d.tag))
		if d.children {
			buf.WriteByte(dw.ChildrenYes)
		} else {
			buf.WriteByte(dw.ChildrenNo)
		}
		for _, s := range d.specs {
			util.EncodeULEB128(&buf, uint64(s.attr))
			util.EncodeULEB128(&buf, uint64(s.form))
			if s.form == dw.FormImplicitConst {
				util.EncodeSLEB128(&buf, s.implicit)
			}
		}
		buf.Write([]byte{0, 0})
	}
	buf.WriteByte(0)

	return buf.Bytes()
}

type unitSpec struct {
	order        endian.EndianEngine
	version      uint16
	dwarf64      bool
	unitType     dw.UnitType
	addrSize     uint8
	abbrevOffset uint64
	types        bool
	signature    uint64
	typeOffset   uint64
	body         []byte
}

func putOffset(buf *bytes.Buffer, order endian.EndianEngine, dwarf64 bool, v uint64) {
	if dwarf64 {
		buf.Write(order.AppendUint64(nil, v))
	} else {
		buf.Write(order.AppendUint32(nil, uint32(v)))
	}
}

// encodeUnit lays out a unit header followed by body.
func encodeUnit(u unitSpec) []byte {
	order := u.order
	if order == nil {
		order = endian.GetLittleEndianEngine()
	}
	if u.addrSize == 0 {
		u.addrSize = 8
	}

	var rest bytes.Buffer
	rest.Write(order.AppendUint16(nil, u.version))

	if u.version >= 5 {
		rest.WriteByte(byte(u.unitType))
		rest.WriteByte(u.addrSize)
		putOffset(&rest, order, u.dwarf64, u.abbrevOffset)

		switch u.unitType {
		case dw.UnitTypeSkeleton, dw.UnitTypeSplitCompile:
			rest.Write(order.AppendUint64(nil, u.signature))
		case dw.UnitTypeType, dw.UnitTypeSplitType:
			rest.Write(order.AppendUint64(nil, u.signature))
			putOffset(&rest, order, u.dwarf64, u.typeOffset)
		}
	} else {
		putOffset(&rest, order, u.dwarf64, u.abbrevOffset)
		rest.WriteByte(u.addrSize)
		if u.types {
			rest.Write(order.AppendUint64(nil, u.signature))
			putOffset(&rest, order, u.dwarf64, u.typeOffset)
		}
	}
	rest.Write(u.body)

	var out bytes.Buffer
	if u.dwarf64 {
		out.Write(order.AppendUint32(nil, 0xffffffff))
		out.Write(order.AppendUint64(nil, uint64(rest.Len())))
	} else {
		out.Write(order.AppendUint32(nil, uint32(rest.Len())))
	}
	out.Write(rest.Bytes())

	return out.Bytes()
}

// body helpers

func die(code uint64, payload ...[]byte) []byte {
	var buf bytes.Buffer
	util.EncodeULEB128(&buf, code)
	for _, p := range payload {
		buf.Write(p)
	}

	return buf.Bytes()
}

func cstr(s string) []byte {
	return append([]byte(s), 0)
}

func u32le(v uint32) []byte {
	return binary.LittleEndian.AppendUint32(nil, v)
}

func uleb(v uint64) []byte {
	var buf bytes.Buffer
	util.EncodeULEB128(&buf, v)

	return buf.Bytes()
}

func concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

// simpleAbbrevs: 1 compile_unit (children) name/string language/data1,
// 2 base_type name/string byte_size/data1.
func simpleAbbrevs() []byte {
	return encodeAbbrevs(
		decl{code: 1, tag: dw.TagCompileUnit, children: true, specs: []spec{
			{attr: dw.AttrName, form: dw.FormString},
			{attr: dw.AttrLanguage, form: dw.FormData1},
		}},
		decl{code: 2, tag: dw.TagBaseType, specs: []spec{
			{attr: dw.AttrName, form: dw.FormString},
			{attr: dw.AttrByteSize, form: dw.FormData1},
		}},
	)
}

func simpleBody(name string) []byte {
	return concat(
		die(1, cstr(name), []byte{0x0c}),
		die(2, cstr("int"), []byte{4}),
		die(2, cstr("long"), []byte{8}),
		[]byte{0},
	)
}

func newAccess(t *testing.T, sections []section.Section, opts ...section.StoreOption) *objaccess.StoreAdapter {
	t.Helper()

	store, err := section.NewStore(sections, append([]section.StoreOption{section.WithReservedSlot()}, opts...)...)
	require.NoError(t, err)

	return objaccess.NewStoreAdapter(store)
}

func openSession(t *testing.T, sections []section.Section, opts ...section.StoreOption) *Session {
	t.Helper()

	sess, err := Open(newAccess(t, sections, opts...))
	require.NoError(t, err)
	t.Cleanup(sess.Finish)

	return sess
}

// relocAccess records Relocate calls and answers with err.
type relocAccess struct {
	*objaccess.StoreAdapter
	err   error
	calls []int
}

func (r *relocAccess) Relocate(index int) error {
	r.calls = append(r.calls, index)
	return r.err
}
