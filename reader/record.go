package reader

import (
	"errors"
	"fmt"
	"iter"

	"github.com/arloliu/memdwarf/dw"
	"github.com/arloliu/memdwarf/errs"
	"github.com/arloliu/memdwarf/internal/cursor"
	"github.com/arloliu/memdwarf/internal/pool"
)

const (
	// arenas larger than this are not pooled
	maxPooledRecords = 1 << 14
	maxPooledAttrs   = 1 << 16

	initialRecords = 64
	initialAttrs   = 256

	noRecord = -1
)

var (
	recordPool = pool.NewSlicePool[recordData](maxPooledRecords)
	attrPool   = pool.NewSlicePool[Attribute](maxPooledAttrs)
)

type recordData struct {
	offset      uint64
	tag         dw.Tag
	attrStart   int32
	attrEnd     int32
	firstChild  int32
	nextSibling int32
}

// arena holds every record and attribute of one unit.
type arena struct {
	gen     uint64
	records []recordData
	attrs   []Attribute
}

func (a *arena) release() {
	recordPool.Put(a.records)
	attrPool.Put(a.attrs)
	a.records = nil
	a.attrs = nil
}

// Record is a handle to one decoded record (DIE) of the open unit.
type Record struct {
	// Offset is the section offset of the record.
	Offset uint64
	Tag    dw.Tag

	sess  *Session
	gen   uint64
	index int32
}

func (r *Record) data() (*recordData, error) {
	a := r.sess.arena
	if a == nil || a.gen != r.gen {
		return nil, fmt.Errorf("%w: record at 0x%x", errs.ErrRecordReleased, r.Offset)
	}

	return &a.records[r.index], nil
}

// Err returns errs.ErrRecordReleased once the record's unit is gone.
func (r *Record) Err() error {
	_, err := r.data()
	return err
}

// Attributes returns the record's attributes in abbreviation order. The
// slice is owned by the unit arena and is nil after release.
func (r *Record) Attributes() []Attribute {
	rd, err := r.data()
	if err != nil {
		return nil
	}

	return r.sess.arena.attrs[rd.attrStart:rd.attrEnd:rd.attrEnd]
}

// Attr returns the first attribute with code attr.
func (r *Record) Attr(attr dw.Attr) (Attribute, bool) {
	for _, a := range r.Attributes() {
		if a.Attr == attr {
			return a, true
		}
	}

	return Attribute{}, false
}

// HasChildren reports whether the record has at least one child.
func (r *Record) HasChildren() bool {
	rd, err := r.data()
	return err == nil && rd.firstChild != noRecord
}

// Children returns an iterator over the record's children in order.
// The iterator stops early if the unit is released.
func (r *Record) Children() iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		rd, err := r.data()
		if err != nil {
			return
		}

		for idx := rd.firstChild; idx != noRecord; {
			child := r.sess.handle(r.gen, idx)
			if !yield(child) {
				return
			}

			cd, err := child.data()
			if err != nil {
				return
			}
			idx = cd.nextSibling
		}
	}
}

func (s *Session) handle(gen uint64, index int32) *Record {
	rd := &s.arena.records[index]
	return &Record{Offset: rd.offset, Tag: rd.tag, sess: s, gen: gen, index: index}
}

// Root decodes the records of the open unit and returns its root record.
//
// Returns errs.ErrNoOpenUnit before the first NextUnit, an error wrapping
// both errs.ErrNoRootRecord and errs.ErrNotFound when the unit holds no
// record, and errs.ErrMalformed for undecodable record data.
func (s *Session) Root() (*Record, error) {
	if err := s.usable(); err != nil {
		return nil, err
	}
	if s.unit == nil {
		return nil, errs.ErrNoOpenUnit
	}

	if s.arena == nil {
		if err := s.decodeUnit(); err != nil {
			s.releaseArena()
			return nil, fmt.Errorf("unit at 0x%x: %w", s.unit.header.Offset, err)
		}
	}

	return s.handle(s.arena.gen, 0), nil
}

// decodeUnit fills a fresh arena with the open unit's records.
func (s *Session) decodeUnit() error {
	u := s.unit
	hdr := &u.header

	s.gen++
	s.arena = &arena{
		gen:     s.gen,
		records: recordPool.Get(initialRecords),
		attrs:   attrPool.Get(initialAttrs),
	}
	a := s.arena

	c := cursor.New(u.data, s.engine)
	if err := c.Limit(int(hdr.NextUnitOffset)); err != nil { //nolint:gosec
		return err
	}
	if err := c.Seek(int(hdr.DIEOffset)); err != nil { //nolint:gosec
		return err
	}

	// parents[i] is the open parent at depth i+1; last[i] its last child so far.
	var parents, last []int32

	for !c.AtEnd() {
		offset := uint64(c.Pos()) //nolint:gosec
		code, err := c.ULEB128()
		if err != nil {
			return err
		}

		if code == 0 {
			if len(parents) > 0 {
				parents = parents[:len(parents)-1]
				last = last[:len(last)-1]
			}
			// Zero codes at the top level are padding.
			continue
		}

		if len(parents) == 0 && len(a.records) > 0 {
			return fmt.Errorf("%w: second top-level record at 0x%x", errs.ErrMalformed, offset)
		}

		ab, ok := u.abbrevs[code]
		if !ok {
			return fmt.Errorf("%w: unknown abbreviation code %d at 0x%x", errs.ErrMalformed, code, offset)
		}

		index := int32(len(a.records)) //nolint:gosec
		rd := recordData{
			offset:      offset,
			tag:         ab.tag,
			attrStart:   int32(len(a.attrs)), //nolint:gosec
			firstChild:  noRecord,
			nextSibling: noRecord,
		}

		for _, spec := range ab.specs {
			attr, err := decodeAttr(c, spec, hdr)
			if err != nil {
				return fmt.Errorf("record at 0x%x, %s: %w", offset, spec.attr, err)
			}
			a.attrs = append(a.attrs, attr)
		}
		rd.attrEnd = int32(len(a.attrs)) //nolint:gosec
		a.records = append(a.records, rd)

		if depth := len(parents); depth > 0 {
			if prev := last[depth-1]; prev == noRecord {
				a.records[parents[depth-1]].firstChild = index
			} else {
				a.records[prev].nextSibling = index
			}
			last[depth-1] = index
		}

		if ab.children {
			parents = append(parents, index)
			last = append(last, noRecord)
		}
	}

	if len(a.records) == 0 {
		return fmt.Errorf("%w: %w: unit has no records", errs.ErrNoRootRecord, errs.ErrNotFound)
	}

	if base, ok := s.rootAttr(dw.AttrStrOffsetsBase); ok {
		u.strOffsetsBase = base.Unsigned
		u.hasStrOffsetsBase = true
	}

	s.logger.Debug().
		Uint64("offset", hdr.Offset).
		Int("records", len(a.records)).
		Int("attributes", len(a.attrs)).
		Msg("unit records decoded")

	return nil
}

func (s *Session) rootAttr(attr dw.Attr) (Attribute, bool) {
	rd := s.arena.records[0]
	for _, a := range s.arena.attrs[rd.attrStart:rd.attrEnd] {
		if a.Attr == attr {
			return a, true
		}
	}

	return Attribute{}, false
}

func (s *Session) releaseArena() {
	if s.arena == nil {
		return
	}

	s.arena.release()
	s.arena = nil

	s.logger.Debug().Uint64("generation", s.gen).Msg("unit arena released")
}

func (s *Session) releaseUnit() {
	s.releaseArena()
	s.unit = nil
}

// SkipChildren is returned by a Walk visitor to skip the children of the
// record just visited.
var SkipChildren = errors.New("skip children")

// Walk visits root and its descendants depth-first in pre-order, siblings in
// insertion order. The root is visited at depth 0.
//
// A visitor returning SkipChildren prunes that record's subtree; any other
// error stops the walk and is returned. Walk fails with
// errs.ErrRecordReleased if the records' unit has been released.
func Walk(root *Record, visit func(rec *Record, depth int) error) error {
	return walk(root, 0, visit)
}

func walk(rec *Record, depth int, visit func(*Record, int) error) error {
	rd, err := rec.data()
	if err != nil {
		return err
	}

	if err := visit(rec, depth); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}

		return err
	}

	// The visitor may have released the unit.
	if rd, err = rec.data(); err != nil {
		return err
	}

	for idx := rd.firstChild; idx != noRecord; {
		child := rec.sess.handle(rec.gen, idx)
		if err := walk(child, depth+1, visit); err != nil {
			return err
		}

		cd, err := child.data()
		if err != nil {
			return err
		}
		idx = cd.nextSibling
	}

	return nil
}
