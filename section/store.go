package section

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/arloliu/memdwarf/compress"
	"github.com/arloliu/memdwarf/errs"
	"github.com/arloliu/memdwarf/format"
	"github.com/arloliu/memdwarf/internal/collision"
	"github.com/arloliu/memdwarf/internal/hash"
	"github.com/arloliu/memdwarf/internal/options"
)

// StoreOption configures a Store under construction.
type StoreOption = options.Option[*storeConfig]

type storeConfig struct {
	is64Bit         bool
	byteOrder       format.ByteOrder
	pointerSizeBits uint
	offsetSizeBits  uint
	objectSize      uint64
	reservedSlot    bool
	sectionCount    int // -1 when not declared
}

// WithLittleEndian sets the object byte order to little-endian (default).
func WithLittleEndian() StoreOption {
	return options.NoError(func(c *storeConfig) {
		c.byteOrder = format.LittleEndian
	})
}

// WithBigEndian sets the object byte order to big-endian.
func WithBigEndian() StoreOption {
	return options.NoError(func(c *storeConfig) {
		c.byteOrder = format.BigEndian
	})
}

// WithByteOrder sets the object byte order.
func WithByteOrder(order format.ByteOrder) StoreOption {
	return options.New(func(c *storeConfig) error {
		if order != format.LittleEndian && order != format.BigEndian {
			return fmt.Errorf("%w: byte order %d", errs.ErrInvalidOption, order)
		}
		c.byteOrder = order

		return nil
	})
}

// With64Bit marks the object as a 64-bit object.
func With64Bit(is64 bool) StoreOption {
	return options.NoError(func(c *storeConfig) {
		c.is64Bit = is64
	})
}

// WithPointerSize sets the width of address fields in bits: 16, 32 or 64.
func WithPointerSize(bits uint) StoreOption {
	return options.New(func(c *storeConfig) error {
		switch bits {
		case 16, 32, 64:
			c.pointerSizeBits = bits
			return nil
		default:
			return fmt.Errorf("%w: pointer size %d bits", errs.ErrInvalidOption, bits)
		}
	})
}

// WithOffsetSize sets the width of section offset fields in bits: 32 or 64.
func WithOffsetSize(bits uint) StoreOption {
	return options.New(func(c *storeConfig) error {
		switch bits {
		case 32, 64:
			c.offsetSizeBits = bits
			return nil
		default:
			return fmt.Errorf("%w: offset size %d bits", errs.ErrInvalidOption, bits)
		}
	})
}

// WithObjectSize sets the total logical object size. 0 means unknown.
func WithObjectSize(size uint64) StoreOption {
	return options.NoError(func(c *storeConfig) {
		c.objectSize = size
	})
}

// WithReservedSlot prepends an empty, unnamed section at index 0.
func WithReservedSlot() StoreOption {
	return options.NoError(func(c *storeConfig) {
		c.reservedSlot = true
	})
}

// WithSectionCount declares the expected number of sections, including the
// reserved slot. NewStore fails with ErrInvalidSectionCount on a mismatch.
func WithSectionCount(n int) StoreOption {
	return options.New(func(c *storeConfig) error {
		if n < 0 {
			return fmt.Errorf("%w: section count %d", errs.ErrInvalidOption, n)
		}
		c.sectionCount = n

		return nil
	})
}

type slot struct {
	desc   Descriptor
	stored []byte

	once        sync.Once
	content     []byte
	err         error
	fingerprint atomic.Uint64
}

// Store is an immutable table of debug sections.
type Store struct {
	is64Bit         bool
	byteOrder       format.ByteOrder
	pointerSizeBits uint
	offsetSizeBits  uint
	objectSize      uint64

	slots []*slot
	names *collision.Tracker
}

// NewStore builds a Store from the given sections.
//
// Parameters:
//   - sections: Section table in index order (index 0 first, unless WithReservedSlot is used)
//   - opts: Object metadata options
//
// Returns:
//   - *Store: The constructed store
//   - error: ErrInvalidOption, ErrInvalidSectionCount, ErrDuplicateSection, or a
//     missing uncompressed size for a compressed section
func NewStore(sections []Section, opts ...StoreOption) (*Store, error) {
	cfg := &storeConfig{
		byteOrder:       format.LittleEndian,
		pointerSizeBits: DefaultPointerSizeBits,
		offsetSizeBits:  DefaultOffsetSizeBits,
		sectionCount:    -1,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	total := len(sections)
	if cfg.reservedSlot {
		total++
	}
	if cfg.sectionCount >= 0 && cfg.sectionCount != total {
		return nil, fmt.Errorf("%w: declared %d, table has %d", errs.ErrInvalidSectionCount, cfg.sectionCount, total)
	}

	s := &Store{
		is64Bit:         cfg.is64Bit,
		byteOrder:       cfg.byteOrder,
		pointerSizeBits: cfg.pointerSizeBits,
		offsetSizeBits:  cfg.offsetSizeBits,
		objectSize:      cfg.objectSize,
		slots:           make([]*slot, 0, total),
		names:           collision.NewTracker(),
	}

	if cfg.reservedSlot {
		s.slots = append(s.slots, newSlot(0, Section{}))
	}

	for _, sec := range sections {
		index := len(s.slots)
		if sec.Compression == 0 {
			sec.Compression = format.CompressionNone
		}
		if _, err := compress.GetCodec(sec.Compression); err != nil {
			return nil, fmt.Errorf("section %d %q: %w", index, sec.Name, err)
		}
		if sec.Compression != format.CompressionNone && sec.Size == 0 && len(sec.Content) > 0 {
			return nil, fmt.Errorf("%w: section %d %q is compressed but has no uncompressed size",
				errs.ErrInvalidOption, index, sec.Name)
		}
		if err := s.names.Track(sec.Name, hash.ID(sec.Name), index); err != nil {
			return nil, err
		}

		s.slots = append(s.slots, newSlot(index, sec))
	}

	return s, nil
}

func newSlot(index int, sec Section) *slot {
	sl := &slot{
		desc: Descriptor{
			Index:       index,
			Name:        sec.Name,
			Address:     sec.Address,
			Size:        sec.Size,
			Compression: sec.Compression,
			StoredSize:  uint64(len(sec.Content)),
		},
		stored: sec.Content,
	}

	if sec.Compression == format.CompressionNone || sec.Compression == 0 {
		sl.desc.Compression = format.CompressionNone
		sl.desc.Size = uint64(len(sec.Content))
		sl.fingerprint.Store(hash.Fingerprint(sec.Content))
	}

	return sl
}

// Is64Bit reports whether the object is a 64-bit object.
func (s *Store) Is64Bit() bool { return s.is64Bit }

// ByteOrder returns the object byte order.
func (s *Store) ByteOrder() format.ByteOrder { return s.byteOrder }

// PointerSizeBits returns the width of address fields in bits.
func (s *Store) PointerSizeBits() uint { return s.pointerSizeBits }

// OffsetSizeBits returns the width of offset fields in bits.
func (s *Store) OffsetSizeBits() uint { return s.offsetSizeBits }

// ObjectSize returns the logical object size, 0 if unknown.
func (s *Store) ObjectSize() uint64 { return s.objectSize }

// SectionCount returns the number of sections, including any reserved slot.
func (s *Store) SectionCount() int { return len(s.slots) }

// Describe returns the descriptor of the section at index.
//
// Returns ErrNotFound when index is outside [0, SectionCount()).
func (s *Store) Describe(index int) (Descriptor, error) {
	sl, err := s.slot(index)
	if err != nil {
		return Descriptor{}, err
	}

	desc := sl.desc
	desc.Fingerprint = sl.fingerprint.Load()

	return desc, nil
}

// Load returns the uncompressed content of the section at index.
//
// The returned slice is owned by the store and must not be modified. For an
// uncompressed section it is the slice the store was built with.
//
// Returns ErrNotFound when index is outside [0, SectionCount()), or
// ErrMalformed when compressed content cannot be restored to its declared size.
func (s *Store) Load(index int) ([]byte, error) {
	sl, err := s.slot(index)
	if err != nil {
		return nil, err
	}

	if sl.desc.Compression == format.CompressionNone {
		return sl.stored, nil
	}

	sl.once.Do(func() {
		sl.content, sl.err = decompressSlot(sl)
		if sl.err == nil {
			sl.fingerprint.Store(hash.Fingerprint(sl.content))
		}
	})

	return sl.content, sl.err
}

// Find returns the index of the first section named name.
func (s *Store) Find(name string) (int, bool) {
	return s.names.Lookup(name, hash.ID(name))
}

// Verify re-hashes the content of the section at index and compares it with
// the recorded fingerprint.
func (s *Store) Verify(index int) error {
	data, err := s.Load(index)
	if err != nil {
		return err
	}

	sl := s.slots[index]
	if got, want := hash.Fingerprint(data), sl.fingerprint.Load(); got != want {
		return fmt.Errorf("%w: section %d %q fingerprint %#x, expected %#x",
			errs.ErrMalformed, index, sl.desc.Name, got, want)
	}

	return nil
}

func (s *Store) slot(index int) (*slot, error) {
	if index < 0 || index >= len(s.slots) {
		return nil, fmt.Errorf("%w: section index %d, store has %d sections", errs.ErrNotFound, index, len(s.slots))
	}

	return s.slots[index], nil
}

func decompressSlot(sl *slot) ([]byte, error) {
	codec, err := compress.GetCodec(sl.desc.Compression)
	if err != nil {
		return nil, err
	}

	var out []byte
	if sized, ok := codec.(compress.SizedDecompressor); ok {
		out, err = sized.DecompressSized(sl.stored, int(sl.desc.Size)) //nolint:gosec
	} else {
		out, err = codec.Decompress(sl.stored)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: section %d %q: %w", errs.ErrMalformed, sl.desc.Index, sl.desc.Name, err)
	}

	if uint64(len(out)) != sl.desc.Size {
		return nil, fmt.Errorf("%w: section %d %q decompressed to %d bytes, expected %d",
			errs.ErrMalformed, sl.desc.Index, sl.desc.Name, len(out), sl.desc.Size)
	}

	return out, nil
}

// Compressed builds a Section whose content is held compressed with ct.
func Compressed(name string, content []byte, ct format.CompressionType) (Section, error) {
	codec, err := compress.GetCodec(ct)
	if err != nil {
		return Section{}, err
	}

	stored, err := codec.Compress(content)
	if err != nil {
		return Section{}, fmt.Errorf("compress section %q: %w", name, err)
	}

	return Section{
		Name:        name,
		Content:     stored,
		Compression: ct,
		Size:        uint64(len(content)),
	}, nil
}
