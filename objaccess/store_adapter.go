package objaccess

import (
	"fmt"

	"github.com/arloliu/memdwarf/errs"
	"github.com/arloliu/memdwarf/format"
	"github.com/arloliu/memdwarf/section"
)

// StoreAdapter serves Access from a section.Store held by reference.
type StoreAdapter struct {
	store *section.Store
}

var _ Access = (*StoreAdapter)(nil)

// NewStoreAdapter wraps store. The adapter declares no relocation capability.
func NewStoreAdapter(store *section.Store) *StoreAdapter {
	return &StoreAdapter{store: store}
}

// Store returns the wrapped store.
func (a *StoreAdapter) Store() *section.Store {
	return a.store
}

func (a *StoreAdapter) SectionInfo(index int) (SectionInfo, error) {
	d, err := a.store.Describe(index)
	if err != nil {
		return SectionInfo{}, err
	}

	return SectionInfo{
		Name:    d.Name,
		Addr:    d.Address,
		Size:    d.Size,
		EntSize: 1,
	}, nil
}

func (a *StoreAdapter) ByteOrder() format.ByteOrder {
	return a.store.ByteOrder()
}

func (a *StoreAdapter) OffsetSize() int {
	return int(a.store.OffsetSizeBits() / 8) //nolint:gosec
}

func (a *StoreAdapter) PointerSize() int {
	return int(a.store.PointerSizeBits() / 8) //nolint:gosec
}

func (a *StoreAdapter) ObjectSize() uint64 {
	return a.store.ObjectSize()
}

func (a *StoreAdapter) SectionCount() int {
	return a.store.SectionCount()
}

func (a *StoreAdapter) LoadSection(index int) ([]byte, error) {
	return a.store.Load(index)
}

// Relocate always fails with errs.ErrUnsupportedCapability once index is
// known to be valid.
func (a *StoreAdapter) Relocate(index int) error {
	if index < 0 || index >= a.store.SectionCount() {
		return fmt.Errorf("%w: section index %d", errs.ErrNotFound, index)
	}

	return fmt.Errorf("%w: relocation of section %d", errs.ErrUnsupportedCapability, index)
}
