package collision

import (
	"fmt"

	"github.com/arloliu/memdwarf/errs"
)

// Tracker indexes section names by their xxHash64 id and detects duplicate
// names. Two different names sharing an id are kept apart in a per-id
// chain, so lookups stay exact.
type Tracker struct {
	byID         map[uint64][]entry
	hasCollision bool
}

type entry struct {
	name  string
	index int
}

// NewTracker creates a new name tracker.
func NewTracker() *Tracker {
	return &Tracker{
		byID: make(map[uint64][]entry),
	}
}

// Track records that name lives at index.
// Empty names are not indexed. A repeated non-empty name is an error.
func (t *Tracker) Track(name string, id uint64, index int) error {
	if name == "" {
		return nil
	}

	chain := t.byID[id]
	for _, e := range chain {
		if e.name == name {
			return fmt.Errorf("%w: %q at indices %d and %d", errs.ErrDuplicateSection, name, e.index, index)
		}
	}

	if len(chain) > 0 {
		t.hasCollision = true
	}
	t.byID[id] = append(chain, entry{name: name, index: index})

	return nil
}

// Lookup returns the index tracked for name.
func (t *Tracker) Lookup(name string, id uint64) (int, bool) {
	for _, e := range t.byID[id] {
		if e.name == name {
			return e.index, true
		}
	}

	return 0, false
}

// HasCollision returns true if two different names shared an id.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	n := 0
	for _, chain := range t.byID {
		n += len(chain)
	}

	return n
}
