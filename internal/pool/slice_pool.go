package pool

import "sync"

// SlicePool pools typed slices that back per-unit record arenas.
//
// Slices are handed out with length 0 and are grown by the caller with
// append. Put clears the elements so the pool does not retain pointers into
// section content, and drops slices whose capacity exceeds maxCap.
type SlicePool[T any] struct {
	pool   sync.Pool
	maxCap int
}

// NewSlicePool creates a pool. maxCap <= 0 disables the capacity limit.
func NewSlicePool[T any](maxCap int) *SlicePool[T] {
	return &SlicePool[T]{
		pool: sync.Pool{
			New: func() any { return &[]T{} },
		},
		maxCap: maxCap,
	}
}

// Get retrieves an empty slice with at least the requested capacity.
//
// Example:
//
//	records := recordPool.Get(64)
//	records = append(records, rec)
//	defer recordPool.Put(records)
func (p *SlicePool[T]) Get(capacity int) []T {
	ptr, _ := p.pool.Get().(*[]T)
	slice := (*ptr)[:0]

	if cap(slice) < capacity {
		slice = make([]T, 0, capacity)
	}

	return slice
}

// Put returns a slice to the pool. The slice must not be used afterwards.
func (p *SlicePool[T]) Put(slice []T) {
	if slice == nil {
		return
	}

	if p.maxCap > 0 && cap(slice) > p.maxCap {
		return
	}

	clear(slice[:cap(slice)])
	slice = slice[:0]
	p.pool.Put(&slice)
}
