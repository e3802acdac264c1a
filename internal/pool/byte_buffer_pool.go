package pool

import (
	"io"
	"sync"
)

const (
	// UnitBufferDefaultSize is the initial capacity of a unit render buffer.
	UnitBufferDefaultSize = 1024 * 4 // 4KiB
	// UnitBufferMaxThreshold is the largest buffer kept for reuse.
	UnitBufferMaxThreshold = 1024 * 256 // 256KiB
)

// ByteBuffer is an append-only byte buffer.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a ByteBuffer with the given initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the buffered bytes.
func (bb *ByteBuffer) Bytes() []byte { return bb.B }

// Len returns the number of buffered bytes.
func (bb *ByteBuffer) Len() int { return len(bb.B) }

// Reset empties the buffer and keeps its memory.
func (bb *ByteBuffer) Reset() { bb.B = bb.B[:0] }

// Write appends data to the buffer.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the buffered bytes to w and empties the buffer.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	bb.Reset()

	return int64(n), err
}

// ByteBufferPool recycles ByteBuffers. Buffers that grew beyond maxThreshold
// are dropped on Put.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool of buffers with defaultSize capacity.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty ByteBuffer.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns bb to the pool.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var unitPool = NewByteBufferPool(UnitBufferDefaultSize, UnitBufferMaxThreshold)

// GetUnitBuffer retrieves a buffer for rendering one unit.
func GetUnitBuffer() *ByteBuffer {
	return unitPool.Get()
}

// PutUnitBuffer returns a unit buffer to the pool.
func PutUnitBuffer(bb *ByteBuffer) {
	unitPool.Put(bb)
}
