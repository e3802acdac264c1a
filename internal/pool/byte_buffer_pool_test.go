package pool

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteBuffer_WriteAndFlush(t *testing.T) {
	bb := NewByteBuffer(16)
	require.Equal(t, 0, bb.Len())
	require.Equal(t, 16, cap(bb.B))

	fmt.Fprintf(bb, "Version stamp.............%d\n", 2)
	n, err := bb.Write([]byte("tail"))
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, "Version stamp.............2\ntail", string(bb.Bytes()))

	var out bytes.Buffer
	written, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(32), written)
	require.Equal(t, "Version stamp.............2\ntail", out.String())
	require.Equal(t, 0, bb.Len())
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(8)
	_, _ = bb.Write([]byte("some data"))
	capBefore := cap(bb.B)

	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.Equal(t, capBefore, cap(bb.B))
}

func TestByteBufferPool_GetPut(t *testing.T) {
	p := NewByteBufferPool(32, 64)

	bb := p.Get()
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())

	_, _ = bb.Write([]byte("data"))
	p.Put(bb)

	again := p.Get()
	require.Equal(t, 0, again.Len())

	p.Put(nil)

	large := NewByteBuffer(128)
	p.Put(large)
	require.NotNil(t, p.Get())
}

func TestUnitBuffer_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			bb := GetUnitBuffer()
			defer PutUnitBuffer(bb)

			want := fmt.Sprintf("unit %d", i)
			_, _ = bb.Write([]byte(want))
			assert.Equal(t, want, string(bb.Bytes()))
		}(i)
	}
	wg.Wait()
}
