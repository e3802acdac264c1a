package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type node struct {
	name string
	data []byte
}

func TestSlicePool_Get(t *testing.T) {
	t.Run("returns empty slice with requested capacity", func(t *testing.T) {
		p := NewSlicePool[int](0)

		s := p.Get(100)
		require.Empty(t, s)
		require.GreaterOrEqual(t, cap(s), 100)
	})

	t.Run("grown slice can be returned", func(t *testing.T) {
		p := NewSlicePool[int](0)

		s := p.Get(2)
		for i := 0; i < 10; i++ {
			s = append(s, i)
		}
		p.Put(s)

		again := p.Get(1)
		require.Empty(t, again)
	})
}

func TestSlicePool_PutClears(t *testing.T) {
	p := NewSlicePool[node](0)

	s := p.Get(4)
	s = append(s, node{name: "a", data: []byte{1}}, node{name: "b"})
	backing := s[:cap(s)]
	p.Put(s)

	for _, n := range backing {
		require.Empty(t, n.name)
		require.Nil(t, n.data)
	}
}

func TestSlicePool_PutNilAndOversized(t *testing.T) {
	p := NewSlicePool[int](8)

	require.NotPanics(t, func() { p.Put(nil) })

	big := make([]int, 0, 64)
	big = append(big, 1)
	p.Put(big)
	// Oversized slices are dropped, not cleared.
	require.Equal(t, 1, big[0])
}
