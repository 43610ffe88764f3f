//go:build linux
// +build linux

package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMmapAllocator(t *testing.T) {
	alloc := NewMmapAllocator[int64]()

	block, err := alloc.Allocate(0)
	require.NoError(t, err)
	assert.Nil(t, block)

	block, err = alloc.Allocate(3)
	require.NoError(t, err)
	require.Equal(t, 3, len(block))
	block[0], block[1], block[2] = 1, 2, 3
	assert.Equal(t, int64(2), block[1])
	alloc.Free(block)
}

func TestMmapAllocatorOddSizes(t *testing.T) {
	// element counts that do not line up with page boundaries
	alloc := NewMmapAllocator[byte]()
	for _, capacity := range []int{1, 7, 4095, 4097} {
		block, err := alloc.Allocate(capacity)
		require.NoError(t, err)
		require.Equal(t, capacity, len(block))
		block[capacity-1] = 0xff
		alloc.Free(block)
	}
}

func TestMmapAllocatorBacksBuffer(t *testing.T) {
	b, err := NewBuffer[uint32](16, NewMmapAllocator[uint32]())
	require.NoError(t, err)
	*b.At(15) = 0xdead
	assert.Equal(t, uint32(0xdead), *b.At(15))
	b.Release()
}
