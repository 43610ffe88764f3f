package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingAllocator tracks what it handed out and what came back.
type recordingAllocator struct {
	HeapAllocator[int]
	allocated int
	freed     int
}

func (r *recordingAllocator) Allocate(capacity int) ([]int, error) {
	r.allocated++
	return r.HeapAllocator.Allocate(capacity)
}

func (r *recordingAllocator) Free(block []int) {
	r.freed++
}

func TestBufferEmpty(t *testing.T) {
	b, err := NewBuffer[int](0, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, b.Cap())

	// releasing an empty buffer is a no-op
	b.Release()
	b.Release()
}

func TestBufferAt(t *testing.T) {
	b, err := NewBuffer[int](3, nil)
	require.NoError(t, err)
	defer b.Release()

	*b.At(0) = 7
	*b.At(2) = 9
	assert.Equal(t, 7, *b.At(0))
	assert.Equal(t, 9, *b.At(2))

	assert.Panics(t, func() { b.At(3) })
	assert.Panics(t, func() { b.At(-1) })
}

func TestBufferBlock(t *testing.T) {
	b, err := NewBuffer[int](4, nil)
	require.NoError(t, err)
	defer b.Release()

	w := b.Block(1, 3)
	assert.Equal(t, 2, len(w))
	w[0] = 5
	assert.Equal(t, 5, *b.At(1))

	assert.Equal(t, 0, len(b.Block(4, 4)))
	assert.Panics(t, func() { b.Block(2, 1) })
	assert.Panics(t, func() { b.Block(0, 5) })
}

func TestBufferSwap(t *testing.T) {
	a, err := NewBuffer[int](2, nil)
	require.NoError(t, err)
	b, err := NewBuffer[int](5, nil)
	require.NoError(t, err)
	defer a.Release()
	defer b.Release()

	*a.At(0) = 1
	*b.At(0) = 2

	a.Swap(b)
	assert.Equal(t, 5, a.Cap())
	assert.Equal(t, 2, b.Cap())
	assert.Equal(t, 2, *a.At(0))
	assert.Equal(t, 1, *b.At(0))
}

func TestBufferInit(t *testing.T) {
	var b Buffer[int]
	assert.Equal(t, 0, b.Cap())

	assert.NoError(t, b.Init(2, nil))
	assert.Equal(t, 2, b.Cap())
	assert.Panics(t, func() { _ = b.Init(1, nil) })

	// releasing empties the buffer, making it initializable again
	b.Release()
	assert.Equal(t, 0, b.Cap())
	assert.NoError(t, b.Init(1, nil))
	b.Release()

	assert.Panics(t, func() { _ = b.Init(-1, nil) })
}

func TestBufferReleaseReturnsStorage(t *testing.T) {
	alloc := &recordingAllocator{}
	b, err := NewBuffer[int](4, alloc)
	require.NoError(t, err)
	assert.Equal(t, 1, alloc.allocated)

	b.Release()
	assert.Equal(t, 1, alloc.freed)
	assert.Equal(t, 0, b.Cap())

	// the second release has nothing left to free
	b.Release()
	assert.Equal(t, 1, alloc.freed)
}
