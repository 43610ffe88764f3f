package mem

import "sync"

// Allocator hands out raw storage blocks sized for element type T. A
// returned block has len(block) == capacity, but its contents are NOT
// guaranteed to be zeroed: recycled storage keeps whatever the previous
// owner left behind. Callers track element liveness themselves and must
// never read a slot they have not written.
type Allocator[T any] interface {
	// Allocate returns a block holding capacity slots. Capacity 0 returns
	// a nil block and no error.
	Allocate(capacity int) ([]T, error)
	// Free returns a block obtained from Allocate. The block must hold no
	// live elements; Free never runs element-level teardown.
	Free(block []T)
}

// HeapAllocator allocates blocks from the Go heap. Blocks start zeroed
// and Free leaves reclamation to the garbage collector.
type HeapAllocator[T any] struct{}

// NewHeapAllocator create a heap allocator
func NewHeapAllocator[T any]() Allocator[T] {
	return HeapAllocator[T]{}
}

func (HeapAllocator[T]) Allocate(capacity int) ([]T, error) {
	if capacity == 0 {
		return nil, nil
	}
	return make([]T, capacity), nil
}

func (HeapAllocator[T]) Free([]T) {
}

// PoolAllocator recycles freed blocks through a sync.Pool. A pooled block
// is reused whenever its capacity covers the request, so reused storage
// is dirty. Safe for concurrent use.
type PoolAllocator[T any] struct {
	pool sync.Pool
}

// NewPoolAllocator create a pooling allocator
func NewPoolAllocator[T any]() *PoolAllocator[T] {
	return &PoolAllocator[T]{}
}

func (p *PoolAllocator[T]) Allocate(capacity int) ([]T, error) {
	if capacity == 0 {
		return nil, nil
	}
	if v := p.pool.Get(); v != nil {
		if block := v.([]T); cap(block) >= capacity {
			return block[:capacity], nil
		}
		// too small for this request, let the GC take it
	}
	return make([]T, capacity), nil
}

func (p *PoolAllocator[T]) Free(block []T) {
	if cap(block) == 0 {
		return
	}
	p.pool.Put(block[:cap(block)])
}
