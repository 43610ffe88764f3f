package mem

import "fmt"

// noCopy makes `go vet -copylocks` flag value copies of the type that
// embeds it.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Buffer owns one block of uninitialized storage sized for exactly Cap()
// slots of T. It manages memory, never objects: it does not construct,
// copy, or destroy elements, and whoever releases it is responsible for
// having destroyed every live element first. Ownership can move between
// buffers (Swap) but never duplicates; duplicating the block would require
// knowing which slots are live, and only the owning container knows that.
//
// The zero value is an empty buffer (no storage, capacity 0) ready for
// Init.
type Buffer[T any] struct {
	noCopy noCopy

	block     []T
	allocator Allocator[T]
}

// NewBuffer allocates storage for capacity slots from alloc. Capacity 0
// holds no storage. A nil alloc falls back to the heap allocator. On
// allocation failure no storage is retained.
func NewBuffer[T any](capacity int, alloc Allocator[T]) (*Buffer[T], error) {
	b := &Buffer[T]{}
	if err := b.Init(capacity, alloc); err != nil {
		return nil, err
	}
	return b, nil
}

// Init allocates storage into an empty buffer. Init on a buffer that
// still owns storage is a contract violation.
func (b *Buffer[T]) Init(capacity int, alloc Allocator[T]) error {
	if b.block != nil {
		panic("mem: Init on a buffer that still owns storage")
	}
	if capacity < 0 {
		panic(fmt.Sprintf("mem: invalid capacity %d", capacity))
	}
	if alloc == nil {
		alloc = NewHeapAllocator[T]()
	}
	block, err := alloc.Allocate(capacity)
	if err != nil {
		return err
	}
	b.block = block
	b.allocator = alloc
	return nil
}

// Cap returns how many slots the block holds, live or not.
func (b *Buffer[T]) Cap() int {
	return len(b.block)
}

// At returns the address of slot i, valid for 0 <= i < Cap(). Whether the
// slot holds a live element is the owner's contract, not the buffer's.
func (b *Buffer[T]) At(i int) *T {
	if i < 0 || i >= len(b.block) {
		panic(fmt.Sprintf("mem: slot %d out of range, capacity %d", i, len(b.block)))
	}
	return &b.block[i]
}

// Block returns the storage window [from, to). to == Cap() is allowed so
// callers can address the tail of the block.
func (b *Buffer[T]) Block(from, to int) []T {
	if from < 0 || from > to || to > len(b.block) {
		panic(fmt.Sprintf("mem: invalid window [%d, %d), capacity %d", from, to, len(b.block)))
	}
	return b.block[from:to]
}

// Swap exchanges ownership with other in constant time. No slot is read
// or written.
func (b *Buffer[T]) Swap(other *Buffer[T]) {
	b.block, other.block = other.block, b.block
	b.allocator, other.allocator = other.allocator, b.allocator
}

// Release returns the storage to its allocator without running any
// element teardown. The buffer is empty afterwards and may be
// re-initialized; releasing an empty buffer is a no-op.
func (b *Buffer[T]) Release() {
	if b.block == nil {
		return
	}
	block, alloc := b.take()
	alloc.Free(block)
}

// take transfers the block out, always leaving the buffer with no storage
// and capacity 0.
func (b *Buffer[T]) take() ([]T, Allocator[T]) {
	block, alloc := b.block, b.allocator
	b.block, b.allocator = nil, nil
	return block, alloc
}
