//go:build linux
// +build linux

package mem

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// MmapAllocator serves blocks from anonymous private mappings instead of
// the Go heap. The garbage collector never scans mapped memory, so T must
// not contain Go pointers; violating that keeps heap objects reachable
// only through the mapping alive by luck, not by contract. Fresh mappings
// are zeroed by the kernel.
type MmapAllocator[T any] struct{}

// NewMmapAllocator create an mmap-backed allocator. Allocation failure
// surfaces the mmap error.
func NewMmapAllocator[T any]() Allocator[T] {
	return MmapAllocator[T]{}
}

func (MmapAllocator[T]) Allocate(capacity int) ([]T, error) {
	if capacity == 0 {
		return nil, nil
	}
	size := mappingSize[T](capacity)
	b, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap %d bytes: %w", size, err)
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), capacity), nil
}

func (MmapAllocator[T]) Free(block []T) {
	if cap(block) == 0 {
		return
	}
	block = block[:cap(block)]
	size := mappingSize[T](cap(block))
	b := unsafe.Slice((*byte)(unsafe.Pointer(&block[0])), size)
	if err := unix.Munmap(b); err != nil {
		panic(fmt.Sprintf("munmap %d bytes: %v", size, err))
	}
}

// mappingSize rounds the byte size of capacity elements up to whole
// pages. It must stay deterministic in capacity so Free can rebuild the
// exact mapping length Allocate used.
func mappingSize[T any](capacity int) int {
	var zero T
	size := capacity * int(unsafe.Sizeof(zero))
	ps := os.Getpagesize()
	if size == 0 {
		return ps
	}
	return (size + ps - 1) / ps * ps
}
