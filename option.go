package vec

import (
	"github.com/vecstor/vec/mem"
)

// Option vector option
type Option[T any] func(*Vector[T])

// WithAllocator set the storage allocator. All of the vector's blocks are
// obtained from and returned to it, on construction, growth and Release.
func WithAllocator[T any](alloc mem.Allocator[T]) Option[T] {
	return func(v *Vector[T]) {
		v.options.alloc = alloc
	}
}
