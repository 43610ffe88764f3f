package vec

import (
	"fmt"

	"github.com/vecstor/vec/mem"
	"go.uber.org/zap"
)

// Vector is a contiguous growable sequence of T built on raw storage.
// Slots [0, Len()) hold live elements; slots [Len(), Cap()) are dead
// storage the vector never reads. Growth doubles capacity and keeps the
// strong guarantee: a failed grow leaves the vector untouched, because
// elements are first placed into fresh storage and the buffers are
// swapped only after every placement succeeded.
//
// A Vector is not safe for concurrent mutation; distinct vectors share
// nothing and may be used from different goroutines freely.
type Vector[T any] struct {
	data mem.Buffer[T]
	len  int
	lc   lifecycle[T]

	options struct {
		alloc mem.Allocator[T]
	}
}

// New create an empty vector. Capacity is 0 until the first Reserve,
// Resize, Append or Insert.
func New[T any](opts ...Option[T]) *Vector[T] {
	v := &Vector[T]{
		lc: lifecycleOf[T](),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.adjust()
	return v
}

// NewWithLen create a vector holding n zero-value elements, with capacity
// exactly n.
func NewWithLen[T any](n int, opts ...Option[T]) (*Vector[T], error) {
	if n < 0 {
		panic(fmt.Sprintf("vec: invalid length %d", n))
	}
	v := New[T](opts...)
	if err := v.Resize(n); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Vector[T]) adjust() {
	if v.options.alloc == nil {
		v.options.alloc = mem.NewHeapAllocator[T]()
	}
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int {
	return v.len
}

// Cap returns how many elements the current storage can hold.
func (v *Vector[T]) Cap() int {
	return v.data.Cap()
}

// At returns the address of the live element at index i. i must be less
// than Len(); out-of-range indexing is a contract violation, not an
// error. The address stays valid until the next growth.
func (v *Vector[T]) At(i int) *T {
	if i < 0 || i >= v.len {
		panic(fmt.Sprintf("vec: index %d out of range, len %d", i, v.len))
	}
	return v.data.At(i)
}

// Get returns the element at index i.
func (v *Vector[T]) Get(i int) T {
	return *v.At(i)
}

// Set overwrites the element at index i. The previous value is
// overwritten as-is; if it needs teardown, dispose of it first.
func (v *Vector[T]) Set(i int, value T) {
	*v.At(i) = value
}

// Values returns the live window [0, Len()) of the underlying storage.
// The window is valid until the next mutating operation.
func (v *Vector[T]) Values() []T {
	return v.liveWindow()
}

// Reserve grows the storage to hold exactly capacity elements. It is a
// no-op when the current storage already suffices. Reserve never shrinks
// and never changes Len.
func (v *Vector[T]) Reserve(capacity int) error {
	if capacity <= v.Cap() {
		return nil
	}
	return v.regrow(capacity, 0, nil)
}

// Resize sets Len to n: shrinking destroys the trailing elements, growing
// reserves storage if needed and exposes the new slots as zero values.
func (v *Vector[T]) Resize(n int) error {
	if n < 0 {
		panic(fmt.Sprintf("vec: invalid length %d", n))
	}
	switch {
	case n < v.len:
		live := v.liveWindow()
		for i := n; i < v.len; i++ {
			v.lc.dispose(&live[i])
		}
	case n > v.len:
		if n > v.Cap() {
			if err := v.Reserve(n); err != nil {
				return err
			}
		}
		// recycled storage is dirty, the exposed slots must be written
		fresh := v.data.Block(v.len, n)
		var zero T
		for i := range fresh {
			fresh[i] = zero
		}
	}
	v.len = n
	return nil
}

// Append stores value in the next free slot and returns its address,
// doubling the storage when full. The vector takes ownership of value; if
// growth fails, value is disposed and the vector is unchanged.
func (v *Vector[T]) Append(value T) (*T, error) {
	if v.len == v.Cap() {
		if err := v.regrow(v.nextCap(), v.len, &value); err != nil {
			return nil, err
		}
	} else {
		*v.data.At(v.len) = value
	}
	v.len++
	return v.data.At(v.len - 1), nil
}

// Insert places value at position pos in [0, Len()], shifting later
// elements one slot right. pos == Len() appends. Returns the position of
// the inserted element.
//
// With spare capacity and a copyable element type, a copy failure midway
// through the shift leaves the vector valid but the tail order
// unspecified (basic guarantee); the growth path keeps the strong
// guarantee like Append.
func (v *Vector[T]) Insert(pos int, value T) (int, error) {
	if pos < 0 || pos > v.len {
		panic(fmt.Sprintf("vec: insert at %d out of range, len %d", pos, v.len))
	}
	if pos == v.len {
		if _, err := v.Append(value); err != nil {
			return 0, err
		}
		return v.len - 1, nil
	}
	if v.len == v.Cap() {
		if err := v.regrow(v.nextCap(), pos, &value); err != nil {
			return 0, err
		}
		v.len++
		return pos, nil
	}

	// Spare capacity: seed the first dead slot from the current last
	// element, shift (pos, len) right, then place value into pos.
	window := v.data.Block(0, v.len+1)
	if v.lc.relocateByMove {
		for i := v.len; i > pos; i-- {
			mv, err := v.lc.move(&window[i-1])
			if err != nil {
				// shift the already-moved tail back so no live element
				// stays beyond the live range
				v.moveBack(window[i:v.len], window[i+1:v.len+1])
				return 0, err
			}
			window[i] = mv
		}
		window[pos] = value
	} else {
		c, err := v.lc.clone(window[v.len-1])
		if err != nil {
			return 0, err
		}
		window[v.len] = c
		for i := v.len - 1; i > pos; i-- {
			c, err := v.lc.clone(window[i-1])
			if err != nil {
				// the seed clone must not stay live in dead storage
				v.lc.dispose(&window[v.len])
				return 0, err
			}
			v.lc.dispose(&window[i])
			window[i] = c
		}
		v.lc.dispose(&window[pos])
		window[pos] = value
	}
	v.len++
	return pos, nil
}

// Erase destroys the element at pos and shifts the tail one slot left.
// Returns pos, which now holds the element that followed the erased one,
// or Len() when the last element was erased. A relocation failure midway
// through the shift leaves the vector valid but with a zero-value gap
// (basic guarantee); it can only occur for fallible element types.
func (v *Vector[T]) Erase(pos int) (int, error) {
	if pos < 0 || pos >= v.len {
		panic(fmt.Sprintf("vec: erase at %d out of range, len %d", pos, v.len))
	}
	window := v.liveWindow()
	v.lc.dispose(&window[pos])
	if v.lc.relocateByMove {
		for i := pos; i < v.len-1; i++ {
			mv, err := v.lc.move(&window[i+1])
			if err != nil {
				return pos, err
			}
			window[i] = mv
		}
	} else {
		for i := pos; i < v.len-1; i++ {
			c, err := v.lc.clone(window[i+1])
			if err != nil {
				return pos, err
			}
			window[i] = c
			v.lc.dispose(&window[i+1])
		}
	}
	v.len--
	return pos, nil
}

// PopBack destroys the last element. PopBack on an empty vector is a
// contract violation.
func (v *Vector[T]) PopBack() {
	if v.len == 0 {
		panic("vec: PopBack on empty vector")
	}
	v.lc.dispose(v.data.At(v.len - 1))
	v.len--
}

// Clone returns a deep copy with capacity equal to Len(). Clone of a
// non-copyable element type is a contract violation.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	if !v.lc.copyable {
		panic("vec: Clone of a non-copyable element type")
	}
	out := &Vector[T]{lc: v.lc}
	out.options.alloc = v.options.alloc
	if v.len == 0 {
		return out, nil
	}
	if err := out.data.Init(v.len, out.options.alloc); err != nil {
		return nil, fmt.Errorf("vec: clone: %w", err)
	}
	dst := out.data.Block(0, v.len)
	src := v.liveWindow()
	for i := range src {
		c, err := v.lc.clone(src[i])
		if err != nil {
			for j := 0; j < i; j++ {
				v.lc.dispose(&dst[j])
			}
			out.data.Release()
			return nil, err
		}
		dst[i] = c
	}
	out.len = v.len
	return out, nil
}

// CopyFrom makes the vector an element-wise copy of other. When other
// does not fit in the current storage, the copy is built aside and
// swapped in, so a failure leaves the vector untouched; the in-place path
// keeps the basic guarantee. Copying from itself is a no-op.
func (v *Vector[T]) CopyFrom(other *Vector[T]) error {
	if v == other {
		return nil
	}
	if !v.lc.copyable {
		panic("vec: CopyFrom with a non-copyable element type")
	}
	if other.len > v.Cap() {
		tmp, err := other.Clone()
		if err != nil {
			return err
		}
		v.Swap(tmp)
		tmp.Release()
		return nil
	}

	n := v.len
	if other.len < n {
		n = other.len
	}
	dst := v.data.Block(0, v.Cap())
	src := other.liveWindow()
	for i := 0; i < n; i++ {
		c, err := v.lc.clone(src[i])
		if err != nil {
			return err
		}
		v.lc.dispose(&dst[i])
		dst[i] = c
	}
	if v.len > other.len {
		for i := other.len; i < v.len; i++ {
			v.lc.dispose(&dst[i])
		}
	} else {
		for i := v.len; i < other.len; i++ {
			c, err := v.lc.clone(src[i])
			if err != nil {
				for j := v.len; j < i; j++ {
					v.lc.dispose(&dst[j])
				}
				return err
			}
			dst[i] = c
		}
	}
	v.len = other.len
	return nil
}

// Swap exchanges contents with other in constant time without touching
// any element. It is the move surface of the container: moving a vector
// is New followed by Swap.
func (v *Vector[T]) Swap(other *Vector[T]) {
	v.data.Swap(&other.data)
	v.len, other.len = other.len, v.len
	v.options.alloc, other.options.alloc = other.options.alloc, v.options.alloc
}

// Release destroys all live elements and returns the storage to the
// allocator. The vector is empty and reusable afterwards.
func (v *Vector[T]) Release() {
	live := v.liveWindow()
	for i := range live {
		v.lc.dispose(&live[i])
	}
	v.len = 0
	v.data.Release()
}

// moveBack best-effort returns transferred elements from dst to their
// original slots in src after a later step failed. An element whose
// transfer back fails as well is disposed rather than left live outside
// the live range.
func (v *Vector[T]) moveBack(src, dst []T) {
	for i := range dst {
		if back, err := v.lc.move(&dst[i]); err == nil {
			src[i] = back
		} else {
			v.lc.dispose(&dst[i])
		}
	}
}

func (v *Vector[T]) liveWindow() []T {
	if v.len == 0 {
		return nil
	}
	return v.data.Block(0, v.len)
}

func (v *Vector[T]) nextCap() int {
	if c := v.Cap(); c > 0 {
		return c * 2
	}
	return 1
}

// regrow moves the vector into a fresh block of newCap slots. When value
// is non-nil it is placed at gapAt in the new block first and the live
// elements are relocated around it; regrow leaves len for the caller to
// bump. On failure every element placed into the new block is disposed,
// the block is freed and the vector is unchanged, except that copy-less
// fallible relocation downgrades to the basic guarantee (no fallback
// exists: already-transferred elements are moved back best-effort).
func (v *Vector[T]) regrow(newCap int, gapAt int, value *T) error {
	var nb mem.Buffer[T]
	if err := nb.Init(newCap, v.options.alloc); err != nil {
		if value != nil {
			v.lc.dispose(value)
		}
		return fmt.Errorf("vec: grow to %d slots: %w", newCap, err)
	}

	fail := func(placed [][]T, err error) error {
		for _, w := range placed {
			for i := range w {
				v.lc.dispose(&w[i])
			}
		}
		nb.Release()
		return err
	}

	src := v.liveWindow()
	if value == nil {
		if err := v.relocate(nb.Block(0, v.len), src); err != nil {
			return fail(nil, err)
		}
	} else {
		*nb.At(gapAt) = *value
		hole := nb.Block(gapAt, gapAt+1)
		if err := v.relocate(nb.Block(0, gapAt), src[:gapAt]); err != nil {
			return fail([][]T{hole}, err)
		}
		if err := v.relocate(nb.Block(gapAt+1, v.len+1), src[gapAt:]); err != nil {
			if v.lc.relocateByMove {
				// the prefix was transferred, not copied: return it to
				// its original slots instead of destroying it
				v.lc.dispose(nb.At(gapAt))
				v.moveBack(src[:gapAt], nb.Block(0, gapAt))
				nb.Release()
				return err
			}
			return fail([][]T{hole, nb.Block(0, gapAt)}, err)
		}
	}

	// every placement succeeded: destroy the originals and commit
	if !v.lc.relocateByMove {
		for i := range src {
			v.lc.dispose(&src[i])
		}
	}
	v.data.Swap(&nb)
	nb.Release()
	logger.Debug("vector grown",
		zap.Int("len", v.len),
		zap.Int("capacity", newCap))
	return nil
}

// relocate places src's live elements into dst slot by slot, by transfer
// or by copy according to the element type's capability table. The copy
// path leaves src untouched and, on failure, disposes everything already
// placed in dst before reporting.
func (v *Vector[T]) relocate(dst, src []T) error {
	if v.lc.relocateByMove {
		for i := range src {
			mv, err := v.lc.move(&src[i])
			if err != nil {
				// fallible transfer with no copy fallback: undo what we can
				v.moveBack(src[:i], dst[:i])
				return err
			}
			dst[i] = mv
		}
		return nil
	}
	for i := range src {
		c, err := v.lc.clone(src[i])
		if err != nil {
			for j := 0; j < i; j++ {
				v.lc.dispose(&dst[j])
			}
			return err
		}
		dst[i] = c
	}
	return nil
}
