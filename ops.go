package vec

// The container manages element lifetime explicitly. A plain element type
// gets value semantics: copying and relocating are plain assignments and
// cannot fail. A type that owns external state opts into explicit
// lifecycle by implementing one or more of the interfaces below; from
// that point the container treats it as non-copyable unless it also
// implements Cloner.
//
// Capability methods must be declared on T exactly as stored in the
// vector: on the value type with value receivers, or with T itself a
// pointer type.

// Cloner is implemented by element types that support deep copy.
type Cloner[T any] interface {
	// Clone returns an independent copy of the receiver.
	Clone() (T, error)
}

// Mover is implemented by element types whose ownership transfer never
// fails. The container zeroes the source slot after Move returns, so the
// receiver does not have to invalidate itself.
type Mover[T any] interface {
	Move() T
}

// TryMover is implemented by element types whose ownership transfer can
// fail. Relocation during growth never uses a fallible transfer when a
// copy fallback exists: a transfer that fails halfway would tear the
// sequence, while a failed copy still leaves the originals intact.
type TryMover[T any] interface {
	TryMove() (T, error)
}

// Disposer is implemented by element types that need teardown when the
// container destroys them. Dispose runs exactly once per live element, on
// erase, pop, shrink, overwrite and Release.
type Disposer interface {
	Dispose()
}

// lifecycle is the capability table for one element type. It is resolved
// once per vector construction, never per operation.
type lifecycle[T any] struct {
	copyable       bool
	moveCanFail    bool
	relocateByMove bool

	clone   func(T) (T, error) // nil when !copyable
	move    func(*T) (T, error)
	dispose func(*T)
}

func lifecycleOf[T any]() lifecycle[T] {
	var probe T
	_, hasClone := any(probe).(Cloner[T])
	_, hasMove := any(probe).(Mover[T])
	_, hasTryMove := any(probe).(TryMover[T])
	_, hasDispose := any(probe).(Disposer)
	custom := hasClone || hasMove || hasTryMove || hasDispose

	lc := lifecycle[T]{
		copyable:    hasClone || !custom,
		moveCanFail: hasTryMove && !hasMove,
	}
	// Relocate by transfer when the transfer cannot fail, or when it is
	// the only option; otherwise copy so the originals survive a failure.
	lc.relocateByMove = !lc.moveCanFail || !lc.copyable

	switch {
	case hasClone:
		lc.clone = func(v T) (T, error) {
			return any(v).(Cloner[T]).Clone()
		}
	case lc.copyable:
		lc.clone = func(v T) (T, error) {
			return v, nil
		}
	}

	switch {
	case hasMove:
		lc.move = func(src *T) (T, error) {
			v := any(*src).(Mover[T]).Move()
			var zero T
			*src = zero
			return v, nil
		}
	case hasTryMove:
		lc.move = func(src *T) (T, error) {
			v, err := any(*src).(TryMover[T]).TryMove()
			if err != nil {
				return v, err
			}
			var zero T
			*src = zero
			return v, nil
		}
	default:
		lc.move = func(src *T) (T, error) {
			v := *src
			var zero T
			*src = zero
			return v, nil
		}
	}

	if hasDispose {
		lc.dispose = func(v *T) {
			any(*v).(Disposer).Dispose()
			var zero T
			*v = zero
		}
	} else {
		lc.dispose = func(v *T) {
			var zero T
			*v = zero
		}
	}
	return lc
}
