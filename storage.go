package ovector

import (
	"fmt"
	"unsafe"

	"github.com/pavanmanishd/ovector/internal/vmem"
)

// storage owns one guarded reservation sized for maxSize elements of T,
// plus a one-element guard.
type storage[T any] struct {
	memory   unsafe.Pointer
	size     int
	maxSize  int
	teardown bool // *T is a Destroyer
}

func newStorage[T any](maxSize int) (storage[T], error) {
	elem := elemSize[T]()
	if maxSize < 0 {
		return storage[T]{}, fmt.Errorf("%w: %d", ErrNegativeSize, maxSize)
	}
	if maxSize == 0 {
		return storage[T]{}, nil
	}
	if elem != 0 && uintptr(maxSize) > ^uintptr(0)/elem {
		return storage[T]{}, fmt.Errorf("%w: %d elements of %d bytes", ErrSizeOverflow, maxSize, elem)
	}

	data, guard := reservationSize(maxSize, elem)
	memory, err := vmem.TryReserve(data, guard)
	if err != nil {
		return storage[T]{}, err
	}
	return storage[T]{memory: memory, maxSize: maxSize, teardown: needsTeardown[T]()}, nil
}

// reservationSize returns the data and guard sizes backing maxSize
// elements of elem bytes. Zero-size elements all share one byte so the
// storage still has a distinct address.
func reservationSize(maxSize int, elem uintptr) (data, guard uintptr) {
	if elem == 0 {
		return 1, 1
	}
	return uintptr(maxSize) * elem, elem
}

// take hands ownership to the caller and leaves s unbacked.
func (s *storage[T]) take() storage[T] {
	out := *s
	*s = storage[T]{}
	return out
}

func (s *storage[T]) release() {
	if s.memory != nil {
		var zero T
		data, guard := reservationSize(s.maxSize, unsafe.Sizeof(zero))
		vmem.Release(s.memory, data, guard)
	}
	*s = storage[T]{}
}
