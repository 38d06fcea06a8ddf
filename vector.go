package ovector

import (
	"iter"
	"slices"
	"unsafe"
)

// noCopy makes go vet's copylocks check reject copies of a Vector.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Vector is a dynamic array backed by a fixed virtual memory reservation.
// Not goroutine-safe. Use SafeVector for concurrent access.
//
// A Vector is either backed by a reservation for Cap() elements or not
// backed at all. It is unbacked if it is the zero value, if construction
// failed, if it was moved from, or after Free. Appending to an unbacked
// Vector, or beyond Cap(), is undefined; the guard region behind the
// reservation turns the latter into a memory fault.
//
// Vectors must not be copied; use Take, MoveFrom or Swap. The reservation
// lives outside the Go heap and is only returned by Free: a Vector that is
// dropped without Free keeps its address space, and any committed pages,
// until the process exits.
//
// Zero-size element types are backed by a single shared byte. Every
// element has the same address and pushing past Cap() does not fault.
type Vector[T any] struct {
	_ noCopy
	s storage[T]
}

// New returns an unbacked Vector.
func New[T any]() *Vector[T] {
	return &Vector[T]{}
}

// WithMaxSizeOrNull returns a Vector with room for maxSize elements.
// If the reservation cannot be made the Vector is unbacked: Data returns
// nil and Cap returns 0.
func WithMaxSizeOrNull[T any](maxSize int) *Vector[T] {
	v, _ := WithMaxSize[T](maxSize)
	return v
}

// WithMaxSize is WithMaxSizeOrNull that also reports why the Vector is
// unbacked. A maxSize of 0 gives an unbacked Vector and a nil error.
// The returned Vector is never nil.
func WithMaxSize[T any](maxSize int) (*Vector[T], error) {
	s, err := newStorage[T](maxSize)
	return &Vector[T]{s: s}, err
}

// Free destroys all elements and releases the reservation. Every backed
// Vector must be freed; nothing releases it otherwise. The Vector is
// unbacked afterwards. Free may be called more than once.
func (v *Vector[T]) Free() {
	v.Clear()
	v.s.release()
}

// Take moves the contents of v into a new Vector and leaves v unbacked.
func (v *Vector[T]) Take() *Vector[T] {
	return &Vector[T]{s: v.s.take()}
}

// MoveFrom frees v and takes over the contents of src, leaving src
// unbacked.
func (v *Vector[T]) MoveFrom(src *Vector[T]) {
	if v == src {
		return
	}
	v.Free()
	v.s = src.s.take()
}

// Swap exchanges the contents of v and other.
func (v *Vector[T]) Swap(other *Vector[T]) {
	v.s, other.s = other.s, v.s
}

// Backed reports whether v owns a reservation.
func (v *Vector[T]) Backed() bool {
	return v.s.memory != nil
}

// Data returns a pointer to the first slot, or nil if v is unbacked.
func (v *Vector[T]) Data() *T {
	return (*T)(v.s.memory)
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int {
	return v.s.size
}

// Cap returns the number of elements the reservation holds, or 0 if v is
// unbacked. It never changes while v stays backed.
func (v *Vector[T]) Cap() int {
	return v.s.maxSize
}

// Empty reports whether v has no live elements.
func (v *Vector[T]) Empty() bool {
	return v.s.size == 0
}

// At returns a pointer to element i. i must be less than Len().
func (v *Vector[T]) At(i int) *T {
	if debugChecks {
		assertf(uint(i) < uint(v.s.size), "index %d out of range [0:%d]", i, v.s.size)
	}
	return slot[T](v.s.memory, i)
}

// Front returns a pointer to the first element. v must not be empty.
func (v *Vector[T]) Front() *T {
	if debugChecks {
		assertf(v.s.size > 0, "Front of empty vector")
	}
	return (*T)(v.s.memory)
}

// Back returns a pointer to the last element. v must not be empty.
func (v *Vector[T]) Back() *T {
	if debugChecks {
		assertf(v.s.size > 0, "Back of empty vector")
	}
	return slot[T](v.s.memory, v.s.size-1)
}

// Slice returns the live elements. Its capacity is clipped to its length,
// so appending to it copies to the Go heap. It shares storage with v and
// is valid until the elements it covers are removed or v is freed.
func (v *Vector[T]) Slice() []T {
	if v.s.memory == nil {
		return nil
	}
	return unsafe.Slice((*T)(v.s.memory), v.s.size)
}

// All returns an iterator over the indices of the live elements and
// pointers to them. The range is fixed when iteration starts.
func (v *Vector[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		base, n := v.s.memory, v.s.size
		for i := 0; i < n; i++ {
			if !yield(i, slot[T](base, i)) {
				return
			}
		}
	}
}

// Values returns an iterator over copies of the live elements.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		base, n := v.s.memory, v.s.size
		for i := 0; i < n; i++ {
			if !yield(*slot[T](base, i)) {
				return
			}
		}
	}
}

// PushBack stores value at the back and returns a pointer to it. The
// pointer stays valid until the element is removed.
//
// v must be backed and Len() must be less than Cap(). Violating this is
// undefined; pushing one past Cap() faults on the guard region.
func (v *Vector[T]) PushBack(value T) *T {
	if debugChecks {
		assertf(v.s.memory != nil, "PushBack on unbacked vector")
		assertf(v.s.size < v.s.maxSize, "PushBack beyond max size %d", v.s.maxSize)
	}
	p := slot[T](v.s.memory, v.s.size)
	*p = value
	v.s.size++
	return p
}

// EmplaceBack zeroes the slot at the back and passes it to init. The
// element becomes live only if init returns nil; on error or panic the
// length is unchanged. Preconditions are those of PushBack.
func (v *Vector[T]) EmplaceBack(init func(*T) error) (*T, error) {
	if debugChecks {
		assertf(v.s.memory != nil, "EmplaceBack on unbacked vector")
		assertf(v.s.size < v.s.maxSize, "EmplaceBack beyond max size %d", v.s.maxSize)
	}
	p := slot[T](v.s.memory, v.s.size)
	var zero T
	*p = zero
	if err := init(p); err != nil {
		return nil, err
	}
	v.s.size++
	return p, nil
}

// PopBack removes the last element, destroying it if T is a Destroyer.
// v must not be empty.
func (v *Vector[T]) PopBack() {
	p := v.UninitializedShrinkBackBy(1)
	if v.s.teardown {
		destroy(p)
	}
}

// Clear removes all elements. The reservation is kept. It is O(1) unless
// T is a Destroyer, in which case every element is destroyed in order.
func (v *Vector[T]) Clear() {
	if !v.s.teardown {
		v.s.size = 0
		return
	}
	v.clearSlow()
}

func (v *Vector[T]) clearSlow() {
	base := v.s.memory
	if base == nil {
		return
	}
	n := v.s.size
	for i := 0; i < n; i++ {
		destroy(slot[T](base, i))
	}
	v.s.size = 0
}

// UninitializedGrowBackBy makes the next n slots live without touching
// them. Len()+n must not exceed Cap(). Initialise the slots (for example
// through Data) before growing.
func (v *Vector[T]) UninitializedGrowBackBy(n int) {
	if debugChecks {
		assertf(n >= 0 && v.s.size+n <= v.s.maxSize, "grow by %d exceeds max size %d (len %d)", n, v.s.maxSize, v.s.size)
	}
	v.s.size += n
}

// UninitializedShrinkBackBy drops the last n elements without destroying
// them and returns a pointer to the first dropped slot. Len() must be at
// least n.
func (v *Vector[T]) UninitializedShrinkBackBy(n int) *T {
	if debugChecks {
		assertf(n >= 0 && n <= v.s.size, "shrink by %d exceeds len %d", n, v.s.size)
	}
	v.s.size -= n
	return slot[T](v.s.memory, v.s.size)
}

// Equal reports whether a and b hold the same elements in the same order.
// Capacity is not compared.
func Equal[T comparable](a, b *Vector[T]) bool {
	return slices.Equal(a.Slice(), b.Slice())
}

// EqualFunc is Equal with a custom element comparison.
func EqualFunc[T any](a, b *Vector[T], eq func(T, T) bool) bool {
	return slices.EqualFunc(a.Slice(), b.Slice(), eq)
}
