package ovector

import (
	"slices"
	"sync"
)

// SafeVector is a mutex-protected wrapper around Vector for concurrent
// access. Unlike Vector it checks capacity and bounds, since the lock
// already dominates the cost of an append.
type SafeVector[T any] struct {
	mu sync.Mutex
	v  Vector[T]
}

// NewSafeVector creates a thread-safe vector with room for maxSize
// elements. It is unbacked if the reservation fails.
func NewSafeVector[T any](maxSize int) *SafeVector[T] {
	s := &SafeVector[T]{}
	s.v.s, _ = newStorage[T](maxSize)
	return s
}

// PushBack thread-safely appends value and returns its index. It returns
// false if the vector is unbacked or full.
func (s *SafeVector[T]) PushBack(value T) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.v.s.size >= s.v.s.maxSize {
		return 0, false
	}
	s.v.PushBack(value)
	return s.v.s.size - 1, true
}

// PopBack thread-safely removes the last element and returns a copy of it
// taken before teardown. It returns false if the vector is empty.
func (s *SafeVector[T]) PopBack() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.v.s.size == 0 {
		var zero T
		return zero, false
	}
	value := *s.v.Back()
	s.v.PopBack()
	return value, true
}

// Get thread-safely returns a copy of element i.
func (s *SafeVector[T]) Get(i int) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if uint(i) >= uint(s.v.s.size) {
		var zero T
		return zero, false
	}
	return *s.v.At(i), true
}

// Set thread-safely overwrites element i.
func (s *SafeVector[T]) Set(i int, value T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if uint(i) >= uint(s.v.s.size) {
		return false
	}
	*s.v.At(i) = value
	return true
}

// Update thread-safely applies fn to element i in place.
func (s *SafeVector[T]) Update(i int, fn func(*T)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if uint(i) >= uint(s.v.s.size) {
		return false
	}
	fn(s.v.At(i))
	return true
}

// Len thread-safely returns the number of live elements.
func (s *SafeVector[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.Len()
}

// Cap thread-safely returns the capacity.
func (s *SafeVector[T]) Cap() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.Cap()
}

// Snapshot thread-safely copies the live elements to the Go heap.
func (s *SafeVector[T]) Snapshot() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.v.Slice())
}

// Clear thread-safely removes all elements.
func (s *SafeVector[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Clear()
}

// Free thread-safely destroys all elements and releases the reservation.
func (s *SafeVector[T]) Free() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Free()
}

// Metrics thread-safely returns a snapshot of vector statistics.
func (s *SafeVector[T]) Metrics() VectorMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.Metrics()
}
