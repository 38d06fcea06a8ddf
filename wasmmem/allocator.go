// Package wasmmem backs WebAssembly linear memories with guarded,
// non-moving reservations.
//
// Each memory reserves its maximum size up front, so growing never moves
// the buffer. This meets wazero's requirement for shared memories, and it
// keeps host-side pointers into guest memory valid across memory.grow.
package wasmmem

import (
	"context"
	"math"

	"github.com/tetratelabs/wazero/experimental"
	"go.uber.org/zap"

	"github.com/pavanmanishd/ovector"
)

// Option configures an allocator.
type Option func(*allocator)

// WithLogger logs reservations that fall back to the Go heap.
func WithLogger(l *zap.Logger) Option {
	return func(a *allocator) {
		if l != nil {
			a.logger = l
		}
	}
}

type allocator struct {
	logger *zap.Logger
}

// NewAllocator returns a wazero memory allocator that reserves each
// memory's maximum size as a guarded region.
func NewAllocator(opts ...Option) experimental.MemoryAllocator {
	a := &allocator{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	return experimental.MemoryAllocatorFunc(a.allocate)
}

// WithAllocator returns a context that makes wazero use NewAllocator(opts...)
// for every memory instantiated with it.
func WithAllocator(ctx context.Context, opts ...Option) context.Context {
	return experimental.WithMemoryAllocator(ctx, NewAllocator(opts...))
}

func (a *allocator) allocate(capacity, max uint64) experimental.LinearMemory {
	err := ovector.ErrSizeOverflow
	if max <= math.MaxInt {
		var v *ovector.Vector[byte]
		if v, err = ovector.WithMaxSize[byte](int(max)); err == nil && v.Backed() {
			return &guardedMemory{v: v}
		}
	}
	a.logger.Debug("wasmmem: guarded reservation unavailable, using heap buffer",
		zap.Uint64("max", max),
		zap.Error(err),
	)
	return &sliceMemory{buf: make([]byte, 0, capacity), max: max}
}

// guardedMemory grows in place inside a reservation of the maximum size.
type guardedMemory struct {
	v   *ovector.Vector[byte]
	hwm int // highest length ever reached
}

func (m *guardedMemory) Reallocate(size uint64) []byte {
	if size > uint64(m.v.Cap()) {
		return nil
	}
	n := int(size)
	switch cur := m.v.Len(); {
	case n > cur:
		m.v.UninitializedGrowBackBy(n - cur)
		// Fresh pages are zero; only bytes below the high-water mark can be stale.
		if dirty := min(n, m.hwm); dirty > cur {
			clear(m.v.Slice()[cur:dirty])
		}
	case n < cur:
		m.v.UninitializedShrinkBackBy(cur - n)
	}
	m.hwm = max(m.hwm, n)
	return m.v.Slice()
}

func (m *guardedMemory) Free() {
	m.v.Free()
}

// sliceMemory is the heap fallback when no reservation can be made. It may
// move when it grows.
type sliceMemory struct {
	buf []byte
	max uint64
}

func (m *sliceMemory) Reallocate(size uint64) []byte {
	if size > m.max {
		return nil
	}
	old := uint64(len(m.buf))
	if c := uint64(cap(m.buf)); size > c {
		m.buf = append(m.buf[:c], make([]byte, size-c)...)
	} else {
		m.buf = m.buf[:size]
	}
	if size > old {
		clear(m.buf[old:])
	}
	return m.buf
}

func (m *sliceMemory) Free() {
	m.buf = nil
}
