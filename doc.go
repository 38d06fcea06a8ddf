// Package ovector implements an overcommit vector: a dynamic array that
// never reallocates.
//
// # Overview
//
// A Vector reserves address space for its maximum number of elements up
// front. Modern operating systems back virtual memory with physical memory
// lazily, so untouched capacity costs nothing but address space. Because
// the storage never moves:
//
//   - PushBack is O(1) and branch-free
//   - Pointers to elements stay valid until those elements are removed
//   - No copying ever happens on growth
//
// # Basic Usage
//
//	v := ovector.WithMaxSizeOrNull[int64](1 << 20)
//	defer v.Free()
//
//	if !v.Backed() {
//		// reservation failed
//	}
//
//	p := v.PushBack(42)  // p stays valid while the element is live
//	v.PushBack(43)
//	for i, x := range v.All() {
//		fmt.Println(i, *x)
//	}
//
// Use WithMaxSize to learn why a reservation failed.
//
// # Guard Region
//
// Every reservation is followed by at least one element's worth of
// inaccessible memory. Appending beyond Cap() is not checked; it writes
// into the guard region and the process dies with a memory fault instead
// of corrupting neighbouring memory.
//
// # Element Types
//
// Elements live outside the Go heap, so element types must not contain Go
// pointers (including strings, slices, maps and interfaces); construction
// panics otherwise. Types whose pointer implements Destroyer have Destroy
// called when they are popped, cleared or freed.
//
// # Ownership
//
// A Vector owns its reservation until Free, and only Free returns it to
// the OS; a dropped Vector leaks its address space. It must not be copied:
// transfer ownership with Take or MoveFrom, or exchange it with Swap. A
// moved-from Vector is unbacked.
//
// # Thread Safety
//
// Vector is not thread-safe. SafeVector wraps it with a mutex and checked
// accessors.
//
// # Debug Builds
//
// Building with -tags ovectordebug turns precondition violations (index out
// of range, pop from empty, push beyond capacity) into panics.
package ovector
