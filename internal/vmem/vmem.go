// Package vmem reserves guarded regions of virtual memory.
//
// A region is a read/write data extent followed immediately by a guard
// extent that faults on any access. Both extents are rounded up to the
// page size. The rounding slack is placed in front of the data, so the
// guard always starts at the exact logical end the caller asked for.
package vmem

import (
	"errors"
	"fmt"
	"unsafe"
)

var (
	// ErrSizeOverflow is returned when page rounding or the combined
	// extent would not fit in a uintptr.
	ErrSizeOverflow = errors.New("vmem: size overflows address space")

	// ErrReserveFailed is returned when the OS refuses the reservation.
	ErrReserveFailed = errors.New("vmem: reservation failed")

	// ErrUnsupported is returned on platforms without a virtual memory API.
	ErrUnsupported = errors.New("vmem: guarded reservations are not supported on this platform")
)

const maxUintptr = ^uintptr(0)

var pageSize = uintptr(osPageSize())

// PageSize returns the granularity all extents are rounded to.
func PageSize() uintptr {
	return pageSize
}

// Reserve is TryReserve without the reason: it returns nil whenever no
// region could be reserved, including for a zero dataSize.
func Reserve(dataSize, guardSize uintptr) unsafe.Pointer {
	p, _ := TryReserve(dataSize, guardSize)
	return p
}

// TryReserve reserves a region whose first dataSize bytes are readable and
// writable and whose following guardSize bytes fault on access. It returns
// the address of the first data byte.
//
// A zero dataSize yields (nil, nil). A region whose guard cannot be
// protected after the reservation succeeded is fatal.
func TryReserve(dataSize, guardSize uintptr) (unsafe.Pointer, error) {
	if dataSize == 0 {
		return nil, nil
	}

	alignedData, alignedGuard, ok := extents(dataSize, guardSize)
	if !ok {
		counters.failed.Add(1)
		return nil, fmt.Errorf("%w: data %d bytes, guard %d bytes", ErrSizeOverflow, dataSize, guardSize)
	}

	base, err := osReserve(alignedData, alignedGuard)
	if err != nil {
		counters.failed.Add(1)
		return nil, err
	}
	counters.onReserve(alignedData, alignedGuard)

	return unsafe.Add(base, alignedData-dataSize), nil
}

// Release returns a region obtained from TryReserve. dataSize and
// guardSize must be the values the region was reserved with.
func Release(p unsafe.Pointer, dataSize, guardSize uintptr) {
	if p == nil {
		return
	}
	alignedData, alignedGuard, _ := extents(dataSize, guardSize)
	base := unsafe.Add(p, -int(alignedData-dataSize))
	osRelease(base, alignedData, alignedGuard)
	counters.onRelease(alignedData, alignedGuard)
}

// Footprint reports the page-aligned bytes a reservation of the given
// sizes occupies: the whole reservation and its committed data prefix.
// Both are zero when such a reservation could not be made.
func Footprint(dataSize, guardSize uintptr) (reserved, committed uintptr) {
	if dataSize == 0 {
		return 0, 0
	}
	alignedData, alignedGuard, ok := extents(dataSize, guardSize)
	if !ok {
		return 0, 0
	}
	return alignedData + alignedGuard, alignedData
}

// extents rounds both sizes up to the page size, failing instead of wrapping.
func extents(dataSize, guardSize uintptr) (alignedData, alignedGuard uintptr, ok bool) {
	page := PageSize()
	if dataSize > maxUintptr-page+1 || guardSize > maxUintptr-page+1 {
		return 0, 0, false
	}

	alignedData = ceilMultiple(dataSize, page)
	alignedGuard = ceilMultiple(guardSize, page)
	if maxUintptr-alignedGuard < alignedData {
		return 0, 0, false
	}
	return alignedData, alignedGuard, true
}

func ceilMultiple(size, n uintptr) uintptr {
	return (size + n - 1) / n * n
}
