//go:build unix

package vmem

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

const maxMapLen = uintptr(^uint(0) >> 1)

func osPageSize() int {
	return unix.Getpagesize()
}

// osReserve maps the whole extent read/write and then revokes access to
// the trailing guard pages. Untouched data pages stay uncommitted until
// first write.
func osReserve(alignedData, alignedGuard uintptr) (unsafe.Pointer, error) {
	total := alignedData + alignedGuard
	if total > maxMapLen {
		return nil, fmt.Errorf("%w: %d bytes exceeds mmap length", ErrSizeOverflow, total)
	}

	mem, err := unix.Mmap(-1, 0, int(total),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON|mapNoReserve)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %d bytes: %w", ErrReserveFailed, total, err)
	}

	if alignedGuard > 0 {
		if err := unix.Mprotect(mem[alignedData:], unix.PROT_NONE); err != nil {
			fatal("failed to enable guard region", err)
		}
	}
	return unsafe.Pointer(unsafe.SliceData(mem)), nil
}

func osRelease(base unsafe.Pointer, alignedData, alignedGuard uintptr) {
	mem := unsafe.Slice((*byte)(base), int(alignedData+alignedGuard))
	if err := unix.Munmap(mem); err != nil {
		fatal("failed to unmap memory", err)
	}
}
