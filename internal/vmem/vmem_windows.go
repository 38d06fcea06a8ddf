//go:build windows

package vmem

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

func osPageSize() int {
	return os.Getpagesize()
}

// osReserve reserves the whole extent as no-access and commits only the
// data prefix. The guard pages are never committed.
func osReserve(alignedData, alignedGuard uintptr) (unsafe.Pointer, error) {
	total := alignedData + alignedGuard
	addr, err := windows.VirtualAlloc(0, total, windows.MEM_RESERVE, windows.PAGE_NOACCESS)
	if addr == 0 {
		return nil, fmt.Errorf("%w: VirtualAlloc reserve %d bytes: %w", ErrReserveFailed, total, err)
	}

	if _, err := windows.VirtualAlloc(addr, alignedData, windows.MEM_COMMIT, windows.PAGE_READWRITE); err != nil {
		fatal("failed to commit allocation", err)
	}
	return unsafe.Pointer(addr), nil
}

func osRelease(base unsafe.Pointer, _, _ uintptr) {
	if err := windows.VirtualFree(uintptr(base), 0, windows.MEM_RELEASE); err != nil {
		fatal("failed to release memory", err)
	}
}
