//go:build !unix && !windows

package vmem

import (
	"os"
	"unsafe"
)

func osPageSize() int {
	return os.Getpagesize()
}

func osReserve(_, _ uintptr) (unsafe.Pointer, error) {
	return nil, ErrUnsupported
}

func osRelease(_ unsafe.Pointer, _, _ uintptr) {}
