package ovector

import (
	"errors"

	"github.com/pavanmanishd/ovector/internal/vmem"
)

var (
	// ErrNegativeSize is returned for a negative maximum element count.
	ErrNegativeSize = errors.New("ovector: negative max size")

	// ErrSizeOverflow is returned when the reservation size cannot be
	// represented in the address space.
	ErrSizeOverflow = vmem.ErrSizeOverflow

	// ErrReserveFailed is returned when the OS refuses the reservation.
	ErrReserveFailed = vmem.ErrReserveFailed

	// ErrUnsupported is returned on platforms without virtual memory support.
	ErrUnsupported = vmem.ErrUnsupported
)
