//go:build linux

package vmem

import "golang.org/x/sys/unix"

// Linux heuristic overcommit refuses single mappings larger than RAM+swap
// unless they are marked as not needing swap reservation.
const mapNoReserve = unix.MAP_NORESERVE
