package vmem

import "sync/atomic"

// Stats is a process-wide snapshot of guarded reservations.
type Stats struct {
	Reservations   int64  // Live reservations
	ReservedBytes  int64  // Page-aligned data+guard bytes of live reservations
	CommittedBytes int64  // Page-aligned data bytes of live reservations
	TotalReserves  uint64 // Successful reservations since start
	FailedReserves uint64 // Reservations refused or rejected for size
	TotalReleases  uint64 // Releases since start
}

var counters reservationCounters

type reservationCounters struct {
	live      atomic.Int64
	reserved  atomic.Int64
	committed atomic.Int64
	total     atomic.Uint64
	failed    atomic.Uint64
	releases  atomic.Uint64
}

func (c *reservationCounters) onReserve(alignedData, alignedGuard uintptr) {
	c.live.Add(1)
	c.reserved.Add(int64(alignedData + alignedGuard))
	c.committed.Add(int64(alignedData))
	c.total.Add(1)
}

func (c *reservationCounters) onRelease(alignedData, alignedGuard uintptr) {
	c.live.Add(-1)
	c.reserved.Add(-int64(alignedData + alignedGuard))
	c.committed.Add(-int64(alignedData))
	c.releases.Add(1)
}

// ReadStats returns the current reservation statistics.
func ReadStats() Stats {
	return Stats{
		Reservations:   counters.live.Load(),
		ReservedBytes:  counters.reserved.Load(),
		CommittedBytes: counters.committed.Load(),
		TotalReserves:  counters.total.Load(),
		FailedReserves: counters.failed.Load(),
		TotalReleases:  counters.releases.Load(),
	}
}
