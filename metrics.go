package ovector

import (
	"unsafe"

	"github.com/pavanmanishd/ovector/internal/vmem"
)

// VectorMetrics contains statistical information about a vector.
type VectorMetrics struct {
	Len           int     // Live elements
	Cap           int     // Element capacity of the reservation
	ElemSize      int     // Size of one element in bytes
	DataBytes     int     // Cap * ElemSize
	GuardBytes    int     // Requested guard size, one element
	ReservedBytes int     // Page-aligned address space held, data plus guard
	Utilization   float64 // Ratio of Len to Cap (0.0-1.0)
}

// ElemSize returns the size of one element in bytes.
func (v *Vector[T]) ElemSize() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// Utilization returns the ratio of live elements to capacity (0.0 to 1.0).
// Returns 0.0 if the vector is unbacked.
func (v *Vector[T]) Utilization() float64 {
	if v.s.maxSize == 0 {
		return 0
	}
	return float64(v.s.size) / float64(v.s.maxSize)
}

// Metrics returns a snapshot of vector statistics.
func (v *Vector[T]) Metrics() VectorMetrics {
	m := VectorMetrics{
		Len:         v.Len(),
		Cap:         v.Cap(),
		ElemSize:    v.ElemSize(),
		Utilization: v.Utilization(),
	}
	if v.Backed() {
		m.DataBytes = m.Cap * m.ElemSize
		m.GuardBytes = m.ElemSize
		reserved, _ := vmem.Footprint(reservationSize(m.Cap, uintptr(m.ElemSize)))
		m.ReservedBytes = int(reserved)
	}
	return m
}

// ReservationStats is a process-wide snapshot of guarded reservations
// made by all vectors.
type ReservationStats = vmem.Stats

// ReadReservationStats returns the current process-wide reservation
// statistics.
func ReadReservationStats() ReservationStats {
	return vmem.ReadStats()
}

// PageSize returns the page granularity reservations are rounded to.
func PageSize() int {
	return int(vmem.PageSize())
}
