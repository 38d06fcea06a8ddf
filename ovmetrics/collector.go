// Package ovmetrics exports process-wide guarded reservation statistics
// as Prometheus metrics.
package ovmetrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pavanmanishd/ovector"
)

// Collector reads ovector.ReadReservationStats on every scrape.
type Collector struct {
	reservations   *prometheus.Desc
	reservedBytes  *prometheus.Desc
	committedBytes *prometheus.Desc
	reserves       *prometheus.Desc
	failures       *prometheus.Desc
	releases       *prometheus.Desc

	read func() ovector.ReservationStats
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector returns a collector whose metric names are prefixed with
// namespace. An empty namespace yields unprefixed names.
func NewCollector(namespace string) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, nil, nil)
	}
	return &Collector{
		reservations:   desc("reservations", "Number of live guarded reservations"),
		reservedBytes:  desc("reserved_bytes", "Address space held by live reservations, data and guard pages included"),
		committedBytes: desc("committed_bytes", "Readable and writable bytes of live reservations"),
		reserves:       desc("reserves_total", "Successful guarded reservations"),
		failures:       desc("reserve_failures_total", "Guarded reservations refused by the OS or rejected for size"),
		releases:       desc("releases_total", "Guarded reservations returned to the OS"),
		read:           ovector.ReadReservationStats,
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.reservations
	ch <- c.reservedBytes
	ch <- c.committedBytes
	ch <- c.reserves
	ch <- c.failures
	ch <- c.releases
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.read()
	ch <- prometheus.MustNewConstMetric(c.reservations, prometheus.GaugeValue, float64(s.Reservations))
	ch <- prometheus.MustNewConstMetric(c.reservedBytes, prometheus.GaugeValue, float64(s.ReservedBytes))
	ch <- prometheus.MustNewConstMetric(c.committedBytes, prometheus.GaugeValue, float64(s.CommittedBytes))
	ch <- prometheus.MustNewConstMetric(c.reserves, prometheus.CounterValue, float64(s.TotalReserves))
	ch <- prometheus.MustNewConstMetric(c.failures, prometheus.CounterValue, float64(s.FailedReserves))
	ch <- prometheus.MustNewConstMetric(c.releases, prometheus.CounterValue, float64(s.TotalReleases))
}
