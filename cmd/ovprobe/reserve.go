package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pavanmanishd/ovector"
)

var (
	reserveCount int
	reserveFill  int
)

func init() {
	cmd := newReserveCmd()
	cmd.Flags().IntVarP(&reserveCount, "count", "n", 1<<20, "Maximum number of uint64 elements")
	cmd.Flags().IntVar(&reserveFill, "fill", 0, "Number of elements to push after reserving")
	rootCmd.AddCommand(cmd)
}

func newReserveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reserve",
		Short: "Reserve a vector and report its footprint",
		Long: `The reserve command reserves a guarded vector of uint64 elements, pushes
--fill elements into it and reports the vector metrics together with the
process-wide reservation statistics.

Example:
  ovprobe reserve --count 1000000000
  ovprobe reserve --count 4096 --fill 4096 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runScenario(scenario{Name: "reserve", Count: reserveCount, Fill: reserveFill})
			if err != nil {
				return err
			}
			return printResults([]scenarioResult{res})
		},
	}
}

type scenarioResult struct {
	Name     string                   `json:"name"`
	Metrics  ovector.VectorMetrics    `json:"metrics"`
	Stats    ovector.ReservationStats `json:"stats"`
	Checksum uint64                   `json:"checksum"`
	Elapsed  time.Duration            `json:"elapsed_ns"`
}

// runScenario reserves, fills and sums a vector, then frees it. The stats
// are read while the vector is still live.
func runScenario(s scenario) (scenarioResult, error) {
	if err := s.validate(); err != nil {
		return scenarioResult{}, err
	}

	start := time.Now()
	v, err := ovector.WithMaxSize[uint64](s.Count)
	if err != nil {
		return scenarioResult{}, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	defer v.Free()

	for i := range s.Fill {
		v.PushBack(uint64(i))
	}
	var sum uint64
	for x := range v.Values() {
		sum += x
	}

	res := scenarioResult{
		Name:     s.Name,
		Metrics:  v.Metrics(),
		Stats:    ovector.ReadReservationStats(),
		Checksum: sum,
		Elapsed:  time.Since(start),
	}
	logger.Debug("scenario complete",
		zap.String("name", s.Name),
		zap.Int("count", s.Count),
		zap.Int("fill", s.Fill),
		zap.Int("reserved_bytes", res.Metrics.ReservedBytes),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

func printResults(results []scenarioResult) error {
	if jsonOut {
		return printJSON(results)
	}
	for _, r := range results {
		fmt.Printf("%s:\n", r.Name)
		fmt.Printf("  len/cap:        %d/%d (%.1f%%)\n", r.Metrics.Len, r.Metrics.Cap, r.Metrics.Utilization*100)
		fmt.Printf("  data bytes:     %s\n", formatBytes(int64(r.Metrics.DataBytes)))
		fmt.Printf("  reserved:       %s\n", formatBytes(int64(r.Metrics.ReservedBytes)))
		fmt.Printf("  checksum:       %d\n", r.Checksum)
		fmt.Printf("  elapsed:        %v\n", r.Elapsed)
		fmt.Printf("  live reserves:  %d (%s reserved, %s committed)\n",
			r.Stats.Reservations, formatBytes(r.Stats.ReservedBytes), formatBytes(r.Stats.CommittedBytes))
	}
	return nil
}
