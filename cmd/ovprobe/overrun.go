package main

import (
	"fmt"
	"runtime/debug"
	"unsafe"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pavanmanishd/ovector"
)

var overrunCount int

func init() {
	cmd := newOverrunCmd()
	cmd.Flags().IntVarP(&overrunCount, "count", "n", 1000, "Maximum number of uint64 elements")
	rootCmd.AddCommand(cmd)
}

func newOverrunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overrun",
		Short: "Push one element past capacity and catch the guard fault",
		Long: `The overrun command fills a vector to capacity and pushes one more element.
The write lands on the guard region and faults. ovprobe converts the fault
into a recoverable panic and reports where it happened relative to the end
of the data region. Built with -tags ovectordebug the push is rejected by an
assertion before it reaches the guard.

Example:
  ovprobe overrun --count 1000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverrun(overrunCount)
		},
	}
}

type overrunReport struct {
	Count     int    `json:"count"`
	End       string `json:"end"`
	FaultAddr string `json:"fault_addr,omitempty"`
	Offset    int64  `json:"offset"`
	Panic     string `json:"panic"`
	Trapped   bool   `json:"trapped"`
	Assertion bool   `json:"assertion"`
}

func runOverrun(count int) error {
	if count <= 0 {
		return fmt.Errorf("--count must be positive, got %d", count)
	}
	v, err := ovector.WithMaxSize[uint64](count)
	if err != nil {
		return err
	}
	defer v.Free()

	for i := range count {
		v.PushBack(uint64(i))
	}
	end := uintptr(unsafe.Pointer(v.Data())) + uintptr(count)*unsafe.Sizeof(uint64(0))

	report := overrunReport{Count: count, End: fmt.Sprintf("%#x", end)}
	r := pushPastEnd(v)
	switch e := r.(type) {
	case nil:
		return fmt.Errorf("push past capacity at %#x did not fault", end)
	case interface{ Addr() uintptr }:
		report.Trapped = true
		report.FaultAddr = fmt.Sprintf("%#x", e.Addr())
		report.Offset = int64(e.Addr() - end)
		report.Panic = fmt.Sprint(e)
	default:
		report.Assertion = true
		report.Panic = fmt.Sprint(e)
	}
	logger.Info("overrun caught",
		zap.Int("count", count),
		zap.Bool("trapped", report.Trapped),
		zap.String("panic", report.Panic),
	)

	if jsonOut {
		return printJSON(report)
	}
	fmt.Printf("data end:    %s\n", report.End)
	if report.Trapped {
		fmt.Printf("fault at:    %s (end%+d)\n", report.FaultAddr, report.Offset)
	}
	fmt.Printf("panic:       %s\n", report.Panic)
	return nil
}

// pushPastEnd pushes onto a full vector and returns what it panicked with.
func pushPastEnd(v *ovector.Vector[uint64]) (r any) {
	old := debug.SetPanicOnFault(true)
	defer debug.SetPanicOnFault(old)
	defer func() { r = recover() }()
	v.PushBack(^uint64(0))
	return nil
}
