package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/alloc"
	"github.com/joshuapare/arenakit/sysmem"
)

var (
	benchIters    int
	benchPayload  int
	benchCapacity int
	benchSlots    int
)

func init() {
	cmd := newBenchCmd()
	cmd.Flags().IntVar(&benchIters, "iters", 2_000_000, "Allocations per allocator")
	cmd.Flags().IntVar(&benchPayload, "payload", 64, "Bytes per cursor allocation")
	cmd.Flags().IntVar(&benchCapacity, "capacity", 1<<20, "Arena capacity in bytes")
	cmd.Flags().IntVar(&benchSlots, "slots", 4096, "Pool slot count")
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bench",
		Short: "Time allocation workloads across the allocators",
		Long: `The bench command runs the same allocation workload against each
allocator and the Go heap, then prints throughput numbers.

Cursor arenas are cleared and refilled whenever they run out; the pool
allocates and frees in pairs. The pool payload is a fixed 64-byte record,
so --payload applies to the cursor allocators only.

Example:
  arenactl bench
  arenactl bench --iters 10000000 --payload 128`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench()
		},
	}
}

// benchRecord is the pool payload: 64 bytes of state.
type benchRecord struct {
	buf [64]byte
}

func runBench() error {
	if benchIters < 1 || benchPayload < 1 || benchCapacity < benchPayload {
		return fmt.Errorf("bench: need iters >= 1 and capacity >= payload >= 1")
	}

	printInfo("workload: %d allocations, %d B payload, %d B arenas\n\n",
		benchIters, benchPayload, benchCapacity)

	stack := alloc.NewStack(uintptr(benchCapacity))
	if err := reportArena("stack", stack); err != nil {
		return err
	}

	bump, err := alloc.NewBump(uintptr(benchCapacity), 8)
	if err != nil {
		return err
	}
	if err := reportArena("bump/heap", bump); err != nil {
		return err
	}
	if err := bump.Release(); err != nil {
		return err
	}

	mapped, err := alloc.NewBumpIn(sysmem.New(), uintptr(benchCapacity), 8)
	if err != nil {
		return err
	}
	if err := reportArena("bump/sysmem", mapped); err != nil {
		return err
	}
	if err := mapped.Release(); err != nil {
		return err
	}

	double, err := alloc.NewDoubleBump(uintptr(benchCapacity), 8)
	if err != nil {
		return err
	}
	if err := reportArena("double bump", double); err != nil {
		return err
	}
	if err := double.Release(); err != nil {
		return err
	}

	if err := reportPool(); err != nil {
		return err
	}
	reportGoHeap()

	return nil
}

// reportArena times clear-and-refill allocation on one cursor allocator.
func reportArena(name string, a alloc.Arena) error {
	size := uintptr(benchPayload)

	start := time.Now()
	for range benchIters {
		if _, err := a.Alloc(size, 8); err != nil {
			if !errors.Is(err, alloc.ErrNoSpace) {
				return err
			}
			a.Clear()
			if _, err := a.Alloc(size, 8); err != nil {
				return err
			}
		}
	}
	elapsed := time.Since(start)

	printInfo("  %-12s %14.0f allocs/sec\n", name, rate(benchIters, elapsed))
	return nil
}

// reportPool times alloc/free pairs on a pool.
func reportPool() error {
	p, err := alloc.NewPool[benchRecord](benchSlots)
	if err != nil {
		return err
	}

	var rec benchRecord
	start := time.Now()
	for range benchIters {
		r, err := p.Alloc(rec)
		if err != nil {
			return err
		}
		if err := p.Free(r); err != nil {
			return err
		}
	}
	elapsed := time.Since(start)

	printInfo("  %-12s %14.0f pairs/sec\n", "pool", rate(benchIters, elapsed))
	return p.Release()
}

// heapSink keeps the baseline allocation observable.
var heapSink []byte

// reportGoHeap times the runtime allocator on the same payload size.
func reportGoHeap() {
	start := time.Now()
	for range benchIters {
		heapSink = make([]byte, benchPayload)
	}
	elapsed := time.Since(start)

	printInfo("  %-12s %14.0f allocs/sec\n", "go heap", rate(benchIters, elapsed))
}

func rate(n int, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(n) / elapsed.Seconds()
}
