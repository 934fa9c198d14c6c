package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/alloc"
)

var (
	framesCount    int
	framesCapacity int
	framesPayload  int
)

func init() {
	cmd := newFramesCmd()
	cmd.Flags().IntVar(&framesCount, "frames", 60, "Frames to simulate")
	cmd.Flags().IntVar(&framesCapacity, "capacity", 1<<16, "Per-arena capacity in bytes")
	cmd.Flags().IntVar(&framesPayload, "payload", 48, "Bytes per frame allocation")
	rootCmd.AddCommand(cmd)
}

func newFramesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "frames",
		Short: "Simulate a double-buffered frame loop",
		Long: `The frames command drives a double-buffered bump allocator through
the write/swap/clear cycle: fill the active arena, swap, clear the new
active arena, repeat. Per-frame cursors and fingerprints show the two
arenas alternating.

Example:
  arenactl frames --frames 120 -v`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFrames()
		},
	}
}

func runFrames() error {
	if framesCount < 1 || framesPayload < 1 || framesCapacity < framesPayload {
		return fmt.Errorf("frames: need frames >= 1 and capacity >= payload >= 1")
	}

	d, err := alloc.NewDoubleBump(uintptr(framesCapacity), 8)
	if err != nil {
		return err
	}

	printInfo("simulating %d frames over two %d B arenas\n", framesCount, framesCapacity)

	for frame := range framesCount {
		d.Clear()

		allocs := 0
		for {
			if _, err := d.Alloc(uintptr(framesPayload), 8); err != nil {
				if errors.Is(err, alloc.ErrNoSpace) {
					break
				}
				return err
			}
			allocs++
		}

		printVerbose("  frame %d: %d allocs, %d/%d bytes, fingerprint %#x\n",
			frame, allocs, d.Used(), d.Capacity(), d.Fingerprint())

		d.Swap()
	}

	st := d.Stats()
	printInfo("done: active arena holds %d bytes after %d allocs\n", st.Used, st.Allocs)

	return d.Release()
}
