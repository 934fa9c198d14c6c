package main

import (
	"runtime"
	"unsafe"

	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/alloc"
	"github.com/joshuapare/arenakit/sysmem"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Report platform, provider status and pool slot layouts",
		Long: `The info command reports the system page size, checks the mapped
memory provider with a round trip, and prints the cell layout the pool
derives for representative payload types.

Example:
  arenactl info`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo()
		},
	}
}

func runInfo() error {
	prov := sysmem.New()

	printInfo("platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	printInfo("page size: %d bytes\n", prov.PageSize())

	l, err := alloc.NewLayout(prov.PageSize(), 4096)
	if err != nil {
		return err
	}
	region, err := prov.Alloc(l)
	if err != nil {
		return err
	}
	region[0] = 0xAA
	if err := prov.Free(region, l); err != nil {
		return err
	}
	printInfo("mapped provider: ok (%d B round trip)\n", l.Size)

	printInfo("\npool slot layouts (payload -> cell):\n")
	if err := reportSlot[int32]("int32"); err != nil {
		return err
	}
	if err := reportSlot[int64]("int64"); err != nil {
		return err
	}
	if err := reportSlot[[16]byte]("[16]byte"); err != nil {
		return err
	}
	return reportSlot[benchRecord]("64-byte record")
}

// reportSlot prints the payload size against the full cell size, making
// the bookkeeping overhead visible.
func reportSlot[T any](name string) error {
	p, err := alloc.NewPool[T](1)
	if err != nil {
		return err
	}
	var v T
	printInfo("  %-14s %4d B -> %4d B\n", name, unsafe.Sizeof(v), p.SlotSize())
	return p.Release()
}
