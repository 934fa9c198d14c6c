package main

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/alloc"
)

var (
	churnSlots  int
	churnRounds int
	churnOps    int
	churnSeed   int64
)

func init() {
	cmd := newChurnCmd()
	cmd.Flags().IntVar(&churnSlots, "slots", 1024, "Pool slot count")
	cmd.Flags().IntVar(&churnRounds, "rounds", 100, "Churn rounds to run")
	cmd.Flags().IntVar(&churnOps, "ops", 10000, "Random alloc/free operations per round")
	cmd.Flags().Int64Var(&churnSeed, "seed", 42, "Random seed")
	rootCmd.AddCommand(cmd)
}

func newChurnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "churn",
		Short: "Randomized pool churn with free-list integrity checks",
		Long: `The churn command hammers a pool with random allocations and frees,
validating the free list after every round. It exits non-zero on the first
integrity violation.

Example:
  arenactl churn --slots 4096 --rounds 1000
  arenactl churn --seed 7 -v`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChurn()
		},
	}
}

func runChurn() error {
	if churnSlots < 1 || churnRounds < 1 || churnOps < 1 {
		return fmt.Errorf("churn: slots, rounds and ops must all be >= 1")
	}

	p, err := alloc.NewPool[benchRecord](churnSlots)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(churnSeed))
	live := make([]alloc.Ref[benchRecord], 0, churnSlots)

	printInfo("churning %d slots for %d rounds (%d ops each, seed %d)\n",
		churnSlots, churnRounds, churnOps, churnSeed)

	var rec benchRecord
	for round := range churnRounds {
		for range churnOps {
			if rng.Intn(2) == 0 {
				r, err := p.Alloc(rec)
				if err != nil {
					if errors.Is(err, alloc.ErrPoolFull) {
						continue
					}
					return err
				}
				live = append(live, r)
			} else if len(live) > 0 {
				i := rng.Intn(len(live))
				if err := p.Free(live[i]); err != nil {
					return err
				}
				live = append(live[:i], live[i+1:]...)
			}
		}

		if err := p.Validate(); err != nil {
			return fmt.Errorf("round %d: %w", round, err)
		}
		if p.Live() != len(live) {
			return fmt.Errorf("round %d: pool reports %d live, tracker holds %d",
				round, p.Live(), len(live))
		}
		printVerbose("  round %d: %d live, fingerprint %#x\n",
			round, p.Live(), p.Fingerprint())
	}

	st := p.Stats()
	printInfo("clean: %d allocs, %d frees, %d refusals, %d live at exit\n",
		st.Allocs, st.Frees, st.Fails, p.Live())

	return p.Release()
}
