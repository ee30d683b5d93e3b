package main

import (
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/pavdev/payloadbuffer/alloc"
	"github.com/pavdev/payloadbuffer/region"
)

var (
	benchOps     int
	benchMinSize int
	benchMaxSize int
	benchSeed    int64
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run a synthetic alloc/free workload and report throughput",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := region.NewMoveable(1<<20, true, region.HeapResizer{})
		if err != nil {
			return err
		}
		a := alloc.New(r, alloc.DefaultConfig)
		rng := rand.New(rand.NewSource(benchSeed))

		live := make([]uint32, 0, benchOps)
		start := time.Now()
		for i := 0; i < benchOps; i++ {
			// Mix allocation with the occasional free to churn the free
			// list instead of only ever growing the arena.
			if len(live) > 0 && rng.Intn(3) == 0 {
				idx := rng.Intn(len(live))
				if err := a.Free(live[idx]); err != nil {
					return err
				}
				live[idx] = live[len(live)-1]
				live = live[:len(live)-1]
				continue
			}
			size := benchMinSize + rng.Intn(benchMaxSize-benchMinSize+1)
			off, err := a.Allocate(int32(size), false)
			if err != nil {
				return err
			}
			live = append(live, off)
		}
		elapsed := time.Since(start)

		printInfo("%d ops in %s (%.0f ops/sec), %d live allocations, final region size %d\n",
			benchOps, elapsed, float64(benchOps)/elapsed.Seconds(), len(live), mustFullSize(r))
		return nil
	},
}

func mustFullSize(r *region.Region) uint32 {
	h, err := r.Header()
	if err != nil {
		return 0
	}
	return h.FullSize
}

func init() {
	benchCmd.Flags().IntVar(&benchOps, "ops", 100000, "number of allocate/free operations")
	benchCmd.Flags().IntVar(&benchMinSize, "min-size", 8, "minimum allocation size")
	benchCmd.Flags().IntVar(&benchMaxSize, "max-size", 512, "maximum allocation size")
	benchCmd.Flags().Int64Var(&benchSeed, "seed", 1, "PRNG seed, for reproducible runs")
	rootCmd.AddCommand(benchCmd)
}
