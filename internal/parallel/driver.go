// Package parallel implements the fork-join block driver shared by ECB,
// CTR, and GCM: partition a contiguous range of block indices into
// per-worker chunks, run a pure per-block function over each chunk
// concurrently, and join before returning.
//
// The worker-pool shape is adapted from absfs-encryptfs's
// parallelEncryptChunks/parallelDecryptChunks (parallel.go), restated here
// with golang.org/x/sync/errgroup driving the fan-out instead of a
// hand-rolled channel/WaitGroup pair, since errgroup already gives clean
// first-error propagation and cancellation across a worker pool.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// MinBlocksForParallel is the minimum block count below which the driver
// just runs sequentially in the caller's goroutine: spinning up workers
// for a handful of blocks costs more than it saves.
const MinBlocksForParallel = 4

// BlockFunc performs the work for block index i. Implementations must
// satisfy: no shared mutable state across indices, the value written for
// index i is a pure function of i, and the output regions written for
// distinct indices never overlap.
type BlockFunc func(i uint64) error

// Run executes fn for every block index in [0, nblocks), fanning out
// across at most min(workers, nblocks) goroutines when nblocks meets
// MinBlocksForParallel, and sequentially otherwise. workers <= 0 selects
// runtime.GOMAXPROCS(0). It returns the first error encountered, after all
// in-flight workers have finished their current chunk.
func Run(nblocks uint64, workers int, fn BlockFunc) error {
	if nblocks == 0 {
		return nil
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if uint64(workers) > nblocks {
		workers = int(nblocks)
	}

	if nblocks < MinBlocksForParallel || workers <= 1 {
		for i := uint64(0); i < nblocks; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	chunkSize := (nblocks + uint64(workers) - 1) / uint64(workers)

	g, _ := errgroup.WithContext(context.Background())
	for w := 0; w < workers; w++ {
		start := uint64(w) * chunkSize
		if start >= nblocks {
			break
		}
		end := start + chunkSize
		if end > nblocks {
			end = nblocks
		}

		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := fn(i); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return g.Wait()
}
