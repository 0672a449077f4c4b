package renderer

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// RowFunc renders one row of the image. Rows never share pixels, so row
// functions may run concurrently without synchronization.
type RowFunc func(ctx context.Context, row int) (RenderStats, error)

// WorkerPool renders rows in parallel with a bounded number in flight
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a pool running up to numWorkers rows at once.
// Non-positive values mean one worker per CPU.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// NumWorkers returns the number of rows rendered concurrently
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// Run calls fn for rows 0..rows-1 and merges the returned stats. The first
// error cancels the context passed to the remaining rows and is returned.
func (wp *WorkerPool) Run(ctx context.Context, rows int, fn RowFunc) (RenderStats, error) {
	// Each row writes only its own slot.
	rowStats := make([]RenderStats, rows)

	if wp.numWorkers == 1 {
		for row := 0; row < rows; row++ {
			s, err := fn(ctx, row)
			if err != nil {
				return mergeRows(rowStats), err
			}
			rowStats[row] = s
		}
		return mergeRows(rowStats), nil
	}

	eg, egCtx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(wp.numWorkers))

	var acquireErr error
	for row := 0; row < rows; row++ {
		row := row

		if err := sem.Acquire(egCtx, 1); err != nil {
			acquireErr = fmt.Errorf("while acquiring worker semaphore: %w", err)
			break
		}

		eg.Go(func() error {
			defer sem.Release(1)
			s, err := fn(egCtx, row)
			if err != nil {
				return err
			}
			rowStats[row] = s
			return nil
		})
	}

	// A failed row cancels egCtx, which also makes Acquire fail; prefer
	// the row's error in that case.
	if err := eg.Wait(); err != nil {
		return mergeRows(rowStats), err
	}
	if acquireErr != nil {
		return mergeRows(rowStats), acquireErr
	}
	return mergeRows(rowStats), nil
}

func mergeRows(rowStats []RenderStats) RenderStats {
	var total RenderStats
	for _, s := range rowStats {
		total.Merge(s)
	}
	return total
}
