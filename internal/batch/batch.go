// Package batch runs a per-file transform over a set of inputs with a
// fixed-size worker pool. No file's failure aborts the batch; results are
// collected in input order and summarized by the caller.
package batch

import (
	"sync"
	"sync/atomic"
	"time"
)

// Result holds the outcome of processing one input file.
type Result struct {
	Name     string   // input file name
	Outputs  []string // files written
	Warnings []string // non-fatal diagnostics (skip-and-warn)
	Err      error    // fatal for this file only
}

// Func processes a single input file. It must be safe to call from
// multiple goroutines when workers > 1.
type Func func(name string) Result

// Progress receives periodic (processed, total) updates during a run.
type Progress func(processed, total int64)

// Run processes names with a pool of workers and returns one Result per
// input, in input order. workers below 1 runs strictly sequentially.
// progress may be nil.
func Run(names []string, workers int, fn Func, progress Progress) []Result {
	total := int64(len(names))
	results := make([]Result, len(names))

	if workers < 1 {
		workers = 1
	}

	var processed atomic.Int64

	done := make(chan struct{})
	if progress != nil {
		go func() {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					if p := processed.Load(); p > 0 {
						progress(p, total)
					}
				}
			}
		}()
	}

	indexes := make(chan int, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexes {
				results[idx] = fn(names[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range names {
		indexes <- i
	}
	close(indexes)

	wg.Wait()
	close(done)

	return results
}

// Succeeded counts results without a fatal error.
func Succeeded(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err == nil {
			n++
		}
	}
	return n
}
