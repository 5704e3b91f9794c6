package analyzer

import (
	"runtime"
	"sync"

	"github.com/sourcegraph/conc/pool"
)

// ProgressFunc is called after each input is processed.
type ProgressFunc func()

// RunAll analyzes independent inputs in parallel. Each input's tree stays on
// a single worker for the whole pipeline, so no tree is shared across
// goroutines mid-flight. Results keep the order of the inputs.
func RunAll(p *Pipeline, inputs []Input, maxWorkers int, onProgress ProgressFunc) []*Result {
	if len(inputs) == 0 {
		return nil
	}
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}

	results := make([]*Result, len(inputs))
	var mu sync.Mutex

	wp := pool.New().WithMaxGoroutines(maxWorkers)
	for i, in := range inputs {
		wp.Go(func() {
			result := p.Run(in)

			mu.Lock()
			results[i] = result
			mu.Unlock()

			if onProgress != nil {
				onProgress()
			}
		})
	}
	wp.Wait()

	return results
}
