package automaton

import "sync"

// MinParallelCells is the smallest row for which SetWorkers has an effect.
// Below it the dispatch costs more than the cells.
const MinParallelCells = 4096

// minChunk is the fewest cells handed to one goroutine.
const minChunk = 1024

// parallelFor splits [0, n) into contiguous chunks of at least minChunk and
// runs fn over them on up to workers goroutines, returning once all are done.
func parallelFor(n, workers, minChunk int, fn func(start, end int)) {
	if workers <= 1 || n <= minChunk {
		fn(0, n)
		return
	}

	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}
