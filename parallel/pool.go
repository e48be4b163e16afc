// Package parallel distributes index ranges over a fixed pool of goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// workChunk represents a half-open range of indices for a worker to process.
type workChunk struct {
	start, end int
}

// Workers returns n, or GOMAXPROCS when n is not positive.
func Workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// Run calls fn over [0, n) split into chunks of chunkSize indices, using up
// to workers goroutines. Each index is covered by exactly one call. Calls
// may run concurrently and in any order; fn must only write state owned by
// its own range. Run returns once every chunk has been processed.
//
// With one worker, or a single chunk, everything runs on the calling goroutine.
func Run(n, workers, chunkSize int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if chunkSize < 1 {
		chunkSize = 1
	}
	numChunks := (n + chunkSize - 1) / chunkSize
	workers = Workers(workers)
	if workers > numChunks {
		workers = numChunks
	}

	if workers <= 1 {
		for start := 0; start < n; start += chunkSize {
			fn(start, min(start+chunkSize, n))
		}
		return
	}

	workChan := make(chan workChunk, numChunks)
	for start := 0; start < n; start += chunkSize {
		workChan <- workChunk{start: start, end: min(start+chunkSize, n)}
	}
	close(workChan)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for chunk := range workChan {
				fn(chunk.start, chunk.end)
			}
		}()
	}
	wg.Wait()
}
