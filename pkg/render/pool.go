package render

import (
	"runtime"
	"sync"
)

// chunkSize is the number of consecutive indices handed to a worker at once.
const chunkSize = 256

// chunkTask describes a contiguous index range owned by a single worker.
type chunkTask struct {
	start, end int
}

// chunkResult carries per-chunk stats back to the collector.
type chunkResult struct {
	count int
	stats Stats
}

// parallelChunks runs fn over [0, n) split into contiguous chunks across a
// fixed pool of workers. Each chunk's indices are owned exclusively by the
// worker running it, so fn may write to pre-sized shared slices without
// locking. Per-chunk stats are merged by the collecting goroutine, which
// also reports progress, so fn itself never synchronizes.
func parallelChunks(n, numWorkers int, fn func(start, end int) Stats, progress func(done, total int)) Stats {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	numChunks := (n + chunkSize - 1) / chunkSize
	tasks := make(chan chunkTask, numChunks)
	results := make(chan chunkResult, numChunks)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range tasks {
				stats := fn(task.start, task.end)
				results <- chunkResult{count: task.end - task.start, stats: stats}
			}
		}()
	}

	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		tasks <- chunkTask{start: start, end: end}
	}
	close(tasks)

	go func() {
		wg.Wait()
		close(results)
	}()

	var total Stats
	done := 0
	for result := range results {
		total.merge(result.stats)
		done += result.count
		if progress != nil {
			progress(done, n)
		}
	}
	return total
}
