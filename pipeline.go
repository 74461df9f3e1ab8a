package pinhole

import "sync"

// task runs fn over [0, size) split in one contiguous chunk per worker and
// returns once every chunk is done
func task(workersCount int, size int, fn func(start, end int)) {
	if workersCount <= 1 || size <= workersCount {
		fn(0, size)
		return
	}

	var wg sync.WaitGroup
	chunkSize := (size + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		start := workerID * chunkSize
		end := min((workerID+1)*chunkSize, size)
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}
