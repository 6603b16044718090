package generator

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"laserbench/internal/types"
)

// ProgressReport is emitted while a batch runs.
type ProgressReport struct {
	Phase     string
	Progress  float64
	Message   string
	Completed bool
}

// GenerateBatch produces count puzzles of the given size class concurrently.
// Each worker owns a generator with its own random source, so runs share no
// mutable state. Progress reports are sent on progress when it is non-nil.
func GenerateBatch(sizeClass string, count int, progress chan<- ProgressReport) ([]*types.Puzzle, error) {
	if _, err := ConfigFor(sizeClass); err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, fmt.Errorf("batch count %d must be positive", count)
	}

	workerCount := runtime.NumCPU()
	if workerCount > count {
		workerCount = count
	}

	jobs := make(chan struct{}, count)
	for i := 0; i < count; i++ {
		jobs <- struct{}{}
	}
	close(jobs)

	results := make(chan *types.Puzzle, count)
	errs := make(chan error, workerCount)
	var wg sync.WaitGroup
	var completed int64

	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			gen, err := NewClassicGenerator(sizeClass)
			if err != nil {
				errs <- err
				return
			}
			gen.SetSeed(time.Now().UnixNano() + int64(workerID))

			for range jobs {
				puzzle, err := gen.Generate()
				if err != nil {
					errs <- err
					return
				}
				results <- puzzle
				done := atomic.AddInt64(&completed, 1)
				if progress != nil {
					progress <- ProgressReport{
						Phase:     "generation",
						Progress:  float64(done) / float64(count),
						Message:   fmt.Sprintf("Generated puzzle %d/%d", done, count),
						Completed: done == int64(count),
					}
				}
			}
		}(i)
	}

	go func() {
		wg.Wait()
		close(results)
		close(errs)
	}()

	puzzles := make([]*types.Puzzle, 0, count)
	for p := range results {
		puzzles = append(puzzles, p)
	}
	if err := <-errs; err != nil {
		return nil, err
	}
	return puzzles, nil
}
