// Package pool runs the same job on many files with a fixed number of
// goroutines.
//
// One goroutine sends filenames down a channel, nWorker goroutines
// read from it and send results back on a second channel. Nothing is
// shared between files, apart from what the job itself chooses to
// share. After the first error, no more names are handed out, the
// workers finish what they are doing and the error is returned.
package pool

import (
	"runtime"
	"sync"
)

// A fileRes carries the result for one file and where it goes.
type fileRes[T any] struct {
	ndx int
	val T
	err error
}

// NWorker is the default number of workers.
func NWorker() int { return runtime.NumCPU() }

// nextName sends the index of each name down nmChan until it runs out
// or stop is closed.
func nextName(nmChan chan<- int, n int, stop <-chan struct{}) {
	defer close(nmChan)
	for i := 0; i < n; i++ {
		select {
		case <-stop:
			return
		default:
		}
		select {
		case nmChan <- i:
		case <-stop:
			return
		}
	}
}

// Map calls fn on every name, using nWorker goroutines, and returns
// the results in the same order as names. If anything fails, the error
// for the earliest failing name is returned.
func Map[T any](names []string, nWorker int, fn func(name string) (T, error)) ([]T, error) {
	if nWorker < 1 {
		nWorker = NWorker()
	}
	nWorker = min(nWorker, max(len(names), 1))

	nmChan := make(chan int)
	rsltChan := make(chan fileRes[T])
	stop := make(chan struct{})
	var once sync.Once
	go nextName(nmChan, len(names), stop)

	var wg sync.WaitGroup
	for i := 0; i < nWorker; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ndx := range nmChan {
				val, err := fn(names[ndx])
				if err != nil {
					once.Do(func() { close(stop) })
				}
				rsltChan <- fileRes[T]{ndx, val, err}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(rsltChan)
	}()

	vals := make([]T, len(names))
	firstErr := -1
	var err error
	for r := range rsltChan {
		vals[r.ndx] = r.val
		if r.err != nil && (firstErr < 0 || r.ndx < firstErr) {
			firstErr, err = r.ndx, r.err
		}
	}
	if err != nil {
		return nil, err
	}
	return vals, nil
}

// Each is Map for jobs that only return an error.
func Each(names []string, nWorker int, fn func(name string) error) error {
	_, err := Map(names, nWorker, func(name string) (struct{}, error) {
		return struct{}{}, fn(name)
	})
	return err
}

// Counter is a thread safe tally that workers can add to.
type Counter struct {
	mu sync.Mutex
	n  map[string]int
}

// Add adds d to the count for key.
func (c *Counter) Add(key string, d int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.n == nil {
		c.n = make(map[string]int)
	}
	c.n[key] += d
}

// Get returns the count for key.
func (c *Counter) Get(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n[key]
}
