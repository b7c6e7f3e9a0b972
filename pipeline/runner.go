package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/xietoby/scantailor-advanced/pages"
)

// Runner executes per-page task chains over a worker pool. Each page gets
// its own independent chain; shared state lives in the stage stores, which
// serialize their own mutations.
type Runner struct {
	workers int
	log     *slog.Logger
}

// NewRunner creates a runner with the given parallelism. A nil logger
// falls back to slog.Default.
func NewRunner(workers int, log *slog.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = slog.Default()
	}
	return &Runner{workers: workers, log: log}
}

// Run processes every page in the sequence. For each page, build
// constructs the head of that page's task chain and load supplies its
// input data. The first error cancels the remaining work and is returned;
// pages already in flight finish their current stage.
func (r *Runner) Run(ctx context.Context, seq pages.Sequence, build func(pages.Info) Task, load func(pages.Info) (*PageData, error)) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan pages.Info)
	var wg sync.WaitGroup

	var mu sync.Mutex
	var firstErr error
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}

	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for info := range jobs {
				if ctx.Err() != nil {
					continue
				}
				r.log.Debug("processing page", "page", info.ID.String())
				data, err := load(info)
				if err != nil {
					fail(fmt.Errorf("load %s: %w", info.ID, err))
					continue
				}
				if err := build(info).Process(ctx, data); err != nil {
					fail(fmt.Errorf("process %s: %w", info.ID, err))
				}
			}
		}()
	}

	for _, info := range seq {
		select {
		case jobs <- info:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}
	close(jobs)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
