package ingest

import (
	"context"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/sagewood/corpus/source"
)

// prefetch loads source bytes ahead of the reconciliation loop so remote
// fetch latency overlaps. The loop itself stays sequential; prefetch only
// changes when the bytes arrive, not which document wins a path.
func (s *Synchronizer) prefetch(ctx context.Context, sources []source.Descriptor) func(int) ([]byte, error) {
	lazy := func(i int) ([]byte, error) {
		return sources[i].Load(ctx)
	}

	if s.prefetchWorkers <= 0 || len(sources) < 2 {
		return lazy
	}

	pool, err := ants.NewPool(s.prefetchWorkers)
	if err != nil {
		s.logger.Warn("prefetch pool unavailable, loading inline", "err", err)
		return lazy
	}
	defer pool.Release()

	type loaded struct {
		data []byte
		err  error
	}
	results := make([]loaded, len(sources))

	var wg sync.WaitGroup
	for i := range sources {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			results[i].data, results[i].err = sources[i].Load(ctx)
		}
		if err := pool.Submit(task); err != nil {
			// Run inline rather than losing the item.
			task()
		}
	}
	wg.Wait()

	return func(i int) ([]byte, error) {
		return results[i].data, results[i].err
	}
}
