package normalize

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// BatchRequest is one description/context pair of a batch.
type BatchRequest struct {
	Description string
	Context     string
}

// BatchResult carries either the attributes or the per-item error of
// one batch entry. Err is nil on success.
type BatchResult struct {
	Attributes Attributes
	Err        error
}

// NormalizeBatch processes requests with a bounded worker pool. The
// pool admits one concurrency window at a time: up to Workers calls
// run in parallel and a rate limiter paces successive windows to
// respect upstream throughput limits. One entry's failure is recorded
// in its slot and never aborts siblings; results keep request order.
func (n *Normalizer) NormalizeBatch(ctx context.Context, reqs []BatchRequest) []BatchResult {
	results := make([]BatchResult, len(reqs))
	if len(reqs) == 0 {
		return results
	}

	limiter := rate.NewLimiter(rate.Every(n.pace), n.workers)
	sem := make(chan struct{}, n.workers)
	var wg sync.WaitGroup

	for i, req := range reqs {
		if err := limiter.Wait(ctx); err != nil {
			// cancellation observed: stop launching, fail the rest
			for j := i; j < len(reqs); j++ {
				results[j] = BatchResult{Err: err}
			}
			break
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(slot int, r BatchRequest) {
			defer wg.Done()
			defer func() { <-sem }()
			attrs, err := n.Normalize(ctx, r.Description, r.Context)
			results[slot] = BatchResult{Attributes: attrs, Err: err}
		}(i, req)
	}

	wg.Wait()
	return results
}
