package source

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/asset-sync/pkg/util"
)

// ItemResult is the typed outcome of one per-item fetch. Exactly one of the
// states holds: data present, absent upstream (404), or failed.
type ItemResult struct {
	ID   string
	Data Record
	Err  error
}

// Found reports whether the item yielded data.
func (r ItemResult) Found() bool {
	return r.Err == nil && r.Data != nil
}

// Absent reports whether the item does not exist upstream. Absence is not an
// error; the caller continues with its pre-fetch data.
func (r ItemResult) Absent() bool {
	return r.Err == nil && r.Data == nil
}

// FetchFunc retrieves detail for one id.
type FetchFunc func(ctx context.Context, id string) (Record, error)

// FetchMany maps fn over ids with a bounded worker pool and a per-worker
// post-call delay as a crude rate limiter. The delay applies on success and
// failure alike, bounding aggregate request rate to roughly workers/delay.
// Results are collected as workers complete them; order is not guaranteed
// and downstream consumers operate on the completed set. A timeout or error
// on one item is recorded in its result and never fails the batch.
func (c *Client) FetchMany(ctx context.Context, entity string, ids []string, fn FetchFunc) []ItemResult {
	jobs := make(chan string)
	out := make(chan ItemResult)

	var wg sync.WaitGroup
	for i := 0; i < c.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				data, err := fn(ctx, id)
				switch {
				case err == nil:
					out <- ItemResult{ID: id, Data: data}
				case util.IsNotFound(err):
					out <- ItemResult{ID: id, Data: nil}
				default:
					out <- ItemResult{ID: id, Err: err}
				}
				if c.delay > 0 {
					select {
					case <-time.After(c.delay):
					case <-ctx.Done():
					}
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, id := range ids {
			select {
			case jobs <- id:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	results := make([]ItemResult, 0, len(ids))
	progress := 0
	for res := range out {
		if res.Err != nil {
			c.logger.Warn("item fetch failed",
				zap.String("entity", entity),
				zap.String("id", res.ID),
				zap.Error(res.Err))
		} else if res.Found() {
			c.metrics.RecordItems(entity, 1)
		}
		results = append(results, res)
		progress++
		if progress%50 == 0 {
			c.logger.Info("fetch progress",
				zap.String("entity", entity),
				zap.Int("done", progress),
				zap.Int("total", len(ids)))
		}
	}
	return results
}
