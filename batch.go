package sicontent

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"
)

// DefaultConcurrency bounds UploadAll when no limit is given.
const DefaultConcurrency = 4

// Item is one package of a batch upload.
type Item struct {
	Key  PackageKey
	Data []byte
}

// BatchProgressFunc receives progress of the item at index i.
type BatchProgressFunc func(i int, sent, total int64)

// UploadAll runs UploadIfNotExists on s for every item with at most
// concurrency uploads in flight. Results are in item order. The first
// failure cancels the remaining items and is returned.
func UploadAll(ctx context.Context, s Store, items []Item, concurrency int, onProgress BatchProgressFunc) ([]UploadResult, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	results := make([]UploadResult, len(items))

	p := pool.New().WithMaxGoroutines(concurrency).WithContext(ctx).WithCancelOnError().WithFirstError()
	for i, item := range items {
		i, item := i, item
		p.Go(func(ctx context.Context) error {
			var fn ProgressFunc
			if onProgress != nil {
				fn = func(sent, total int64) { onProgress(i, sent, total) }
			}
			res, err := s.UploadIfNotExists(ctx, item.Key, item.Data, fn)
			if err != nil {
				return fmt.Errorf("%s: %w", item.Key.Name, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
