package sim

import (
	"context"
	"errors"
	"sync"
)

// Batch runs several independent models concurrently, one goroutine each.
// Runs share nothing, so a batch of latitudes or frost settings scales
// across cores.
type Batch struct {
	models  []*Model
	configs []Config
}

func NewBatch() *Batch {
	return &Batch{}
}

func (b *Batch) Add(m *Model, cfg Config) {
	b.models = append(b.models, m)
	b.configs = append(b.configs, cfg)
}

func (b *Batch) Len() int { return len(b.models) }

// Run executes every queued run to completion and joins their errors.
// Cancelling the context stops all runs at their next day boundary.
func (b *Batch) Run(ctx context.Context) error {
	errs := make([]error, len(b.models))

	var wg sync.WaitGroup
	for i := range b.models {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			errs[idx] = b.models[idx].Run(ctx, b.configs[idx])
		}(i)
	}
	wg.Wait()

	return errors.Join(errs...)
}
