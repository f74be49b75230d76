package changefeed

import (
	"context"
	"log/slog"
)

// MemoryFeed dispatches published events directly to its registry. It serves a
// single process.
type MemoryFeed struct {
	registry *Registry
}

func NewMemoryFeed(logger *slog.Logger) *MemoryFeed {
	return &MemoryFeed{registry: NewRegistry(logger)}
}

func (f *MemoryFeed) Publish(ctx context.Context, events ...Event) error {
	for _, e := range events {
		if err := ctx.Err(); err != nil {
			return err
		}
		f.registry.Dispatch(e)
	}
	return nil
}

func (f *MemoryFeed) Registry() *Registry { return f.registry }

func (f *MemoryFeed) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (f *MemoryFeed) Close() error { return nil }
