// Package fanout bridges borrow guards to golang.org/x/sync/errgroup:
// it runs a fixed number of workers, each holding its own Handle on the
// guarded value, and guarantees every handle is released when the group
// finishes. It enables errgroup-style worker pools over a borrowed value
// without pulling errgroup into the core library.
package fanout

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/NetPo4ki/go-borrow/borrow"
)

// Do starts n workers under an errgroup bound to ctx. Each worker gets
// its own handle on g's value and runs fn with the group context. Every
// handle is released when its worker returns, error or not, so a Close
// on g after Do returns never blocks on fanout workers. Do returns the
// first non-nil worker error.
func Do[T any](ctx context.Context, g *borrow.Guard[T], n int, fn func(ctx context.Context, v T) error) error {
	if n <= 0 || fn == nil {
		return nil
	}
	eg, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		h := g.Get()
		eg.Go(func() error {
			defer h.Release()
			return fn(ctx, h.Value())
		})
	}
	return eg.Wait()
}
