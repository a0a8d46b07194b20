package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// parallelMap applies fn to every element with at most workers goroutines.
// Results are index-addressed, so the output order matches the input order.
func parallelMap[T, R any](ctx context.Context, workers int, in []T, fn func(T) R) ([]R, error) {
	out := make([]R, len(in))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i := range in {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = fn(in[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// rowIndexes returns 0..n-1 for mapping over table rows.
func rowIndexes(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
