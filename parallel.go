package asyncseq

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// MapParallel transforms the elements of s with f, running up to limit
// applications of f concurrently while still emitting results in source
// order.
// It is the one combinator that trades the strict pull-serial regime for
// throughput; s itself is still pulled serially, only f runs concurrently.
//
// A failure of s or of any application of f ends the sequence with that
// failure. Panics if limit is less than 1.
func MapParallel[T, U any](s Seq[T], limit int, f func(ctx context.Context, v T) (U, error)) Seq[U] {
	if limit < 1 {
		panic("asyncseq: MapParallel: limit must be at least 1")
	}

	sem := semaphore.NewWeighted(int64(limit))

	type result struct {
		v   U
		err error
	}

	// launch starts one application of f; the result channel is buffered so
	// an abandoned application neither blocks nor leaks.
	launch := func(ctx context.Context, v T) chan result {
		ch := make(chan result, 1)
		go func() {
			defer sem.Release(1)
			u, err := f(ctx, v)
			ch <- result{u, err}
		}()
		return ch
	}

	// run threads the not-yet-pulled remainder of s (nil once exhausted) and
	// the FIFO window of in-flight applications through the recursion.
	var run func(s Seq[T], q []chan result) Seq[U]
	run = func(s Seq[T], q []chan result) Seq[U] {
		return func(ctx context.Context) (*Node[U], error) {
			if len(q) == 0 {
				if s == nil {
					return nil, nil
				}
				if err := sem.Acquire(ctx, 1); err != nil {
					return nil, err
				}
				n, err := s(ctx)
				if err != nil || n == nil {
					sem.Release(1)
					return nil, err
				}
				q = append(q, launch(ctx, n.Value))
				s = n.Rest
			}

			// Start as many further applications as the semaphore allows.
			for s != nil && sem.TryAcquire(1) {
				n, err := s(ctx)
				if err != nil {
					sem.Release(1)
					return nil, err
				}
				if n == nil {
					sem.Release(1)
					s = nil
					break
				}
				q = append(q, launch(ctx, n.Value))
				s = n.Rest
			}

			// Put the settled result back in its slot so that a retained
			// node can be driven again.
			r := <-q[0]
			q[0] <- r
			if r.err != nil {
				return nil, r.err
			}
			return &Node[U]{Value: r.v, Rest: run(s, q[1:])}, nil
		}
	}

	return run(s, nil)
}

// IterParallel drives the whole of s purely for effect, applying f to each
// element with up to limit applications running concurrently, and resolves
// once every application has settled.
// The first failure cancels the remaining applications' context and is
// returned. Panics if limit is less than 1.
func IterParallel[T any](ctx context.Context, s Seq[T], limit int, f func(ctx context.Context, v T) error) error {
	if limit < 1 {
		panic("asyncseq: IterParallel: limit must be at least 1")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for {
		n, err := s(gctx)
		if err != nil {
			if werr := g.Wait(); werr != nil {
				return werr
			}
			return err
		}
		if n == nil {
			break
		}
		v := n.Value
		g.Go(func() error { return f(gctx, v) })
		if gctx.Err() != nil {
			break
		}
		s = n.Rest
	}

	return g.Wait()
}
