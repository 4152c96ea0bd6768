package asyncseq

import (
	"context"
	"sync"
)

// Cache returns a [Seq] that drives s at most once per node and replays the
// resolved steps to every consumer.
// It is the explicit opt-out from recipe semantics: the effects of s run
// the first time each node is driven and never again, and failures are
// replayed the same way values are.
//
// The context of whichever consumer drives a node first is the one the
// underlying recipe observes for that node.
// Safe for concurrent consumers.
func Cache[T any](s Seq[T]) Seq[T] {
	var (
		once sync.Once
		n    *Node[T]
		err  error
	)
	return func(ctx context.Context) (*Node[T], error) {
		once.Do(func() {
			n, err = s(ctx)
			if n != nil {
				n = &Node[T]{Value: n.Value, Rest: Cache(n.Rest)}
			}
		})
		return n, err
	}
}
