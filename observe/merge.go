package observe

import "sync"

// Merge combines srcs into one source.
//
// Values from every branch pass through as they arrive.
// The merged source completes only when every branch has completed; the
// first failure from any branch is terminal.
// The returned stop function releases every branch subscription; no branch
// is released early on its own.
func Merge[T any](srcs ...Observable[T]) Observable[T] {
	return SubscribeFunc[T](func(o Observer[T]) func() {
		var (
			mu   sync.Mutex
			left = len(srcs) // branches still to complete
			done bool
		)

		settled := func() bool {
			mu.Lock()
			defer mu.Unlock()
			return done
		}

		forward := ObserverFuncs[T]{
			Next: func(v T) {
				if !settled() {
					o.OnNext(v)
				}
			},
			Error: func(err error) {
				mu.Lock()
				fire := !done
				done = true
				mu.Unlock()
				if fire {
					o.OnError(err)
				}
			},
			Completed: func() {
				mu.Lock()
				left--
				fire := left == 0 && !done
				if fire {
					done = true
				}
				mu.Unlock()
				if fire {
					o.OnCompleted()
				}
			},
		}

		if len(srcs) == 0 {
			o.OnCompleted()
			return func() {}
		}

		stops := make([]func(), len(srcs))
		for i, src := range srcs {
			stops[i] = src.Subscribe(forward)
		}

		var once sync.Once
		return func() {
			once.Do(func() {
				for _, stop := range stops {
					stop()
				}
			})
		}
	})
}
