package observe

import (
	"context"
	"errors"
	"sync"

	"github.com/thinktainer/asyncseq"
	"github.com/thinktainer/asyncseq/dispatch"
)

// ErrClosed is the failure [Await] resolves to when the awaited source
// completes before producing any value.
// It is distinguishable from producer failures so that callers can treat
// "source closed" differently from "source errored"; check for it with
// [errors.Is].
var ErrClosed = errors.New("observe: source completed without a value")

// Await turns the next value notification of src into a one-shot suspending
// read.
//
// The read subscribes exactly once and releases the subscription exactly
// once: on the first notification of any kind, or, if the computation is
// cancelled through its context, before the cancellation is observed by
// the caller. Completion before any value resolves to [ErrClosed]; a
// failure notification propagates as the computation's failure.
//
// The read captures the execution context recorded on its context (see
// [dispatch.With]) at the moment it begins; a notification arriving
// anywhere else is redelivered there before the read settles.
// Do not block a [dispatch.Queue]'s own function on a read synchronized to
// the same queue: the queue cannot run the redelivery while it is blocked.
//
// When the event-producing action must be triggered by the caller, wrap
// the source with [Guard] so the trigger runs strictly after the
// subscription is established.
func Await[T any](src Observable[T]) asyncseq.Async[T] {
	return func(ctx context.Context) (T, error) {
		if d := dispatch.From(ctx); d != nil {
			src = Synchronize(d, src)
		}

		type settled struct {
			v   T
			err error
		}

		ch := make(chan settled, 1)
		var once sync.Once
		settle := func(s settled) {
			once.Do(func() { ch <- s })
		}

		stop := src.Subscribe(ObserverFuncs[T]{
			Next:      func(v T) { settle(settled{v: v}) },
			Error:     func(err error) { settle(settled{err: err}) },
			Completed: func() { settle(settled{err: ErrClosed}) },
		})

		var stopOnce sync.Once
		unsubscribe := func() { stopOnce.Do(stop) }

		select {
		case s := <-ch:
			unsubscribe()
			if s.err != nil {
				var zero T
				return zero, s.err
			}
			return s.v, nil
		case <-ctx.Done():
			unsubscribe()
			var zero T
			return zero, ctx.Err()
		}
	}
}

// Indexed tags a value with the index of the source that produced it.
type Indexed[T any] struct {
	Index int
	Value T
}

// AwaitAny resolves with the first value produced by any of srcs, tagged
// with the index of the producing source.
//
// The sources are merged, each value wrapped with its source index, and
// the merged source is awaited with [Await]; the first notification from
// any branch wins, and the losing branches stay subscribed until the
// merged subscription is released as a whole.
//
// AwaitAny accepts two to four sources and panics otherwise.
func AwaitAny[T any](srcs ...Observable[T]) asyncseq.Async[Indexed[T]] {
	if len(srcs) < 2 || len(srcs) > 4 {
		panic("observe: AwaitAny: want two to four sources")
	}

	tagged := make([]Observable[Indexed[T]], len(srcs))
	for i, src := range srcs {
		tagged[i] = Map(src, func(v T) Indexed[T] {
			return Indexed[T]{Index: i, Value: v}
		})
	}

	return Await(Merge(tagged...))
}

// Synchronize wraps src so that every notification is redelivered through
// d unless delivery is already happening there.
//
// The inline-versus-redispatch ruling is [dispatch.Resume]; the dispatcher
// active at delivery is taken to be d itself when d reports that it is
// currently dispatching, and unknown otherwise.
func Synchronize[T any](d dispatch.Dispatcher, src Observable[T]) Observable[T] {
	type dispatching interface {
		Dispatching() bool
	}

	active := func() dispatch.Dispatcher {
		if q, ok := d.(dispatching); ok && q.Dispatching() {
			return d
		}
		return nil
	}

	return SubscribeFunc[T](func(o Observer[T]) func() {
		return src.Subscribe(ObserverFuncs[T]{
			Next: func(v T) {
				dispatch.Resume(d, active(), func() { o.OnNext(v) })
			},
			Error: func(err error) {
				dispatch.Resume(d, active(), func() { o.OnError(err) })
			},
			Completed: func() {
				dispatch.Resume(d, active(), func() { o.OnCompleted() })
			},
		})
	})
}
