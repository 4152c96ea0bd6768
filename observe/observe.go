// Package observe bridges push-based event sources into suspendable reads.
//
// An [Observable] is any entity exposing subscribe/unsubscribe with an
// observer receiving zero or more values followed by at most one terminal
// notification. [Await] turns "the next value from a source" into a single
// suspending read with exactly-once subscription and release; [Guard] closes
// the race between triggering an event and listening for it; [Synchronize]
// pins delivery to an execution context.
package observe

// An Observer receives push notifications from an [Observable]: zero or
// more values through OnNext, then at most one terminal notification
// through OnError or OnCompleted.
type Observer[T any] interface {
	OnNext(v T)
	OnError(err error)
	OnCompleted()
}

// An Observable is a push-based event source.
//
// Subscribe registers o and returns a stop function owned by the
// subscriber; it must be called exactly once to stop receiving
// notifications and free whatever the source allocated for the
// subscription.
type Observable[T any] interface {
	Subscribe(o Observer[T]) (stop func())
}

// ObserverFuncs adapts plain functions to the [Observer] interface.
// A nil function ignores its notification.
type ObserverFuncs[T any] struct {
	Next      func(v T)
	Error     func(err error)
	Completed func()
}

func (o ObserverFuncs[T]) OnNext(v T) {
	if o.Next != nil {
		o.Next(v)
	}
}

func (o ObserverFuncs[T]) OnError(err error) {
	if o.Error != nil {
		o.Error(err)
	}
}

func (o ObserverFuncs[T]) OnCompleted() {
	if o.Completed != nil {
		o.Completed()
	}
}

// A SubscribeFunc is a func that implements the [Observable] interface.
type SubscribeFunc[T any] func(o Observer[T]) (stop func())

// Subscribe implements the [Observable] interface.
func (f SubscribeFunc[T]) Subscribe(o Observer[T]) (stop func()) { return f(o) }

// Map returns a source that transforms every value of src with f.
// Terminal notifications pass through unchanged.
func Map[T, U any](src Observable[T], f func(v T) U) Observable[U] {
	return SubscribeFunc[U](func(o Observer[U]) func() {
		return src.Subscribe(ObserverFuncs[T]{
			Next:      func(v T) { o.OnNext(f(v)) },
			Error:     o.OnError,
			Completed: o.OnCompleted,
		})
	})
}

// Guard returns a source identical to src except that action runs once,
// synchronously, immediately after each new subscription is registered.
//
// It exists to defer side-effecting triggers until a listener is guaranteed
// to be attached: a caller that must issue the request producing the very
// event it wants to await wraps the source with Guard and issues the
// request from action.
func Guard[T any](action func(), src Observable[T]) Observable[T] {
	return SubscribeFunc[T](func(o Observer[T]) func() {
		stop := src.Subscribe(o)
		action()
		return stop
	})
}
