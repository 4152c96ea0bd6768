package observe

// Kind discriminates the cases of a [Notification].
type Kind int8

const (
	// KindValue marks a produced value.
	KindValue Kind = iota
	// KindFailure marks a terminal failure.
	KindFailure
	// KindCompleted marks termination without a value.
	KindCompleted
)

// A Notification is the tagged union over push-source events: a produced
// value, a terminal failure, or completion.
type Notification[T any] struct {
	Kind  Kind
	Value T     // valid when Kind is KindValue
	Err   error // valid when Kind is KindFailure
}

// ValueOf returns a value notification.
func ValueOf[T any](v T) Notification[T] {
	return Notification[T]{Kind: KindValue, Value: v}
}

// FailureOf returns a terminal failure notification.
func FailureOf[T any](err error) Notification[T] {
	return Notification[T]{Kind: KindFailure, Err: err}
}

// CompletedOf returns a completion notification.
func CompletedOf[T any]() Notification[T] {
	return Notification[T]{Kind: KindCompleted}
}

// Materialize wraps src so that its observer only ever sees notifications
// delivered through the value channel: every event of the three-channel
// observer protocol arrives as a [Notification] via OnNext.
// The returned source completes immediately after forwarding a terminal
// notification.
func Materialize[T any](src Observable[T]) Observable[Notification[T]] {
	return SubscribeFunc[Notification[T]](func(o Observer[Notification[T]]) func() {
		return src.Subscribe(ObserverFuncs[T]{
			Next: func(v T) {
				o.OnNext(ValueOf(v))
			},
			Error: func(err error) {
				o.OnNext(FailureOf[T](err))
				o.OnCompleted()
			},
			Completed: func() {
				o.OnNext(CompletedOf[T]())
				o.OnCompleted()
			},
		})
	})
}
