package asyncseq

import (
	"context"
	"fmt"
	"runtime/debug"
)

// A PanicError carries a panic raised by producer code while a sequence was
// being driven inside [TryWith], [TryFinally] or [Using], along with a stack
// trace captured by [runtime/debug.Stack] at the panic site.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("asyncseq: panic: %v\n\n%s", e.Value, e.Stack)
}

// Unwrap returns the panic value when it is an error, nil otherwise.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// A DisposeError reports a failure raised by a compensation action while
// the sequence itself terminated normally.
// When a producer failure is already in flight, the compensation failure is
// discarded and the producer failure propagates instead.
type DisposeError struct {
	Err error
}

func (e *DisposeError) Error() string {
	return "asyncseq: dispose: " + e.Err.Error()
}

func (e *DisposeError) Unwrap() error { return e.Err }

// drive resolves one step of s, converting a panic in producer code into
// a *PanicError failure.
func drive[T any](ctx context.Context, s Seq[T]) (n *Node[T], err error) {
	defer func() {
		if v := recover(); v != nil {
			n, err = nil, &PanicError{Value: v, Stack: debug.Stack()}
		}
	}()
	return s(ctx)
}

// dispose runs a compensation action, converting a panic into an error.
func dispose(fin func() error) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &PanicError{Value: v, Stack: debug.Stack()}
		}
	}()
	return fin()
}
