package asyncseq

import "context"

// An Async is a suspending computation: a value that is computed by running
// possibly-blocking steps and eventually yields exactly one result or fails.
//
// Driving an Async is calling it.
// Blocking channel operations inside it are its suspension points.
// The context carries cancellation and, for computations produced by
// the observe subpackage, the ambient execution context.
type Async[T any] func(ctx context.Context) (T, error)

// Value returns an [Async] that resolves immediately to v.
func Value[T any](v T) Async[T] {
	return func(context.Context) (T, error) {
		return v, nil
	}
}

// Fail returns an [Async] that fails immediately with err.
func Fail[T any](err error) Async[T] {
	return func(context.Context) (T, error) {
		var zero T
		return zero, err
	}
}
