package asyncseq

import (
	"context"
	"io"
	"iter"
	"reflect"
	"slices"
)

// A Seq is a lazy, pull-based asynchronous sequence.
//
// Driving a Seq resolves one step: either the end of the sequence, reported
// as a nil [*Node], or one produced value plus a continuation sequence
// representing the rest.
//
// A Seq value is a recipe. Each drive may perform side effects and nothing
// is memoized; redriving the same value re-executes its effects.
// A Seq holds no external resources itself; resource ownership is managed
// explicitly with [Using].
type Seq[T any] func(ctx context.Context) (*Node[T], error)

// A Node is one produced element of a [Seq] plus the rest of the sequence.
// A nil *Node marks the end.
type Node[T any] struct {
	Value T
	Rest  Seq[T]
}

// Empty returns a [Seq] that immediately ends.
func Empty[T any]() Seq[T] {
	return func(context.Context) (*Node[T], error) {
		return nil, nil
	}
}

// Singleton returns a [Seq] that yields v and then ends.
func Singleton[T any](v T) Seq[T] {
	return func(context.Context) (*Node[T], error) {
		return &Node[T]{Value: v, Rest: Empty[T]()}, nil
	}
}

// Delay returns a [Seq] that, on each drive, obtains a sequence from f and
// drives it. The call to f is deferred until the sequence is driven.
func Delay[T any](f func() Seq[T]) Seq[T] {
	return func(ctx context.Context) (*Node[T], error) {
		return f()(ctx)
	}
}

// Append returns a [Seq] that yields every element of s1, then every element
// of s2. Side effects of s2 do not begin until s1 has ended.
func Append[T any](s1, s2 Seq[T]) Seq[T] {
	return func(ctx context.Context) (*Node[T], error) {
		n, err := s1(ctx)
		if err != nil {
			return nil, err
		}
		if n == nil {
			return s2(ctx)
		}
		return &Node[T]{Value: n.Value, Rest: Append(n.Rest, s2)}, nil
	}
}

// Collect is the monadic bind over sequences: for every element h of s, it
// drives the sequence f(h) to its end before advancing s.
// The overall order is depth-first, left-to-right.
func Collect[T, U any](s Seq[T], f func(T) Seq[U]) Seq[U] {
	return func(ctx context.Context) (*Node[U], error) {
		n, err := s(ctx)
		if err != nil {
			return nil, err
		}
		if n == nil {
			return nil, nil
		}
		return Append(f(n.Value), Collect(n.Rest, f))(ctx)
	}
}

// Bind returns a [Seq] that first resolves the intermediate computation a,
// then continues as f applied to its result.
// This is the primary suspension point when building sequences.
func Bind[T, U any](a Async[T], f func(T) Seq[U]) Seq[U] {
	return func(ctx context.Context) (*Node[U], error) {
		v, err := a(ctx)
		if err != nil {
			return nil, err
		}
		return f(v)(ctx)
	}
}

// Concat flattens a sequence of sequences, yielding the elements of each
// inner sequence in order.
func Concat[T any](ss Seq[Seq[T]]) Seq[T] {
	return Collect(ss, func(s Seq[T]) Seq[T] { return s })
}

// OfSlice wraps an already-available slice as a [Seq] that yields each
// element in order without incurring real suspension.
func OfSlice[T any](xs []T) Seq[T] {
	return func(context.Context) (*Node[T], error) {
		if len(xs) == 0 {
			return nil, nil
		}
		return &Node[T]{Value: xs[0], Rest: OfSlice(xs[1:])}, nil
	}
}

// OfSeq wraps a finite iterator as a [Seq].
// The iterator is ranged over when the head of the sequence is first driven;
// redriving ranges over it again.
func OfSeq[T any](seq iter.Seq[T]) Seq[T] {
	return Delay(func() Seq[T] {
		return OfSlice(slices.Collect(seq))
	})
}

// ToSlice drives s to its end and returns every yielded element in order.
// Elements yielded before a failure are returned along with the failure.
func ToSlice[T any](ctx context.Context, s Seq[T]) ([]T, error) {
	var xs []T
	for {
		n, err := s(ctx)
		if err != nil {
			return xs, err
		}
		if n == nil {
			return xs, nil
		}
		xs = append(xs, n.Value)
		s = n.Rest
	}
}

// TryWith returns a [Seq] that drives s until its end, a value, or
// a failure. On failure, h is invoked with it and the sequence h returns is
// spliced in at the failure point. Values observed before the failure are
// still yielded.
//
// A panic in producer code is captured as a [*PanicError] and handled like
// any other failure.
func TryWith[T any](s Seq[T], h func(error) Seq[T]) Seq[T] {
	return func(ctx context.Context) (*Node[T], error) {
		n, err := drive(ctx, s)
		if err != nil {
			return h(err)(ctx)
		}
		if n == nil {
			return nil, nil
		}
		return &Node[T]{Value: n.Value, Rest: TryWith(n.Rest, h)}, nil
	}
}

// TryFinally returns a [Seq] identical to s except that fin runs exactly
// once when s ends or fails, before any failure propagates.
//
// A failure returned by fin surfaces as a [*DisposeError], unless a producer
// failure is already in flight; the producer failure is the one the caller
// observes, but fin still runs.
//
// If the consumer abandons the sequence without driving it to its end, fin
// does not run; bound resources should be scoped with [Using] and driven to
// completion.
func TryFinally[T any](s Seq[T], fin func() error) Seq[T] {
	return func(ctx context.Context) (*Node[T], error) {
		n, err := drive(ctx, s)
		if err != nil {
			dispose(fin)
			return nil, err
		}
		if n == nil {
			if ferr := dispose(fin); ferr != nil {
				return nil, &DisposeError{Err: ferr}
			}
			return nil, nil
		}
		return &Node[T]{Value: n.Value, Rest: TryFinally(n.Rest, fin)}, nil
	}
}

// Using binds the resource res, runs body to produce a sequence that may
// yield many elements, and releases res with [TryFinally] semantics
// regardless of how the body terminates.
// The release is skipped only if the resource reference is absent; a nil
// value of a pointer-like type counts as absent.
func Using[R io.Closer, T any](res R, body func(R) Seq[T]) Seq[T] {
	return TryFinally(
		Delay(func() Seq[T] { return body(res) }),
		func() error {
			if c := io.Closer(res); c != nil && !absent(c) {
				return c.Close()
			}
			return nil
		},
	)
}

// absent reports whether c wraps a nil value of a nilable type.
func absent(c io.Closer) bool {
	switch v := reflect.ValueOf(c); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice:
		return v.IsNil()
	}
	return false
}
