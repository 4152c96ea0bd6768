package asyncseq

import "context"

// The combinators below are pure compositions of the core constructors in
// seq.go; they introduce no new suspension primitive.
// Synchronous variants are defined in terms of their asynchronous
// counterparts.

// MapAsync transforms each element of s with f before yielding it.
// The next element of s is requested only after f's result is available.
func MapAsync[T, U any](s Seq[T], f func(ctx context.Context, v T) (U, error)) Seq[U] {
	return func(ctx context.Context) (*Node[U], error) {
		n, err := s(ctx)
		if err != nil {
			return nil, err
		}
		if n == nil {
			return nil, nil
		}
		v, err := f(ctx, n.Value)
		if err != nil {
			return nil, err
		}
		return &Node[U]{Value: v, Rest: MapAsync(n.Rest, f)}, nil
	}
}

// Map transforms each element of s with f before yielding it.
func Map[T, U any](s Seq[T], f func(v T) U) Seq[U] {
	return MapAsync(s, func(_ context.Context, v T) (U, error) {
		return f(v), nil
	})
}

// ChooseAsync combines filtering and mapping: f returns a projected value
// and whether it is present; absent results are skipped.
// f is evaluated once per source element, in order.
func ChooseAsync[T, U any](s Seq[T], f func(ctx context.Context, v T) (U, bool, error)) Seq[U] {
	return func(ctx context.Context) (*Node[U], error) {
		for {
			n, err := s(ctx)
			if err != nil {
				return nil, err
			}
			if n == nil {
				return nil, nil
			}
			v, ok, err := f(ctx, n.Value)
			if err != nil {
				return nil, err
			}
			if ok {
				return &Node[U]{Value: v, Rest: ChooseAsync(n.Rest, f)}, nil
			}
			s = n.Rest
		}
	}
}

// Choose combines filtering and mapping: f returns a projected value and
// whether it is present; absent results are skipped.
func Choose[T, U any](s Seq[T], f func(v T) (U, bool)) Seq[U] {
	return ChooseAsync(s, func(_ context.Context, v T) (U, bool, error) {
		u, ok := f(v)
		return u, ok, nil
	})
}

// FilterAsync yields only the elements of s for which pred is true.
// pred is evaluated once per source element, in order.
func FilterAsync[T any](s Seq[T], pred func(ctx context.Context, v T) (bool, error)) Seq[T] {
	return ChooseAsync(s, func(ctx context.Context, v T) (T, bool, error) {
		ok, err := pred(ctx, v)
		return v, ok, err
	})
}

// Filter yields only the elements of s for which pred is true.
func Filter[T any](s Seq[T], pred func(v T) bool) Seq[T] {
	return FilterAsync(s, func(_ context.Context, v T) (bool, error) {
		return pred(v), nil
	})
}

// ScanAsync folds f across s like [FoldAsync] but yields every intermediate
// accumulated value as its own element, in order.
// The seed itself is not yielded.
func ScanAsync[S, T any](s Seq[T], seed S, f func(ctx context.Context, acc S, v T) (S, error)) Seq[S] {
	return func(ctx context.Context) (*Node[S], error) {
		n, err := s(ctx)
		if err != nil {
			return nil, err
		}
		if n == nil {
			return nil, nil
		}
		acc, err := f(ctx, seed, n.Value)
		if err != nil {
			return nil, err
		}
		return &Node[S]{Value: acc, Rest: ScanAsync(n.Rest, acc, f)}, nil
	}
}

// Scan folds f across s like [Fold] but yields every intermediate
// accumulated value as its own element, in order.
func Scan[S, T any](s Seq[T], seed S, f func(acc S, v T) S) Seq[S] {
	return ScanAsync(s, seed, func(_ context.Context, acc S, v T) (S, error) {
		return f(acc, v), nil
	})
}

// FoldAsync sequentially accumulates a state value across all elements of s
// and resolves to the final state once s ends.
// It is the last element of [ScanAsync], or the seed if s is empty.
func FoldAsync[S, T any](ctx context.Context, s Seq[T], seed S, f func(ctx context.Context, acc S, v T) (S, error)) (S, error) {
	return LastOrDefault(ctx, ScanAsync(s, seed, f), seed)
}

// Fold sequentially accumulates a state value across all elements of s and
// resolves to the final state once s ends.
func Fold[S, T any](ctx context.Context, s Seq[T], seed S, f func(acc S, v T) S) (S, error) {
	return FoldAsync(ctx, s, seed, func(_ context.Context, acc S, v T) (S, error) {
		return f(acc, v), nil
	})
}

// IterAsync drives the whole of s purely for effect, applying f to each
// element, and resolves once s ends.
func IterAsync[T any](ctx context.Context, s Seq[T], f func(ctx context.Context, v T) error) error {
	for {
		n, err := s(ctx)
		if err != nil {
			return err
		}
		if n == nil {
			return nil
		}
		if err := f(ctx, n.Value); err != nil {
			return err
		}
		s = n.Rest
	}
}

// Iter drives the whole of s purely for effect, applying f to each element.
func Iter[T any](ctx context.Context, s Seq[T], f func(v T)) error {
	return IterAsync(ctx, s, func(_ context.Context, v T) error {
		f(v)
		return nil
	})
}

// TakeWhileAsync yields elements of s while pred holds.
// The first element for which pred is false is consumed from s but not
// yielded, and the sequence ends there; later elements are never inspected.
func TakeWhileAsync[T any](s Seq[T], pred func(ctx context.Context, v T) (bool, error)) Seq[T] {
	return func(ctx context.Context) (*Node[T], error) {
		n, err := s(ctx)
		if err != nil {
			return nil, err
		}
		if n == nil {
			return nil, nil
		}
		ok, err := pred(ctx, n.Value)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		return &Node[T]{Value: n.Value, Rest: TakeWhileAsync(n.Rest, pred)}, nil
	}
}

// TakeWhile yields elements of s while pred holds; see [TakeWhileAsync].
func TakeWhile[T any](s Seq[T], pred func(v T) bool) Seq[T] {
	return TakeWhileAsync(s, func(_ context.Context, v T) (bool, error) {
		return pred(v), nil
	})
}

// SkipWhileAsync discards elements of s while pred holds.
// Once pred is false for some element, that element and every remaining
// element are yielded unchanged, including any for which pred would again
// be true.
func SkipWhileAsync[T any](s Seq[T], pred func(ctx context.Context, v T) (bool, error)) Seq[T] {
	return func(ctx context.Context) (*Node[T], error) {
		for {
			n, err := s(ctx)
			if err != nil {
				return nil, err
			}
			if n == nil {
				return nil, nil
			}
			ok, err := pred(ctx, n.Value)
			if err != nil {
				return nil, err
			}
			if !ok {
				return n, nil
			}
			s = n.Rest
		}
	}
}

// SkipWhile discards elements of s while pred holds; see [SkipWhileAsync].
func SkipWhile[T any](s Seq[T], pred func(v T) bool) Seq[T] {
	return SkipWhileAsync(s, func(_ context.Context, v T) (bool, error) {
		return pred(v), nil
	})
}

// Take yields at most the first n elements of s, without pulling further
// once n have been produced.
func Take[T any](s Seq[T], n int) Seq[T] {
	return func(ctx context.Context) (*Node[T], error) {
		if n <= 0 {
			return nil, nil
		}
		nd, err := s(ctx)
		if err != nil || nd == nil {
			return nil, err
		}
		return &Node[T]{Value: nd.Value, Rest: Take(nd.Rest, n-1)}, nil
	}
}

// Skip discards the first n elements of s, then yields the rest unmodified.
// If s has fewer than n elements, the result is empty.
func Skip[T any](s Seq[T], n int) Seq[T] {
	return func(ctx context.Context) (*Node[T], error) {
		for n > 0 {
			nd, err := s(ctx)
			if err != nil || nd == nil {
				return nil, err
			}
			s = nd.Rest
			n--
		}
		return s(ctx)
	}
}

// Pairwise yields consecutive overlapping pairs of s.
// The output is empty for inputs of fewer than two elements.
func Pairwise[T any](s Seq[T]) Seq[Pair[T, T]] {
	return func(ctx context.Context) (*Node[Pair[T, T]], error) {
		n, err := s(ctx)
		if err != nil || n == nil {
			return nil, err
		}
		return pairwise(n.Value, n.Rest)(ctx)
	}
}

func pairwise[T any](prev T, s Seq[T]) Seq[Pair[T, T]] {
	return func(ctx context.Context) (*Node[Pair[T, T]], error) {
		n, err := s(ctx)
		if err != nil || n == nil {
			return nil, err
		}
		p := Pair[T, T]{Fst: prev, Snd: n.Value}
		return &Node[Pair[T, T]]{Value: p, Rest: pairwise(n.Value, n.Rest)}, nil
	}
}

// FirstOrDefault resolves to the first element of s, or def if s is empty,
// without driving the remainder.
func FirstOrDefault[T any](ctx context.Context, s Seq[T], def T) (T, error) {
	n, err := s(ctx)
	if err != nil {
		return def, err
	}
	if n == nil {
		return def, nil
	}
	return n.Value, nil
}

// LastOrDefault drives s to its end and resolves to the last element, or
// def if s is empty.
func LastOrDefault[T any](ctx context.Context, s Seq[T], def T) (T, error) {
	last := def
	for {
		n, err := s(ctx)
		if err != nil {
			return def, err
		}
		if n == nil {
			return last, nil
		}
		last = n.Value
		s = n.Rest
	}
}
