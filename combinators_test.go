package asyncseq_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thinktainer/asyncseq"
)

func TestMapFunctorLaw(t *testing.T) {
	t.Parallel()

	xs := []int{1, 2, 3, 4}
	f := func(v int) string { return strconv.Itoa(v * v) }

	want := make([]string, len(xs))
	for i, v := range xs {
		want[i] = f(v)
	}

	got, err := asyncseq.ToSlice(context.Background(), asyncseq.Map(asyncseq.OfSlice(xs), f))
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestMapAsyncPullsAfterResult(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var pulls int
	s := counted(asyncseq.OfSlice([]int{1, 2, 3}), &pulls)

	_, err := asyncseq.ToSlice(context.Background(), asyncseq.MapAsync(s, func(_ context.Context, v int) (int, error) {
		if v == 2 {
			return 0, boom
		}
		return v, nil
	}))
	require.ErrorIs(t, err, boom)
	// The failing transform stops the drive before the third pull.
	require.Equal(t, 2, pulls)
}

func TestFilter(t *testing.T) {
	t.Parallel()

	s := asyncseq.Filter(asyncseq.OfSlice([]int{1, 2, 3, 4, 5, 6}), func(v int) bool {
		return v%2 == 0
	})

	got, err := asyncseq.ToSlice(context.Background(), s)
	require.NoError(t, err)
	require.Equal(t, []int{2, 4, 6}, got)
}

func TestChooseSkipsAbsentResults(t *testing.T) {
	t.Parallel()

	s := asyncseq.Choose(asyncseq.OfSlice([]int{1, 2, 3, 4}), func(v int) (string, bool) {
		if v%2 != 0 {
			return "", false
		}
		return strconv.Itoa(v), true
	})

	got, err := asyncseq.ToSlice(context.Background(), s)
	require.NoError(t, err)
	require.Equal(t, []string{"2", "4"}, got)
}

func TestScanYieldsIntermediateStates(t *testing.T) {
	t.Parallel()

	s := asyncseq.Scan(asyncseq.OfSlice([]int{1, 2, 3}), 0, func(acc, v int) int {
		return acc + v
	})

	got, err := asyncseq.ToSlice(context.Background(), s)
	require.NoError(t, err)
	require.Equal(t, []int{1, 3, 6}, got)
}

func TestFoldIsLastOfScan(t *testing.T) {
	t.Parallel()

	sum, err := asyncseq.Fold(context.Background(), asyncseq.OfSlice([]int{1, 2, 3}), 0, func(acc, v int) int {
		return acc + v
	})
	require.NoError(t, err)
	require.Equal(t, 6, sum)

	seed, err := asyncseq.Fold(context.Background(), asyncseq.Empty[int](), 42, func(acc, v int) int {
		return acc + v
	})
	require.NoError(t, err)
	require.Equal(t, 42, seed)
}

func TestIterDrivesForEffect(t *testing.T) {
	t.Parallel()

	var seen []int
	err := asyncseq.Iter(context.Background(), asyncseq.OfSlice([]int{1, 2, 3}), func(v int) {
		seen = append(seen, v)
	})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, seen)
}

func TestZipTruncatesAtShorter(t *testing.T) {
	t.Parallel()

	s := asyncseq.Zip(
		asyncseq.OfSlice([]int{1, 2, 3}),
		asyncseq.OfSlice([]int{10, 20, 30, 40, 50}),
	)

	got, err := asyncseq.ToSlice(context.Background(), s)
	require.NoError(t, err)
	require.Equal(t, []asyncseq.Pair[int, int]{
		{Fst: 1, Snd: 10},
		{Fst: 2, Snd: 20},
		{Fst: 3, Snd: 30},
	}, got)
}

func TestZipPropagatesFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	s := asyncseq.Zip(failWith[int](boom), asyncseq.OfSlice([]int{1}))

	_, err := asyncseq.ToSlice(context.Background(), s)
	require.ErrorIs(t, err, boom)
}

func TestTakeWhileStopsAtFirstFailingElement(t *testing.T) {
	t.Parallel()

	var pulls int
	s := asyncseq.TakeWhile(counted(asyncseq.OfSlice([]int{1, 2, 3, 4, 1}), &pulls), func(v int) bool {
		return v < 3
	})

	got, err := asyncseq.ToSlice(context.Background(), s)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, got)
	// The failing element is consumed, the ones after it never are.
	require.Equal(t, 3, pulls)
}

func TestSkipWhileYieldsEverythingAfterFirstFalse(t *testing.T) {
	t.Parallel()

	s := asyncseq.SkipWhile(asyncseq.OfSlice([]int{1, 2, 3, 1, 2}), func(v int) bool {
		return v < 3
	})

	got, err := asyncseq.ToSlice(context.Background(), s)
	require.NoError(t, err)
	require.Equal(t, []int{3, 1, 2}, got)
}

func TestTakeIdempotentBounding(t *testing.T) {
	t.Parallel()

	s := asyncseq.OfSlice([]int{1, 2, 3, 4, 5})

	a, err := asyncseq.ToSlice(context.Background(), asyncseq.Take(s, 2))
	require.NoError(t, err)
	b, err := asyncseq.ToSlice(context.Background(), asyncseq.Take(asyncseq.Take(s, 4), 2))
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestTakeDoesNotPullPastBound(t *testing.T) {
	t.Parallel()

	var pulls int
	s := asyncseq.Take(counted(asyncseq.OfSlice([]int{1, 2, 3, 4, 5}), &pulls), 2)

	got, err := asyncseq.ToSlice(context.Background(), s)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, got)
	require.Equal(t, 2, pulls)
}

func TestTakeThenSkipReconstructs(t *testing.T) {
	t.Parallel()

	xs := []int{1, 2, 3, 4, 5}
	s := asyncseq.OfSlice(xs)

	for n := 0; n <= len(xs)+1; n++ {
		head, err := asyncseq.ToSlice(context.Background(), asyncseq.Take(s, n))
		require.NoError(t, err)
		tail, err := asyncseq.ToSlice(context.Background(), asyncseq.Skip(s, n))
		require.NoError(t, err)
		require.Equal(t, xs, append(head, tail...), "n=%d", n)
	}
}

func TestSkipPastEndIsEmpty(t *testing.T) {
	t.Parallel()

	got, err := asyncseq.ToSlice(context.Background(), asyncseq.Skip(asyncseq.OfSlice([]int{1, 2}), 5))
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestPairwise(t *testing.T) {
	t.Parallel()

	got, err := asyncseq.ToSlice(context.Background(), asyncseq.Pairwise(asyncseq.OfSlice([]int{1, 2, 3})))
	require.NoError(t, err)
	require.Equal(t, []asyncseq.Pair[int, int]{
		{Fst: 1, Snd: 2},
		{Fst: 2, Snd: 3},
	}, got)

	for _, xs := range [][]int{nil, {1}} {
		got, err := asyncseq.ToSlice(context.Background(), asyncseq.Pairwise(asyncseq.OfSlice(xs)))
		require.NoError(t, err)
		require.Empty(t, got)
	}
}

func TestFirstOrDefault(t *testing.T) {
	t.Parallel()

	v, err := asyncseq.FirstOrDefault(context.Background(), asyncseq.Empty[int](), -1)
	require.NoError(t, err)
	require.Equal(t, -1, v)

	var pulls int
	v, err = asyncseq.FirstOrDefault(context.Background(), counted(asyncseq.OfSlice([]int{7, 8, 9}), &pulls), -1)
	require.NoError(t, err)
	require.Equal(t, 7, v)
	// The remainder is never driven.
	require.Equal(t, 1, pulls)
}

func TestLastOrDefault(t *testing.T) {
	t.Parallel()

	v, err := asyncseq.LastOrDefault(context.Background(), asyncseq.Empty[int](), -1)
	require.NoError(t, err)
	require.Equal(t, -1, v)

	v, err = asyncseq.LastOrDefault(context.Background(), asyncseq.OfSlice([]int{7, 8, 9}), -1)
	require.NoError(t, err)
	require.Equal(t, 9, v)
}

func TestCacheRunsEffectsOncePerNode(t *testing.T) {
	t.Parallel()

	var pulls int
	s := asyncseq.Cache(counted(asyncseq.OfSlice([]int{1, 2, 3}), &pulls))

	for range 3 {
		got, err := asyncseq.ToSlice(context.Background(), s)
		require.NoError(t, err)
		require.Equal(t, []int{1, 2, 3}, got)
	}
	require.Equal(t, 4, pulls)
}

func TestCacheReplaysFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var pulls int
	s := asyncseq.Cache(counted(asyncseq.Append(asyncseq.Singleton(1), failWith[int](boom)), &pulls))

	for range 2 {
		got, err := asyncseq.ToSlice(context.Background(), s)
		require.ErrorIs(t, err, boom)
		require.Equal(t, []int{1}, got)
	}
	require.Equal(t, 2, pulls)
}
