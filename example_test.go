package asyncseq_test

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/thinktainer/asyncseq"
)

func Example() {
	ctx := context.Background()

	// A sequence is a recipe; nothing below runs until it is driven.
	evens := asyncseq.Filter(asyncseq.OfSlice([]int{1, 2, 3, 4, 5, 6}), func(v int) bool {
		return v%2 == 0
	})
	squares := asyncseq.Map(evens, func(v int) int { return v * v })

	_ = asyncseq.Iter(ctx, squares, func(v int) {
		fmt.Println(v)
	})

	// Output:
	// 4
	// 16
	// 36
}

func ExampleBind() {
	ctx := context.Background()

	// Bind suspends on an intermediate computation, then continues the
	// sequence with its result.
	fetch := func(name string) asyncseq.Async[string] {
		return func(context.Context) (string, error) {
			return strings.ToUpper(name), nil
		}
	}

	s := asyncseq.Collect(asyncseq.OfSlice([]string{"ada", "grace"}), func(name string) asyncseq.Seq[string] {
		return asyncseq.Bind(fetch(name), asyncseq.Singleton[string])
	})

	names, _ := asyncseq.ToSlice(ctx, s)
	fmt.Println(names)

	// Output:
	// [ADA GRACE]
}

func ExampleTryWith() {
	ctx := context.Background()

	failing := asyncseq.Append(
		asyncseq.OfSlice([]int{1, 2}),
		func(context.Context) (*asyncseq.Node[int], error) {
			return nil, errors.New("producer broke")
		},
	)

	recovered := asyncseq.TryWith(failing, func(err error) asyncseq.Seq[int] {
		fmt.Println("handled:", err)
		return asyncseq.Singleton(-1)
	})

	xs, _ := asyncseq.ToSlice(ctx, recovered)
	fmt.Println(xs)

	// Output:
	// handled: producer broke
	// [1 2 -1]
}
