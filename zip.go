package asyncseq

import "context"

// A Pair holds two positionally paired values.
type Pair[A, B any] struct {
	Fst A
	Snd B
}

// Zip pairs the elements of s1 and s2 positionally.
//
// Each step pulls s1's next item as a background computation while awaiting
// s2's next item, then joins both before emitting, so s1 gets a head start
// but the pairing stays deterministic by position.
// The result ends as soon as either input ends, even if the other still has
// elements.
func Zip[A, B any](s1 Seq[A], s2 Seq[B]) Seq[Pair[A, B]] {
	return func(ctx context.Context) (*Node[Pair[A, B]], error) {
		type pulled struct {
			n   *Node[A]
			err error
		}
		first := make(chan pulled, 1)
		go func() {
			n, err := s1(ctx)
			first <- pulled{n, err}
		}()

		n2, err2 := s2(ctx)
		p1 := <-first

		switch {
		case p1.err != nil:
			return nil, p1.err
		case err2 != nil:
			return nil, err2
		case p1.n == nil || n2 == nil:
			return nil, nil
		}

		p := Pair[A, B]{Fst: p1.n.Value, Snd: n2.Value}
		return &Node[Pair[A, B]]{Value: p, Rest: Zip(p1.n.Rest, n2.Rest)}, nil
	}
}
