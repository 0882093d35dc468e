package sampler

// Pair is an ordered relationship between an element of the left pool and
// an element of the right pool.
type Pair[A, B comparable] struct {
	Left  A
	Right B
}

// SeenPairs records pairs already produced within one generation phase.
// It only grows.
type SeenPairs[A, B comparable] struct {
	pairs map[Pair[A, B]]struct{}
}

func NewSeenPairs[A, B comparable]() *SeenPairs[A, B] {
	return &SeenPairs[A, B]{pairs: make(map[Pair[A, B]]struct{})}
}

func (s *SeenPairs[A, B]) Contains(p Pair[A, B]) bool {
	_, ok := s.pairs[p]
	return ok
}

// Add inserts p and reports whether it was new.
func (s *SeenPairs[A, B]) Add(p Pair[A, B]) bool {
	if _, ok := s.pairs[p]; ok {
		return false
	}
	s.pairs[p] = struct{}{}
	return true
}

func (s *SeenPairs[A, B]) Len() int {
	return len(s.pairs)
}

func (s *SeenPairs[A, B]) Clone() *SeenPairs[A, B] {
	c := &SeenPairs[A, B]{pairs: make(map[Pair[A, B]]struct{}, len(s.pairs))}
	for p := range s.pairs {
		c.pairs[p] = struct{}{}
	}
	return c
}

// isSelf reports whether both sides hold the same value. Values of different
// dynamic types never match.
func isSelf[A, B comparable](left A, right B) bool {
	return any(left) == any(right)
}
