// Package sampler draws unique relationship pairs from identifier pools.
//
// A Sampler picks the left element uniformly from its left pool and the right
// element uniformly from its right pool, rejecting pairs it already produced
// (and, with ForbidSelf, pairs whose two elements are equal). Retries are
// bounded: once the bound is hit the sampler enumerates the remaining valid
// pairs, shuffles them and drains that list, so it always terminates. Asking
// for more pairs than exist yields an *ExhaustedPoolError.
package sampler

import (
	"math/rand"
)

const (
	// DefaultAttemptFactor scales the retry bound of one Next call. The bound
	// is factor * ceil(|left x right| / remaining).
	DefaultAttemptFactor = 64

	// MaxAttemptFactor bounds the factor so the retry bound cannot overflow.
	MaxAttemptFactor = 1 << 12

	// maxEnumerate caps the cross product size Reserve will enumerate eagerly.
	maxEnumerate = 1 << 22
)

type options struct {
	forbidSelf    bool
	attemptFactor int
}

type Option func(*options)

// ForbidSelf rejects pairs whose left and right elements are equal.
func ForbidSelf() Option {
	return func(o *options) {
		o.forbidSelf = true
	}
}

func WithAttemptFactor(factor int) Option {
	return func(o *options) {
		o.attemptFactor = factor
	}
}

type Sampler[A, B comparable] struct {
	rng           *rand.Rand
	left          []A
	right         []B
	forbidSelf    bool
	attemptFactor int
	seen          *SeenPairs[A, B]
	feasible      int

	draining bool
	drain    []Pair[A, B]
}

// New returns a sampler over left x right with an empty set of seen pairs.
// The pools are read, never modified.
func New[A, B comparable](rng *rand.Rand, left []A, right []B, opts ...Option) (*Sampler[A, B], error) {
	if len(left) == 0 || len(right) == 0 {
		return nil, ErrEmptyPool
	}

	o := options{attemptFactor: DefaultAttemptFactor}
	for _, opt := range opts {
		opt(&o)
	}
	if o.attemptFactor <= 0 {
		o.attemptFactor = DefaultAttemptFactor
	}
	if o.attemptFactor > MaxAttemptFactor {
		o.attemptFactor = MaxAttemptFactor
	}

	return &Sampler[A, B]{
		rng:           rng,
		left:          left,
		right:         right,
		forbidSelf:    o.forbidSelf,
		attemptFactor: o.attemptFactor,
		seen:          NewSeenPairs[A, B](),
		feasible:      countFeasible(left, right, o.forbidSelf),
	}, nil
}

// Feasible is the number of distinct valid pairs the pools can produce.
func (s *Sampler[A, B]) Feasible() int {
	return s.feasible
}

// Remaining is the number of valid pairs not produced yet.
func (s *Sampler[A, B]) Remaining() int {
	return s.feasible - s.seen.Len()
}

// Seen returns a snapshot of the pairs produced so far. Changing it does not
// affect the sampler.
func (s *Sampler[A, B]) Seen() *SeenPairs[A, B] {
	return s.seen.Clone()
}

// Reserve checks that n more pairs can be produced. When n is more than half
// of what remains and the cross product is small, it switches to draining a
// shuffled list of the remaining pairs right away.
func (s *Sampler[A, B]) Reserve(n int) error {
	remaining := s.Remaining()
	if n > remaining {
		return &ExhaustedPoolError{Requested: s.seen.Len() + n, Available: s.feasible}
	}
	if !s.draining && n*2 > remaining && len(s.left)*len(s.right) <= maxEnumerate {
		s.startDrain()
	}
	return nil
}

// Next returns a pair that has not been produced before.
func (s *Sampler[A, B]) Next() (Pair[A, B], error) {
	remaining := s.Remaining()
	if remaining <= 0 {
		return Pair[A, B]{}, &ExhaustedPoolError{Requested: s.seen.Len() + 1, Available: s.feasible}
	}

	if !s.draining {
		space := len(s.left) * len(s.right)
		attempts := s.attemptFactor * ((space + remaining - 1) / remaining)
		for i := 0; i < attempts; i++ {
			p := Pair[A, B]{
				Left:  s.left[s.rng.Intn(len(s.left))],
				Right: s.right[s.rng.Intn(len(s.right))],
			}
			if s.forbidSelf && isSelf(p.Left, p.Right) {
				continue
			}
			if s.seen.Add(p) {
				return p, nil
			}
		}
		s.startDrain()
	}

	for len(s.drain) > 0 {
		last := len(s.drain) - 1
		p := s.drain[last]
		s.drain = s.drain[:last]
		if s.seen.Add(p) {
			return p, nil
		}
	}
	return Pair[A, B]{}, &ExhaustedPoolError{Requested: s.seen.Len() + 1, Available: s.seen.Len()}
}

// Take returns n new pairs, or an *ExhaustedPoolError without producing any
// when fewer than n remain.
func (s *Sampler[A, B]) Take(n int) ([]Pair[A, B], error) {
	if n <= 0 {
		return nil, nil
	}
	if err := s.Reserve(n); err != nil {
		return nil, err
	}

	out := make([]Pair[A, B], 0, n)
	for len(out) < n {
		p, err := s.Next()
		if err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Sampler[A, B]) startDrain() {
	lefts := distinct(s.left)
	rights := distinct(s.right)

	pending := make([]Pair[A, B], 0, s.Remaining())
	for _, l := range lefts {
		for _, r := range rights {
			if s.forbidSelf && isSelf(l, r) {
				continue
			}
			p := Pair[A, B]{Left: l, Right: r}
			if s.seen.Contains(p) {
				continue
			}
			pending = append(pending, p)
		}
	}
	s.rng.Shuffle(len(pending), func(i, j int) {
		pending[i], pending[j] = pending[j], pending[i]
	})

	s.drain = pending
	s.draining = true
}

// Capacity is the number of valid pairs for pools of distinct identifiers of
// the given sizes, where overlap elements appear in both pools.
func Capacity(leftLen, rightLen, overlap int, forbidSelf bool) int {
	n := leftLen * rightLen
	if forbidSelf {
		n -= overlap
	}
	return n
}

func countFeasible[A, B comparable](left []A, right []B, forbidSelf bool) int {
	lefts := distinct(left)
	rights := distinct(right)

	overlap := 0
	if forbidSelf {
		inRight := make(map[B]struct{}, len(rights))
		for _, r := range rights {
			inRight[r] = struct{}{}
		}
		for _, l := range lefts {
			if r, ok := any(l).(B); ok {
				if _, hit := inRight[r]; hit {
					overlap++
				}
			}
		}
	}
	return Capacity(len(lefts), len(rights), overlap, forbidSelf)
}

// distinct keeps the first occurrence of every value, in order.
func distinct[T comparable](in []T) []T {
	seen := make(map[T]struct{}, len(in))
	out := make([]T, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
