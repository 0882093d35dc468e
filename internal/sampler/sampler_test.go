package sampler

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestNew_EmptyPool(t *testing.T) {
	_, err := New(newRand(1), []int{}, []int{1})
	assert.ErrorIs(t, err, ErrEmptyPool)

	_, err = New(newRand(1), []int{1}, []int(nil))
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestTake_ForbidSelfSmallPool(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		pool := []int{1, 2, 3}
		s, err := New(newRand(seed), pool, pool, ForbidSelf())
		require.NoError(t, err)
		require.Equal(t, 6, s.Feasible())

		pairs, err := s.Take(3)
		require.NoError(t, err)
		require.Len(t, pairs, 3)

		got := make(map[Pair[int, int]]bool)
		for _, p := range pairs {
			assert.NotEqual(t, p.Left, p.Right)
			assert.False(t, got[p], "duplicate pair %v", p)
			got[p] = true
		}
		assert.Equal(t, 3, s.Seen().Len())
	}
}

func TestTake_ExhaustsCrossProduct(t *testing.T) {
	s, err := New(newRand(7), []int{10, 20}, []string{"a", "b"})
	require.NoError(t, err)

	pairs, err := s.Take(4)
	require.NoError(t, err)

	want := map[Pair[int, string]]bool{
		{10, "a"}: true, {10, "b"}: true,
		{20, "a"}: true, {20, "b"}: true,
	}
	got := make(map[Pair[int, string]]bool)
	for _, p := range pairs {
		got[p] = true
	}
	assert.Equal(t, want, got)
	assert.Equal(t, 0, s.Remaining())
}

func TestTake_QuotaExceedsFeasible(t *testing.T) {
	pool := []int{1, 2}
	s, err := New(newRand(3), pool, pool, ForbidSelf())
	require.NoError(t, err)

	pairs, err := s.Take(3)
	assert.Empty(t, pairs)

	var exhausted *ExhaustedPoolError
	require.True(t, errors.As(err, &exhausted))
	assert.Equal(t, 3, exhausted.Requested)
	assert.Equal(t, 2, exhausted.Available)
	assert.Equal(t, 0, s.Seen().Len(), "no pair is produced when the request cannot be met")
}

func TestNext_ReportsExhaustionAfterLastPair(t *testing.T) {
	pool := []int{1, 2}
	s, err := New(newRand(11), pool, pool, ForbidSelf())
	require.NoError(t, err)

	first, err := s.Next()
	require.NoError(t, err)
	second, err := s.Next()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	_, err = s.Next()
	var exhausted *ExhaustedPoolError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 2, exhausted.Available)
}

func TestNext_UniqueAcrossLargePools(t *testing.T) {
	users := make([]int64, 1000)
	for i := range users {
		users[i] = int64(i + 1)
	}
	s, err := New(newRand(42), users, users, ForbidSelf())
	require.NoError(t, err)
	require.Equal(t, 1000*999, s.Feasible())
	require.NoError(t, s.Reserve(1000))

	seen := make(map[Pair[int64, int64]]struct{})
	for i := 0; i < 1000; i++ {
		p, err := s.Next()
		require.NoError(t, err)
		require.NotEqual(t, p.Left, p.Right)
		_, dup := seen[p]
		require.False(t, dup)
		seen[p] = struct{}{}
	}
}

func TestNext_FallsBackToDrainWhenAttemptsRunOut(t *testing.T) {
	// A factor of 1 with an almost full seen set makes the random phase give
	// up quickly; the drain must still hand out every remaining pair.
	left := []int{1, 2, 3, 4}
	right := []int{5, 6, 7, 8}
	s, err := New(newRand(5), left, right, WithAttemptFactor(1))
	require.NoError(t, err)

	got := make(map[Pair[int, int]]bool)
	for i := 0; i < 16; i++ {
		p, err := s.Next()
		require.NoError(t, err)
		require.False(t, got[p])
		got[p] = true
	}
	assert.Len(t, got, 16)

	_, err = s.Next()
	var exhausted *ExhaustedPoolError
	assert.ErrorAs(t, err, &exhausted)
}

func TestFeasible_DuplicatesAndOverlap(t *testing.T) {
	s, err := New(newRand(1), []int{1, 1, 2, 3}, []int{2, 3, 3, 4}, ForbidSelf())
	require.NoError(t, err)
	// 3 distinct left x 3 distinct right minus {2,3} shared.
	assert.Equal(t, 7, s.Feasible())

	pairs, err := s.Take(7)
	require.NoError(t, err)
	for _, p := range pairs {
		assert.NotEqual(t, p.Left, p.Right)
	}
}

func TestForbidSelf_DifferentTypesNeverClash(t *testing.T) {
	s, err := New(newRand(1), []int{1, 2}, []int64{1, 2}, ForbidSelf())
	require.NoError(t, err)
	assert.Equal(t, 4, s.Feasible())
}

func TestTake_DeterministicForSeed(t *testing.T) {
	pool := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	a, err := New(newRand(99), pool, pool, ForbidSelf())
	require.NoError(t, err)
	b, err := New(newRand(99), pool, pool, ForbidSelf())
	require.NoError(t, err)

	pa, err := a.Take(20)
	require.NoError(t, err)
	pb, err := b.Take(20)
	require.NoError(t, err)
	assert.Equal(t, pa, pb)
}

func TestPoolsAreNotMutated(t *testing.T) {
	left := []int{3, 1, 2}
	right := []int{9, 8}
	s, err := New(newRand(4), left, right)
	require.NoError(t, err)

	_, err = s.Take(6)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, left)
	assert.Equal(t, []int{9, 8}, right)
}

func TestCapacity(t *testing.T) {
	assert.Equal(t, 1000*999, Capacity(1000, 1000, 1000, true))
	assert.Equal(t, 1000*1000, Capacity(1000, 1000, 1000, false))
	assert.Equal(t, 0, Capacity(1, 1, 1, true))
}

func TestSeen_SnapshotDoesNotAffectSampler(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		s, err := New(newRand(seed), []int{1, 2}, []int{3, 4})
		require.NoError(t, err)
		require.NoError(t, s.Reserve(4))

		snapshot := s.Seen()
		assert.True(t, snapshot.Add(Pair[int, int]{Left: 1, Right: 3}))
		assert.Equal(t, 0, s.Seen().Len())
		assert.Equal(t, 4, s.Remaining())

		got := make(map[Pair[int, int]]bool)
		for i := 0; i < 4; i++ {
			p, err := s.Next()
			require.NoError(t, err)
			assert.False(t, got[p], "seed %d: duplicate pair %v", seed, p)
			got[p] = true
		}
		assert.Len(t, got, 4)

		_, err = s.Next()
		assert.ErrorIs(t, err, ErrPoolExhausted)
	}
}

func TestExhaustedPoolError_Unwrap(t *testing.T) {
	err := error(&ExhaustedPoolError{Requested: 3, Available: 2})

	assert.ErrorIs(t, err, ErrPoolExhausted)
	assert.Equal(t, "pair pool exhausted: requested 3 unique pairs, only 2 available", err.Error())
}

func TestWithAttemptFactor_Clamped(t *testing.T) {
	s, err := New(newRand(1), []int{1, 2, 3}, []int{1, 2, 3}, WithAttemptFactor(math.MaxInt))
	require.NoError(t, err)
	assert.Equal(t, MaxAttemptFactor, s.attemptFactor)

	pairs, err := s.Take(9)
	require.NoError(t, err)
	assert.Len(t, pairs, 9)
}
