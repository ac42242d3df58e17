package minmax_test

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/cachekit/go-pseudolru/internal/minmax"
	"github.com/stretchr/testify/require"
)

func intLess(a, b int) bool { return a < b }

func TestPartial_MovesExtremesToEndpoints(t *testing.T) {
	t.Parallel()
	s := []int{5, 3, 9, 1, 7, 4}
	minmax.Partial(s, 0, len(s), intLess)
	require.Equal(t, 1, s[0], "minimum should be first")
	require.Equal(t, 9, s[len(s)-1], "maximum should be last")
	requireSameElements(t, []int{5, 3, 9, 1, 7, 4}, s)
}

func TestPartial_SubRangeOnly(t *testing.T) {
	t.Parallel()
	s := []int{0, 8, 2, 6, 4, 100}
	minmax.Partial(s, 1, 4, intLess)
	require.Equal(t, 2, s[1], "sub-range minimum should lead the range")
	require.Equal(t, 8, s[4], "sub-range maximum should end the range")
	require.Equal(t, 0, s[0], "elements before the range must not move")
	require.Equal(t, 100, s[5], "elements after the range must not move")
}

func TestPartial_DisplacedMaximum(t *testing.T) {
	t.Parallel()
	// Maximum sits where the minimum lands; the swap that places the
	// minimum pushes the maximum into the middle of the range.
	s := []int{9, 7, 1, 8}
	minmax.Partial(s, 0, len(s), intLess)
	require.Equal(t, 1, s[0])
	require.Equal(t, 9, s[len(s)-1])
}

func TestPartial_MinAtEndMaxAtStart(t *testing.T) {
	t.Parallel()
	s := []int{9, 5, 5, 1}
	minmax.Partial(s, 0, len(s), intLess)
	require.Equal(t, []int{1, 5, 5, 9}, s)
}

func TestPartial_CountClampedToTail(t *testing.T) {
	t.Parallel()
	s := []int{4, 9, 2}
	minmax.Partial(s, 1, 100, intLess)
	require.Equal(t, []int{4, 2, 9}, s)
}

func TestPartial_DegenerateRanges(t *testing.T) {
	t.Parallel()
	for _, test := range []struct {
		name         string
		start, count int
	}{
		{"empty", 0, 0},
		{"single", 1, 1},
		{"start past end", 3, 2},
		{"negative start", -1, 2},
		{"tail clamp to single", 2, 5},
	} {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			s := []int{3, 1, 2}
			minmax.Partial(s, test.start, test.count, intLess)
			require.Equal(t, []int{3, 1, 2}, s, "degenerate range must not move anything")
		})
	}
}

func TestPartial_AllEqual(t *testing.T) {
	t.Parallel()
	s := []int{7, 7, 7, 7}
	minmax.Partial(s, 0, len(s), intLess)
	require.Equal(t, []int{7, 7, 7, 7}, s)
}

func TestPartial_RandomizedEndpoints(t *testing.T) {
	t.Parallel()
	const (
		rounds    = 256
		maxLength = 64
		rngSeed   = 1
	)
	rng := rand.New(rand.NewSource(rngSeed))
	for round := 0; round < rounds; round++ {
		var (
			length = rng.Intn(maxLength) + 2
			start  = rng.Intn(length)
			count  = rng.Intn(length) + 1
			s      = make([]int, length)
		)
		for i := range s {
			s[i] = rng.Intn(32)
		}
		var (
			before = slices.Clone(s)
			end    = min(start+count, length) - 1
		)
		minmax.Partial(s, start, count, intLess)
		requireSameElements(t, before, s)
		if end <= start {
			continue
		}
		window := s[start : end+1]
		require.Equal(t, slices.Min(window), s[start],
			"range minimum should lead after Partial(%v, %d, %d)", before, start, count)
		require.Equal(t, slices.Max(window), s[end],
			"range maximum should trail after Partial(%v, %d, %d)", before, start, count)
	}
}

func requireSameElements(tb testing.TB, want, got []int) {
	tb.Helper()
	require.ElementsMatch(tb, want, got, "Partial must only permute, never alter")
}
