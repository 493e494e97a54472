package reconcile

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff_Scenarios(t *testing.T) {
	tests := []struct {
		name       string
		previous   Set[int64]
		current    Set[int64]
		wantJoined []int64
		wantLeft   []int64
	}{
		{
			name:       "one joined one left",
			previous:   NewSet[int64](1, 2, 3),
			current:    NewSet[int64](2, 3, 4),
			wantJoined: []int64{4},
			wantLeft:   []int64{1},
		},
		{
			name:       "first run",
			previous:   NewSet[int64](),
			current:    NewSet[int64](5, 6),
			wantJoined: []int64{5, 6},
			wantLeft:   []int64{},
		},
		{
			name:       "everyone left",
			previous:   NewSet[int64](5, 6),
			current:    NewSet[int64](),
			wantJoined: []int64{},
			wantLeft:   []int64{5, 6},
		},
		{
			name:       "nil previous behaves as empty",
			previous:   nil,
			current:    NewSet[int64](7),
			wantJoined: []int64{7},
			wantLeft:   []int64{},
		},
		{
			name:       "no change",
			previous:   NewSet[int64](1, 2),
			current:    NewSet[int64](2, 1),
			wantJoined: []int64{},
			wantLeft:   []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta := Diff(tt.current, tt.previous)
			assert.Equal(t, tt.wantJoined, Sorted(delta.Joined))
			assert.Equal(t, tt.wantLeft, Sorted(delta.Left))
			assert.Equal(t, len(tt.wantJoined), delta.Summary.Joined)
			assert.Equal(t, len(tt.wantLeft), delta.Summary.Left)
			assert.Equal(t, len(tt.current), delta.Summary.Current)
			assert.Equal(t, len(tt.previous), delta.Summary.Previous)
		})
	}
}

func TestDiff_Summary(t *testing.T) {
	delta := Diff(NewSet[int64](2, 3, 4), NewSet[int64](1, 2, 3))
	assert.Equal(t, Summary{Current: 3, Previous: 3, Continuing: 2, Joined: 1, Left: 1}, delta.Summary)
	assert.False(t, delta.Empty())
	assert.True(t, Diff(NewSet[int64](1), NewSet[int64](1)).Empty())
}

func randomSet(r *rand.Rand, universe int64) Set[int64] {
	s := make(Set[int64])
	n := r.Intn(int(universe))
	for i := 0; i < n; i++ {
		s.Add(r.Int63n(universe))
	}
	return s
}

// TestDiff_Properties checks the partition guarantees over random inputs.
func TestDiff_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		current := randomSet(r, 64)
		previous := randomSet(r, 64)
		delta := Diff(current, previous)

		// Joined and Left are disjoint
		assert.Empty(t, Intersect(delta.Joined, delta.Left))

		// Complete partition of the union
		continuing := Intersect(current, previous)
		assert.Equal(t, Union(current, previous), Union(delta.Joined, continuing, delta.Left))
		assert.Equal(t, continuing.Len(), delta.Summary.Continuing)

		// Joined only from current, Left only from previous
		for id := range delta.Joined {
			assert.True(t, current.Has(id))
			assert.False(t, previous.Has(id))
		}
		for id := range delta.Left {
			assert.True(t, previous.Has(id))
			assert.False(t, current.Has(id))
		}

		// Advancing the previous snapshot reproduces the current one
		assert.Equal(t, current, Apply(previous, delta))

		// First run and no-change idempotence
		first := Diff(current, Set[int64]{})
		assert.Equal(t, current, first.Joined)
		assert.Empty(t, first.Left)
		same := Diff(current, current)
		assert.Empty(t, same.Joined)
		assert.Empty(t, same.Left)
	}
}

func TestSet(t *testing.T) {
	s := NewSet("b", "a", "b")
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("c"))
	s.Add("c")
	assert.Equal(t, []string{"a", "b", "c"}, Sorted(s))

	var empty Set[string]
	assert.False(t, empty.Has("a"))
	assert.Empty(t, Sorted(empty))
}
