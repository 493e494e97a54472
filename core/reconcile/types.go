package reconcile

import (
	"cmp"
	"slices"
)

// Set is an unordered collection of keys. Iteration order is unspecified and
// callers must not depend on it; use Sorted for deterministic output.
type Set[K comparable] map[K]struct{}

// NewSet builds a set from the given keys. Duplicates collapse.
func NewSet[K comparable](keys ...K) Set[K] {
	s := make(Set[K], len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Add inserts a key.
func (s Set[K]) Add(k K) {
	s[k] = struct{}{}
}

// Has reports whether the key is present. A nil set contains nothing.
func (s Set[K]) Has(k K) bool {
	_, ok := s[k]
	return ok
}

// Len returns the number of keys.
func (s Set[K]) Len() int {
	return len(s)
}

// Sorted returns the keys in ascending order.
func Sorted[K cmp.Ordered](s Set[K]) []K {
	keys := make([]K, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Delta is the partition of a current snapshot against the previous one.
type Delta[K comparable] struct {
	// Joined holds keys present now but not previously known.
	Joined Set[K] `json:"-"`

	// Left holds keys previously known but absent now.
	Left Set[K] `json:"-"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`
}

// Empty reports whether nothing changed between the two snapshots.
func (d Delta[K]) Empty() bool {
	return len(d.Joined) == 0 && len(d.Left) == 0
}

// Summary provides aggregate statistics for a delta.
type Summary struct {
	// Current is the size of the current snapshot.
	Current int `json:"current"`

	// Previous is the size of the previous snapshot.
	Previous int `json:"previous"`

	// Continuing counts keys present in both snapshots.
	Continuing int `json:"continuing"`

	// Joined counts keys only in the current snapshot.
	Joined int `json:"joined"`

	// Left counts keys only in the previous snapshot.
	Left int `json:"left"`
}
