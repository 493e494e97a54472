package reconcile

// Diff partitions current against previous.
//
//	Joined = current \ previous
//	Left   = previous \ current
//
// Every key of current is either continuing or joined, every key of previous
// is either continuing or left, and Joined and Left are disjoint. Nil inputs
// are treated as empty sets. Diff does not distinguish an empty current set
// from a failed fetch; callers must never pass the result of a failed fetch.
func Diff[K comparable](current, previous Set[K]) Delta[K] {
	joined := make(Set[K])
	left := make(Set[K])
	continuing := 0

	for key := range current {
		if previous.Has(key) {
			continuing++
			continue
		}
		joined[key] = struct{}{}
	}

	for key := range previous {
		if !current.Has(key) {
			left[key] = struct{}{}
		}
	}

	return Delta[K]{
		Joined: joined,
		Left:   left,
		Summary: Summary{
			Current:    len(current),
			Previous:   len(previous),
			Continuing: continuing,
			Joined:     len(joined),
			Left:       len(left),
		},
	}
}

// Union returns a new set holding every key of every input.
func Union[K comparable](sets ...Set[K]) Set[K] {
	size := 0
	for _, s := range sets {
		size += len(s)
	}

	union := make(Set[K], size)
	for _, s := range sets {
		for key := range s {
			union[key] = struct{}{}
		}
	}
	return union
}

// Intersect returns the keys present in both a and b.
func Intersect[K comparable](a, b Set[K]) Set[K] {
	if len(b) < len(a) {
		a, b = b, a
	}
	out := make(Set[K])
	for key := range a {
		if b.Has(key) {
			out[key] = struct{}{}
		}
	}
	return out
}

// Apply returns previous advanced by the delta. For any delta produced by
// Diff(current, previous), Apply(previous, delta) equals current.
func Apply[K comparable](previous Set[K], delta Delta[K]) Set[K] {
	next := make(Set[K], len(previous)+len(delta.Joined))
	for key := range previous {
		if !delta.Left.Has(key) {
			next[key] = struct{}{}
		}
	}
	for key := range delta.Joined {
		next[key] = struct{}{}
	}
	return next
}
