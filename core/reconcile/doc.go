// Package reconcile provides the set-diff engine behind follower tracking.
//
// A run fetches the complete current follower snapshot and compares it with the
// snapshot recorded by the previous successful run. Diff partitions the two
// sets into accounts that joined and accounts that left; accounts present in
// both are continuing and appear in neither output.
//
// # Guarantees
//
//   - Joined and Left are disjoint.
//   - Joined ∪ (current ∩ previous) ∪ Left = current ∪ previous.
//   - Diff(S, ∅) = (S, ∅) and Diff(S, S) = (∅, ∅).
//   - Apply(previous, Diff(current, previous)) = current.
//
// Sets carry no order. Sorted gives a deterministic view for reports.
//
// # Usage
//
//	delta := reconcile.Diff(current, previous)
//	for _, id := range reconcile.Sorted(delta.Joined) {
//	    // materialize the account
//	}
package reconcile
