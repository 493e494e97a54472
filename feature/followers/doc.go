// Package followers tracks who follows a target account over time.
//
// A run reconciles the target's current follower listing against the set
// stored by the previous successful run and turns the difference into
// append-only JOINED and LEFT events.
//
// # Phases
//
//  1. Credential: TokenCache.Get, falling back to the Authorizer when nothing
//     is cached. Failure wraps ErrAuthorization.
//  2. Snapshot and diff: the follower Cursor is drained exactly once into a
//     set, the previous set is loaded from the StateStore and the two are
//     diffed with core/reconcile. A cursor failure wraps ErrFetch and the diff
//     never runs.
//  3. Materialize: joined and left accounts are resolved through the Registry,
//     events are written by the Recorder (individual failures are reported but
//     not fatal), the StateStore applies the delta and the Reporter publishes
//     the RunResult. Registry or state failures wrap ErrStorage.
//
// # Components
//
//   - Registry: platform id to internal id, insert with duplicate key recovery.
//   - Recorder: follow events and their history queries.
//   - StateStore: last known follower set per target.
//   - TokenCache: the single named OAuth 2.0 credential.
//   - Runner: per-target run coalescing, the run lock, metrics and watch mode.
//   - LogReporter, ArchiveReporter, MultiReporter: run result publishing.
//   - Handler: the HTTP API mounted by Feature.
package followers
