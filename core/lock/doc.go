// Package lock keeps runs for the same tracked account from overlapping.
//
// Two layers cooperate:
//
//   - Group coalesces concurrent triggers inside one process (a watch tick and
//     an HTTP trigger, for instance) with singleflight: the second caller
//     waits for and shares the first caller's result.
//   - Locker serializes runs across processes. RedisLocker uses SET NX PX with
//     a random token and a compare-and-delete release script; Noop is used
//     when no Redis URL is configured.
package lock
