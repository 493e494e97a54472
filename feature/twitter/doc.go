// Package twitter is the Twitter API v2 client used by the follower tracker.
//
// Client implements the collaborators the reconciler needs:
//
//   - Authorize: OAuth 2.0 authorization code flow with PKCE, completed by
//     pasting the redirect URL into the terminal.
//   - Followers: resolves a handle and returns a single pass cursor over
//     GET /2/users/:id/followers, fetching pages lazily.
//   - LookupProfiles: GET /2/users?ids= in batches of 100.
//
// Requests are paced with a token bucket sized from the configured rate limit
// window and transient failures (429, 5xx, network) are retried with doubling
// backoff. Expired access tokens are refreshed transparently and handed to
// Options.OnTokenRefresh for persistence. A 401 or a failed refresh surfaces as
// followers.ErrCredentialRejected.
package twitter
