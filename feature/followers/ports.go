package followers

import (
	"context"
	"time"

	"follower-tracker/core/reconcile"
)

// Authorizer performs the interactive authorization handshake.
type Authorizer interface {
	Authorize(ctx context.Context) (Credential, error)
}

// Cursor is a single pass over the followers of a target. Next advances and
// reports whether a profile is available; Err reports why iteration stopped.
type Cursor interface {
	Next(ctx context.Context) bool
	Profile() Profile
	Err() error
}

// FollowerSource opens follower cursors.
type FollowerSource interface {
	Followers(ctx context.Context, handle string, cred Credential) (Cursor, error)
}

// ProfileLookup resolves platform ids to profiles. Ids the platform no longer
// knows are omitted from the result.
type ProfileLookup interface {
	LookupProfiles(ctx context.Context, cred Credential, ids []int64) ([]Profile, error)
}

// Reporter publishes run results. Failures are the reporter's own concern.
type Reporter interface {
	Report(ctx context.Context, result *RunResult)
}

// Credentials stores the cached credential.
type Credentials interface {
	Get(ctx context.Context) (Credential, error)
	Put(ctx context.Context, cred Credential) error
}

// Accounts maps platform ids to internal ids.
type Accounts interface {
	ResolveOrCreateMany(ctx context.Context, profiles []Profile) ([]Account, error)
	LookupMany(ctx context.Context, platformIDs []int64) (map[int64]Account, error)
}

// Events appends follow events.
type Events interface {
	Record(ctx context.Context, target string, joined, left []int64, runTime time.Time) RecordReport
}

// States holds the last known follower set per target.
type States interface {
	Load(ctx context.Context, target string) (reconcile.Set[int64], error)
	Apply(ctx context.Context, target string, delta reconcile.Delta[int64], seenAt time.Time) error
}
