package followers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"follower-tracker/core/reconcile"

	"github.com/juju/clock"
	"go.uber.org/zap"
)

// Options tunes a single run.
type Options struct {
	// DryRun computes and reports the delta without writing.
	DryRun bool
}

// RunResult is the outcome of a successful run.
type RunResult struct {
	Target        string            `json:"target"`
	RunTime       time.Time         `json:"run_time"`
	DryRun        bool              `json:"dry_run"`
	Summary       reconcile.Summary `json:"summary"`
	Joined        []Account         `json:"joined"`
	Left          []Account         `json:"left"`
	EventsWritten int               `json:"events_written"`
	EventFailures []EventFailure    `json:"event_failures,omitempty"`
}

// Deps wires a Reconciler. Profiles and Reporter are optional.
type Deps struct {
	Tokens     Credentials
	Accounts   Accounts
	Events     Events
	State      States
	Authorizer Authorizer
	Source     FollowerSource
	Profiles   ProfileLookup
	Reporter   Reporter
	Clock      clock.Clock
	Logger     *zap.Logger
}

// Reconciler runs the three phase pipeline for one target: acquire a
// credential, snapshot and diff, then materialize and report.
type Reconciler struct {
	tokens     Credentials
	accounts   Accounts
	events     Events
	state      States
	authorizer Authorizer
	source     FollowerSource
	profiles   ProfileLookup
	reporter   Reporter
	clock      clock.Clock
	logger     *zap.Logger
}

// NewReconciler creates a reconciler from its collaborators.
func NewReconciler(d Deps) *Reconciler {
	if d.Clock == nil {
		d.Clock = clock.WallClock
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &Reconciler{
		tokens:     d.Tokens,
		accounts:   d.Accounts,
		events:     d.Events,
		state:      d.State,
		authorizer: d.Authorizer,
		source:     d.Source,
		profiles:   d.Profiles,
		reporter:   d.Reporter,
		clock:      d.Clock,
		logger:     d.Logger,
	}
}

// Run reconciles target once. Errors wrap ErrAuthorization, ErrFetch or
// ErrStorage; in each case the stored follower set is left untouched.
func (r *Reconciler) Run(ctx context.Context, target string, opts Options) (*RunResult, error) {
	runTime := r.clock.Now().UTC().Truncate(time.Second)
	log := r.logger.With(zap.String("target", target), zap.Time("run_time", runTime))

	cred, err := r.credential(ctx)
	if err != nil {
		return nil, err
	}

	snap, err := r.snapshot(ctx, target, cred)
	if err != nil {
		return nil, err
	}
	previous, err := r.state.Load(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	delta := reconcile.Diff(snap.ids(), previous)
	log.Info("Computed follower delta",
		zap.Int("current", delta.Summary.Current),
		zap.Int("previous", delta.Summary.Previous),
		zap.Int("joined", delta.Summary.Joined),
		zap.Int("left", delta.Summary.Left))

	result := &RunResult{
		Target:  target,
		RunTime: runTime,
		DryRun:  opts.DryRun,
		Summary: delta.Summary,
	}
	joinedProfiles := snap.profiles(reconcile.Sorted(delta.Joined))
	leftIDs := reconcile.Sorted(delta.Left)

	if opts.DryRun {
		if result.Joined, err = r.previewJoined(ctx, joinedProfiles); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStorage, err)
		}
		if result.Left, err = r.resolveLeft(ctx, log, cred, leftIDs, false); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStorage, err)
		}
		r.report(ctx, result)
		return result, nil
	}

	if result.Joined, err = r.accounts.ResolveOrCreateMany(ctx, joinedProfiles); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if result.Left, err = r.resolveLeft(ctx, log, cred, leftIDs, true); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	continuing := reconcile.Sorted(reconcile.Intersect(snap.ids(), previous))
	if err := r.refreshContinuing(ctx, log, snap, continuing); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	recorded := r.events.Record(ctx, target, internalIDs(result.Joined), internalIDs(result.Left), runTime)
	result.EventsWritten = recorded.Written
	result.EventFailures = recorded.Failures
	if len(recorded.Failures) > 0 {
		log.Warn("Some follow events were not recorded", zap.Int("failed", len(recorded.Failures)))
	}

	if err := r.state.Apply(ctx, target, delta, runTime); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	r.report(ctx, result)
	return result, nil
}

// credential returns the cached credential, running the authorizer when
// nothing is cached.
func (r *Reconciler) credential(ctx context.Context) (Credential, error) {
	cred, err := r.tokens.Get(ctx)
	if err == nil {
		return cred, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Credential{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if r.authorizer == nil {
		return Credential{}, fmt.Errorf("%w: no cached credential, run the authorize command", ErrAuthorization)
	}

	r.logger.Info("No cached credential, starting authorization")
	cred, err = r.authorizer.Authorize(ctx)
	if err != nil {
		return Credential{}, fmt.Errorf("%w: %w", ErrAuthorization, err)
	}
	if err := r.tokens.Put(ctx, cred); err != nil {
		return Credential{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return cred, nil
}

// snapshot drains the follower cursor once.
func (r *Reconciler) snapshot(ctx context.Context, target string, cred Credential) (*snapshot, error) {
	cursor, err := r.source.Followers(ctx, target, cred)
	if err != nil {
		return nil, fetchError(err)
	}
	snap := newSnapshot()
	for cursor.Next(ctx) {
		snap.add(cursor.Profile())
	}
	if err := cursor.Err(); err != nil {
		return nil, fetchError(err)
	}
	return snap, nil
}

// resolveLeft maps left platform ids to accounts. Ids unknown to the registry
// are described by the profile lookup, or by a placeholder when the platform
// no longer returns them, and registered when persist is set.
func (r *Reconciler) resolveLeft(ctx context.Context, log *zap.Logger, cred Credential, ids []int64, persist bool) ([]Account, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	known, err := r.accounts.LookupMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	var missing []int64
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		described := r.describe(ctx, log, cred, missing)
		if persist {
			created, err := r.accounts.ResolveOrCreateMany(ctx, described)
			if err != nil {
				return nil, err
			}
			for _, acc := range created {
				known[acc.PlatformID] = acc
			}
		} else {
			for _, acc := range unsavedAccounts(described) {
				known[acc.PlatformID] = acc
			}
		}
	}

	accounts := make([]Account, 0, len(ids))
	for _, id := range ids {
		accounts = append(accounts, known[id])
	}
	return accounts, nil
}

// previewJoined maps joined profiles to accounts without writing. Followers
// that are already registered, such as returning ones, keep their internal id.
func (r *Reconciler) previewJoined(ctx context.Context, profiles []Profile) ([]Account, error) {
	if len(profiles) == 0 {
		return nil, nil
	}
	ids := make([]int64, len(profiles))
	for i, p := range profiles {
		ids[i] = p.PlatformID
	}
	known, err := r.accounts.LookupMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	accounts := unsavedAccounts(profiles)
	for i := range accounts {
		if acc, ok := known[accounts[i].PlatformID]; ok {
			accounts[i].InternalID = acc.InternalID
			accounts[i].CreatedAt = acc.CreatedAt
		}
	}
	return accounts, nil
}

// refreshContinuing passes followers whose handle or name changed since they
// were registered back through the registry. Unregistered continuing
// followers are registered on the way.
func (r *Reconciler) refreshContinuing(ctx context.Context, log *zap.Logger, snap *snapshot, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	known, err := r.accounts.LookupMany(ctx, ids)
	if err != nil {
		return err
	}

	var changed []Profile
	for _, id := range ids {
		p := snap.byID[id]
		acc, ok := known[id]
		if ok && (p.Handle == "" || (acc.Handle == p.Handle && acc.Name == p.Name)) {
			continue
		}
		changed = append(changed, p)
	}
	if len(changed) == 0 {
		return nil
	}

	if _, err := r.accounts.ResolveOrCreateMany(ctx, changed); err != nil {
		return err
	}
	log.Info("Refreshed follower profiles", zap.Int("accounts", len(changed)))
	return nil
}

// describe returns one profile per id in input order. Lookup failures only
// cost descriptive data.
func (r *Reconciler) describe(ctx context.Context, log *zap.Logger, cred Credential, ids []int64) []Profile {
	byID := make(map[int64]Profile, len(ids))
	if r.profiles != nil {
		found, err := r.profiles.LookupProfiles(ctx, cred, ids)
		if err != nil {
			log.Warn("Profile lookup failed, using placeholders", zap.Int("ids", len(ids)), zap.Error(err))
		}
		for _, p := range found {
			byID[p.PlatformID] = p
		}
	}

	profiles := make([]Profile, len(ids))
	for i, id := range ids {
		p, ok := byID[id]
		if !ok {
			p = Profile{PlatformID: id}
		}
		profiles[i] = p
	}
	return profiles
}

func (r *Reconciler) report(ctx context.Context, result *RunResult) {
	if r.reporter != nil {
		r.reporter.Report(ctx, result)
	}
}

func fetchError(err error) error {
	if errors.Is(err, ErrCredentialRejected) {
		return fmt.Errorf("%w: %w", ErrAuthorization, err)
	}
	return fmt.Errorf("%w: %w", ErrFetch, err)
}

func internalIDs(accounts []Account) []int64 {
	ids := make([]int64, len(accounts))
	for i, acc := range accounts {
		ids[i] = acc.InternalID
	}
	return ids
}

func unsavedAccounts(profiles []Profile) []Account {
	accounts := make([]Account, len(profiles))
	for i, p := range profiles {
		accounts[i] = Account{PlatformID: p.PlatformID, Handle: p.Handle, Name: p.Name}
	}
	return accounts
}

// snapshot is the drained follower listing keyed by platform id.
type snapshot struct {
	byID map[int64]Profile
}

func newSnapshot() *snapshot {
	return &snapshot{byID: make(map[int64]Profile)}
}

func (s *snapshot) add(p Profile) {
	s.byID[p.PlatformID] = p
}

func (s *snapshot) ids() reconcile.Set[int64] {
	set := make(reconcile.Set[int64], len(s.byID))
	for id := range s.byID {
		set.Add(id)
	}
	return set
}

func (s *snapshot) profiles(ids []int64) []Profile {
	out := make([]Profile, len(ids))
	for i, id := range ids {
		out[i] = s.byID[id]
	}
	return out
}
