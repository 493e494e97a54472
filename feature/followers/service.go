package followers

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Service backs the HTTP API and the history command.
type Service struct {
	registry *Registry
	events   *Recorder
	state    *StateStore
	runner   *Runner
	archive  *ArchiveReporter
	logger   *zap.Logger
}

// NewService creates a service. runner and archive may be nil, which disables
// triggering runs and reading archived reports respectively.
func NewService(registry *Registry, events *Recorder, state *StateStore, runner *Runner, archive *ArchiveReporter, logger *zap.Logger) *Service {
	return &Service{
		registry: registry,
		events:   events,
		state:    state,
		runner:   runner,
		archive:  archive,
		logger:   logger,
	}
}

// ListAccounts pages through registered accounts.
func (s *Service) ListAccounts(ctx context.Context, limit, offset int) ([]Account, error) {
	return s.registry.List(ctx, limit, offset)
}

// GetAccount returns the account of a platform id.
func (s *Service) GetAccount(ctx context.Context, platformID int64) (Account, error) {
	return s.registry.Get(ctx, platformID)
}

// Followers returns the stored follower set of target as accounts.
func (s *Service) Followers(ctx context.Context, target string) ([]Account, error) {
	return s.state.Members(ctx, target)
}

// History lists follow events.
func (s *Service) History(ctx context.Context, filter EventFilter) ([]FollowEvent, error) {
	return s.events.List(ctx, filter)
}

// Trigger runs a reconcile for target.
func (s *Service) Trigger(ctx context.Context, target string) (*RunResult, error) {
	return s.runner.Run(ctx, target)
}

// CanTrigger reports whether runs can be started.
func (s *Service) CanTrigger() bool {
	return s.runner != nil
}

// Reports lists archived run reports of target.
func (s *Service) Reports(ctx context.Context, target string) ([]ArchivedReport, error) {
	if s.archive == nil {
		return nil, ErrNotFound
	}
	return s.archive.List(ctx, target)
}

// Report loads one archived run report.
func (s *Service) Report(ctx context.Context, target, name string) (*RunResult, error) {
	if s.archive == nil {
		return nil, ErrNotFound
	}
	return s.archive.Get(ctx, target, name)
}

// ParseSince accepts RFC 3339 timestamps or durations such as 24h, meaning
// that long before now.
func ParseSince(val string, now time.Time) (time.Time, error) {
	if val == "" {
		return time.Time{}, nil
	}
	if d, err := time.ParseDuration(val); err == nil {
		return now.Add(-d), nil
	}
	return time.Parse(time.RFC3339, val)
}
