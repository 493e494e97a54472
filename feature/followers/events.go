package followers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventFailure describes an event that could not be written.
type EventFailure struct {
	InternalID int64     `json:"internal_id"`
	Kind       EventKind `json:"kind"`
	Error      string    `json:"error"`
}

// RecordReport summarizes one Record call.
type RecordReport struct {
	Written  int
	Failures []EventFailure
}

// Recorder appends follow events.
type Recorder struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRecorder creates a recorder on the given pool.
func NewRecorder(db *gorm.DB, logger *zap.Logger) *Recorder {
	return &Recorder{db: db, logger: logger}
}

// Record writes one JOINED event per joined id and one LEFT event per left id,
// all stamped with runTime. Writes are independent: a failure is logged and
// reported while the remaining events are still written.
func (r *Recorder) Record(ctx context.Context, target string, joined, left []int64, runTime time.Time) RecordReport {
	var report RecordReport
	write := func(id int64, kind EventKind) {
		ev := FollowEvent{AccountID: id, Target: target, RunTimestamp: runTime, Kind: kind}
		if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&ev).Error; err != nil {
			r.logger.Warn("Failed to record follow event",
				zap.String("target", target),
				zap.Int64("internal_id", id),
				zap.String("kind", string(kind)),
				zap.Error(err))
			report.Failures = append(report.Failures, EventFailure{InternalID: id, Kind: kind, Error: err.Error()})
			return
		}
		report.Written++
	}

	for _, id := range joined {
		write(id, KindJoined)
	}
	for _, id := range left {
		write(id, KindLeft)
	}
	return report
}

// EventFilter narrows List. Zero values do not filter.
type EventFilter struct {
	Target string
	Kind   EventKind
	Since  time.Time
	Limit  int
}

// List returns events newest first with their accounts loaded.
func (r *Recorder) List(ctx context.Context, filter EventFilter) ([]FollowEvent, error) {
	q := r.db.WithContext(ctx).Preload("Account")
	if filter.Target != "" {
		q = q.Where("target = ?", filter.Target)
	}
	if filter.Kind != "" {
		q = q.Where("kind = ?", filter.Kind)
	}
	if !filter.Since.IsZero() {
		q = q.Where("run_timestamp >= ?", filter.Since)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var events []FollowEvent
	if err := q.Order("run_timestamp DESC").Order("id DESC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list follow events: %w", err)
	}
	return events, nil
}
