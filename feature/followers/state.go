package followers

import (
	"context"
	"fmt"
	"time"

	"follower-tracker/core/reconcile"
	"follower-tracker/core/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// stateBatchSize bounds rows per statement when writing the follower set.
const stateBatchSize = 500

// StateStore keeps the last observed follower set of each target.
type StateStore struct {
	db *gorm.DB
}

// NewStateStore creates a state store on the given pool.
func NewStateStore(db *gorm.DB) *StateStore {
	return &StateStore{db: db}
}

// Load returns the stored follower set. A target never reconciled yields an
// empty set.
func (s *StateStore) Load(ctx context.Context, target string) (reconcile.Set[int64], error) {
	var ids []int64
	err := s.db.WithContext(ctx).
		Model(&FollowerState{}).
		Where("target = ?", target).
		Pluck("platform_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load follower state for %s: %w", target, err)
	}
	return reconcile.NewSet(ids...), nil
}

// Apply removes the left ids and inserts the joined ids in one transaction.
func (s *StateStore) Apply(ctx context.Context, target string, delta reconcile.Delta[int64], seenAt time.Time) error {
	if delta.Empty() {
		return nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteMembers(tx, target, reconcile.Sorted(delta.Left)); err != nil {
			return err
		}
		return insertMembers(tx, target, reconcile.Sorted(delta.Joined), seenAt)
	})
	if err != nil {
		return fmt.Errorf("failed to apply follower state for %s: %w", target, err)
	}
	return nil
}

// Replace makes the stored set of target equal to set.
func (s *StateStore) Replace(ctx context.Context, target string, set reconcile.Set[int64], seenAt time.Time) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target = ?", target).Delete(&FollowerState{}).Error; err != nil {
			return err
		}
		return insertMembers(tx, target, reconcile.Sorted(set), seenAt)
	})
	if err != nil {
		return fmt.Errorf("failed to replace follower state for %s: %w", target, err)
	}
	return nil
}

// Members returns the accounts currently stored as followers of target.
func (s *StateStore) Members(ctx context.Context, target string) ([]Account, error) {
	var accounts []Account
	err := s.db.WithContext(ctx).
		Joins("JOIN follower_state ON follower_state.platform_id = accounts.platform_id").
		Where("follower_state.target = ?", target).
		Order("accounts.internal_id").
		Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list followers of %s: %w", target, err)
	}
	return accounts, nil
}

func deleteMembers(tx *gorm.DB, target string, ids []int64) error {
	for _, chunk := range utils.Chunk(ids, stateBatchSize) {
		err := tx.Where("target = ? AND platform_id IN ?", target, chunk).Delete(&FollowerState{}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func insertMembers(tx *gorm.DB, target string, ids []int64, seenAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	rows := make([]FollowerState, len(ids))
	for i, id := range ids {
		rows[i] = FollowerState{Target: target, PlatformID: id, SeenAt: seenAt}
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(rows, stateBatchSize).Error
}
