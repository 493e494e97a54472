package followers

import (
	"context"
	"errors"
	"fmt"

	"follower-tracker/core/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// lookupBatchSize bounds the IN list of a batched lookup.
const lookupBatchSize = 500

// Registry assigns internal ids to platform accounts.
type Registry struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRegistry creates a registry on the given pool.
func NewRegistry(db *gorm.DB, logger *zap.Logger) *Registry {
	return &Registry{db: db, logger: logger}
}

// ResolveOrCreate returns the account for p.PlatformID, registering it when
// absent. Lookup, insert and re-read share one pinned connection. A concurrent
// registration surfaces as a duplicate key and is answered by re-reading the
// winner's row. Descriptive fields are refreshed when they changed.
func (r *Registry) ResolveOrCreate(ctx context.Context, p Profile) (Account, error) {
	var acc Account
	err := r.db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		conn := tx.Session(&gorm.Session{NewDB: true})

		existing, found, err := findByPlatformID(conn, p.PlatformID)
		if err != nil {
			return err
		}
		if !found {
			acc, err = r.insertOrReread(conn, p)
			return err
		}

		acc = existing
		r.refresh(conn, &acc, p)
		return nil
	})
	if err != nil {
		return Account{}, fmt.Errorf("failed to resolve account %d: %w", p.PlatformID, err)
	}
	return acc, nil
}

// ResolveOrCreateMany resolves every profile and preserves input order.
func (r *Registry) ResolveOrCreateMany(ctx context.Context, profiles []Profile) ([]Account, error) {
	accounts := make([]Account, 0, len(profiles))
	for _, p := range profiles {
		acc, err := r.ResolveOrCreate(ctx, p)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

// LookupMany returns the registered accounts among platformIDs, keyed by
// platform id. Unknown ids are absent from the map.
func (r *Registry) LookupMany(ctx context.Context, platformIDs []int64) (map[int64]Account, error) {
	found := make(map[int64]Account, len(platformIDs))
	for _, chunk := range utils.Chunk(platformIDs, lookupBatchSize) {
		var rows []Account
		if err := r.db.WithContext(ctx).Where("platform_id IN ?", chunk).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to look up accounts: %w", err)
		}
		for _, acc := range rows {
			found[acc.PlatformID] = acc
		}
	}
	return found, nil
}

// Get returns the account registered for platformID or ErrNotFound.
func (r *Registry) Get(ctx context.Context, platformID int64) (Account, error) {
	acc, found, err := findByPlatformID(r.db.WithContext(ctx), platformID)
	if err != nil {
		return Account{}, fmt.Errorf("failed to get account %d: %w", platformID, err)
	}
	if !found {
		return Account{}, ErrNotFound
	}
	return acc, nil
}

// List pages through accounts in registration order.
func (r *Registry) List(ctx context.Context, limit, offset int) ([]Account, error) {
	var rows []Account
	err := r.db.WithContext(ctx).
		Order("internal_id").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return rows, nil
}

func (r *Registry) insertOrReread(conn *gorm.DB, p Profile) (Account, error) {
	acc := Account{PlatformID: p.PlatformID, Handle: p.Handle, Name: p.Name}
	err := conn.Create(&acc).Error
	if err == nil {
		return acc, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return Account{}, err
	}

	r.logger.Debug("Account registered concurrently, re-reading",
		zap.Int64("platform_id", p.PlatformID))

	existing, found, err := findByPlatformID(conn, p.PlatformID)
	if err != nil {
		return Account{}, err
	}
	if !found {
		return Account{}, fmt.Errorf("account %d missing after duplicate key", p.PlatformID)
	}
	return existing, nil
}

// refresh updates handle and name when the platform reports new values.
// Placeholder profiles carry no handle and never overwrite known data.
func (r *Registry) refresh(conn *gorm.DB, acc *Account, p Profile) {
	if p.Handle == "" || (acc.Handle == p.Handle && acc.Name == p.Name) {
		return
	}
	err := conn.Model(acc).Updates(map[string]any{"handle": p.Handle, "name": p.Name}).Error
	if err != nil {
		r.logger.Warn("Failed to refresh account profile",
			zap.Int64("platform_id", p.PlatformID),
			zap.Error(err))
		return
	}
	acc.Handle = p.Handle
	acc.Name = p.Name
}

func findByPlatformID(db *gorm.DB, platformID int64) (Account, bool, error) {
	var acc Account
	err := db.Where("platform_id = ?", platformID).Take(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Account{}, false, nil
	}
	if err != nil {
		return Account{}, false, err
	}
	return acc, true, nil
}
