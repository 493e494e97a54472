package followers

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultCredentialName is the record used when none is configured.
const DefaultCredentialName = "default"

// TokenCache persists a single named credential.
type TokenCache struct {
	db   *gorm.DB
	name string
}

// NewTokenCache creates a cache for the named credential.
func NewTokenCache(db *gorm.DB, name string) *TokenCache {
	if name == "" {
		name = DefaultCredentialName
	}
	return &TokenCache{db: db, name: name}
}

// Get returns the cached credential or ErrNotFound.
func (c *TokenCache) Get(ctx context.Context) (Credential, error) {
	var cred Credential
	err := c.db.WithContext(ctx).Where("name = ?", c.name).Take(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Credential{}, ErrNotFound
	}
	if err != nil {
		return Credential{}, fmt.Errorf("failed to read credential %s: %w", c.name, err)
	}
	return cred, nil
}

// Put stores cred under the cache name, replacing any previous value.
func (c *TokenCache) Put(ctx context.Context, cred Credential) error {
	cred.Name = c.name
	err := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"access_key", "access_secret", "expiry", "updated_at"}),
	}).Create(&cred).Error
	if err != nil {
		return fmt.Errorf("failed to store credential %s: %w", c.name, err)
	}
	return nil
}
