package followers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCache(t *testing.T) {
	db := newTestDB(t)
	cache := NewTokenCache(db, "")
	ctx := context.Background()

	_, err := cache.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	expiry := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, cache.Put(ctx, Credential{Key: "access-1", Secret: "refresh-1", Expiry: &expiry}))

	cred, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultCredentialName, cred.Name)
	assert.Equal(t, "access-1", cred.Key)
	assert.Equal(t, "refresh-1", cred.Secret)
	require.NotNil(t, cred.Expiry)
	assert.True(t, expiry.Equal(*cred.Expiry))

	require.NoError(t, cache.Put(ctx, Credential{Key: "access-2", Secret: "refresh-2"}))
	cred, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access-2", cred.Key)
	assert.Nil(t, cred.Expiry)
	assert.Equal(t, int64(1), countRows(t, db, &Credential{}, ""))
}

func TestTokenCache_NamedRecordsAreIndependent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, NewTokenCache(db, "alpha").Put(ctx, Credential{Key: "a"}))

	_, err := NewTokenCache(db, "beta").Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}
