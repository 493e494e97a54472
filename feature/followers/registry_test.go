package followers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestRegistry_ResolveOrCreateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	reg := NewRegistry(db, zap.NewNop())
	ctx := context.Background()

	first, err := reg.ResolveOrCreate(ctx, Profile{PlatformID: 42, Handle: "gopher", Name: "Gopher"})
	require.NoError(t, err)
	assert.NotZero(t, first.InternalID)

	again, err := reg.ResolveOrCreate(ctx, Profile{PlatformID: 42, Handle: "gopher", Name: "Gopher"})
	require.NoError(t, err)
	assert.Equal(t, first.InternalID, again.InternalID)

	other, err := reg.ResolveOrCreate(ctx, Profile{PlatformID: 43, Handle: "other"})
	require.NoError(t, err)
	assert.NotEqual(t, first.InternalID, other.InternalID)

	assert.Equal(t, int64(1), countRows(t, db, &Account{}, "platform_id = ?", 42))
}

func TestRegistry_SameIDDifferentHandles(t *testing.T) {
	db := newTestDB(t)
	reg := NewRegistry(db, zap.NewNop())
	ctx := context.Background()

	first, err := reg.ResolveOrCreate(ctx, Profile{PlatformID: 42, Handle: "old_handle"})
	require.NoError(t, err)
	second, err := reg.ResolveOrCreate(ctx, Profile{PlatformID: 42, Handle: "new_handle", Name: "Renamed"})
	require.NoError(t, err)

	assert.Equal(t, first.InternalID, second.InternalID)
	assert.Equal(t, "new_handle", second.Handle)
	assert.Equal(t, int64(1), countRows(t, db, &Account{}, "platform_id = ?", 42))

	stored, err := reg.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "new_handle", stored.Handle)
	assert.Equal(t, "Renamed", stored.Name)
}

func TestRegistry_PlaceholderKeepsKnownProfile(t *testing.T) {
	db := newTestDB(t)
	reg := NewRegistry(db, zap.NewNop())
	ctx := context.Background()

	_, err := reg.ResolveOrCreate(ctx, Profile{PlatformID: 7, Handle: "seven", Name: "Seven"})
	require.NoError(t, err)

	acc, err := reg.ResolveOrCreate(ctx, Profile{PlatformID: 7})
	require.NoError(t, err)
	assert.Equal(t, "seven", acc.Handle)
	assert.Equal(t, "Seven", acc.Name)
}

func TestRegistry_InsertOrRereadOnExistingRow(t *testing.T) {
	db := newTestDB(t)
	reg := NewRegistry(db, zap.NewNop())

	winner := Account{PlatformID: 99, Handle: "winner"}
	require.NoError(t, db.Create(&winner).Error)

	// Simulates losing the race: the lookup missed, the insert collides.
	acc, err := reg.insertOrReread(db.Session(&gorm.Session{NewDB: true}), Profile{PlatformID: 99, Handle: "loser"})
	require.NoError(t, err)
	assert.Equal(t, winner.InternalID, acc.InternalID)
	assert.Equal(t, "winner", acc.Handle)
	assert.Equal(t, int64(1), countRows(t, db, &Account{}, "platform_id = ?", 99))
}

func TestRegistry_DuplicateKeyRereads(t *testing.T) {
	db, mock := newMockDB(t)
	reg := NewRegistry(db, zap.NewNop())
	now := time.Now()

	mock.ExpectQuery("SELECT \\* FROM `accounts` WHERE platform_id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"internal_id", "platform_id", "handle", "name", "created_at", "updated_at"}))
	mock.ExpectExec("INSERT INTO `accounts`").
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry '42' for key 'idx_accounts_platform_id'"})
	mock.ExpectQuery("SELECT \\* FROM `accounts` WHERE platform_id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"internal_id", "platform_id", "handle", "name", "created_at", "updated_at"}).
			AddRow(17, 42, "gopher", "Gopher", now, now))

	acc, err := reg.ResolveOrCreate(context.Background(), Profile{PlatformID: 42, Handle: "gopher", Name: "Gopher"})
	require.NoError(t, err)
	assert.Equal(t, int64(17), acc.InternalID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistry_OtherInsertErrorsPropagate(t *testing.T) {
	db, mock := newMockDB(t)
	reg := NewRegistry(db, zap.NewNop())
	boom := errors.New("connection reset by peer")

	mock.ExpectQuery("SELECT \\* FROM `accounts` WHERE platform_id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"internal_id", "platform_id"}))
	mock.ExpectExec("INSERT INTO `accounts`").WillReturnError(boom)

	_, err := reg.ResolveOrCreate(context.Background(), Profile{PlatformID: 42})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistry_ResolveOrCreateManyPreservesOrder(t *testing.T) {
	db := newTestDB(t)
	reg := NewRegistry(db, zap.NewNop())

	accounts, err := reg.ResolveOrCreateMany(context.Background(), profiles(30, 10, 20))
	require.NoError(t, err)
	require.Len(t, accounts, 3)
	assert.Equal(t, []int64{30, 10, 20}, []int64{accounts[0].PlatformID, accounts[1].PlatformID, accounts[2].PlatformID})
}

func TestRegistry_LookupListGet(t *testing.T) {
	db := newTestDB(t)
	reg := NewRegistry(db, zap.NewNop())
	ctx := context.Background()

	_, err := reg.ResolveOrCreateMany(ctx, profiles(1, 2, 3))
	require.NoError(t, err)

	found, err := reg.LookupMany(ctx, []int64{2, 3, 4})
	require.NoError(t, err)
	assert.Len(t, found, 2)
	assert.Contains(t, found, int64(2))
	assert.NotContains(t, found, int64(4))

	page, err := reg.List(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, int64(2), page[0].PlatformID)

	_, err = reg.Get(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}
