package followers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRecorder_EventCount(t *testing.T) {
	db := newTestDB(t)
	rec := NewRecorder(db, zap.NewNop())
	reg := NewRegistry(db, zap.NewNop())
	ctx := context.Background()
	runTime := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	accounts, err := reg.ResolveOrCreateMany(ctx, profiles(1, 2, 3))
	require.NoError(t, err)

	report := rec.Record(ctx, "target", internalIDs(accounts[:2]), internalIDs(accounts[2:]), runTime)
	assert.Equal(t, 3, report.Written)
	assert.Empty(t, report.Failures)

	assert.Equal(t, int64(3), countRows(t, db, &FollowEvent{}, "run_timestamp = ?", runTime))
	assert.Equal(t, int64(2), countRows(t, db, &FollowEvent{}, "kind = ?", KindJoined))
	assert.Equal(t, int64(1), countRows(t, db, &FollowEvent{}, "kind = ? AND internal_id = ?", KindLeft, accounts[2].InternalID))
}

func TestRecorder_FailuresDoNotStopOtherWrites(t *testing.T) {
	db, mock := newMockDB(t)
	rec := NewRecorder(db, zap.NewNop())

	mock.ExpectExec("INSERT INTO `follow_events`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `follow_events`").WillReturnError(errors.New("deadlock"))
	mock.ExpectExec("INSERT INTO `follow_events`").WillReturnResult(sqlmock.NewResult(3, 1))

	report := rec.Record(context.Background(), "target", []int64{10, 11}, []int64{12}, time.Now().UTC())

	assert.Equal(t, 2, report.Written)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, int64(11), report.Failures[0].InternalID)
	assert.Equal(t, KindJoined, report.Failures[0].Kind)
	assert.Contains(t, report.Failures[0].Error, "deadlock")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecorder_List(t *testing.T) {
	db := newTestDB(t)
	rec := NewRecorder(db, zap.NewNop())
	reg := NewRegistry(db, zap.NewNop())
	ctx := context.Background()
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(24 * time.Hour)

	accounts, err := reg.ResolveOrCreateMany(ctx, profiles(1, 2))
	require.NoError(t, err)
	rec.Record(ctx, "alpha", internalIDs(accounts), nil, early)
	rec.Record(ctx, "alpha", nil, internalIDs(accounts[:1]), late)
	rec.Record(ctx, "beta", internalIDs(accounts[1:]), nil, late)

	all, err := rec.List(ctx, EventFilter{Target: "alpha"})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, KindLeft, all[0].Kind)
	require.NotNil(t, all[0].Account)
	assert.Equal(t, int64(1), all[0].Account.PlatformID)

	joined, err := rec.List(ctx, EventFilter{Kind: KindJoined})
	require.NoError(t, err)
	assert.Len(t, joined, 3)

	recent, err := rec.List(ctx, EventFilter{Since: late})
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	limited, err := rec.List(ctx, EventFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
