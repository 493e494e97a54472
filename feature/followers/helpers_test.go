package followers

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"follower-tracker/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// newTestDB returns a migrated in-memory SQLite database private to the test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Connect(database.Config{
		Driver:       database.DriverSQLite,
		Name:         "file:" + name + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// newMockDB returns a gorm handle on the MySQL dialect backed by sqlmock.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := database.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}))
	require.NoError(t, err)
	return db, mock
}

func countRows(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

// sliceCursor serves profiles once, then fails with err if set.
type sliceCursor struct {
	profiles []Profile
	err      error
	pos      int
	current  Profile
	done     bool
}

func (c *sliceCursor) Next(context.Context) bool {
	if c.done {
		return false
	}
	if c.pos >= len(c.profiles) {
		c.done = true
		return false
	}
	c.current = c.profiles[c.pos]
	c.pos++
	return true
}

func (c *sliceCursor) Profile() Profile { return c.current }
func (c *sliceCursor) Err() error       { return c.err }

// fakeSource hands out one cursor per call over its profiles.
type fakeSource struct {
	profiles []Profile
	openErr  error
	iterErr  error
	calls    int
}

func (s *fakeSource) Followers(context.Context, string, Credential) (Cursor, error) {
	s.calls++
	if s.openErr != nil {
		return nil, s.openErr
	}
	return &sliceCursor{profiles: s.profiles, err: s.iterErr}, nil
}

func (s *fakeSource) set(ids ...int64) {
	s.profiles = profiles(ids...)
}

func profiles(ids ...int64) []Profile {
	out := make([]Profile, len(ids))
	for i, id := range ids {
		out[i] = Profile{PlatformID: id, Handle: handleFor(id), Name: "User " + handleFor(id)}
	}
	return out
}

func handleFor(id int64) string {
	return fmt.Sprintf("user%d", id)
}

type fakeAuthorizer struct {
	cred  Credential
	err   error
	calls int
}

func (a *fakeAuthorizer) Authorize(context.Context) (Credential, error) {
	a.calls++
	return a.cred, a.err
}

type fakeLookup struct {
	known map[int64]Profile
	err   error
	asked [][]int64
}

func (l *fakeLookup) LookupProfiles(_ context.Context, _ Credential, ids []int64) ([]Profile, error) {
	l.asked = append(l.asked, ids)
	if l.err != nil {
		return nil, l.err
	}
	var out []Profile
	for _, id := range ids {
		if p, ok := l.known[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type captureReporter struct {
	mu      sync.Mutex
	results []*RunResult
}

func (r *captureReporter) Report(_ context.Context, result *RunResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
}

