package integrity

import (
	"context"
	"errors"

	"follower-tracker/core/storage"
	"follower-tracker/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrStorageDisabled is returned by storage checks when archiving is off.
var ErrStorageDisabled = errors.New("report storage is disabled")

// Service handles integrity checks.
type Service struct {
	db      *gorm.DB
	models  []any
	client  storage.Client
	storage storage.Config
	prefix  string
	logger  *zap.Logger
}

// NewService creates a new integrity service. client may be nil when report
// storage is disabled.
func NewService(db *gorm.DB, models []any, client storage.Client, cfg storage.Config, prefix string, logger *zap.Logger) *Service {
	return &Service{
		db:      db,
		models:  models,
		client:  client,
		storage: cfg,
		prefix:  prefix,
		logger:  logger,
	}
}

// CheckServer compares the database schema with the models.
func (s *Service) CheckServer() (*checks.ServerReport, error) {
	return checks.CheckServerIntegrity(s.db, s.models...)
}

// CheckStorage inspects the report archive bucket.
func (s *Service) CheckStorage(ctx context.Context) (*checks.StorageReport, error) {
	if s.client == nil {
		return nil, ErrStorageDisabled
	}
	return checks.CheckStorage(ctx, s.client, s.storage.Bucket, s.prefix)
}

// FixStorage creates the report archive bucket if needed.
func (s *Service) FixStorage(ctx context.Context) (*checks.StorageReport, error) {
	if s.client == nil {
		return nil, ErrStorageDisabled
	}
	s.logger.Info("Ensuring report bucket", zap.String("bucket", s.storage.Bucket))
	return checks.FixStorage(ctx, s.client, s.storage.Bucket, s.storage.Region)
}

// Healthy runs every check and reports whether all passed along with the
// individual results.
func (s *Service) Healthy(ctx context.Context) (bool, map[string]any) {
	healthy := true
	report := make(map[string]any)

	if srv, err := s.CheckServer(); err != nil {
		healthy = false
		report["server"] = map[string]any{"status": "error", "error": err.Error()}
	} else {
		healthy = healthy && srv.Matched
		report["server"] = srv
	}

	switch st, err := s.CheckStorage(ctx); {
	case errors.Is(err, ErrStorageDisabled):
		report["storage"] = map[string]any{"status": "disabled"}
	case err != nil:
		healthy = false
		report["storage"] = map[string]any{"status": "error", "error": err.Error()}
	default:
		healthy = healthy && st.Exists
		report["storage"] = st
	}

	return healthy, report
}
