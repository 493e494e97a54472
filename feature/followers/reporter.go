package followers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"follower-tracker/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// reportTimeLayout names archived reports after their run time.
const reportTimeLayout = "20060102T150405Z"

// LogReporter writes run results to the structured log.
type LogReporter struct {
	logger *zap.Logger
	sample int
}

// NewLogReporter creates a log reporter printing at most sample accounts per
// kind. A non-positive sample prints none.
func NewLogReporter(logger *zap.Logger, sample int) *LogReporter {
	return &LogReporter{logger: logger, sample: sample}
}

// Report logs the summary and a sample of joined and left accounts.
func (r *LogReporter) Report(_ context.Context, result *RunResult) {
	l := r.logger.With(
		zap.String("target", result.Target),
		zap.Time("run_time", result.RunTime),
		zap.Bool("dry_run", result.DryRun))

	l.Info("Run completed",
		zap.Int("followers", result.Summary.Current),
		zap.Int("continuing", result.Summary.Continuing),
		zap.Int("joined", result.Summary.Joined),
		zap.Int("left", result.Summary.Left),
		zap.Int("events_written", result.EventsWritten),
		zap.Int("event_failures", len(result.EventFailures)))

	r.logSample(l, KindJoined, result.Joined)
	r.logSample(l, KindLeft, result.Left)
}

func (r *LogReporter) logSample(l *zap.Logger, kind EventKind, accounts []Account) {
	for i, acc := range accounts {
		if i >= r.sample {
			l.Info("Further accounts omitted", zap.String("kind", string(kind)), zap.Int("omitted", len(accounts)-i))
			return
		}
		l.Info("Follower change",
			zap.String("kind", string(kind)),
			zap.Int64("platform_id", acc.PlatformID),
			zap.Int64("internal_id", acc.InternalID),
			zap.String("handle", acc.Handle))
	}
}

// ArchivedReport describes a stored run report.
type ArchivedReport struct {
	Name         string    `json:"name"`
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// ArchiveReporter stores run results as JSON documents in object storage.
type ArchiveReporter struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// NewArchiveReporter creates an archive reporter writing below prefix.
func NewArchiveReporter(client storage.Client, bucket, prefix string, logger *zap.Logger) *ArchiveReporter {
	return &ArchiveReporter{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		logger: logger,
	}
}

// ObjectKey returns where the report of a run is stored.
func (r *ArchiveReporter) ObjectKey(target string, runTime time.Time) string {
	return path.Join(r.prefix, target, runTime.UTC().Format(reportTimeLayout)+".json")
}

// Report uploads the result. Failures are logged.
func (r *ArchiveReporter) Report(ctx context.Context, result *RunResult) {
	key := r.ObjectKey(result.Target, result.RunTime)
	if err := r.put(ctx, key, result); err != nil {
		r.logger.Error("Failed to archive run report",
			zap.String("target", result.Target),
			zap.String("key", key),
			zap.Error(err))
		return
	}
	r.logger.Debug("Archived run report", zap.String("key", key))
}

func (r *ArchiveReporter) put(ctx context.Context, key string, result *RunResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	_, err = r.client.PutObject(ctx, r.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload report: %w", err)
	}
	return nil
}

// List returns the archived reports of target, oldest first.
func (r *ArchiveReporter) List(ctx context.Context, target string) ([]ArchivedReport, error) {
	prefix := path.Join(r.prefix, target) + "/"
	var reports []ArchivedReport
	for obj := range r.client.ListObjects(ctx, r.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list reports of %s: %w", target, obj.Err)
		}
		if !strings.HasSuffix(obj.Key, ".json") {
			continue
		}
		reports = append(reports, ArchivedReport{
			Name:         strings.TrimSuffix(path.Base(obj.Key), ".json"),
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}
	return reports, nil
}

// Get loads one archived report by name, as returned by List.
func (r *ArchiveReporter) Get(ctx context.Context, target, name string) (*RunResult, error) {
	if _, err := time.Parse(reportTimeLayout, name); err != nil {
		return nil, ErrNotFound
	}
	key := path.Join(r.prefix, target, name+".json")
	obj, err := r.client.GetObject(ctx, r.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to open report %s: %w", key, err)
	}
	defer obj.Close()

	var result RunResult
	if err := json.NewDecoder(obj).Decode(&result); err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to decode report %s: %w", key, err)
	}
	return &result, nil
}

// MultiReporter fans a result out to several reporters in order.
type MultiReporter []Reporter

// Report forwards the result to every reporter.
func (m MultiReporter) Report(ctx context.Context, result *RunResult) {
	for _, r := range m {
		r.Report(ctx, result)
	}
}
