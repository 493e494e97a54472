package checks

import (
	"context"
	"fmt"

	"follower-tracker/core/storage"

	"github.com/minio/minio-go/v7"
)

// StorageReport describes the report archive bucket.
type StorageReport struct {
	Bucket  string `json:"bucket"`
	Exists  bool   `json:"exists"`
	Reports int    `json:"reports"`
	Status  string `json:"status"` // "ok", "missing", "fixed"
}

// CheckStorage verifies that the archive bucket exists and counts the
// archived reports below prefix.
func CheckStorage(ctx context.Context, client storage.Client, bucket, prefix string) (*StorageReport, error) {
	report := &StorageReport{Bucket: bucket, Status: "missing"}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return report, nil
	}
	report.Exists = true
	report.Status = "ok"

	opts := minio.ListObjectsOptions{Prefix: prefix + "/", Recursive: true}
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list reports: %w", obj.Err)
		}
		report.Reports++
	}
	return report, nil
}

// FixStorage creates the archive bucket when it is missing.
func FixStorage(ctx context.Context, client storage.Client, bucket, region string) (*StorageReport, error) {
	created, err := storage.EnsureBucket(ctx, client, bucket, region)
	if err != nil {
		return nil, err
	}
	status := "ok"
	if created {
		status = "fixed"
	}
	return &StorageReport{Bucket: bucket, Exists: true, Status: status}, nil
}
