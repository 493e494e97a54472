// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small Client interface. The follower
// tracker uses it to archive one JSON report per run, which works against
// both AWS S3 and self-hosted MinIO.
//
// # Client Interface
//
// The Client interface keeps only the calls the archive needs, which makes it
// easy to mock (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	created, err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
