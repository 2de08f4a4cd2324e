// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so backups of the canonical and workspace files can
// be mirrored to AWS S3 or a self-hosted MinIO instance. Mirroring is optional and
// controlled by Config.Enabled.
//
// # Client Interface
//
// The Client interface exposes only the calls the backup mirror needs, which keeps
// it easy to mock in unit tests (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - MakeBucket: Creates a new bucket if needed.
//   - PutObject: Uploads content (with size and options).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	err = storage.EnsureBucket(ctx, client, config.Bucket, config.Region)
package storage
