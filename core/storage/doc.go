// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so the reporter can publish run artifacts (the
// enriched dataset and both reports) to a bucket consumed by downstream
// dashboard tooling. The abstraction supports both AWS S3 and self-hosted
// MinIO instances.
//
// # Client Interface
//
// The Client interface covers the small set of operations the reporter needs,
// making it easy to mock storage interactions for unit testing (see
// core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - MakeBucket: Creates the report bucket if needed.
//   - PutObject: Uploads an artifact (with size and options).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "recon-reports")
package storage
