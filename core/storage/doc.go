// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small Client interface covering what
// the s3 file backend needs: checking and creating the bucket, stat-ing,
// downloading and listing objects. This supports both AWS S3 and self-hosted
// MinIO instances.
//
// The Client interface makes storage interactions easy to mock in unit tests
// (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, "files")
package storage
