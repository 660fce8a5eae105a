// Package storage provides access to workbooks kept in object storage.
//
// It wraps the MinIO Go client behind a small Client interface, which supports both
// AWS S3 and self-hosted MinIO instances and is mocked in tests (core/storage/mocks).
//
// # Locations
//
// Objects are addressed as s3://bucket/key. ParseLocation splits such a location,
// ReadObject downloads an object after checking its bucket, and ListKeys lists the
// objects under a prefix with a given extension.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	bucket, key, err := storage.ParseLocation("s3://exports/stock.ods")
//	data, err := storage.ReadObject(ctx, client, bucket, key)
package storage
