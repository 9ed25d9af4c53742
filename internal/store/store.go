package store

import "context"

// Store records which bucket each visitor was assigned. It is purely
// observational: losing it never changes a bucket decision, since decisions
// are carried in the visitor's token.
type Store interface {
	RecordAssignment(ctx context.Context, testName, bucket, visitorID string) error
	GetBucketStats(ctx context.Context, testName string) ([]BucketStats, error)
	CountAssignments(ctx context.Context) (int, error)

	// Lifecycle
	Close() error
}
