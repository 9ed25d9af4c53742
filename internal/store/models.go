package store

import "time"

// AssignmentRow is one recorded visitor-to-bucket exposure.
type AssignmentRow struct {
	ID        int64
	TestName  string
	Bucket    string
	VisitorID string
	CreatedAt time.Time
}

// BucketStats counts distinct visitors per bucket for one test.
type BucketStats struct {
	Bucket   string
	Visitors int
}
