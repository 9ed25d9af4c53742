package store_test

import (
	"context"
	"testing"

	"github.com/edgesplit/edgesplit/internal/store"
	"github.com/edgesplit/edgesplit/internal/testutil"
)

var _ store.Store = (*store.SQLiteStore)(nil)

func TestRecordAssignment(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()

	if err := s.RecordAssignment(ctx, "buttonsize", "small", "visitor-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n, err := s.CountAssignments(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 assignment, got %d", n)
	}
}

func TestRecordAssignment_DedupPerVisitor(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := s.RecordAssignment(ctx, "buttonsize", "small", "visitor-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	n, err := s.CountAssignments(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("expected repeat exposures to dedup to 1 row, got %d", n)
	}
}

func TestGetBucketStats(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()

	seed := map[string]int{"small": 3, "medium": 2, "large": 1}
	i := 0
	for b, n := range seed {
		for j := 0; j < n; j++ {
			if err := s.RecordAssignment(ctx, "buttonsize", b, visitorID(i)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			i++
		}
	}
	// A different test must not leak into buttonsize stats.
	if err := s.RecordAssignment(ctx, "itemcount", "10", visitorID(0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stats, err := s.GetBucketStats(ctx, "buttonsize")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stats) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(stats))
	}
	got := map[string]int{}
	for _, bs := range stats {
		got[bs.Bucket] = bs.Visitors
	}
	for b, n := range seed {
		if got[b] != n {
			t.Errorf("bucket %s: expected %d visitors, got %d", b, n, got[b])
		}
	}
}

func TestGetAssignments(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()

	if err := s.RecordAssignment(ctx, "itemcount", "15", "visitor-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := s.GetAssignments(ctx, "itemcount")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Bucket != "15" || rows[0].VisitorID != "visitor-1" {
		t.Errorf("unexpected row: %+v", rows[0])
	}
}

func visitorID(i int) string {
	return "visitor-" + string(rune('a'+i))
}
