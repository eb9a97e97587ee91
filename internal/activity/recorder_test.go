package activity

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestFeedIsNewestFirstAndCapped(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		entry := Entry{
			ID:        fmt.Sprintf("entry-%d", i),
			Action:    ActionCandidateAdded,
			Timestamp: time.Now().UTC(),
		}
		if err := repo.Insert(ctx, entry, 5); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	entries, err := repo.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("expected feed capped at 5, got %d", len(entries))
	}
	if entries[0].ID != "entry-6" {
		t.Fatalf("expected newest entry first, got %q", entries[0].ID)
	}
}

func TestListLimit(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	for i := 0; i < 4; i++ {
		if err := repo.Insert(ctx, Entry{ID: fmt.Sprintf("e-%d", i)}, 0); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	entries, err := repo.List(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}

type failingRepo struct{}

func (failingRepo) Insert(ctx context.Context, entry Entry, cap int) error {
	return errors.New("feed unavailable")
}

func (failingRepo) List(ctx context.Context, limit int) ([]Entry, error) {
	return nil, errors.New("feed unavailable")
}

func TestRecorderSwallowsRepoFailures(t *testing.T) {
	recorder := NewFeedRecorder(failingRepo{}, 5)
	// Must not panic or surface the error.
	recorder.Record(context.Background(), ActionStageChange, map[string]any{"from": "A", "to": "B"})
}

func TestRecorderAssignsIDAndTimestamp(t *testing.T) {
	repo := NewMemoryRepo()
	recorder := NewFeedRecorder(repo, 10)
	recorder.Record(context.Background(), ActionBatchScore, map[string]any{"scored": 3})

	entries, err := repo.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].ID == "" {
		t.Fatalf("expected generated id")
	}
	if entries[0].Timestamp.IsZero() {
		t.Fatalf("expected timestamp set")
	}
	if entries[0].Details["scored"] != 3 {
		t.Fatalf("expected details preserved, got %v", entries[0].Details)
	}
}
