package activity

import (
	"context"
	"time"

	"github.com/google/uuid"

	"recruiter-backend/internal/shared/telemetry"
)

// Recorder receives one event per state-changing operation. Record is
// fire-and-forget: failures must never surface to the mutating caller.
type Recorder interface {
	Record(ctx context.Context, action string, details map[string]any)
}

// FeedRecorder writes events into the activity feed, trimming to Cap entries.
type FeedRecorder struct {
	Repo Repo
	Cap  int
}

func NewFeedRecorder(repo Repo, cap int) *FeedRecorder {
	if cap <= 0 {
		cap = 500
	}
	return &FeedRecorder{Repo: repo, Cap: cap}
}

func (r *FeedRecorder) Record(ctx context.Context, action string, details map[string]any) {
	if r == nil || r.Repo == nil {
		return
	}
	entry := Entry{
		ID:        uuid.NewString(),
		Action:    action,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
	if err := r.Repo.Insert(ctx, entry, r.Cap); err != nil {
		telemetry.Warn("activity.record_failed", map[string]any{
			"action": action,
			"error":  err.Error(),
		})
	}
}

// NopRecorder discards events. Useful in tests.
type NopRecorder struct{}

func (NopRecorder) Record(ctx context.Context, action string, details map[string]any) {}
