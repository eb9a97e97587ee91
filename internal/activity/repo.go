package activity

import "context"

// Repo stores the activity feed. Insert prunes entries beyond the cap.
type Repo interface {
	Insert(ctx context.Context, entry Entry, cap int) error
	List(ctx context.Context, limit int) ([]Entry, error)
}
