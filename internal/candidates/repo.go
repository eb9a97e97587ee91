package candidates

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("candidate not found")

// Filter narrows List results. Zero values are ignored.
type Filter struct {
	ProjectID string
	Stage     string
	Source    string
	Search    string
	MinScore  *int
	MaxScore  *int
	// Sort names a field (name, email, score, stage, createdAt), with a
	// leading '-' for descending order.
	Sort string
}

// Repo is the durable candidate store. Update runs the mutator under per-id
// serialization so concurrent read-modify-write sequences on the same
// candidate cannot lose updates; the mutator receives the freshly loaded
// record and its changes are persisted atomically.
type Repo interface {
	Create(ctx context.Context, c Candidate) error
	GetByID(ctx context.Context, id string) (Candidate, error)
	List(ctx context.Context, f Filter) ([]Candidate, error)
	Update(ctx context.Context, id string, mutate func(*Candidate) error) (Candidate, error)
	Delete(ctx context.Context, id string) error
}
