package scoring

import (
	"context"
	"sync"
)

// Store is the weight configuration source. Get is read-through: scoring
// callers fetch fresh weights on every pass so a Put takes effect on the
// next score with no invalidation step.
type Store interface {
	Get(ctx context.Context) (Weights, error)
	Put(ctx context.Context, w Weights) error
}

// MemoryStore keeps weights in process memory, seeded with defaults.
type MemoryStore struct {
	mu      sync.RWMutex
	weights Weights
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{weights: DefaultWeights()}
}

func (s *MemoryStore) Get(ctx context.Context) (Weights, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(Weights, len(s.weights))
	for k, v := range s.weights {
		out[k] = v
	}
	return out, nil
}

func (s *MemoryStore) Put(ctx context.Context, w Weights) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	copied := make(Weights, len(w))
	for k, v := range w {
		copied[k] = v
	}
	s.mu.Lock()
	s.weights = copied
	s.mu.Unlock()
	return nil
}
