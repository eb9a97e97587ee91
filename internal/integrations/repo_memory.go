package integrations

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type MemoryRepo struct {
	mu           sync.RWMutex
	integrations map[string]Integration
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{integrations: make(map[string]Integration)}
}

func (r *MemoryRepo) Upsert(ctx context.Context, in Integration) (Integration, error) {
	if err := ctx.Err(); err != nil {
		return Integration{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.integrations[in.Platform]
	if ok {
		in.ID = existing.ID
		if IsMasked(in.APIKey) || in.APIKey == "" {
			in.APIKey = existing.APIKey
		}
	} else if in.ID == "" {
		in.ID = uuid.NewString()
	}
	if in.SyncStatus == "" {
		in.SyncStatus = SyncNever
	}
	r.integrations[in.Platform] = in
	return in, nil
}

func (r *MemoryRepo) GetByPlatform(ctx context.Context, platform string) (Integration, error) {
	if err := ctx.Err(); err != nil {
		return Integration{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	in, ok := r.integrations[platform]
	if !ok {
		return Integration{}, ErrNotFound
	}
	return in, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Integration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Integration, 0, len(r.integrations))
	for _, in := range r.integrations {
		out = append(out, in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Platform < out[j].Platform })
	return out, nil
}
