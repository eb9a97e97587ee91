package roles

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	roles map[string]Role
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{roles: make(map[string]Role)}
}

func (r *MemoryRepo) Create(ctx context.Context, role Role) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roles[role.ID] = cloneRole(role)
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Role, error) {
	if err := ctx.Err(); err != nil {
		return Role{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	role, ok := r.roles[id]
	if !ok {
		return Role{}, ErrNotFound
	}
	return cloneRole(role), nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Role, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Role, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, cloneRole(role))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, role Role) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.roles[role.ID]; !ok {
		return ErrNotFound
	}
	r.roles[role.ID] = cloneRole(role)
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.roles[id]; !ok {
		return ErrNotFound
	}
	delete(r.roles, id)
	return nil
}

func cloneRole(role Role) Role {
	out := role
	out.RequiredSkills = append([]string(nil), role.RequiredSkills...)
	out.NiceToHaveSkills = append([]string(nil), role.NiceToHaveSkills...)
	out.MustHaveQualifications = append([]string(nil), role.MustHaveQualifications...)
	out.DealBreakers = append([]string(nil), role.DealBreakers...)
	out.CultureFitCriteria = append([]string(nil), role.CultureFitCriteria...)
	out.PipelineStages = append([]string(nil), role.PipelineStages...)
	return out
}
