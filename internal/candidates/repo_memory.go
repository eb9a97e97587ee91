package candidates

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryRepo keeps candidates in a map. A single mutex held across Update's
// mutator gives the per-id serialization the store contract requires.
type MemoryRepo struct {
	mu         sync.Mutex
	candidates map[string]Candidate
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{candidates: make(map[string]Candidate)}
}

func (r *MemoryRepo) Create(ctx context.Context, c Candidate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.Version == 0 {
		c.Version = 1
	}
	r.candidates[c.ID] = clone(c)
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Candidate, error) {
	if err := ctx.Err(); err != nil {
		return Candidate{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.candidates[id]
	if !ok {
		return Candidate{}, ErrNotFound
	}
	return clone(c), nil
}

func (r *MemoryRepo) List(ctx context.Context, f Filter) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Candidate, 0, len(r.candidates))
	for _, c := range r.candidates {
		if matchesFilter(c, f) {
			out = append(out, clone(c))
		}
	}
	sortCandidates(out, f.Sort)
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, id string, mutate func(*Candidate) error) (Candidate, error) {
	if err := ctx.Err(); err != nil {
		return Candidate{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.candidates[id]
	if !ok {
		return Candidate{}, ErrNotFound
	}
	working := clone(stored)
	if err := mutate(&working); err != nil {
		return Candidate{}, err
	}
	working.ID = stored.ID
	working.Version = stored.Version + 1
	working.UpdatedAt = time.Now().UTC()
	r.candidates[id] = clone(working)
	return working, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.candidates[id]; !ok {
		return ErrNotFound
	}
	delete(r.candidates, id)
	return nil
}

func matchesFilter(c Candidate, f Filter) bool {
	if f.ProjectID != "" && c.ProjectID != f.ProjectID {
		return false
	}
	if f.Stage != "" && c.Stage != f.Stage {
		return false
	}
	if f.Source != "" && c.Source != f.Source {
		return false
	}
	if f.MinScore != nil {
		score := 0
		if c.Score != nil {
			score = *c.Score
		}
		if score < *f.MinScore {
			return false
		}
	}
	if f.MaxScore != nil {
		score := 0
		if c.Score != nil {
			score = *c.Score
		}
		if score > *f.MaxScore {
			return false
		}
	}
	if f.Search != "" {
		haystack := strings.ToLower(c.Name + " " + c.Email + " " + c.Role)
		if !strings.Contains(haystack, strings.ToLower(f.Search)) {
			return false
		}
	}
	return true
}

func sortCandidates(items []Candidate, sortKey string) {
	desc := strings.HasPrefix(sortKey, "-")
	field := strings.TrimPrefix(sortKey, "-")
	if field == "" {
		field = "createdAt"
		desc = false
	}
	less := func(a, b Candidate) bool {
		switch field {
		case "name":
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case "email":
			return strings.ToLower(a.Email) < strings.ToLower(b.Email)
		case "stage":
			return a.Stage < b.Stage
		case "score":
			av, bv := 0, 0
			if a.Score != nil {
				av = *a.Score
			}
			if b.Score != nil {
				bv = *b.Score
			}
			if av != bv {
				return av < bv
			}
			return a.ID < b.ID
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.ID < b.ID
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}
