package settings

import (
	"context"
	"sync"
)

// Settings is the single company-wide configuration record.
type Settings struct {
	OnboardingComplete bool   `json:"onboardingComplete"`
	CompanyName        string `json:"companyName"`
	Timezone           string `json:"timezone"`
}

// Defaults returns the settings used before anything is stored.
func Defaults() Settings {
	return Settings{Timezone: "UTC"}
}

// Repo stores the single settings record.
type Repo interface {
	Get(ctx context.Context) (Settings, error)
	Put(ctx context.Context, s Settings) error
}

type MemoryRepo struct {
	mu       sync.RWMutex
	settings Settings
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{settings: Defaults()}
}

func (r *MemoryRepo) Get(ctx context.Context) (Settings, error) {
	if err := ctx.Err(); err != nil {
		return Settings{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings, nil
}

func (r *MemoryRepo) Put(ctx context.Context, s Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	r.settings = s
	r.mu.Unlock()
	return nil
}
