package integrations

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("integration not found")

// Repo stores integration configurations, keyed by platform.
type Repo interface {
	Upsert(ctx context.Context, in Integration) (Integration, error)
	GetByPlatform(ctx context.Context, platform string) (Integration, error)
	List(ctx context.Context) ([]Integration, error)
}
