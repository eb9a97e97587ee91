package integrations

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, in Integration) (Integration, error) {
	existing, err := r.GetByPlatform(ctx, in.Platform)
	switch {
	case err == nil:
		in.ID = existing.ID
		if IsMasked(in.APIKey) || in.APIKey == "" {
			in.APIKey = existing.APIKey
		}
	case errors.Is(err, ErrNotFound):
		if in.ID == "" {
			in.ID = uuid.NewString()
		}
	default:
		return Integration{}, err
	}
	if in.SyncStatus == "" {
		in.SyncStatus = SyncNever
	}

	const query = `
INSERT INTO integrations (id, platform, api_key, subdomain, enabled, last_sync, sync_status, candidates_synced, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
ON CONFLICT (platform) DO UPDATE SET
  api_key = EXCLUDED.api_key,
  subdomain = EXCLUDED.subdomain,
  enabled = EXCLUDED.enabled,
  last_sync = EXCLUDED.last_sync,
  sync_status = EXCLUDED.sync_status,
  candidates_synced = EXCLUDED.candidates_synced,
  updated_at = now()`
	_, err = r.DB.ExecContext(ctx, query,
		in.ID, in.Platform, in.APIKey, in.Subdomain, in.Enabled,
		in.LastSync, in.SyncStatus, in.CandidatesSynced,
	)
	if err != nil {
		return Integration{}, err
	}
	return in, nil
}

func (r *PGRepo) GetByPlatform(ctx context.Context, platform string) (Integration, error) {
	const query = `
SELECT id, platform, api_key, subdomain, enabled, last_sync, sync_status, candidates_synced
FROM integrations WHERE platform = $1 LIMIT 1`
	var in Integration
	var lastSync sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, platform).Scan(
		&in.ID, &in.Platform, &in.APIKey, &in.Subdomain, &in.Enabled,
		&lastSync, &in.SyncStatus, &in.CandidatesSynced,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Integration{}, ErrNotFound
		}
		return Integration{}, err
	}
	if lastSync.Valid {
		t := lastSync.Time
		in.LastSync = &t
	}
	return in, nil
}

func (r *PGRepo) List(ctx context.Context) ([]Integration, error) {
	const query = `
SELECT id, platform, api_key, subdomain, enabled, last_sync, sync_status, candidates_synced
FROM integrations ORDER BY platform ASC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Integration
	for rows.Next() {
		var in Integration
		var lastSync sql.NullTime
		if err := rows.Scan(
			&in.ID, &in.Platform, &in.APIKey, &in.Subdomain, &in.Enabled,
			&lastSync, &in.SyncStatus, &in.CandidatesSynced,
		); err != nil {
			return nil, err
		}
		if lastSync.Valid {
			t := lastSync.Time
			in.LastSync = &t
		}
		out = append(out, in)
	}
	return out, rows.Err()
}
