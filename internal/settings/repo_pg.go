package settings

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Get(ctx context.Context) (Settings, error) {
	const query = `SELECT onboarding_complete, company_name, timezone FROM settings WHERE id = 1`
	var s Settings
	err := r.DB.QueryRowContext(ctx, query).Scan(&s.OnboardingComplete, &s.CompanyName, &s.Timezone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Defaults(), nil
		}
		return Settings{}, err
	}
	return s, nil
}

func (r *PGRepo) Put(ctx context.Context, s Settings) error {
	const query = `
INSERT INTO settings (id, onboarding_complete, company_name, timezone, updated_at)
VALUES (1, $1, $2, $3, now())
ON CONFLICT (id) DO UPDATE SET
  onboarding_complete = EXCLUDED.onboarding_complete,
  company_name = EXCLUDED.company_name,
  timezone = EXCLUDED.timezone,
  updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query, s.OnboardingComplete, s.CompanyName, s.Timezone)
	return err
}
