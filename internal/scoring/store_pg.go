package scoring

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGStore persists the single weight configuration row.
type PGStore struct {
	DB *sql.DB
}

func (s *PGStore) Get(ctx context.Context) (Weights, error) {
	const query = `SELECT weights FROM scoring_weights WHERE id = 1`
	var raw []byte
	err := s.DB.QueryRowContext(ctx, query).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DefaultWeights(), nil
		}
		return nil, err
	}
	var w Weights
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *PGStore) Put(ctx context.Context, w Weights) error {
	raw, err := json.Marshal(w)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO scoring_weights (id, weights, updated_at)
VALUES (1, $1, now())
ON CONFLICT (id) DO UPDATE SET weights = EXCLUDED.weights, updated_at = now()`
	_, err = s.DB.ExecContext(ctx, query, raw)
	return err
}
