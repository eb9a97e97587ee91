package activity

import (
	"context"
	"database/sql"
	"encoding/json"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Insert(ctx context.Context, entry Entry, cap int) error {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return err
	}
	const insert = `
INSERT INTO activity_log (id, action, details, created_at)
VALUES ($1, $2, $3, $4)`
	if _, err := r.DB.ExecContext(ctx, insert, entry.ID, entry.Action, details, entry.Timestamp); err != nil {
		return err
	}
	if cap <= 0 {
		return nil
	}
	const prune = `
DELETE FROM activity_log
WHERE id NOT IN (
  SELECT id FROM activity_log ORDER BY created_at DESC, id DESC LIMIT $1
)`
	_, err = r.DB.ExecContext(ctx, prune, cap)
	return err
}

func (r *PGRepo) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, action, details, created_at FROM activity_log ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var entry Entry
		var details []byte
		if err := rows.Scan(&entry.ID, &entry.Action, &details, &entry.Timestamp); err != nil {
			return nil, err
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &entry.Details); err != nil {
				return nil, err
			}
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}
