package candidates

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"recruiter-backend/internal/pipeline"
	"recruiter-backend/internal/scoring"
)

type PGRepo struct {
	DB *sql.DB
}

const selectCandidateColumns = `
SELECT id, name, email, phone, linkedin, resume_text, notes, source, project_id,
  role_title, stage, score, score_breakdown, score_reason, stage_history,
  version, created_at, updated_at
FROM candidates`

func (r *PGRepo) Create(ctx context.Context, c Candidate) error {
	breakdown, history, err := marshalScoreState(c)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO candidates (
  id, name, email, phone, linkedin, resume_text, notes, source, project_id,
  role_title, stage, score, score_breakdown, score_reason, stage_history,
  version, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	version := c.Version
	if version == 0 {
		version = 1
	}
	_, err = r.DB.ExecContext(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.LinkedIn, c.ResumeText, c.Notes,
		c.Source, c.ProjectID, c.Role, c.Stage, nullableInt(c.Score),
		breakdown, c.ScoreReason, history, version, c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Candidate, error) {
	row := r.DB.QueryRowContext(ctx, selectCandidateColumns+` WHERE id = $1 LIMIT 1`, id)
	c, err := scanCandidate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Candidate{}, ErrNotFound
		}
		return Candidate{}, err
	}
	return c, nil
}

func (r *PGRepo) List(ctx context.Context, f Filter) ([]Candidate, error) {
	var where []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.ProjectID != "" {
		where = append(where, "project_id = "+arg(f.ProjectID))
	}
	if f.Stage != "" {
		where = append(where, "stage = "+arg(f.Stage))
	}
	if f.Source != "" {
		where = append(where, "source = "+arg(f.Source))
	}
	if f.MinScore != nil {
		where = append(where, "COALESCE(score, 0) >= "+arg(*f.MinScore))
	}
	if f.MaxScore != nil {
		where = append(where, "COALESCE(score, 0) <= "+arg(*f.MaxScore))
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		where = append(where, "(name ILIKE "+arg(pattern)+" OR email ILIKE "+arg(pattern)+" OR role_title ILIKE "+arg(pattern)+")")
	}

	query := selectCandidateColumns
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY " + orderClause(f.Sort)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update loads the row FOR UPDATE inside a transaction, applies the mutator,
// and writes it back with a version bump. The row lock serializes concurrent
// read-modify-write sequences per candidate id.
func (r *PGRepo) Update(ctx context.Context, id string, mutate func(*Candidate) error) (Candidate, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return Candidate{}, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, selectCandidateColumns+` WHERE id = $1 FOR UPDATE`, id)
	c, err := scanCandidate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Candidate{}, ErrNotFound
		}
		return Candidate{}, err
	}

	priorVersion := c.Version
	if err := mutate(&c); err != nil {
		return Candidate{}, err
	}
	c.ID = id
	c.Version = priorVersion + 1
	c.UpdatedAt = time.Now().UTC()

	breakdown, history, err := marshalScoreState(c)
	if err != nil {
		return Candidate{}, err
	}
	const update = `
UPDATE candidates SET
  name = $2, email = $3, phone = $4, linkedin = $5, resume_text = $6, notes = $7,
  source = $8, project_id = $9, role_title = $10, stage = $11, score = $12,
  score_breakdown = $13, score_reason = $14, stage_history = $15,
  version = $16, updated_at = $17
WHERE id = $1 AND version = $18`
	res, err := tx.ExecContext(ctx, update,
		c.ID, c.Name, c.Email, c.Phone, c.LinkedIn, c.ResumeText, c.Notes,
		c.Source, c.ProjectID, c.Role, c.Stage, nullableInt(c.Score),
		breakdown, c.ScoreReason, history, c.Version, c.UpdatedAt, priorVersion,
	)
	if err != nil {
		return Candidate{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Candidate{}, err
	}
	if affected == 0 {
		return Candidate{}, ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return Candidate{}, err
	}
	return c, nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func orderClause(sortKey string) string {
	desc := strings.HasPrefix(sortKey, "-")
	field := strings.TrimPrefix(sortKey, "-")
	column := map[string]string{
		"name":      "LOWER(name)",
		"email":     "LOWER(email)",
		"stage":     "stage",
		"score":     "COALESCE(score, 0)",
		"createdAt": "created_at",
	}[field]
	if column == "" {
		return "created_at ASC, id ASC"
	}
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	return column + " " + dir + ", id ASC"
}

func scanCandidate(row interface{ Scan(...any) error }) (Candidate, error) {
	var c Candidate
	var score sql.NullInt64
	var breakdown, history []byte
	var scoreReason sql.NullString
	var updatedAt sql.NullTime
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.LinkedIn, &c.ResumeText, &c.Notes,
		&c.Source, &c.ProjectID, &c.Role, &c.Stage, &score, &breakdown,
		&scoreReason, &history, &c.Version, &c.CreatedAt, &updatedAt,
	)
	if err != nil {
		return Candidate{}, err
	}
	if score.Valid {
		v := int(score.Int64)
		c.Score = &v
	}
	if len(breakdown) > 0 {
		var parsed map[string]scoring.FactorResult
		if err := json.Unmarshal(breakdown, &parsed); err != nil {
			return Candidate{}, err
		}
		c.ScoreBreakdown = parsed
	}
	if scoreReason.Valid {
		c.ScoreReason = scoreReason.String
	}
	if len(history) > 0 {
		var parsed []pipeline.Transition
		if err := json.Unmarshal(history, &parsed); err != nil {
			return Candidate{}, err
		}
		c.StageHistory = parsed
	}
	if updatedAt.Valid {
		c.UpdatedAt = updatedAt.Time
	}
	return c, nil
}

func marshalScoreState(c Candidate) (breakdown any, history []byte, err error) {
	if c.ScoreBreakdown != nil {
		raw, err := json.Marshal(c.ScoreBreakdown)
		if err != nil {
			return nil, nil, err
		}
		breakdown = raw
	}
	if c.StageHistory == nil {
		c.StageHistory = []pipeline.Transition{}
	}
	history, err = json.Marshal(c.StageHistory)
	if err != nil {
		return nil, nil, err
	}
	return breakdown, history, nil
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
