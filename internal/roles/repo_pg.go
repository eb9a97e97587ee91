package roles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, role Role) error {
	const query = `
INSERT INTO roles (
  id, title, department, level, location, work_type, salary_min, salary_max,
  required_skills, nice_to_have_skills, must_have_qualifications, deal_breakers,
  culture_fit_criteria, experience_level, education_preference, description,
  status, pipeline_stages, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.DB.ExecContext(ctx, query,
		role.ID,
		role.Title,
		role.Department,
		role.Level,
		role.Location,
		role.WorkType,
		role.SalaryMin,
		role.SalaryMax,
		marshalStrings(role.RequiredSkills),
		marshalStrings(role.NiceToHaveSkills),
		marshalStrings(role.MustHaveQualifications),
		marshalStrings(role.DealBreakers),
		marshalStrings(role.CultureFitCriteria),
		role.ExperienceLevel,
		role.EducationPreference,
		role.Description,
		role.Status,
		marshalStrings(role.PipelineStages),
		role.CreatedAt,
		role.UpdatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Role, error) {
	const query = selectRoleColumns + ` WHERE id = $1 LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, id)
	role, err := scanRole(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Role{}, ErrNotFound
		}
		return Role{}, err
	}
	return role, nil
}

func (r *PGRepo) List(ctx context.Context) ([]Role, error) {
	const query = selectRoleColumns + ` ORDER BY created_at ASC, id ASC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, role)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, role Role) error {
	const query = `
UPDATE roles SET
  title = $2, department = $3, level = $4, location = $5, work_type = $6,
  salary_min = $7, salary_max = $8, required_skills = $9, nice_to_have_skills = $10,
  must_have_qualifications = $11, deal_breakers = $12, culture_fit_criteria = $13,
  experience_level = $14, education_preference = $15, description = $16,
  status = $17, pipeline_stages = $18, updated_at = $19
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		role.ID,
		role.Title,
		role.Department,
		role.Level,
		role.Location,
		role.WorkType,
		role.SalaryMin,
		role.SalaryMax,
		marshalStrings(role.RequiredSkills),
		marshalStrings(role.NiceToHaveSkills),
		marshalStrings(role.MustHaveQualifications),
		marshalStrings(role.DealBreakers),
		marshalStrings(role.CultureFitCriteria),
		role.ExperienceLevel,
		role.EducationPreference,
		role.Description,
		role.Status,
		marshalStrings(role.PipelineStages),
		time.Now().UTC(),
	)
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

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM roles WHERE id = $1`, id)
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

const selectRoleColumns = `
SELECT id, title, department, level, location, work_type, salary_min, salary_max,
  required_skills, nice_to_have_skills, must_have_qualifications, deal_breakers,
  culture_fit_criteria, experience_level, education_preference, description,
  status, pipeline_stages, created_at, updated_at
FROM roles`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRole(row rowScanner) (Role, error) {
	var role Role
	var requiredSkills, niceToHave, mustHave, dealBreakers, cultureFit, stages []byte
	var updatedAt sql.NullTime
	err := row.Scan(
		&role.ID,
		&role.Title,
		&role.Department,
		&role.Level,
		&role.Location,
		&role.WorkType,
		&role.SalaryMin,
		&role.SalaryMax,
		&requiredSkills,
		&niceToHave,
		&mustHave,
		&dealBreakers,
		&cultureFit,
		&role.ExperienceLevel,
		&role.EducationPreference,
		&role.Description,
		&role.Status,
		&stages,
		&role.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return Role{}, err
	}
	role.RequiredSkills = unmarshalStrings(requiredSkills)
	role.NiceToHaveSkills = unmarshalStrings(niceToHave)
	role.MustHaveQualifications = unmarshalStrings(mustHave)
	role.DealBreakers = unmarshalStrings(dealBreakers)
	role.CultureFitCriteria = unmarshalStrings(cultureFit)
	role.PipelineStages = unmarshalStrings(stages)
	if updatedAt.Valid {
		role.UpdatedAt = updatedAt.Time
	}
	return role, nil
}

func marshalStrings(values []string) []byte {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return []byte("[]")
	}
	return raw
}

func unmarshalStrings(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
