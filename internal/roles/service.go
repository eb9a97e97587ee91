package roles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"recruiter-backend/internal/activity"
	"recruiter-backend/internal/pipeline"
)

// Service owns role lifecycle and validation.
type Service struct {
	Repo     Repo
	Activity activity.Recorder
}

func NewService(repo Repo, recorder activity.Recorder) *Service {
	return &Service{Repo: repo, Activity: recorder}
}

// CreateInput carries caller-supplied role fields; zero values get defaults.
type CreateInput struct {
	Title                  string   `json:"title"`
	Department             string   `json:"department"`
	Level                  string   `json:"level"`
	Location               string   `json:"location"`
	WorkType               string   `json:"workType"`
	SalaryMin              string   `json:"salaryMin"`
	SalaryMax              string   `json:"salaryMax"`
	RequiredSkills         []string `json:"requiredSkills"`
	NiceToHaveSkills       []string `json:"niceToHaveSkills"`
	MustHaveQualifications []string `json:"mustHaveQualifications"`
	DealBreakers           []string `json:"dealBreakers"`
	CultureFitCriteria     []string `json:"cultureFitCriteria"`
	ExperienceLevel        string   `json:"experienceLevel"`
	EducationPreference    string   `json:"educationPreference"`
	Description            string   `json:"description"`
	Status                 string   `json:"status"`
	PipelineStages         []string `json:"pipelineStages"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Role, error) {
	if err := validateInput(in); err != nil {
		return Role{}, err
	}
	now := time.Now().UTC()
	role := Role{
		ID:                     uuid.NewString(),
		Title:                  in.Title,
		Department:             in.Department,
		Level:                  in.Level,
		Location:               in.Location,
		WorkType:               defaultString(in.WorkType, "onsite"),
		SalaryMin:              in.SalaryMin,
		SalaryMax:              in.SalaryMax,
		RequiredSkills:         trimAll(in.RequiredSkills),
		NiceToHaveSkills:       trimAll(in.NiceToHaveSkills),
		MustHaveQualifications: trimAll(in.MustHaveQualifications),
		DealBreakers:           trimAll(in.DealBreakers),
		CultureFitCriteria:     trimAll(in.CultureFitCriteria),
		ExperienceLevel:        strings.ToLower(strings.TrimSpace(in.ExperienceLevel)),
		EducationPreference:    in.EducationPreference,
		Description:            in.Description,
		Status:                 defaultString(in.Status, StatusOpen),
		PipelineStages:         trimAll(in.PipelineStages),
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := s.Repo.Create(ctx, role); err != nil {
		return Role{}, err
	}
	s.Activity.Record(ctx, activity.ActionProjectCreated, map[string]any{
		"projectId": role.ID,
		"title":     role.Title,
	})
	return role, nil
}

func (s *Service) Get(ctx context.Context, id string) (Role, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Role, error) {
	return s.Repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id string, in CreateInput) (Role, error) {
	if err := validateInput(in); err != nil {
		return Role{}, err
	}
	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Role{}, err
	}
	updated := existing
	updated.Title = in.Title
	updated.Department = in.Department
	updated.Level = in.Level
	updated.Location = in.Location
	updated.WorkType = defaultString(in.WorkType, existing.WorkType)
	updated.SalaryMin = in.SalaryMin
	updated.SalaryMax = in.SalaryMax
	updated.RequiredSkills = trimAll(in.RequiredSkills)
	updated.NiceToHaveSkills = trimAll(in.NiceToHaveSkills)
	updated.MustHaveQualifications = trimAll(in.MustHaveQualifications)
	updated.DealBreakers = trimAll(in.DealBreakers)
	updated.CultureFitCriteria = trimAll(in.CultureFitCriteria)
	updated.ExperienceLevel = strings.ToLower(strings.TrimSpace(in.ExperienceLevel))
	updated.EducationPreference = in.EducationPreference
	updated.Description = in.Description
	updated.Status = defaultString(in.Status, existing.Status)
	updated.PipelineStages = trimAll(in.PipelineStages)
	updated.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, updated); err != nil {
		return Role{}, err
	}
	return updated, nil
}

// Delete removes the role. Candidates referencing it keep their projectId;
// they resolve to the default pipeline from then on.
func (s *Service) Delete(ctx context.Context, id string) error {
	role, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Activity.Record(ctx, activity.ActionProjectDeleted, map[string]any{
		"title": role.Title,
	})
	return nil
}

func validateInput(in CreateInput) error {
	level := strings.ToLower(strings.TrimSpace(in.ExperienceLevel))
	if !ValidExperienceLevel(level) {
		return fmt.Errorf("%w: experienceLevel %q", errValidation, in.ExperienceLevel)
	}
	if in.Status != "" && !ValidStatus(in.Status) {
		return fmt.Errorf("%w: status %q", errValidation, in.Status)
	}
	for _, stage := range in.PipelineStages {
		if strings.TrimSpace(stage) == pipeline.StageRejected {
			return fmt.Errorf("%w: pipelineStages must not contain %q", errValidation, pipeline.StageRejected)
		}
	}
	return nil
}

var errValidation = errors.New("invalid role")

// IsValidationError reports whether err came from role input validation.
func IsValidationError(err error) bool {
	return errors.Is(err, errValidation)
}

func defaultString(val, def string) string {
	if strings.TrimSpace(val) == "" {
		return def
	}
	return val
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
