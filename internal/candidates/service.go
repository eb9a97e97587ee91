package candidates

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"recruiter-backend/internal/activity"
	"recruiter-backend/internal/pipeline"
	"recruiter-backend/internal/roles"
	"recruiter-backend/internal/scoring"
	"recruiter-backend/internal/shared/metrics"
)

var errValidation = errors.New("invalid candidate")

// IsValidationError reports whether err came from candidate input validation.
func IsValidationError(err error) bool {
	return errors.Is(err, errValidation)
}

// errAlreadyScored signals a batch mutator skip; it never leaves BatchScore.
var errAlreadyScored = errors.New("already scored")

// TextExtractor pulls plain text from an uploaded resume payload.
type TextExtractor interface {
	TextFromBytes(ctx context.Context, data []byte, mimeType, fileName string) (string, error)
}

// Service orchestrates candidate lifecycle, scoring, and stage movement.
// Weights are fetched fresh from the store on every scoring pass.
type Service struct {
	Repo      Repo
	Roles     roles.Repo
	Weights   scoring.Store
	Activity  activity.Recorder
	Extractor TextExtractor
}

// CreateInput carries caller-supplied candidate fields.
type CreateInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	LinkedIn   string `json:"linkedin"`
	ResumeText string `json:"resumeText"`
	Notes      string `json:"notes"`
	Source     string `json:"source"`
	ProjectID  string `json:"projectId"`
	Role       string `json:"role"`
	Stage      string `json:"stage"`
}

// Create adds a candidate. The initial stage is the caller's, defaulting to
// the role's first pipeline stage, or Sourced when unassigned; the seeded
// history entry has a nil from.
func (s *Service) Create(ctx context.Context, in CreateInput) (Candidate, error) {
	return s.create(ctx, in, SourceManual, true)
}

// Import bulk-adds candidates, defaulting their source to "import". It
// records one activity event for the whole batch.
func (s *Service) Import(ctx context.Context, items []CreateInput) ([]Candidate, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no items", errValidation)
	}
	imported := make([]Candidate, 0, len(items))
	for _, in := range items {
		c, err := s.create(ctx, in, SourceImport, false)
		if err != nil {
			return imported, err
		}
		imported = append(imported, c)
	}
	s.Activity.Record(ctx, activity.ActionCandidatesImported, map[string]any{
		"count": len(imported),
	})
	return imported, nil
}

func (s *Service) create(ctx context.Context, in CreateInput, defaultSource string, recordAdd bool) (Candidate, error) {
	machine, role := s.machineFor(ctx, in.ProjectID)
	stage := strings.TrimSpace(in.Stage)
	if stage == "" {
		stage = machine.Initial()
	} else if !machine.Contains(stage) {
		return Candidate{}, fmt.Errorf("%w: %q", pipeline.ErrInvalidStage, stage)
	}

	roleTitle := in.Role
	if roleTitle == "" && role != nil {
		roleTitle = role.Title
	}

	now := time.Now().UTC()
	c := Candidate{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		LinkedIn:     in.LinkedIn,
		ResumeText:   in.ResumeText,
		Notes:        in.Notes,
		Source:       defaultString(in.Source, defaultSource),
		ProjectID:    in.ProjectID,
		Role:         roleTitle,
		Stage:        stage,
		StageHistory: pipeline.Seed(stage, now),
		CreatedAt:    now,
		UpdatedAt:    now,
		Version:      1,
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return Candidate{}, err
	}
	if recordAdd {
		s.Activity.Record(ctx, activity.ActionCandidateAdded, map[string]any{
			"candidateId": c.ID,
			"name":        c.Name,
			"role":        c.Role,
		})
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id string) (Candidate, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]Candidate, error) {
	return s.Repo.List(ctx, f)
}

// UpdateInput holds the fields a plain update may touch. Stage and score are
// deliberately absent: stage moves only through MoveStage, scores only
// through AutoScore and OverrideScore.
type UpdateInput struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	LinkedIn   *string `json:"linkedin"`
	ResumeText *string `json:"resumeText"`
	Notes      *string `json:"notes"`
	Source     *string `json:"source"`
	ProjectID  *string `json:"projectId"`
	Role       *string `json:"role"`
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Candidate, error) {
	return s.Repo.Update(ctx, id, func(c *Candidate) error {
		apply := func(dst *string, src *string) {
			if src != nil {
				*dst = *src
			}
		}
		apply(&c.Name, in.Name)
		apply(&c.Email, in.Email)
		apply(&c.Phone, in.Phone)
		apply(&c.LinkedIn, in.LinkedIn)
		apply(&c.ResumeText, in.ResumeText)
		apply(&c.Notes, in.Notes)
		apply(&c.Source, in.Source)
		apply(&c.ProjectID, in.ProjectID)
		apply(&c.Role, in.Role)
		return nil
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

// AutoScore runs the engine against the candidate's role criteria with fresh
// weights and persists score, breakdown, and reason.
func (s *Service) AutoScore(ctx context.Context, id string) (Candidate, error) {
	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Candidate{}, err
	}
	crit := s.criteriaFor(ctx, current.ProjectID)
	weights, err := s.Weights.Get(ctx)
	if err != nil {
		return Candidate{}, err
	}

	updated, err := s.Repo.Update(ctx, id, func(c *Candidate) error {
		result := scoring.Score(scoring.CandidateInput{
			Name:       c.Name,
			ResumeText: c.ResumeText,
			Notes:      c.Notes,
		}, crit, weights)
		c.Score = &result.Score
		c.ScoreBreakdown = result.Breakdown
		c.ScoreReason = ReasonAutoScored
		return nil
	})
	if err != nil {
		return Candidate{}, err
	}
	metrics.IncCandidateScored()
	s.Activity.Record(ctx, activity.ActionCandidateScored, map[string]any{
		"candidateId": updated.ID,
		"name":        updated.Name,
		"score":       *updated.Score,
		"method":      "auto",
	})
	return updated, nil
}

// OverrideInput is the manual scoring payload. Breakdown and Reason are
// optional; a missing breakdown leaves the stored one untouched.
type OverrideInput struct {
	Score     int
	Breakdown map[string]scoring.FactorResult
	Reason    string
}

// OverrideScore sets the score directly, bypassing the engine entirely.
func (s *Service) OverrideScore(ctx context.Context, id string, in OverrideInput) (Candidate, error) {
	if in.Score < 0 || in.Score > 100 {
		return Candidate{}, fmt.Errorf("%w: score must be in [0,100]", errValidation)
	}
	updated, err := s.Repo.Update(ctx, id, func(c *Candidate) error {
		score := in.Score
		c.Score = &score
		if in.Breakdown != nil {
			c.ScoreBreakdown = in.Breakdown
		}
		c.ScoreReason = defaultString(in.Reason, ReasonManualOverride)
		return nil
	})
	if err != nil {
		return Candidate{}, err
	}
	metrics.IncScoreOverride()
	s.Activity.Record(ctx, activity.ActionCandidateScored, map[string]any{
		"candidateId": updated.ID,
		"name":        updated.Name,
		"score":       *updated.Score,
		"method":      "manual",
	})
	return updated, nil
}

// BatchScore auto-scores every candidate without a score. Already-scored
// candidates (including a stored zero) are skipped, making repeat runs
// no-ops. Weights are read once per run; roles are resolved per candidate.
func (s *Service) BatchScore(ctx context.Context) (int, error) {
	weights, err := s.Weights.Get(ctx)
	if err != nil {
		return 0, err
	}
	all, err := s.Repo.List(ctx, Filter{})
	if err != nil {
		return 0, err
	}

	critCache := make(map[string]*scoring.Criteria)
	scored := 0
	for _, candidate := range all {
		if candidate.Scored() {
			continue
		}
		crit, ok := critCache[candidate.ProjectID]
		if !ok {
			crit = s.criteriaFor(ctx, candidate.ProjectID)
			critCache[candidate.ProjectID] = crit
		}
		_, err := s.Repo.Update(ctx, candidate.ID, func(c *Candidate) error {
			// Re-check under the per-id lock; a concurrent scorer may have won.
			if c.Scored() {
				return errAlreadyScored
			}
			result := scoring.Score(scoring.CandidateInput{
				Name:       c.Name,
				ResumeText: c.ResumeText,
				Notes:      c.Notes,
			}, crit, weights)
			c.Score = &result.Score
			c.ScoreBreakdown = result.Breakdown
			c.ScoreReason = ReasonBatchScored
			return nil
		})
		if err != nil {
			if errors.Is(err, errAlreadyScored) || errors.Is(err, ErrNotFound) {
				continue
			}
			return scored, err
		}
		scored++
	}

	metrics.IncBatchScoreRun()
	metrics.ObserveBatchScored(scored)
	s.Activity.Record(ctx, activity.ActionBatchScore, map[string]any{
		"scored": scored,
	})
	return scored, nil
}

// MoveStage transitions the candidate to target within its resolved stage
// set. Unknown targets fail with pipeline.ErrInvalidStage and leave the
// candidate untouched. Self-transitions append a history entry.
func (s *Service) MoveStage(ctx context.Context, id, target string) (Candidate, error) {
	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Candidate{}, err
	}
	machine, _ := s.machineFor(ctx, current.ProjectID)

	var from string
	updated, err := s.Repo.Update(ctx, id, func(c *Candidate) error {
		from = c.Stage
		stage, history, err := machine.Move(c.Stage, c.StageHistory, target, time.Now().UTC())
		if err != nil {
			return err
		}
		c.Stage = stage
		c.StageHistory = history
		return nil
	})
	if err != nil {
		return Candidate{}, err
	}
	metrics.IncStageChange()
	s.Activity.Record(ctx, activity.ActionStageChange, map[string]any{
		"candidateId": updated.ID,
		"name":        updated.Name,
		"from":        from,
		"to":          target,
	})
	return updated, nil
}

// DaysInCurrentStage reports whole days since the candidate last changed stage.
func (s *Service) DaysInCurrentStage(c Candidate) int {
	return pipeline.DaysInStage(c.StageHistory, time.Now().UTC())
}

// AttachResume extracts text from an uploaded resume and stores it on the
// candidate.
func (s *Service) AttachResume(ctx context.Context, id string, data []byte, mimeType, fileName string) (Candidate, error) {
	if s.Extractor == nil {
		return Candidate{}, errors.New("resume extraction not configured")
	}
	text, err := s.Extractor.TextFromBytes(ctx, data, mimeType, fileName)
	if err != nil {
		return Candidate{}, fmt.Errorf("%w: %v", errValidation, err)
	}
	return s.Repo.Update(ctx, id, func(c *Candidate) error {
		c.ResumeText = text
		return nil
	})
}

// machineFor resolves the stage machine for a project id. Missing roles (and
// "" = unassigned) resolve to the default pipeline.
func (s *Service) machineFor(ctx context.Context, projectID string) (*pipeline.Machine, *roles.Role) {
	if projectID == "" {
		return pipeline.NewMachine(nil), nil
	}
	role, err := s.Roles.GetByID(ctx, projectID)
	if err != nil {
		return pipeline.NewMachine(nil), nil
	}
	return pipeline.NewMachine(role.PipelineStages), &role
}

// criteriaFor builds engine criteria from the candidate's role. Nil when the
// candidate is unassigned or the role is gone; the engine degrades to the
// communication factor alone.
func (s *Service) criteriaFor(ctx context.Context, projectID string) *scoring.Criteria {
	if projectID == "" {
		return nil
	}
	role, err := s.Roles.GetByID(ctx, projectID)
	if err != nil {
		return nil
	}
	return &scoring.Criteria{
		RequiredSkills:      role.RequiredSkills,
		ExperienceLevel:     role.ExperienceLevel,
		EducationPreference: role.EducationPreference,
		CultureFitCriteria:  role.CultureFitCriteria,
	}
}

func defaultString(val, def string) string {
	if strings.TrimSpace(val) == "" {
		return def
	}
	return val
}
