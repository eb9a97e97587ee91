package candidates

import (
	"time"

	"recruiter-backend/internal/pipeline"
	"recruiter-backend/internal/scoring"
)

// Candidate sources.
const (
	SourceManual = "manual"
	SourceImport = "import"
)

// Score reasons written by the scoring paths.
const (
	ReasonAutoScored     = "Auto-scored based on criteria"
	ReasonBatchScored    = "Auto-scored (batch)"
	ReasonManualOverride = "Manual override"
)

// Candidate is a person tracked through a role's pipeline. Stage and
// StageHistory change only through the pipeline transition path; StageHistory
// is append-only and its last entry always names the current stage.
type Candidate struct {
	ID             string                           `json:"id"`
	Name           string                           `json:"name"`
	Email          string                           `json:"email"`
	Phone          string                           `json:"phone"`
	LinkedIn       string                           `json:"linkedin"`
	ResumeText     string                           `json:"resumeText"`
	Notes          string                           `json:"notes"`
	Source         string                           `json:"source"`
	ProjectID      string                           `json:"projectId"`
	Role           string                           `json:"role"`
	Stage          string                           `json:"stage"`
	Score          *int                             `json:"score"`
	ScoreBreakdown map[string]scoring.FactorResult  `json:"scoreBreakdown,omitempty"`
	ScoreReason    string                           `json:"scoreReason,omitempty"`
	StageHistory   []pipeline.Transition            `json:"stageHistory"`
	CreatedAt      time.Time                        `json:"createdAt"`
	UpdatedAt      time.Time                        `json:"updatedAt"`
	Version        int64                            `json:"-"`
}

// Scored reports whether the candidate already carries a score. A stored zero
// counts as scored; batch scoring skips it.
func (c Candidate) Scored() bool {
	return c.Score != nil
}

func clone(c Candidate) Candidate {
	out := c
	if c.Score != nil {
		v := *c.Score
		out.Score = &v
	}
	if c.ScoreBreakdown != nil {
		out.ScoreBreakdown = make(map[string]scoring.FactorResult, len(c.ScoreBreakdown))
		for k, v := range c.ScoreBreakdown {
			fr := v
			if v.Met != nil {
				met := *v.Met
				fr.Met = &met
			}
			fr.Matched = append([]string(nil), v.Matched...)
			out.ScoreBreakdown[k] = fr
		}
	}
	out.StageHistory = make([]pipeline.Transition, len(c.StageHistory))
	for i, tr := range c.StageHistory {
		copied := tr
		if tr.From != nil {
			from := *tr.From
			copied.From = &from
		}
		out.StageHistory[i] = copied
	}
	return out
}
