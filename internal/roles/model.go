package roles

import "time"

// Statuses a role can be in.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Role describes a hiring position: its requirements, preferences, and the
// ordered pipeline its candidates move through. Candidates reference roles by
// id; deleting a role never cascades to its candidates.
type Role struct {
	ID                     string    `json:"id"`
	Title                  string    `json:"title"`
	Department             string    `json:"department"`
	Level                  string    `json:"level"`
	Location               string    `json:"location"`
	WorkType               string    `json:"workType"`
	SalaryMin              string    `json:"salaryMin"`
	SalaryMax              string    `json:"salaryMax"`
	RequiredSkills         []string  `json:"requiredSkills"`
	NiceToHaveSkills       []string  `json:"niceToHaveSkills"`
	MustHaveQualifications []string  `json:"mustHaveQualifications"`
	DealBreakers           []string  `json:"dealBreakers"`
	CultureFitCriteria     []string  `json:"cultureFitCriteria"`
	ExperienceLevel        string    `json:"experienceLevel"`
	EducationPreference    string    `json:"educationPreference"`
	Description            string    `json:"description"`
	Status                 string    `json:"status"`
	PipelineStages         []string  `json:"pipelineStages"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

var experienceLevels = map[string]struct{}{
	"junior": {}, "mid": {}, "senior": {}, "lead": {},
}

// ValidExperienceLevel reports whether level is empty or one of the known
// levels (empty means the experience factor stays inactive).
func ValidExperienceLevel(level string) bool {
	if level == "" {
		return true
	}
	_, ok := experienceLevels[level]
	return ok
}

// ValidStatus reports whether status is a known role status.
func ValidStatus(status string) bool {
	return status == StatusOpen || status == StatusClosed
}
