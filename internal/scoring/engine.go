package scoring

import (
	"math"
	"strings"
)

// CandidateInput carries the candidate free text the engine matches against.
type CandidateInput struct {
	Name       string
	ResumeText string
	Notes      string
}

// Criteria is the role-derived requirement set. A nil Criteria (unassigned
// candidate) leaves only the communication factor active.
type Criteria struct {
	RequiredSkills      []string
	ExperienceLevel     string
	EducationPreference string
	CultureFitCriteria  []string
}

// FactorResult is the per-factor detail accompanying a final score.
type FactorResult struct {
	Score      int      `json:"score"`
	Weight     int      `json:"weight"`
	Matched    []string `json:"matched,omitempty"`
	Total      int      `json:"total,omitempty"`
	Level      string   `json:"level,omitempty"`
	Preference string   `json:"preference,omitempty"`
	Met        *bool    `json:"met,omitempty"`
}

// Result is the outcome of a scoring pass.
type Result struct {
	Score     int
	Breakdown map[string]FactorResult
}

const (
	experienceMatchScore = 85
	experienceMissScore  = 40
	educationMatchScore  = 80
	educationMissScore   = 35
)

var experienceKeywords = map[string][]string{
	"junior": {"junior", "0-2 years", "entry", "graduate"},
	"mid":    {"mid", "3-5 years", "intermediate"},
	"senior": {"senior", "5+ years", "7+ years", "lead", "staff"},
	"lead":   {"lead", "principal", "staff", "10+ years", "director", "head"},
}

var educationKeywords = []string{"degree", "university", "bachelor", "master"}

var communicationKeywords = []string{
	"communication", "presentation", "writing", "public speaking",
	"leadership", "teamwork", "collaboration", "mentoring",
}

// Score computes the weighted multi-factor fit score for a candidate against
// role criteria. It is pure and deterministic: a factor contributes only when
// its prerequisite criteria exist; communication is always active. The final
// score and every factor score are integers in [0,100].
func Score(c CandidateInput, crit *Criteria, weights Weights) Result {
	breakdown := make(map[string]FactorResult)
	totalWeight := 0
	totalScore := 0

	// Skills match. The haystack includes the name so sourced profiles with
	// skills in the headline still count.
	if crit != nil && len(crit.RequiredSkills) > 0 {
		w := weights.Value(FactorSkillsMatch)
		text := strings.ToLower(c.ResumeText + " " + c.Notes + " " + c.Name)
		matched := matchAll(text, crit.RequiredSkills)
		pts := ratioScore(len(matched), len(crit.RequiredSkills))
		breakdown[FactorSkillsMatch] = FactorResult{
			Score:   pts,
			Weight:  w,
			Matched: matched,
			Total:   len(crit.RequiredSkills),
		}
		totalWeight += w
		totalScore += pts * w
	}

	// Experience level keywords.
	if crit != nil && crit.ExperienceLevel != "" {
		w := weights.Value(FactorExperience)
		text := strings.ToLower(c.ResumeText + " " + c.Notes)
		keywords := experienceKeywords[strings.ToLower(crit.ExperienceLevel)]
		hit := false
		for _, k := range keywords {
			if strings.Contains(text, k) {
				hit = true
				break
			}
		}
		pts := experienceMissScore
		if hit {
			pts = experienceMatchScore
		}
		breakdown[FactorExperience] = FactorResult{
			Score:  pts,
			Weight: w,
			Level:  crit.ExperienceLevel,
			Met:    &hit,
		}
		totalWeight += w
		totalScore += pts * w
	}

	// Education preference.
	if crit != nil && crit.EducationPreference != "" {
		w := weights.Value(FactorEducation)
		text := strings.ToLower(c.ResumeText + " " + c.Notes)
		hit := strings.Contains(text, strings.ToLower(crit.EducationPreference))
		if !hit {
			for _, k := range educationKeywords {
				if strings.Contains(text, k) {
					hit = true
					break
				}
			}
		}
		pts := educationMissScore
		if hit {
			pts = educationMatchScore
		}
		breakdown[FactorEducation] = FactorResult{
			Score:      pts,
			Weight:     w,
			Preference: crit.EducationPreference,
			Met:        &hit,
		}
		totalWeight += w
		totalScore += pts * w
	}

	// Culture fit criteria.
	if crit != nil && len(crit.CultureFitCriteria) > 0 {
		w := weights.Value(FactorCultureFit)
		text := strings.ToLower(c.ResumeText + " " + c.Notes)
		matched := matchAll(text, crit.CultureFitCriteria)
		pts := ratioScore(len(matched), len(crit.CultureFitCriteria))
		breakdown[FactorCultureFit] = FactorResult{
			Score:   pts,
			Weight:  w,
			Matched: matched,
			Total:   len(crit.CultureFitCriteria),
		}
		totalWeight += w
		totalScore += pts * w
	}

	// Communication keywords; always active, no prerequisite.
	{
		w := weights.Value(FactorCommunication)
		text := strings.ToLower(c.ResumeText + " " + c.Notes)
		matched := matchAll(text, communicationKeywords)
		pts := 20 + 20*len(matched)
		if pts > 100 {
			pts = 100
		}
		breakdown[FactorCommunication] = FactorResult{
			Score:   pts,
			Weight:  w,
			Matched: matched,
		}
		totalWeight += w
		totalScore += pts * w
	}

	final := 0
	if totalWeight > 0 {
		final = roundHalfUp(float64(totalScore) / float64(totalWeight))
	}
	return Result{Score: clampScore(final), Breakdown: breakdown}
}

func matchAll(lowerText string, needles []string) []string {
	matched := make([]string, 0, len(needles))
	for _, n := range needles {
		if strings.Contains(lowerText, strings.ToLower(n)) {
			matched = append(matched, n)
		}
	}
	return matched
}

func ratioScore(matched, total int) int {
	if total <= 0 {
		return 0
	}
	return clampScore(roundHalfUp(100 * float64(matched) / float64(total)))
}

func roundHalfUp(v float64) int {
	return int(math.Round(v))
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
