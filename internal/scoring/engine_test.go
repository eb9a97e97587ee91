package scoring

import (
	"testing"
)

func TestScorePartialSkillsMatch(t *testing.T) {
	crit := &Criteria{
		RequiredSkills: []string{"React", "TypeScript", "GraphQL", "Node.js"},
	}
	result := Score(CandidateInput{
		Name:       "Jordan Reyes",
		ResumeText: "Frontend developer working with React and TypeScript",
	}, crit, DefaultWeights())

	skills, ok := result.Breakdown[FactorSkillsMatch]
	if !ok {
		t.Fatalf("expected skillsMatch factor in breakdown")
	}
	if skills.Score != 50 {
		t.Fatalf("expected skillsMatch score 50, got %d", skills.Score)
	}
	if len(skills.Matched) != 2 || skills.Total != 4 {
		t.Fatalf("expected 2 of 4 skills matched, got %d of %d", len(skills.Matched), skills.Total)
	}
	// skillsMatch 50*8 plus communication 20*5 over weight 13.
	if result.Score != 38 {
		t.Fatalf("expected final score 38, got %d", result.Score)
	}
}

func TestScoreHalfSkillsHeavyWeight(t *testing.T) {
	weights := DefaultWeights()
	weights[FactorSkillsMatch] = 10
	crit := &Criteria{RequiredSkills: []string{"React", "TypeScript"}}
	result := Score(CandidateInput{ResumeText: "Shipped several React apps"}, crit, weights)

	if got := result.Breakdown[FactorSkillsMatch].Score; got != 50 {
		t.Fatalf("expected skillsMatch score 50, got %d", got)
	}
	// (50*10 + 20*5) / 15 rounds to 40.
	if result.Score != 40 {
		t.Fatalf("expected final score 40, got %d", result.Score)
	}
}

func TestScoreNilCriteriaLeavesOnlyCommunication(t *testing.T) {
	result := Score(CandidateInput{
		Name:       "Sam Ito",
		ResumeText: "Strong teamwork and communication background",
	}, nil, DefaultWeights())

	if len(result.Breakdown) != 1 {
		t.Fatalf("expected only communication factor, got %d factors", len(result.Breakdown))
	}
	comm, ok := result.Breakdown[FactorCommunication]
	if !ok {
		t.Fatalf("expected communication factor in breakdown")
	}
	if comm.Score != 60 {
		t.Fatalf("expected communication score 60 for two keyword hits, got %d", comm.Score)
	}
	if result.Score != 60 {
		t.Fatalf("expected final score 60, got %d", result.Score)
	}
}

func TestScoreCommunicationAlwaysActive(t *testing.T) {
	result := Score(CandidateInput{Name: "Quiet Resume"}, &Criteria{}, DefaultWeights())
	comm, ok := result.Breakdown[FactorCommunication]
	if !ok {
		t.Fatalf("expected communication factor even with empty criteria")
	}
	if comm.Score != 20 {
		t.Fatalf("expected communication floor of 20 with no keyword hits, got %d", comm.Score)
	}
}

func TestScoreExperienceKeywordHit(t *testing.T) {
	crit := &Criteria{ExperienceLevel: "senior"}
	result := Score(CandidateInput{
		ResumeText: "Senior engineer with 7+ years shipping distributed systems",
	}, crit, DefaultWeights())

	exp := result.Breakdown[FactorExperience]
	if exp.Score != 85 {
		t.Fatalf("expected experience score 85 on keyword hit, got %d", exp.Score)
	}
	if exp.Met == nil || !*exp.Met {
		t.Fatalf("expected experience met=true")
	}
	// experience 85*7 plus communication 20*5 over weight 12.
	if result.Score != 58 {
		t.Fatalf("expected final score 58, got %d", result.Score)
	}
}

func TestScoreExperienceKeywordMiss(t *testing.T) {
	crit := &Criteria{ExperienceLevel: "lead"}
	result := Score(CandidateInput{
		ResumeText: "Recent bootcamp graduate",
	}, crit, DefaultWeights())

	exp := result.Breakdown[FactorExperience]
	if exp.Score != 40 {
		t.Fatalf("expected experience score 40 on miss, got %d", exp.Score)
	}
	if exp.Met == nil || *exp.Met {
		t.Fatalf("expected experience met=false")
	}
}

func TestScoreEducationFallbackKeywords(t *testing.T) {
	crit := &Criteria{EducationPreference: "Bachelor's in Computer Science"}
	result := Score(CandidateInput{
		ResumeText: "University graduate, class of 2019",
	}, crit, DefaultWeights())

	edu := result.Breakdown[FactorEducation]
	if edu.Score != 80 {
		t.Fatalf("expected education score 80 via generic keyword, got %d", edu.Score)
	}
	if edu.Met == nil || !*edu.Met {
		t.Fatalf("expected education met=true")
	}
}

func TestScoreCommunicationCappedAt100(t *testing.T) {
	result := Score(CandidateInput{
		ResumeText: "communication presentation writing public speaking leadership teamwork collaboration mentoring",
	}, nil, DefaultWeights())

	comm := result.Breakdown[FactorCommunication]
	if comm.Score != 100 {
		t.Fatalf("expected communication capped at 100, got %d", comm.Score)
	}
}

func TestScoreSkillsHaystackIncludesName(t *testing.T) {
	crit := &Criteria{RequiredSkills: []string{"Go"}}
	result := Score(CandidateInput{Name: "Margo Lindqvist"}, crit, DefaultWeights())

	skills := result.Breakdown[FactorSkillsMatch]
	if skills.Score != 100 {
		t.Fatalf("expected name to count toward the skills haystack, got score %d", skills.Score)
	}
}

func TestScoreWeightClamping(t *testing.T) {
	weights := Weights{
		FactorSkillsMatch:   99,
		FactorCommunication: 0,
	}
	crit := &Criteria{RequiredSkills: []string{"Rust"}}
	result := Score(CandidateInput{ResumeText: "Rust systems work"}, crit, weights)

	if got := result.Breakdown[FactorSkillsMatch].Weight; got != 10 {
		t.Fatalf("expected skillsMatch weight clamped to 10, got %d", got)
	}
	if got := result.Breakdown[FactorCommunication].Weight; got != 1 {
		t.Fatalf("expected communication weight clamped to 1, got %d", got)
	}
	// skills 100*10 plus communication 20*1 over weight 11 rounds to 93.
	if result.Score != 93 {
		t.Fatalf("expected final score 93, got %d", result.Score)
	}
}

func TestScoreMissingWeightDefaultsToFive(t *testing.T) {
	w := Weights{}
	if got := w.Value(FactorExperience); got != 5 {
		t.Fatalf("expected missing weight to default to 5, got %d", got)
	}
}

func TestScoreStaysInBounds(t *testing.T) {
	inputs := []CandidateInput{
		{},
		{ResumeText: "communication presentation writing public speaking leadership teamwork collaboration mentoring"},
		{Name: "React TypeScript GraphQL", ResumeText: "senior lead principal staff university degree"},
	}
	crit := &Criteria{
		RequiredSkills:      []string{"React", "TypeScript", "GraphQL"},
		ExperienceLevel:     "senior",
		EducationPreference: "degree",
		CultureFitCriteria:  []string{"ownership", "curiosity"},
	}
	for i, in := range inputs {
		result := Score(in, crit, DefaultWeights())
		if result.Score < 0 || result.Score > 100 {
			t.Fatalf("input %d: final score %d out of bounds", i, result.Score)
		}
		for name, factor := range result.Breakdown {
			if factor.Score < 0 || factor.Score > 100 {
				t.Fatalf("input %d: factor %s score %d out of bounds", i, name, factor.Score)
			}
		}
	}
}
