package scoring

// Factor names recognized by the engine. Weight maps use these as keys.
const (
	FactorSkillsMatch   = "skillsMatch"
	FactorExperience    = "experience"
	FactorEducation     = "education"
	FactorCultureFit    = "cultureFit"
	FactorCommunication = "communication"
)

const (
	defaultWeight = 5
	minWeight     = 1
	maxWeight     = 10
)

// Weights maps factor names to integer weights in [1,10].
type Weights map[string]int

// Factors lists every factor name the engine knows, in report order.
func Factors() []string {
	return []string{
		FactorSkillsMatch,
		FactorExperience,
		FactorEducation,
		FactorCultureFit,
		FactorCommunication,
	}
}

// DefaultWeights returns the stock weight configuration.
func DefaultWeights() Weights {
	return Weights{
		FactorSkillsMatch:   8,
		FactorExperience:    7,
		FactorEducation:     5,
		FactorCultureFit:    6,
		FactorCommunication: 5,
	}
}

// Value resolves the effective weight for a factor: missing keys default to 5,
// out-of-range values are clamped into [1,10].
func (w Weights) Value(factor string) int {
	v, ok := w[factor]
	if !ok {
		return defaultWeight
	}
	if v < minWeight {
		return minWeight
	}
	if v > maxWeight {
		return maxWeight
	}
	return v
}

// IsKnownFactor reports whether name is one of the fixed factor names.
func IsKnownFactor(name string) bool {
	switch name {
	case FactorSkillsMatch, FactorExperience, FactorEducation, FactorCultureFit, FactorCommunication:
		return true
	default:
		return false
	}
}
