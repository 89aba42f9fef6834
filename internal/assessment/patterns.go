package assessment

import "github.com/carelink/crisistriage/internal/models"

// RiskPattern is a named multi-question combination indicating compounded
// danger beyond any single answer. Patterns are evaluated directly over the
// raw response set, independent of the weighted score, and each match
// multiplies the scorer's result.
type RiskPattern struct {
	Name       string
	Label      string
	Multiplier float64
	Matches    func(models.ResponseSet) bool
}

// riskPatterns is the fixed pattern rule list, evaluated in order.
//
// A fifth pattern (worsening versus a prior assessment) existed in early
// designs but needs prior-assessment context the engine is never given, so
// it is deliberately not part of this list.
var riskPatterns = []RiskPattern{
	{
		Name:       "suicide-triad",
		Label:      "CRITICAL: Complete suicide triad detected",
		Multiplier: 3.0,
		Matches: func(r models.ResponseSet) bool {
			return answeredEquals(r, QuestionSelfHarmThoughts, 1) &&
				answeredEquals(r, QuestionSelfHarmPlan, 1) &&
				answeredEquals(r, QuestionSelfHarmMeans, 1)
		},
	},
	{
		Name:       "hopeless-isolated-substance",
		Label:      "Severe hopelessness with no support and substance use",
		Multiplier: 2.2,
		Matches: func(r models.ResponseSet) bool {
			return answeredAtLeast(r, QuestionHopelessness, 4) &&
				answeredEquals(r, QuestionSupportAvailable, 0) &&
				answeredEquals(r, QuestionSubstanceUse, 1)
		},
	},
	{
		Name:       "impulsive-history-ideation",
		Label:      "Impulsivity with attempt history and active ideation",
		Multiplier: 2.5,
		Matches: func(r models.ResponseSet) bool {
			return answeredEquals(r, QuestionImpulsivity, 1) &&
				answeredEquals(r, QuestionPreviousAttempts, 1) &&
				answeredEquals(r, QuestionSelfHarmThoughts, 1)
		},
	},
	{
		Name:       "overwhelmed-unsafe-alone",
		Label:      "Acutely overwhelmed, feeling unsafe, and without support",
		Multiplier: 1.8,
		Matches: func(r models.ResponseSet) bool {
			return answeredAtLeast(r, QuestionOverwhelmLevel, 4) &&
				answeredAtMost(r, QuestionSafety, 2) &&
				answeredEquals(r, QuestionSupportAvailable, 0)
		},
	},
}

// RiskPatterns returns the pattern rule list for inspection and testing.
func RiskPatterns() []RiskPattern {
	return riskPatterns
}

// DetectPatterns evaluates every risk pattern against the raw responses.
// It returns the labels of all matched patterns in rule order and the
// product of their multipliers (1.0 when nothing matches).
func DetectPatterns(responses models.ResponseSet) ([]string, float64) {
	labels := []string{}
	multiplier := 1.0
	for _, p := range riskPatterns {
		if p.Matches(responses) {
			labels = append(labels, p.Label)
			multiplier *= p.Multiplier
		}
	}
	return labels, multiplier
}

// answeredEquals reports whether the question was answered with exactly v.
// An absent answer never matches, even when v is zero.
func answeredEquals(r models.ResponseSet, id string, v int) bool {
	got, ok := r[id]
	return ok && got == v
}

// answeredAtLeast reports whether the question was answered with >= v.
func answeredAtLeast(r models.ResponseSet, id string, v int) bool {
	got, ok := r[id]
	return ok && got >= v
}

// answeredAtMost reports whether the question was answered with <= v.
func answeredAtMost(r models.ResponseSet, id string, v int) bool {
	got, ok := r[id]
	return ok && got <= v
}
