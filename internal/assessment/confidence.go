package assessment

import (
	"math"

	"github.com/carelink/crisistriage/internal/models"
)

// Weights for combining overall completeness with completeness of the
// safety-critical questions.
const (
	completenessWeight         = 0.6
	criticalCompletenessWeight = 0.4
)

// criticalConfidenceQuestions are the questions whose absence most degrades
// how much the assessment can be trusted.
var criticalConfidenceQuestions = []string{
	QuestionSelfHarmThoughts,
	QuestionSelfHarmPlan,
	QuestionSelfHarmMeans,
	QuestionSafety,
}

// Confidence estimates answer completeness on a 0-100 scale, weighted toward
// the safety-critical questions. Eligible questions are those whose
// dependency chain is satisfied; a skipped branch does not count against
// completeness.
func Confidence(responses models.ResponseSet) int {
	eligible, answered := 0, 0
	for _, q := range Catalog() {
		if !dependencySatisfied(responses, q) {
			continue
		}
		eligible++
		if _, ok := responses[q.ID]; ok {
			answered++
		}
	}

	completeness := 0.0
	if eligible > 0 {
		completeness = float64(answered) / float64(eligible) * 100
	}

	criticalAnswered := 0
	for _, id := range criticalConfidenceQuestions {
		if _, ok := responses[id]; ok {
			criticalAnswered++
		}
	}
	criticalCompleteness := float64(criticalAnswered) / float64(len(criticalConfidenceQuestions)) * 100

	return int(math.Round(completeness*completenessWeight + criticalCompleteness*criticalCompletenessWeight))
}
