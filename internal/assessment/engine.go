package assessment

import "github.com/carelink/crisistriage/internal/models"

// AssessCrisisSeverity converts a questionnaire response set into a severity
// classification, recommended actions, and a confidence estimate.
//
// The computation is pure and deterministic: identical inputs always produce
// identical outputs, and callers may invoke it concurrently without
// coordination. The only possible error is a validation failure on the
// response values; partial and empty response sets are valid inputs and
// classify as low severity with correspondingly low confidence.
func AssessCrisisSeverity(responses models.ResponseSet) (models.CrisisAssessmentResult, error) {
	if responses == nil {
		responses = models.ResponseSet{}
	}
	if err := ValidateResponses(responses); err != nil {
		return models.CrisisAssessmentResult{}, err
	}

	scored := Score(responses)
	patternLabels, patternMultiplier := DetectPatterns(responses)

	// Pattern multipliers compound on top of the scorer's own escalation;
	// both run against the same weighted base.
	finalScore := scored.RawScore * patternMultiplier
	severityPercentage := SeverityPercentage(finalScore, scored.MaxPossibleScore)

	classification := Classify(responses, severityPercentage, scored.CriticalFactorCount)

	// Risk factors keep their detection order: per-question critical hits,
	// then matched patterns, then contextual compound risks. Related
	// detectors may report overlapping findings; duplicates are kept.
	riskFactors := make([]string, 0, len(scored.RiskFactors)+len(patternLabels)+len(classification.ContextualFactors))
	riskFactors = append(riskFactors, scored.RiskFactors...)
	riskFactors = append(riskFactors, patternLabels...)
	riskFactors = append(riskFactors, classification.ContextualFactors...)

	return models.CrisisAssessmentResult{
		Severity:           classification.Severity,
		Score:              finalScore,
		RiskFactors:        riskFactors,
		ProtectiveFactors:  scored.ProtectiveFactors,
		RecommendedActions: classification.RecommendedActions,
		RequiresImmediate:  classification.RequiresImmediate,
		Confidence:         Confidence(responses),
	}, nil
}
