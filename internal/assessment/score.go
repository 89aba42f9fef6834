package assessment

import "github.com/carelink/crisistriage/internal/models"

// Canonical question ids referenced by the scorer, pattern detector, and
// severity classifier.
const (
	QuestionSafety           = "safety"
	QuestionSelfHarmThoughts = "self-harm-thoughts"
	QuestionSelfHarmPlan     = "self-harm-plan"
	QuestionSelfHarmMeans    = "self-harm-means"
	QuestionSupportAvailable = "support-available"
	QuestionOverwhelmLevel   = "overwhelm-level"
	QuestionHopelessness     = "hopelessness"
	QuestionSubstanceUse     = "substance-use"
	QuestionPreviousAttempts = "previous-attempts"
	QuestionImpulsivity      = "impulsivity"
)

// protectiveDampening is the multiplier applied to the running score for
// each protective signal.
const protectiveDampening = 0.7

// escalationMultipliers maps a question id to the factor applied to the
// running score the moment its critical threshold is hit. Questions absent
// from this table still count toward CriticalFactorCount but do not escalate
// the score.
var escalationMultipliers = map[string]float64{
	QuestionSelfHarmThoughts: 2.5,
	QuestionSelfHarmPlan:     3.75, // 2.5 x 1.5
	QuestionSelfHarmMeans:    5.0,  // 2.5 x 2
	QuestionHopelessness:     1.5,
	QuestionImpulsivity:      1.5,
}

// criticalHitLabels are the fixed risk-factor strings emitted on each
// critical-threshold hit.
var criticalHitLabels = map[string]string{
	QuestionSafety:           "Feeling unsafe right now - HIGH RISK",
	QuestionSelfHarmThoughts: "Active suicidal ideation - HIGH RISK",
	QuestionSelfHarmPlan:     "Suicide plan in place - SEVERE RISK",
	QuestionSelfHarmMeans:    "Access to lethal means - EXTREME RISK",
	QuestionHopelessness:     "Severe hopelessness",
	QuestionImpulsivity:      "High impulsivity with suicidal thoughts",
}

// protectiveLabels are the fixed protective-factor strings emitted when a
// protective signal is present.
var protectiveLabels = map[string]string{
	QuestionSupportAvailable: "Strong support system available",
	QuestionSafety:           "Feels safe currently",
}

// ScoreResult is the output of the weighted scorer.
type ScoreResult struct {
	RawScore            float64
	MaxPossibleScore    float64
	SeverityPercentage  float64
	CriticalFactorCount int
	RiskFactors         []string
	ProtectiveFactors   []string
}

// Score computes the raw weighted score for a validated response set.
//
// Questions are processed in catalog order in a single pass. A question
// contributes only when its dependency chain is satisfied and it was
// answered; every dependency-satisfied question contributes weight x max to
// the maximum possible score whether answered or not. Critical hits and
// protective signals multiply the running score at the moment the question
// is processed, so composition order is exactly catalog order.
func Score(responses models.ResponseSet) ScoreResult {
	result := ScoreResult{
		RiskFactors:       []string{},
		ProtectiveFactors: []string{},
	}

	for _, q := range Catalog() {
		if !dependencySatisfied(responses, q) {
			continue
		}
		result.MaxPossibleScore += float64(q.Weight * q.MaxValue())

		v, answered := responses[q.ID]
		if !answered {
			continue
		}

		result.RawScore += contribution(q, v)

		if criticalHit(q, v) {
			result.CriticalFactorCount++
			if label, ok := criticalHitLabels[q.ID]; ok {
				result.RiskFactors = append(result.RiskFactors, label)
			}
			if m, ok := escalationMultipliers[q.ID]; ok {
				result.RawScore *= m
			}
		}

		if protectiveSignal(q, v) {
			result.RawScore *= protectiveDampening
			if label, ok := protectiveLabels[q.ID]; ok {
				result.ProtectiveFactors = append(result.ProtectiveFactors, label)
			}
		}
	}

	result.SeverityPercentage = SeverityPercentage(result.RawScore, result.MaxPossibleScore)
	return result
}

// contribution is the weighted score contribution of a single answer.
// Inverse questions contribute (max+1) - response, so that a high answer on
// a protective question ("how safe do you feel") contributes little.
func contribution(q models.AssessmentQuestion, v int) float64 {
	value := v
	if q.Inverse {
		value = q.MaxValue() + 1 - v
	}
	return float64(q.Weight * value)
}

// criticalHit reports whether the response crosses the question's critical
// threshold. For inverse questions the danger direction is reversed: the hit
// triggers at or below the threshold (safety=1 is the dangerous answer).
func criticalHit(q models.AssessmentQuestion, v int) bool {
	if q.CriticalThreshold == nil {
		return false
	}
	if q.Inverse {
		return v <= *q.CriticalThreshold
	}
	return v >= *q.CriticalThreshold
}

// protectiveSignal reports whether the response is a mitigating answer:
// a yes on an inverse binary question (support available) or a 4+ on an
// inverse scale question (feels safe).
func protectiveSignal(q models.AssessmentQuestion, v int) bool {
	if !q.Inverse {
		return false
	}
	if q.Kind == models.QuestionKindBinary {
		return v == 1
	}
	return v >= 4
}

// SeverityPercentage expresses a score as a percentage of the maximum
// possible, capped at 100. A zero maximum yields zero.
func SeverityPercentage(score, maxPossible float64) float64 {
	if maxPossible <= 0 {
		return 0
	}
	pct := score / maxPossible * 100
	if pct > 100 {
		return 100
	}
	return pct
}
