package assessment

import (
	"errors"
	"reflect"
	"testing"

	"github.com/carelink/crisistriage/internal/models"
)

func TestAssessCrisisSeverityFullChain(t *testing.T) {
	responses := models.ResponseSet{
		QuestionSafety:           1,
		QuestionSelfHarmThoughts: 1,
		QuestionSelfHarmPlan:     1,
		QuestionSelfHarmMeans:    1,
	}

	result, err := AssessCrisisSeverity(responses)
	if err != nil {
		t.Fatalf("AssessCrisisSeverity() error = %v", err)
	}

	if result.Severity != models.SeverityCritical {
		t.Errorf("Severity = %q; want %q", result.Severity, models.SeverityCritical)
	}
	if !result.RequiresImmediate {
		t.Error("RequiresImmediate = false; want true")
	}
	// Weighted contributions escalate to 1200, then the triad pattern
	// triples the total.
	if !almostEqual(result.Score, 3600) {
		t.Errorf("Score = %v; want 3600", result.Score)
	}
	if result.Confidence != 64 {
		t.Errorf("Confidence = %d; want 64", result.Confidence)
	}

	wantFactors := []string{
		"Feeling unsafe right now - HIGH RISK",
		"Active suicidal ideation - HIGH RISK",
		"Suicide plan in place - SEVERE RISK",
		"Access to lethal means - EXTREME RISK",
		"CRITICAL: Complete suicide triad detected",
	}
	if !reflect.DeepEqual(result.RiskFactors, wantFactors) {
		t.Errorf("RiskFactors = %v; want %v", result.RiskFactors, wantFactors)
	}
	if len(result.ProtectiveFactors) != 0 {
		t.Errorf("ProtectiveFactors = %v; want none", result.ProtectiveFactors)
	}
	if len(result.RecommendedActions) == 0 {
		t.Error("RecommendedActions is empty")
	}
}

func TestAssessCrisisSeverityProtectiveProfile(t *testing.T) {
	responses := models.ResponseSet{
		QuestionSelfHarmThoughts: 0,
		QuestionSupportAvailable: 1,
		QuestionSafety:           5,
	}

	result, err := AssessCrisisSeverity(responses)
	if err != nil {
		t.Fatalf("AssessCrisisSeverity() error = %v", err)
	}

	if result.Severity != models.SeverityLow {
		t.Errorf("Severity = %q; want %q", result.Severity, models.SeverityLow)
	}
	if result.RequiresImmediate {
		t.Error("RequiresImmediate = true; want false")
	}
	if len(result.ProtectiveFactors) == 0 {
		t.Error("ProtectiveFactors is empty; want support and safety signals")
	}
	// safety contributes 3 then dampens to 2.1; support adds 2 and dampens
	// the running total to 2.87.
	if !almostEqual(result.Score, 2.87) {
		t.Errorf("Score = %v; want 2.87", result.Score)
	}
}

func TestAssessCrisisSeverityEmptyResponses(t *testing.T) {
	for _, responses := range []models.ResponseSet{nil, {}} {
		result, err := AssessCrisisSeverity(responses)
		if err != nil {
			t.Fatalf("AssessCrisisSeverity() error = %v", err)
		}
		if result.Severity != models.SeverityLow {
			t.Errorf("Severity = %q; want %q", result.Severity, models.SeverityLow)
		}
		if result.RequiresImmediate {
			t.Error("RequiresImmediate = true; want false")
		}
		if result.Score != 0 {
			t.Errorf("Score = %v; want 0", result.Score)
		}
		if result.Confidence > 10 {
			t.Errorf("Confidence = %d; want at most 10", result.Confidence)
		}
	}
}

func TestAssessCrisisSeverityMeansAloneIsCritical(t *testing.T) {
	result, err := AssessCrisisSeverity(models.ResponseSet{QuestionSelfHarmMeans: 1})
	if err != nil {
		t.Fatalf("AssessCrisisSeverity() error = %v", err)
	}
	if result.Severity != models.SeverityCritical {
		t.Errorf("Severity = %q; want %q", result.Severity, models.SeverityCritical)
	}
	if !result.RequiresImmediate {
		t.Error("RequiresImmediate = false; want true")
	}
	// The scorer skips the answer for its unsatisfied dependency, but the
	// classifier still reacts to the raw response.
	if result.Score != 0 {
		t.Errorf("Score = %v; want 0", result.Score)
	}
}

func TestAssessCrisisSeverityOrphanPlanContributesNothing(t *testing.T) {
	result, err := AssessCrisisSeverity(models.ResponseSet{QuestionSelfHarmPlan: 1})
	if err != nil {
		t.Fatalf("AssessCrisisSeverity() error = %v", err)
	}
	if result.Score != 0 {
		t.Errorf("Score = %v; want 0", result.Score)
	}
	if result.Severity != models.SeverityLow {
		t.Errorf("Severity = %q; want %q", result.Severity, models.SeverityLow)
	}
	if scored := Score(models.ResponseSet{QuestionSelfHarmPlan: 1}); scored.CriticalFactorCount != 0 {
		t.Errorf("CriticalFactorCount = %d; want 0", scored.CriticalFactorCount)
	}
}

func TestAssessCrisisSeverityMonotonicOnHopelessness(t *testing.T) {
	base := models.ResponseSet{
		QuestionSelfHarmThoughts: 1,
		QuestionOverwhelmLevel:   3,
		QuestionHopelessness:     3,
	}
	raised := models.ResponseSet{
		QuestionSelfHarmThoughts: 1,
		QuestionOverwhelmLevel:   3,
		QuestionHopelessness:     4,
	}

	before, err := AssessCrisisSeverity(base)
	if err != nil {
		t.Fatalf("AssessCrisisSeverity(base) error = %v", err)
	}
	after, err := AssessCrisisSeverity(raised)
	if err != nil {
		t.Fatalf("AssessCrisisSeverity(raised) error = %v", err)
	}

	if after.Score < before.Score {
		t.Errorf("Score dropped from %v to %v after adding a critical hit", before.Score, after.Score)
	}
	if after.Severity.Rank() < before.Severity.Rank() {
		t.Errorf("Severity dropped from %q to %q after adding a critical hit", before.Severity, after.Severity)
	}
}

func TestAssessCrisisSeverityImmediateMatchesTier(t *testing.T) {
	sets := []models.ResponseSet{
		{},
		{QuestionSelfHarmThoughts: 1},
		{QuestionSelfHarmThoughts: 1, QuestionHopelessness: 4},
		{QuestionSelfHarmThoughts: 1, QuestionSelfHarmPlan: 1},
		{QuestionSelfHarmMeans: 1},
		{QuestionSupportAvailable: 1, QuestionSafety: 5},
		{QuestionOverwhelmLevel: 5, QuestionSupportAvailable: 0},
		{QuestionHopelessness: 4},
	}
	for _, responses := range sets {
		result, err := AssessCrisisSeverity(responses)
		if err != nil {
			t.Fatalf("AssessCrisisSeverity(%v) error = %v", responses, err)
		}
		wantImmediate := result.Severity == models.SeverityCritical || result.Severity == models.SeverityHigh
		if result.RequiresImmediate != wantImmediate {
			t.Errorf("responses %v: RequiresImmediate = %v with severity %q", responses, result.RequiresImmediate, result.Severity)
		}
	}
}

func TestAssessCrisisSeverityRejectsInvalidValues(t *testing.T) {
	_, err := AssessCrisisSeverity(models.ResponseSet{QuestionSafety: 0})
	if err == nil {
		t.Fatal("AssessCrisisSeverity() = nil error; want validation error")
	}
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error %v is not a *models.ValidationError", err)
	}
	if verr.Field != QuestionSafety {
		t.Errorf("Field = %q; want %q", verr.Field, QuestionSafety)
	}
}

func TestAssessCrisisSeverityDeterministic(t *testing.T) {
	responses := models.ResponseSet{
		QuestionSafety:           2,
		QuestionSelfHarmThoughts: 1,
		QuestionHopelessness:     4,
		QuestionSubstanceUse:     1,
	}
	first, err := AssessCrisisSeverity(responses)
	if err != nil {
		t.Fatalf("AssessCrisisSeverity() error = %v", err)
	}
	second, err := AssessCrisisSeverity(responses)
	if err != nil {
		t.Fatalf("AssessCrisisSeverity() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated assessment diverged:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
