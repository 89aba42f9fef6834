package models

import "testing"

func TestSeverityRankOrdering(t *testing.T) {
	ordered := []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Rank() <= ordered[i-1].Rank() {
			t.Errorf("Rank(%q) = %d is not above Rank(%q) = %d",
				ordered[i], ordered[i].Rank(), ordered[i-1], ordered[i-1].Rank())
		}
	}
	if got := Severity("bogus").Rank(); got != 0 {
		t.Errorf("Rank of unknown severity = %d; want 0", got)
	}
}

func TestIsValidSeverity(t *testing.T) {
	for _, s := range []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical} {
		if !IsValidSeverity(s) {
			t.Errorf("IsValidSeverity(%q) = false; want true", s)
		}
	}
	for _, s := range []Severity{"", "LOW", "urgent"} {
		if IsValidSeverity(s) {
			t.Errorf("IsValidSeverity(%q) = true; want false", s)
		}
	}
}

func TestIsValidQuestionKind(t *testing.T) {
	if !IsValidQuestionKind(QuestionKindScale) || !IsValidQuestionKind(QuestionKindBinary) {
		t.Error("scale and binary kinds should be valid")
	}
	if IsValidQuestionKind("slider") {
		t.Error(`IsValidQuestionKind("slider") = true; want false`)
	}
}

func TestAssessmentQuestionMaxValue(t *testing.T) {
	if got := (AssessmentQuestion{Kind: QuestionKindScale}).MaxValue(); got != ScaleMax {
		t.Errorf("scale MaxValue() = %d; want %d", got, ScaleMax)
	}
	if got := (AssessmentQuestion{Kind: QuestionKindBinary}).MaxValue(); got != BinaryMax {
		t.Errorf("binary MaxValue() = %d; want %d", got, BinaryMax)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError("entry.mood_score", "must be between 1 and 10")
	want := "entry.mood_score: must be between 1 and 10"
	if err.Error() != want {
		t.Errorf("Error() = %q; want %q", err.Error(), want)
	}
}
