package assessment

import (
	"testing"

	"github.com/carelink/crisistriage/internal/models"
)

func TestDetectPatterns(t *testing.T) {
	tests := []struct {
		name           string
		responses      models.ResponseSet
		wantLabels     []string
		wantMultiplier float64
	}{
		{
			name:           "no answers matches nothing",
			responses:      models.ResponseSet{},
			wantLabels:     []string{},
			wantMultiplier: 1.0,
		},
		{
			name: "complete suicide triad",
			responses: models.ResponseSet{
				QuestionSelfHarmThoughts: 1,
				QuestionSelfHarmPlan:     1,
				QuestionSelfHarmMeans:    1,
			},
			wantLabels:     []string{"CRITICAL: Complete suicide triad detected"},
			wantMultiplier: 3.0,
		},
		{
			name: "partial triad does not match",
			responses: models.ResponseSet{
				QuestionSelfHarmThoughts: 1,
				QuestionSelfHarmPlan:     1,
				QuestionSelfHarmMeans:    0,
			},
			wantLabels:     []string{},
			wantMultiplier: 1.0,
		},
		{
			name: "hopelessness with isolation and substance use",
			responses: models.ResponseSet{
				QuestionHopelessness:     4,
				QuestionSupportAvailable: 0,
				QuestionSubstanceUse:     1,
			},
			wantLabels:     []string{"Severe hopelessness with no support and substance use"},
			wantMultiplier: 2.2,
		},
		{
			name: "unanswered support is not the same as no support",
			responses: models.ResponseSet{
				QuestionHopelessness: 5,
				QuestionSubstanceUse: 1,
			},
			wantLabels:     []string{},
			wantMultiplier: 1.0,
		},
		{
			name: "impulsivity with history and ideation",
			responses: models.ResponseSet{
				QuestionImpulsivity:      1,
				QuestionPreviousAttempts: 1,
				QuestionSelfHarmThoughts: 1,
			},
			wantLabels:     []string{"Impulsivity with attempt history and active ideation"},
			wantMultiplier: 2.5,
		},
		{
			name: "overwhelmed unsafe and alone",
			responses: models.ResponseSet{
				QuestionOverwhelmLevel:   4,
				QuestionSafety:           2,
				QuestionSupportAvailable: 0,
			},
			wantLabels:     []string{"Acutely overwhelmed, feeling unsafe, and without support"},
			wantMultiplier: 1.8,
		},
		{
			name: "multiple patterns compound multiplicatively",
			responses: models.ResponseSet{
				QuestionSelfHarmThoughts: 1,
				QuestionSelfHarmPlan:     1,
				QuestionSelfHarmMeans:    1,
				QuestionImpulsivity:      1,
				QuestionPreviousAttempts: 1,
			},
			wantLabels: []string{
				"CRITICAL: Complete suicide triad detected",
				"Impulsivity with attempt history and active ideation",
			},
			wantMultiplier: 7.5, // 3.0 * 2.5
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			labels, multiplier := DetectPatterns(tt.responses)
			if !almostEqual(multiplier, tt.wantMultiplier) {
				t.Errorf("multiplier = %v; want %v", multiplier, tt.wantMultiplier)
			}
			if len(labels) != len(tt.wantLabels) {
				t.Fatalf("labels = %v; want %v", labels, tt.wantLabels)
			}
			for i, want := range tt.wantLabels {
				if labels[i] != want {
					t.Errorf("labels[%d] = %q; want %q", i, labels[i], want)
				}
			}
		})
	}
}

func TestRiskPatternsHaveSaneMultipliers(t *testing.T) {
	for _, p := range RiskPatterns() {
		if p.Multiplier < 1 {
			t.Errorf("pattern %q multiplier %v is below 1; matched patterns must never lower the score", p.Name, p.Multiplier)
		}
		if p.Label == "" {
			t.Errorf("pattern %q has no label", p.Name)
		}
	}
}
