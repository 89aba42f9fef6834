package moodrisk

import (
	"reflect"
	"testing"
	"time"

	"github.com/carelink/crisistriage/internal/models"
)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

// entriesWithScores builds one entry per day ending yesterday, oldest first.
func entriesWithScores(scores ...int) []models.MoodEntry {
	entries := make([]models.MoodEntry, 0, len(scores))
	for i, s := range scores {
		entries = append(entries, models.MoodEntry{
			Timestamp: testNow.AddDate(0, 0, i-len(scores)),
			MoodScore: s,
		})
	}
	return entries
}

func TestAnalyzeEmptyHistory(t *testing.T) {
	got := analyzeAt(nil, DefaultWindowDays, testNow)

	want := models.RiskTrendResult{
		RiskLevel:      models.RiskLevelLow,
		WarningSignals: []string{SignalNoRecentData},
		Trends:         []string{},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("analyzeAt() = %+v; want %+v", got, want)
	}
}

func TestAnalyzeSteadyDecline(t *testing.T) {
	// Seven consecutive days falling from 8 to 2.
	got := analyzeAt(entriesWithScores(8, 7, 6, 5, 4, 3, 2), DefaultWindowDays, testNow)

	if got.RiskLevel != models.RiskLevelElevated && got.RiskLevel != models.RiskLevelHigh {
		t.Errorf("RiskLevel = %q; want elevated or high", got.RiskLevel)
	}
	if !containsString(got.Trends, TrendDeclining) {
		t.Errorf("Trends = %v; want to include %q", got.Trends, TrendDeclining)
	}
	if !containsString(got.WarningSignals, SignalDecliningMood) {
		t.Errorf("WarningSignals = %v; want to include %q", got.WarningSignals, SignalDecliningMood)
	}
	if !containsString(got.WarningSignals, SignalRapidDecline) {
		t.Errorf("WarningSignals = %v; want to include %q", got.WarningSignals, SignalRapidDecline)
	}
}

func TestAnalyzeGentleDecline(t *testing.T) {
	// Mean drops from 7 to 5: declining but not rapid.
	got := analyzeAt(entriesWithScores(7, 7, 7, 5, 5, 5), DefaultWindowDays, testNow)

	if !containsString(got.WarningSignals, SignalDecliningMood) {
		t.Errorf("WarningSignals = %v; want to include %q", got.WarningSignals, SignalDecliningMood)
	}
	if containsString(got.WarningSignals, SignalRapidDecline) {
		t.Errorf("WarningSignals = %v; rapid decline should not fire on a 2-point drop", got.WarningSignals)
	}
	if got.RiskLevel != models.RiskLevelModerate {
		t.Errorf("RiskLevel = %q; want %q", got.RiskLevel, models.RiskLevelModerate)
	}
}

func TestAnalyzeStableMoodHasNoSignals(t *testing.T) {
	got := analyzeAt(entriesWithScores(6, 6, 5, 6, 6, 5, 6), DefaultWindowDays, testNow)

	if len(got.WarningSignals) != 0 {
		t.Errorf("WarningSignals = %v; want none", got.WarningSignals)
	}
	if got.RiskLevel != models.RiskLevelLow {
		t.Errorf("RiskLevel = %q; want %q", got.RiskLevel, models.RiskLevelLow)
	}
}

func TestAnalyzeOptionalFieldSignals(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*models.MoodEntry)
		wantSignal string
	}{
		{
			name:       "sustained high stress",
			mutate:     func(e *models.MoodEntry) { e.StressLevel = intPtr(8) },
			wantSignal: SignalHighStress,
		},
		{
			name:       "sustained high anxiety",
			mutate:     func(e *models.MoodEntry) { e.AnxietyLevel = intPtr(7) },
			wantSignal: SignalHighAnxiety,
		},
		{
			name:       "social isolation",
			mutate:     func(e *models.MoodEntry) { e.SocialInteraction = intPtr(1) },
			wantSignal: SignalIsolation,
		},
		{
			name:       "sleep disruption",
			mutate:     func(e *models.MoodEntry) { e.SleepHours = floatPtr(4.5) },
			wantSignal: SignalSleepDisrupted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := entriesWithScores(6, 6, 6, 6)
			for i := range entries {
				tt.mutate(&entries[i])
			}
			got := analyzeAt(entries, DefaultWindowDays, testNow)
			if !containsString(got.WarningSignals, tt.wantSignal) {
				t.Errorf("WarningSignals = %v; want to include %q", got.WarningSignals, tt.wantSignal)
			}
			if got.RiskLevel != models.RiskLevelModerate {
				t.Errorf("RiskLevel = %q; want %q", got.RiskLevel, models.RiskLevelModerate)
			}
		})
	}
}

func TestAnalyzeOptionalFieldsAbsentAreIgnored(t *testing.T) {
	// Entries without the optional fields must not trigger the corresponding
	// signals even though a zero value would cross the isolation and sleep
	// thresholds.
	got := analyzeAt(entriesWithScores(6, 6, 6), DefaultWindowDays, testNow)
	for _, s := range []string{SignalIsolation, SignalSleepDisrupted, SignalHighStress, SignalHighAnxiety} {
		if containsString(got.WarningSignals, s) {
			t.Errorf("WarningSignals = %v; %q should need reported values", got.WarningSignals, s)
		}
	}
}

func TestAnalyzePersistentlyLowMood(t *testing.T) {
	got := analyzeAt(entriesWithScores(3, 2, 3, 2), DefaultWindowDays, testNow)
	if !containsString(got.WarningSignals, SignalLowMood) {
		t.Errorf("WarningSignals = %v; want to include %q", got.WarningSignals, SignalLowMood)
	}
}

func TestAnalyzeWindowFiltering(t *testing.T) {
	entries := []models.MoodEntry{
		// Stale: outside the 7 day window.
		{Timestamp: testNow.AddDate(0, 0, -10), MoodScore: 1},
		{Timestamp: testNow.AddDate(0, 0, -9), MoodScore: 1},
		// In window.
		{Timestamp: testNow.AddDate(0, 0, -2), MoodScore: 6},
		{Timestamp: testNow.AddDate(0, 0, -1), MoodScore: 6},
		// Future-dated entries are excluded too.
		{Timestamp: testNow.AddDate(0, 0, 1), MoodScore: 1},
	}

	got := analyzeAt(entries, DefaultWindowDays, testNow)
	if len(got.WarningSignals) != 0 {
		t.Errorf("WarningSignals = %v; stale and future entries should be ignored", got.WarningSignals)
	}
	if got.RiskLevel != models.RiskLevelLow {
		t.Errorf("RiskLevel = %q; want %q", got.RiskLevel, models.RiskLevelLow)
	}
}

func TestAnalyzeWindowDaysDefaulting(t *testing.T) {
	entries := []models.MoodEntry{
		{Timestamp: testNow.AddDate(0, 0, -5), MoodScore: 2},
	}
	for _, windowDays := range []int{0, -3} {
		got := analyzeAt(entries, windowDays, testNow)
		if !containsString(got.WarningSignals, SignalLowMood) {
			t.Errorf("windowDays=%d: WarningSignals = %v; default window should cover a 5 day old entry", windowDays, got.WarningSignals)
		}
	}
}

func TestAnalyzePositiveTrends(t *testing.T) {
	entries := entriesWithScores(8, 8, 7, 8)
	entries[2].Exercised = true

	got := analyzeAt(entries, DefaultWindowDays, testNow)
	if !containsString(got.Trends, TrendPositiveMood) {
		t.Errorf("Trends = %v; want to include %q", got.Trends, TrendPositiveMood)
	}
	if !containsString(got.Trends, TrendRegularExercise) {
		t.Errorf("Trends = %v; want to include %q", got.Trends, TrendRegularExercise)
	}
	if got.RiskLevel != models.RiskLevelLow {
		t.Errorf("RiskLevel = %q; positive trends must not raise risk", got.RiskLevel)
	}
}

func TestRiskLevelBuckets(t *testing.T) {
	tests := []struct {
		signals int
		want    models.RiskLevel
	}{
		{0, models.RiskLevelLow},
		{1, models.RiskLevelModerate},
		{2, models.RiskLevelElevated},
		{3, models.RiskLevelElevated},
		{4, models.RiskLevelHigh},
		{7, models.RiskLevelHigh},
	}
	for _, tt := range tests {
		if got := riskLevelForSignalCount(tt.signals); got != tt.want {
			t.Errorf("riskLevelForSignalCount(%d) = %q; want %q", tt.signals, got, tt.want)
		}
	}
}

func TestAnalyzeManySignalsIsHighRisk(t *testing.T) {
	entries := entriesWithScores(3, 3, 2, 2)
	for i := range entries {
		entries[i].StressLevel = intPtr(9)
		entries[i].AnxietyLevel = intPtr(8)
		entries[i].SocialInteraction = intPtr(0)
		entries[i].SleepHours = floatPtr(3)
	}

	got := analyzeAt(entries, DefaultWindowDays, testNow)
	if got.RiskLevel != models.RiskLevelHigh {
		t.Errorf("RiskLevel = %q; want %q (signals: %v)", got.RiskLevel, models.RiskLevelHigh, got.WarningSignals)
	}
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
