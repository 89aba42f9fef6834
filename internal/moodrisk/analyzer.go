// Package moodrisk scans a rolling window of mood-log entries for decline
// trends, sustained negative states, isolation, and sleep disruption.
//
// The analyzer is independent of the questionnaire engine: it consumes only
// mood entries and produces a coarse risk trend. Like the rest of the engine
// it is pure and performs no I/O.
package moodrisk

import (
	"time"

	"github.com/carelink/crisistriage/internal/models"
)

// DefaultWindowDays is the lookback window applied when the caller does not
// specify one.
const DefaultWindowDays = 7

// Signal thresholds over window means.
const (
	lowMoodThreshold      = 3.0
	highStressThreshold   = 7.0
	highAnxietyThreshold  = 7.0
	isolationThreshold    = 2.0
	sleepHoursThreshold   = 5.0
	declineDelta          = 1.5
	rapidDeclineDelta     = 3.0
	positiveMoodThreshold = 7.0
)

// Warning signal and trend strings.
const (
	SignalNoRecentData   = "No recent mood data available"
	SignalDecliningMood  = "Declining mood trend detected"
	SignalRapidDecline   = "Rapid mood decline over recent days"
	SignalLowMood        = "Persistently low mood"
	SignalHighStress     = "Sustained high stress"
	SignalHighAnxiety    = "Sustained high anxiety"
	SignalIsolation      = "Social isolation"
	SignalSleepDisrupted = "Severe sleep disruption"

	TrendDeclining       = "declining"
	TrendPositiveMood    = "positive mood"
	TrendRegularExercise = "regular exercise"
)

// AnalyzeMoodRisk evaluates mood entries within the lookback window ending
// now. Entries are expected in chronological order; windowDays <= 0 selects
// the default window. The result's risk level reflects only the warning
// signals, never the positive trend tags.
func AnalyzeMoodRisk(entries []models.MoodEntry, windowDays int) models.RiskTrendResult {
	return analyzeAt(entries, windowDays, time.Now())
}

// analyzeAt is the clock-injected core of AnalyzeMoodRisk.
func analyzeAt(entries []models.MoodEntry, windowDays int, now time.Time) models.RiskTrendResult {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	cutoff := now.AddDate(0, 0, -windowDays)

	window := make([]models.MoodEntry, 0, len(entries))
	for _, e := range entries {
		// Future-dated entries are excluded along with stale ones.
		if e.Timestamp.After(cutoff) && !e.Timestamp.After(now) {
			window = append(window, e)
		}
	}

	result := models.RiskTrendResult{
		RiskLevel:      models.RiskLevelLow,
		WarningSignals: []string{},
		Trends:         []string{},
	}
	if len(window) == 0 {
		result.WarningSignals = append(result.WarningSignals, SignalNoRecentData)
		return result
	}

	meanMood := meanMoodScore(window)

	// Decline detection: compare the chronological halves of the window.
	if len(window) >= 3 {
		mid := len(window) / 2
		earlier := meanMoodScore(window[:mid])
		recent := meanMoodScore(window[mid:])
		if recent < earlier-declineDelta {
			result.WarningSignals = append(result.WarningSignals, SignalDecliningMood)
			result.Trends = append(result.Trends, TrendDeclining)
			if recent <= earlier-rapidDeclineDelta {
				result.WarningSignals = append(result.WarningSignals, SignalRapidDecline)
			}
		}
	}

	if meanMood <= lowMoodThreshold {
		result.WarningSignals = append(result.WarningSignals, SignalLowMood)
	}
	if mean, ok := meanOptional(window, func(e models.MoodEntry) (float64, bool) {
		if e.StressLevel == nil {
			return 0, false
		}
		return float64(*e.StressLevel), true
	}); ok && mean >= highStressThreshold {
		result.WarningSignals = append(result.WarningSignals, SignalHighStress)
	}
	if mean, ok := meanOptional(window, func(e models.MoodEntry) (float64, bool) {
		if e.AnxietyLevel == nil {
			return 0, false
		}
		return float64(*e.AnxietyLevel), true
	}); ok && mean >= highAnxietyThreshold {
		result.WarningSignals = append(result.WarningSignals, SignalHighAnxiety)
	}
	if mean, ok := meanOptional(window, func(e models.MoodEntry) (float64, bool) {
		if e.SocialInteraction == nil {
			return 0, false
		}
		return float64(*e.SocialInteraction), true
	}); ok && mean <= isolationThreshold {
		result.WarningSignals = append(result.WarningSignals, SignalIsolation)
	}
	if mean, ok := meanOptional(window, func(e models.MoodEntry) (float64, bool) {
		if e.SleepHours == nil {
			return 0, false
		}
		return *e.SleepHours, true
	}); ok && mean < sleepHoursThreshold {
		result.WarningSignals = append(result.WarningSignals, SignalSleepDisrupted)
	}

	result.RiskLevel = riskLevelForSignalCount(len(result.WarningSignals))

	// Positive trend tags are informational only.
	if meanMood >= positiveMoodThreshold {
		result.Trends = append(result.Trends, TrendPositiveMood)
	}
	for _, e := range window {
		if e.Exercised {
			result.Trends = append(result.Trends, TrendRegularExercise)
			break
		}
	}
	return result
}

// riskLevelForSignalCount buckets a warning-signal count into a risk level.
func riskLevelForSignalCount(n int) models.RiskLevel {
	switch {
	case n >= 4:
		return models.RiskLevelHigh
	case n >= 2:
		return models.RiskLevelElevated
	case n == 1:
		return models.RiskLevelModerate
	default:
		return models.RiskLevelLow
	}
}

// meanMoodScore averages the mandatory mood score over the entries.
func meanMoodScore(entries []models.MoodEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0.0
	for _, e := range entries {
		sum += float64(e.MoodScore)
	}
	return sum / float64(len(entries))
}

// meanOptional averages an optional per-entry value over the entries that
// report it. The boolean result is false when no entry reports the value.
func meanOptional(entries []models.MoodEntry, value func(models.MoodEntry) (float64, bool)) (float64, bool) {
	sum, n := 0.0, 0
	for _, e := range entries {
		if v, ok := value(e); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
