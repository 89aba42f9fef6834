package models

import (
	"fmt"
	"time"
)

// AssessmentRequest is the payload for running a crisis assessment.
// ParticipantID is optional; when present the result is persisted.
type AssessmentRequest struct {
	ParticipantID string      `json:"participant_id,omitempty"`
	Responses     ResponseSet `json:"responses"`
}

// Validate performs structural validation on an AssessmentRequest.
// Response values themselves are validated by the assessment engine
// against the question catalog.
func (r *AssessmentRequest) Validate() error {
	if r.Responses == nil {
		return NewValidationError("responses", "field is required (may be empty, not null)")
	}
	return nil
}

// MoodEntryRequest is the payload for recording a mood-log entry.
type MoodEntryRequest struct {
	ParticipantID string    `json:"participant_id"`
	Entry         MoodEntry `json:"entry"`
}

// Validate checks the required fields of a MoodEntryRequest.
func (r *MoodEntryRequest) Validate() error {
	if r.ParticipantID == "" {
		return NewValidationError("participant_id", "field is required")
	}
	if r.Entry.Timestamp.IsZero() {
		return NewValidationError("entry.timestamp", "field is required")
	}
	if r.Entry.MoodScore < 1 || r.Entry.MoodScore > 10 {
		return NewValidationError("entry.mood_score", "must be between 1 and 10")
	}
	return nil
}

// MoodRiskRequest is the payload for analyzing caller-supplied mood entries.
type MoodRiskRequest struct {
	Entries    []MoodEntry `json:"entries"`
	WindowDays int         `json:"window_days,omitempty"` // defaults to 7
}

// Validate checks a MoodRiskRequest. An empty entries list is valid: the
// analyzer returns its documented fallback rather than an error.
func (r *MoodRiskRequest) Validate() error {
	if r.WindowDays < 0 {
		return NewValidationError("window_days", "must not be negative")
	}
	for i, e := range r.Entries {
		if e.MoodScore < 1 || e.MoodScore > 10 {
			return NewValidationError(fmt.Sprintf("entries[%d].mood_score", i), "must be between 1 and 10")
		}
		if e.Timestamp.IsZero() {
			return NewValidationError(fmt.Sprintf("entries[%d].timestamp", i), "field is required")
		}
	}
	return nil
}

// PreventionPlanRequest is the payload for generating a prevention plan.
// When ParticipantID is set, stored crisis events are merged with any
// events supplied inline.
type PreventionPlanRequest struct {
	ParticipantID     string        `json:"participant_id,omitempty"`
	RiskFactors       []string      `json:"risk_factors"`
	ProtectiveFactors []string      `json:"protective_factors"`
	PriorEvents       []CrisisEvent `json:"prior_events,omitempty"`
}

// Validate checks a PreventionPlanRequest. Empty factor lists are valid;
// the generator falls back to its universal plan content.
func (r *PreventionPlanRequest) Validate() error {
	for _, ev := range r.PriorEvents {
		if !IsValidSeverity(ev.Severity) {
			return NewValidationError("prior_events.severity", "must be one of low, medium, high, critical")
		}
	}
	return nil
}

// CrisisEventRequest is the payload for recording a historical crisis event.
type CrisisEventRequest struct {
	ParticipantID        string    `json:"participant_id"`
	Severity             Severity  `json:"severity"`
	Timestamp            time.Time `json:"timestamp"`
	CopingStrategiesUsed []string  `json:"coping_strategies_used,omitempty"`
}

// Validate checks the required fields of a CrisisEventRequest.
func (r *CrisisEventRequest) Validate() error {
	if r.ParticipantID == "" {
		return NewValidationError("participant_id", "field is required")
	}
	if !IsValidSeverity(r.Severity) {
		return NewValidationError("severity", "must be one of low, medium, high, critical")
	}
	if r.Timestamp.IsZero() {
		return NewValidationError("timestamp", "field is required")
	}
	return nil
}
