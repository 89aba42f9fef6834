// Package models defines the core data structures for CrisisTriage.
//
// It includes the question catalog types, assessment inputs and results,
// mood-history types, and prevention plan structures shared across modules.
package models

import (
	"errors"
	"fmt"
	"time"
)

// QuestionKind defines how a question's response is interpreted.
type QuestionKind string

const (
	// QuestionKindScale is a 1-5 Likert-style response.
	QuestionKindScale QuestionKind = "scale"
	// QuestionKindBinary is a yes/no response encoded as 1/0.
	QuestionKindBinary QuestionKind = "binary"
)

// Response range constants per question kind.
const (
	// ScaleMin is the minimum valid response for scale questions.
	ScaleMin = 1
	// ScaleMax is the maximum valid response for scale questions.
	ScaleMax = 5
	// BinaryMin is the minimum valid response for binary questions.
	BinaryMin = 0
	// BinaryMax is the maximum valid response for binary questions.
	BinaryMax = 1
)

// Error variables for better error handling and testability
var (
	ErrUnknownQuestion     = errors.New("unknown question id")
	ErrInvalidQuestionKind = errors.New("invalid question kind")
	ErrEmptyParticipantID  = errors.New("participant_id is required")
	ErrMissingTimestamp    = errors.New("timestamp is required")
	ErrMoodScoreOutOfRange = errors.New("mood_score must be between 1 and 10")
	ErrInvalidSeverity     = errors.New("invalid severity")
)

// IsValidQuestionKind checks if the given question kind is supported.
func IsValidQuestionKind(k QuestionKind) bool {
	switch k {
	case QuestionKindScale, QuestionKindBinary:
		return true
	default:
		return false
	}
}

// AssessmentQuestion is a single catalog entry. Catalog entries are
// immutable after load; the scorer and validator only ever read them.
type AssessmentQuestion struct {
	ID                string       `json:"id" yaml:"id"`
	Prompt            string       `json:"prompt" yaml:"prompt"`
	Kind              QuestionKind `json:"kind" yaml:"kind"`
	Weight            int          `json:"weight" yaml:"weight"`
	Inverse           bool         `json:"inverse,omitempty" yaml:"inverse"`
	CriticalThreshold *int         `json:"critical_threshold,omitempty" yaml:"critical_threshold"`
	DependsOn         string       `json:"depends_on,omitempty" yaml:"depends_on"`
}

// MaxValue returns the largest valid response for the question's kind.
func (q AssessmentQuestion) MaxValue() int {
	if q.Kind == QuestionKindScale {
		return ScaleMax
	}
	return BinaryMax
}

// ResponseSet maps question ids to integer responses. Unanswered questions
// are absent from the map, never present with a zero placeholder.
type ResponseSet map[string]int

// Severity is the engine's primary output category. Ordering is total:
// critical > high > medium > low.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank returns the severity's position in the total order (low=0 ... critical=3).
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	default:
		return 0
	}
}

// IsValidSeverity checks if the given severity is one of the four tiers.
func IsValidSeverity(s Severity) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	default:
		return false
	}
}

// CrisisAssessmentResult is the full output of a questionnaire assessment.
type CrisisAssessmentResult struct {
	Severity           Severity `json:"severity"`
	Score              float64  `json:"score"`
	RiskFactors        []string `json:"risk_factors"`
	ProtectiveFactors  []string `json:"protective_factors"`
	RecommendedActions []string `json:"recommended_actions"`
	RequiresImmediate  bool     `json:"requires_immediate"`
	Confidence         int      `json:"confidence"`
}

// MoodEntry is a single mood-log sample. All fields except Timestamp and
// MoodScore are optional; absent optional values are nil, not zero.
type MoodEntry struct {
	Timestamp         time.Time `json:"timestamp"`
	MoodScore         int       `json:"mood_score"` // 1-10
	StressLevel       *int      `json:"stress_level,omitempty"`
	AnxietyLevel      *int      `json:"anxiety_level,omitempty"`
	SleepHours        *float64  `json:"sleep_hours,omitempty"`
	SocialInteraction *int      `json:"social_interaction,omitempty"`
	Exercised         bool      `json:"exercised,omitempty"`
}

// RiskLevel is the coarse output category of the mood-history analyzer.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelModerate RiskLevel = "moderate"
	RiskLevelElevated RiskLevel = "elevated"
	RiskLevelHigh     RiskLevel = "high"
)

// RiskTrendResult is the output of the mood-history risk analyzer.
type RiskTrendResult struct {
	RiskLevel      RiskLevel `json:"risk_level"`
	WarningSignals []string  `json:"warning_signals"`
	Trends         []string  `json:"trends"`
}

// CrisisEvent is an externally supplied historical crisis record. Only the
// coping strategies that worked are consumed by the prevention planner.
type CrisisEvent struct {
	ID                   string    `json:"id,omitempty"`
	ParticipantID        string    `json:"participant_id,omitempty"`
	Severity             Severity  `json:"severity"`
	Timestamp            time.Time `json:"timestamp"`
	CopingStrategiesUsed []string  `json:"coping_strategies_used"`
}

// PreventionPlan is a personalized four-part action plan.
type PreventionPlan struct {
	WarningSignals    []string `json:"warning_signals"`
	CopingStrategies  []string `json:"coping_strategies"`
	SupportContacts   []string `json:"support_contacts"`
	PreventiveActions []string `json:"preventive_actions"`
}

// AssessmentRecord is a stored assessment outcome tied to a participant.
type AssessmentRecord struct {
	ID            string                 `json:"id"`
	ParticipantID string                 `json:"participant_id"`
	Responses     ResponseSet            `json:"responses"`
	Result        CrisisAssessmentResult `json:"result"`
	CreatedAt     time.Time              `json:"created_at"`
}

// ValidationError reports a malformed field in a request payload. It always
// names the offending field so callers can surface actionable messages.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError constructs a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
