package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/carelink/crisistriage/internal/models"
)

// nullableInt returns nil for absent optional values so they land as NULL.
func nullableInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// nullableFloat returns nil for absent optional values so they land as NULL.
func nullableFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// marshalStrategies encodes a coping strategy list as JSON, nil for empty.
func marshalStrategies(strategies []string) (interface{}, error) {
	if len(strategies) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(strategies)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal coping strategies: %w", err)
	}
	return string(data), nil
}

// marshalAssessment encodes the responses and result of an assessment record.
func marshalAssessment(record models.AssessmentRecord) (string, string, error) {
	responsesJSON, err := json.Marshal(record.Responses)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal responses: %w", err)
	}
	resultJSON, err := json.Marshal(record.Result)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(responsesJSON), string(resultJSON), nil
}

// scanMoodEntry scans a MoodEntry from sql.Rows.
func scanMoodEntry(rows *sql.Rows) (models.MoodEntry, error) {
	var entry models.MoodEntry
	var recordedAt time.Time
	var stress, anxiety, social sql.NullInt64
	var sleep sql.NullFloat64
	err := rows.Scan(&recordedAt, &entry.MoodScore, &stress, &anxiety, &sleep, &social, &entry.Exercised)
	if err != nil {
		return entry, fmt.Errorf("scan mood entry failed: %w", err)
	}
	entry.Timestamp = recordedAt
	if stress.Valid {
		v := int(stress.Int64)
		entry.StressLevel = &v
	}
	if anxiety.Valid {
		v := int(anxiety.Int64)
		entry.AnxietyLevel = &v
	}
	if sleep.Valid {
		v := sleep.Float64
		entry.SleepHours = &v
	}
	if social.Valid {
		v := int(social.Int64)
		entry.SocialInteraction = &v
	}
	return entry, nil
}

// scanCrisisEvent scans a CrisisEvent from sql.Rows.
func scanCrisisEvent(rows *sql.Rows) (models.CrisisEvent, error) {
	var event models.CrisisEvent
	var severity string
	var strategiesJSON sql.NullString
	err := rows.Scan(&event.ID, &event.ParticipantID, &severity, &event.Timestamp, &strategiesJSON)
	if err != nil {
		return event, fmt.Errorf("scan crisis event failed: %w", err)
	}
	event.Severity = models.Severity(severity)
	if strategiesJSON.Valid && strategiesJSON.String != "" {
		if err := json.Unmarshal([]byte(strategiesJSON.String), &event.CopingStrategiesUsed); err != nil {
			return event, fmt.Errorf("failed to unmarshal coping strategies: %w", err)
		}
	}
	return event, nil
}

// scanAssessmentRecord scans an AssessmentRecord from sql.Rows.
func scanAssessmentRecord(rows *sql.Rows) (models.AssessmentRecord, error) {
	var record models.AssessmentRecord
	var responsesJSON, resultJSON string
	err := rows.Scan(&record.ID, &record.ParticipantID, &responsesJSON, &resultJSON, &record.CreatedAt)
	if err != nil {
		return record, fmt.Errorf("scan assessment record failed: %w", err)
	}
	if err := json.Unmarshal([]byte(responsesJSON), &record.Responses); err != nil {
		return record, fmt.Errorf("failed to unmarshal responses: %w", err)
	}
	if err := json.Unmarshal([]byte(resultJSON), &record.Result); err != nil {
		return record, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return record, nil
}
