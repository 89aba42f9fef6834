// Package store provides storage backends for CrisisTriage.
//
// This file implements the PostgreSQL-backed store.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "embed"

	"github.com/carelink/crisistriage/internal/models"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// Database connection pool configuration constants
const (
	// DefaultMaxOpenConns is the default maximum number of open connections to the database
	DefaultMaxOpenConns = 25
	// DefaultMaxIdleConns is the default maximum number of idle connections in the pool
	DefaultMaxIdleConns = 25
	// DefaultConnMaxLifetime is the default maximum amount of time a connection may be reused
	DefaultConnMaxLifetime = 5 * time.Minute
)

//go:embed migrations_postgres.sql
var postgresMigrations string

type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new Postgres store based on provided options.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewPostgresStore invoked", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		slog.Error("Failed to open Postgres connection", "error", err)
		return nil, err
	}

	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	if err := db.Ping(); err != nil {
		slog.Error("Postgres ping failed", "error", err)
		return nil, err
	}

	slog.Debug("Running Postgres migrations")
	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("Postgres migrations applied successfully")

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) AddMoodEntry(participantID string, entry models.MoodEntry) error {
	_, err := s.db.Exec(
		`INSERT INTO mood_entries (id, participant_id, recorded_at, mood_score, stress_level, anxiety_level, sleep_hours, social_interaction, exercised)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		uuid.NewString(), participantID, entry.Timestamp, entry.MoodScore,
		nullableInt(entry.StressLevel), nullableInt(entry.AnxietyLevel),
		nullableFloat(entry.SleepHours), nullableInt(entry.SocialInteraction), entry.Exercised,
	)
	if err != nil {
		slog.Error("PostgresStore AddMoodEntry failed", "error", err, "participantID", participantID)
		return fmt.Errorf("failed to insert mood entry for %s: %w", participantID, err)
	}
	slog.Debug("PostgresStore AddMoodEntry succeeded", "participantID", participantID)
	return nil
}

func (s *PostgresStore) GetMoodEntries(participantID string) ([]models.MoodEntry, error) {
	rows, err := s.db.Query(
		`SELECT recorded_at, mood_score, stress_level, anxiety_level, sleep_hours, social_interaction, exercised
		 FROM mood_entries WHERE participant_id = $1 ORDER BY recorded_at ASC`, participantID)
	if err != nil {
		slog.Error("PostgresStore GetMoodEntries query failed", "error", err)
		return nil, fmt.Errorf("failed to query mood entries: %w", err)
	}
	defer rows.Close()

	var entries []models.MoodEntry
	for rows.Next() {
		entry, err := scanMoodEntry(rows)
		if err != nil {
			slog.Error("PostgresStore GetMoodEntries scan failed", "error", err)
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		slog.Error("PostgresStore GetMoodEntries rows iteration failed", "error", err)
		return nil, fmt.Errorf("failed to iterate mood entry rows: %w", err)
	}
	slog.Debug("PostgresStore GetMoodEntries succeeded", "participantID", participantID, "count", len(entries))
	return entries, nil
}

func (s *PostgresStore) AddCrisisEvent(event models.CrisisEvent) (models.CrisisEvent, error) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	strategiesJSON, err := marshalStrategies(event.CopingStrategiesUsed)
	if err != nil {
		slog.Error("PostgresStore AddCrisisEvent marshal failed", "error", err, "eventID", event.ID)
		return models.CrisisEvent{}, err
	}
	_, err = s.db.Exec(
		`INSERT INTO crisis_events (id, participant_id, severity, occurred_at, coping_strategies) VALUES ($1, $2, $3, $4, $5)`,
		event.ID, event.ParticipantID, string(event.Severity), event.Timestamp, strategiesJSON,
	)
	if err != nil {
		slog.Error("PostgresStore AddCrisisEvent failed", "error", err, "participantID", event.ParticipantID)
		return models.CrisisEvent{}, fmt.Errorf("failed to insert crisis event for %s: %w", event.ParticipantID, err)
	}
	slog.Debug("PostgresStore AddCrisisEvent succeeded", "eventID", event.ID)
	return event, nil
}

func (s *PostgresStore) GetCrisisEvents(participantID string) ([]models.CrisisEvent, error) {
	rows, err := s.db.Query(
		`SELECT id, participant_id, severity, occurred_at, coping_strategies
		 FROM crisis_events WHERE participant_id = $1 ORDER BY occurred_at ASC`, participantID)
	if err != nil {
		slog.Error("PostgresStore GetCrisisEvents query failed", "error", err)
		return nil, fmt.Errorf("failed to query crisis events: %w", err)
	}
	defer rows.Close()

	var events []models.CrisisEvent
	for rows.Next() {
		event, err := scanCrisisEvent(rows)
		if err != nil {
			slog.Error("PostgresStore GetCrisisEvents scan failed", "error", err)
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		slog.Error("PostgresStore GetCrisisEvents rows iteration failed", "error", err)
		return nil, fmt.Errorf("failed to iterate crisis event rows: %w", err)
	}
	slog.Debug("PostgresStore GetCrisisEvents succeeded", "participantID", participantID, "count", len(events))
	return events, nil
}

func (s *PostgresStore) AddAssessmentRecord(record models.AssessmentRecord) (models.AssessmentRecord, error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	responsesJSON, resultJSON, err := marshalAssessment(record)
	if err != nil {
		slog.Error("PostgresStore AddAssessmentRecord marshal failed", "error", err, "recordID", record.ID)
		return models.AssessmentRecord{}, err
	}
	_, err = s.db.Exec(
		`INSERT INTO assessments (id, participant_id, responses, result, created_at) VALUES ($1, $2, $3, $4, $5)`,
		record.ID, record.ParticipantID, responsesJSON, resultJSON, record.CreatedAt,
	)
	if err != nil {
		slog.Error("PostgresStore AddAssessmentRecord failed", "error", err, "participantID", record.ParticipantID)
		return models.AssessmentRecord{}, fmt.Errorf("failed to insert assessment for %s: %w", record.ParticipantID, err)
	}
	slog.Debug("PostgresStore AddAssessmentRecord succeeded", "recordID", record.ID)
	return record, nil
}

func (s *PostgresStore) GetAssessmentRecords(participantID string) ([]models.AssessmentRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, participant_id, responses, result, created_at
		 FROM assessments WHERE participant_id = $1 ORDER BY created_at ASC`, participantID)
	if err != nil {
		slog.Error("PostgresStore GetAssessmentRecords query failed", "error", err)
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer rows.Close()

	var records []models.AssessmentRecord
	for rows.Next() {
		record, err := scanAssessmentRecord(rows)
		if err != nil {
			slog.Error("PostgresStore GetAssessmentRecords scan failed", "error", err)
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		slog.Error("PostgresStore GetAssessmentRecords rows iteration failed", "error", err)
		return nil, fmt.Errorf("failed to iterate assessment rows: %w", err)
	}
	slog.Debug("PostgresStore GetAssessmentRecords succeeded", "participantID", participantID, "count", len(records))
	return records, nil
}

// Close closes the Postgres database connection.
func (s *PostgresStore) Close() error {
	slog.Debug("Closing Postgres database connection")
	err := s.db.Close()
	if err != nil {
		slog.Error("Failed to close Postgres database", "error", err)
	}
	return err
}
