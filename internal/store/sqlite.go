// Package store provides storage backends for CrisisTriage.
//
// This file implements the SQLite-backed store.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "embed"

	"github.com/carelink/crisistriage/internal/models"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultDirPermissions defines the default permissions for database directories.
const DefaultDirPermissions = 0755

//go:embed migrations_sqlite.sql
var sqliteMigrations string

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store with the given DSN.
// The DSN should be a file path to the SQLite database file.
// If the directory doesn't exist, it will be created.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewSQLiteStore invoked", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("SQLiteStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		return nil, err
	}

	slog.Debug("Running SQLite migrations")
	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLite migrations applied successfully")

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) AddMoodEntry(participantID string, entry models.MoodEntry) error {
	_, err := s.db.Exec(
		`INSERT INTO mood_entries (id, participant_id, recorded_at, mood_score, stress_level, anxiety_level, sleep_hours, social_interaction, exercised)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), participantID, entry.Timestamp, entry.MoodScore,
		nullableInt(entry.StressLevel), nullableInt(entry.AnxietyLevel),
		nullableFloat(entry.SleepHours), nullableInt(entry.SocialInteraction), entry.Exercised,
	)
	if err != nil {
		slog.Error("SQLiteStore AddMoodEntry failed", "error", err, "participantID", participantID)
		return fmt.Errorf("failed to insert mood entry for %s: %w", participantID, err)
	}
	slog.Debug("SQLiteStore AddMoodEntry succeeded", "participantID", participantID)
	return nil
}

func (s *SQLiteStore) GetMoodEntries(participantID string) ([]models.MoodEntry, error) {
	rows, err := s.db.Query(
		`SELECT recorded_at, mood_score, stress_level, anxiety_level, sleep_hours, social_interaction, exercised
		 FROM mood_entries WHERE participant_id = ? ORDER BY recorded_at ASC`, participantID)
	if err != nil {
		slog.Error("SQLiteStore GetMoodEntries query failed", "error", err)
		return nil, fmt.Errorf("failed to query mood entries: %w", err)
	}
	defer rows.Close()

	var entries []models.MoodEntry
	for rows.Next() {
		entry, err := scanMoodEntry(rows)
		if err != nil {
			slog.Error("SQLiteStore GetMoodEntries scan failed", "error", err)
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		slog.Error("SQLiteStore GetMoodEntries rows iteration failed", "error", err)
		return nil, fmt.Errorf("failed to iterate mood entry rows: %w", err)
	}
	slog.Debug("SQLiteStore GetMoodEntries succeeded", "participantID", participantID, "count", len(entries))
	return entries, nil
}

func (s *SQLiteStore) AddCrisisEvent(event models.CrisisEvent) (models.CrisisEvent, error) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	strategiesJSON, err := marshalStrategies(event.CopingStrategiesUsed)
	if err != nil {
		slog.Error("SQLiteStore AddCrisisEvent marshal failed", "error", err, "eventID", event.ID)
		return models.CrisisEvent{}, err
	}
	_, err = s.db.Exec(
		`INSERT INTO crisis_events (id, participant_id, severity, occurred_at, coping_strategies) VALUES (?, ?, ?, ?, ?)`,
		event.ID, event.ParticipantID, string(event.Severity), event.Timestamp, strategiesJSON,
	)
	if err != nil {
		slog.Error("SQLiteStore AddCrisisEvent failed", "error", err, "participantID", event.ParticipantID)
		return models.CrisisEvent{}, fmt.Errorf("failed to insert crisis event for %s: %w", event.ParticipantID, err)
	}
	slog.Debug("SQLiteStore AddCrisisEvent succeeded", "eventID", event.ID)
	return event, nil
}

func (s *SQLiteStore) GetCrisisEvents(participantID string) ([]models.CrisisEvent, error) {
	rows, err := s.db.Query(
		`SELECT id, participant_id, severity, occurred_at, coping_strategies
		 FROM crisis_events WHERE participant_id = ? ORDER BY occurred_at ASC`, participantID)
	if err != nil {
		slog.Error("SQLiteStore GetCrisisEvents query failed", "error", err)
		return nil, fmt.Errorf("failed to query crisis events: %w", err)
	}
	defer rows.Close()

	var events []models.CrisisEvent
	for rows.Next() {
		event, err := scanCrisisEvent(rows)
		if err != nil {
			slog.Error("SQLiteStore GetCrisisEvents scan failed", "error", err)
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		slog.Error("SQLiteStore GetCrisisEvents rows iteration failed", "error", err)
		return nil, fmt.Errorf("failed to iterate crisis event rows: %w", err)
	}
	slog.Debug("SQLiteStore GetCrisisEvents succeeded", "participantID", participantID, "count", len(events))
	return events, nil
}

func (s *SQLiteStore) AddAssessmentRecord(record models.AssessmentRecord) (models.AssessmentRecord, error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	responsesJSON, resultJSON, err := marshalAssessment(record)
	if err != nil {
		slog.Error("SQLiteStore AddAssessmentRecord marshal failed", "error", err, "recordID", record.ID)
		return models.AssessmentRecord{}, err
	}
	_, err = s.db.Exec(
		`INSERT INTO assessments (id, participant_id, responses, result, created_at) VALUES (?, ?, ?, ?, ?)`,
		record.ID, record.ParticipantID, responsesJSON, resultJSON, record.CreatedAt,
	)
	if err != nil {
		slog.Error("SQLiteStore AddAssessmentRecord failed", "error", err, "participantID", record.ParticipantID)
		return models.AssessmentRecord{}, fmt.Errorf("failed to insert assessment for %s: %w", record.ParticipantID, err)
	}
	slog.Debug("SQLiteStore AddAssessmentRecord succeeded", "recordID", record.ID)
	return record, nil
}

func (s *SQLiteStore) GetAssessmentRecords(participantID string) ([]models.AssessmentRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, participant_id, responses, result, created_at
		 FROM assessments WHERE participant_id = ? ORDER BY created_at ASC`, participantID)
	if err != nil {
		slog.Error("SQLiteStore GetAssessmentRecords query failed", "error", err)
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer rows.Close()

	var records []models.AssessmentRecord
	for rows.Next() {
		record, err := scanAssessmentRecord(rows)
		if err != nil {
			slog.Error("SQLiteStore GetAssessmentRecords scan failed", "error", err)
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		slog.Error("SQLiteStore GetAssessmentRecords rows iteration failed", "error", err)
		return nil, fmt.Errorf("failed to iterate assessment rows: %w", err)
	}
	slog.Debug("SQLiteStore GetAssessmentRecords succeeded", "participantID", participantID, "count", len(records))
	return records, nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	slog.Debug("Closing SQLite database connection")
	err := s.db.Close()
	if err != nil {
		slog.Error("Failed to close SQLite database", "error", err)
	}
	return err
}
