// Package store provides storage backends for CrisisTriage.
//
// Stores hold the data the engine itself never touches: participants'
// mood-log histories, historical crisis events, and completed assessment
// records. Backends exist for SQLite, PostgreSQL, and in-memory use.
package store

import (
	"sort"
	"sync"

	"github.com/carelink/crisistriage/internal/models"
	"github.com/google/uuid"
)

// Store is the persistence interface consumed by the API layer.
type Store interface {
	AddMoodEntry(participantID string, entry models.MoodEntry) error
	GetMoodEntries(participantID string) ([]models.MoodEntry, error)
	AddCrisisEvent(event models.CrisisEvent) (models.CrisisEvent, error)
	GetCrisisEvents(participantID string) ([]models.CrisisEvent, error)
	AddAssessmentRecord(record models.AssessmentRecord) (models.AssessmentRecord, error)
	GetAssessmentRecords(participantID string) ([]models.AssessmentRecord, error)
	Close() error
}

// InMemoryStore is a mutex-guarded in-memory store, used when no database
// DSN is configured and throughout the tests.
type InMemoryStore struct {
	mu          sync.Mutex
	moodEntries map[string][]models.MoodEntry
	events      map[string][]models.CrisisEvent
	assessments map[string][]models.AssessmentRecord
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		moodEntries: make(map[string][]models.MoodEntry),
		events:      make(map[string][]models.CrisisEvent),
		assessments: make(map[string][]models.AssessmentRecord),
	}
}

func (s *InMemoryStore) AddMoodEntry(participantID string, entry models.MoodEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moodEntries[participantID] = append(s.moodEntries[participantID], entry)
	return nil
}

// GetMoodEntries returns a participant's mood entries in chronological
// order, matching what the analyzer expects.
func (s *InMemoryStore) GetMoodEntries(participantID string) ([]models.MoodEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := append([]models.MoodEntry(nil), s.moodEntries[participantID]...)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})
	return entries, nil
}

func (s *InMemoryStore) AddCrisisEvent(event models.CrisisEvent) (models.CrisisEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	s.events[event.ParticipantID] = append(s.events[event.ParticipantID], event)
	return event, nil
}

func (s *InMemoryStore) GetCrisisEvents(participantID string) ([]models.CrisisEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := append([]models.CrisisEvent(nil), s.events[participantID]...)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
	return events, nil
}

func (s *InMemoryStore) AddAssessmentRecord(record models.AssessmentRecord) (models.AssessmentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	s.assessments[record.ParticipantID] = append(s.assessments[record.ParticipantID], record)
	return record, nil
}

func (s *InMemoryStore) GetAssessmentRecords(participantID string) ([]models.AssessmentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.AssessmentRecord(nil), s.assessments[participantID]...), nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error {
	return nil
}
