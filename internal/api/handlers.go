// Package api provides HTTP handlers for CrisisTriage endpoints.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/carelink/crisistriage/internal/assessment"
	"github.com/carelink/crisistriage/internal/models"
	"github.com/carelink/crisistriage/internal/moodrisk"
	"github.com/carelink/crisistriage/internal/prevention"
)

// assessHandler runs a crisis assessment (POST /assess).
func (s *Server) assessHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.assessHandler: processing assessment request", "method", r.Method, "path", r.URL.Path)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		slog.Warn("Server.assessHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req models.AssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.assessHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(decodeErrorMessage(err)))
		return
	}
	if err := req.Validate(); err != nil {
		slog.Warn("Server.assessHandler: validation failed", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}

	result, err := assessment.AssessCrisisSeverity(req.Responses)
	if err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			slog.Warn("Server.assessHandler: response validation failed", "error", err, "field", vErr.Field)
			writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
			return
		}
		slog.Error("Server.assessHandler: assessment failed", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to run assessment"))
		return
	}

	if req.ParticipantID != "" && s.persistAssessments {
		record := models.AssessmentRecord{
			ParticipantID: req.ParticipantID,
			Responses:     req.Responses,
			Result:        result,
			CreatedAt:     time.Now().UTC(),
		}
		if _, err := s.st.AddAssessmentRecord(record); err != nil {
			// The caller still gets the result; losing the audit copy must
			// never block a safety answer.
			slog.Error("Server.assessHandler: failed to persist assessment record", "error", err, "participantID", req.ParticipantID)
		}
	}

	slog.Info("Server.assessHandler: assessment completed",
		"severity", result.Severity, "requires_immediate", result.RequiresImmediate, "confidence", result.Confidence)
	writeJSONResponse(w, http.StatusOK, models.Success(result))
}

// assessmentRecordsHandler returns stored assessments (GET /assessments?participant_id=).
func (s *Server) assessmentRecordsHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.assessmentRecordsHandler invoked", "method", r.Method, "path", r.URL.Path)
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	participantID := r.URL.Query().Get("participant_id")
	if participantID == "" {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Missing required query parameter: participant_id"))
		return
	}
	records, err := s.st.GetAssessmentRecords(participantID)
	if err != nil {
		slog.Error("Server.assessmentRecordsHandler: failed to fetch records", "error", err, "participantID", participantID)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to fetch assessments"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(records))
}

// moodEntriesHandler records a mood-log entry (POST /mood/entries).
func (s *Server) moodEntriesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.moodEntriesHandler invoked", "method", r.Method, "path", r.URL.Path)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req models.MoodEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.moodEntriesHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(decodeErrorMessage(err)))
		return
	}
	if err := req.Validate(); err != nil {
		slog.Warn("Server.moodEntriesHandler: validation failed", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}
	if err := s.st.AddMoodEntry(req.ParticipantID, req.Entry); err != nil {
		slog.Error("Server.moodEntriesHandler: failed to store mood entry", "error", err, "participantID", req.ParticipantID)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to store mood entry"))
		return
	}
	slog.Info("Server.moodEntriesHandler: mood entry recorded", "participantID", req.ParticipantID)
	writeJSONResponse(w, http.StatusCreated, models.Recorded(nil))
}

// moodRiskHandler analyzes mood history for risk trends.
//
// GET  /mood/risk?participant_id=...&window_days=N analyzes stored entries.
// POST /mood/risk analyzes entries supplied in the request body.
func (s *Server) moodRiskHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.moodRiskHandler invoked", "method", r.Method, "path", r.URL.Path)
	switch r.Method {
	case http.MethodGet:
		s.moodRiskFromStore(w, r)
	case http.MethodPost:
		s.moodRiskFromBody(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) moodRiskFromStore(w http.ResponseWriter, r *http.Request) {
	participantID := r.URL.Query().Get("participant_id")
	if participantID == "" {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Missing required query parameter: participant_id"))
		return
	}
	windowDays := parseWindowDays(r.URL.Query().Get("window_days"))
	entries, err := s.st.GetMoodEntries(participantID)
	if err != nil {
		slog.Error("Server.moodRiskFromStore: failed to fetch mood entries", "error", err, "participantID", participantID)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to fetch mood entries"))
		return
	}
	result := moodrisk.AnalyzeMoodRisk(entries, windowDays)
	slog.Info("Server.moodRiskFromStore: analysis completed", "participantID", participantID, "risk_level", result.RiskLevel)
	writeJSONResponse(w, http.StatusOK, models.Success(result))
}

func (s *Server) moodRiskFromBody(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	var req models.MoodRiskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.moodRiskFromBody: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(decodeErrorMessage(err)))
		return
	}
	if err := req.Validate(); err != nil {
		slog.Warn("Server.moodRiskFromBody: validation failed", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}
	result := moodrisk.AnalyzeMoodRisk(req.Entries, req.WindowDays)
	slog.Info("Server.moodRiskFromBody: analysis completed", "entries", len(req.Entries), "risk_level", result.RiskLevel)
	writeJSONResponse(w, http.StatusOK, models.Success(result))
}

// preventionPlanHandler generates a prevention plan (POST /prevention/plan).
// When the request names a participant, their stored crisis events are
// merged with any events supplied inline so proven strategies surface first.
func (s *Server) preventionPlanHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.preventionPlanHandler invoked", "method", r.Method, "path", r.URL.Path)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req models.PreventionPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.preventionPlanHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(decodeErrorMessage(err)))
		return
	}
	if err := req.Validate(); err != nil {
		slog.Warn("Server.preventionPlanHandler: validation failed", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}

	priorEvents := req.PriorEvents
	if req.ParticipantID != "" {
		stored, err := s.st.GetCrisisEvents(req.ParticipantID)
		if err != nil {
			slog.Error("Server.preventionPlanHandler: failed to fetch crisis events", "error", err, "participantID", req.ParticipantID)
			writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to fetch crisis events"))
			return
		}
		priorEvents = append(stored, priorEvents...)
	}

	plan := prevention.GeneratePlan(req.RiskFactors, req.ProtectiveFactors, priorEvents)
	slog.Info("Server.preventionPlanHandler: plan generated",
		"risk_factors", len(req.RiskFactors), "prior_events", len(priorEvents))
	writeJSONResponse(w, http.StatusOK, models.Success(plan))
}

// crisisEventsHandler records and lists historical crisis events.
//
// POST /events records an event; GET /events?participant_id= lists them.
func (s *Server) crisisEventsHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.crisisEventsHandler invoked", "method", r.Method, "path", r.URL.Path)
	switch r.Method {
	case http.MethodPost:
		s.addCrisisEvent(w, r)
	case http.MethodGet:
		s.listCrisisEvents(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) addCrisisEvent(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	var req models.CrisisEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.addCrisisEvent: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(decodeErrorMessage(err)))
		return
	}
	if err := req.Validate(); err != nil {
		slog.Warn("Server.addCrisisEvent: validation failed", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}
	event, err := s.st.AddCrisisEvent(models.CrisisEvent{
		ParticipantID:        req.ParticipantID,
		Severity:             req.Severity,
		Timestamp:            req.Timestamp,
		CopingStrategiesUsed: req.CopingStrategiesUsed,
	})
	if err != nil {
		slog.Error("Server.addCrisisEvent: failed to store crisis event", "error", err, "participantID", req.ParticipantID)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to store crisis event"))
		return
	}
	slog.Info("Server.addCrisisEvent: crisis event recorded", "eventID", event.ID, "participantID", event.ParticipantID)
	writeJSONResponse(w, http.StatusCreated, models.Recorded(event))
}

func (s *Server) listCrisisEvents(w http.ResponseWriter, r *http.Request) {
	participantID := r.URL.Query().Get("participant_id")
	if participantID == "" {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Missing required query parameter: participant_id"))
		return
	}
	events, err := s.st.GetCrisisEvents(participantID)
	if err != nil {
		slog.Error("Server.listCrisisEvents: failed to fetch crisis events", "error", err, "participantID", participantID)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to fetch crisis events"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(events))
}

// healthHandler provides a health check endpoint for monitoring (GET /health).
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"questions": len(assessment.Catalog()),
	})
}

// decodeErrorMessage converts a JSON decode failure into a caller-facing
// message. Type mismatches name the offending field and its expected type;
// syntax errors keep the generic message.
func decodeErrorMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("Invalid JSON format: field %s must be of type %s", typeErr.Field, typeErr.Type)
	}
	return "Invalid JSON format"
}

// parseWindowDays parses the window_days query parameter; invalid or absent
// values fall back to the analyzer default.
func parseWindowDays(raw string) int {
	if raw == "" {
		return 0
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 0 {
		slog.Warn("parseWindowDays: invalid window_days value, using default", "value", raw)
		return 0
	}
	return days
}
