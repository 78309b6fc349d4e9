package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gymrat-ai/gymrat/internal/analytics"
	"github.com/gymrat-ai/gymrat/internal/models"
)

// defaultHistorySpan is the query window when no range is given.
const defaultHistorySpan = 30 * 24 * time.Hour

// suggestionHistoryLimit caps how many recent sessions feed the overload
// advisor; only the last few matter to the plateau check anyway.
const suggestionHistoryLimit = 30

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

type logSessionRequest struct {
	PlanID      *uuid.UUID               `json:"plan_id,omitempty"`
	PlanName    string                   `json:"plan_name"`
	DayNumber   int                      `json:"day_number"`
	DayName     string                   `json:"day_name"`
	Date        *time.Time               `json:"date,omitempty"`
	Exercises   []models.SessionExercise `json:"exercises"`
	DurationMin *int                     `json:"duration_min,omitempty"`
	Notes       string                   `json:"notes,omitempty"`
}

type logSessionResponse struct {
	Session models.Session          `json:"session"`
	NewPRs  []analytics.PRDetection `json:"new_prs"`
}

// handleLogSession records a completed workout day, runs PR detection
// against the stored records, and persists any new records with the old
// values carried forward.
func (s *Server) handleLogSession(w http.ResponseWriter, r *http.Request) {
	var req logSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if len(req.Exercises) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "at least one exercise is required"})
		return
	}
	for _, ex := range req.Exercises {
		if ex.Name == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise name must not be empty"})
			return
		}
	}

	userID := userIDFromContext(r)
	date := s.now()
	if req.Date != nil {
		date = *req.Date
	}

	session := models.Session{
		ID:          uuid.New(),
		UserID:      userID,
		PlanID:      req.PlanID,
		PlanName:    req.PlanName,
		DayNumber:   req.DayNumber,
		DayName:     req.DayName,
		Date:        date,
		Exercises:   req.Exercises,
		DurationMin: req.DurationMin,
		Notes:       req.Notes,
	}

	records, err := s.db.ListRecords(r.Context(), userID)
	if err != nil {
		s.log.Error("listing records", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	detections := analytics.DetectNewPRs(session, records)

	if _, err := s.db.InsertSession(r.Context(), session); err != nil {
		s.log.Error("inserting session", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	for _, d := range detections {
		if err := s.db.UpsertRecord(r.Context(), userID, d.ExerciseName, d.NewWeight, d.NewReps, session.Date); err != nil {
			s.log.Error("upserting record", "exercise", d.ExerciseName, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
	}

	if detections == nil {
		detections = []analytics.PRDetection{}
	}
	writeJSON(w, http.StatusCreated, logSessionResponse{Session: session, NewPRs: detections})
}

func (s *Server) handleQuerySessions(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseTimeRange(r, s.now(), defaultHistorySpan)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sessions, err := s.db.QuerySessions(r.Context(), start, end, userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return
	}

	session, err := s.db.GetSession(r.Context(), id, userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// handleStats derives dashboard stats from the user's full history.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)

	sessions, err := s.db.AllSessions(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	records, err := s.db.ListRecords(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, analytics.ComputeStats(sessions, records, s.now()))
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.db.ListRecords(r.Context(), userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if records == nil {
		records = []models.PersonalRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// handleSuggestion runs the progressive overload advisor for one exercise.
// The suggestion is null when the plateau condition isn't met.
func (s *Server) handleSuggestion(w http.ResponseWriter, r *http.Request) {
	exercise := r.URL.Query().Get("exercise")
	if exercise == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise parameter required"})
		return
	}

	cfg := analytics.DefaultOverloadConfig()
	if v := r.URL.Query().Get("target_reps"); v != "" {
		reps, err := parsePositiveInt(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "target_reps must be a positive integer"})
			return
		}
		cfg.TargetReps = reps
	}

	sessions, err := s.db.RecentSessions(r.Context(), userIDFromContext(r), suggestionHistoryLimit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"suggestion": analytics.SuggestOverload(exercise, sessions, cfg),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseTimeRange reads optional start/end query params (RFC 3339 or
// YYYY-MM-DD). End defaults to now, start to end minus defaultSpan.
func parseTimeRange(r *http.Request, now time.Time, defaultSpan time.Duration) (start, end time.Time, err error) {
	end = now
	if v := r.URL.Query().Get("end"); v != "" {
		end, err = parseFlexTime(v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	start = end.Add(-defaultSpan)
	if v := r.URL.Query().Get("start"); v != "" {
		start, err = parseFlexTime(v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("%d is not positive", n)
	}
	return n, nil
}
