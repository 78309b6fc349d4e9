package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gymrat-ai/gymrat/internal/models"
	"github.com/gymrat-ai/gymrat/internal/planparse"
)

type createPlanRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Days        []models.PlanDay `json:"days"`
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var req createPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "plan name is required"})
		return
	}
	if len(req.Days) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "at least one day is required"})
		return
	}

	now := s.now()
	plan := models.WorkoutPlan{
		ID:          uuid.New(),
		UserID:      userIDFromContext(r),
		Name:        req.Name,
		Description: req.Description,
		Days:        req.Days,
		GeneratedBy: "manual",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.db.InsertPlan(r.Context(), plan); err != nil {
		s.log.Error("inserting plan", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.db.ListPlans(r.Context(), userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if plans == nil {
		plans = []models.WorkoutPlan{}
	}
	writeJSON(w, http.StatusOK, plans)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid plan ID"})
		return
	}

	plan, err := s.db.GetPlan(r.Context(), id, userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "plan not found"})
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleActivatePlan(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid plan ID"})
		return
	}

	if err := s.db.ActivatePlan(r.Context(), id, userIDFromContext(r)); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "activated"})
}

type parsePlanRequest struct {
	Text string `json:"text"`
}

type parsePlanResponse struct {
	ContainsPlan bool                 `json:"contains_plan"`
	Plan         *planparse.ParsedPlan `json:"plan"`
	SavedPlanID  *uuid.UUID           `json:"saved_plan_id,omitempty"`
}

// handleParsePlan extracts a structured workout plan from AI chat text.
// With ?save=true a successfully parsed plan is also stored as a template.
func (s *Server) handleParsePlan(w http.ResponseWriter, r *http.Request) {
	var req parsePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	resp := parsePlanResponse{
		ContainsPlan: planparse.ContainsWorkoutPlan(req.Text),
		Plan:         planparse.Parse(req.Text, s.now()),
	}

	if resp.Plan != nil && r.URL.Query().Get("save") == "true" {
		now := s.now()
		plan := models.WorkoutPlan{
			ID:          uuid.New(),
			UserID:      userIDFromContext(r),
			Name:        resp.Plan.Name,
			Days:        planDaysFrom(resp.Plan),
			GeneratedBy: "chatbot",
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.db.InsertPlan(r.Context(), plan); err != nil {
			s.log.Error("saving parsed plan", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		resp.SavedPlanID = &plan.ID
	}

	writeJSON(w, http.StatusOK, resp)
}

// planDaysFrom numbers the parsed days into plan template days.
func planDaysFrom(p *planparse.ParsedPlan) []models.PlanDay {
	days := make([]models.PlanDay, 0, len(p.Days))
	for i, d := range p.Days {
		days = append(days, models.PlanDay{
			DayNumber: i + 1,
			Name:      d.Day,
			Exercises: d.Exercises,
		})
	}
	return days
}
