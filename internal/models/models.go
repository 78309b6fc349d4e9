package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionSet is a single logged set within an exercise.
type SessionSet struct {
	SetNumber int     `json:"set_number"`
	Reps      int     `json:"reps"`
	Weight    float64 `json:"weight"`
}

// SessionExercise is one exercise's actual performance in a session.
type SessionExercise struct {
	Name string       `json:"name"`
	Sets []SessionSet `json:"sets"`
}

// Session is a completed workout for one day of a plan. Sessions are
// immutable once logged.
type Session struct {
	ID          uuid.UUID         `json:"id"`
	UserID      int               `json:"user_id"`
	PlanID      *uuid.UUID        `json:"plan_id,omitempty"`
	PlanName    string            `json:"plan_name,omitempty"`
	DayNumber   int               `json:"day_number"`
	DayName     string            `json:"day_name"`
	Date        time.Time         `json:"date"`
	Exercises   []SessionExercise `json:"exercises"`
	DurationMin *int              `json:"duration_min,omitempty"`
	Notes       string            `json:"notes,omitempty"`
}

// PersonalRecord is the best logged performance for one exercise.
// At most one record exists per user and normalized exercise name;
// a superseding record carries the old values in PreviousWeight/PreviousReps.
type PersonalRecord struct {
	ExerciseName   string    `json:"exercise_name"`
	Weight         float64   `json:"weight"`
	Reps           int       `json:"reps"`
	Date           time.Time `json:"date"`
	PreviousWeight *float64  `json:"previous_weight,omitempty"`
	PreviousReps   *int      `json:"previous_reps,omitempty"`
}

// PlanExercise is an exercise template within a plan day. It declares
// intent (target sets and reps), not logged performance.
type PlanExercise struct {
	Name       string `json:"name"`
	TargetSets int    `json:"target_sets"`
	TargetReps string `json:"target_reps"` // "8-12" or "5"
	Notes      string `json:"notes,omitempty"`
}

// PlanDay is a single day in a workout plan template.
type PlanDay struct {
	DayNumber int            `json:"day_number"`
	Name      string         `json:"name"`
	Exercises []PlanExercise `json:"exercises"`
}

// WorkoutPlan is a reusable training template (e.g. Push/Pull/Legs).
type WorkoutPlan struct {
	ID          uuid.UUID `json:"id"`
	UserID      int       `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	Days        []PlanDay `json:"days"`
	GeneratedBy string    `json:"generated_by"` // "manual" or "chatbot"
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
