package analytics

import (
	"fmt"
	"time"

	"github.com/gymrat-ai/gymrat/internal/models"
)

// OverloadConfig tunes the progressive overload heuristic. The defaults
// mirror common gym plate math: below SmallPlateMax kg the smallest jump is
// a pair of 0.625 kg plates, above it a pair of 1.25 kg plates.
type OverloadConfig struct {
	TargetReps     int     // reps that must be hit in every plateau session
	Window         int     // consecutive sessions required at the same weight
	SmallPlateMax  float64 // below this weight the small increment applies
	SmallIncrement float64
	Increment      float64
}

// DefaultOverloadConfig returns the standard heuristic: 8 target reps over
// 3 sessions, +1.25 kg under 20 kg, +2.5 kg otherwise.
func DefaultOverloadConfig() OverloadConfig {
	return OverloadConfig{
		TargetReps:     8,
		Window:         3,
		SmallPlateMax:  20,
		SmallIncrement: 1.25,
		Increment:      2.5,
	}
}

// Suggestion recommends a weight increase for one exercise.
type Suggestion struct {
	ExerciseName    string  `json:"exercise_name"`
	CurrentWeight   float64 `json:"current_weight"`
	SuggestedWeight float64 `json:"suggested_weight"`
	Reason          string  `json:"reason"`
}

// performance is one session's representative entry for an exercise.
type performance struct {
	weight float64
	reps   int
	date   time.Time
}

// SuggestOverload inspects the recent history of one exercise and proposes
// a weight increase when the user has plateaued: the last cfg.Window sessions
// all at the same weight with at least cfg.TargetReps reps. Sessions must be
// ordered most recent first. Each session contributes its heaviest set
// (first occurrence on ties); fewer than cfg.Window entries, or any
// near-miss, returns nil.
func SuggestOverload(exerciseName string, recentSessions []models.Session, cfg OverloadConfig) *Suggestion {
	key := NormalizeExercise(exerciseName)

	var history []performance
	for _, session := range recentSessions {
		for _, exercise := range session.Exercises {
			if NormalizeExercise(exercise.Name) != key {
				continue
			}
			var best models.SessionSet
			for _, set := range exercise.Sets {
				if set.Weight > best.Weight {
					best = set
				}
			}
			if best.Weight > 0 {
				history = append(history, performance{
					weight: best.Weight,
					reps:   best.Reps,
					date:   session.Date,
				})
			}
		}
	}

	if len(history) < cfg.Window {
		return nil
	}

	window := history[:cfg.Window]
	currentWeight := window[0].weight
	for _, p := range window {
		if p.weight != currentWeight || p.reps < cfg.TargetReps {
			return nil
		}
	}

	increment := cfg.Increment
	if currentWeight < cfg.SmallPlateMax {
		increment = cfg.SmallIncrement
	}
	suggested := currentWeight + increment

	return &Suggestion{
		ExerciseName:    exerciseName,
		CurrentWeight:   currentWeight,
		SuggestedWeight: suggested,
		Reason: fmt.Sprintf("You've hit %d+ reps at %gkg for %d sessions. Try %gkg!",
			cfg.TargetReps, currentWeight, cfg.Window, suggested),
	}
}
