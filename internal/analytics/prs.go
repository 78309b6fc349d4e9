package analytics

import "github.com/gymrat-ai/gymrat/internal/models"

// PRDetection reports that a session's best set for one exercise beat the
// stored personal record. Previous values are nil when no record existed.
type PRDetection struct {
	ExerciseName   string   `json:"exercise_name"`
	NewWeight      float64  `json:"new_weight"`
	NewReps        int      `json:"new_reps"`
	PreviousWeight *float64 `json:"previous_weight,omitempty"`
	PreviousReps   *int     `json:"previous_reps,omitempty"`
	IsNewPR        bool     `json:"is_new_pr"`
}

// DetectNewPRs compares each exercise in a session against the current
// personal records and returns one detection per exercise whose best set
// (by estimated 1RM) strictly beats the stored record. Results follow the
// session's exercise order; ties with the existing record emit nothing.
// Persisting the new records is the caller's job.
func DetectNewPRs(session models.Session, currentPRs []models.PersonalRecord) []PRDetection {
	var results []PRDetection

	for _, exercise := range session.Exercises {
		var bestWeight float64
		var bestReps int
		var best1RM float64

		for _, set := range exercise.Sets {
			estimated := EstimateOneRepMax(set.Weight, set.Reps)
			if estimated > best1RM {
				best1RM = estimated
				bestWeight = set.Weight
				bestReps = set.Reps
			}
		}

		if best1RM == 0 {
			continue
		}

		existing := findRecord(currentPRs, exercise.Name)
		var existing1RM float64
		if existing != nil {
			existing1RM = EstimateOneRepMax(existing.Weight, existing.Reps)
		}

		if best1RM > existing1RM {
			det := PRDetection{
				ExerciseName: exercise.Name,
				NewWeight:    bestWeight,
				NewReps:      bestReps,
				IsNewPR:      true,
			}
			if existing != nil {
				w, r := existing.Weight, existing.Reps
				det.PreviousWeight = &w
				det.PreviousReps = &r
			}
			results = append(results, det)
		}
	}

	return results
}

func findRecord(records []models.PersonalRecord, exerciseName string) *models.PersonalRecord {
	key := NormalizeExercise(exerciseName)
	for i := range records {
		if NormalizeExercise(records[i].ExerciseName) == key {
			return &records[i]
		}
	}
	return nil
}
