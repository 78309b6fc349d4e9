package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/gymrat-ai/gymrat/internal/analytics"
	"github.com/gymrat-ai/gymrat/internal/models"
)

// ListRecords retrieves all of a user's personal records, alphabetized by
// exercise key.
func (db *DB) ListRecords(ctx context.Context, userID int) ([]models.PersonalRecord, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT exercise_name, weight, reps, date, previous_weight, previous_reps
		 FROM personal_records
		 WHERE user_id = $1
		 ORDER BY exercise_key ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var result []models.PersonalRecord
	for rows.Next() {
		var r models.PersonalRecord
		if err := rows.Scan(&r.ExerciseName, &r.Weight, &r.Reps, &r.Date,
			&r.PreviousWeight, &r.PreviousReps); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// UpsertRecord stores a new personal record, keyed by the normalized
// exercise name. When the exercise already holds a record, the old weight
// and reps are carried into previous_weight/previous_reps — records are
// superseded, never deleted.
func (db *DB) UpsertRecord(ctx context.Context, userID int, exerciseName string, weight float64, reps int, date time.Time) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO personal_records (user_id, exercise_key, exercise_name, weight, reps, date)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (user_id, exercise_key) DO UPDATE SET
		   previous_weight = personal_records.weight,
		   previous_reps   = personal_records.reps,
		   exercise_name   = EXCLUDED.exercise_name,
		   weight          = EXCLUDED.weight,
		   reps            = EXCLUDED.reps,
		   date            = EXCLUDED.date`,
		userID, analytics.NormalizeExercise(exerciseName), exerciseName, weight, reps, date)
	if err != nil {
		return fmt.Errorf("upserting record for %q: %w", exerciseName, err)
	}
	return nil
}
