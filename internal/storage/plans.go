package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/gymrat-ai/gymrat/internal/models"
)

// InsertPlan stores a workout plan template.
func (db *DB) InsertPlan(ctx context.Context, p models.WorkoutPlan) error {
	days, err := json.Marshal(p.Days)
	if err != nil {
		return fmt.Errorf("encoding plan days: %w", err)
	}

	_, err = db.Pool.Exec(ctx,
		`INSERT INTO plans (id, user_id, name, description, is_active, generated_by, days, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		p.ID, p.UserID, p.Name, p.Description, p.IsActive, p.GeneratedBy, days, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	return nil
}

// ListPlans retrieves all of a user's plan templates, newest first.
func (db *DB) ListPlans(ctx context.Context, userID int) ([]models.WorkoutPlan, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, name, description, is_active, generated_by, days, created_at, updated_at
		 FROM plans
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying plans: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning plan: %w", err)
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

// GetPlan retrieves a single plan template by ID.
func (db *DB) GetPlan(ctx context.Context, id uuid.UUID, userID int) (*models.WorkoutPlan, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, name, description, is_active, generated_by, days, created_at, updated_at
		 FROM plans
		 WHERE id = $1 AND user_id = $2`,
		id, userID)

	p, err := scanPlan(row)
	if err != nil {
		return nil, fmt.Errorf("querying plan: %w", err)
	}
	return p, nil
}

// ActivatePlan marks one plan active and deactivates the user's others.
// Only one plan may be active at a time.
func (db *DB) ActivatePlan(ctx context.Context, id uuid.UUID, userID int) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE plans SET is_active = false, updated_at = NOW() WHERE user_id = $1 AND is_active`,
		userID); err != nil {
		return fmt.Errorf("deactivating plans: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE plans SET is_active = true, updated_at = NOW() WHERE id = $1 AND user_id = $2`,
		id, userID)
	if err != nil {
		return fmt.Errorf("activating plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("plan %s not found", id)
	}

	return tx.Commit(ctx)
}

func scanPlan(row rowScanner) (*models.WorkoutPlan, error) {
	var p models.WorkoutPlan
	var days []byte
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.IsActive,
		&p.GeneratedBy, &days, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(days, &p.Days); err != nil {
		return nil, fmt.Errorf("decoding plan days: %w", err)
	}
	return &p, nil
}
