package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gymrat-ai/gymrat/internal/models"
)

// InsertSession stores a completed workout session. The exercise log is
// kept as a JSON document, mirroring the shape the analytics functions
// consume. Returns true if inserted, false if the ID already exists.
func (db *DB) InsertSession(ctx context.Context, s models.Session) (bool, error) {
	exercises, err := json.Marshal(s.Exercises)
	if err != nil {
		return false, fmt.Errorf("encoding exercises: %w", err)
	}

	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO sessions (id, user_id, plan_id, plan_name, day_number, day_name,
		 date, duration_min, notes, exercises)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 ON CONFLICT DO NOTHING`,
		s.ID, s.UserID, s.PlanID, s.PlanName, s.DayNumber, s.DayName,
		s.Date, s.DurationMin, s.Notes, exercises)
	if err != nil {
		return false, fmt.Errorf("inserting session: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// QuerySessions retrieves a user's sessions in a time range, most recent
// first — the ordering the streak and overload functions expect.
func (db *DB) QuerySessions(ctx context.Context, start, end time.Time, userID int) ([]models.Session, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, plan_id, plan_name, day_number, day_name,
		 date, duration_min, notes, exercises
		 FROM sessions
		 WHERE date >= $1 AND date < $2 AND user_id = $3
		 ORDER BY date DESC`,
		start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// AllSessions retrieves a user's full session history, most recent first.
func (db *DB) AllSessions(ctx context.Context, userID int) ([]models.Session, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, plan_id, plan_name, day_number, day_name,
		 date, duration_min, notes, exercises
		 FROM sessions
		 WHERE user_id = $1
		 ORDER BY date DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// RecentSessions retrieves the user's most recent sessions, capped at limit.
func (db *DB) RecentSessions(ctx context.Context, userID, limit int) ([]models.Session, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, plan_id, plan_name, day_number, day_name,
		 date, duration_min, notes, exercises
		 FROM sessions
		 WHERE user_id = $1
		 ORDER BY date DESC
		 LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent sessions: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// GetSession retrieves a single session by ID.
func (db *DB) GetSession(ctx context.Context, id uuid.UUID, userID int) (*models.Session, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, plan_id, plan_name, day_number, day_name,
		 date, duration_min, notes, exercises
		 FROM sessions
		 WHERE id = $1 AND user_id = $2`,
		id, userID)

	s, err := scanSession(row)
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}
	return s, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*models.Session, error) {
	var s models.Session
	var exercises []byte
	if err := row.Scan(&s.ID, &s.UserID, &s.PlanID, &s.PlanName, &s.DayNumber, &s.DayName,
		&s.Date, &s.DurationMin, &s.Notes, &exercises); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(exercises, &s.Exercises); err != nil {
		return nil, fmt.Errorf("decoding exercises: %w", err)
	}
	return &s, nil
}

func scanSessions(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]models.Session, error) {
	var result []models.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}
