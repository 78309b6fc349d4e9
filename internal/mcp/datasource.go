package mcp

import (
	"context"
	"time"

	"github.com/gymrat-ai/gymrat/internal/models"
	"github.com/gymrat-ai/gymrat/internal/storage"
)

// DataSource abstracts the data layer for MCP tools so the AI coach can be
// pointed at any store satisfying it. *storage.DB is the canonical one.
type DataSource interface {
	AllSessions(ctx context.Context, userID int) ([]models.Session, error)
	QuerySessions(ctx context.Context, start, end time.Time, userID int) ([]models.Session, error)
	RecentSessions(ctx context.Context, userID, limit int) ([]models.Session, error)
	ListRecords(ctx context.Context, userID int) ([]models.PersonalRecord, error)
	ListPlans(ctx context.Context, userID int) ([]models.WorkoutPlan, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
