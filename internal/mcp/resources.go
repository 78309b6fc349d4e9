package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gymrat-ai/gymrat/internal/analytics"
	"github.com/gymrat-ai/gymrat/internal/models"
)

// snapshotDays is how far back the training snapshot includes full sessions.
const snapshotDays = 14

// recentRecordDays is the window for the recent records resource.
const recentRecordDays = 30

// trainingSnapshot bundles what a coaching model needs to open a
// conversation: overall stats, the recent sessions themselves, and the
// plan currently being followed.
func (h *handlers) trainingSnapshot(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)
	now := h.now()

	sessions, err := h.ds.AllSessions(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("loading sessions: %w", err)
	}
	records, err := h.ds.ListRecords(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("loading records: %w", err)
	}
	plans, err := h.ds.ListPlans(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("loading plans: %w", err)
	}

	cutoff := now.AddDate(0, 0, -snapshotDays)
	recent := make([]models.Session, 0, len(sessions))
	for _, s := range sessions {
		if !s.Date.Before(cutoff) {
			recent = append(recent, s)
		}
	}

	var active *models.WorkoutPlan
	for i := range plans {
		if plans[i].IsActive {
			active = &plans[i]
			break
		}
	}

	snapshot := map[string]any{
		"stats":           analytics.ComputeStats(sessions, records, now),
		"recent_sessions": recent,
		"active_plan":     active,
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("serializing snapshot: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) recentRecords(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	records, err := h.ds.ListRecords(ctx, UserIDFromContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("loading records: %w", err)
	}

	cutoff := h.now().AddDate(0, 0, -recentRecordDays)
	recent := make([]models.PersonalRecord, 0, len(records))
	for _, r := range records {
		if !r.Date.Before(cutoff) {
			recent = append(recent, r)
		}
	}

	data, err := json.Marshal(recent)
	if err != nil {
		return nil, fmt.Errorf("serializing records: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
