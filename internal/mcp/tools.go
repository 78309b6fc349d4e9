package mcp

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gymrat-ai/gymrat/internal/analytics"
	"github.com/gymrat-ai/gymrat/internal/models"
	"github.com/gymrat-ai/gymrat/internal/planparse"
)

// suggestionHistoryLimit caps how many recent sessions feed the overload
// advisor.
const suggestionHistoryLimit = 30

// defaultTimeRange returns start/end defaulting to the last 30 days.
func defaultTimeRange(startStr, endStr string, now time.Time) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = now
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -30)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func parseReps(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("%d is not positive", n)
	}
	return n, nil
}

// --- Tool definitions ---

var toolGetTrainingStats = mcp.NewTool("get_training_stats",
	mcp.WithDescription("Summary training stats for the user: total sessions, total volume (tonnage), current day streak, sessions this week (Monday start), and PRs set in the last 30 days."),
)

var toolGetSessions = mcp.NewTool("get_sessions",
	mcp.WithDescription("Query logged workout sessions with their full exercise and set data, most recent first."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
)

var toolGetPersonalRecords = mcp.NewTool("get_personal_records",
	mcp.WithDescription("List the user's personal records per exercise, including the previous record each one superseded."),
)

var toolGetExerciseHistory = mcp.NewTool("get_exercise_history",
	mcp.WithDescription("Session-by-session history for one exercise: date, logged sets, and the best set's estimated one-rep max (Brzycki). Exercise names match case-insensitively."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name (e.g. 'Bench Press')")),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

var toolSuggestProgression = mcp.NewTool("suggest_progression",
	mcp.WithDescription("Progressive overload advice for one exercise. Suggests a weight increase only after the target reps were hit at the same weight for 3 consecutive sessions; otherwise returns null."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name")),
	mcp.WithString("target_reps", mcp.Description("Rep target that must be hit each session. Defaults to 8.")),
)

var toolParseWorkoutPlan = mcp.NewTool("parse_workout_plan",
	mcp.WithDescription("Extract a structured workout plan (days, exercises, target sets/reps) from free-form coaching text. Returns null when the text holds no recognizable plan."),
	mcp.WithString("text", mcp.Required(), mcp.Description("The coaching text to parse")),
)

// --- Tool handlers ---

func (h *handlers) getTrainingStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	sessions, err := h.ds.AllSessions(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_training_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	records, err := h.ds.ListRecords(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_training_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(analytics.ComputeStats(sessions, records, h.now()))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""), h.now())
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	sessions, err := h.ds.QuerySessions(ctx, start, end, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(sessions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPersonalRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records, err := h.ds.ListRecords(ctx, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_personal_records", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(records)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// historyEntry is one session's performance of an exercise.
type historyEntry struct {
	Date           time.Time           `json:"date"`
	DayName        string              `json:"day_name,omitempty"`
	Sets           []models.SessionSet `json:"sets"`
	EstimatedOneRM float64             `json:"estimated_1rm"`
}

func (h *handlers) getExerciseHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""), h.now())
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	sessions, err := h.ds.QuerySessions(ctx, start, end, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_exercise_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	key := analytics.NormalizeExercise(exercise)
	var history []historyEntry
	for _, s := range sessions {
		for _, ex := range s.Exercises {
			if analytics.NormalizeExercise(ex.Name) != key {
				continue
			}
			var best float64
			for _, set := range ex.Sets {
				if est := analytics.EstimateOneRepMax(set.Weight, set.Reps); est > best {
					best = est
				}
			}
			history = append(history, historyEntry{
				Date:           s.Date,
				DayName:        s.DayName,
				Sets:           ex.Sets,
				EstimatedOneRM: best,
			})
		}
	}

	result, err := mcp.NewToolResultJSON(history)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) suggestProgression(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	cfg := analytics.DefaultOverloadConfig()
	if v := req.GetString("target_reps", ""); v != "" {
		reps, err := parseReps(v)
		if err != nil {
			return mcp.NewToolResultError("target_reps must be a positive integer"), nil
		}
		cfg.TargetReps = reps
	}

	sessions, err := h.ds.RecentSessions(ctx, UserIDFromContext(ctx), suggestionHistoryLimit)
	if err != nil {
		h.log.Error("mcp suggest_progression", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"suggestion": analytics.SuggestOverload(exercise, sessions, cfg),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) parseWorkoutPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text parameter is required"), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"contains_plan": planparse.ContainsWorkoutPlan(text),
		"plan":          planparse.Parse(text, h.now()),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
