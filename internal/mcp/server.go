// Package mcp exposes the workout analytics to AI assistants over the
// Model Context Protocol, so a coaching model can read training history,
// stats, and overload suggestions instead of guessing.
package mcp

import (
	"context"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("GymRat", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("GymRat workout tracking server. Query logged sessions, personal records, training stats, and progressive overload suggestions, or parse a workout plan out of coaching text. All data is scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, log: log, now: time.Now}

	s.AddTools(
		server.ServerTool{Tool: toolGetTrainingStats, Handler: h.getTrainingStats},
		server.ServerTool{Tool: toolGetSessions, Handler: h.getSessions},
		server.ServerTool{Tool: toolGetPersonalRecords, Handler: h.getPersonalRecords},
		server.ServerTool{Tool: toolGetExerciseHistory, Handler: h.getExerciseHistory},
		server.ServerTool{Tool: toolSuggestProgression, Handler: h.suggestProgression},
		server.ServerTool{Tool: toolParseWorkoutPlan, Handler: h.parseWorkoutPlan},
	)

	s.AddResources(
		server.ServerResource{Resource: resTrainingSnapshot, Handler: h.trainingSnapshot},
		server.ServerResource{Resource: resRecentRecords, Handler: h.recentRecords},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
	now func() time.Time
}

// --- Resource definitions ---

var resTrainingSnapshot = mcp.NewResource(
	"gymrat://training_snapshot",
	"Training Snapshot",
	mcp.WithResourceDescription("Current training stats (streak, volume, weekly sessions) plus the last 14 days of sessions and the active plan"),
	mcp.WithMIMEType("application/json"),
)

var resRecentRecords = mcp.NewResource(
	"gymrat://recent_records",
	"Recent Personal Records",
	mcp.WithResourceDescription("Personal records set within the last 30 days"),
	mcp.WithMIMEType("application/json"),
)
