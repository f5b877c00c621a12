package mcp

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
// Returns uuid.Nil when no identity was attached.
func UserIDFromContext(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(userIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftStats", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftStats training analytics server. Query workout frequency, volume trends, progressive overload, personal records, milestones, and template analytics. All data is scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetTrainingFrequency, Handler: h.getTrainingFrequency},
		server.ServerTool{Tool: toolGetVolumeTrends, Handler: h.getVolumeTrends},
		server.ServerTool{Tool: toolGetProgressiveOverload, Handler: h.getProgressiveOverload},
		server.ServerTool{Tool: toolGetPersonalRecords, Handler: h.getPersonalRecords},
		server.ServerTool{Tool: toolGetMilestones, Handler: h.getMilestones},
		server.ServerTool{Tool: toolGetTemplateAnalytics, Handler: h.getTemplateAnalytics},
		server.ServerTool{Tool: toolCompareSessions, Handler: h.compareSessions},
		server.ServerTool{Tool: toolGetWeeklySummary, Handler: h.getWeeklySummary},
		server.ServerTool{Tool: toolGetRecentSessions, Handler: h.getRecentSessions},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resRecentSessions, Handler: h.recentSessions},
		server.ServerResource{Resource: resDataStats, Handler: h.dataStats},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resRecentSessions = mcp.NewResource(
	"liftstats://recent_sessions",
	"Recent Sessions",
	mcp.WithResourceDescription("The ten most recent workout sessions with set, rep, and volume totals"),
	mcp.WithMIMEType("application/json"),
)

var resDataStats = mcp.NewResource(
	"liftstats://data_stats",
	"Data Statistics",
	mcp.WithResourceDescription("Aggregate counts of stored sessions, sets, and templates, plus set distribution by muscle group"),
	mcp.WithMIMEType("application/json"),
)
