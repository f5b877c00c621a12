package mcp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// defaultTimeRange returns start/end defaulting to the last 90 days.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -90)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// --- Tool definitions ---

var toolGetTrainingFrequency = mcp.NewTool("get_training_frequency",
	mcp.WithDescription("Training frequency and consistency analysis. Returns total sessions, average sessions per week, day-of-week histogram for the current week, weekly breakdown, current/longest streaks, and a consistency score against a target frequency."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 90 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
	mcp.WithString("target", mcp.Description("Target training frequency used for the consistency score. Defaults to MEDIUM (4 days/week)."), mcp.Enum("LOW", "MEDIUM", "HIGH", "ATHLETE")),
)

var toolGetVolumeTrends = mcp.NewTool("get_volume_trends",
	mcp.WithDescription("Per-exercise weekly training volume with trend classification (increasing/decreasing/stable) comparing the second half of the range against the first."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 90 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

var toolGetProgressiveOverload = mcp.NewTool("get_progressive_overload",
	mcp.WithDescription("Per-exercise progression tracking. Returns the running-max weight progression points and a status: progressing (new max within 14 days), plateau (no new max for over 30 days), or maintaining."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 90 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

var toolGetPersonalRecords = mcp.NewTool("get_personal_records",
	mcp.WithDescription("All-time personal records per exercise: heaviest weight, most reps in one set, and highest single-set volume, each with the set that achieved it and the date. Covers the full history."),
)

var toolGetMilestones = mcp.NewTool("get_milestones",
	mcp.WithDescription("Achieved training milestones (session counts, lifetime volume, consistency, streaks, personal records). Milestones are reconciled against full history before being returned."),
)

var toolGetTemplateAnalytics = mcp.NewTool("get_template_analytics",
	mcp.WithDescription("Per-template usage stats: session count, total and average volume, volume trend, first/last use, and per-exercise weight progression."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 90 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

var toolCompareSessions = mcp.NewTool("compare_sessions",
	mcp.WithDescription("Structured diff between two workout sessions: volume/sets/reps/duration deltas, overall trend, and per-exercise weight and volume changes."),
	mcp.WithString("first", mcp.Required(), mcp.Description("First (baseline) session ID")),
	mcp.WithString("second", mcp.Required(), mcp.Description("Second session ID")),
)

var toolGetWeeklySummary = mcp.NewTool("get_weekly_summary",
	mcp.WithDescription("Day-by-day activity breakdown: sessions, sets, reps, and volume for every day in the range, including rest days."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 7 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

var toolGetRecentSessions = mcp.NewTool("get_recent_sessions",
	mcp.WithDescription("Most recent workout sessions with per-session set, rep, and volume totals, newest first."),
	mcp.WithNumber("limit", mcp.Description("Maximum number of sessions to return. Defaults to 10.")),
)

// --- Tool handlers ---

func (h *handlers) getTrainingFrequency(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	target := req.GetString("target", "")
	uid := UserIDFromContext(ctx)

	summary, err := h.ds.TrainingFrequency(ctx, start, end, target, uid)
	if err != nil {
		h.log.Error("mcp get_training_frequency", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(summary)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getVolumeTrends(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	trends, err := h.ds.VolumeTrends(ctx, start, end, uid)
	if err != nil {
		h.log.Error("mcp get_volume_trends", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(trends)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getProgressiveOverload(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	overload, err := h.ds.ProgressiveOverload(ctx, start, end, uid)
	if err != nil {
		h.log.Error("mcp get_progressive_overload", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(overload)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPersonalRecords(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	records, err := h.ds.PersonalRecords(ctx, uid)
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

func (h *handlers) getMilestones(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	awards, err := h.ds.Milestones(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_milestones", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(awards)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTemplateAnalytics(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	templates, err := h.ds.TemplateAnalytics(ctx, start, end, uid)
	if err != nil {
		h.log.Error("mcp get_template_analytics", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(templates)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) compareSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	firstStr, err := req.RequireString("first")
	if err != nil {
		return mcp.NewToolResultError("first parameter is required"), nil
	}
	secondStr, err := req.RequireString("second")
	if err != nil {
		return mcp.NewToolResultError("second parameter is required"), nil
	}

	firstID, err := uuid.Parse(firstStr)
	if err != nil {
		return mcp.NewToolResultError("invalid first session ID: " + err.Error()), nil
	}
	secondID, err := uuid.Parse(secondStr)
	if err != nil {
		return mcp.NewToolResultError("invalid second session ID: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	comparison, err := h.ds.CompareSessions(ctx, firstID, secondID, uid)
	if err != nil {
		h.log.Error("mcp compare_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(comparison)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWeeklySummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	endStr := req.GetString("end", "")
	startStr := req.GetString("start", "")

	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return mcp.NewToolResultError("invalid end date: " + err.Error()), nil
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return mcp.NewToolResultError("invalid start date: " + err.Error()), nil
		}
	} else {
		start = end.AddDate(0, 0, -7)
	}

	uid := UserIDFromContext(ctx)
	summary, err := h.ds.WeeklySummary(ctx, start, end, uid)
	if err != nil {
		h.log.Error("mcp get_weekly_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(summary)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getRecentSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 10)
	uid := UserIDFromContext(ctx)

	sessions, err := h.ds.RecentSessions(ctx, limit, uid)
	if err != nil {
		h.log.Error("mcp get_recent_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(sessions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
